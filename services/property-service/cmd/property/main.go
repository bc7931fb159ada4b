package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/db"
	"github.com/mamzpy/property-management-system/pkg/events"
	"github.com/mamzpy/property-management-system/pkg/logging"
	"github.com/mamzpy/property-management-system/pkg/mq"
	"github.com/mamzpy/property-management-system/pkg/obs"
	"github.com/mamzpy/property-management-system/services/property-service/internal/consumer"
	"github.com/mamzpy/property-management-system/services/property-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/property-service/internal/service"
	transport "github.com/mamzpy/property-management-system/services/property-service/internal/transport/http"
)

type Cfg struct {
	PGPropertyDSN    string `envconfig:"PG_PROPERTY_DSN" required:"true"`
	PropertyHTTPAddr string `envconfig:"PROPERTY_HTTP_ADDR" default:":3002"`
	RabbitURL        string `envconfig:"RABBIT_URL" required:"true"`
}

func main() {
	_ = godotenv.Load(".env")
	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	logger := logging.New("property-service")
	defer func() { _ = logger.Sync() }()

	shutdownTracer := obs.InitTracer("property-service")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb := db.Open(cfg.PGPropertyDSN)
	repo := repository.NewPropertyRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	bus, err := mq.Dial(cfg.RabbitURL, logger)
	if err != nil {
		logger.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	availability := consumer.NewBookingApproved(repo, logger)
	subs := []mq.Subscription{
		{
			Exchange:   events.BookingExchange,
			RoutingKey: events.RKBookingApproved,
			Queue:      consumer.Queue,
			Handler:    availability.Handle,
		},
	}
	for _, sub := range subs {
		if err := bus.Subscribe(ctx, sub); err != nil {
			logger.Fatal("subscribe",
				zap.String("queue", sub.Queue),
				zap.String("routing_key", sub.RoutingKey),
				zap.Error(err))
		}
		logger.Info("consumer started",
			zap.String("queue", sub.Queue),
			zap.String("routing_key", sub.RoutingKey))
	}

	svc := service.NewPropertySvc(repo)
	router := transport.NewRouter(svc, logger)

	srv := &http.Server{Addr: cfg.PropertyHTTPAddr, Handler: router}
	go func() {
		logger.Info("property-service listening", zap.String("addr", cfg.PropertyHTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	_ = srv.Shutdown(sctx)
	logger.Info("property-service stopped")
}
