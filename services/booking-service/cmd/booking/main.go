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
	"github.com/mamzpy/property-management-system/pkg/lock"
	"github.com/mamzpy/property-management-system/pkg/logging"
	"github.com/mamzpy/property-management-system/pkg/mq"
	"github.com/mamzpy/property-management-system/pkg/obs"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/booking-service/internal/service"
	transport "github.com/mamzpy/property-management-system/services/booking-service/internal/transport/http"
)

type Cfg struct {
	PGBookingDSN    string `envconfig:"PG_BOOKING_DSN" required:"true"`
	BookingHTTPAddr string `envconfig:"BOOKING_HTTP_ADDR" default:":3004"`
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:""`
}

func main() {
	_ = godotenv.Load(".env")
	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	logger := logging.New("booking-service")
	defer func() { _ = logger.Sync() }()

	shutdownTracer := obs.InitTracer("booking-service")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb := db.Open(cfg.PGBookingDSN)
	repo := repository.NewBookingRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	bus, err := mq.Dial(cfg.RabbitURL, logger)
	if err != nil {
		logger.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer bus.Close()

	var locker lock.Locker
	if cfg.RedisAddr != "" {
		rl := lock.NewRedisLocker(cfg.RedisAddr)
		defer rl.Close()
		locker = rl
	} else {
		// single-instance fallback; fine for local runs
		locker = lock.NewMemoryLocker()
	}

	svc := service.NewBookingSvc(repo, bus, locker, logger)
	router := transport.NewRouter(svc, logger)

	srv := &http.Server{Addr: cfg.BookingHTTPAddr, Handler: router}
	go func() {
		logger.Info("booking-service listening", zap.String("addr", cfg.BookingHTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("booking-service stopped")
}
