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
	"github.com/mamzpy/property-management-system/pkg/logging"
	"github.com/mamzpy/property-management-system/pkg/obs"
	"github.com/mamzpy/property-management-system/services/maintenance-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/maintenance-service/internal/service"
	transport "github.com/mamzpy/property-management-system/services/maintenance-service/internal/transport/http"
)

type Cfg struct {
	PGMaintenanceDSN    string `envconfig:"PG_MAINTENANCE_DSN" required:"true"`
	MaintenanceHTTPAddr string `envconfig:"MAINTENANCE_HTTP_ADDR" default:":3005"`
}

func main() {
	_ = godotenv.Load(".env")
	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	logger := logging.New("maintenance-service")
	defer func() { _ = logger.Sync() }()

	shutdownTracer := obs.InitTracer("maintenance-service")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb := db.Open(cfg.PGMaintenanceDSN)
	repo := repository.NewMaintenanceRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	svc := service.NewMaintenanceSvc(repo)
	router := transport.NewRouter(svc, logger)

	srv := &http.Server{Addr: cfg.MaintenanceHTTPAddr, Handler: router}
	go func() {
		logger.Info("maintenance-service listening", zap.String("addr", cfg.MaintenanceHTTPAddr))
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
	logger.Info("maintenance-service stopped")
}
