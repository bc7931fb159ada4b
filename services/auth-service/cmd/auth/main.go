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

	"github.com/mamzpy/property-management-system/pkg/auth"
	"github.com/mamzpy/property-management-system/pkg/db"
	"github.com/mamzpy/property-management-system/pkg/logging"
	"github.com/mamzpy/property-management-system/pkg/obs"
	"github.com/mamzpy/property-management-system/services/auth-service/internal/repository"
	"github.com/mamzpy/property-management-system/services/auth-service/internal/service"
	transport "github.com/mamzpy/property-management-system/services/auth-service/internal/transport/http"
)

type Cfg struct {
	PGAuthDSN    string `envconfig:"PG_AUTH_DSN" required:"true"`
	AuthHTTPAddr string `envconfig:"AUTH_HTTP_ADDR" default:":3001"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
}

func main() {
	_ = godotenv.Load(".env")
	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}

	logger := logging.New("auth-service")
	defer func() { _ = logger.Sync() }()

	shutdownTracer := obs.InitTracer("auth-service")
	defer func() { _ = shutdownTracer(context.Background()) }()

	gdb := db.Open(cfg.PGAuthDSN)
	repo := repository.NewUserRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)
	svc := service.NewAuthSvc(repo, tokens)
	router := transport.NewRouter(svc, logger)

	srv := &http.Server{Addr: cfg.AuthHTTPAddr, Handler: router}
	go func() {
		logger.Info("auth-service listening", zap.String("addr", cfg.AuthHTTPAddr))
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
	logger.Info("auth-service stopped")
}
