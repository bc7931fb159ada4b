package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mamzpy/property-management-system/pkg/auth"
	"github.com/mamzpy/property-management-system/pkg/config"
	"github.com/mamzpy/property-management-system/pkg/correlation"
	"github.com/mamzpy/property-management-system/pkg/logging"
	"github.com/mamzpy/property-management-system/pkg/obs"
	"github.com/mamzpy/property-management-system/services/api-gateway/internal/clients"
	"github.com/mamzpy/property-management-system/services/api-gateway/internal/handlers"
	"github.com/mamzpy/property-management-system/services/api-gateway/internal/middlewares"
)

func main() {
	_ = godotenv.Load()

	log := logging.New("api-gateway")
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	shutdownTracer := obs.InitTracer("api-gateway")
	defer func() { _ = shutdownTracer(context.Background()) }()

	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)
	reg := clients.New(cfg)
	proxy := handlers.NewProxy(reg, log)

	r := gin.New()
	r.Use(gin.Recovery(), correlation.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", proxy.To(reg.Auth))
	r.POST("/auth/login", proxy.To(reg.Auth))

	authed := r.Group("/", middlewares.JWTAuth(tokens))
	admin := middlewares.RequireRole(auth.RoleAdmin)

	authed.GET("/properties", proxy.To(reg.Property))
	authed.GET("/properties/:id", proxy.To(reg.Property))
	authed.POST("/properties", admin, proxy.To(reg.Property))
	authed.PUT("/properties/:id", admin, proxy.To(reg.Property))
	authed.DELETE("/properties/:id", admin, proxy.To(reg.Property))

	authed.GET("/tenants", admin, proxy.To(reg.Tenant))
	authed.GET("/tenants/:id", admin, proxy.To(reg.Tenant))

	authed.POST("/bookings", proxy.To(reg.Booking))
	authed.GET("/bookings", admin, proxy.To(reg.Booking))
	authed.GET("/bookings/pending", admin, proxy.To(reg.Booking))
	authed.GET("/bookings/:id", proxy.To(reg.Booking))
	authed.PATCH("/bookings/:id/approve", admin, proxy.To(reg.Booking))
	authed.PATCH("/bookings/:id/reject", admin, proxy.To(reg.Booking))

	authed.POST("/maintenance", proxy.To(reg.Maintenance))
	authed.GET("/maintenance", proxy.To(reg.Maintenance))
	authed.GET("/maintenance/:id", proxy.To(reg.Maintenance))
	authed.PATCH("/maintenance/:id/status", admin, proxy.To(reg.Maintenance))

	srv := &http.Server{Addr: cfg.GatewayHTTPAddr, Handler: r}
	go func() {
		log.Info("gateway listening", zap.String("addr", cfg.GatewayHTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
