package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"seoinspector/internal/api/v1/handler"
	"seoinspector/internal/api/v1/router"
	"seoinspector/internal/bridge"
	"seoinspector/internal/cache"
	"seoinspector/internal/config"
	"seoinspector/internal/debug"
	"seoinspector/internal/log"
	"seoinspector/internal/service"
)

func init() {
	log.InitLogger()
	config.LoadEnv()
	if !config.AppConfig.IsDev {
		log.UseProduction()
	}
}

func main() {
	defer log.Sync()

	cfg := config.AppConfig

	b, err := bridge.New(cfg)
	if err != nil {
		log.Logger.Fatal("Failed to start inspection bridge", zap.String("bridge", cfg.Bridge), zap.Error(err))
	}

	inspector := service.NewInspector(
		b,
		service.NewProber(cfg.UserAgent, cfg.ProbeTimeout),
		cache.New(cfg.CacheTTL),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(handler.New(inspector), cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           router.NewMetricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for interrupt or terminate signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	//SEO Inspector Server
	go func() {
		log.Logger.Info("Server started", zap.String("addr", server.Addr), zap.String("bridge", b.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Pprof only enabled in dev env
	if cfg.IsDev {
		debug.StartPprof(":6060")
	}

	//Prometheus server
	go func() {
		log.Logger.Info("Metrics server started", zap.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Fatal("Metrics server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	<-stop
	log.Logger.Info("Shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Logger.Error("Metrics server forced to shutdown", zap.Error(err))
	}
	if err := b.Close(); err != nil {
		log.Logger.Error("Failed to close inspection bridge", zap.Error(err))
	}
	log.Logger.Info("Server exited successfully")
}
