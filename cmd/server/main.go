package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	propertyapp "github.com/attcrm/backend/internal/application/property"
	"github.com/attcrm/backend/internal/infrastructure/config"
	"github.com/attcrm/backend/internal/infrastructure/logger"
	"github.com/attcrm/backend/internal/infrastructure/persistence"
	"github.com/attcrm/backend/internal/infrastructure/telemetry"
	"github.com/attcrm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const (
	metricsNamespace = "propsales"
	serviceVersion   = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting property sales API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Store.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	store, err := persistence.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing store", zap.Error(err))
		}
	}()

	service := propertyapp.NewPropertyService(store.Properties, log)
	if cfg.Store.SeedDemoData {
		if _, err := service.SeedDemoData(ctx); err != nil {
			log.Fatal("Failed to load demo data", zap.Error(err))
		}
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(metricsNamespace)
		err := metrics.RegisterGaugeFunc(metricsNamespace+"_properties", "Number of stored properties.", func() float64 {
			countCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			n, err := store.Properties.Count(countCtx)
			if err != nil {
				log.Warn("Failed to count properties", zap.Error(err))
				return 0
			}
			return float64(n)
		})
		if err != nil {
			log.Fatal("Failed to register metrics", zap.Error(err))
		}
	}

	engine := router.NewEngine(ctx, router.Dependencies{
		Config:  cfg,
		Logger:  log,
		Service: service,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if len(serverErr) > 0 {
		os.Exit(1)
	}
}
