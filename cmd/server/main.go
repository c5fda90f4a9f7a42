package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nomogram-service/internal/adapters/primary/http/handlers"
	"nomogram-service/internal/adapters/primary/http/middleware"
	"nomogram-service/internal/adapters/secondary/kube"
	"nomogram-service/internal/adapters/secondary/memory"
	"nomogram-service/internal/adapters/secondary/modelsource"
	"nomogram-service/internal/adapters/secondary/postgres"
	promrecorder "nomogram-service/internal/adapters/secondary/prometheus"
	"nomogram-service/internal/config"
	"nomogram-service/internal/core/domain"
	output "nomogram-service/internal/core/ports/output"
	"nomogram-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx := context.Background()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Model coefficients (frozen for the life of the process)
	source, err := newCoefficientSource(cfg)
	if err != nil {
		log.Fatalf("create model source: %v", err)
	}
	model, err := services.LoadModel(ctx, source)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	// Database pool (Optional - based on config)
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		pool, err = newPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Info("database disabled")
	}

	// History repository (Optional - based on config)
	var historyRepo output.HistoryRepository
	switch {
	case !cfg.History.Enabled:
		log.Info("history disabled")
	case pool != nil:
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate history table: %v", err)
		}
		historyRepo = postgres.NewHistoryRepository(pool)
		log.Info("history stored in postgres")
	default:
		historyRepo = memory.NewHistoryRepository(cfg.History.MaxRecords)
		log.WithField("max_records", cfg.History.MaxRecords).Info("history stored in memory")
	}

	// Metrics (Optional - based on config)
	var registry *prometheus.Registry
	var metricsRecorder output.MetricsRecorder
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metricsRecorder = promrecorder.NewRecorder(registry)
		log.Info("metrics enabled")
	} else {
		log.Info("metrics disabled")
	}

	// Core Services (Application Layer)
	horizons := domain.ReferenceHorizons()
	nomogramSvc := services.NewNomogramService(model, horizons, historyRepo, metricsRecorder)
	var historySvc *services.HistoryService
	if historyRepo != nil {
		historySvc = services.NewHistoryService(historyRepo, horizons)
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(nomogramSvc, historySvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	if registry != nil {
		router.Use(middleware.Metrics(registry))
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1/nomogram")
	h.RegisterRoutes(api)

	// Health check with DB ping when a database is configured
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "model": model.Name, "version": model.Version})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func newCoefficientSource(cfg *config.Config) (output.CoefficientSource, error) {
	switch cfg.Model.Source {
	case config.ModelSourceFile:
		return modelsource.NewFileSource(cfg.Model.File), nil
	case config.ModelSourceConfigMap:
		client, err := kube.NewClientset(&cfg.Kubernetes)
		if err != nil {
			return nil, err
		}
		return kube.NewConfigMapSource(client, cfg.Kubernetes.Namespace, cfg.Kubernetes.ConfigMapName, cfg.Kubernetes.ConfigMapKey), nil
	case config.ModelSourceBuiltin:
		return modelsource.NewReferenceSource(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedModelSource, cfg.Model.Source)
	}
}

func newPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
