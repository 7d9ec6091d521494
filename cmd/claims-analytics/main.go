package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/relieflabs/claims-analytics/internal/analytics"
	"github.com/relieflabs/claims-analytics/internal/api"
	"github.com/relieflabs/claims-analytics/internal/config"
	"github.com/relieflabs/claims-analytics/internal/loader"
	"github.com/relieflabs/claims-analytics/internal/logging"
	"github.com/relieflabs/claims-analytics/internal/models"
	"github.com/relieflabs/claims-analytics/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ds, err := loadDataset(cfg)
	if err != nil {
		logging.Fatalf("Failed to load dataset: %v", err)
	}

	// One snapshot for the lifetime of the process; every query reads from
	// it, nothing writes to it.
	engine := analytics.NewEngine(ds)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	router.Use(api.RateLimitMiddleware(cfg.API.RateLimitRPS))

	handler := api.NewHandler(engine)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

func loadDataset(cfg *config.Config) (*models.Dataset, error) {
	switch cfg.Data.Source {
	case config.SourceSQLite:
		store, err := repository.NewSQLiteStore(cfg.Data.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadDataset(context.Background())
	default:
		return loader.Load(cfg.Data.Dir)
	}
}
