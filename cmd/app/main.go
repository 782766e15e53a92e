package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/app"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/db"
	"github.com/NastyaGoryachaya/edge-rates-service/pkg/logger"
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New(&cfg.Logger)

	// context + signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(&cfg.Postgres)
	if err != nil {
		log.Error("postgres init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// build application
	application, err := app.NewApp(ctx, *cfg, log, pool)
	if err != nil {
		pool.Close()
		log.Error("app init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// run application
	if err := application.Run(ctx); err != nil {
		log.Error("application stopped with error", slog.String("error", err.Error()))
	}

	log.Info("edge-rates-service stopped")
}
