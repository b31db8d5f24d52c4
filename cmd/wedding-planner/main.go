package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	weddingplanner "github.com/magabrotheeeer/wedding-planner/internal/app/wedding-planner"
	"github.com/magabrotheeeer/wedding-planner/internal/config"
)

// @title Wedding Planner API
// @version 1.0
// @description Сервис планирования свадьбы: гости, задачи, бюджет,
// @description подрядчики, расписание дня и выгрузки данных.
// @BasePath /api/v1
func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting wedding-planner", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := weddingplanner.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("app stopped gracefully")
}
