package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wizzel1/cuppl-sub000/internal/api"
	"github.com/Wizzel1/cuppl-sub000/internal/config"
	"github.com/Wizzel1/cuppl-sub000/internal/database"
	"github.com/Wizzel1/cuppl-sub000/internal/recurrence"
	"github.com/Wizzel1/cuppl-sub000/internal/reminders"
	"github.com/Wizzel1/cuppl-sub000/internal/store/postgres"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
	"github.com/Wizzel1/cuppl-sub000/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	st := postgres.New(db)

	hub := websocket.NewHub()
	go hub.Run()

	scheduler := reminders.NewScheduler(st, st)
	engine := recurrence.NewEngine(st, scheduler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := reminders.NewDispatcher(st, hub, cfg.Reminders.DispatchInterval, cfg.Reminders.DispatchBatchSize)
	go dispatcher.Run(ctx)

	router := api.SetupRouter(st, cfg, hub, engine, scheduler)

	slog.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
