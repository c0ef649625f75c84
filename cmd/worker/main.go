package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/config"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/database"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/delivery"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/engine"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/logging"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/store"
	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/worker"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			slog.Error("sentry init failed", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))
	defer pgLogHandler.Stop()

	// Log cleanup
	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	st := store.New(database.DB)

	channels := map[string]delivery.Channel{
		models.ChannelTelegram: delivery.NewTelegramChannel(cfg.TelegramToken, cfg.SendTimeout),
		models.ChannelInApp:    delivery.NewInAppChannel(st.Notifications),
	}
	eng := engine.New(st, channels, engine.NewCalendarClient(cfg.CalendarTimeout), cfg.DefaultTZ)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(st, eng, cfg.SweepInterval, cfg.SweepConcurrency)
	events := worker.NewEventProcessor(st, eng, cfg.EventPollInterval)

	go events.Run(ctx)
	slog.Info("nudge worker started",
		"sweep_interval", cfg.SweepInterval.String(),
		"event_poll_interval", cfg.EventPollInterval.String(),
		"concurrency", cfg.SweepConcurrency)

	sweeper.Run(ctx)
	slog.Info("nudge worker stopped")
}
