package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/imkonsowa/restaurant-chatbot/logging"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"
)

const durableName = "insights"

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logging.Setup(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	nc, err := events.NewNats(cfg.Nats)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	handler := NewHandler()

	slog.Info("Starting insights", "workers", cfg.Events.Workers, "queueSize", cfg.Events.QueueSize, "subject", cfg.Nats.TurnsSubject)

	pool := events.NewWorkerPool[*nats.Msg](ctx, cfg.Events.Workers, cfg.Events.QueueSize, events.AckHandler(handler.HandleTurnMessage))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer pool.Close()
		return nc.Subscribe(ctx, cfg.Nats.TurnsSubject, durableName, pool)
	})

	g.Go(func() error {
		interval := cfg.Insights.ReportInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				handler.Report(cfg.Insights.Top)
				return nil
			case <-ticker.C:
				handler.Report(cfg.Insights.Top)
			}
		}
	})

	if err := g.Wait(); err != nil {
		slog.Error("Shutting down due to error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutting down")
}
