package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/dataset"
	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/imkonsowa/restaurant-chatbot/logging"
	"github.com/imkonsowa/restaurant-chatbot/responder"
	"github.com/imkonsowa/restaurant-chatbot/session"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logging.Setup(cfg.Logging)
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, err := dataset.Open(*cfg)
	if err != nil {
		log.Fatal(err)
	}

	store, err := session.Open(ctx, *cfg)
	if err != nil {
		log.Fatal(err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Nats.Enabled {
		nc, err := events.NewNats(cfg.Nats)
		if err != nil {
			log.Fatal(err)
		}
		defer nc.Close()

		publisher = events.NewNatsPublisher(ctx, nc, cfg.Nats.TurnsSubject, cfg.Events)
	}
	defer publisher.Close()

	handler := NewHandler(store, publisher)
	agent := NewAgent(cfg, handler)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return agent.Run(ctx)
	})

	g.Go(func() error {
		ds, err := source.Load(ctx)
		if err != nil {
			return err
		}
		handler.SetRenderer(responder.New(ds))
		slog.Info("agent ready", "restaurant", ds.RestaurantName, "source", cfg.Data.Source)

		return nil
	})

	if mem, ok := store.(*session.MemoryStore); ok {
		g.Go(func() error {
			return mem.Run(ctx, cfg.Session.SweepInterval)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}

	slog.Info("shutting down")
}
