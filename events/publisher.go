package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/imkonsowa/restaurant-chatbot/config"
)

// Sink is where encoded events end up; *Client is the production one.
type Sink interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher encodes and sends events from a small worker pool so the chat
// handlers never wait on NATS.
type NatsPublisher struct {
	subject string
	pool    *WorkerPool[TurnEvent]
}

// The pool outlives ctx: events queued before shutdown are still sent by Close.
func NewNatsPublisher(ctx context.Context, sink Sink, subject string, cfg config.Events) *NatsPublisher {
	p := &NatsPublisher{subject: subject}
	p.pool = NewWorkerPool(context.WithoutCancel(ctx), cfg.Workers, cfg.QueueSize, func(_ context.Context, ev TurnEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal turn event: %w", err)
		}
		if err := sink.Publish(subject, data); err != nil {
			return fmt.Errorf("failed to publish turn event: %w", err)
		}
		return nil
	})

	return p
}

// Publish drops the event with a warning when the queue is full.
func (p *NatsPublisher) Publish(_ context.Context, ev TurnEvent) {
	if !p.pool.TrySubmit(ev) {
		slog.Warn("turn event dropped", "subject", p.subject, "session", ev.Session)
	}
}

// Close flushes queued events.
func (p *NatsPublisher) Close() {
	p.pool.Close()
}
