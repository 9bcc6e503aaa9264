package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/nats-io/nats.go"
)

type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNats connects to NATS and makes sure the stream holding turn events exists.
func NewNats(cfg config.Nats) (*Client, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.TurnsSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, err
	}

	return &Client{conn: nc, js: js}, nil
}

func (c *Client) Close() {
	c.conn.Close()
}

func (c *Client) Publish(subject string, data []byte) error {
	_, err := c.js.Publish(subject, data)

	return err
}

// Subscribe pulls messages for subject through the durable consumer named
// durable and hands them to pool until ctx is done. Handlers ack or nak each
// message, so a restarted consumer resumes where it stopped.
func (c *Client) Subscribe(ctx context.Context, subject, durable string, pool *WorkerPool[*nats.Msg]) error {
	subscription, err := c.js.PullSubscribe(subject, durable, nats.ManualAck())
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	slog.Info("consuming turn events", "subject", subject, "durable", durable)

	for {
		select {
		case <-ctx.Done():
			if err := subscription.Unsubscribe(); err != nil {
				slog.Warn("failed to unsubscribe from subject", "subject", subject, "error", err)
			}

			return nil
		default:
			msgs, err := subscription.Fetch(4, nats.MaxWait(200*time.Millisecond))
			if err != nil && !errors.Is(err, nats.ErrTimeout) {
				return fmt.Errorf("failed to fetch from %s: %w", subject, err)
			}

			for _, msg := range msgs {
				if !pool.Submit(ctx, msg) {
					return nil
				}
			}
		}
	}
}

// AckHandler adapts a payload handler to raw messages: success acks, failure naks.
func AckHandler(handle func(ctx context.Context, data []byte) error) func(ctx context.Context, msg *nats.Msg) error {
	return func(ctx context.Context, msg *nats.Msg) error {
		if err := handle(ctx, msg.Data); err != nil {
			if nakErr := msg.Nak(); nakErr != nil {
				slog.Error("failed to nak message", "error", nakErr)
			}
			return err
		}

		return msg.Ack()
	}
}
