// Package events publishes one TurnEvent per answered message so other
// services can study the conversation traffic.
package events

import (
	"context"
	"time"
)

type TurnEvent struct {
	Session   string    `json:"session"`
	Intent    string    `json:"intent"`
	Rule      string    `json:"rule,omitempty"`
	Message   string    `json:"message"`
	TopicKind string    `json:"topic_kind,omitempty"`
	TopicName string    `json:"topic_name,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev TurnEvent)
	Close()
}

// Nop drops every event. Used when NATS is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, TurnEvent) {}

func (Nop) Close() {}
