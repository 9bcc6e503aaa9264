package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/imkonsowa/restaurant-chatbot/responder"
	"github.com/imkonsowa/restaurant-chatbot/session"
)

var ErrNotReady = errors.New("datasets are still loading")

type TurnResult struct {
	SessionID string
	Reply     responder.Reply
	Flags     map[string]bool
}

// Handler runs one chat turn: it serializes turns of the same session, lets
// the renderer answer and persists the updated session.
type Handler struct {
	renderer atomic.Pointer[responder.Renderer]
	store    session.Store
	locks    *session.KeyedMutex
	events   events.Publisher
}

func NewHandler(store session.Store, publisher events.Publisher) *Handler {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Handler{
		store:  store,
		locks:  session.NewKeyedMutex(),
		events: publisher,
	}
}

// SetRenderer makes the handler ready to answer.
func (h *Handler) SetRenderer(r *responder.Renderer) {
	h.renderer.Store(r)
}

func (h *Handler) Ready() bool {
	return h.renderer.Load() != nil
}

func (h *Handler) Chat(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	r := h.renderer.Load()
	if r == nil {
		return nil, ErrNotReady
	}

	unlock := h.locks.Lock(sessionID)
	defer unlock()

	s, err := h.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	reply := r.Respond(message, s)

	if err := h.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	ev := events.TurnEvent{
		Session: sessionID,
		Intent:  string(reply.Intent),
		Rule:    reply.Rule,
		Message: message,
		At:      time.Now().UTC(),
	}
	if reply.Topic != nil {
		ev.TopicKind, ev.TopicName = reply.Topic.Kind, reply.Topic.Name
	}
	h.events.Publish(ctx, ev)

	slog.Debug("turn answered", "session", sessionID, "intent", reply.Intent, "rule", reply.Rule)

	return &TurnResult{SessionID: sessionID, Reply: reply, Flags: s.Flags()}, nil
}

// Session returns the stored state of sessionID, or session.ErrNotFound.
func (h *Handler) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	return h.store.Get(ctx, sessionID)
}
