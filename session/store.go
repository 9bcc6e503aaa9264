package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/imkonsowa/restaurant-chatbot/config"
)

var ErrNotFound = errors.New("session not found")

// Store loads and persists sessions. Callers own the returned *Session until
// they Save it; stores never hand out shared pointers.
type Store interface {
	// Get returns ErrNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*Session, error)
	GetOrCreate(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Session.Store {
	case "", "memory":
		return NewMemoryStore(cfg.Session.TTL), nil
	case "redis":
		return NewRedisStore(ctx, cfg.Redis.URL, cfg.Session.TTL)
	}

	return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}

func getOrCreate(ctx context.Context, store Store, id string) (*Session, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}

	s, err := store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id, nowFunc()), nil
	}

	return s, err
}
