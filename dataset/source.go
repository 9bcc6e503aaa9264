package dataset

import (
	"context"
	"fmt"

	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/models"
)

type Source interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// Dir is a Source backed by the JSON documents of a directory.
type Dir string

func (d Dir) Load(_ context.Context) (*models.Dataset, error) {
	return LoadDir(string(d))
}

func Open(cfg config.Config) (Source, error) {
	switch cfg.Data.Source {
	case "", "files":
		return Dir(cfg.Data.Dir), nil
	case "postgres":
		pg, err := NewPg(cfg.Postgres.ConnStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
