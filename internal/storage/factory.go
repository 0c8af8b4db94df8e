package storage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/database"
	"github.com/swbase/swb/internal/storage/memory"
	"github.com/swbase/swb/internal/storage/postgres"
	sqlitestorage "github.com/swbase/swb/internal/storage/sqlite"
	"github.com/swbase/swb/internal/storage/websocket"
)

// Dependencies are the loggers handed to the backend a config selects.
type Dependencies struct {
	Logger zerolog.Logger // database layer
	Slog   *slog.Logger   // backends
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, deps Dependencies) (Backend, error) {
	log := deps.Slog
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Type {
	case "postgres":
		return postgres.New(cfg.Postgres, database.NewManager(deps.Logger), log), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, database.NewManager(deps.Logger), log)
	case "websocket":
		return websocket.New(cfg.WebSocket, log), nil
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
