package main

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/storage"
)

func openStorage(log *slog.Logger, zlog zerolog.Logger) (storage.Backend, error) {
	cfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(cfg, storage.Dependencies{Logger: zlog, Slog: log})
	if err != nil {
		return nil, fmt.Errorf("creating %s storage: %w", cfg.Type, err)
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", cfg.Type, err)
	}
	log.Info("storage backend ready", "type", cfg.Type)
	return backend, nil
}
