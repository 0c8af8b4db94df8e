// Package postgres implements the storage.Backend interface on PostgreSQL by
// wrapping the GORM backend.
package postgres

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/database"
	gormstorage "github.com/swbase/swb/internal/storage/gorm"
)

// Backend connects to Postgres on Init.
type Backend struct {
	*gormstorage.Backend
}

// New creates a Postgres backend. The connection is opened by Init.
func New(cfg config.PostgresConfig, mgr *database.Manager, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.Default()
	}
	open := func() (*gorm.DB, error) {
		db, err := mgr.OpenPostgres(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS postgis;`).Error; err != nil {
			// Points are stored as WKB and do not need PostGIS to be written.
			log.Warn("PostGIS extension unavailable", "error", err)
		}
		return db, nil
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{Open: open, Manager: mgr, Logger: log}),
	}
}
