// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend; the only SQLite-specific concerns are creating the
// in-memory DB and the periodic disk dump.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/database"
	gormstorage "github.com/swbase/swb/internal/storage/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db       *gorm.DB
	cfg      config.SQLiteConfig
	mgr      *database.Manager
	log      *slog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a new SQLite storage backend backed by an in-memory database.
func New(cfg config.SQLiteConfig, mgr *database.Manager, log *slog.Logger) (*Backend, error) {
	db, err := mgr.OpenSQLite("")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Backend{
		Backend:  gormstorage.New(gormstorage.Dependencies{DB: db, Manager: mgr, Logger: log}),
		db:       db,
		cfg:      cfg,
		mgr:      mgr,
		log:      log.With("component", "storage.sqlite"),
		stopChan: make(chan struct{}),
	}, nil
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.Path != "" && b.cfg.DumpInterval > 0 {
		go b.dumpLoop()
	}
	return nil
}

// EndSession flushes the session and writes a final snapshot.
func (b *Backend) EndSession() error {
	if err := b.Backend.EndSession(); err != nil {
		return err
	}
	return b.Dump()
}

// Dump writes a snapshot of the in-memory database to the configured path.
func (b *Backend) Dump() error {
	if b.cfg.Path == "" {
		return nil
	}
	return b.mgr.DumpMemoryDBToDisk(b.db, b.cfg.Path)
}

// Close stops the dump goroutine and closes the embedded GORM backend.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() { close(b.stopChan) })
	return b.Backend.Close()
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
// VACUUM INTO creates a point-in-time snapshot, so no pause mechanism is needed.
func (b *Backend) dumpLoop() {
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			if err := b.Dump(); err != nil {
				b.log.Error("error dumping to disk", "error", err)
			} else {
				b.log.Debug("dumped to disk", "duration", time.Since(start))
			}
		}
	}
}
