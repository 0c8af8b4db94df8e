// Package gormstorage implements the storage.Backend interface using GORM with
// internal queues and a background DB writer goroutine.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swbase/swb/internal/database"
	"github.com/swbase/swb/internal/model"
	"github.com/swbase/swb/internal/model/convert"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/queue"
)

const (
	defaultFlushInterval = 2 * time.Second
	// earlyFlushThreshold triggers a write before the next tick when fired events pile up.
	earlyFlushThreshold = 500
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	Open          func() (*gorm.DB, error) // connects on Init when DB is nil
	Manager       *database.Manager
	Logger        *slog.Logger
	FlushInterval time.Duration
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Fired    *queue.Queue[model.FiredEvent]
	Hits     *queue.Queue[model.HitEvent]
	DryFires *queue.Queue[model.DryFireEvent]
	Reloads  *queue.Queue[model.ReloadEvent]
	Bolts    *queue.Queue[model.BoltEvent]
}

func newQueues() *queues {
	return &queues{
		Fired:    queue.New[model.FiredEvent](),
		Hits:     queue.New[model.HitEvent](),
		DryFires: queue.New[model.DryFireEvent](),
		Reloads:  queue.New[model.ReloadEvent](),
		Bolts:    queue.New[model.BoltEvent](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps      Dependencies
	log       *slog.Logger
	queues    *queues
	sessionID atomic.Uint64

	writeMu   sync.Mutex
	stopChan  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new GORM storage backend. A nil DB runs the backend in queue-only mode.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Manager == nil {
		deps.Manager = database.NewManager(zerolog.Nop())
	}
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	return &Backend{
		deps:   deps,
		log:    deps.Logger.With("component", "storage.gorm"),
		queues: newQueues(),
	}
}

// DB returns the underlying connection, nil in queue-only mode.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema and starts the DB writer goroutine.
// If no DB was injected via Dependencies, it connects through Open.
func (b *Backend) Init() error {
	if b.deps.DB == nil && b.deps.Open != nil {
		db, err := b.deps.Open()
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		b.deps.DB = db
	}
	if b.deps.DB != nil {
		if err := b.deps.Manager.Migrate(b.deps.DB); err != nil {
			return fmt.Errorf("failed to setup DB: %w", err)
		}
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.runWriter()
	return nil
}

// Close stops the DB writer goroutine after a final flush.
func (b *Backend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.stopChan == nil {
			return
		}
		close(b.stopChan)
		<-b.done
		err = b.flush()
	})
	return err
}

// StartSession inserts the session synchronously so events can reference its ID.
func (b *Backend) StartSession(s *core.Session) error {
	if b.deps.DB == nil {
		b.sessionID.Add(1)
		s.ID = uint(b.sessionID.Load())
		return nil
	}

	row := convert.CoreToSession(*s)
	row.ID = 0
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert new session: %w", err)
	}
	s.ID = row.ID
	b.sessionID.Store(uint64(row.ID))
	b.log.Info("session started", "id", row.ID, "name", row.Name)
	return nil
}

// RecordLoadout stores the profile a weapon of the current session uses.
func (b *Backend) RecordLoadout(name string, profile any) error {
	if b.deps.DB == nil {
		return nil
	}
	row, err := convert.CoreToLoadout(b.currentSession(), name, profile)
	if err != nil {
		return fmt.Errorf("encoding loadout %s: %w", name, err)
	}
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert loadout %s: %w", name, err)
	}
	return nil
}

// EndSession flushes every queue and stamps the session end time.
func (b *Backend) EndSession() error {
	id := b.currentSession()
	if b.deps.DB == nil || id == 0 {
		return nil
	}
	if err := b.flush(); err != nil {
		return err
	}
	if err := b.deps.DB.Model(&model.Session{}).Where("id = ?", id).Update("end_time", time.Now()).Error; err != nil {
		return fmt.Errorf("failed to close session %d: %w", id, err)
	}
	b.log.Info("session ended", "id", id)
	return nil
}

// RecordFiredEvent converts and queues a fired event.
func (b *Backend) RecordFiredEvent(e *core.FiredEvent) error {
	b.queues.Fired.Push(convert.CoreToFiredEvent(*e))
	return nil
}

// RecordHitEvent converts and queues a hit event.
func (b *Backend) RecordHitEvent(e *core.HitEvent) error {
	b.queues.Hits.Push(convert.CoreToHitEvent(*e))
	return nil
}

// RecordDryFireEvent converts and queues a dry fire event.
func (b *Backend) RecordDryFireEvent(e *core.DryFireEvent) error {
	b.queues.DryFires.Push(convert.CoreToDryFireEvent(*e))
	return nil
}

// RecordReloadEvent converts and queues a reload event.
func (b *Backend) RecordReloadEvent(e *core.ReloadEvent) error {
	b.queues.Reloads.Push(convert.CoreToReloadEvent(*e))
	return nil
}

// RecordBoltEvent converts and queues a bolt event.
func (b *Backend) RecordBoltEvent(e *core.BoltEvent) error {
	b.queues.Bolts.Push(convert.CoreToBoltEvent(*e))
	return nil
}

func (b *Backend) currentSession() uint {
	return uint(b.sessionID.Load())
}

// writeQueue writes all items from a queue to the database in a transaction.
// Failed batches are pushed back for the next cycle.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log *slog.Logger, prepare func([]T)) error {
	if q.Empty() {
		return nil
	}

	tx := db.Begin()
	items := q.GetAndEmpty()
	if prepare != nil {
		prepare(items)
	}
	if err := tx.Create(&items).Error; err != nil {
		log.Error("error creating rows", "table", name, "count", len(items), "error", err)
		tx.Rollback()
		q.Push(items...)
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tx.Commit().Error; err != nil {
		q.Push(items...)
		return fmt.Errorf("committing %s: %w", name, err)
	}
	log.Debug("wrote rows", "table", name, "count", len(items))
	return nil
}

// stamp returns a prepare func that sets the session ID on every row.
func stamp[T any](id uint, set func(*T, uint)) func([]T) {
	return func(items []T) {
		for i := range items {
			set(&items[i], id)
		}
	}
}

// flush drains every queue into the DB. Rows wait in their queues until a session exists.
func (b *Backend) flush() error {
	db := b.deps.DB
	id := b.currentSession()
	if db == nil || id == 0 {
		return nil
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	return errors.Join(
		writeQueue(db, b.queues.Fired, "fired events", b.log, stamp(id, func(e *model.FiredEvent, id uint) { e.SessionID = id })),
		writeQueue(db, b.queues.Hits, "hit events", b.log, stamp(id, func(e *model.HitEvent, id uint) { e.SessionID = id })),
		writeQueue(db, b.queues.DryFires, "dry fire events", b.log, stamp(id, func(e *model.DryFireEvent, id uint) { e.SessionID = id })),
		writeQueue(db, b.queues.Reloads, "reload events", b.log, stamp(id, func(e *model.ReloadEvent, id uint) { e.SessionID = id })),
		writeQueue(db, b.queues.Bolts, "bolt events", b.log, stamp(id, func(e *model.BoltEvent, id uint) { e.SessionID = id })),
	)
}

// runWriter periodically drains queues into the DB.
func (b *Backend) runWriter() {
	defer close(b.done)

	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
		case <-b.queues.Fired.Ready():
			if b.queues.Fired.Len() < earlyFlushThreshold {
				continue
			}
		}
		if err := b.flush(); err != nil {
			b.log.Warn("db write cycle failed", "error", err)
		}
	}
}
