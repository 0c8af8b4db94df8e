// Package memory stores a session's combat events in memory and exports them as
// (optionally gzipped) JSON when the session ends.
package memory

import (
	"sync"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model/core"
	v1 "github.com/swbase/swb/internal/storage/memory/export/v1"
)

// Backend stores session data in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session
	data    v1.SessionData

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session and assigns its ID.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	s.ID = b.idCounter
	b.session = s
	b.data = v1.SessionData{
		Session: *s,
		Summary: core.NewSessionSummary(*s),
	}
	return nil
}

// EndSession finalizes and exports the session data
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	b.data.Session = *b.session
	b.data.Summary.Session = *b.session
	return b.exportJSON()
}

// Summary returns a copy of the running tallies.
func (b *Backend) Summary() core.SessionSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := b.data.Summary
	out.ByWeapon = make(map[string]core.WeaponStats, len(b.data.Summary.ByWeapon))
	for k, v := range b.data.Summary.ByWeapon {
		out.ByWeapon[k] = v
	}
	if b.session != nil {
		out.Session = *b.session
	}
	return out
}

// ExportedFilePath returns the path written by the last EndSession.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// RecordFiredEvent records a fired event
func (b *Backend) RecordFiredEvent(e *core.FiredEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Fired = append(b.data.Fired, *e)
	b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Shots++ })
	return nil
}

// RecordHitEvent records a hit event
func (b *Backend) RecordHitEvent(e *core.HitEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Hits = append(b.data.Hits, *e)
	b.tally(e.WeaponName, func(w *core.WeaponStats) {
		w.Hits++
		w.Damage += e.Damage
	})
	return nil
}

// RecordDryFireEvent records a dry fire
func (b *Backend) RecordDryFireEvent(e *core.DryFireEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.DryFires = append(b.data.DryFires, *e)
	b.tally(e.WeaponName, func(w *core.WeaponStats) { w.DryFires++ })
	return nil
}

// RecordReloadEvent records a reload phase. Only completed reloads are tallied.
func (b *Backend) RecordReloadEvent(e *core.ReloadEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Reloads = append(b.data.Reloads, *e)
	if e.Phase == core.ReloadFinished {
		b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Reloads++ })
	}
	return nil
}

// RecordBoltEvent records a bolt phase. Only completed cycles are tallied.
func (b *Backend) RecordBoltEvent(e *core.BoltEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Bolts = append(b.data.Bolts, *e)
	if e.Phase == core.BoltFinished {
		b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Bolts++ })
	}
	return nil
}

// tally requires b.mu held. Events before StartSession are kept but not counted.
func (b *Backend) tally(weapon string, fn func(*core.WeaponStats)) {
	if b.data.Summary.ByWeapon == nil {
		return
	}
	b.data.Summary.Add(weapon, fn)
}
