// Package worker connects dispatcher commands to storage and metrics.
package worker

import (
	"fmt"
	"log/slog"

	"github.com/swbase/swb/internal/influx"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/storage"
)

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Logger *slog.Logger
	Influx *influx.Manager // optional
}

// Manager turns published combat events into backend records and metric points.
type Manager struct {
	deps    Dependencies
	backend storage.Backend
	log     *slog.Logger
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, backend storage.Backend) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{
		deps:    deps,
		backend: backend,
		log:     deps.Logger.With("component", "worker"),
	}
}

// BeginSession starts a backend session and stores the loadout profiles when the
// backend supports it. s.ID is assigned by the backend.
func (m *Manager) BeginSession(s *core.Session, loadouts map[string]any) error {
	if err := m.backend.StartSession(s); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	m.log.Info("session started", "id", s.ID, "name", s.Name, "weapons", s.Weapons)

	rec, ok := m.backend.(storage.LoadoutRecorder)
	if !ok {
		return nil
	}
	for _, name := range s.Weapons {
		profile, ok := loadouts[name]
		if !ok {
			continue
		}
		if err := rec.RecordLoadout(name, profile); err != nil {
			return fmt.Errorf("recording loadout: %w", err)
		}
	}
	return nil
}

// FinishSession ends the backend session.
func (m *Manager) FinishSession() error {
	if err := m.backend.EndSession(); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	if e, ok := m.backend.(storage.Exporter); ok && e.ExportedFilePath() != "" {
		m.log.Info("session exported", "path", e.ExportedFilePath())
	}
	return nil
}

// Summary returns the backend's running tallies.
// Returns false if the backend doesn't support summaries.
func (m *Manager) Summary() (core.SessionSummary, bool) {
	if s, ok := m.backend.(storage.Summarizer); ok {
		return s.Summary(), true
	}
	return core.SessionSummary{}, false
}
