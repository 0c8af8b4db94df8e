package storage

import "github.com/swbase/swb/internal/model/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management. StartSession assigns the session ID.
	StartSession(s *core.Session) error
	EndSession() error

	// Event recording
	RecordFiredEvent(e *core.FiredEvent) error
	RecordHitEvent(e *core.HitEvent) error
	RecordDryFireEvent(e *core.DryFireEvent) error
	RecordReloadEvent(e *core.ReloadEvent) error
	RecordBoltEvent(e *core.BoltEvent) error
}

// Summarizer is an optional interface for backends that can report the running
// tallies of the current session.
type Summarizer interface {
	Summary() core.SessionSummary
}

// Exporter is an optional interface for backends that write a session file.
type Exporter interface {
	ExportedFilePath() string
}

// LoadoutRecorder is an optional interface for backends that persist the weapon
// profiles a session was run with.
type LoadoutRecorder interface {
	RecordLoadout(name string, profile any) error
}
