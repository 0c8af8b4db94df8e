// Package websocket streams combat events to a remote collector as JSON envelopes.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model/core"
)

// Backend streams session data over WebSocket. Session start and end wait for a
// server ack; events are fire-and-forget. Tallies are kept locally for Summary.
type Backend struct {
	conn *connection
	cfg  config.WebSocketConfig
	seq  atomic.Uint64

	mu        sync.Mutex
	session   *core.Session
	summary   core.SessionSummary
	idCounter uint
}

// New creates a new WebSocket storage backend.
func New(cfg config.WebSocketConfig, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		conn: newConnection(log.With("component", "storage.websocket")),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Close disconnects from the WebSocket server.
func (b *Backend) Close() error {
	return b.conn.close()
}

// Dropped reports messages lost to a full send buffer.
func (b *Backend) Dropped() uint64 {
	return b.conn.dropped.Load()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func (b *Backend) marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := Envelope{Type: msgType, Seq: b.seq.Add(1), Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// sendEnvelope marshals the payload into an Envelope and pushes it
// to the write loop (fire-and-forget).
func (b *Backend) sendEnvelope(msgType string, payload any) error {
	data, err := b.marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	b.conn.send(data)
	return nil
}

// StartSession assigns a local ID, announces the session and waits for the ack.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	b.idCounter++
	s.ID = b.idCounter
	b.session = s
	b.summary = core.NewSessionSummary(*s)
	b.mu.Unlock()

	data, err := b.marshalEnvelope(TypeSessionStart, SessionStartPayload{Session: s})
	if err != nil {
		return err
	}

	// Cache for reconnect replay.
	b.conn.mu.Lock()
	b.conn.cachedStart = data
	b.conn.mu.Unlock()

	return b.conn.sendAndWait(data, TypeSessionStart, ackTimeout)
}

// EndSession sends session_end with the local tallies and waits for the ack.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	if b.session == nil {
		b.mu.Unlock()
		return nil
	}
	end := SessionEndPayload{SessionID: b.session.ID, EndTime: time.Now(), Summary: b.summary}
	end.Summary.Session = *b.session
	b.session = nil
	b.mu.Unlock()

	data, err := b.marshalEnvelope(TypeSessionEnd, end)
	if err == nil {
		err = b.conn.sendAndWait(data, TypeSessionEnd, ackTimeout)
	}

	// Clear cached state regardless of error.
	b.conn.mu.Lock()
	b.conn.cachedStart = nil
	b.conn.mu.Unlock()

	return err
}

// Summary returns the locally kept tallies of the current session.
func (b *Backend) Summary() core.SessionSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.summary
	out.ByWeapon = make(map[string]core.WeaponStats, len(b.summary.ByWeapon))
	for k, v := range b.summary.ByWeapon {
		out.ByWeapon[k] = v
	}
	return out
}

func (b *Backend) tally(weapon string, fn func(*core.WeaponStats)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.summary.ByWeapon != nil {
		b.summary.Add(weapon, fn)
	}
}

func (b *Backend) RecordFiredEvent(e *core.FiredEvent) error {
	b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Shots++ })
	return b.sendEnvelope(TypeFired, e)
}

func (b *Backend) RecordHitEvent(e *core.HitEvent) error {
	b.tally(e.WeaponName, func(w *core.WeaponStats) {
		w.Hits++
		w.Damage += e.Damage
	})
	return b.sendEnvelope(TypeHit, e)
}

func (b *Backend) RecordDryFireEvent(e *core.DryFireEvent) error {
	b.tally(e.WeaponName, func(w *core.WeaponStats) { w.DryFires++ })
	return b.sendEnvelope(TypeDryFire, e)
}

func (b *Backend) RecordReloadEvent(e *core.ReloadEvent) error {
	if e.Phase == core.ReloadFinished {
		b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Reloads++ })
	}
	return b.sendEnvelope(TypeReload, e)
}

func (b *Backend) RecordBoltEvent(e *core.BoltEvent) error {
	if e.Phase == core.BoltFinished {
		b.tally(e.WeaponName, func(w *core.WeaponStats) { w.Bolts++ })
	}
	return b.sendEnvelope(TypeBolt, e)
}
