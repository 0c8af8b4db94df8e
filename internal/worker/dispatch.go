package worker

import (
	"errors"
	"fmt"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/swbase/swb/internal/dispatcher"
	"github.com/swbase/swb/internal/influx"
	"github.com/swbase/swb/internal/model/core"
)

// RegisterHandlers registers all combat event handlers with the dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Shots and hits arrive every tick while firing - buffered
	d.Register(core.CommandFired, m.handleFired, dispatcher.Buffered(5000), dispatcher.Logged())
	d.Register(core.CommandHit, m.handleHit, dispatcher.Buffered(5000), dispatcher.Logged())

	// Lifecycle events - low volume
	d.Register(core.CommandDryFire, m.handleDryFire, dispatcher.Buffered(500), dispatcher.Logged())
	d.Register(core.CommandReload, m.handleReload, dispatcher.Buffered(500), dispatcher.Logged())
	d.Register(core.CommandBolt, m.handleBolt, dispatcher.Buffered(500), dispatcher.Logged())
}

// payload accepts an event struct by value or pointer and stamps the dispatch time
// when the publisher left it empty.
func payload[T any](e dispatcher.Event, stamp func(*T)) (*T, error) {
	var out *T
	switch p := e.Payload.(type) {
	case T:
		out = &p
	case *T:
		out = p
	}
	if out == nil {
		return nil, fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Command)
	}
	stamp(out)
	return out, nil
}

func (m *Manager) writePoint(p *influxdb2_write.Point) error {
	if m.deps.Influx == nil {
		return nil
	}
	return m.deps.Influx.WritePoint(m.deps.Influx.CombatBucket(), p)
}

func (m *Manager) handleFired(e dispatcher.Event) (any, error) {
	ev, err := payload(e, func(p *core.FiredEvent) {
		if p.Time.IsZero() {
			p.Time = e.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	return nil, errors.Join(m.backend.RecordFiredEvent(ev), m.writePoint(influx.FiredPoint(ev)))
}

func (m *Manager) handleHit(e dispatcher.Event) (any, error) {
	ev, err := payload(e, func(p *core.HitEvent) {
		if p.Time.IsZero() {
			p.Time = e.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	return nil, errors.Join(m.backend.RecordHitEvent(ev), m.writePoint(influx.HitPoint(ev)))
}

func (m *Manager) handleDryFire(e dispatcher.Event) (any, error) {
	ev, err := payload(e, func(p *core.DryFireEvent) {
		if p.Time.IsZero() {
			p.Time = e.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	return nil, errors.Join(m.backend.RecordDryFireEvent(ev), m.writePoint(influx.DryFirePoint(ev)))
}

func (m *Manager) handleReload(e dispatcher.Event) (any, error) {
	ev, err := payload(e, func(p *core.ReloadEvent) {
		if p.Time.IsZero() {
			p.Time = e.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	return nil, errors.Join(m.backend.RecordReloadEvent(ev), m.writePoint(influx.ReloadPoint(ev)))
}

func (m *Manager) handleBolt(e dispatcher.Event) (any, error) {
	ev, err := payload(e, func(p *core.BoltEvent) {
		if p.Time.IsZero() {
			p.Time = e.Timestamp
		}
	})
	if err != nil {
		return nil, err
	}
	return nil, errors.Join(m.backend.RecordBoltEvent(ev), m.writePoint(influx.BoltPoint(ev)))
}
