package weapon

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/swbase/swb/internal/weapon"

// Metrics counts combat activity. The zero value records nothing.
type Metrics struct {
	shots       metric.Int64Counter
	dryFires    metric.Int64Counter
	hits        metric.Int64Counter
	boltAborted metric.Int64Counter
}

// NewMetrics creates the weapon instruments on the global OTel meter (no-op if not
// configured).
func NewMetrics() (*Metrics, error) {
	m := otel.Meter(instrumentationName)
	out := &Metrics{}

	var err error
	out.shots, err = m.Int64Counter("weapon.shots",
		metric.WithDescription("Bullets fired on the authoritative side"))
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	out.dryFires, err = m.Int64Counter("weapon.dryfires",
		metric.WithDescription("Trigger pulls on an empty clip"))
	if err != nil {
		return nil, fmt.Errorf("creating dry fire counter: %w", err)
	}
	out.hits, err = m.Int64Counter("weapon.hits",
		metric.WithDescription("Bullets that damaged an entity"))
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}
	out.boltAborted, err = m.Int64Counter("weapon.bolt.aborted",
		metric.WithDescription("Bolt cycles abandoned because the weapon changed"))
	if err != nil {
		return nil, fmt.Errorf("creating bolt abort counter: %w", err)
	}
	return out, nil
}

func (m *Metrics) add(c metric.Int64Counter, w *Weapon) {
	if m == nil || c == nil {
		return
	}
	c.Add(context.Background(), 1, metric.WithAttributes(attribute.String("weapon", w.Name())))
}

func (m *Metrics) shot(w *Weapon) {
	if m != nil {
		m.add(m.shots, w)
	}
}

func (m *Metrics) dryFire(w *Weapon) {
	if m != nil {
		m.add(m.dryFires, w)
	}
}

func (m *Metrics) hit(w *Weapon) {
	if m != nil {
		m.add(m.hits, w)
	}
}

func (m *Metrics) boltAbort(w *Weapon) {
	if m != nil {
		m.add(m.boltAborted, w)
	}
}
