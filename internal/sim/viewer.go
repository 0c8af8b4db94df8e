package sim

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/weapon"
)

// EffectLog is a viewer's Effects service. It counts what would have been rendered.
type EffectLog struct {
	viewer string
	log    *slog.Logger

	mu     sync.Mutex
	counts map[string]int
}

// NewEffectLog creates an empty log for viewer.
func NewEffectLog(viewer string, log *slog.Logger) *EffectLog {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &EffectLog{
		viewer: viewer,
		log:    log.With("viewer", viewer),
		counts: make(map[string]int),
	}
}

func (e *EffectLog) count(kind, name string) {
	e.mu.Lock()
	e.counts[kind]++
	e.mu.Unlock()
	e.log.Debug("effect", "kind", kind, "name", name)
}

func (e *EffectLog) PlayParticle(name string, _ weapon.EffectTarget, _ string) {
	e.count("particle", name)
}

func (e *EffectLog) PlayTracer(name string, _ weapon.EffectTarget, _ string, _ mgl64.Vec3) {
	e.count("tracer", name)
}

func (e *EffectLog) PlaySound(name string, _ mgl64.Vec3) {
	e.count("sound", name)
}

func (e *EffectLog) ScreenShake(weapon.ShakeParams) {
	e.count("shake", "")
}

func (e *EffectLog) PlayAnim(_ weapon.EffectTarget, name string) {
	e.count("anim", name)
}

func (e *EffectLog) Impact(tr weapon.TraceResult) {
	if !tr.Hit {
		return
	}
	e.count("impact", tr.Surface)
}

// Counts returns a copy of the per-kind totals.
func (e *EffectLog) Counts() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.counts)
}

// viewer is one client-side controller receiving cosmetic calls.
type viewer struct {
	name string
	ctrl *weapon.Controller
	fx   *EffectLog
}

// Broadcaster fans cosmetic calls out to every registered viewer. Calls for weapons it
// does not know are dropped.
type Broadcaster struct {
	weapons map[string]*weapon.Weapon
	viewers []viewer
	sent    int
	dropped int
}

// NewBroadcaster creates a broadcaster with no viewers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{weapons: make(map[string]*weapon.Weapon)}
}

// Track makes w addressable by its ID.
func (b *Broadcaster) Track(w *weapon.Weapon) {
	b.weapons[w.ID()] = w
}

// AddViewer registers a client-side controller.
func (b *Broadcaster) AddViewer(name string, ctrl *weapon.Controller, fx *EffectLog) {
	b.viewers = append(b.viewers, viewer{name: name, ctrl: ctrl, fx: fx})
}

// Broadcast implements weapon.Broadcaster.
func (b *Broadcaster) Broadcast(call weapon.CosmeticCall) {
	w, ok := b.weapons[call.WeaponID]
	if !ok {
		b.dropped++
		return
	}
	b.sent++
	for _, v := range b.viewers {
		v.ctrl.HandleCosmetic(w, call)
	}
}

// Sent returns the delivered and dropped call counts.
func (b *Broadcaster) Sent() (sent, dropped int) {
	return b.sent, b.dropped
}

// prediction counts how often damage ran with prediction disabled.
type prediction struct {
	depth int
	calls int
}

func (p *prediction) Off() func() {
	p.depth++
	p.calls++
	return func() { p.depth-- }
}
