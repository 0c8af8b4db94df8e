package sim

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/weapon"
)

const (
	// RespawnDelay is how long a destroyed body stays down.
	RespawnDelay = 3.0

	surfaceGround = "dirt"
	surfaceWater  = "water"
	surfaceFloor  = "sand"
)

// Body is a hittable sphere.
type Body interface {
	weapon.Entity
	Bounds() (center mgl64.Vec3, radius float64)
	Surface() string
	// TakeDamage subtracts dmg and reports whether the body went down.
	TakeDamage(dmg, now float64) bool
	respawn(now float64) bool
}

// Target is a static hit sphere.
type Target struct {
	Name      string
	Center    mgl64.Vec3
	Radius    float64
	MaxHealth float64
	Health    float64
	Material  string

	downAt float64
}

// NewTarget creates a full-health target.
func NewTarget(name string, center mgl64.Vec3, radius, health float64) *Target {
	return &Target{
		Name:      name,
		Center:    center,
		Radius:    radius,
		MaxHealth: health,
		Health:    health,
		Material:  "metal",
	}
}

func (t *Target) ID() string      { return t.Name }
func (t *Target) IsValid() bool   { return t.Health > 0 }
func (t *Target) Surface() string { return t.Material }

func (t *Target) Bounds() (mgl64.Vec3, float64) {
	return t.Center, t.Radius
}

func (t *Target) TakeDamage(dmg, now float64) bool {
	if t.Health <= 0 {
		return false
	}
	t.Health -= dmg
	if t.Health > 0 {
		return false
	}
	t.Health = 0
	t.downAt = now
	return true
}

func (t *Target) respawn(now float64) bool {
	if t.Health > 0 || now-t.downAt < RespawnDelay {
		return false
	}
	t.Health = t.MaxHealth
	return true
}

// Pool is an axis-aligned water volume whose surface is flush with the ground.
type Pool struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (p *Pool) contains(v mgl64.Vec3) bool {
	return v[0] >= p.Min[0] && v[0] <= p.Max[0] &&
		v[1] >= p.Min[1] && v[1] <= p.Max[1] &&
		v[2] >= p.Min[2] && v[2] < p.Max[2]
}

func (p *Pool) coversXY(v mgl64.Vec3) bool {
	return v[0] >= p.Min[0] && v[0] <= p.Max[0] && v[1] >= p.Min[1] && v[1] <= p.Max[1]
}

// World is the physics and damage service of the simulation: spheres over a flat
// ground at z=0 with an optional water pool cut into it.
type World struct {
	bodies []Body
	pool   *Pool
	log    *slog.Logger
	clock  float64

	damageDealt float64
	downs       int
}

// NewWorld creates an empty world.
func NewWorld(pool *Pool, log *slog.Logger) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &World{pool: pool, log: log.With("component", "world")}
}

// Add registers a hittable body.
func (w *World) Add(b Body) {
	w.bodies = append(w.bodies, b)
}

// Bodies returns the registered bodies.
func (w *World) Bodies() []Body {
	return w.bodies
}

// Find returns the body with id, or nil.
func (w *World) Find(id string) Body {
	for _, b := range w.bodies {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// IsPointWater reports whether p is inside the pool.
func (w *World) IsPointWater(p mgl64.Vec3) bool {
	return w.pool != nil && w.pool.contains(p)
}

// Trace sweeps a sphere of q.Radius from q.Start to q.End and returns the first hit.
// Down bodies and ignored IDs are skipped. Water stops the trace only when q.HitWater is
// set; otherwise the ray continues to the pool floor.
func (w *World) Trace(q weapon.TraceQuery) weapon.TraceResult {
	dir := q.End.Sub(q.Start)
	length := dir.Len()
	res := weapon.TraceResult{StartPos: q.Start, EndPos: q.End, Fraction: 1}
	if length == 0 {
		return res
	}
	res.Direction = dir.Mul(1 / length)

	best := math.Inf(1)
	for _, b := range w.bodies {
		if !b.IsValid() || slices.Contains(q.Ignore, b.ID()) {
			continue
		}
		center, radius := b.Bounds()
		t, ok := sweepSphere(q.Start, dir, center, radius+q.Radius)
		if !ok || t >= best {
			continue
		}
		best = t
		end := q.Start.Add(dir.Mul(t))
		res = weapon.TraceResult{
			Hit:       true,
			Entity:    b,
			StartPos:  q.Start,
			EndPos:    end,
			Normal:    normalOf(end.Sub(center)),
			Direction: res.Direction,
			Surface:   b.Surface(),
			Fraction:  t,
		}
	}

	if t, surface, ok := w.traceGround(q, dir); ok && t < best {
		res = weapon.TraceResult{
			Hit:       true,
			StartPos:  q.Start,
			EndPos:    q.Start.Add(dir.Mul(t)),
			Normal:    mgl64.Vec3{0, 0, 1},
			Direction: res.Direction,
			Surface:   surface,
			Fraction:  t,
		}
	}
	return res
}

// traceGround intersects the ground plane, or the pool surface and floor.
func (w *World) traceGround(q weapon.TraceQuery, dir mgl64.Vec3) (float64, string, bool) {
	if dir[2] == 0 {
		return 0, "", false
	}
	if q.Start[2] > 0 && dir[2] < 0 {
		t := -q.Start[2] / dir[2]
		if t > 1 {
			return 0, "", false
		}
		at := q.Start.Add(dir.Mul(t))
		if w.pool == nil || !w.pool.coversXY(at) {
			return t, surfaceGround, true
		}
		if q.HitWater {
			return t, surfaceWater, true
		}
	}
	if w.pool != nil && dir[2] < 0 && q.Start[2] > w.pool.Min[2] {
		t := (w.pool.Min[2] - q.Start[2]) / dir[2]
		if t >= 0 && t <= 1 && w.pool.coversXY(q.Start.Add(dir.Mul(t))) {
			return t, surfaceFloor, true
		}
	}
	return 0, "", false
}

// ApplyDamage records a bullet hit on the authoritative side.
func (w *World) ApplyDamage(target weapon.Entity, info weapon.DamageInfo) {
	b, ok := target.(Body)
	if !ok {
		w.log.Warn("damage on unknown entity", "entity", fmt.Sprintf("%T", target))
		return
	}
	w.damageDealt += info.Damage
	if b.TakeDamage(info.Damage, w.clock) {
		w.downs++
		w.log.Info("body down", "id", b.ID(), "attacker", info.AttackerID, "weapon", info.WeaponName)
	}
}

// Respawn sets the world clock and revives bodies whose down time has passed.
func (w *World) Respawn(now float64) {
	w.clock = now
	for _, b := range w.bodies {
		if b.respawn(now) {
			w.log.Debug("body respawned", "id", b.ID())
		}
	}
}

// Stats returns the total damage applied and the number of bodies taken down.
func (w *World) Stats() (damage float64, downs int) {
	return w.damageDealt, w.downs
}

// sweepSphere returns the first fraction along start+t*dir, t in [0,1], that touches the
// sphere. A start inside the sphere hits at zero.
func sweepSphere(start, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	f := start.Sub(center)
	c := f.Dot(f) - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := dir.Dot(dir)
	b := 2 * f.Dot(dir)
	disc := b*b - 4*a*c
	if disc < 0 || b >= 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func normalOf(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return v.Normalize()
}
