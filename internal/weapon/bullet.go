package weapon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/vmath"
)

// BulletRange is how far a bullet trace reaches.
const BulletRange = 999999

// momentumScale converts profile force into damage impulse.
const momentumScale = 100

// ShootBullet fires one bullet from the owner's eyes and returns the authoritative traces.
// The cosmetic trace is always broadcast; the damage trace only runs on the server.
func (c *Controller) ShootBullet(w *Weapon, spread, force, damage, size float64) []TraceResult {
	_, traces := c.shootBullet(w, spread, force, damage, size)
	return traces
}

func (c *Controller) shootBullet(w *Weapon, spread, force, damage, size float64) (mgl64.Vec3, []TraceResult) {
	if !w.Live() {
		return mgl64.Vec3{}, nil
	}
	owner := w.owner
	eye := owner.EyePosition()

	forward := vmath.Forward(owner.EyeRotation())
	if spread != 0 {
		jitter := c.randomUnit().Add(c.randomUnit()).Add(c.randomUnit()).Add(c.randomUnit())
		forward = forward.Add(jitter.Mul(spread * 0.25)).Normalize()
	}
	end := eye.Add(forward.Mul(BulletRange))

	c.ShootClientBullet(w, eye, end, size)

	if !c.deps.Realm.IsServer() {
		return end, nil
	}

	traces := c.TraceBullet(w, eye, end, size)
	for _, tr := range traces {
		if !tr.HitEntity() {
			continue
		}
		c.applyDamage(w, tr, DamageInfo{
			Position:   tr.EndPos,
			Force:      forward.Mul(momentumScale * force),
			Damage:     damage,
			AttackerID: owner.ID(),
			WeaponID:   w.ID(),
			WeaponName: w.Name(),
			Trace:      tr,
		})
	}
	return end, traces
}

// applyDamage hands the hit to the damage service with prediction disabled, so reactive
// effects on the victim are not culled.
func (c *Controller) applyDamage(w *Weapon, tr TraceResult, info DamageInfo) {
	if c.deps.Damager == nil {
		return
	}
	if c.deps.Prediction != nil {
		restore := c.deps.Prediction.Off()
		if restore != nil {
			defer restore()
		}
	}
	c.deps.Damager.ApplyDamage(tr.Entity, info)

	c.deps.Metrics.hit(w)
	c.publish(core.CommandHit, core.HitEvent{
		SessionID:  c.deps.SessionID,
		Time:       c.deps.Clock(),
		SimTime:    c.deps.Scheduler.Now(),
		ShooterID:  info.AttackerID,
		VictimID:   tr.Entity.ID(),
		WeaponID:   info.WeaponID,
		WeaponName: info.WeaponName,
		Damage:     info.Damage,
		Distance:   tr.StartPos.Sub(tr.EndPos).Len(),
		Surface:    tr.Surface,
		Position:   core.PositionFromVec(tr.EndPos),
	})
}

// TraceBullet casts one bullet ray that ignores the shooter and the weapon itself. Water
// is only hit when the ray starts above it. The result holds one element per surface
// the bullet interacts with.
func (c *Controller) TraceBullet(w *Weapon, start, end mgl64.Vec3, radius float64) []TraceResult {
	if c.deps.Physics == nil || w == nil {
		return nil
	}
	ignore := []string{w.ID()}
	if w.owner != nil {
		ignore = append(ignore, w.owner.ID())
	}
	inWater := c.deps.Physics.IsPointWater(start)

	tr := c.deps.Physics.Trace(TraceQuery{
		Start:       start,
		End:         end,
		Radius:      radius,
		Ignore:      ignore,
		HitWater:    !inWater,
		UseHitboxes: true,
	})
	return []TraceResult{tr}
}

// ShootClientBullet asks every viewer to trace the bullet for impact and tracer visuals.
func (c *Controller) ShootClientBullet(w *Weapon, start, end mgl64.Vec3, radius float64) {
	c.broadcast(w, CosmeticCall{
		Kind:     CosmeticClientBullet,
		WeaponID: w.ID(),
		Start:    start,
		End:      end,
		Radius:   radius,
	})
}

func (c *Controller) renderClientBullet(w *Weapon, call CosmeticCall) {
	if c.deps.Effects == nil {
		return
	}
	tracer := w.Profile.Primary.BulletTracerParticle
	for _, tr := range c.TraceBullet(w, call.Start, call.End, call.Radius) {
		c.deps.Effects.Impact(tr)

		if tracer != "" && c.deps.Rand.IntN(2) == 0 {
			c.tracerEffects(w, tracer, tr.EndPos)
		}
	}
}

// randomUnit returns a direction uniformly distributed on the unit sphere.
func (c *Controller) randomUnit() mgl64.Vec3 {
	z := c.deps.Rand.Float64()*2 - 1
	theta := c.deps.Rand.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(theta), r * math.Sin(theta), z}
}
