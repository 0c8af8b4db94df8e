package weapon

import "github.com/swbase/swb/internal/model/core"

// boltBack runs the bolt cycle after a shot. InBoltBack blocks attacks until the cycle
// finishes. Every resume point checks the identity token first.
func (c *Controller) boltBack(w *Weapon, clip *ClipInfo) {
	bolt := w.Profile.BoltBack
	particle := clip.BulletEjectParticle
	tok := w.Token()
	s := w.State

	s.InBoltBack = true
	w.boltCycle = tok
	c.publishBolt(w, core.BoltStarted)

	c.resumeBolt(w, tok, RealRPM(clip.RPM), func() {
		c.sendWeaponAnim(w, bolt.Anim)
		c.publishBolt(w, core.BoltBack)

		c.resumeBolt(w, tok, bolt.EjectDelay, func() {
			c.ShootEffects(w, "", particle, "")
			c.publishBolt(w, core.BoltEjected)

			c.resumeBolt(w, tok, bolt.Time-bolt.EjectDelay, func() {
				s.InBoltBack = false
				c.publishBolt(w, core.BoltFinished)
			})
		})
	})
}

func (c *Controller) resumeBolt(w *Weapon, tok Token, delay float64, step func()) {
	c.deps.Scheduler.After(delay, func() {
		if w.Valid(tok) {
			step()
			return
		}
		c.deps.Metrics.boltAbort(w)
		// A newer cycle owns the flag once it has started.
		if c.deps.BoltAbort == BoltAbortClear && w.boltCycle == tok {
			w.State.InBoltBack = false
		}
		c.log.Debug("bolt cycle abandoned", "weapon", w.Name(), "inBoltBack", w.State.InBoltBack)
		c.publishBolt(w, core.BoltAborted)
	})
}

func (c *Controller) publishBolt(w *Weapon, phase string) {
	var shooter string
	if w.owner != nil {
		shooter = w.owner.ID()
	}
	c.publish(core.CommandBolt, core.BoltEvent{
		SessionID:  c.deps.SessionID,
		Time:       c.deps.Clock(),
		SimTime:    c.deps.Scheduler.Now(),
		ShooterID:  shooter,
		WeaponID:   w.ID(),
		WeaponName: w.Name(),
		Phase:      phase,
	})
}
