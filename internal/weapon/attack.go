package weapon

import "github.com/swbase/swb/internal/model/core"

const ownerAttackAnim = "b_attack"

// BarrelSmokeRatio is the share of the clip that must be fired before the barrel smokes.
const BarrelSmokeRatio = 0.75

// Attack fires one trigger pull of clip immediately.
func (c *Controller) Attack(w *Weapon, clip *ClipInfo, primary bool) {
	if clip == nil || !w.Live() {
		return
	}
	s := w.State
	if s.Reloading || s.Tucked {
		return
	}

	s.resetTimers()

	if !s.takeAmmo(1) {
		c.dryFire(w, clip)
		return
	}

	eject := clip.BulletEjectParticle
	if bolt := w.Profile.BoltBack; bolt.Enabled() {
		eject = ""
		if s.Ammo > 0 && c.deps.Realm.IsServer() {
			c.boltBack(w, clip)
		}
	}

	mech := mechanismOf(w.Profile.Mechanism)
	eject = mech.eject(c, w, eject)

	owner := w.owner
	owner.SetAnimParameter(ownerAttackAnim)
	if owner.IsLocalPawn() {
		c.screenShake(clip.ScreenShake)
	}

	c.ShootEffects(w, clip.MuzzleFlashParticle, eject, shootAnimation(clip, s))

	if c.deps.Realm.IsServer() && w.Profile.BarrelSmoking {
		s.BarrelHeat++
		if float64(s.BarrelHeat) >= float64(clip.ClipSize)*BarrelSmokeRatio {
			c.ShootEffects(w, clip.BarrelSmokeParticle, "", "")
		}
	}

	c.playSound(w, clip.ShootSound)

	if c.deps.Realm.IsServer() {
		c.fireBullets(w, clip, primary, mech.spread(clip, s))
	}

	s.RecoilPending = true
}

// DelayedAttack plays the pre-fire animation now and fires after delay seconds if the
// weapon is still the same live incarnation. An empty clip dry fires at once. The fire timers are set to -delay so the
// next ready check is measured from the moment the bullets leave.
func (c *Controller) DelayedAttack(w *Weapon, clip *ClipInfo, primary bool, delay float64) {
	if clip == nil || !w.Live() {
		return
	}
	s := w.State
	if s.Reloading || s.Tucked {
		return
	}

	s.resetTimers()
	if s.Ammo <= 0 {
		c.dryFire(w, clip)
		return
	}
	s.SincePrimary.Rewind(delay)
	s.SinceSecondary.Rewind(delay)
	s.SinceAttack.Rewind(delay)

	w.owner.SetAnimParameter(ownerAttackAnim)
	c.ShootEffects(w, "", "", shootAnimation(clip, s))

	tok := w.Token()
	c.deps.Scheduler.After(delay, func() {
		if !w.Valid(tok) {
			c.log.Debug("delayed attack dropped", "weapon", w.Name())
			return
		}
		if !s.takeAmmo(1) {
			return
		}

		if w.owner.IsLocalPawn() {
			c.screenShake(clip.ScreenShake)
		}
		c.ShootEffects(w, clip.MuzzleFlashParticle, clip.BulletEjectParticle, "")
		c.playSound(w, clip.ShootSound)

		if c.deps.Realm.IsServer() {
			c.fireBullets(w, clip, primary, mechanismOf(w.Profile.Mechanism).spread(clip, s))
		}
		s.RecoilPending = true
	})
}

func (c *Controller) dryFire(w *Weapon, clip *ClipInfo) {
	c.playSound(w, clip.DryFireSound)
	c.deps.Metrics.dryFire(w)

	auto := w.Profile.AutoReload
	c.publish(core.CommandDryFire, core.DryFireEvent{
		SessionID:  c.deps.SessionID,
		Time:       c.deps.Clock(),
		SimTime:    c.deps.Scheduler.Now(),
		ShooterID:  w.owner.ID(),
		WeaponID:   w.ID(),
		WeaponName: w.Name(),
		AutoReload: auto,
	})

	if auto {
		w.State.unblockTimers()
		c.Reload(w)
	}
}

// fireBullets delivers clip.Bullets authoritative shots and records them.
func (c *Controller) fireBullets(w *Weapon, clip *ClipInfo, primary bool, spread float64) {
	for i := 0; i < clip.Bullets; i++ {
		start := w.owner.EyePosition()
		end, traces := c.shootBullet(w, spread, clip.Force, clip.Damage, clip.BulletSize)

		hit := false
		for _, tr := range traces {
			if tr.HitEntity() {
				hit = true
				break
			}
		}

		c.deps.Metrics.shot(w)
		c.publish(core.CommandFired, core.FiredEvent{
			SessionID:  c.deps.SessionID,
			Time:       c.deps.Clock(),
			SimTime:    c.deps.Scheduler.Now(),
			ShooterID:  w.owner.ID(),
			WeaponID:   w.ID(),
			WeaponName: w.Name(),
			Primary:    primary,
			FiringMode: clip.FiringType.String(),
			Spread:     spread,
			AmmoLeft:   w.State.Ammo,
			StartPos:   core.PositionFromVec(start),
			EndPos:     core.PositionFromVec(end),
			Hit:        hit,
		})
	}
}

// shootAnimation picks the empty-clip variant once the last round is gone.
func shootAnimation(clip *ClipInfo, s *AttackState) string {
	if s.Ammo == 0 && clip.ShootEmptyAnim != "" {
		return clip.ShootEmptyAnim
	}
	return clip.ShootAnim
}

func (c *Controller) publish(command string, payload any) {
	if c.deps.Events == nil {
		return
	}
	c.deps.Events.Publish(command, payload)
}
