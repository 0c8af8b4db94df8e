package weapon

import "github.com/swbase/swb/internal/model/core"

// Reload starts a reload if the clip is not full and reserve ammunition is available.
// The clip is refilled when ReloadTime elapses, provided the weapon is still the same
// live incarnation.
func (c *Controller) Reload(w *Weapon) bool {
	if !w.Live() {
		return false
	}
	s := w.State
	clipSize := w.Profile.Primary.ClipSize
	if s.Reloading || s.InBoltBack || s.Ammo >= clipSize || s.Reserve <= 0 {
		return false
	}

	s.Reloading = true
	s.BurstCount = 0
	c.sendWeaponAnim(w, w.Profile.ReloadAnim)
	c.playSound(w, w.Profile.ReloadSound)
	c.publishReload(w, core.ReloadStarted)

	tok := w.Token()
	c.deps.Scheduler.After(w.Profile.ReloadTime, func() {
		if !w.Valid(tok) {
			return
		}
		c.finishReload(w)
	})
	return true
}

func (c *Controller) finishReload(w *Weapon) {
	s := w.State
	need := w.Profile.Primary.ClipSize - s.Ammo
	take := min(need, s.Reserve)
	if take > 0 {
		s.Ammo += take
		s.Reserve -= take
	}
	s.Reloading = false
	s.BarrelHeat = 0
	c.publishReload(w, core.ReloadFinished)
}

func (c *Controller) publishReload(w *Weapon, phase string) {
	c.publish(core.CommandReload, core.ReloadEvent{
		SessionID:  c.deps.SessionID,
		Time:       c.deps.Clock(),
		SimTime:    c.deps.Scheduler.Now(),
		ShooterID:  w.owner.ID(),
		WeaponID:   w.ID(),
		WeaponName: w.Name(),
		Phase:      phase,
		Ammo:       w.State.Ammo,
		Reserve:    w.State.Reserve,
	})
}
