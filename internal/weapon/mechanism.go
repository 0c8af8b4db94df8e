package weapon

// mechanism holds the behaviour that differs between firing mechanisms.
type mechanism struct {
	// spread returns the cone used for one trigger pull.
	spread func(clip *ClipInfo, s *AttackState) float64
	// eject handles shell ejection for a successful shot and returns the eject particle
	// ShootEffects should still emit.
	eject func(c *Controller, w *Weapon, particle string) string
}

var mechanisms = map[Mechanism]mechanism{
	MechanismStandard: {
		spread: zoomedSpread,
		eject: func(_ *Controller, _ *Weapon, particle string) string {
			return particle
		},
	},
	MechanismShotgun: {
		spread: func(clip *ClipInfo, _ *AttackState) float64 {
			return clip.Spread
		},
		eject: func(c *Controller, w *Weapon, particle string) string {
			if c.deps.Realm.IsServer() {
				c.ejectShell(w, particle)
			}
			return ""
		},
	},
}

func mechanismOf(m Mechanism) mechanism {
	if b, ok := mechanisms[m]; ok {
		return b
	}
	return mechanisms[MechanismStandard]
}

// zoomedSpread quarters the spread while aiming down sights.
func zoomedSpread(clip *ClipInfo, s *AttackState) float64 {
	if s.Aiming {
		return clip.Spread / 4
	}
	return clip.Spread
}

// ejectShell emits the shell particle after the profile's shell eject delay.
func (c *Controller) ejectShell(w *Weapon, particle string) {
	if particle == "" {
		return
	}
	tok := w.Token()
	c.deps.Scheduler.After(w.Profile.ShellEjectDelay, func() {
		if !w.Valid(tok) {
			return
		}
		c.ShootEffects(w, "", particle, "")
	})
}
