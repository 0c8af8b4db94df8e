package weapon

import "github.com/go-gl/mathgl/mgl64"

const (
	defaultMuzzleAttachment = "muzzle"
	ejectAttachment         = "ejection_point"
)

// ShootEffects asks every viewer to play muzzle flash, shell eject and the view model
// animation. Empty names are skipped.
func (c *Controller) ShootEffects(w *Weapon, muzzle, eject, anim string) {
	if muzzle == "" && eject == "" && anim == "" {
		return
	}
	c.broadcast(w, CosmeticCall{
		Kind:     CosmeticShootEffects,
		WeaponID: w.ID(),
		Muzzle:   muzzle,
		Eject:    eject,
		Anim:     anim,
	})
}

// sendWeaponAnim plays a view model animation on every viewer.
func (c *Controller) sendWeaponAnim(w *Weapon, anim string) {
	if anim == "" {
		return
	}
	c.broadcast(w, CosmeticCall{Kind: CosmeticWeaponAnim, WeaponID: w.ID(), Anim: anim})
}

func (c *Controller) broadcast(w *Weapon, call CosmeticCall) {
	if c.deps.Broadcaster != nil {
		c.deps.Broadcaster.Broadcast(call)
		return
	}
	c.HandleCosmetic(w, call)
}

// HandleCosmetic executes a replicated cosmetic call for w on this viewer. Server-only
// controllers ignore it.
func (c *Controller) HandleCosmetic(w *Weapon, call CosmeticCall) {
	if w == nil || !c.deps.Realm.IsClient() {
		return
	}
	switch call.Kind {
	case CosmeticShootEffects:
		c.renderShootEffects(w, call)
	case CosmeticClientBullet:
		c.renderClientBullet(w, call)
	case CosmeticWeaponAnim:
		if c.deps.Effects != nil && call.Anim != "" {
			c.deps.Effects.PlayAnim(TargetViewModel, call.Anim)
		}
	}
}

func (c *Controller) renderShootEffects(w *Weapon, call CosmeticCall) {
	fx := c.deps.Effects
	if fx == nil {
		return
	}
	model := effectModel(w)

	if call.Muzzle != "" {
		target, attachment := MuzzleEffectData(w)
		fx.PlayParticle(call.Muzzle, target, attachment)
	}
	if call.Eject != "" {
		fx.PlayParticle(call.Eject, model, ejectAttachment)
	}
	if call.Anim != "" {
		fx.PlayAnim(TargetViewModel, call.Anim)
	}
}

// canSeeViewModel reports whether the local viewer is looking through w's view model.
func canSeeViewModel(w *Weapon) bool {
	return w.owner != nil && w.owner.IsLocalPawn() && w.owner.FirstPerson()
}

func effectModel(w *Weapon) EffectTarget {
	if canSeeViewModel(w) {
		return TargetViewModel
	}
	return TargetWorldModel
}

// MuzzleEffectData returns where the muzzle effect is emitted. An active muzzle
// attachment replaces the weapon model and its attachment point.
func MuzzleEffectData(w *Weapon) (EffectTarget, string) {
	target := effectModel(w)
	point := defaultMuzzleAttachment

	if m := w.Profile.Muzzle; m != nil {
		if m.EffectAttachment != "" {
			point = m.EffectAttachment
		}
		if target == TargetViewModel {
			target = TargetViewAttachment
		} else {
			target = TargetWorldAttachment
		}
	}
	return target, point
}

func (c *Controller) tracerEffects(w *Weapon, particle string, end mgl64.Vec3) {
	target, point := MuzzleEffectData(w)
	c.deps.Effects.PlayTracer(particle, target, point, end)
}

func (c *Controller) playSound(w *Weapon, name string) {
	if name == "" || c.deps.Effects == nil {
		return
	}
	var at mgl64.Vec3
	if w.owner != nil {
		at = w.owner.EyePosition()
	}
	c.deps.Effects.PlaySound(name, at)
}

func (c *Controller) screenShake(p ShakeParams) {
	if c.deps.Effects == nil || p.IsZero() {
		return
	}
	c.deps.Effects.ScreenShake(p)
}
