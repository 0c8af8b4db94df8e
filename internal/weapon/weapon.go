package weapon

import "github.com/google/uuid"

// Weapon is one weapon instance: its profile, its owned attack state and its identity.
type Weapon struct {
	Profile Profile
	State   *AttackState

	token     Token
	owner     Owner
	equipped  bool
	destroyed bool
	// ownerDown is set once the owner's death has retired the incarnation.
	ownerDown bool
	// boltCycle is the incarnation that started the most recent bolt cycle.
	boltCycle Token
}

// New creates an unequipped weapon with the profile's starting ammunition.
func New(p Profile) *Weapon {
	startAmmo := p.StartAmmo
	if startAmmo == 0 {
		startAmmo = p.Primary.ClipSize
	}
	return &Weapon{
		Profile: p,
		State:   NewAttackState(startAmmo, p.StartReserve),
		token:   Token{Instance: uuid.New()},
	}
}

// ID returns the stable instance identifier.
func (w *Weapon) ID() string {
	return w.token.Instance.String()
}

// Name returns the profile name.
func (w *Weapon) Name() string {
	return w.Profile.Name
}

// Token returns the identity of the current incarnation.
func (w *Weapon) Token() Token {
	return w.token
}

// Owner returns the carrying entity, or nil.
func (w *Weapon) Owner() Owner {
	return w.owner
}

// Equipped reports whether the weapon is the owner's active weapon.
func (w *Weapon) Equipped() bool {
	return w.equipped
}

// Destroyed reports whether Destroy was called.
func (w *Weapon) Destroyed() bool {
	return w.destroyed
}

// Live reports whether the weapon can act this tick. The first check that finds the owner
// dead retires the incarnation, so nothing captured before the death validates after a
// revive.
func (w *Weapon) Live() bool {
	if w == nil || !w.equipped || w.destroyed || w.owner == nil {
		return false
	}
	if !w.owner.IsValid() {
		w.ownerLost()
		return false
	}
	w.ownerDown = false
	return true
}

func (w *Weapon) ownerLost() {
	if w.ownerDown {
		return
	}
	w.ownerDown = true
	w.token.Generation++

	s := w.State
	s.Reloading = false
	s.BurstCount = 0
	s.RecoilPending = false
}

// Valid reports whether tok still names the live incarnation.
func (w *Weapon) Valid(tok Token) bool {
	return w.Live() && w.token == tok
}

// Equip makes the weapon active for owner. It starts a new incarnation, so continuations
// captured before the call no longer validate.
func (w *Weapon) Equip(owner Owner) {
	if w.destroyed {
		return
	}
	w.owner = owner
	w.equipped = true
	w.ownerDown = false
	w.token.Generation++

	s := w.State
	s.Reloading = false
	s.InBoltBack = false
	s.BurstCount = 0
	s.RecoilPending = false
	s.AnimationLock = w.Profile.DeployTime
}

// Holster deactivates the weapon and invalidates outstanding continuations.
func (w *Weapon) Holster() {
	if !w.equipped {
		return
	}
	w.equipped = false
	w.token.Generation++
}

// Destroy permanently retires the instance.
func (w *Weapon) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.equipped = false
	w.owner = nil
	w.token.Generation++
}

// clip returns the clip for the primary or secondary trigger, or nil.
func (w *Weapon) clip(primary bool) *ClipInfo {
	if primary {
		return &w.Profile.Primary
	}
	return w.Profile.Secondary
}
