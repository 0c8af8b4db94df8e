// Package weapon implements the attack controller: rate-of-fire gating, ammunition,
// bullet dispatch across the replication boundary and the timed bolt, reload and delayed
// fire sequences.
package weapon

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/swbase/swb/internal/schedule"
)

// BoltAbortPolicy decides what an invalidated bolt cycle does with InBoltBack.
type BoltAbortPolicy int

const (
	// BoltAbortKeep leaves InBoltBack as it was when the cycle was abandoned. Equip starts
	// a fresh incarnation with the flag cleared.
	BoltAbortKeep BoltAbortPolicy = iota
	// BoltAbortClear clears InBoltBack at the abandoned resume point unless a newer cycle
	// has started since.
	BoltAbortClear
)

// Dependencies are the services a Controller talks to. Nil services are treated as
// absent and their calls are skipped.
type Dependencies struct {
	Realm       Realm
	Scheduler   *schedule.Scheduler
	Physics     Physics
	Damager     Damager
	Effects     Effects
	Prediction  Prediction
	Broadcaster Broadcaster
	Events      EventSink
	Metrics     *Metrics
	Logger      *slog.Logger
	Rand        *rand.Rand
	BoltAbort   BoltAbortPolicy
	SessionID   uint
	// Clock stamps recorded events. Defaults to time.Now.
	Clock func() time.Time
}

// Controller runs attack logic for any number of weapons on one side of the
// replication boundary. It is not safe for concurrent use; every call happens on the
// simulation thread.
type Controller struct {
	deps Dependencies
	log  *slog.Logger
}

// NewController fills in defaults for missing dependencies.
func NewController(deps Dependencies) *Controller {
	if deps.Scheduler == nil {
		deps.Scheduler = schedule.New()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		deps: deps,
		log:  log.With("realm", deps.Realm.String()),
	}
}

// Realm returns the side this controller runs on.
func (c *Controller) Realm() Realm {
	return c.deps.Realm
}

// Scheduler returns the clock continuations are queued on.
func (c *Controller) Scheduler() *schedule.Scheduler {
	return c.deps.Scheduler
}

// CanAttack reports whether clip may fire this tick given the time since its last
// attack and the trigger state.
func (c *Controller) CanAttack(w *Weapon, clip *ClipInfo, since FireTimer, trig Trigger) bool {
	if clip == nil || !w.Live() {
		return false
	}
	s := w.State
	if s.Animating() || s.InBoltBack {
		return false
	}
	if !trig.Held {
		return false
	}

	switch clip.FiringType {
	case FiringSemi:
		if !trig.Pressed {
			return false
		}
	case FiringBurst:
		if s.BurstCount > 2 {
			return false
		}
		if !since.Ready(clip.RoundInterval()) {
			return false
		}
		s.BurstCount++
		return true
	}

	if clip.RPM <= 0 {
		return true
	}
	return since.Ready(clip.RoundInterval())
}

// CanPrimaryAttack gates the primary trigger.
func (c *Controller) CanPrimaryAttack(w *Weapon, in Input) bool {
	if w == nil {
		return false
	}
	return c.CanAttack(w, &w.Profile.Primary, w.State.SincePrimary, TriggerFor(in, ButtonAttack1))
}

// CanSecondaryAttack gates the secondary trigger.
func (c *Controller) CanSecondaryAttack(w *Weapon, in Input) bool {
	if w == nil || w.Profile.Secondary == nil {
		return false
	}
	return c.CanAttack(w, w.Profile.Secondary, w.State.SinceSecondary, TriggerFor(in, ButtonAttack2))
}

// AttackPrimary fires the primary clip, delayed if it configures a fire delay.
func (c *Controller) AttackPrimary(w *Weapon) {
	c.attackWith(w, true)
}

// AttackSecondary fires the secondary clip if the weapon has one.
func (c *Controller) AttackSecondary(w *Weapon) {
	c.attackWith(w, false)
}

func (c *Controller) attackWith(w *Weapon, primary bool) {
	if w == nil {
		return
	}
	clip := w.clip(primary)
	if clip == nil {
		return
	}
	if clip.Delay > 0 {
		c.DelayedAttack(w, clip, primary, clip.Delay)
		return
	}
	c.Attack(w, clip, primary)
}

// Simulate is the per-tick entry point for the weapon's owner: it advances the fire
// timers, resets the burst counter on release, handles the reload button and dispatches
// attacks.
func (c *Controller) Simulate(w *Weapon, in Input, dt float64) {
	if !w.Live() {
		return
	}
	s := w.State
	s.advance(dt)

	if in == nil {
		return
	}
	if !in.Down(ButtonAttack1) {
		s.BurstCount = 0
	}
	s.Running = in.Down(ButtonRun)

	if in.Pressed(ButtonReload) {
		c.Reload(w)
	}
	if s.Reloading {
		return
	}

	if c.CanPrimaryAttack(w, in) {
		c.AttackPrimary(w)
		return
	}
	if c.CanSecondaryAttack(w, in) {
		c.AttackSecondary(w)
	}
}

// ConsumeRecoil returns and clears the recoil flag set by the last shot.
func (c *Controller) ConsumeRecoil(w *Weapon) bool {
	if w == nil {
		return false
	}
	pending := w.State.RecoilPending
	w.State.RecoilPending = false
	return pending
}
