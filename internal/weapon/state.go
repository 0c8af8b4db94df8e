package weapon

import "github.com/google/uuid"

// FireTimer measures seconds since an attack. A timer can be explicitly unblocked, which
// makes it ready regardless of the elapsed time until the next Reset.
type FireTimer struct {
	elapsed   float64
	unblocked bool
}

// NewFireTimer returns a timer that already reads elapsed seconds.
func NewFireTimer(elapsed float64) FireTimer {
	return FireTimer{elapsed: elapsed}
}

// Elapsed returns the seconds since the timer was last reset.
func (t FireTimer) Elapsed() float64 {
	return t.elapsed
}

// Unblocked reports whether the timer was forced ready.
func (t FireTimer) Unblocked() bool {
	return t.unblocked
}

// Ready reports whether at least interval seconds have passed.
func (t FireTimer) Ready(interval float64) bool {
	return t.unblocked || t.elapsed >= interval
}

// Reset zeroes the timer and clears any unblock.
func (t *FireTimer) Reset() {
	t.elapsed = 0
	t.unblocked = false
}

// Rewind moves the timer back by d seconds, so it can read negative.
func (t *FireTimer) Rewind(d float64) {
	t.elapsed -= d
}

// Advance adds dt seconds.
func (t *FireTimer) Advance(dt float64) {
	if dt > 0 {
		t.elapsed += dt
	}
}

// Unblock forces the timer ready.
func (t *FireTimer) Unblock() {
	t.unblocked = true
}

// Token identifies one live incarnation of a weapon instance. Continuations capture the
// token when they start and compare it on every resume.
type Token struct {
	Instance   uuid.UUID
	Generation uint64
}

// AttackState is the mutable per-instance attack state. It is owned by its Weapon and
// passed explicitly into every Controller operation.
type AttackState struct {
	Ammo    int
	Reserve int

	SincePrimary   FireTimer
	SinceSecondary FireTimer
	SinceAttack    FireTimer

	BurstCount int
	InBoltBack bool
	Reloading  bool
	Tucked     bool
	Aiming     bool
	Running    bool

	// AnimationLock blocks attacks until it counts down to zero, e.g. while deploying.
	AnimationLock float64

	BarrelHeat    int
	RecoilPending bool
}

// NewAttackState returns a state with ready timers and the given ammunition.
func NewAttackState(ammo, reserve int) *AttackState {
	if ammo < 0 {
		ammo = 0
	}
	if reserve < 0 {
		reserve = 0
	}
	return &AttackState{
		Ammo:           ammo,
		Reserve:        reserve,
		SincePrimary:   FireTimer{unblocked: true},
		SinceSecondary: FireTimer{unblocked: true},
		SinceAttack:    FireTimer{unblocked: true},
	}
}

// Animating reports whether an animation lock is active.
func (s *AttackState) Animating() bool {
	return s.AnimationLock > 0
}

// resetTimers zeroes all three fire timers.
func (s *AttackState) resetTimers() {
	s.SincePrimary.Reset()
	s.SinceSecondary.Reset()
	s.SinceAttack.Reset()
}

func (s *AttackState) unblockTimers() {
	s.SincePrimary.Unblock()
	s.SinceSecondary.Unblock()
	s.SinceAttack.Unblock()
}

// advance moves the timers and countdowns forward by one tick.
func (s *AttackState) advance(dt float64) {
	s.SincePrimary.Advance(dt)
	s.SinceSecondary.Advance(dt)
	s.SinceAttack.Advance(dt)
	if s.AnimationLock > 0 {
		s.AnimationLock -= dt
		if s.AnimationLock < 0 {
			s.AnimationLock = 0
		}
	}
}

// takeAmmo removes n rounds from the clip. It fails without mutation when the clip holds
// fewer than n rounds.
func (s *AttackState) takeAmmo(n int) bool {
	if n <= 0 {
		return true
	}
	if s.Ammo < n {
		return false
	}
	s.Ammo -= n
	return true
}
