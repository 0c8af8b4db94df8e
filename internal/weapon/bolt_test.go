package weapon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/weapon"
)

func boltPhases(s *fakeSink) []string {
	var phases []string
	for _, e := range s.events {
		if b, ok := e.payload.(core.BoltEvent); ok {
			phases = append(phases, b.Phase)
		}
	}
	return phases
}

func TestBoltBack_FullCycle(t *testing.T) {
	r := newRig(sniper())

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	require.True(t, r.w.State.InBoltBack)
	for _, c := range r.bcast.calls {
		assert.Empty(t, c.Eject, "bolt weapons eject from the cycle, not the shot")
	}
	assert.False(t, r.ctrl.CanAttack(r.w, &r.w.Profile.Primary, weapon.NewFireTimer(10), weapon.Trigger{Held: true, Pressed: true}))

	r.sched.Advance(1.0)
	last := r.bcast.calls[len(r.bcast.calls)-1]
	assert.Equal(t, weapon.CosmeticWeaponAnim, last.Kind)
	assert.Equal(t, "boltback", last.Anim)

	r.sched.Advance(0.5)
	last = r.bcast.calls[len(r.bcast.calls)-1]
	assert.Equal(t, "shell.eject", last.Eject)
	assert.True(t, r.w.State.InBoltBack)

	r.sched.Advance(1.0)
	assert.False(t, r.w.State.InBoltBack)
	assert.Equal(t, []string{core.BoltStarted, core.BoltBack, core.BoltEjected, core.BoltFinished}, boltPhases(r.sink))
}

func TestBoltBack_SkippedOnLastRound(t *testing.T) {
	r := newRig(sniper())
	r.w.State.Ammo = 1

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.Zero(t, r.w.State.Ammo)
	assert.False(t, r.w.State.InBoltBack)
	assert.Zero(t, r.sched.Pending())
}

func TestBoltBack_ServerOnly(t *testing.T) {
	r := newRig(sniper(), withRealm(weapon.RealmClient))

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.False(t, r.w.State.InBoltBack)
	assert.Zero(t, r.sched.Pending())
}

func TestBoltBack_AbortPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy weapon.BoltAbortPolicy
		want   bool
	}{
		{"keep leaves the flag set", weapon.BoltAbortKeep, true},
		{"clear resets the flag", weapon.BoltAbortClear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(sniper(), withAbortPolicy(tt.policy))

			r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
			r.sched.Advance(1.0)
			r.w.Holster()
			r.sched.Advance(0.5)

			assert.Equal(t, tt.want, r.w.State.InBoltBack)
			assert.Equal(t, []string{core.BoltStarted, core.BoltBack, core.BoltAborted}, boltPhases(r.sink))
			assert.Zero(t, r.sched.Pending(), "no further resume points")

			r.w.Equip(r.owner)
			assert.False(t, r.w.State.InBoltBack, "a new incarnation starts with the bolt closed")
		})
	}
}

func TestBoltBack_StaleClearDoesNotTouchNewCycle(t *testing.T) {
	r := newRig(sniper(), withAbortPolicy(weapon.BoltAbortClear))

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	r.w.Holster()
	r.w.Equip(r.owner)
	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	require.True(t, r.w.State.InBoltBack)

	// the first cycle's resume point is due now and must leave the second cycle alone
	r.sched.Advance(1.0)
	assert.True(t, r.w.State.InBoltBack)
}

func TestBoltBack_AbortPolicyAcrossOwnerDeath(t *testing.T) {
	tests := []struct {
		name   string
		policy weapon.BoltAbortPolicy
		want   bool
	}{
		{"keep leaves the flag set", weapon.BoltAbortKeep, true},
		{"clear resets the flag", weapon.BoltAbortClear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(sniper(), withAbortPolicy(tt.policy))

			r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
			r.owner.valid = false
			r.sched.Advance(5)
			r.owner.valid = true

			assert.Equal(t, tt.want, r.w.State.InBoltBack)
			assert.Equal(t, []string{core.BoltStarted, core.BoltAborted}, boltPhases(r.sink))
			assert.Zero(t, r.sched.Pending())
		})
	}
}

func TestBoltBack_ClearPolicyFiresAgainAfterOwnerDeath(t *testing.T) {
	r := newRig(sniper(), withAbortPolicy(weapon.BoltAbortClear))

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	r.owner.valid = false
	r.sched.Advance(5)
	r.owner.valid = true
	before := r.w.State.Ammo

	in := newInput()
	for range 100 {
		in.press(weapon.ButtonAttack1)
		r.tick(in, 0.05)
		in.release(weapon.ButtonAttack1)
		r.tick(in, 0.05)
	}

	assert.Less(t, r.w.State.Ammo, before)
}
