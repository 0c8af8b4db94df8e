package weapon_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/schedule"
	"github.com/swbase/swb/internal/weapon"
	"github.com/swbase/swb/internal/weapon/mocks"
)

func TestAttack_ConsumesOneRoundAndDispatches(t *testing.T) {
	r := newRig(rifle())

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.Equal(t, 29, r.w.State.Ammo)
	assert.Len(t, r.phys.queries, 1)
	assert.Equal(t, 1, r.sink.count(core.CommandFired))
	assert.Equal(t, 1, r.bcast.count(weapon.CosmeticClientBullet))
	assert.Equal(t, []string{"b_attack"}, r.owner.anims)
	assert.True(t, r.w.State.RecoilPending)

	effects := r.bcast.calls[len(r.bcast.calls)-1]
	for _, c := range r.bcast.calls {
		if c.Kind == weapon.CosmeticShootEffects {
			effects = c
		}
	}
	assert.Equal(t, "muzzle.flash", effects.Muzzle)
	assert.Equal(t, "shell.eject", effects.Eject)
	assert.Equal(t, "fire", effects.Anim)
}

func TestAttack_ResetsTimers(t *testing.T) {
	r := newRig(rifle())
	r.w.State.SincePrimary = weapon.NewFireTimer(4)
	r.w.State.SinceSecondary = weapon.NewFireTimer(4)

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.Zero(t, r.w.State.SincePrimary.Elapsed())
	assert.Zero(t, r.w.State.SinceSecondary.Elapsed())
	assert.Zero(t, r.w.State.SinceAttack.Elapsed())
}

func TestAttack_DryFire(t *testing.T) {
	ctrl := gomock.NewController(t)
	fx := mocks.NewMockEffects(ctrl)
	phys := mocks.NewMockPhysics(ctrl)
	fx.EXPECT().PlaySound("rifle.dry", gomock.Any()).Times(1)

	sink := &fakeSink{}
	c := weapon.NewController(weapon.Dependencies{
		Realm:       weapon.RealmServer,
		Physics:     phys,
		Effects:     fx,
		Broadcaster: &fakeBroadcaster{},
		Events:      sink,
	})
	w := weapon.New(rifle())
	w.Equip(newOwner("p"))
	w.State.Ammo = 0

	c.Attack(w, &w.Profile.Primary, true)

	assert.Zero(t, w.State.Ammo)
	assert.False(t, w.State.RecoilPending)
	assert.Equal(t, 1, sink.count(core.CommandDryFire))
	assert.Zero(t, sink.count(core.CommandFired))
	assert.False(t, w.State.Reloading, "no auto reload configured")
}

func TestAttack_DryFireAutoReload(t *testing.T) {
	p := rifle()
	p.AutoReload = true
	r := newRig(p)
	r.w.State.Ammo = 0

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.True(t, r.w.State.Reloading)
	assert.True(t, r.w.State.SincePrimary.Unblocked())
	assert.True(t, r.w.State.SinceSecondary.Unblocked())
	assert.True(t, r.w.State.SinceAttack.Unblocked())
	assert.Empty(t, r.phys.queries)

	r.sched.Advance(p.ReloadTime)
	assert.Equal(t, 30, r.w.State.Ammo)
	assert.Equal(t, 60, r.w.State.Reserve)
}

func TestAttack_NeverGoesNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ammo := rapid.IntRange(0, 5).Draw(t, "ammo")
		pulls := rapid.IntRange(0, 12).Draw(t, "pulls")

		r := newRig(rifle())
		r.w.State.Ammo = ammo
		r.w.State.Reserve = 0

		for i := 0; i < pulls; i++ {
			r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
			if r.w.State.Ammo < 0 {
				t.Fatalf("ammo went negative: %d", r.w.State.Ammo)
			}
		}

		fired := min(ammo, pulls)
		if got := len(r.phys.queries); got != fired {
			t.Fatalf("dispatched %d bullets, want %d", got, fired)
		}
		if got := r.sink.count(core.CommandDryFire); got != pulls-fired {
			t.Fatalf("dry fired %d times, want %d", got, pulls-fired)
		}
	})
}

func TestAttack_BlockedWhileReloadingOrTucked(t *testing.T) {
	for name, set := range map[string]func(s *weapon.AttackState){
		"reloading": func(s *weapon.AttackState) { s.Reloading = true },
		"tucked":    func(s *weapon.AttackState) { s.Tucked = true },
	} {
		t.Run(name, func(t *testing.T) {
			r := newRig(rifle())
			set(r.w.State)

			r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

			assert.Equal(t, 30, r.w.State.Ammo)
			assert.Empty(t, r.bcast.calls)
		})
	}
}

func TestAttack_SpreadByMechanism(t *testing.T) {
	tests := []struct {
		name    string
		profile weapon.Profile
		aiming  bool
		want    float64
	}{
		{"standard hip", rifle(), false, 0.1},
		{"standard aimed", rifle(), true, 0.025},
		{"shotgun hip", shotgun(), false, 0.1},
		{"shotgun aimed", shotgun(), true, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(tt.profile)
			r.w.State.Aiming = tt.aiming

			r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

			require.NotEmpty(t, r.sink.events)
			var fired core.FiredEvent
			for _, e := range r.sink.events {
				if e.command == core.CommandFired {
					fired = e.payload.(core.FiredEvent)
				}
			}
			assert.InDelta(t, tt.want, fired.Spread, 1e-12)
		})
	}
}

func TestAttack_ShotgunEjectsShellLater(t *testing.T) {
	r := newRig(shotgun())

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.Len(t, r.phys.queries, 8)
	assert.Equal(t, 8, r.sink.count(core.CommandFired))
	for _, c := range r.bcast.calls {
		assert.Empty(t, c.Eject, "no eject with the shot")
	}

	r.sched.Advance(0.5)
	last := r.bcast.calls[len(r.bcast.calls)-1]
	assert.Equal(t, weapon.CosmeticShootEffects, last.Kind)
	assert.Equal(t, "shell.eject", last.Eject)
}

func TestAttack_BarrelSmoke(t *testing.T) {
	p := rifle()
	p.Primary.ClipSize = 4
	p.Primary.BarrelSmokeParticle = "barrel.smoke"
	p.BarrelSmoking = true
	r := newRig(p)

	smokes := func() int {
		n := 0
		for _, c := range r.bcast.calls {
			if c.Muzzle == "barrel.smoke" {
				n++
			}
		}
		return n
	}

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	assert.Zero(t, smokes())

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)
	assert.Equal(t, 1, smokes(), "heat 3 reaches 75% of a 4 round clip")
	assert.Equal(t, 3, r.w.State.BarrelHeat)
}

func TestAttack_ClientDoesNotTraceDamage(t *testing.T) {
	r := newRig(rifle(), withRealm(weapon.RealmClient))
	r.phys.target = fakeEntity{id: "victim"}

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	assert.Equal(t, 29, r.w.State.Ammo)
	assert.Empty(t, r.phys.queries)
	assert.Empty(t, r.damage.calls)
}

func TestAttack_LocalPawnShakes(t *testing.T) {
	ctrl := gomock.NewController(t)
	fx := mocks.NewMockEffects(ctrl)

	p := rifle()
	p.Primary.ScreenShake = weapon.ShakeParams{Length: 0.5, Speed: 1, Size: 1}
	shake := p.Primary.ScreenShake
	fx.EXPECT().ScreenShake(shake).Times(1)
	fx.EXPECT().PlaySound("rifle.shoot", gomock.Any()).Times(1)

	c := weapon.NewController(weapon.Dependencies{
		Realm:       weapon.RealmServer,
		Effects:     fx,
		Broadcaster: &fakeBroadcaster{},
	})
	owner := newOwner("p")
	owner.local = true
	w := weapon.New(p)
	w.Equip(owner)

	c.Attack(w, &w.Profile.Primary, true)
}

func TestDelayedAttack_FiresAfterDelay(t *testing.T) {
	p := rifle()
	p.Primary.Delay = 0.5
	r := newRig(p)

	r.ctrl.AttackPrimary(r.w)

	assert.Equal(t, 30, r.w.State.Ammo)
	assert.Empty(t, r.phys.queries)
	assert.InDelta(t, -0.5, r.w.State.SincePrimary.Elapsed(), 1e-12)
	assert.InDelta(t, -0.5, r.w.State.SinceSecondary.Elapsed(), 1e-12)
	require.Len(t, r.bcast.calls, 1)
	assert.Equal(t, "fire", r.bcast.calls[0].Anim, "pre-fire animation")

	r.sched.Advance(0.4)
	assert.Equal(t, 30, r.w.State.Ammo)

	r.sched.Advance(0.1)
	assert.Equal(t, 29, r.w.State.Ammo)
	assert.Len(t, r.phys.queries, 1)
	assert.True(t, r.w.State.RecoilPending)
}

func TestDelayedAttack_InvalidatedDoesNothing(t *testing.T) {
	invalidate := map[string]func(r *rig){
		"holster":      func(r *rig) { r.w.Holster() },
		"destroy":      func(r *rig) { r.w.Destroy() },
		"owner died":   func(r *rig) { r.owner.valid = false },
		"re-equipped":  func(r *rig) { r.w.Holster(); r.w.Equip(r.owner) },
		"owner change": func(r *rig) { r.w.Equip(newOwner("p2")) },
	}

	for name, fn := range invalidate {
		t.Run(name, func(t *testing.T) {
			p := rifle()
			p.Primary.Delay = 0.5
			r := newRig(p)

			r.ctrl.AttackPrimary(r.w)
			fn(r)
			r.sched.Advance(1)

			assert.Equal(t, 30, r.w.State.Ammo)
			assert.Empty(t, r.phys.queries)
			assert.Zero(t, r.sink.count(core.CommandFired))
		})
	}
}

func TestDelayedAttack_UsesSecondaryDelay(t *testing.T) {
	p := rifle()
	p.Primary.Delay = 2
	p.Secondary = &weapon.ClipInfo{Bullets: 1, Delay: 0.25}
	r := newRig(p)

	r.ctrl.AttackSecondary(r.w)
	r.sched.Advance(0.25)

	assert.Equal(t, 29, r.w.State.Ammo)
	assert.Len(t, r.phys.queries, 1)
}

func TestDelayedAttack_EmptyClipDryFires(t *testing.T) {
	p := rifle()
	p.Primary.Delay = 0.5
	r := newRig(p)
	r.w.State.Ammo = 0

	r.ctrl.AttackPrimary(r.w)

	assert.Equal(t, 1, r.sink.count(core.CommandDryFire))
	assert.Zero(t, r.sched.Pending(), "no delayed shot is queued")
	assert.False(t, r.w.State.Reloading)
	assert.Empty(t, r.phys.queries)
}

func TestDelayedAttack_EmptyClipAutoReloads(t *testing.T) {
	p := shotgun()
	p.Primary.Delay = 0.12
	p.AutoReload = true
	r := newRig(p)
	r.w.State.Ammo = 0

	r.ctrl.AttackPrimary(r.w)

	require.True(t, r.w.State.Reloading)
	assert.True(t, r.w.State.SincePrimary.Unblocked())
	assert.Equal(t, 1, r.sink.count(core.CommandDryFire))

	r.sched.Advance(p.ReloadTime)
	assert.Equal(t, 8, r.w.State.Ammo)
	assert.Equal(t, 82, r.w.State.Reserve)
	assert.Zero(t, r.sink.count(core.CommandFired))
}

func TestAttack_DamageWithPredictionOff(t *testing.T) {
	p := rifle()
	p.Primary.Spread = 0
	p.Primary.Force = 2
	r := newRig(p)
	r.phys.target = fakeEntity{id: "victim"}

	r.ctrl.Attack(r.w, &r.w.Profile.Primary, true)

	require.Len(t, r.damage.calls, 1)
	call := r.damage.calls[0]
	assert.False(t, call.predOn, "prediction disabled around damage")
	assert.Zero(t, r.pred.depth, "prediction restored")
	assert.Equal(t, "victim", call.target.ID())
	assert.Equal(t, 25.0, call.info.Damage)
	assert.Equal(t, "player-1", call.info.AttackerID)
	assert.Equal(t, r.w.ID(), call.info.WeaponID)
	assert.InDelta(t, 200, call.info.Force.X(), 1e-9)

	require.Equal(t, 1, r.sink.count(core.CommandHit))
	for _, e := range r.sink.events {
		if hit, ok := e.payload.(core.HitEvent); ok {
			assert.Equal(t, "victim", hit.VictimID)
			assert.InDelta(t, 100, hit.Distance, 1e-9)
		}
	}
}

func TestShootBullet_ZeroSpreadFollowsEyeForward(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pitch := rapid.Float64Range(-89, 89).Draw(t, "pitch")
		yaw := rapid.Float64Range(-180, 180).Draw(t, "yaw")

		r := newRig(rifle())
		r.owner.rot = vmathAngles(pitch, yaw).Quat()

		r.ctrl.ShootBullet(r.w, 0, 1, 10, 2)

		if len(r.phys.queries) != 1 {
			t.Fatalf("want one trace, got %d", len(r.phys.queries))
		}
		q := r.phys.queries[0]
		want := r.owner.eye.Add(forwardOf(r.owner.rot).Mul(weapon.BulletRange))
		if q.End != want {
			t.Fatalf("end %v, want %v", q.End, want)
		}
	})
}

func TestShootBullet_SpreadStaysInCone(t *testing.T) {
	r := newRig(rifle())
	const spread = 0.2

	for i := 0; i < 200; i++ {
		r.ctrl.ShootBullet(r.w, spread, 1, 1, 2)
	}

	for _, q := range r.phys.queries {
		dir := q.End.Sub(q.Start).Normalize()
		assert.InDelta(t, 1, q.End.Sub(q.Start).Len()/weapon.BulletRange, 1e-6)
		assert.Greater(t, dir.Dot(mgl64.Vec3{1, 0, 0}), 0.9, "jitter is bounded by the spread")
	}
}

func TestTraceBullet_IgnoresShooterAndHandlesWater(t *testing.T) {
	r := newRig(rifle())
	start := mgl64.Vec3{0, 0, 10}
	end := mgl64.Vec3{100, 0, 10}

	res := r.ctrl.TraceBullet(r.w, start, end, 3)
	require.Len(t, res, 1)
	q := r.phys.queries[0]
	assert.ElementsMatch(t, []string{"player-1", r.w.ID()}, q.Ignore)
	assert.True(t, q.HitWater, "dry start hits water")
	assert.True(t, q.UseHitboxes)
	assert.Equal(t, 3.0, q.Radius)

	r.phys.water = true
	r.ctrl.TraceBullet(r.w, start, end, 3)
	assert.False(t, r.phys.queries[1].HitWater, "submerged start ignores water")
}

func TestHandleCosmetic_ServerIgnores(t *testing.T) {
	ctrl := gomock.NewController(t)
	fx := mocks.NewMockEffects(ctrl)

	c := weapon.NewController(weapon.Dependencies{Realm: weapon.RealmServer, Effects: fx, Scheduler: schedule.New()})
	w := weapon.New(rifle())
	w.Equip(newOwner("p"))

	c.HandleCosmetic(w, weapon.CosmeticCall{Kind: weapon.CosmeticShootEffects, Muzzle: "m"})
}
