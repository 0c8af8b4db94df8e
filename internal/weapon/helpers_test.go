package weapon_test

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/schedule"
	"github.com/swbase/swb/internal/vmath"
	"github.com/swbase/swb/internal/weapon"
)

type fakeOwner struct {
	id          string
	valid       bool
	eye         mgl64.Vec3
	rot         mgl64.Quat
	local       bool
	firstPerson bool
	anims       []string
}

func newOwner(id string) *fakeOwner {
	return &fakeOwner{id: id, valid: true, rot: mgl64.QuatIdent(), eye: mgl64.Vec3{0, 0, 64}}
}

func (o *fakeOwner) ID() string                   { return o.id }
func (o *fakeOwner) IsValid() bool                { return o.valid }
func (o *fakeOwner) EyePosition() mgl64.Vec3      { return o.eye }
func (o *fakeOwner) EyeRotation() mgl64.Quat      { return o.rot }
func (o *fakeOwner) IsLocalPawn() bool            { return o.local }
func (o *fakeOwner) FirstPerson() bool            { return o.firstPerson }
func (o *fakeOwner) SetAnimParameter(name string) { o.anims = append(o.anims, name) }

type fakeInput struct {
	down    map[weapon.Button]bool
	pressed map[weapon.Button]bool
}

func newInput() *fakeInput {
	return &fakeInput{down: map[weapon.Button]bool{}, pressed: map[weapon.Button]bool{}}
}

func (in *fakeInput) Down(b weapon.Button) bool    { return in.down[b] }
func (in *fakeInput) Pressed(b weapon.Button) bool { return in.pressed[b] }

// press holds b and marks the press edge for one tick.
func (in *fakeInput) press(b weapon.Button) {
	in.down[b] = true
	in.pressed[b] = true
}

func (in *fakeInput) hold(b weapon.Button) {
	in.down[b] = true
	in.pressed[b] = false
}

func (in *fakeInput) release(b weapon.Button) {
	in.down[b] = false
	in.pressed[b] = false
}

type fakeEntity struct {
	id string
}

func (e fakeEntity) ID() string    { return e.id }
func (e fakeEntity) IsValid() bool { return true }

// fakePhysics hits target on every trace when target is set.
type fakePhysics struct {
	target  weapon.Entity
	water   bool
	queries []weapon.TraceQuery
}

func (p *fakePhysics) IsPointWater(mgl64.Vec3) bool { return p.water }

func (p *fakePhysics) Trace(q weapon.TraceQuery) weapon.TraceResult {
	p.queries = append(p.queries, q)
	tr := weapon.TraceResult{StartPos: q.Start, EndPos: q.End, Direction: q.End.Sub(q.Start).Normalize()}
	if p.target != nil {
		tr.Hit = true
		tr.Entity = p.target
		tr.EndPos = q.Start.Add(tr.Direction.Mul(100))
		tr.Surface = "flesh"
	}
	return tr
}

type damageCall struct {
	target weapon.Entity
	info   weapon.DamageInfo
	predOn bool
}

type fakeDamager struct {
	pred  *fakePrediction
	calls []damageCall
}

func (d *fakeDamager) ApplyDamage(target weapon.Entity, info weapon.DamageInfo) {
	on := true
	if d.pred != nil {
		on = d.pred.depth == 0
	}
	d.calls = append(d.calls, damageCall{target: target, info: info, predOn: on})
}

type fakePrediction struct {
	depth int
}

func (p *fakePrediction) Off() func() {
	p.depth++
	return func() { p.depth-- }
}

type recordedEvent struct {
	command string
	payload any
}

type fakeSink struct {
	events []recordedEvent
}

func (s *fakeSink) Publish(command string, payload any) {
	s.events = append(s.events, recordedEvent{command, payload})
}

func (s *fakeSink) count(command string) int {
	n := 0
	for _, e := range s.events {
		if e.command == command {
			n++
		}
	}
	return n
}

type fakeBroadcaster struct {
	calls []weapon.CosmeticCall
}

func (b *fakeBroadcaster) Broadcast(call weapon.CosmeticCall) {
	b.calls = append(b.calls, call)
}

func (b *fakeBroadcaster) count(kind weapon.CosmeticKind) int {
	n := 0
	for _, c := range b.calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

type rig struct {
	ctrl   *weapon.Controller
	sched  *schedule.Scheduler
	phys   *fakePhysics
	damage *fakeDamager
	pred   *fakePrediction
	sink   *fakeSink
	bcast  *fakeBroadcaster
	owner  *fakeOwner
	w      *weapon.Weapon
}

type rigOption func(*weapon.Dependencies)

func withAbortPolicy(p weapon.BoltAbortPolicy) rigOption {
	return func(d *weapon.Dependencies) { d.BoltAbort = p }
}

func withRealm(r weapon.Realm) rigOption {
	return func(d *weapon.Dependencies) { d.Realm = r }
}

// newRig builds a server controller with p equipped by a fresh owner.
func newRig(p weapon.Profile, opts ...rigOption) *rig {
	pred := &fakePrediction{}
	r := &rig{
		sched:  schedule.New(),
		phys:   &fakePhysics{},
		pred:   pred,
		damage: &fakeDamager{pred: pred},
		sink:   &fakeSink{},
		bcast:  &fakeBroadcaster{},
		owner:  newOwner("player-1"),
	}
	deps := weapon.Dependencies{
		Realm:       weapon.RealmServer,
		Scheduler:   r.sched,
		Physics:     r.phys,
		Damager:     r.damage,
		Prediction:  pred,
		Broadcaster: r.bcast,
		Events:      r.sink,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	r.ctrl = weapon.NewController(deps)
	r.w = weapon.New(p)
	r.w.Equip(r.owner)
	return r
}

// tick advances weapon timers and the scheduler together.
func (r *rig) tick(in weapon.Input, dt float64) {
	r.ctrl.Simulate(r.w, in, dt)
	r.sched.Advance(dt)
}

func rifle() weapon.Profile {
	p := weapon.DefaultProfile("rifle")
	p.Primary = weapon.ClipInfo{
		FiringType:          weapon.FiringAuto,
		RPM:                 600,
		ClipSize:            30,
		Bullets:             1,
		Spread:              0.1,
		Damage:              25,
		Force:               1,
		BulletSize:          2,
		ShootSound:          "rifle.shoot",
		DryFireSound:        "rifle.dry",
		MuzzleFlashParticle: "muzzle.flash",
		BulletEjectParticle: "shell.eject",
		ShootAnim:           "fire",
	}
	p.StartReserve = 90
	p.ReloadTime = 2
	return p
}

func sniper() weapon.Profile {
	p := rifle()
	p.Name = "sniper"
	p.Primary.FiringType = weapon.FiringSemi
	p.Primary.RPM = 60
	p.Primary.ClipSize = 5
	p.BoltBack = weapon.BoltBack{Time: 1.2, EjectDelay: 0.4, Anim: "boltback"}
	return p
}

func shotgun() weapon.Profile {
	p := rifle()
	p.Name = "shotgun"
	p.Mechanism = weapon.MechanismShotgun
	p.Primary.FiringType = weapon.FiringSemi
	p.Primary.RPM = 80
	p.Primary.ClipSize = 8
	p.Primary.Bullets = 8
	p.ShellEjectDelay = 0.5
	return p
}

func vmathAngles(pitch, yaw float64) vmath.Angles {
	return vmath.Angles{Pitch: pitch, Yaw: yaw}
}

func forwardOf(q mgl64.Quat) mgl64.Vec3 {
	return vmath.Forward(q)
}
