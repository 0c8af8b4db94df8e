package weapon

import "github.com/go-gl/mathgl/mgl64"

//go:generate go tool mockgen -destination=mocks/mock_services.go -package=mocks github.com/swbase/swb/internal/weapon Physics,Damager,Effects,Broadcaster,EventSink

// Realm says which side of the replication boundary a controller runs on.
type Realm int

const (
	RealmServer Realm = iota
	RealmClient
	// RealmListen is a host that is both server and a viewing client.
	RealmListen
)

// IsServer reports whether authoritative work runs in this realm.
func (r Realm) IsServer() bool {
	return r == RealmServer || r == RealmListen
}

// IsClient reports whether cosmetic work is rendered in this realm.
func (r Realm) IsClient() bool {
	return r == RealmClient || r == RealmListen
}

func (r Realm) String() string {
	switch r {
	case RealmServer:
		return "server"
	case RealmClient:
		return "client"
	case RealmListen:
		return "listen"
	default:
		return "unknown"
	}
}

// Owner is the entity carrying the weapon.
type Owner interface {
	ID() string
	IsValid() bool
	EyePosition() mgl64.Vec3
	EyeRotation() mgl64.Quat
	// IsLocalPawn reports whether the owner is the local viewer.
	IsLocalPawn() bool
	// FirstPerson reports whether the local viewer sees the view model.
	FirstPerson() bool
	SetAnimParameter(name string)
}

// Button is an abstract input button.
type Button int

const (
	ButtonAttack1 Button = iota
	ButtonAttack2
	ButtonReload
	ButtonRun
	ButtonDuck
	ButtonJump
)

// Input answers per-tick button queries.
type Input interface {
	Down(b Button) bool
	Pressed(b Button) bool
}

// Trigger is the state of one trigger for this tick.
type Trigger struct {
	Held    bool
	Pressed bool
}

// TriggerFor reads b from in.
func TriggerFor(in Input, b Button) Trigger {
	if in == nil {
		return Trigger{}
	}
	return Trigger{Held: in.Down(b), Pressed: in.Pressed(b)}
}

// Entity is anything a trace can hit.
type Entity interface {
	ID() string
	IsValid() bool
}

// TraceQuery is one ray cast.
type TraceQuery struct {
	Start       mgl64.Vec3
	End         mgl64.Vec3
	Radius      float64
	Ignore      []string
	HitWater    bool
	UseHitboxes bool
}

// TraceResult is what the physics service returns for a TraceQuery.
type TraceResult struct {
	Hit       bool
	Entity    Entity
	StartPos  mgl64.Vec3
	EndPos    mgl64.Vec3
	Normal    mgl64.Vec3
	Direction mgl64.Vec3
	Surface   string
	Fraction  float64
}

// HitEntity reports whether the trace struck a valid entity.
func (r TraceResult) HitEntity() bool {
	return r.Entity != nil && r.Entity.IsValid()
}

// Physics is the ray-cast service.
type Physics interface {
	Trace(q TraceQuery) TraceResult
	IsPointWater(p mgl64.Vec3) bool
}

// DamageInfo describes one bullet hit.
type DamageInfo struct {
	Position   mgl64.Vec3
	Force      mgl64.Vec3
	Damage     float64
	AttackerID string
	WeaponID   string
	WeaponName string
	Trace      TraceResult
}

// Damager applies damage on the authoritative side.
type Damager interface {
	ApplyDamage(target Entity, info DamageInfo)
}

// Prediction disables client-side prediction culling. Off returns the function that
// restores it.
type Prediction interface {
	Off() (restore func())
}

// EffectTarget selects the model a particle attaches to.
type EffectTarget int

const (
	TargetViewModel EffectTarget = iota
	TargetWorldModel
	TargetViewAttachment
	TargetWorldAttachment
)

// Effects plays cosmetic output. Every call is fire and forget.
type Effects interface {
	PlayParticle(name string, target EffectTarget, attachment string)
	PlayTracer(name string, from EffectTarget, attachment string, end mgl64.Vec3)
	PlaySound(name string, at mgl64.Vec3)
	ScreenShake(p ShakeParams)
	PlayAnim(target EffectTarget, name string)
	Impact(tr TraceResult)
}

// CosmeticKind names a call that runs on every viewer.
type CosmeticKind int

const (
	CosmeticShootEffects CosmeticKind = iota
	CosmeticClientBullet
	CosmeticWeaponAnim
)

// CosmeticCall is a replicated, viewer-side invocation.
type CosmeticCall struct {
	Kind     CosmeticKind
	WeaponID string

	Muzzle string
	Eject  string
	Anim   string

	Start  mgl64.Vec3
	End    mgl64.Vec3
	Radius float64
}

// Broadcaster delivers cosmetic calls to every viewer, including the local one.
type Broadcaster interface {
	Broadcast(call CosmeticCall)
}

// EventSink receives combat events for recording.
type EventSink interface {
	Publish(command string, payload any)
}
