package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/vmath"
	"github.com/swbase/swb/internal/weapon"
)

const (
	eyeHeight    = 64.0
	bodyHeight   = 36.0
	bodyRadius   = 16.0
	playerHealth = 100.0

	walkSpeed   = 190.0
	runSpeed    = 320.0
	jumpSpeed   = 268.0
	gravity     = 800.0
	recoilKick  = 0.6
	recoilDecay = 8.0
)

// buttonState is the held and pressed-this-tick view of the player's buttons.
type buttonState struct {
	down    map[weapon.Button]bool
	pressed map[weapon.Button]bool
	// taps are released at the end of the tick they were pressed in.
	taps []weapon.Button
}

func newButtonState() buttonState {
	return buttonState{
		down:    make(map[weapon.Button]bool),
		pressed: make(map[weapon.Button]bool),
	}
}

func (b *buttonState) Down(btn weapon.Button) bool    { return b.down[btn] }
func (b *buttonState) Pressed(btn weapon.Button) bool { return b.pressed[btn] }

func (b *buttonState) press(btn weapon.Button) {
	if !b.down[btn] {
		b.pressed[btn] = true
	}
	b.down[btn] = true
}

func (b *buttonState) release(btn weapon.Button) {
	b.down[btn] = false
}

func (b *buttonState) tap(btn weapon.Button) {
	b.press(btn)
	b.taps = append(b.taps, btn)
}

func (b *buttonState) endTick() {
	clear(b.pressed)
	for _, btn := range b.taps {
		b.down[btn] = false
	}
	b.taps = b.taps[:0]
}

// Player is a simulated pawn. It carries weapons, answers weapon.Owner queries and is
// itself a hittable body.
type Player struct {
	Name string

	Position mgl64.Vec3
	Velocity mgl64.Vec3
	View     vmath.Angles

	Health float64
	local  bool
	third  bool

	input    buttonState
	forward  bool
	aiming   bool
	tucked   bool
	tracking Body
	punch    float64
	downAt   float64

	weapons []*weapon.Weapon
	active  *weapon.Weapon

	lastAnim  string
	animCount int
	recoils   int
}

// NewPlayer creates a grounded player at pos.
func NewPlayer(name string, pos mgl64.Vec3, local bool) *Player {
	return &Player{
		Name:     name,
		Position: pos,
		Health:   playerHealth,
		local:    local,
		input:    newButtonState(),
	}
}

func (p *Player) ID() string    { return p.Name }
func (p *Player) IsValid() bool { return p.Health > 0 }

func (p *Player) EyePosition() mgl64.Vec3 {
	return p.Position.Add(mgl64.Vec3{0, 0, eyeHeight})
}

// EyeRotation is the view direction with the recoil punch applied.
func (p *Player) EyeRotation() mgl64.Quat {
	v := p.View
	v.Pitch -= p.punch
	return v.Quat()
}

func (p *Player) IsLocalPawn() bool { return p.local }
func (p *Player) FirstPerson() bool { return p.local && !p.third }

func (p *Player) SetAnimParameter(name string) {
	p.lastAnim = name
	p.animCount++
}

func (p *Player) Bounds() (mgl64.Vec3, float64) {
	return p.Position.Add(mgl64.Vec3{0, 0, bodyHeight}), bodyRadius
}

func (p *Player) Surface() string { return "flesh" }

func (p *Player) TakeDamage(dmg, now float64) bool {
	if p.Health <= 0 {
		return false
	}
	p.Health -= dmg
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.downAt = now
	return true
}

func (p *Player) respawn(now float64) bool {
	if p.Health > 0 || now-p.downAt < RespawnDelay {
		return false
	}
	p.Health = playerHealth
	// the weapon in hand comes back as a fresh incarnation
	if p.active != nil {
		p.active.Equip(p)
	}
	return true
}

// Grounded reports whether the player stands on the ground.
func (p *Player) Grounded() bool {
	return p.Position[2] <= 0 && p.Velocity[2] <= 0
}

// Active returns the equipped weapon, or nil.
func (p *Player) Active() *weapon.Weapon {
	return p.active
}

// Weapons returns every weapon the player carries.
func (p *Player) Weapons() []*weapon.Weapon {
	return p.weapons
}

// Give adds w to the player's inventory. The first weapon given is equipped.
func (p *Player) Give(w *weapon.Weapon) {
	p.weapons = append(p.weapons, w)
	if p.active == nil {
		p.switchTo(w)
	}
}

// Equip switches to the carried weapon named name.
func (p *Player) Equip(name string) bool {
	for _, w := range p.weapons {
		if w.Name() == name {
			if w != p.active {
				p.switchTo(w)
			}
			return true
		}
	}
	return false
}

func (p *Player) switchTo(w *weapon.Weapon) {
	if p.active != nil {
		p.active.Holster()
	}
	p.active = w
	w.Equip(p)
}

// LookAt keeps the view on b until cleared with nil.
func (p *Player) LookAt(b Body) {
	p.tracking = b
	p.aimAtTarget()
}

func (p *Player) aimAtTarget() {
	if p.tracking == nil {
		return
	}
	center, _ := p.tracking.Bounds()
	d := center.Sub(p.EyePosition())
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	p.View.Yaw = mgl64.RadToDeg(math.Atan2(d[1], d[0]))
	p.View.Pitch = -mgl64.RadToDeg(math.Asin(mgl64.Clamp(d[2], -1, 1)))
}

// kick applies one shot of recoil to the view punch.
func (p *Player) kick() {
	p.punch += recoilKick
	p.recoils++
}

// move integrates walking, jumping and the recoil recovery for one tick.
func (p *Player) move(dt float64) {
	speed := 0.0
	if p.forward {
		speed = walkSpeed
		if p.input.Down(weapon.ButtonRun) {
			speed = runSpeed
		}
	}
	yaw := mgl64.DegToRad(p.View.Yaw)
	p.Velocity[0] = math.Cos(yaw) * speed
	p.Velocity[1] = math.Sin(yaw) * speed

	if p.input.Pressed(weapon.ButtonJump) && p.Grounded() {
		p.Velocity[2] = jumpSpeed
	}
	if !p.Grounded() {
		p.Velocity[2] -= gravity * dt
	}
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	if p.Position[2] < 0 {
		p.Position[2] = 0
		p.Velocity[2] = 0
	}

	p.punch -= p.punch * min(1, recoilDecay*dt)
	p.aimAtTarget()
}
