package viewmodel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/vmath"
)

// baseAnimSpeed scales Profile.AnimSpeed into the default blend rate.
const baseAnimSpeed = 10

type modifier func(a *Animator, in *FrameInput)

// modifiers run in this order every active frame, each adding into the targets.
var modifiers = []modifier{
	(*Animator).idle,
	(*Animator).walk,
	(*Animator).sway,
	(*Animator).aim,
	(*Animator).sprint,
	(*Animator).jump,
}

// Animator owns the blend state of one view model. It is driven from the render loop
// and is not safe for concurrent use.
type Animator struct {
	profile Profile
	state   State

	last      Output
	lastFrame uint64
	hasFrame  bool
}

// New creates an animator with sentinel FOV targets.
func New(p Profile) *Animator {
	return &Animator{profile: p, state: newState()}
}

// Profile returns the tuning in use.
func (a *Animator) Profile() Profile {
	return a.profile
}

// SetProfile swaps tuning, e.g. on weapon switch, and resets the blend.
func (a *Animator) SetProfile(p Profile) {
	a.profile = p
	a.Reset()
}

// State returns a copy of the blend state.
func (a *Animator) State() State {
	return a.state
}

// Reset drops all blend state. The next visible frame snaps FOVs to their defaults.
func (a *Animator) Reset() {
	a.state = newState()
	a.last = Output{}
	a.hasFrame = false
}

// Update runs one frame. Calling it again with the same frame number returns the
// previous output without smoothing again.
func (a *Animator) Update(in FrameInput) Output {
	if a.hasFrame && in.Frame == a.lastFrame {
		return a.last
	}
	a.lastFrame = in.Frame
	a.hasFrame = true
	a.last = a.step(&in)
	return a.last
}

func (a *Animator) step(in *FrameInput) Output {
	out := Output{Frame: in.Frame, Visible: in.FirstPerson}
	if !in.FirstPerson {
		return out
	}

	out.EffectsCameraPos = in.CameraPos
	out.EffectsCameraRot = in.CameraRot

	s := &a.state
	p := &a.profile

	if s.TargetWeaponFOV == FOVUninitialized {
		s.FinalPlayerFOV = p.playerFOV()
		s.TargetPlayerFOV = p.playerFOV()
		s.TargetWeaponFOV = p.FOV
		s.FinalWeaponFOV = p.FOV
	}
	if !s.HasEyeRot {
		s.LastEyeRot = in.CameraRot
		s.HasEyeRot = true
	}

	rate := s.AnimSpeed * in.Delta
	fovRate := s.PlayerFOVSpeed * s.AnimSpeed * in.Delta
	s.FinalPos = vmath.LerpVec(s.FinalPos, s.TargetPos, rate)
	s.FinalRot = vmath.LerpVec(s.FinalRot, s.TargetRot, rate)
	s.FinalPlayerFOV = vmath.LerpTo(s.FinalPlayerFOV, s.TargetPlayerFOV, fovRate)
	s.FinalWeaponFOV = vmath.LerpTo(s.FinalWeaponFOV, s.TargetWeaponFOV, fovRate)
	s.AnimSpeed = baseAnimSpeed * p.AnimSpeed

	cam := in.CameraRot
	out.Position = in.CameraPos.
		Add(vmath.Up(cam).Mul(s.FinalPos.Z())).
		Add(vmath.Forward(cam).Mul(s.FinalPos.Y())).
		Add(vmath.Right(cam).Mul(s.FinalPos.X()))
	out.Rotation = cam.Mul(vmath.AnglesFromVec(s.FinalRot).Quat())
	out.WeaponFOV = vmath.VerticalFOV(s.FinalWeaponFOV)
	out.PlayerFOV = vmath.VerticalFOV(s.FinalPlayerFOV)

	s.TargetPos = mgl64.Vec3{}
	s.TargetRot = mgl64.Vec3{}
	s.TargetPlayerFOV = p.playerFOV()
	s.TargetWeaponFOV = p.FOV

	eye := in.EyeRot
	if eye == (mgl64.Quat{}) {
		eye = mgl64.QuatIdent()
	}
	s.LocalVel = mgl64.Vec3{
		vmath.Right(eye).Dot(in.Velocity),
		vmath.Forward(eye).Dot(in.Velocity),
		in.Velocity.Z(),
	}

	for _, m := range modifiers {
		m(a, in)
	}
	return out
}
