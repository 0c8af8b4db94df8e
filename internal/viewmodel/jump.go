package viewmodel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/vmath"
)

// jumpAnimSpeed is the blend rate while any jump phase is active.
const jumpAnimSpeed = 20

const (
	risingDamping  = 4
	landingDamping = 2
)

// jumpCurve evaluates the shared jump/land curve f seconds into the window and returns
// position and rotation offsets before damping.
func jumpCurve(f float64) (pos, rot mgl64.Vec3) {
	xx := vmath.BezierY(f, 0, -4, 0)
	zz := vmath.BezierY(f, 0, -2, -5)
	pt := vmath.BezierY(f, 0, -4.36, 10)
	rl := vmath.BezierY(f, 0, -10.82, -5)
	return mgl64.Vec3{xx, 0, zz}, mgl64.Vec3{pt, xx, rl}
}

// jump tracks the jump and land windows and adds the matching shape.
func (a *Animator) jump(in *FrameInput) {
	s := &a.state
	now := in.Now

	if !in.Grounded {
		s.LandUntil = now + vmath.JumpWindow
		s.Landing = true
	}
	if s.Landing && s.LandUntil < now {
		s.Landing = false
		s.Jumping = false
	}
	if in.JumpHeld && !s.Jumping {
		s.JumpUntil = now + vmath.JumpWindow
		s.Jumping = true
		s.Landing = false
	}

	if in.Aiming {
		s.TargetPos = s.TargetPos.Add(mgl64.Vec3{0, 0, mgl64.Clamp(s.LocalVel.Z()/1000, -1, 1)})
		return
	}

	switch {
	case s.Jumping && s.JumpUntil > now:
		pos, rot := jumpCurve(vmath.JumpWindow - (s.JumpUntil - now))
		s.TargetPos = s.TargetPos.Add(pos.Mul(1.0 / risingDamping))
		s.TargetRot = s.TargetRot.Add(rot.Mul(1.0 / risingDamping))
		s.AnimSpeed = jumpAnimSpeed

	case !in.Grounded:
		bt := now * 30
		s.TargetPos = s.TargetPos.Add(mgl64.Vec3{
			math.Cos(bt/2) / 16,
			0,
			-5 + math.Sin(bt/3)/16,
		}.Mul(1.0 / 4))
		s.TargetRot = s.TargetRot.Add(mgl64.Vec3{
			10 - math.Sin(bt/3)/4,
			math.Cos(bt/2) / 4,
			-5,
		}.Mul(1.0 / 4))
		s.AnimSpeed = jumpAnimSpeed

	case s.Landing && s.LandUntil > now:
		pos, rot := jumpCurve(s.LandUntil - now)
		s.TargetPos = s.TargetPos.Add(pos.Mul(1.0 / landingDamping))
		s.TargetRot = s.TargetRot.Add(rot.Mul(1.0 / landingDamping))
		s.AnimSpeed = jumpAnimSpeed
	}
}
