package viewmodel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/vmath"
)

// Walk cycle tuning.
const (
	walkCycleRate   = 16.0
	walkMaxSpeed    = 200.0
	sprintCycleRate = 18.0
	sprintMaxSpeed  = 100.0
	// adsSettleTime suppresses the walk bob right after an aimed shot.
	adsSettleTime = 0.1
)

// Sway tuning.
const (
	swaySpeed    = 5.0
	swayAimSpeed = 20.0
	swayPosScale = 0.04
	swayPosLimit = 1.5
	swayRotScale = 0.2
	swayRotLimit = 4.0
)

var duckOffset = mgl64.Vec3{-1, -1, 0.5}

// idle adds a slow breathing motion and the crouch offset.
func (a *Animator) idle(in *FrameInput) {
	if in.Aiming {
		return
	}
	s := &a.state

	bt := in.Now * 2
	s.TargetPos = s.TargetPos.Sub(mgl64.Vec3{
		math.Cos(bt/4) / 8,
		0,
		-math.Cos(bt/4) / 32,
	})
	s.TargetRot = s.TargetRot.Sub(mgl64.Vec3{
		math.Cos(bt / 5),
		math.Cos(bt / 4),
		math.Cos(bt / 7),
	})

	if in.DuckHeld && in.Grounded {
		s.TargetPos = s.TargetPos.Add(duckOffset)
	}
}

// walk bobs the weapon with horizontal speed and leans it into strafes.
func (a *Animator) walk(in *FrameInput) {
	if !in.Grounded {
		return
	}
	s := &a.state

	bt := in.Now * walkCycleRate
	maxSpeed := walkMaxSpeed
	if in.Running {
		bt = in.Now * sprintCycleRate
		maxSpeed = sprintMaxSpeed
	}
	speed := mgl64.Vec2{in.Velocity.X(), in.Velocity.Y()}.Len()
	lateral := s.LocalVel.X()

	var roll, yaw float64
	if in.Aiming || lateral > 0 {
		roll = -7 * (lateral / maxSpeed)
	} else if lateral < 0 {
		yaw = 3 * (lateral / maxSpeed)
	}

	if in.Aiming && in.SincePrimaryFire < adsSettleTime {
		s.TargetRot = s.TargetRot.Sub(mgl64.Vec3{0, 0, roll})
		return
	}

	k := speed / maxSpeed
	s.TargetPos = s.TargetPos.Sub(mgl64.Vec3{
		(-math.Cos(bt/2)/5)*k - yaw/4,
		0,
		0,
	})
	s.TargetRot = s.TargetRot.Sub(mgl64.Vec3{
		(mgl64.Clamp(math.Cos(bt), -0.3, 0.3) * 2) * k,
		(-math.Cos(bt/2)*1.2)*k - yaw*1.5,
		roll,
	})
}

// sway trails the weapon behind fast camera turns.
func (a *Animator) sway(in *FrameInput) {
	s := &a.state

	speed := swaySpeed
	if in.Aiming {
		speed = swayAimSpeed
	}
	s.LastEyeRot = vmath.SlerpTo(s.LastEyeRot, in.CameraRot, speed*in.Delta)

	dif := vmath.AnglesOf(in.CameraRot).Sub(vmath.AnglesOf(s.LastEyeRot))
	pitch := dif.Pitch
	yaw := vmath.WrapDegrees(dif.Yaw)

	s.TargetPos = s.TargetPos.Add(mgl64.Vec3{
		mgl64.Clamp(yaw*swayPosScale, -swayPosLimit, swayPosLimit),
		0,
		mgl64.Clamp(pitch*swayPosScale, -swayPosLimit, swayPosLimit),
	})
	s.TargetRot = s.TargetRot.Add(mgl64.Vec3{
		mgl64.Clamp(pitch*swayRotScale, -swayRotLimit, swayRotLimit),
		mgl64.Clamp(yaw*swayRotScale, -swayRotLimit, swayRotLimit),
		0,
	})
}
