package viewmodel

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/swbase/swb/internal/vmath"
)

func TestIdle_NothingWhileAiming(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := New(testProfile())
		in := frame(1, rapid.Float64Range(0, 10000).Draw(t, "now"))
		in.Aiming = true
		in.DuckHeld = rapid.Bool().Draw(t, "duck")

		a.idle(&in)

		if a.state.TargetPos != (mgl64.Vec3{}) || a.state.TargetRot != (mgl64.Vec3{}) {
			t.Fatalf("idle moved the weapon while aiming: %v %v", a.state.TargetPos, a.state.TargetRot)
		}
	})
}

func TestIdle_BreathingAndCrouch(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 0)

	a.idle(&in)
	assert.InDelta(t, -1.0/8, a.state.TargetPos.X(), 1e-12)
	assert.InDelta(t, 1.0/32, a.state.TargetPos.Z(), 1e-12)
	assert.Equal(t, mgl64.Vec3{-1, -1, -1}, a.state.TargetRot)

	b := New(testProfile())
	in.DuckHeld = true
	b.idle(&in)
	assert.Equal(t, a.state.TargetPos.Add(mgl64.Vec3{-1, -1, 0.5}), b.state.TargetPos)

	c := New(testProfile())
	in.Grounded = false
	c.idle(&in)
	assert.Equal(t, a.state.TargetPos, c.state.TargetPos, "no crouch offset in the air")
}

func TestWalk_NothingWhileAirborne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := New(testProfile())
		in := frame(1, rapid.Float64Range(0, 1000).Draw(t, "now"))
		in.Grounded = false
		in.Running = rapid.Bool().Draw(t, "run")
		in.Velocity = mgl64.Vec3{
			rapid.Float64Range(-400, 400).Draw(t, "vx"),
			rapid.Float64Range(-400, 400).Draw(t, "vy"),
			0,
		}
		a.state.LocalVel = in.Velocity

		a.walk(&in)

		if a.state.TargetPos != (mgl64.Vec3{}) || a.state.TargetRot != (mgl64.Vec3{}) {
			t.Fatalf("walk bob while airborne")
		}
	})
}

func TestWalk_StrafeLean(t *testing.T) {
	tests := []struct {
		name     string
		lateral  float64
		aiming   bool
		wantRoll float64
	}{
		{"strafe right rolls", 100, false, 3.5},
		{"aimed strafe left rolls", -100, true, -3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(testProfile())
			in := frame(1, 0)
			in.Aiming = tt.aiming
			a.state.LocalVel = mgl64.Vec3{tt.lateral, 0, 0}

			a.walk(&in)
			// targetRot -= roll with roll = -7 * lateral / 200
			assert.InDelta(t, tt.wantRoll, a.state.TargetRot.Z(), 1e-12)
		})
	}

	t.Run("strafe left yaws", func(t *testing.T) {
		a := New(testProfile())
		in := frame(1, 0)
		a.state.LocalVel = mgl64.Vec3{-100, 0, 0}

		a.walk(&in)
		yaw := 3 * (-100.0 / 200)
		assert.Zero(t, a.state.TargetRot.Z())
		assert.InDelta(t, yaw*1.5, a.state.TargetRot.Y(), 1e-12)
		assert.InDelta(t, yaw/4, a.state.TargetPos.X(), 1e-12)
	})
}

func TestWalk_AimedShotSuppressesBob(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 1.3)
	in.Aiming = true
	in.SincePrimaryFire = 0.05
	in.Velocity = mgl64.Vec3{150, 80, 0}
	a.state.LocalVel = mgl64.Vec3{80, 150, 0}

	a.walk(&in)

	assert.Equal(t, mgl64.Vec3{}, a.state.TargetPos)
	assert.InDelta(t, 7*(80.0/200), a.state.TargetRot.Z(), 1e-12)
	assert.Zero(t, a.state.TargetRot.X())
}

func TestWalk_SprintUsesLowerCap(t *testing.T) {
	walking, sprinting := New(testProfile()), New(testProfile())
	in := frame(1, 0)
	in.Velocity = mgl64.Vec3{100, 0, 0}

	walking.walk(&in)
	in.Running = true
	sprinting.walk(&in)

	// at now=0 the cycle terms are cos(0) so only the speed ratio differs
	assert.InDelta(t, 2*walking.state.TargetPos.X(), sprinting.state.TargetPos.X(), 1e-12)
}

func TestSway_FollowsCameraTurn(t *testing.T) {
	a := New(testProfile())
	a.state.LastEyeRot = mgl64.QuatIdent()
	in := frame(1, 0)
	in.CameraRot = vmath.Angles{Yaw: 30}.Quat()

	a.sway(&in)

	assert.Greater(t, a.state.TargetPos.X(), 0.0)
	assert.LessOrEqual(t, a.state.TargetPos.X(), 1.5)
	assert.Greater(t, a.state.TargetRot.Y(), 0.0)
	assert.LessOrEqual(t, a.state.TargetRot.Y(), 4.0)

	still := New(testProfile())
	still.state.LastEyeRot = in.CameraRot
	still.sway(&in)
	assert.InDelta(t, 0, still.state.TargetPos.Len(), 1e-9)
}

func TestSway_ClampsLargeTurns(t *testing.T) {
	a := New(testProfile())
	a.state.LastEyeRot = vmath.Angles{Yaw: 170}.Quat()
	in := frame(1, 0)
	in.Delta = 0
	in.CameraRot = vmath.Angles{Yaw: -170}.Quat()

	a.sway(&in)

	// wrapped delta is +20 degrees, not -340
	assert.InDelta(t, 20*0.04, a.state.TargetPos.X(), 1e-6)
	assert.InDelta(t, 4, a.state.TargetRot.Y(), 1e-6)
}

func TestSprint_AddsRunPose(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 0)
	in.Running = true

	a.sprint(&in)
	assert.Equal(t, mgl64.Vec3{3, -2, -1}, a.state.TargetPos)
	assert.Equal(t, mgl64.Vec3{0, 20, -10}, a.state.TargetRot)

	p := testProfile()
	p.Run = AngPos{}
	b := New(p)
	b.sprint(&in)
	assert.Equal(t, mgl64.Vec3{}, b.state.TargetPos)
}

func TestJump_RisingWindow(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 5)
	in.JumpHeld = true

	a.jump(&in)

	s := a.state
	assert.True(t, s.Jumping)
	assert.False(t, s.Landing)
	assert.InDelta(t, vmath.JumpWindow, s.JumpUntil-in.Now, 1e-12)
	assert.Equal(t, float64(jumpAnimSpeed), s.AnimSpeed)
	// f == 0 at the start of the window: the curve sits on its first control points
	assert.InDelta(t, 0, s.TargetPos.Len(), 1e-9)
	assert.InDelta(t, 0, s.TargetRot.Len(), 1e-9)
}

func TestJumpCurve_Boundaries(t *testing.T) {
	pos, rot := jumpCurve(0)
	assert.Equal(t, mgl64.Vec3{}, pos)
	assert.Equal(t, mgl64.Vec3{}, rot)

	pos, rot = jumpCurve(vmath.JumpWindow)
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, pos)
	assert.Equal(t, mgl64.Vec3{10, 0, -5}, rot)
}

func TestJump_AirborneThenLanding(t *testing.T) {
	a := New(testProfile())

	// Airborne with no jump input: falling shake.
	in := frame(1, 2)
	in.Grounded = false
	a.jump(&in)
	assert.True(t, a.state.Landing)
	assert.InDelta(t, 2+vmath.JumpWindow, a.state.LandUntil, 1e-12)
	assert.InDelta(t, (-5+math.Sin(2*30/3)/16)/4, a.state.TargetPos.Z(), 1e-12)
	assert.Equal(t, float64(jumpAnimSpeed), a.state.AnimSpeed)

	// Back on the ground 0.1s later: landing curve, half damping.
	a.state.TargetPos, a.state.TargetRot = mgl64.Vec3{}, mgl64.Vec3{}
	in = frame(2, 2.1)
	a.jump(&in)
	f := a.state.LandUntil - 2.1
	pos, _ := jumpCurve(f)
	assert.InDelta(t, pos.Z()/2, a.state.TargetPos.Z(), 1e-12)

	// After the window both timers clear.
	in = frame(3, 2.5)
	a.jump(&in)
	assert.False(t, a.state.Landing)
	assert.False(t, a.state.Jumping)
}

func TestJump_AimingOnlyVertical(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 1)
	in.Aiming = true
	in.Grounded = false
	a.state.LocalVel = mgl64.Vec3{0, 0, -2500}

	a.jump(&in)

	assert.Equal(t, mgl64.Vec3{0, 0, -1}, a.state.TargetPos)
	assert.Equal(t, mgl64.Vec3{}, a.state.TargetRot)
	assert.NotEqual(t, float64(jumpAnimSpeed), a.state.AnimSpeed)
}

func TestJump_CannotRetriggerMidWindow(t *testing.T) {
	a := New(testProfile())
	in := frame(1, 1)
	in.JumpHeld = true
	a.jump(&in)
	until := a.state.JumpUntil

	in = frame(2, 1.1)
	in.JumpHeld = true
	a.jump(&in)

	assert.Equal(t, until, a.state.JumpUntil)
}
