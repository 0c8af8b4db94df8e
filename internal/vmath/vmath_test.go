package vmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestBezierY_Endpoints(t *testing.T) {
	assert.Equal(t, 0.0, BezierY(0, 0, -4, 0))
	assert.Equal(t, -5.0, BezierY(JumpWindow, 0, -2, -5))
	assert.Equal(t, 10.0, BezierY(JumpWindow, 0, -4.36, 10))
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{270, -90},
		{-270, 90},
		{360 + 45, 45},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapDegrees(tt.in), 1e-9, "wrap %v", tt.in)
	}
}

func TestAngles_RoundTrip(t *testing.T) {
	in := Angles{Pitch: 20, Yaw: -135, Roll: 12}
	got := AnglesOf(in.Quat())

	assert.InDelta(t, in.Pitch, got.Pitch, 1e-9)
	assert.InDelta(t, in.Yaw, got.Yaw, 1e-9)
	assert.InDelta(t, in.Roll, got.Roll, 1e-9)
}

func TestAxes(t *testing.T) {
	q := Angles{Yaw: 90}.Quat()

	assert.True(t, Forward(q).ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-12))
	assert.True(t, Right(q).ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12))
	assert.True(t, Up(q).ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12))

	down := Angles{Pitch: 90}.Quat()
	assert.True(t, Forward(down).ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-12))
}

func TestLerpTo_ClampsFraction(t *testing.T) {
	assert.Equal(t, 10.0, LerpTo(0, 10, 5))
	assert.Equal(t, 0.0, LerpTo(0, 10, -1))
	assert.Equal(t, 5.0, LerpTo(0, 10, 0.5))
}

func TestSlerpTo_ShortestArc(t *testing.T) {
	a := Angles{Yaw: 170}.Quat()
	b := Angles{Yaw: -170}.Quat()

	mid := AnglesOf(SlerpTo(a, b, 0.5))
	assert.InDelta(t, 180, abs(mid.Yaw), 1e-6)
}

func TestVerticalFOV(t *testing.T) {
	assert.Equal(t, 0.0, VerticalFOV(0))
	assert.InDelta(t, 73.7398, VerticalFOV(90), 1e-3)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
