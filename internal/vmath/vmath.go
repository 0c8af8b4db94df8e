// Package vmath holds the small amount of vector, rotation and easing math shared by the
// weapon and view-model packages. Axes follow the engine convention: +X forward, +Y left,
// +Z up. Angles are in degrees.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// JumpWindow is the length in seconds of the jump and land animation curves.
const JumpWindow = 0.31

var (
	axisForward = mgl64.Vec3{1, 0, 0}
	axisLeft    = mgl64.Vec3{0, 1, 0}
	axisUp      = mgl64.Vec3{0, 0, 1}
)

// Angles is a pitch/yaw/roll triple in degrees. Positive pitch looks down.
type Angles struct {
	Pitch float64 `json:"pitch" mapstructure:"pitch"`
	Yaw   float64 `json:"yaw" mapstructure:"yaw"`
	Roll  float64 `json:"roll" mapstructure:"roll"`
}

// Vec returns the angles packed as (pitch, yaw, roll).
func (a Angles) Vec() mgl64.Vec3 {
	return mgl64.Vec3{a.Pitch, a.Yaw, a.Roll}
}

// AnglesFromVec unpacks a (pitch, yaw, roll) vector.
func AnglesFromVec(v mgl64.Vec3) Angles {
	return Angles{Pitch: v[0], Yaw: v[1], Roll: v[2]}
}

// Sub returns the component-wise difference a-b.
func (a Angles) Sub(b Angles) Angles {
	return Angles{Pitch: a.Pitch - b.Pitch, Yaw: a.Yaw - b.Yaw, Roll: a.Roll - b.Roll}
}

// IsZero reports whether all three components are zero.
func (a Angles) IsZero() bool {
	return a.Pitch == 0 && a.Yaw == 0 && a.Roll == 0
}

// Quat builds the rotation yaw about Z, then pitch about Y, then roll about X.
func (a Angles) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(a.Yaw), axisUp)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(a.Pitch), axisLeft)
	roll := mgl64.QuatRotate(mgl64.DegToRad(a.Roll), axisForward)
	return yaw.Mul(pitch).Mul(roll)
}

// AnglesOf recovers pitch/yaw/roll from a rotation.
func AnglesOf(q mgl64.Quat) Angles {
	f := q.Rotate(axisForward)
	yaw := mgl64.RadToDeg(math.Atan2(f[1], f[0]))
	pitch := mgl64.RadToDeg(math.Asin(mgl64.Clamp(-f[2], -1, 1)))

	base := Angles{Pitch: pitch, Yaw: yaw}.Quat()
	rel := base.Conjugate().Mul(q)
	roll := WrapDegrees(mgl64.RadToDeg(2 * math.Atan2(rel.V[0], rel.W)))

	return Angles{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// Forward is the rotated +X axis.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(axisForward)
}

// Right is the rotated -Y axis.
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(axisLeft.Mul(-1))
}

// Up is the rotated +Z axis.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(axisUp)
}

// Clamp01 limits f to [0, 1].
func Clamp01(f float64) float64 {
	return mgl64.Clamp(f, 0, 1)
}

// LerpTo moves a toward b by frac, clamped to [0, 1].
func LerpTo(a, b, frac float64) float64 {
	return a + (b-a)*Clamp01(frac)
}

// LerpVec moves a toward b by frac, clamped to [0, 1].
func LerpVec(a, b mgl64.Vec3, frac float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(Clamp01(frac)))
}

// SlerpTo rotates a toward b along the shortest arc by frac, clamped to [0, 1].
func SlerpTo(a, b mgl64.Quat, frac float64) mgl64.Quat {
	frac = Clamp01(frac)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, frac)
}

// WrapDegrees maps d into [-180, 180] using atan2(sin, cos).
func WrapDegrees(d float64) float64 {
	r := mgl64.DegToRad(d)
	return mgl64.RadToDeg(math.Atan2(math.Sin(r), math.Cos(r)))
}

// BezierY evaluates a quadratic Bezier with control values a, b, c where f runs over
// [0, JumpWindow]. f == 0 yields a and f == JumpWindow yields c.
func BezierY(f, a, b, c float64) float64 {
	t := f / JumpWindow
	u := 1 - t
	return u*u*a + 2*u*t*b + t*t*c
}

// VerticalFOV converts a horizontal field of view authored for a 4:3 screen into the
// vertical field of view the camera expects.
func VerticalFOV(horizontal float64) float64 {
	if horizontal <= 0 {
		return 0
	}
	half := mgl64.DegToRad(horizontal) / 2
	return mgl64.RadToDeg(2 * math.Atan(math.Tan(half)*3.0/4.0))
}
