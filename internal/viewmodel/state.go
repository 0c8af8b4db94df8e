package viewmodel

import "github.com/go-gl/mathgl/mgl64"

// FOVUninitialized marks FOV targets that have not been snapped to defaults yet.
const FOVUninitialized = -1

// FrameInput is the read-only snapshot of player and weapon state for one frame.
type FrameInput struct {
	Frame uint64
	// Now is the real time in seconds; Delta the time since the previous frame.
	Now   float64
	Delta float64

	FirstPerson bool
	CameraPos   mgl64.Vec3
	CameraRot   mgl64.Quat
	EyeRot      mgl64.Quat
	Velocity    mgl64.Vec3

	Grounded bool
	Aiming   bool
	Running  bool
	DuckHeld bool
	JumpHeld bool

	SincePrimaryFire float64
}

// Output is the rendered result of one frame.
type Output struct {
	Frame   uint64
	Visible bool

	// EffectsCameraPos and EffectsCameraRot mirror the main camera for particles and
	// lighting.
	EffectsCameraPos mgl64.Vec3
	EffectsCameraRot mgl64.Quat

	Position mgl64.Vec3
	Rotation mgl64.Quat

	// Vertical fields of view for the view model camera and the player camera.
	WeaponFOV float64
	PlayerFOV float64
}

// State is the mutable blend state of one view model.
type State struct {
	TargetPos mgl64.Vec3
	TargetRot mgl64.Vec3
	FinalPos  mgl64.Vec3
	FinalRot  mgl64.Vec3

	TargetPlayerFOV float64
	TargetWeaponFOV float64
	FinalPlayerFOV  float64
	FinalWeaponFOV  float64

	AnimSpeed      float64
	PlayerFOVSpeed float64

	LastEyeRot mgl64.Quat
	HasEyeRot  bool

	JumpUntil float64
	Jumping   bool
	LandUntil float64
	Landing   bool

	AimStart   float64
	AimLatched bool

	LocalVel mgl64.Vec3
}

func newState() State {
	return State{
		TargetPlayerFOV: FOVUninitialized,
		TargetWeaponFOV: FOVUninitialized,
		AnimSpeed:       1,
		PlayerFOVSpeed:  1,
		LastEyeRot:      mgl64.QuatIdent(),
	}
}
