// Package viewmodel blends the procedural first-person weapon animation: idle breathing,
// walk bob, look sway, aim-in, sprint pose and jump/land curves, smoothed into one view
// model transform and field of view per rendered frame.
package viewmodel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/vmath"
)

// DefaultPlayerFOV is the player camera field of view when nothing overrides it.
const DefaultPlayerFOV = 90

// AngPos is an additive pose: a position offset (right, forward, up) and an angle offset.
type AngPos struct {
	Angle vmath.Angles `json:"angle" mapstructure:"angle"`
	Pos   mgl64.Vec3   `json:"pos" mapstructure:"pos"`
}

// IsZero reports whether the pose adds nothing.
func (p AngPos) IsZero() bool {
	return p.Angle.IsZero() && p.Pos == (mgl64.Vec3{})
}

// Profile is the per-weapon view model configuration.
type Profile struct {
	AnimSpeed      float64 `json:"animSpeed" mapstructure:"animSpeed"`
	FOV            float64 `json:"fov" mapstructure:"fov"`
	AimFOV         float64 `json:"aimFov" mapstructure:"aimFov"`
	AimPlayerFOV   float64 `json:"aimPlayerFov" mapstructure:"aimPlayerFov"`
	AimInFOVSpeed  float64 `json:"aimInFovSpeed" mapstructure:"aimInFovSpeed"`
	AimOutFOVSpeed float64 `json:"aimOutFovSpeed" mapstructure:"aimOutFovSpeed"`
	Aim            AngPos  `json:"aim" mapstructure:"aim"`
	Run            AngPos  `json:"run" mapstructure:"run"`
	// PlayerFOV replaces DefaultPlayerFOV when positive.
	PlayerFOV float64 `json:"playerFov" mapstructure:"playerFov"`
}

// DefaultProfile returns the stock tuning.
func DefaultProfile() Profile {
	return Profile{
		AnimSpeed:      1,
		FOV:            65,
		AimInFOVSpeed:  1,
		AimOutFOVSpeed: 1,
	}
}

func (p *Profile) playerFOV() float64 {
	if p.PlayerFOV > 0 {
		return p.PlayerFOV
	}
	return DefaultPlayerFOV
}
