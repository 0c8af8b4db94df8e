package weapon

import (
	"fmt"
	"strings"
)

// FiringType selects how a held trigger turns into shots.
type FiringType int

const (
	FiringSemi FiringType = iota
	FiringBurst
	FiringAuto
)

func (f FiringType) String() string {
	switch f {
	case FiringSemi:
		return "semi"
	case FiringBurst:
		return "burst"
	case FiringAuto:
		return "auto"
	default:
		return fmt.Sprintf("FiringType(%d)", int(f))
	}
}

// UnmarshalText accepts semi, single, burst, auto or automatic.
func (f *FiringType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "semi", "single":
		*f = FiringSemi
	case "burst":
		*f = FiringBurst
	case "auto", "automatic", "":
		*f = FiringAuto
	default:
		return fmt.Errorf("unknown firing type %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f FiringType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Mechanism picks mechanism-specific behaviour such as shell ejection and spread.
type Mechanism int

const (
	MechanismStandard Mechanism = iota
	MechanismShotgun
)

func (m Mechanism) String() string {
	switch m {
	case MechanismStandard:
		return "standard"
	case MechanismShotgun:
		return "shotgun"
	default:
		return fmt.Sprintf("Mechanism(%d)", int(m))
	}
}

// UnmarshalText accepts standard or shotgun.
func (m *Mechanism) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "standard", "":
		*m = MechanismStandard
	case "shotgun", "shotty":
		*m = MechanismShotgun
	default:
		return fmt.Errorf("unknown mechanism %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mechanism) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ShakeParams describes a screen shake for the local viewer.
type ShakeParams struct {
	Length   float64 `json:"length" mapstructure:"length"`
	Speed    float64 `json:"speed" mapstructure:"speed"`
	Size     float64 `json:"size" mapstructure:"size"`
	Rotation float64 `json:"rotation" mapstructure:"rotation"`
}

// IsZero reports whether the shake would have no visible effect.
func (s ShakeParams) IsZero() bool {
	return s.Length <= 0 || (s.Size == 0 && s.Rotation == 0)
}

// ClipInfo is the immutable attack configuration for one trigger.
type ClipInfo struct {
	FiringType FiringType `json:"firingType" mapstructure:"firingType"`
	RPM        float64    `json:"rpm" mapstructure:"rpm"`
	ClipSize   int        `json:"clipSize" mapstructure:"clipSize"`
	Bullets    int        `json:"bullets" mapstructure:"bullets"`
	Spread     float64    `json:"spread" mapstructure:"spread"`
	Damage     float64    `json:"damage" mapstructure:"damage"`
	Force      float64    `json:"force" mapstructure:"force"`
	BulletSize float64    `json:"bulletSize" mapstructure:"bulletSize"`
	// Delay postpones the bullets after the trigger pull, for pump and bolt feel.
	Delay float64 `json:"delay" mapstructure:"delay"`

	ShootAnim            string      `json:"shootAnim" mapstructure:"shootAnim"`
	ShootEmptyAnim       string      `json:"shootEmptyAnim" mapstructure:"shootEmptyAnim"`
	ShootSound           string      `json:"shootSound" mapstructure:"shootSound"`
	DryFireSound         string      `json:"dryFireSound" mapstructure:"dryFireSound"`
	MuzzleFlashParticle  string      `json:"muzzleFlashParticle" mapstructure:"muzzleFlashParticle"`
	BulletEjectParticle  string      `json:"bulletEjectParticle" mapstructure:"bulletEjectParticle"`
	BarrelSmokeParticle  string      `json:"barrelSmokeParticle" mapstructure:"barrelSmokeParticle"`
	BulletTracerParticle string      `json:"bulletTracerParticle" mapstructure:"bulletTracerParticle"`
	ScreenShake          ShakeParams `json:"screenShake" mapstructure:"screenShake"`
}

// RoundInterval returns the seconds between rounds, 60/RPM. Zero means unconstrained.
func (c *ClipInfo) RoundInterval() float64 {
	return RealRPM(c.RPM)
}

// RealRPM converts rounds per minute into seconds per round. Non-positive RPM is
// unconstrained and yields zero.
func RealRPM(rpm float64) float64 {
	if rpm <= 0 {
		return 0
	}
	return 60 / rpm
}

// BoltBack configures the bolt-action cycle run after each shot.
type BoltBack struct {
	// Time is the full cycle length. Negative disables the cycle.
	Time       float64 `json:"time" mapstructure:"time"`
	EjectDelay float64 `json:"ejectDelay" mapstructure:"ejectDelay"`
	Anim       string  `json:"anim" mapstructure:"anim"`
}

// Enabled reports whether the weapon cycles a bolt after firing.
func (b BoltBack) Enabled() bool {
	return b.Time > -1
}

// Attachment overrides where the muzzle effect is emitted.
type Attachment struct {
	Name             string `json:"name" mapstructure:"name"`
	EffectAttachment string `json:"effectAttachment" mapstructure:"effectAttachment"`
}

// Profile is the full per-weapon attack configuration.
type Profile struct {
	Name      string    `json:"name" mapstructure:"name"`
	Mechanism Mechanism `json:"mechanism" mapstructure:"mechanism"`
	Primary   ClipInfo  `json:"primary" mapstructure:"primary"`
	Secondary *ClipInfo `json:"secondary,omitempty" mapstructure:"secondary"`

	BoltBack        BoltBack    `json:"boltBack" mapstructure:"boltBack"`
	ShellEjectDelay float64     `json:"shellEjectDelay" mapstructure:"shellEjectDelay"`
	Muzzle          *Attachment `json:"muzzle,omitempty" mapstructure:"muzzle"`

	// AutoReload reloads on a dry fire.
	AutoReload    bool    `json:"autoReload" mapstructure:"autoReload"`
	BarrelSmoking bool    `json:"barrelSmoking" mapstructure:"barrelSmoking"`
	ReloadTime    float64 `json:"reloadTime" mapstructure:"reloadTime"`
	DeployTime    float64 `json:"deployTime" mapstructure:"deployTime"`
	ReloadAnim    string  `json:"reloadAnim" mapstructure:"reloadAnim"`
	ReloadSound   string  `json:"reloadSound" mapstructure:"reloadSound"`

	StartAmmo    int `json:"startAmmo" mapstructure:"startAmmo"`
	StartReserve int `json:"startReserve" mapstructure:"startReserve"`
}

// DefaultClip is a single-bullet automatic clip.
func DefaultClip() ClipInfo {
	return ClipInfo{
		FiringType: FiringAuto,
		Bullets:    1,
		BulletSize: 2,
	}
}

// DefaultProfile returns a profile with the disabled-feature sentinels filled in.
func DefaultProfile(name string) Profile {
	return Profile{
		Name:     name,
		BoltBack: BoltBack{Time: -1},
		Primary:  DefaultClip(),
	}
}

// Validate reports configuration that cannot be simulated. Odd numeric values such as
// negative RPM are not errors; they degrade per the gating rules.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("weapon profile has no name")
	}
	if p.Primary.ClipSize < 0 {
		return fmt.Errorf("weapon %s: negative clip size", p.Name)
	}
	return nil
}
