// internal/model/core/events.go
package core

import "time"

// Event commands published by weapons.
const (
	CommandFired   = ":FIRED:"
	CommandHit     = ":HIT:"
	CommandDryFire = ":DRYFIRE:"
	CommandReload  = ":RELOAD:"
	CommandBolt    = ":BOLT:"
)

// FiredEvent represents one bullet leaving a weapon on the authoritative side.
type FiredEvent struct {
	SessionID  uint       `json:"sessionId"`
	Time       time.Time  `json:"time"`
	SimTime    float64    `json:"simTime"`
	ShooterID  string     `json:"shooterId"`
	WeaponID   string     `json:"weaponId"`
	WeaponName string     `json:"weaponName"`
	Primary    bool       `json:"primary"`
	FiringMode string     `json:"mode"`
	Spread     float64    `json:"spread"`
	AmmoLeft   int        `json:"ammoLeft"`
	StartPos   Position3D `json:"startPos"`
	EndPos     Position3D `json:"endPos"`
	Hit        bool       `json:"hit"`
}

// HitEvent represents damage applied to an entity by a bullet.
type HitEvent struct {
	ID         uint       `json:"id"`
	SessionID  uint       `json:"sessionId"`
	Time       time.Time  `json:"time"`
	SimTime    float64    `json:"simTime"`
	ShooterID  string     `json:"shooterId"`
	VictimID   string     `json:"victimId"`
	WeaponID   string     `json:"weaponId"`
	WeaponName string     `json:"weaponName"`
	Damage     float64    `json:"damage"`
	Distance   float64    `json:"distance"`
	Surface    string     `json:"surface"`
	Position   Position3D `json:"position"`
}

// DryFireEvent records a trigger pull on an empty clip.
type DryFireEvent struct {
	SessionID  uint      `json:"sessionId"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	ShooterID  string    `json:"shooterId"`
	WeaponID   string    `json:"weaponId"`
	WeaponName string    `json:"weaponName"`
	AutoReload bool      `json:"autoReload"`
}

// Reload phases.
const (
	ReloadStarted  = "started"
	ReloadFinished = "finished"
)

// ReloadEvent records the start or completion of a reload.
type ReloadEvent struct {
	SessionID  uint      `json:"sessionId"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	ShooterID  string    `json:"shooterId"`
	WeaponID   string    `json:"weaponId"`
	WeaponName string    `json:"weaponName"`
	Phase      string    `json:"phase"`
	Ammo       int       `json:"ammo"`
	Reserve    int       `json:"reserve"`
}

// Bolt phases.
const (
	BoltStarted  = "started"
	BoltBack     = "back"
	BoltEjected  = "ejected"
	BoltFinished = "finished"
	BoltAborted  = "aborted"
)

// BoltEvent records progress through a bolt-action cycle.
type BoltEvent struct {
	SessionID  uint      `json:"sessionId"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	ShooterID  string    `json:"shooterId"`
	WeaponID   string    `json:"weaponId"`
	WeaponName string    `json:"weaponName"`
	Phase      string    `json:"phase"`
}
