package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []any{
	&Session{},
	&WeaponLoadout{},
	&FiredEvent{},
	&HitEvent{},
	&DryFireEvent{},
	&ReloadEvent{},
	&BoltEvent{},
}

////////////////////////
// SESSION MODELS
////////////////////////

// Session is one simulation run
type Session struct {
	gorm.Model
	Name      string         `json:"name" gorm:"size:127"`
	Map       string         `json:"map" gorm:"size:127"`
	StartTime time.Time      `json:"startTime" gorm:"index:idx_session_start"`
	EndTime   *time.Time     `json:"endTime"`
	TickRate  float32        `json:"tickRate" gorm:"default:66"`
	Realm     string         `json:"realm" gorm:"size:16"`
	Tag       string         `json:"tag" gorm:"size:127"`
	Weapons   datatypes.JSON `json:"weapons" gorm:"default:'[]'"` // weapon profile names in the loadout

	Loadouts      []WeaponLoadout
	FiredEvents   []FiredEvent
	HitEvents     []HitEvent
	DryFireEvents []DryFireEvent
	ReloadEvents  []ReloadEvent
	BoltEvents    []BoltEvent
}

func (*Session) TableName() string {
	return "sessions"
}

// WeaponLoadout stores the profile a weapon was simulated with
type WeaponLoadout struct {
	ID        uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	SessionID uint           `json:"sessionId" gorm:"index:idx_loadout_session_id"`
	Session   Session        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Name      string         `json:"name" gorm:"size:64"`
	Profile   datatypes.JSON `json:"profile"` // weapon.Profile as JSON
}

func (*WeaponLoadout) TableName() string {
	return "weapon_loadouts"
}

////////////////////////
// COMBAT EVENTS
////////////////////////

// FiredEvent is one bullet leaving a weapon on the authoritative side
type FiredEvent struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime" gorm:"index:idx_firedevent_sim_time"`
	SessionID  uint      `json:"sessionId" gorm:"index:idx_firedevent_session_id"`
	Session    Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	ShooterID  string    `json:"shooterId" gorm:"size:64;index:idx_firedevent_shooter_id"`
	WeaponID   string    `json:"weaponId" gorm:"size:36"`
	WeaponName string    `json:"weaponName" gorm:"size:64"`
	Primary    bool      `json:"primary"`
	FiringMode string    `json:"mode" gorm:"size:16"` // semi, burst or auto
	Spread     float32   `json:"spread"`
	AmmoLeft   int       `json:"ammoLeft"`
	Hit        bool      `json:"hit"`

	StartPosition geom.Point `json:"startPos"` // eye position of the shooter
	EndPosition   geom.Point `json:"endPos"`   // trace end or impact
}

func (*FiredEvent) TableName() string {
	return "fired_events"
}

// HitEvent is damage applied to an entity by a bullet
type HitEvent struct {
	ID         uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time  `json:"time"`
	SimTime    float64    `json:"simTime" gorm:"index:idx_hitevent_sim_time"`
	SessionID  uint       `json:"sessionId" gorm:"index:idx_hitevent_session_id"`
	Session    Session    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	ShooterID  string     `json:"shooterId" gorm:"size:64;index:idx_hitevent_shooter_id"`
	VictimID   string     `json:"victimId" gorm:"size:64;index:idx_hitevent_victim_id"`
	WeaponID   string     `json:"weaponId" gorm:"size:36"`
	WeaponName string     `json:"weaponName" gorm:"size:64"`
	Damage     float32    `json:"damage"`
	Distance   float32    `json:"distance"` // shooter eye to impact, engine units
	Surface    string     `json:"surface" gorm:"size:64"`
	Position   geom.Point `json:"position"`
}

func (*HitEvent) TableName() string {
	return "hit_events"
}

// DryFireEvent is a trigger pull on an empty clip
type DryFireEvent struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	SessionID  uint      `json:"sessionId" gorm:"index:idx_dryfireevent_session_id"`
	Session    Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	ShooterID  string    `json:"shooterId" gorm:"size:64"`
	WeaponID   string    `json:"weaponId" gorm:"size:36"`
	WeaponName string    `json:"weaponName" gorm:"size:64"`
	AutoReload bool      `json:"autoReload"`
}

func (*DryFireEvent) TableName() string {
	return "dry_fire_events"
}

// ReloadEvent is the start or completion of a reload
type ReloadEvent struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	SessionID  uint      `json:"sessionId" gorm:"index:idx_reloadevent_session_id"`
	Session    Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	ShooterID  string    `json:"shooterId" gorm:"size:64"`
	WeaponID   string    `json:"weaponId" gorm:"size:36"`
	WeaponName string    `json:"weaponName" gorm:"size:64"`
	Phase      string    `json:"phase" gorm:"size:16"`
	Ammo       int       `json:"ammo"`
	Reserve    int       `json:"reserve"`
}

func (*ReloadEvent) TableName() string {
	return "reload_events"
}

// BoltEvent is one step of a bolt-action cycle
type BoltEvent struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time `json:"time"`
	SimTime    float64   `json:"simTime"`
	SessionID  uint      `json:"sessionId" gorm:"index:idx_boltevent_session_id"`
	Session    Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	ShooterID  string    `json:"shooterId" gorm:"size:64"`
	WeaponID   string    `json:"weaponId" gorm:"size:36"`
	WeaponName string    `json:"weaponName" gorm:"size:64"`
	Phase      string    `json:"phase" gorm:"size:16"`
}

func (*BoltEvent) TableName() string {
	return "bolt_events"
}
