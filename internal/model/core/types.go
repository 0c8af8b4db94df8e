// internal/model/core/types.go
package core

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Position3D is a world position in engine units.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PositionFromVec converts an engine vector.
func PositionFromVec(v mgl64.Vec3) Position3D {
	return Position3D{X: v[0], Y: v[1], Z: v[2]}
}

// Vec returns the position as an engine vector.
func (p Position3D) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Session is one recorded simulation run.
type Session struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Map       string    `json:"map"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime,omitzero"`
	TickRate  float64   `json:"tickRate"`
	Realm     string    `json:"realm"`
	Tag       string    `json:"tag"`
	Weapons   []string  `json:"weapons"`
}

// WeaponStats aggregates the combat events of one weapon profile.
type WeaponStats struct {
	Shots    int     `json:"shots"`
	Hits     int     `json:"hits"`
	DryFires int     `json:"dryFires"`
	Reloads  int     `json:"reloads"`
	Bolts    int     `json:"bolts"`
	Damage   float64 `json:"damage"`
}

// Accuracy is hits per shot, zero before the first shot.
func (s WeaponStats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// SessionSummary is the running tally of a session, keyed by weapon name.
type SessionSummary struct {
	Session  Session                `json:"session"`
	Totals   WeaponStats            `json:"totals"`
	ByWeapon map[string]WeaponStats `json:"byWeapon"`
}

// NewSessionSummary returns an empty summary for s.
func NewSessionSummary(s Session) SessionSummary {
	return SessionSummary{Session: s, ByWeapon: make(map[string]WeaponStats)}
}

// Add applies fn to the weapon's stats and to the totals.
func (s *SessionSummary) Add(weapon string, fn func(*WeaponStats)) {
	ws := s.ByWeapon[weapon]
	fn(&ws)
	s.ByWeapon[weapon] = ws
	fn(&s.Totals)
}
