// Package v1 contains the v1 export format for recorded simulation sessions.
package v1

import "github.com/swbase/swb/internal/model/core"

// FormatVersion is written into every export.
const FormatVersion = 1

// Export is the root JSON structure for v1 format
type Export struct {
	Version  int                 `json:"version"`
	Session  core.Session        `json:"session"`
	Summary  core.SessionSummary `json:"summary"`
	EndTime  float64             `json:"endTime"` // last simulation time seen, seconds
	Shooters []Shooter           `json:"shooters"`
	Events   [][]any             `json:"events"`
}

// Shooter groups the shots of one owner by weapon instance.
type Shooter struct {
	ID      string   `json:"id"`
	Weapons []Weapon `json:"weapons"`
}

// Weapon is one weapon instance and its shots.
// Each shot is [simTime, ammoLeft, [endX, endY, endZ], hit, primary].
type Weapon struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Mode  string  `json:"mode"`
	Shots [][]any `json:"shots"`
}
