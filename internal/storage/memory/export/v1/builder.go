package v1

import (
	"cmp"
	"slices"

	"github.com/swbase/swb/internal/model/core"
)

// SessionData contains all the data needed to build an export
type SessionData struct {
	Session  core.Session
	Summary  core.SessionSummary
	Fired    []core.FiredEvent
	Hits     []core.HitEvent
	DryFires []core.DryFireEvent
	Reloads  []core.ReloadEvent
	Bolts    []core.BoltEvent
}

// Event type tags in Export.Events.
const (
	EventHit     = "hit"
	EventDryFire = "dryfire"
	EventReload  = "reload"
	EventBolt    = "bolt"
)

// Build creates an Export from the session data. Shooters and weapons are ordered by
// ID; events are ordered by simulation time, ties kept in recording order.
func Build(data *SessionData) Export {
	export := Export{
		Version:  FormatVersion,
		Session:  data.Session,
		Summary:  data.Summary,
		Shooters: make([]Shooter, 0),
		Events:   make([][]any, 0, len(data.Hits)+len(data.DryFires)+len(data.Reloads)+len(data.Bolts)),
	}

	shooters := make(map[string]map[string]*Weapon)
	for _, f := range data.Fired {
		export.EndTime = max(export.EndTime, f.SimTime)

		weapons, ok := shooters[f.ShooterID]
		if !ok {
			weapons = make(map[string]*Weapon)
			shooters[f.ShooterID] = weapons
		}
		w, ok := weapons[f.WeaponID]
		if !ok {
			w = &Weapon{ID: f.WeaponID, Name: f.WeaponName, Mode: f.FiringMode, Shots: make([][]any, 0)}
			weapons[f.WeaponID] = w
		}
		w.Shots = append(w.Shots, []any{
			f.SimTime,
			f.AmmoLeft,
			[]float64{f.EndPos.X, f.EndPos.Y, f.EndPos.Z},
			f.Hit,
			f.Primary,
		})
	}

	for id, weapons := range shooters {
		s := Shooter{ID: id, Weapons: make([]Weapon, 0, len(weapons))}
		for _, w := range weapons {
			s.Weapons = append(s.Weapons, *w)
		}
		slices.SortFunc(s.Weapons, func(a, b Weapon) int { return cmp.Compare(a.ID, b.ID) })
		export.Shooters = append(export.Shooters, s)
	}
	slices.SortFunc(export.Shooters, func(a, b Shooter) int { return cmp.Compare(a.ID, b.ID) })

	type timed struct {
		at  float64
		row []any
	}
	var rows []timed

	// Format: [simTime, "hit", shooter, victim, weapon, damage, distance, surface]
	for _, h := range data.Hits {
		rows = append(rows, timed{h.SimTime, []any{h.SimTime, EventHit, h.ShooterID, h.VictimID, h.WeaponName, h.Damage, h.Distance, h.Surface}})
	}
	// Format: [simTime, "dryfire", shooter, weapon, autoReload]
	for _, d := range data.DryFires {
		rows = append(rows, timed{d.SimTime, []any{d.SimTime, EventDryFire, d.ShooterID, d.WeaponName, d.AutoReload}})
	}
	// Format: [simTime, "reload", shooter, weapon, phase, ammo, reserve]
	for _, r := range data.Reloads {
		rows = append(rows, timed{r.SimTime, []any{r.SimTime, EventReload, r.ShooterID, r.WeaponName, r.Phase, r.Ammo, r.Reserve}})
	}
	// Format: [simTime, "bolt", shooter, weapon, phase]
	for _, b := range data.Bolts {
		rows = append(rows, timed{b.SimTime, []any{b.SimTime, EventBolt, b.ShooterID, b.WeaponName, b.Phase}})
	}

	slices.SortStableFunc(rows, func(a, b timed) int { return cmp.Compare(a.at, b.at) })
	for _, r := range rows {
		export.EndTime = max(export.EndTime, r.at)
		export.Events = append(export.Events, r.row)
	}

	return export
}
