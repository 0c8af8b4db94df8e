// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/swbase/swb/internal/model"
	"github.com/swbase/swb/internal/model/core"
)

// position3DToPoint converts a core.Position3D to an XYZ geom.Point
func position3DToPoint(p core.Position3D) geom.Point {
	coords := geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}, Z: p.Z, Type: geom.DimXYZ}
	return geom.NewPoint(coords)
}

// stringsToJSON converts a []string to datatypes.JSON for DB storage.
func stringsToJSON(items []string) datatypes.JSON {
	if len(items) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

// CoreToSession converts a core.Session to a GORM model.Session.
// A zero EndTime is stored as NULL.
func CoreToSession(s core.Session) model.Session {
	out := model.Session{
		Name:      s.Name,
		Map:       s.Map,
		StartTime: s.StartTime,
		TickRate:  float32(s.TickRate),
		Realm:     s.Realm,
		Tag:       s.Tag,
		Weapons:   stringsToJSON(s.Weapons),
	}
	out.ID = s.ID
	if !s.EndTime.IsZero() {
		end := s.EndTime
		out.EndTime = &end
	}
	return out
}

// CoreToLoadout marshals a weapon profile into a loadout row.
func CoreToLoadout(sessionID uint, name string, profile any) (model.WeaponLoadout, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return model.WeaponLoadout{}, err
	}
	return model.WeaponLoadout{
		SessionID: sessionID,
		Name:      name,
		Profile:   datatypes.JSON(data),
	}, nil
}

// CoreToFiredEvent converts a core.FiredEvent to a GORM model.FiredEvent.
func CoreToFiredEvent(e core.FiredEvent) model.FiredEvent {
	return model.FiredEvent{
		Time:          e.Time,
		SimTime:       e.SimTime,
		SessionID:     e.SessionID,
		ShooterID:     e.ShooterID,
		WeaponID:      e.WeaponID,
		WeaponName:    e.WeaponName,
		Primary:       e.Primary,
		FiringMode:    e.FiringMode,
		Spread:        float32(e.Spread),
		AmmoLeft:      e.AmmoLeft,
		Hit:           e.Hit,
		StartPosition: position3DToPoint(e.StartPos),
		EndPosition:   position3DToPoint(e.EndPos),
	}
}

// CoreToHitEvent converts a core.HitEvent to a GORM model.HitEvent.
func CoreToHitEvent(e core.HitEvent) model.HitEvent {
	return model.HitEvent{
		ID:         e.ID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		SessionID:  e.SessionID,
		ShooterID:  e.ShooterID,
		VictimID:   e.VictimID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Damage:     float32(e.Damage),
		Distance:   float32(e.Distance),
		Surface:    e.Surface,
		Position:   position3DToPoint(e.Position),
	}
}

// CoreToDryFireEvent converts a core.DryFireEvent to a GORM model.DryFireEvent.
func CoreToDryFireEvent(e core.DryFireEvent) model.DryFireEvent {
	return model.DryFireEvent{
		Time:       e.Time,
		SimTime:    e.SimTime,
		SessionID:  e.SessionID,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		AutoReload: e.AutoReload,
	}
}

// CoreToReloadEvent converts a core.ReloadEvent to a GORM model.ReloadEvent.
func CoreToReloadEvent(e core.ReloadEvent) model.ReloadEvent {
	return model.ReloadEvent{
		Time:       e.Time,
		SimTime:    e.SimTime,
		SessionID:  e.SessionID,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Phase:      e.Phase,
		Ammo:       e.Ammo,
		Reserve:    e.Reserve,
	}
}

// CoreToBoltEvent converts a core.BoltEvent to a GORM model.BoltEvent.
func CoreToBoltEvent(e core.BoltEvent) model.BoltEvent {
	return model.BoltEvent{
		Time:       e.Time,
		SimTime:    e.SimTime,
		SessionID:  e.SessionID,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Phase:      e.Phase,
	}
}
