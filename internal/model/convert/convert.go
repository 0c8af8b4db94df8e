package convert

import (
	"encoding/json"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/swbase/swb/internal/model"
	"github.com/swbase/swb/internal/model/core"
)

// pointToPosition3D converts a geom.Point to a core.Position3D
func pointToPosition3D(p geom.Point) core.Position3D {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Position3D{}
	}
	return core.Position3D{X: coord.XY.X, Y: coord.XY.Y, Z: coord.Z}
}

// SessionToCore converts a GORM Session to a core.Session.
func SessionToCore(s model.Session) core.Session {
	var weapons []string
	if len(s.Weapons) > 0 {
		_ = json.Unmarshal(s.Weapons, &weapons)
	}

	out := core.Session{
		ID:        s.ID,
		Name:      s.Name,
		Map:       s.Map,
		StartTime: s.StartTime,
		TickRate:  float64(s.TickRate),
		Realm:     s.Realm,
		Tag:       s.Tag,
		Weapons:   weapons,
	}
	if s.EndTime != nil {
		out.EndTime = *s.EndTime
	}
	return out
}

// FiredEventToCore converts a GORM FiredEvent to a core.FiredEvent.
func FiredEventToCore(e model.FiredEvent) core.FiredEvent {
	return core.FiredEvent{
		SessionID:  e.SessionID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Primary:    e.Primary,
		FiringMode: e.FiringMode,
		Spread:     float64(e.Spread),
		AmmoLeft:   e.AmmoLeft,
		StartPos:   pointToPosition3D(e.StartPosition),
		EndPos:     pointToPosition3D(e.EndPosition),
		Hit:        e.Hit,
	}
}

// HitEventToCore converts a GORM HitEvent to a core.HitEvent.
func HitEventToCore(e model.HitEvent) core.HitEvent {
	return core.HitEvent{
		ID:         e.ID,
		SessionID:  e.SessionID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		ShooterID:  e.ShooterID,
		VictimID:   e.VictimID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Damage:     float64(e.Damage),
		Distance:   float64(e.Distance),
		Surface:    e.Surface,
		Position:   pointToPosition3D(e.Position),
	}
}

// DryFireEventToCore converts a GORM DryFireEvent to a core.DryFireEvent.
func DryFireEventToCore(e model.DryFireEvent) core.DryFireEvent {
	return core.DryFireEvent{
		SessionID:  e.SessionID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		AutoReload: e.AutoReload,
	}
}

// ReloadEventToCore converts a GORM ReloadEvent to a core.ReloadEvent.
func ReloadEventToCore(e model.ReloadEvent) core.ReloadEvent {
	return core.ReloadEvent{
		SessionID:  e.SessionID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Phase:      e.Phase,
		Ammo:       e.Ammo,
		Reserve:    e.Reserve,
	}
}

// BoltEventToCore converts a GORM BoltEvent to a core.BoltEvent.
func BoltEventToCore(e model.BoltEvent) core.BoltEvent {
	return core.BoltEvent{
		SessionID:  e.SessionID,
		Time:       e.Time,
		SimTime:    e.SimTime,
		ShooterID:  e.ShooterID,
		WeaponID:   e.WeaponID,
		WeaponName: e.WeaponName,
		Phase:      e.Phase,
	}
}
