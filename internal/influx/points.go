package influx

import (
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/swbase/swb/internal/model/core"
)

// FiredPoint converts a shot into a "shot" measurement.
func FiredPoint(e *core.FiredEvent) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("shot",
		map[string]string{
			"weapon":  e.WeaponName,
			"shooter": e.ShooterID,
			"mode":    e.FiringMode,
		},
		map[string]any{
			"spread":    e.Spread,
			"ammo_left": e.AmmoLeft,
			"hit":       e.Hit,
			"primary":   e.Primary,
			"sim_time":  e.SimTime,
		},
		stamp(e.Time))
}

// HitPoint converts damage into a "hit" measurement.
func HitPoint(e *core.HitEvent) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("hit",
		map[string]string{
			"weapon":  e.WeaponName,
			"shooter": e.ShooterID,
			"victim":  e.VictimID,
			"surface": e.Surface,
		},
		map[string]any{
			"damage":   e.Damage,
			"distance": e.Distance,
			"sim_time": e.SimTime,
		},
		stamp(e.Time))
}

// DryFirePoint converts an empty trigger pull into a "dryfire" measurement.
func DryFirePoint(e *core.DryFireEvent) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("dryfire",
		map[string]string{"weapon": e.WeaponName, "shooter": e.ShooterID},
		map[string]any{"auto_reload": e.AutoReload},
		stamp(e.Time))
}

// ReloadPoint converts a reload phase into a "reload" measurement.
func ReloadPoint(e *core.ReloadEvent) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("reload",
		map[string]string{"weapon": e.WeaponName, "shooter": e.ShooterID, "phase": e.Phase},
		map[string]any{"ammo": e.Ammo, "reserve": e.Reserve},
		stamp(e.Time))
}

// BoltPoint converts a bolt phase into a "bolt" measurement.
func BoltPoint(e *core.BoltEvent) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("bolt",
		map[string]string{"weapon": e.WeaponName, "shooter": e.ShooterID, "phase": e.Phase},
		map[string]any{"sim_time": e.SimTime},
		stamp(e.Time))
}

// TickPoint records how long one simulation tick took.
func TickPoint(realm string, tick uint64, took time.Duration, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPoint("tick",
		map[string]string{"realm": realm},
		map[string]any{"tick": int64(tick), "duration_us": took.Microseconds()},
		at)
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
