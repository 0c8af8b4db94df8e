package gormstorage

import (
	"fmt"

	"github.com/swbase/swb/internal/model"
	"github.com/swbase/swb/internal/model/convert"
	"github.com/swbase/swb/internal/model/core"
)

type weaponCount struct {
	WeaponName string
	N          int
	Damage     float64
}

// Summary flushes pending rows and aggregates the current session per weapon.
func (b *Backend) Summary() core.SessionSummary {
	id := b.currentSession()
	if b.deps.DB == nil || id == 0 {
		return core.NewSessionSummary(core.Session{ID: id})
	}
	if err := b.flush(); err != nil {
		b.log.Warn("summary flush failed", "error", err)
	}

	s, err := b.LoadSession(id)
	if err != nil {
		b.log.Error("summary: loading session", "id", id, "error", err)
		s = core.Session{ID: id}
	}
	sum := core.NewSessionSummary(s)

	tallies := []struct {
		model any
		where string
		apply func(*core.WeaponStats, weaponCount)
	}{
		{&model.FiredEvent{}, "", func(w *core.WeaponStats, c weaponCount) { w.Shots += c.N }},
		{&model.HitEvent{}, "", func(w *core.WeaponStats, c weaponCount) { w.Hits += c.N; w.Damage += c.Damage }},
		{&model.DryFireEvent{}, "", func(w *core.WeaponStats, c weaponCount) { w.DryFires += c.N }},
		{&model.ReloadEvent{}, core.ReloadFinished, func(w *core.WeaponStats, c weaponCount) { w.Reloads += c.N }},
		{&model.BoltEvent{}, core.BoltFinished, func(w *core.WeaponStats, c weaponCount) { w.Bolts += c.N }},
	}
	for _, t := range tallies {
		rows, err := b.countByWeapon(id, t.model, t.where)
		if err != nil {
			b.log.Error("summary: counting", "error", err)
			continue
		}
		for _, r := range rows {
			sum.Add(r.WeaponName, func(w *core.WeaponStats) { t.apply(w, r) })
		}
	}
	return sum
}

func (b *Backend) countByWeapon(sessionID uint, m any, phase string) ([]weaponCount, error) {
	sel := "weapon_name, count(*) AS n"
	if _, ok := m.(*model.HitEvent); ok {
		sel += ", coalesce(sum(damage), 0) AS damage"
	}
	q := b.deps.DB.Model(m).Select(sel).Where("session_id = ?", sessionID)
	if phase != "" {
		q = q.Where("phase = ?", phase)
	}
	var rows []weaponCount
	if err := q.Group("weapon_name").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("counting %T: %w", m, err)
	}
	return rows, nil
}

// LoadSession reads a stored session.
func (b *Backend) LoadSession(id uint) (core.Session, error) {
	if b.deps.DB == nil {
		return core.Session{}, fmt.Errorf("no database configured")
	}
	var row model.Session
	if err := b.deps.DB.First(&row, id).Error; err != nil {
		return core.Session{}, fmt.Errorf("loading session %d: %w", id, err)
	}
	return convert.SessionToCore(row), nil
}

// LoadFiredEvents reads the stored shots of a session in simulation order.
func (b *Backend) LoadFiredEvents(sessionID uint) ([]core.FiredEvent, error) {
	if b.deps.DB == nil {
		return nil, fmt.Errorf("no database configured")
	}
	var rows []model.FiredEvent
	if err := b.deps.DB.Where("session_id = ?", sessionID).Order("sim_time, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading fired events: %w", err)
	}
	out := make([]core.FiredEvent, len(rows))
	for i, r := range rows {
		out[i] = convert.FiredEventToCore(r)
	}
	return out, nil
}
