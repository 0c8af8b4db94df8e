package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Session", &Session{}, "sessions"},
		{"WeaponLoadout", &WeaponLoadout{}, "weapon_loadouts"},
		{"FiredEvent", &FiredEvent{}, "fired_events"},
		{"HitEvent", &HitEvent{}, "hit_events"},
		{"DryFireEvent", &DryFireEvent{}, "dry_fire_events"},
		{"ReloadEvent", &ReloadEvent{}, "reload_events"},
		{"BoltEvent", &BoltEvent{}, "bolt_events"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModelsCoverTables(t *testing.T) {
	assert.Len(t, DatabaseModels, 7)
	for _, m := range DatabaseModels {
		_, ok := m.(interface{ TableName() string })
		assert.True(t, ok, "%T has no TableName", m)
	}
}
