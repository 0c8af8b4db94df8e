package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPositionRoundTrip(t *testing.T) {
	v := mgl64.Vec3{1.5, -2, 300}
	assert.Equal(t, v, PositionFromVec(v).Vec())
}

func TestSessionSummary_Add(t *testing.T) {
	s := NewSessionSummary(Session{Name: "range"})

	s.Add("ak47", func(w *WeaponStats) { w.Shots += 2; w.Hits++; w.Damage += 25 })
	s.Add("pump", func(w *WeaponStats) { w.Shots += 8 })

	assert.Equal(t, 10, s.Totals.Shots)
	assert.Equal(t, 1, s.Totals.Hits)
	assert.Equal(t, 0.5, s.ByWeapon["ak47"].Accuracy())
	assert.Equal(t, 0.0, s.ByWeapon["pump"].Accuracy())
	assert.Equal(t, 0.0, WeaponStats{}.Accuracy())
}
