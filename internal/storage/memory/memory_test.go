package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model/core"
	v1 "github.com/swbase/swb/internal/storage/memory/export/v1"
)

func newSession(name string) *core.Session {
	return &core.Session{
		Name:      name,
		Map:       "de_test",
		StartTime: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		TickRate:  66,
		Realm:     "listen",
		Weapons:   []string{"ak47", "awp"},
	}
}

func recordSome(t *testing.T, b *Backend) {
	t.Helper()
	require.NoError(t, b.RecordFiredEvent(&core.FiredEvent{ShooterID: "p1", WeaponID: "w1", WeaponName: "ak47", SimTime: 0.1, Hit: true}))
	require.NoError(t, b.RecordFiredEvent(&core.FiredEvent{ShooterID: "p1", WeaponID: "w1", WeaponName: "ak47", SimTime: 0.2}))
	require.NoError(t, b.RecordHitEvent(&core.HitEvent{ShooterID: "p1", VictimID: "t1", WeaponName: "ak47", SimTime: 0.1, Damage: 25}))
	require.NoError(t, b.RecordDryFireEvent(&core.DryFireEvent{ShooterID: "p1", WeaponName: "ak47", SimTime: 0.3}))
	require.NoError(t, b.RecordReloadEvent(&core.ReloadEvent{WeaponName: "ak47", Phase: core.ReloadStarted, SimTime: 0.3}))
	require.NoError(t, b.RecordReloadEvent(&core.ReloadEvent{WeaponName: "ak47", Phase: core.ReloadFinished, SimTime: 2.8, Ammo: 30}))
	require.NoError(t, b.RecordBoltEvent(&core.BoltEvent{WeaponName: "awp", Phase: core.BoltStarted, SimTime: 1}))
	require.NoError(t, b.RecordBoltEvent(&core.BoltEvent{WeaponName: "awp", Phase: core.BoltFinished, SimTime: 1.5}))
}

func TestStartSessionAssignsIncrementingIDs(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.Init())
	defer b.Close()

	s1 := newSession("one")
	require.NoError(t, b.StartSession(s1))
	s2 := newSession("two")
	require.NoError(t, b.StartSession(s2))

	assert.Equal(t, uint(1), s1.ID)
	assert.Equal(t, uint(2), s2.ID)
	assert.Equal(t, "two", b.Summary().Session.Name)
}

func TestSummaryTallies(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartSession(newSession("tally")))
	recordSome(t, b)

	sum := b.Summary()
	ak := sum.ByWeapon["ak47"]
	assert.Equal(t, 2, ak.Shots)
	assert.Equal(t, 1, ak.Hits)
	assert.Equal(t, 1, ak.DryFires)
	assert.Equal(t, 1, ak.Reloads)
	assert.InDelta(t, 25.0, ak.Damage, 1e-9)
	assert.InDelta(t, 0.5, ak.Accuracy(), 1e-9)
	assert.Equal(t, 1, sum.ByWeapon["awp"].Bolts)
	assert.Equal(t, 2, sum.Totals.Shots)
	assert.Equal(t, 1, sum.Totals.Bolts)

	// The copy must not alias internal state.
	sum.ByWeapon["ak47"] = core.WeaponStats{}
	assert.Equal(t, 2, b.Summary().ByWeapon["ak47"].Shots)
}

func TestEventsBeforeStartAreNotTallied(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.RecordFiredEvent(&core.FiredEvent{WeaponName: "ak47"}))
	assert.Zero(t, b.Summary().Totals.Shots)
}

func TestEndSessionWithoutStartIsNoop(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.EndSession())
	assert.Empty(t, b.ExportedFilePath())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEndSessionExportsPlainJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	s := newSession("dust run/1")
	require.NoError(t, b.StartSession(s))
	recordSome(t, b)
	s.EndTime = s.StartTime.Add(10 * time.Second)
	require.NoError(t, b.EndSession())

	path := b.ExportedFilePath()
	assert.Equal(t, filepath.Join(dir, "dust_run_1_20260301_123000.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var export v1.Export
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Equal(t, v1.FormatVersion, export.Version)
	assert.Equal(t, "dust run/1", export.Session.Name)
	assert.False(t, export.Session.EndTime.IsZero())
	assert.Equal(t, 2, export.Summary.Totals.Shots)
	require.Len(t, export.Shooters, 1)
	assert.Len(t, export.Shooters[0].Weapons[0].Shots, 2)
	assert.Len(t, export.Events, 6)
	assert.InDelta(t, 2.8, export.EndTime, 1e-9)
}

func TestEndSessionExportsGzip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.StartSession(newSession("gz")))
	recordSome(t, b)
	require.NoError(t, b.EndSession())

	path := b.ExportedFilePath()
	assert.True(t, strings.HasSuffix(path, ".json.gz"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var export v1.Export
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Equal(t, "gz", export.Session.Name)
	assert.Equal(t, 1, export.Summary.ByWeapon["awp"].Bolts)
}
