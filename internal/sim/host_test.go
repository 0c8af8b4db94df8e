package sim

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/weapon"
	"github.com/swbase/swb/internal/weapon/mocks"
)

type recordingSink struct {
	mu     sync.Mutex
	events map[string][]any
}

func newSink() *recordingSink {
	return &recordingSink{events: make(map[string][]any)}
}

func (s *recordingSink) Publish(command string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[command] = append(s.events[command], payload)
}

func (s *recordingSink) count(command string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events[command])
}

func simConfig(realm string, d time.Duration) config.SimConfig {
	return config.SimConfig{
		Realm:     realm,
		TickRate:  66,
		FrameRate: 144,
		Duration:  d,
		BoltAbort: "keep",
		Seed:      7,
		Players:   2,
		Targets:   2,
	}
}

var fixedClock = func() time.Time { return time.Unix(1700000000, 0) }

func mustScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

func TestParseRealmAndPolicy(t *testing.T) {
	for in, want := range map[string]weapon.Realm{
		"server": weapon.RealmServer, "Dedicated": weapon.RealmServer,
		"client": weapon.RealmClient, "listen": weapon.RealmListen, "": weapon.RealmListen,
	} {
		got, err := ParseRealm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRealm("moon")
	assert.Error(t, err)

	p, err := ParseBoltAbort("clear")
	require.NoError(t, err)
	assert.Equal(t, weapon.BoltAbortClear, p)
	_, err = ParseBoltAbort("maybe")
	assert.Error(t, err)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := simConfig("listen", time.Second)
	cfg.TickRate = 0
	_, err := New(Options{Config: cfg})
	assert.Error(t, err)

	cfg = simConfig("listen", time.Second)
	cfg.Script = "/does/not/exist.txt"
	_, err = New(Options{Config: cfg})
	assert.Error(t, err)
}

func TestListenRunRecordsCombat(t *testing.T) {
	sink := newSink()
	h, err := New(Options{Config: simConfig("listen", 4*time.Second), Events: sink, SessionID: 3, Clock: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, []string{"ak47", "scout", "nova"}, h.WeaponNames())

	var ticks int
	h.onTick = func(uint64, time.Duration) { ticks++ }
	require.NoError(t, h.Run(context.Background()))

	r := h.Report()
	assert.Equal(t, uint64(264), r.Ticks)
	assert.Equal(t, 264, ticks)
	assert.InDelta(t, 4, r.SimTime, 1e-6)
	assert.Greater(t, r.Frames, uint64(500))

	require.Positive(t, sink.count(core.CommandFired))
	assert.Positive(t, sink.count(core.CommandHit))
	assert.Positive(t, r.Damage)
	assert.Positive(t, sink.count(core.CommandReload))

	fired := sink.events[core.CommandFired][0].(core.FiredEvent)
	assert.Equal(t, uint(3), fired.SessionID)
	assert.Equal(t, "ak47", fired.WeaponName)
	assert.Equal(t, fixedClock(), fired.Time)

	// The local player renders its own effects; p2 is a remote viewer.
	assert.Contains(t, r.Effects, "host")
	assert.Contains(t, r.Effects, "p2")
	assert.NotContains(t, r.Effects, "p1")
	assert.Positive(t, r.Effects["host"]["impact"])
	assert.Positive(t, r.Effects["host"]["sound"])
	assert.Positive(t, r.Effects["p2"]["particle"])
	assert.Positive(t, r.Effects["p2"]["impact"])
	assert.Positive(t, r.CosmeticSent)
	assert.Zero(t, r.CosmeticDropped)

	view := h.View()
	assert.True(t, view.Visible)
	assert.Positive(t, view.WeaponFOV)
	assert.Positive(t, view.PlayerFOV)
}

func TestClientRunIsCosmeticOnly(t *testing.T) {
	sink := newSink()
	h, err := New(Options{Config: simConfig("client", 4*time.Second), Events: sink})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	assert.Zero(t, sink.count(core.CommandFired))
	assert.Zero(t, sink.count(core.CommandHit))
	r := h.Report()
	assert.Zero(t, r.Damage)
	assert.Equal(t, []string{"host"}, keys(r.Effects))
	assert.Positive(t, r.Effects["host"]["sound"])
	assert.Positive(t, r.Effects["host"]["particle"])
	assert.Zero(t, r.Effects["host"]["impact"], "bullets are only fired on the server")
}

func TestServerRunHasNoLocalView(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventSink(ctrl)
	events.EXPECT().Publish(core.CommandFired, gomock.Any()).MinTimes(1)
	events.EXPECT().Publish(gomock.Not(core.CommandFired), gomock.Any()).AnyTimes()

	h, err := New(Options{Config: simConfig("server", 4*time.Second), Events: events})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	_, ok := h.Frame(0, 0.01)
	assert.False(t, ok)
	r := h.Report()
	assert.Zero(t, r.Frames)
	assert.Contains(t, r.Effects, "p1")
	assert.Contains(t, r.Effects, "p2")
	assert.Zero(t, r.Effects["host"]["impact"], "a dedicated server is not a viewer")
	assert.Positive(t, r.Effects["p1"]["impact"])
}

func TestScriptedDryFireAutoReload(t *testing.T) {
	sink := newSink()
	cfg := simConfig("server", 4*time.Second)
	cfg.Players = 1
	cfg.Targets = 1
	h, err := New(Options{
		Config: cfg,
		Events: sink,
		Script: mustScript(t, "0 p1 look t1\n0 p1 +attack1\n"),
	})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	assert.Equal(t, 30, sink.count(core.CommandFired), "one clip before the dry fire")
	require.Positive(t, sink.count(core.CommandDryFire))
	dry := sink.events[core.CommandDryFire][0].(core.DryFireEvent)
	assert.True(t, dry.AutoReload)

	var started bool
	for _, e := range sink.events[core.CommandReload] {
		if e.(core.ReloadEvent).Phase == core.ReloadStarted {
			started = true
		}
	}
	assert.True(t, started)

	ws := h.Weapons()
	require.Len(t, ws, 3)
	assert.Equal(t, "ak47", ws[0].Name)
	assert.Equal(t, "p1", ws[0].Owner)
	assert.Equal(t, "server", ws[0].Realm)
	assert.True(t, ws[0].Reloading)
	assert.Equal(t, 90, ws[0].Reserve)
}

func TestEquipAndBoltCycle(t *testing.T) {
	sink := newSink()
	cfg := simConfig("listen", 4*time.Second)
	cfg.Players = 1
	cfg.Targets = 1
	h, err := New(Options{
		Config: cfg,
		Events: sink,
		Script: mustScript(t, "0 p1 look t1\n0 p1 equip scout\n1 p1 attack1\n"),
	})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	assert.Equal(t, 1, sink.count(core.CommandFired))
	var phases []string
	for _, e := range sink.events[core.CommandBolt] {
		phases = append(phases, e.(core.BoltEvent).Phase)
	}
	assert.Contains(t, phases, core.BoltFinished)

	p := h.Players()[0]
	require.NotNil(t, p.Active())
	assert.Equal(t, "scout", p.Active().Name())
	assert.Equal(t, 1, p.recoils)
	assert.Equal(t, "b_attack", p.lastAnim)
}

func TestTuckedWeaponHoldsFire(t *testing.T) {
	sink := newSink()
	cfg := simConfig("server", 2*time.Second)
	cfg.Players = 1
	cfg.Targets = 1
	h, err := New(Options{
		Config: cfg,
		Events: sink,
		Script: mustScript(t, "0 p1 look t1\n0 p1 +tuck\n0 p1 +attack1\n1 p1 -tuck\n"),
	})
	require.NoError(t, err)

	p := h.Players()[0]
	for range 60 {
		h.Step(context.Background())
	}
	assert.True(t, p.Active().State.Tucked)
	assert.Zero(t, sink.count(core.CommandFired), "a tucked weapon does not fire")
	assert.Zero(t, sink.count(core.CommandDryFire))

	require.NoError(t, h.Run(context.Background()))
	assert.False(t, p.Active().State.Tucked)
	assert.Positive(t, sink.count(core.CommandFired))
}

func TestUnknownScriptTargetsAreIgnored(t *testing.T) {
	cfg := simConfig("server", time.Second)
	h, err := New(Options{
		Config: cfg,
		Script: mustScript(t, "0 p9 +attack1\n0 p1 look nowhere\n0 p1 equip bazooka\n"),
	})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, "ak47", h.Players()[0].Active().Name())
}

func TestRunStopsOnCancel(t *testing.T) {
	h, err := New(Options{Config: simConfig("listen", time.Hour)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Run(ctx), context.Canceled)
	assert.Zero(t, h.Report().Ticks)
}

func TestJumpLeavesGround(t *testing.T) {
	cfg := simConfig("listen", time.Second)
	cfg.Players = 1
	h, err := New(Options{Config: cfg, Script: mustScript(t, "0 p1 jump\n")})
	require.NoError(t, err)

	p := h.Players()[0]
	h.Step(context.Background())
	assert.False(t, p.Grounded())
	assert.Positive(t, p.Position.Z())

	for range 66 {
		h.Step(context.Background())
	}
	assert.True(t, p.Grounded())
}

// Two hosts with the same seed and script produce the same combat.
func TestSameSeedSameRun(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := simConfig("listen", 1500*time.Millisecond)
		cfg.Seed = rapid.Uint64().Draw(t, "seed")
		cfg.Players = rapid.IntRange(1, 3).Draw(t, "players")

		run := func() ([]any, Report) {
			sink := newSink()
			script, err := ParseScript(strings.NewReader("0 * look t1\n0 * +attack1\n"))
			if err != nil {
				t.Fatalf("script: %v", err)
			}
			h, err := New(Options{Config: cfg, Events: sink, Clock: fixedClock, Script: script})
			if err != nil {
				t.Fatalf("new host: %v", err)
			}
			if err := h.Run(context.Background()); err != nil {
				t.Fatalf("run: %v", err)
			}
			return sink.events[core.CommandFired], h.Report()
		}
		a, ra := run()
		b, rb := run()
		if len(a) != len(b) {
			t.Fatalf("fired %d vs %d", len(a), len(b))
		}
		for i := range a {
			fa, fb := a[i].(core.FiredEvent), b[i].(core.FiredEvent)
			fa.WeaponID, fb.WeaponID = "", ""
			if fa != fb {
				t.Fatalf("shot %d differs: %+v vs %+v", i, fa, fb)
			}
		}
		if ra.Damage != rb.Damage {
			t.Fatalf("damage %v vs %v", ra.Damage, rb.Damage)
		}
	})
}

func keys(m map[string]map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
