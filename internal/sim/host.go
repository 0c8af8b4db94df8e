// Package sim is the headless host: scripted players carrying weapons in a small world
// of hit spheres, ticked at the server rate with the local view model animated at the
// frame rate.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/logging"
	"github.com/swbase/swb/internal/schedule"
	"github.com/swbase/swb/internal/status"
	"github.com/swbase/swb/internal/viewmodel"
	"github.com/swbase/swb/internal/weapon"
)

const (
	targetDistance = 768.0
	targetHeight   = 48.0
	targetRadius   = 24.0
	targetHealth   = 150.0
	playerSpacing  = 96.0
	seedMix        = 0x9e3779b97f4a7c15
)

// ParseRealm accepts server, client or listen.
func ParseRealm(s string) (weapon.Realm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server", "dedicated":
		return weapon.RealmServer, nil
	case "client":
		return weapon.RealmClient, nil
	case "listen", "":
		return weapon.RealmListen, nil
	}
	return 0, fmt.Errorf("unknown realm %q", s)
}

// ParseBoltAbort accepts keep or clear.
func ParseBoltAbort(s string) (weapon.BoltAbortPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return weapon.BoltAbortKeep, nil
	case "clear":
		return weapon.BoltAbortClear, nil
	}
	return 0, fmt.Errorf("unknown bolt abort policy %q", s)
}

// Options configures a Host.
type Options struct {
	Config    config.SimConfig
	Loadouts  []config.Loadout
	SessionID uint
	Events    weapon.EventSink
	Metrics   *weapon.Metrics
	Logger    *slog.Logger
	// Script overrides Config.Script and the default timeline.
	Script *Script
	Clock  func() time.Time
	// OnTick is told how long each tick took.
	OnTick func(tick uint64, took time.Duration)
}

// Report summarizes a run.
type Report struct {
	Ticks           uint64                    `json:"ticks"`
	Frames          uint64                    `json:"frames"`
	SimTime         float64                   `json:"simTime"`
	Damage          float64                   `json:"damage"`
	Downs           int                       `json:"downs"`
	CosmeticSent    int                       `json:"cosmeticSent"`
	CosmeticDropped int                       `json:"cosmeticDropped"`
	Effects         map[string]map[string]int `json:"effects"`
}

// Host owns the simulation. Step and Frame run on the caller's goroutine; Weapons and
// Report may be called concurrently from status handlers.
type Host struct {
	cfg     config.SimConfig
	realm   weapon.Realm
	dt      float64
	frameDt float64
	log     *slog.Logger
	onTick  func(uint64, time.Duration)

	mu       sync.Mutex
	sched    *schedule.Scheduler
	ctrl     *weapon.Controller
	world    *World
	bcast    *Broadcaster
	effects  map[string]*EffectLog
	pred     *prediction
	players  []*Player
	local    *Player
	profiles map[string]viewmodel.Profile
	animator *viewmodel.Animator
	script   *Script
	tick     uint64
	frame    uint64
	view     viewmodel.Output
}

// New builds the world, players, weapons and controllers described by opts.
func New(opts Options) (*Host, error) {
	cfg := opts.Config
	realm, err := ParseRealm(cfg.Realm)
	if err != nil {
		return nil, err
	}
	policy, err := ParseBoltAbort(cfg.BoltAbort)
	if err != nil {
		return nil, err
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %v", cfg.TickRate)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("component", "sim")

	h := &Host{
		cfg:      cfg,
		realm:    realm,
		dt:       1 / cfg.TickRate,
		log:      log,
		onTick:   opts.OnTick,
		sched:    schedule.New(),
		world:    NewWorld(&Pool{Min: mgl64.Vec3{256, -512, -96}, Max: mgl64.Vec3{448, 512, 0}}, log),
		bcast:    NewBroadcaster(),
		effects:  make(map[string]*EffectLog),
		pred:     &prediction{},
		profiles: make(map[string]viewmodel.Profile),
	}
	if cfg.FrameRate > 0 {
		h.frameDt = 1 / cfg.FrameRate
	}

	targets := spawnTargets(h.world, cfg.Targets)
	h.players = spawnPlayers(h.world, max(cfg.Players, 1), realm.IsClient())
	if realm.IsClient() {
		h.local = h.players[0]
	}

	hostFX := NewEffectLog("host", log)
	h.effects["host"] = hostFX
	h.ctrl = weapon.NewController(weapon.Dependencies{
		Realm:       realm,
		Scheduler:   h.sched,
		Physics:     h.world,
		Damager:     h.world,
		Effects:     hostFX,
		Prediction:  h.pred,
		Broadcaster: h.bcast,
		Events:      opts.Events,
		Metrics:     opts.Metrics,
		Logger:      log,
		Rand:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^seedMix)),
		BoltAbort:   policy,
		SessionID:   opts.SessionID,
		Clock:       opts.Clock,
	})
	if realm.IsClient() {
		h.bcast.AddViewer("host", h.ctrl, hostFX)
	}
	if realm.IsServer() {
		for i, p := range h.players {
			if p == h.local {
				continue
			}
			fx := NewEffectLog(p.Name, log)
			h.effects[p.Name] = fx
			seed := cfg.Seed + uint64(i) + 1
			h.bcast.AddViewer(p.Name, weapon.NewController(weapon.Dependencies{
				Realm:     weapon.RealmClient,
				Scheduler: h.sched,
				Physics:   h.world,
				Effects:   fx,
				Logger:    log.With("viewer", p.Name),
				Rand:      rand.New(rand.NewPCG(seed, seed^seedMix)),
				Clock:     opts.Clock,
			}), fx)
		}
	}

	loadouts := WithDefaults(opts.Loadouts)
	names := make([]string, 0, len(loadouts))
	for _, l := range loadouts {
		names = append(names, l.Weapon.Name)
		h.profiles[l.Weapon.Name] = l.ViewModel
	}
	for _, p := range h.players {
		for _, l := range loadouts {
			w := weapon.New(l.Weapon)
			h.bcast.Track(w)
			p.Give(w)
		}
	}
	if h.local != nil {
		h.animator = viewmodel.New(h.profiles[h.local.Active().Name()])
	}

	switch {
	case opts.Script != nil:
		h.script = opts.Script
	case cfg.Script != "":
		h.script, err = LoadScript(cfg.Script)
		if err != nil {
			return nil, err
		}
	default:
		playerNames := make([]string, len(h.players))
		for i, p := range h.players {
			playerNames[i] = p.Name
		}
		h.script = DefaultScript(playerNames, targets, names, cfg.Duration.Seconds())
	}
	return h, nil
}

func spawnTargets(w *World, n int) []string {
	names := make([]string, 0, n)
	for i := range n {
		// Spread targets across a 60 degree arc in front of the players.
		angle := 0.0
		if n > 1 {
			angle = -30 + 60*float64(i)/float64(n-1)
		}
		rad := mgl64.DegToRad(angle)
		name := fmt.Sprintf("t%d", i+1)
		w.Add(NewTarget(name, mgl64.Vec3{
			math.Cos(rad) * targetDistance,
			math.Sin(rad) * targetDistance,
			targetHeight,
		}, targetRadius, targetHealth))
		names = append(names, name)
	}
	return names
}

func spawnPlayers(w *World, n int, localFirst bool) []*Player {
	players := make([]*Player, 0, n)
	for i := range n {
		y := (float64(i) - float64(n-1)/2) * playerSpacing
		p := NewPlayer(fmt.Sprintf("p%d", i+1), mgl64.Vec3{0, y, 0}, localFirst && i == 0)
		w.Add(p)
		players = append(players, p)
	}
	return players
}

// Realm returns the side the host controller runs on.
func (h *Host) Realm() weapon.Realm {
	return h.realm
}

// WeaponNames returns the loadout names in inventory order.
func (h *Host) WeaponNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.players) == 0 {
		return nil
	}
	var out []string
	for _, w := range h.players[0].Weapons() {
		out = append(out, w.Name())
	}
	return out
}

// Now returns the simulation clock in seconds.
func (h *Host) Now() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sched.Now()
}

// Step runs one server tick: due script steps, movement, weapon simulation and the
// scheduled continuations.
func (h *Host) Step(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	h.tick++
	ctx = logging.WithTick(ctx, h.tick)
	now := h.sched.Now()

	h.world.Respawn(now)
	for _, s := range h.script.Due(now) {
		h.apply(ctx, s)
	}
	for _, p := range h.players {
		p.move(h.dt)
		w := p.Active()
		if w == nil {
			continue
		}
		w.State.Aiming = p.aiming
		w.State.Tucked = p.tucked
		h.ctrl.Simulate(w, &p.input, h.dt)
		if h.ctrl.ConsumeRecoil(w) {
			p.kick()
		}
	}
	h.sched.Advance(h.dt)
	for _, p := range h.players {
		p.input.endTick()
	}

	if h.onTick != nil {
		h.onTick(h.tick, time.Since(start))
	}
}

func (h *Host) apply(ctx context.Context, s Step) {
	targets := h.players
	if s.Player != AllPlayers {
		targets = nil
		for _, p := range h.players {
			if p.Name == s.Player {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			h.log.WarnContext(ctx, "script step for unknown player", "player", s.Player, "line", s.Line)
			return
		}
	}
	h.log.DebugContext(ctx, "script step", "player", s.Player, "action", s.Action, "arg", s.Arg)

	name := strings.TrimLeft(s.Action, "+-")
	hold := strings.HasPrefix(s.Action, "+")
	release := strings.HasPrefix(s.Action, "-")
	for _, p := range targets {
		switch name {
		case "look":
			if s.Arg == "none" {
				p.LookAt(nil)
				continue
			}
			b := h.world.Find(s.Arg)
			if b == nil {
				h.log.WarnContext(ctx, "look at unknown body", "body", s.Arg, "line", s.Line)
				continue
			}
			p.LookAt(b)
		case "equip":
			if !p.Equip(s.Arg) {
				h.log.WarnContext(ctx, "equip of weapon not carried", "player", p.Name, "weapon", s.Arg)
				continue
			}
			if p == h.local && h.animator != nil {
				h.animator.SetProfile(h.profiles[s.Arg])
			}
		case "view":
			p.third = s.Arg == "third"
		case "forward":
			p.forward = hold
		case "aim":
			p.aiming = hold
		case "tuck":
			p.tucked = hold
		default:
			btn := buttons[name]
			switch {
			case hold:
				p.input.press(btn)
			case release:
				p.input.release(btn)
			default:
				p.input.tap(btn)
			}
		}
	}
}

// Frame animates the local view model. It reports false when there is no local viewer.
func (h *Host) Frame(now, delta float64) (viewmodel.Output, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.animator == nil {
		return viewmodel.Output{}, false
	}
	h.frame++
	p := h.local
	eye := p.EyeRotation()
	in := viewmodel.FrameInput{
		Frame:       h.frame,
		Now:         now,
		Delta:       delta,
		FirstPerson: p.FirstPerson(),
		CameraPos:   p.EyePosition(),
		CameraRot:   eye,
		EyeRot:      eye,
		Velocity:    p.Velocity,
		Grounded:    p.Grounded(),
		Aiming:      p.aiming,
		DuckHeld:    p.input.Down(weapon.ButtonDuck),
		JumpHeld:    p.input.Down(weapon.ButtonJump),
	}
	if w := p.Active(); w != nil {
		in.Running = w.State.Running
		in.SincePrimaryFire = w.State.SincePrimary.Elapsed()
	}
	h.view = h.animator.Update(in)
	return h.view, true
}

// Run steps the simulation for the configured duration, rendering frames in between
// ticks. With Realtime set ticks are paced against the wall clock. Cancelling ctx stops
// the run and returns ctx's error.
func (h *Host) Run(ctx context.Context) error {
	ticks := int(math.Round(h.cfg.Duration.Seconds() * h.cfg.TickRate))
	h.log.Info("simulation started",
		"realm", h.realm.String(),
		"ticks", ticks,
		"players", len(h.players),
		"script", h.script.Len())

	var pace *time.Ticker
	if h.cfg.Realtime {
		pace = time.NewTicker(time.Duration(h.dt * float64(time.Second)))
		defer pace.Stop()
	}

	nextFrame := 0.0
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.Step(ctx)
		if h.frameDt > 0 {
			for now := h.Now(); nextFrame <= now; nextFrame += h.frameDt {
				h.Frame(nextFrame, h.frameDt)
			}
		}
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace.C:
			}
		}
	}

	r := h.Report()
	h.log.Info("simulation finished",
		"ticks", r.Ticks,
		"frames", r.Frames,
		"simTime", r.SimTime,
		"damage", r.Damage,
		"downs", r.Downs)
	return nil
}

// View returns the last rendered view model frame.
func (h *Host) View() viewmodel.Output {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.view
}

// Weapons snapshots every carried weapon for the status server.
func (h *Host) Weapons() []status.WeaponStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []status.WeaponStatus
	for _, p := range h.players {
		for _, w := range p.Weapons() {
			s := w.State
			ws := status.WeaponStatus{
				ID:        w.ID(),
				Name:      w.Name(),
				Owner:     p.Name,
				Realm:     h.realm.String(),
				Ammo:      s.Ammo,
				Reserve:   s.Reserve,
				ClipSize:  w.Profile.Primary.ClipSize,
				Reloading: s.Reloading,
				Heat:      float64(s.BarrelHeat),
			}
			if s.InBoltBack {
				ws.Bolt = "cycling"
			}
			out = append(out, ws)
		}
	}
	return out
}

// Report summarizes the run so far.
func (h *Host) Report() Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	damage, downs := h.world.Stats()
	sent, dropped := h.bcast.Sent()
	r := Report{
		Ticks:           h.tick,
		Frames:          h.frame,
		SimTime:         h.sched.Now(),
		Damage:          damage,
		Downs:           downs,
		CosmeticSent:    sent,
		CosmeticDropped: dropped,
		Effects:         make(map[string]map[string]int, len(h.effects)),
	}
	for name, fx := range h.effects {
		r.Effects[name] = fx.Counts()
	}
	return r
}

// Players returns the simulated players. Callers must not use them while the host runs.
func (h *Host) Players() []*Player {
	return h.players
}

// World returns the physics world. Callers must not use it while the host runs.
func (h *Host) World() *World {
	return h.world
}
