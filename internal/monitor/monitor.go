// Package monitor samples simulation health once per interval. Each sample rewrites a
// status file and writes the tick timing to InfluxDB.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/swbase/swb/internal/influx"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/status"
)

// DefaultInterval is the sampling period when none is set.
const DefaultInterval = time.Second

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Logger  *slog.Logger
	Influx  *influx.Manager // optional
	Weapons func() []status.WeaponStatus
	Summary func() (core.SessionSummary, bool)
	// StatusFile is rewritten on every sample when set.
	StatusFile string
	Realm      string
	Interval   time.Duration
}

// Sample is one monitoring snapshot.
type Sample struct {
	Time    time.Time             `json:"time"`
	Tick    uint64                `json:"tick"`
	Ticks   int                   `json:"ticks"`
	AvgTick time.Duration         `json:"avgTickNs"`
	MaxTick time.Duration         `json:"maxTickNs"`
	Weapons []status.WeaponStatus `json:"weapons,omitempty"`
	Session *core.SessionSummary  `json:"session,omitempty"`
}

// Service manages status monitoring
type Service struct {
	deps Dependencies
	log  *slog.Logger

	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}

	tickMu   sync.Mutex
	lastTick uint64
	ticks    int
	total    time.Duration
	worst    time.Duration
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = DefaultInterval
	}
	return &Service{
		deps: deps,
		log:  deps.Logger.With("component", "monitor"),
	}
}

// RecordTick adds one tick timing to the current window. It matches the sim host's
// OnTick hook and is safe to call from the simulation goroutine.
func (s *Service) RecordTick(tick uint64, took time.Duration) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.lastTick = tick
	s.ticks++
	s.total += took
	s.worst = max(s.worst, took)
}

// SetWeapons replaces the weapon source, for hosts built after the service.
func (s *Service) SetWeapons(fn func() []status.WeaponStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deps.Weapons = fn
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Sample closes the current tick window and publishes it.
func (s *Service) Sample(now time.Time) Sample {
	s.tickMu.Lock()
	out := Sample{Time: now, Tick: s.lastTick, Ticks: s.ticks, MaxTick: s.worst}
	if s.ticks > 0 {
		out.AvgTick = s.total / time.Duration(s.ticks)
	}
	s.ticks, s.total, s.worst = 0, 0, 0
	s.tickMu.Unlock()

	s.mu.RLock()
	weapons := s.deps.Weapons
	s.mu.RUnlock()
	if weapons != nil {
		out.Weapons = weapons()
	}
	if s.deps.Summary != nil {
		if sum, ok := s.deps.Summary(); ok {
			out.Session = &sum
		}
	}

	if s.deps.StatusFile != "" {
		if err := s.writeStatusFile(out); err != nil {
			s.log.Error("Error writing status file", "error", err, "path", s.deps.StatusFile)
		}
	}
	if s.deps.Influx != nil && out.Ticks > 0 {
		p := influx.TickPoint(s.deps.Realm, out.Tick, out.AvgTick, now)
		p.AddField("max_us", out.MaxTick.Microseconds())
		p.AddField("ticks", int64(out.Ticks))
		if err := s.deps.Influx.WritePoint(influx.PerformanceBucket, p); err != nil {
			s.log.Warn("Error writing tick point", "error", err)
		}
	}
	return out
}

func (s *Service) writeStatusFile(sample Sample) error {
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	tmp := s.deps.StatusFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.deps.StatusFile)
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stopChan, s.done)
	return nil
}

func (s *Service) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	s.log.Debug("Starting status monitor goroutine", "interval", s.deps.Interval)

	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			s.Sample(now)
		}
	}
}

// Stop stops the status monitor and takes a final sample.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()

	<-done
	s.Sample(time.Now())
}
