// Command swb_sim runs a headless weapon simulation and records the combat it produces.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/dispatcher"
	"github.com/swbase/swb/internal/influx"
	"github.com/swbase/swb/internal/logging"
	"github.com/swbase/swb/internal/model/core"
	"github.com/swbase/swb/internal/monitor"
	intOtel "github.com/swbase/swb/internal/otel"
	"github.com/swbase/swb/internal/sim"
	"github.com/swbase/swb/internal/status"
	"github.com/swbase/swb/internal/weapon"
	"github.com/swbase/swb/internal/worker"
)

// BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"

	ExtensionName string = "swb_sim"
)

const mapName = "range"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Printf("%s %s (built %s)\n", ExtensionName, CurrentVersion, BuildDate)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Defaults are in place even when the file is missing.
	cfgErr := config.Load(opts.configDir)
	start := time.Now()

	logPath := logging.LogFilePath(viper.GetString("logsDir"), viper.GetString("sessionName"), start)
	logFile, err := logging.OpenLogFile(logPath)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	otelCfg := config.GetOTelConfig()
	provider, err := intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    logFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
		Metrics:      true,
	})
	if err != nil {
		return fmt.Errorf("setting up otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	var sessionID atomic.Uint64
	var graylog string
	if viper.GetBool("graylog.enabled") {
		graylog = viper.GetString("graylog.address")
	}
	logOpts := logging.Options{
		Level:    viper.GetString("logLevel"),
		File:     io.MultiWriter(os.Stdout, logFile),
		Graylog:  graylog,
		Provider: provider.LoggerProvider(),
		Context: func() []slog.Attr {
			if id := sessionID.Load(); id != 0 {
				return []slog.Attr{slog.Uint64("session", id)}
			}
			return nil
		},
	}
	logs := logging.NewSlogManager()
	if err := logs.Setup(logOpts); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logs.Close(closeCtx)
	}()
	log := logs.Logger()
	zlog := logging.NewZerolog(logging.Options{Level: logOpts.Level, File: logFile})

	if cfgErr != nil {
		log.Warn("config file not loaded, using defaults", "dir", opts.configDir, "error", cfgErr)
	}
	log.Info("starting", "name", ExtensionName, "version", CurrentVersion, "build", BuildDate, "log", logPath)

	simCfg, err := config.GetSimConfig()
	if err != nil {
		return err
	}
	loadouts, err := config.GetLoadouts()
	if err != nil {
		return err
	}
	loadouts = sim.WithDefaults(loadouts)

	metrics, err := weapon.NewMetrics()
	if err != nil {
		return fmt.Errorf("creating weapon metrics: %w", err)
	}

	disp, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	defer disp.Close()

	var ifx *influx.Manager
	if ic := config.GetInfluxConfig(); ic.Enabled {
		ifx = influx.NewManager(zlog, ic)
		if err := ifx.Connect(ctx); err != nil {
			log.Warn("influx unavailable, points go to the backup file", "error", err)
		}
		defer func() {
			if err := ifx.Close(); err != nil {
				log.Warn("closing influx", "error", err)
			}
		}()
	}

	backend, err := openStorage(log, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("closing storage", "error", err)
		}
	}()

	wm := worker.NewManager(worker.Dependencies{Logger: log, Influx: ifx}, backend)
	wm.RegisterHandlers(disp)

	session := &core.Session{
		Name:      viper.GetString("sessionName"),
		Map:       mapName,
		StartTime: start,
		TickRate:  simCfg.TickRate,
		Realm:     simCfg.Realm,
		Tag:       opts.tag,
	}
	profiles := make(map[string]any, len(loadouts))
	for _, l := range loadouts {
		session.Weapons = append(session.Weapons, l.Weapon.Name)
		profiles[l.Weapon.Name] = l.Weapon
	}
	if err := wm.BeginSession(session, profiles); err != nil {
		return err
	}
	sessionID.Store(uint64(session.ID))

	mon := monitor.NewService(monitor.Dependencies{
		Logger:     log,
		Influx:     ifx,
		Summary:    wm.Summary,
		StatusFile: filepath.Join(viper.GetString("logsDir"), "status.json"),
		Realm:      simCfg.Realm,
	})

	host, err := sim.New(sim.Options{
		Config:    simCfg,
		Loadouts:  loadouts,
		SessionID: session.ID,
		Events:    disp,
		Metrics:   metrics,
		Logger:    log,
		OnTick:    mon.RecordTick,
	})
	if err != nil {
		return err
	}
	mon.SetWeapons(host.Weapons)

	if err := mon.Start(); err != nil {
		log.Warn("monitor not started", "error", err)
	}

	var srv *status.Server
	if sc := config.GetStatusConfig(); sc.Enabled {
		srv = status.New(sc.Addr, status.Sources{
			Weapons: host.Weapons,
			Summary: wm.Summary,
			Metrics: provider.Collect,
		}, log)
		if err := srv.Start(); err != nil {
			log.Warn("status server not started", "error", err)
			srv = nil
		}
	}

	runErr := host.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		log.Info("interrupted, finishing session")
		runErr = nil
	}

	mon.Stop()
	disp.Close()
	if err := wm.FinishSession(); err != nil {
		log.Error("finishing session", "error", err)
	}

	report := host.Report()
	uploadCtx, cancelUpload := context.WithTimeout(context.Background(), time.Minute)
	uploadExport(uploadCtx, log, backend, session, time.Duration(report.SimTime*float64(time.Second)))
	cancelUpload()
	log.Info("session report",
		"ticks", report.Ticks,
		"frames", report.Frames,
		"damage", report.Damage,
		"downs", report.Downs,
		"cosmeticSent", report.CosmeticSent,
		"cosmeticDropped", report.CosmeticDropped,
	)
	if sum, ok := wm.Summary(); ok {
		log.Info("session totals",
			"shots", sum.Totals.Shots,
			"hits", sum.Totals.Hits,
			"dryFires", sum.Totals.DryFires,
			"reloads", sum.Totals.Reloads,
		)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("status server shutdown", "error", err)
		}
	}
	return runErr
}
