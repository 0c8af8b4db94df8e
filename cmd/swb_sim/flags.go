package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swbase/swb/internal/config"
)

type cliOptions struct {
	configDir string
	tag       string
	version   bool
}

// flagKeys maps command line flags onto the config keys they override.
var flagKeys = map[string]string{
	"realm":       "sim.realm",
	"duration":    "sim.duration",
	"tick-rate":   "sim.tickRate",
	"frame-rate":  "sim.frameRate",
	"seed":        "sim.seed",
	"players":     "sim.players",
	"targets":     "sim.targets",
	"script":      "sim.script",
	"realtime":    "sim.realtime",
	"bolt-abort":  "sim.boltAbort",
	"storage":     "storage.type",
	"log-level":   "logLevel",
	"session":     "sessionName",
	"status":      "status.enabled",
	"status-addr": "status.addr",
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := pflag.NewFlagSet(ExtensionName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nFlags override values from %s.\n\n", ExtensionName, config.FileName)
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.configDir, "config-dir", "c", ".", "directory containing "+config.FileName)
	fs.StringVar(&opts.tag, "tag", "", "free-form tag stored with the session")
	fs.BoolVarP(&opts.version, "version", "v", false, "print version and exit")

	fs.String("realm", "listen", "controller realm: server, client or listen")
	fs.Duration("duration", 0, "simulated time to run")
	fs.Float64("tick-rate", 0, "server ticks per second")
	fs.Float64("frame-rate", 0, "view model frames per second, 0 disables rendering")
	fs.Uint64("seed", 0, "random seed for spread and tracers")
	fs.Int("players", 0, "number of simulated players")
	fs.Int("targets", 0, "number of static targets")
	fs.String("script", "", "input timeline file, empty for the built-in script")
	fs.Bool("realtime", false, "pace ticks against the wall clock")
	fs.String("bolt-abort", "keep", "bolt flag on an abandoned cycle: keep or clear")
	fs.StringP("storage", "s", "memory", "storage backend: memory, sqlite, postgres or websocket")
	fs.String("log-level", "info", "log level")
	fs.String("session", "session", "session name used for log and export files")
	fs.Bool("status", false, "serve the HTTP status endpoints")
	fs.String("status-addr", "127.0.0.1:8088", "status server listen address")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return opts, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return opts, nil
}
