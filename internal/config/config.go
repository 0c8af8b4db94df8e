package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/swbase/swb/internal/viewmodel"
	"github.com/swbase/swb/internal/weapon"
)

// FileName is the config file looked up in the config directory.
const FileName = "swb.cfg.json"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds the in-memory SQLite backend settings.
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// PostgresConfig holds connection settings for the postgres backend.
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	SSLMode  string `json:"sslmode" mapstructure:"sslmode"`
}

// WebSocketConfig holds the streaming backend settings.
type WebSocketConfig struct {
	URL    string `json:"url" mapstructure:"url"`
	Secret string `json:"secret" mapstructure:"secret"`
}

// StorageConfig selects and configures the session storage backend.
type StorageConfig struct {
	Type      string          `json:"type" mapstructure:"type"`
	Memory    MemoryConfig    `json:"memory" mapstructure:"memory"`
	SQLite    SQLiteConfig    `json:"sqlite" mapstructure:"sqlite"`
	Postgres  PostgresConfig  `json:"postgres" mapstructure:"postgres"`
	WebSocket WebSocketConfig `json:"websocket" mapstructure:"websocket"`
}

// OTelConfig configures the OpenTelemetry log provider.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// InfluxConfig configures the combat metrics writer.
type InfluxConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Host      string `json:"host" mapstructure:"host"`
	Port      string `json:"port" mapstructure:"port"`
	Protocol  string `json:"protocol" mapstructure:"protocol"`
	Token     string `json:"token" mapstructure:"token"`
	Org       string `json:"org" mapstructure:"org"`
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	BackupDir string `json:"backupDir" mapstructure:"backupDir"`
}

// ServerURL joins protocol, host and port.
func (c InfluxConfig) ServerURL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// SimConfig drives the headless simulation host.
type SimConfig struct {
	Realm     string        `json:"realm" mapstructure:"realm"`
	TickRate  float64       `json:"tickRate" mapstructure:"tickRate"`
	FrameRate float64       `json:"frameRate" mapstructure:"frameRate"`
	Duration  time.Duration `json:"duration" mapstructure:"duration"`
	BoltAbort string        `json:"boltAbort" mapstructure:"boltAbort"`
	Seed      uint64        `json:"seed" mapstructure:"seed"`
	Players   int           `json:"players" mapstructure:"players"`
	Targets   int           `json:"targets" mapstructure:"targets"`
	Script    string        `json:"script" mapstructure:"script"`
	// Realtime paces ticks against the wall clock instead of running flat out.
	Realtime bool `json:"realtime" mapstructure:"realtime"`
}

// APIConfig points at the results server that receives session exports.
type APIConfig struct {
	Upload    bool   `json:"upload" mapstructure:"upload"`
	ServerURL string `json:"serverUrl" mapstructure:"serverUrl"`
	APIKey    string `json:"apiKey" mapstructure:"apiKey"`
}

// StatusConfig configures the HTTP status server.
type StatusConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
}

// Loadout pairs a weapon profile with its view model tuning.
type Loadout struct {
	Weapon    weapon.Profile    `json:"weapon" mapstructure:"weapon"`
	ViewModel viewmodel.Profile `json:"viewModel" mapstructure:"viewModel"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./swblogs")
	viper.SetDefault("sessionName", "session")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("sim.realm", "listen")
	viper.SetDefault("sim.tickRate", 66)
	viper.SetDefault("sim.frameRate", 144)
	viper.SetDefault("sim.duration", "10s")
	viper.SetDefault("sim.boltAbort", "keep")
	viper.SetDefault("sim.seed", 1)
	viper.SetDefault("sim.players", 2)
	viper.SetDefault("sim.targets", 4)
	viper.SetDefault("sim.script", "")
	viper.SetDefault("sim.realtime", false)

	viper.SetDefault("api.upload", false)
	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetDefault("status.enabled", false)
	viper.SetDefault("status.addr", "127.0.0.1:8088")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./sessions")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./sessions/swb.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "swb")
	viper.SetDefault("storage.postgres.sslmode", "disable")
	viper.SetDefault("storage.websocket.url", "ws://localhost:5000/api/v1/stream")
	viper.SetDefault("storage.websocket.secret", "")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "swb-metrics")
	viper.SetDefault("influx.bucket", "combat")
	viper.SetDefault("influx.backupDir", "./swblogs")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "swb-sim")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
			SSLMode:  viper.GetString("storage.postgres.sslmode"),
		},
		WebSocket: WebSocketConfig{
			URL:    viper.GetString("storage.websocket.url"),
			Secret: viper.GetString("storage.websocket.secret"),
		},
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the influx section.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:   viper.GetBool("influx.enabled"),
		Host:      viper.GetString("influx.host"),
		Port:      viper.GetString("influx.port"),
		Protocol:  viper.GetString("influx.protocol"),
		Token:     viper.GetString("influx.token"),
		Org:       viper.GetString("influx.org"),
		Bucket:    viper.GetString("influx.bucket"),
		BackupDir: viper.GetString("influx.backupDir"),
	}
}

// GetSimConfig returns the sim section.
// Keys are read one by one so bound command line flags take part.
func GetSimConfig() (SimConfig, error) {
	sc := SimConfig{
		Realm:     viper.GetString("sim.realm"),
		TickRate:  viper.GetFloat64("sim.tickRate"),
		FrameRate: viper.GetFloat64("sim.frameRate"),
		Duration:  viper.GetDuration("sim.duration"),
		BoltAbort: viper.GetString("sim.boltAbort"),
		Seed:      viper.GetUint64("sim.seed"),
		Players:   viper.GetInt("sim.players"),
		Targets:   viper.GetInt("sim.targets"),
		Script:    viper.GetString("sim.script"),
		Realtime:  viper.GetBool("sim.realtime"),
	}
	if sc.Duration < 0 || sc.Players < 0 || sc.Targets < 0 || sc.FrameRate < 0 {
		return SimConfig{}, fmt.Errorf("sim config: negative duration, players, targets or frame rate")
	}
	return sc, nil
}

// GetAPIConfig returns the api section.
func GetAPIConfig() APIConfig {
	return APIConfig{
		Upload:    viper.GetBool("api.upload"),
		ServerURL: viper.GetString("api.serverUrl"),
		APIKey:    viper.GetString("api.apiKey"),
	}
}

// GetStatusConfig returns the status section.
func GetStatusConfig() StatusConfig {
	return StatusConfig{
		Enabled: viper.GetBool("status.enabled"),
		Addr:    viper.GetString("status.addr"),
	}
}

// GetLoadouts decodes the "loadouts" list. Each entry starts from the weapon and view
// model defaults so omitted fields keep their disabled sentinels.
func GetLoadouts() ([]Loadout, error) {
	raw, ok := viper.Get("loadouts").([]any)
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	out := make([]Loadout, 0, len(raw))
	for i, item := range raw {
		w, _ := weaponSection(item)
		name, _ := w["name"].(string)
		l := Loadout{
			Weapon:    weapon.DefaultProfile(name),
			ViewModel: viewmodel.DefaultProfile(),
		}
		if _, ok := w["secondary"]; ok {
			clip := weapon.DefaultClip()
			l.Weapon.Secondary = &clip
		}
		if err := decode(item, &l); err != nil {
			return nil, fmt.Errorf("loadout %d: %w", i, err)
		}
		if err := l.Weapon.Validate(); err != nil {
			return nil, fmt.Errorf("loadout %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func weaponSection(item any) (map[string]any, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	w, ok := m["weapon"].(map[string]any)
	return w, ok
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       hooks(),
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func hooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		vectorLengthHook,
	)
}

// vectorLengthHook rejects JSON arrays that do not exactly fill a fixed-size vector
// such as mgl64.Vec3.
func vectorLengthHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.Array {
		return data, nil
	}
	items := reflect.ValueOf(data)
	if items.Len() != to.Len() {
		return nil, fmt.Errorf("expected %d elements, got %d", to.Len(), items.Len())
	}
	return data, nil
}
