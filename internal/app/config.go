package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"seatbroker/internal/logging"
)

const envPrefix = "SEATBROKER"

// Config holds runtime wiring options for building the app.
type Config struct {
	Log     logging.Config `mapstructure:"log"`
	Bus     BusConfig      `mapstructure:"bus"`
	Runtime RuntimeConfig  `mapstructure:"runtime"`
	// Timeout bounds each CLI command's bus round trips; 0 means none.
	Timeout time.Duration `mapstructure:"timeout"`
}

// BusConfig selects the bus to talk to logind on.
type BusConfig struct {
	Address string `mapstructure:"address"` // empty: the system bus
}

// RuntimeConfig points at the session manager's runtime state.
type RuntimeConfig struct {
	ProcDir     string `mapstructure:"proc_dir"`     // e.g. /proc
	SessionsDir string `mapstructure:"sessions_dir"` // e.g. /run/systemd/sessions
}

func setDefaults(v *viper.Viper) {
	def := logging.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.pretty", def.Pretty)
	v.SetDefault("log.file", def.File)
	v.SetDefault("bus.address", "")
	v.SetDefault("runtime.proc_dir", "/proc")
	v.SetDefault("runtime.sessions_dir", "/run/systemd/sessions")
	v.SetDefault("timeout", 25*time.Second)
}

// LoadConfig reads the optional config file at path (YAML, JSON or TOML, by
// extension), then SEATBROKER_* environment overrides such as
// SEATBROKER_LOG_LEVEL or SEATBROKER_BUS_ADDRESS.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	return cfg, nil
}
