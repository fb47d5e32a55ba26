// Package config loads player settings from defaults, a YAML file and
// NOTEPLAYER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all player settings.
type Config struct {
	Backend      string        `mapstructure:"backend" yaml:"backend"`
	Volume       float64       `mapstructure:"volume" yaml:"volume"`
	Precache     bool          `mapstructure:"precache" yaml:"precache"`
	Workers      int           `mapstructure:"workers" yaml:"workers"`
	DrainPoll    time.Duration `mapstructure:"drain_poll" yaml:"-"`
	Realtime     bool          `mapstructure:"realtime" yaml:"realtime"` // silent backend only
	Debug        bool          `mapstructure:"debug" yaml:"debug"`
	LogDir       string        `mapstructure:"log_dir" yaml:"log_dir"`
	Discord      bool          `mapstructure:"discord" yaml:"discord"`
	DiscordAppID string        `mapstructure:"discord_app_id" yaml:"discord_app_id"`
}

var backends = []string{"ebiten", "oto", "silent"}

// MarshalYAML writes DrainPoll in its string form ("5ms") so the output
// can be read back as a config file.
func (c Config) MarshalYAML() (interface{}, error) {
	type plain Config
	return struct {
		plain     `yaml:",inline"`
		DrainPoll string `yaml:"drain_poll"`
	}{plain(c), c.DrainPoll.String()}, nil
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Backend:   "ebiten",
		Volume:    1,
		Workers:   4,
		DrainPoll: 5 * time.Millisecond,
		Realtime:  true,
		LogDir:    filepath.Join(Dir(), "logs"),
	}
}

// Dir is the directory holding config.yaml and logs.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "noteplayer")
}

// Path is the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// New returns a viper instance with defaults and environment bindings set
// up. Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("volume", d.Volume)
	v.SetDefault("precache", d.Precache)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("drain_poll", d.DrainPoll)
	v.SetDefault("realtime", d.Realtime)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_dir", d.LogDir)
	v.SetDefault("discord", d.Discord)
	v.SetDefault("discord_app_id", d.DiscordAppID)
	v.SetEnvPrefix("NOTEPLAYER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or the default path when empty) into v and returns the
// validated result. A missing default file is not an error; a missing
// explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks c for values the player cannot use.
func (c Config) Validate() error {
	ok := false
	for _, b := range backends {
		if c.Backend == b {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("backend %q: must be one of %s", c.Backend, strings.Join(backends, ", "))
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %v: must be between 0 and 1", c.Volume)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d: must be at least 1", c.Workers)
	}
	if c.DrainPoll <= 0 {
		return fmt.Errorf("drain_poll %v: must be positive", c.DrainPoll)
	}
	return nil
}

// DefaultTemplate is written by "noteplayer config --init".
const DefaultTemplate = `# noteplayer configuration

# Audio backend: ebiten, oto or silent
backend: ebiten

# Player volume, 0 to 1
volume: 1

# Render every event before playback starts
precache: false
workers: 4

# How often a playing event is checked for completion
drain_poll: 5ms

# Silent backend: take as long as real playback
realtime: true

debug: false
# log_dir: /path/to/logs

# Show the current note as Discord activity
discord: false
# discord_app_id: "000000000000000000"
`

// WriteDefault creates path with DefaultTemplate, making its directory.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
