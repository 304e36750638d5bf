// Package config loads the TOML configuration. Everything is validated at
// load time; a bad key binding stops the program before the UI starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/sift/internal/icons"
	"github.com/llehouerou/sift/internal/keymap"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/track"
)

// Track end policies.
const (
	OnTrackEndStop    = "stop"
	OnTrackEndAdvance = "advance"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Tags         []string      `koanf:"tags"`          // tag vocabulary, in display order
	PollInterval time.Duration `koanf:"poll_interval"` // position refresh period
	OnTrackEnd   string        `koanf:"on_track_end"`  // "stop" or "advance"
	TrashDir     string        `koanf:"trash_dir"`
	KeepDir      string        `koanf:"keep_dir"` // empty leaves kept files in place
	WriteTags    bool          `koanf:"write_tags"`
	Icons        string        `koanf:"icons"`  // "nerd", "unicode" or "none"
	Volume       int           `koanf:"volume"` // startup level, percent

	Notifications *bool `koanf:"notifications"` // default: true
	MPRIS         *bool `koanf:"mpris"`         // default: true

	Log LogConfig `koanf:"log"`

	// Actions maps key symbols to actions. When set it replaces the
	// default bindings entirely.
	Actions map[string]string `koanf:"actions"`

	vocab *track.Vocabulary
	keys  *keymap.Table
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name, default "info"
	File  string `koanf:"file"`  // default under the XDG state directory
}

// Load reads the default config files, later files overriding earlier ones.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads a single config file, which must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		PollInterval: playback.DefaultPollInterval,
		OnTrackEnd:   OnTrackEndStop,
		TrashDir:     defaultTrashDir(),
		Volume:       100,
		Log:          LogConfig{Level: "info"},
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.TrashDir = expandPath(cfg.TrashDir)
	cfg.KeepDir = expandPath(cfg.KeepDir)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg, err := load(nil)
	if err != nil {
		// The built-in bindings always validate.
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive, got %s", ErrInvalid, c.PollInterval)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100, got %d", ErrInvalid, c.Volume)
	}
	if !icons.Valid(c.Icons) {
		return fmt.Errorf("%w: icons must be %q, %q or %q, got %q",
			ErrInvalid, icons.StyleNerd, icons.StyleUnicode, icons.StyleNone, c.Icons)
	}
	switch c.OnTrackEnd {
	case OnTrackEndStop, OnTrackEndAdvance:
	default:
		return fmt.Errorf("%w: on_track_end must be %q or %q, got %q",
			ErrInvalid, OnTrackEndStop, OnTrackEndAdvance, c.OnTrackEnd)
	}

	if len(c.Tags) == 0 {
		c.vocab = track.DefaultVocabulary()
	} else {
		c.vocab = track.NewVocabulary(c.Tags)
	}

	bindings := c.Actions
	if len(bindings) == 0 {
		bindings = keymap.DefaultBindings(c.vocab)
	}
	keys, err := keymap.Load(bindings, c.vocab)
	if err != nil {
		return fmt.Errorf("%w: actions: %w", ErrInvalid, err)
	}
	c.keys = keys
	return nil
}

// Vocabulary returns the validated tag vocabulary.
func (c *Config) Vocabulary() *track.Vocabulary { return c.vocab }

// Keys returns the validated key binding table.
func (c *Config) Keys() *keymap.Table { return c.keys }

// NotificationsEnabled returns whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled returns whether the MPRIS server is on.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// AdvanceOnTrackEnd reports whether the next track plays after one ends.
func (c *Config) AdvanceOnTrackEnd() bool {
	return c.OnTrackEnd == OnTrackEndAdvance
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/sift/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sift", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultTrashDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Music", ".sift-trash")
	}
	return ".sift-trash"
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
