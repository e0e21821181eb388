// Package config loads promptcraft settings from built-in defaults, an
// optional TOML file and PROMPTCRAFT_ environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g.
// PROMPTCRAFT_DELIVERY_LONG=2s sets delivery.long.
const EnvPrefix = "PROMPTCRAFT_"

// Config holds all promptcraft configuration.
type Config struct {
	Delivery DeliveryConfig `koanf:"delivery"`
	Log      LogConfig      `koanf:"log"`
	Script   ScriptConfig   `koanf:"script"`
}

// DeliveryConfig controls the pacing of assistant messages.
type DeliveryConfig struct {
	Short  time.Duration `koanf:"short"`  // pause between assistant messages
	Medium time.Duration `koanf:"medium"` // base typing time
	Jitter time.Duration `koanf:"jitter"` // random extra typing time
	Long   time.Duration `koanf:"long"`   // simulated generation call

	// Instant disables every wait.
	Instant bool `koanf:"instant"`

	Sentinels []SentinelConfig `koanf:"sentinels"`
}

// SentinelConfig maps an exact assistant message to an extra wait.
type SentinelConfig struct {
	Content string `koanf:"content"`
	Profile string `koanf:"profile"` // short, medium or long
}

// LogConfig controls the log file.
type LogConfig struct {
	// File is the log path. Empty means the default state directory.
	File  string `koanf:"file"`
	Level string `koanf:"level"`
}

// ScriptConfig selects the conversation script.
type ScriptConfig struct {
	// Path to a script JSON file. Empty uses the built-in script.
	Path string `koanf:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Delivery: DeliveryConfig{
			Short:  200 * time.Millisecond,
			Medium: 500 * time.Millisecond,
			Jitter: 400 * time.Millisecond,
			Long:   5 * time.Second,
			Sentinels: []SentinelConfig{
				{Content: "Calling Firefly API...", Profile: "long"},
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/promptcraft/config.toml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "promptcraft", "config.toml"), nil
}

// Load builds the configuration. An explicit path must exist; with an
// empty path the default location is used when present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else if p, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(p); statErr == nil {
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load config %s: %w", p, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps PROMPTCRAFT_DELIVERY_LONG to delivery.long.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", ".")
}

func defaultsMap() map[string]any {
	d := DefaultConfig()
	sentinels := make([]any, 0, len(d.Delivery.Sentinels))
	for _, s := range d.Delivery.Sentinels {
		sentinels = append(sentinels, map[string]any{"content": s.Content, "profile": s.Profile})
	}
	return map[string]any{
		"delivery.short":     d.Delivery.Short.String(),
		"delivery.medium":    d.Delivery.Medium.String(),
		"delivery.jitter":    d.Delivery.Jitter.String(),
		"delivery.long":      d.Delivery.Long.String(),
		"delivery.instant":   d.Delivery.Instant,
		"delivery.sentinels": sentinels,
		"log.file":           d.Log.File,
		"log.level":          d.Log.Level,
		"script.path":        d.Script.Path,
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validProfiles = map[string]bool{"short": true, "medium": true, "long": true}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	for name, d := range map[string]time.Duration{
		"short":  c.Delivery.Short,
		"medium": c.Delivery.Medium,
		"jitter": c.Delivery.Jitter,
		"long":   c.Delivery.Long,
	} {
		if d < 0 {
			errs = append(errs, fmt.Sprintf("delivery.%s: must not be negative, got %s", name, d))
		}
	}

	seen := make(map[string]bool, len(c.Delivery.Sentinels))
	for i, s := range c.Delivery.Sentinels {
		if s.Content == "" {
			errs = append(errs, fmt.Sprintf("delivery.sentinels[%d]: empty content", i))
		}
		if seen[s.Content] {
			errs = append(errs, fmt.Sprintf("delivery.sentinels[%d]: duplicate content %q", i, s.Content))
		}
		seen[s.Content] = true
		if !validProfiles[s.Profile] {
			errs = append(errs, fmt.Sprintf("delivery.sentinels[%d]: unknown profile %q", i, s.Profile))
		}
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: unknown level %q", c.Log.Level))
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
