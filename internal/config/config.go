// Package config loads flint's settings from the standard config file,
// environment variables, and built-in defaults, in ascending precedence.
//
// The file lives at ~/.config/flint/config.toml (overridable via
// FLINT_CONFIG). Every key can also be set through the environment with the
// FLINT_ prefix, e.g. FLINT_NOTES_DIR.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config stores user-defined flint settings.
type Config struct {
	// NotesDir is the root of the markdown notes tree.
	NotesDir string `mapstructure:"notes_dir"`

	// HoverDelayMs delays the navigation-hint popover after the pointer
	// settles on a wikilink. Zero shows it immediately.
	HoverDelayMs int `mapstructure:"hover_delay_ms"`

	// PopoverGap is the clearance, in terminal cells, kept between a
	// wikilink and a popover that had to flip above it.
	PopoverGap int `mapstructure:"popover_gap"`

	// GlamourStyle selects the markdown preview theme.
	GlamourStyle string `mapstructure:"glamour_style"`

	// Watch enables the filesystem watcher that picks up external edits.
	Watch bool `mapstructure:"watch"`
}

// DefaultNotesDir returns the notes root used when none is configured.
func DefaultNotesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "notes"), nil
}

// Load reads the configuration. A missing config file is not an error; the
// defaults and environment cover everything.
func Load() (Config, error) {
	v := viper.New()

	defaultNotes, err := DefaultNotesDir()
	if err != nil {
		return Config{}, err
	}
	setDefaults(v, defaultNotes)

	v.SetConfigType("toml")
	if path := os.Getenv("FLINT_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "flint"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FLINT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.normalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, notesDir string) {
	v.SetDefault("notes_dir", notesDir)
	v.SetDefault("hover_delay_ms", 150)
	v.SetDefault("popover_gap", 1)
	v.SetDefault("glamour_style", "dark")
	v.SetDefault("watch", true)
}

func (c *Config) normalize() error {
	notesDir, err := NormalizeNotesDir(c.NotesDir)
	if err != nil {
		return fmt.Errorf("invalid notes_dir: %w", err)
	}
	c.NotesDir = notesDir

	if c.HoverDelayMs < 0 {
		c.HoverDelayMs = 0
	}
	if c.PopoverGap < 1 {
		c.PopoverGap = 1
	}
	if strings.TrimSpace(c.GlamourStyle) == "" {
		c.GlamourStyle = "dark"
	}
	return nil
}

// NormalizeNotesDir expands and normalizes a notes directory path.
func NormalizeNotesDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
