// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default values.
const (
	DefaultTaskset          = "default"
	DefaultLogLevel         = "warn"
	DefaultPomodoroLength   = 20 * time.Minute
	DefaultShortBreakLength = 5 * time.Minute
	DefaultLongBreakLength  = 15 * time.Minute
	DefaultLongBreakAfter   = 4

	tasksetsDirName = "tasktree"
)

// Config holds the full configuration for tasktree. It is built once at
// startup and passed down read-only; the core packages never consult it.
type Config struct {
	// TasksetsPath is the directory holding <name>.toml taskset files.
	TasksetsPath string `toml:"tasksets_path"`

	// Tasksets names the sets to load, merged left-to-right.
	Tasksets []string `toml:"tasksets"`

	// Strict validates taskset files against the schema before decoding.
	Strict bool `toml:"strict"`

	LogLevel string `toml:"log_level"`

	// Pomodoro settings, kept for parity with the on-disk config format.
	// Nothing in the core reads them.
	PomodoroLength   time.Duration `toml:"-"`
	ShortBreakLength time.Duration `toml:"-"`
	LongBreakLength  time.Duration `toml:"-"`
	LongBreakAfter   int           `toml:"long_break_after"`

	// The durations as written in the config file, parsed by finalize.
	PomodoroLengthStr   string `toml:"pomodoro_length"`
	ShortBreakLengthStr string `toml:"short_break_length"`
	LongBreakLengthStr  string `toml:"long_break_length"`
}

func setDefaults(cfg *Config) {
	cfg.TasksetsPath = defaultTasksetsPath()
	cfg.Tasksets = []string{DefaultTaskset}
	cfg.LogLevel = DefaultLogLevel
	cfg.PomodoroLength = DefaultPomodoroLength
	cfg.ShortBreakLength = DefaultShortBreakLength
	cfg.LongBreakLength = DefaultLongBreakLength
	cfg.LongBreakAfter = DefaultLongBreakAfter
}

// defaultTasksetsPath is ~/Documents/tasktree, honoring XDG_DOCUMENTS_DIR
// when set. Falls back to a relative directory when no home resolves.
func defaultTasksetsPath() string {
	if docs := os.Getenv("XDG_DOCUMENTS_DIR"); docs != "" {
		return filepath.Join(docs, tasksetsDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return tasksetsDirName
	}
	return filepath.Join(home, "Documents", tasksetsDirName)
}

// parseDurationFields copies the string duration fields from a decoded
// config file onto their typed counterparts.
func parseDurationFields(cfg *Config) error {
	durations := []struct {
		field string
		str   string
		dst   *time.Duration
	}{
		{"pomodoro_length", cfg.PomodoroLengthStr, &cfg.PomodoroLength},
		{"short_break_length", cfg.ShortBreakLengthStr, &cfg.ShortBreakLength},
		{"long_break_length", cfg.LongBreakLengthStr, &cfg.LongBreakLength},
	}
	for _, d := range durations {
		if d.str == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.str)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.field, d.str, err)
		}
		*d.dst = parsed
	}
	return nil
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.TasksetsPath = expandPath(cfg.TasksetsPath)

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if len(cfg.Tasksets) == 0 {
		cfg.Tasksets = []string{DefaultTaskset}
	}
	if cfg.LongBreakAfter < 1 {
		return fmt.Errorf("long_break_after must be at least 1, got %d", cfg.LongBreakAfter)
	}
	return nil
}

// expandPath expands a leading ~ and any environment variables in a path.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}
