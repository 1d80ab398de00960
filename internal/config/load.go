package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
//  1. Defaults
//  2. User config file (tasktree.toml in the XDG config directory)
//  3. Environment variables (TASKTREE_*)
//  4. CLI flags registered on fs
//
// fs should be the global flag set; Load registers the shared flags on it
// and parses args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if file := findUserConfigFile(); file != "" {
		if err := loadConfigFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, err
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findUserConfigFile looks for tasktree.toml under $XDG_CONFIG_HOME when
// set, otherwise under ~/.config. Returns "" when the file doesn't exist.
func findUserConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	path := filepath.Join(dir, "tasktree.toml")
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return path
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return parseDurationFields(cfg)
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKTREE_TASKSETS_PATH"); v != "" {
		cfg.TasksetsPath = v
	}
	if v := os.Getenv("TASKTREE_DEFAULT_TASKSET"); v != "" {
		cfg.Tasksets = splitAndTrim(v, ",")
	}
	if v := os.Getenv("TASKTREE_STRICT"); v != "" {
		cfg.Strict = boolFromString(v)
	}
	if v := os.Getenv("TASKTREE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKTREE_POMODORO_LENGTH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PomodoroLength = d
		}
	}
	if v := os.Getenv("TASKTREE_SHORT_BREAK_LENGTH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShortBreakLength = d
		}
	}
	if v := os.Getenv("TASKTREE_LONG_BREAK_LENGTH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LongBreakLength = d
		}
	}
	if v := os.Getenv("TASKTREE_LONG_BREAK_FREQUENCY"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.LongBreakAfter = i
		}
	}
}

// parseFlags registers the global flags with the already-layered values as
// defaults, so a flag the user didn't pass leaves the lower layers intact.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	tasksetsPath := fs.String("tasksets-path", cfg.TasksetsPath, "Directory containing the taskset files")
	fs.StringVar(tasksetsPath, "T", cfg.TasksetsPath, "Directory containing the taskset files (shorthand)")

	tasksets := fs.String("taskset", strings.Join(cfg.Tasksets, ","), "Comma-separated taskset names, merged left to right")
	fs.StringVar(tasksets, "t", strings.Join(cfg.Tasksets, ","), "Comma-separated taskset names (shorthand)")

	strict := fs.Bool("strict", cfg.Strict, "Validate taskset files against the schema")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	pomodoro := fs.Duration("pomodoro-length", cfg.PomodoroLength, "Length of a pomodoro session")
	shortBreak := fs.Duration("short-break-length", cfg.ShortBreakLength, "Length of a short break")
	longBreak := fs.Duration("long-break-length", cfg.LongBreakLength, "Length of a long break")
	longBreakAfter := fs.Int("long-break-frequency", cfg.LongBreakAfter, "Pomodoros before a long break")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.TasksetsPath = *tasksetsPath
	cfg.Tasksets = splitAndTrim(*tasksets, ",")
	cfg.Strict = *strict
	cfg.LogLevel = *logLevel
	cfg.PomodoroLength = *pomodoro
	cfg.ShortBreakLength = *shortBreak
	cfg.LongBreakLength = *longBreak
	cfg.LongBreakAfter = *longBreakAfter
	return nil
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
