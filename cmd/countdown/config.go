package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/countdown/countdown-go/pkg/countdown"
)

// Config holds the command configuration.
type Config struct {
	ConfigFile  string `yaml:"-"`
	Duration    string `yaml:"duration"`
	LogLevel    string `yaml:"log_level"`
	EventLog    string `yaml:"event_log"`
	Interactive bool   `yaml:"interactive"`
	ID          string `yaml:"id"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// registerFlags binds cfg's fields to flags on fs.
func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&cfg.Duration, "duration", cfg.Duration, "Countdown duration: seconds (90) or Go duration (1m30s)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.EventLog, "event-log", cfg.EventLog, "Write timer events to this CBOR file (.clog)")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Run the interactive shell")
	fs.StringVar(&cfg.ID, "id", cfg.ID, "Timer ID recorded in events (random if empty)")
}

// loadConfig parses args, then layers the config file under any flags that
// were set explicitly.
func loadConfig(args []string) (Config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("countdown", flag.ContinueOnError)
	registerFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		return cfg, nil
	}

	fileCfg := defaultConfig()
	if err := loadConfigFile(cfg.ConfigFile, &fileCfg); err != nil {
		return Config{}, err
	}
	fileCfg.ConfigFile = cfg.ConfigFile

	// Re-apply explicitly set flags over the file values.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["duration"] {
		fileCfg.Duration = cfg.Duration
	}
	if set["log-level"] {
		fileCfg.LogLevel = cfg.LogLevel
	}
	if set["event-log"] {
		fileCfg.EventLog = cfg.EventLog
	}
	if set["interactive"] {
		fileCfg.Interactive = cfg.Interactive
	}
	if set["id"] {
		fileCfg.ID = cfg.ID
	}

	return fileCfg, nil
}

// loadConfigFile reads YAML from path into cfg. Keys absent from the file
// keep their current values.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// validateConfig checks cfg and returns the parsed duration in seconds
// (0 if none was given).
func validateConfig(cfg Config) (int, error) {
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return 0, err
	}

	if cfg.Duration == "" {
		if !cfg.Interactive {
			return 0, fmt.Errorf("duration is required unless -interactive is set")
		}
		return 0, nil
	}

	seconds, err := countdown.ParseDuration(cfg.Duration)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("duration must be a positive number, got %d", seconds)
	}
	return seconds, nil
}

// parseLogLevel maps a level name to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}
