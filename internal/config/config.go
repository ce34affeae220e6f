package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Autosave  AutosaveConfig  `yaml:"autosave"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Settings  SettingsConfig  `yaml:"settings"`
	DevServer DevServerConfig `yaml:"devserver"`
	Log       LogConfig       `yaml:"log"`
}

// BackendConfig points at the ArchBoard HTTP backend.
type BackendConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// AutosaveConfig controls debounced saving. Enabled forces autosave on
// regardless of the stored UI preference.
type AutosaveConfig struct {
	Enabled bool     `yaml:"enabled"`
	Delay   Duration `yaml:"delay"`
}

// PipelineConfig controls how saves clear pending edits.
type PipelineConfig struct {
	ClearMode string `yaml:"clear_mode"`
}

// SettingsConfig locates the local preferences database.
type SettingsConfig struct {
	Path string `yaml:"path"`
}

// DevServerConfig contains settings of the local fake backend.
type DevServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultPath is used when ARCHBOARD_CONFIG_PATH is not set.
func DefaultPath() string {
	return filepath.Join(configHome(), "archboard", "config.yaml")
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// A missing file at the default path is not an error.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("ARCHBOARD_CONFIG_PATH", DefaultPath())
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific path, which must exist.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:5000/",
			Timeout: Duration(10 * time.Second),
		},
		Autosave: AutosaveConfig{
			Delay: Duration(500 * time.Millisecond),
		},
		Pipeline: PipelineConfig{
			ClearMode: "saved",
		},
		Settings: SettingsConfig{
			Path: filepath.Join(dataHome(), "archboard", "settings.db"),
		},
		DevServer: DevServerConfig{
			Port:            5000,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty, well-formed env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Backend
	if v := os.Getenv("ARCHBOARD_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("ARCHBOARD_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = Duration(d)
		}
	}

	// Autosave
	if v := os.Getenv("ARCHBOARD_AUTOSAVE"); v != "" {
		cfg.Autosave.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("ARCHBOARD_AUTOSAVE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Autosave.Delay = Duration(d)
		}
	}

	// Pipeline
	if v := os.Getenv("ARCHBOARD_CLEAR_MODE"); v != "" {
		cfg.Pipeline.ClearMode = v
	}

	// Settings
	if v := os.Getenv("ARCHBOARD_SETTINGS_PATH"); v != "" {
		cfg.Settings.Path = v
	}

	// Dev server
	if v := os.Getenv("ARCHBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.DevServer.Port = port
		}
	}

	// Log
	if v := os.Getenv("ARCHBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ARCHBOARD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks values that would otherwise fail late and obscurely.
func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q must be an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend.timeout must not be negative")
	}
	if c.Autosave.Delay <= 0 {
		return errors.New("autosave.delay must be positive")
	}
	switch strings.ToLower(c.Pipeline.ClearMode) {
	case "saved", "all":
	default:
		return fmt.Errorf("pipeline.clear_mode %q must be saved or all", c.Pipeline.ClearMode)
	}
	if c.DevServer.Port < 0 || c.DevServer.Port > 65535 {
		return fmt.Errorf("devserver.port %d out of range", c.DevServer.Port)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}

func dataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}
