// Package config loads foilworks settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOILWORKS_"

// Config holds all foilworks configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	NACA6   NACA6Config   `yaml:"naca6"`
	Limits  LimitsConfig  `yaml:"limits"`
	Script  ScriptConfig  `yaml:"script"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// NACA6Config locates the 6-series base shapes. Both are optional.
type NACA6Config struct {
	Dir  string `yaml:"dir"`  // directory of Selig .dat files
	File string `yaml:"file"` // YAML document of shapes
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	MaxPoints int    `yaml:"max_points"`
	BodyLimit string `yaml:"body_limit"` // e.g. "1M", see echo's BodyLimit
}

// ScriptConfig configures the scripting endpoint.
type ScriptConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Timeout       string `yaml:"timeout"`
	MaxConcurrent int    `yaml:"max_concurrent"` // evaluations in flight, timed out ones included
}

// MeshConfig configures tessellation.
type MeshConfig struct {
	Cells int `yaml:"cells"` // marching cubes cells along the longest axis
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: "10s",
			CORSOrigins:     []string{"*"},
		},
		NACA6: NACA6Config{
			Dir: "data/naca6",
		},
		Limits: LimitsConfig{
			MaxPoints: 5000,
			BodyLimit: "1M",
		},
		Script: ScriptConfig{
			Enabled:       true,
			Timeout:       "5s",
			MaxConcurrent: 4,
		},
		Mesh: MeshConfig{
			Cells: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies FOILWORKS_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvPrefix + "ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "SHUTDOWN_TIMEOUT"); v != "" {
		c.Server.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPrefix + "CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	if v, ok := os.LookupEnv(EnvPrefix + "NACA6_DIR"); ok {
		c.NACA6.Dir = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "NACA6_FILE"); ok {
		c.NACA6.File = v
	}
	if v := os.Getenv(EnvPrefix + "MAX_POINTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_POINTS %q: %w", EnvPrefix, v, err)
		}
		c.Limits.MaxPoints = n
	}
	if v := os.Getenv(EnvPrefix + "BODY_LIMIT"); v != "" {
		c.Limits.BodyLimit = v
	}
	if v := os.Getenv(EnvPrefix + "SCRIPT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSCRIPT_ENABLED %q: %w", EnvPrefix, v, err)
		}
		c.Script.Enabled = b
	}
	if v := os.Getenv(EnvPrefix + "SCRIPT_TIMEOUT"); v != "" {
		c.Script.Timeout = v
	}
	if v := os.Getenv(EnvPrefix + "SCRIPT_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSCRIPT_MAX_CONCURRENT %q: %w", EnvPrefix, v, err)
		}
		c.Script.MaxConcurrent = n
	}
	if v := os.Getenv(EnvPrefix + "MESH_CELLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMESH_CELLS %q: %w", EnvPrefix, v, err)
		}
		c.Mesh.Cells = n
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// GetShutdownTimeout returns the graceful shutdown window.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetScriptTimeout returns the per-evaluation script limit.
func (c *Config) GetScriptTimeout() time.Duration {
	d, err := time.ParseDuration(c.Script.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging encoders.
var ValidLogFormats = []string{"json", "console"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	for _, d := range []struct{ key, val string }{
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"script.timeout", c.Script.Timeout},
	} {
		v, err := time.ParseDuration(d.val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, d.val, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.val)
		}
	}
	if c.Limits.MaxPoints < 2 {
		return fmt.Errorf("limits.max_points must be at least 2, got %d", c.Limits.MaxPoints)
	}
	if n, err := bytes.Parse(c.Limits.BodyLimit); err != nil || n <= 0 {
		return fmt.Errorf("invalid limits.body_limit %q (want a size such as 512K or 1M)", c.Limits.BodyLimit)
	}
	if c.Script.MaxConcurrent < 1 {
		return fmt.Errorf("script.max_concurrent must be at least 1, got %d", c.Script.MaxConcurrent)
	}
	if c.Mesh.Cells < 8 {
		return fmt.Errorf("mesh.cells must be at least 8, got %d", c.Mesh.Cells)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
