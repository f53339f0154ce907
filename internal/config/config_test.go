package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 5000, cfg.Limits.MaxPoints)
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetScriptTimeout())
	assert.True(t, cfg.Script.Enabled)
	assert.Equal(t, 4, cfg.Script.MaxConcurrent)
	assert.Equal(t, "1M", cfg.Limits.BodyLimit)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Addr, cfg.Server.Addr)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foilworks.yaml")
	data := `
server:
  addr: "127.0.0.1:9000"
  cors_origins: ["http://localhost:5173"]
naca6:
  dir: ""
  file: shapes.yaml
limits:
  max_points: 400
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "", cfg.NACA6.Dir)
	assert.Equal(t, "shapes.yaml", cfg.NACA6.File)
	assert.Equal(t, 400, cfg.Limits.MaxPoints)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, "10s", cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "foilworks.yaml")
	cfg := DefaultConfig()
	cfg.Limits.MaxPoints = 123
	cfg.Logging.Format = "console"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOILWORKS_ADDR", ":9999")
	t.Setenv("FOILWORKS_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("FOILWORKS_NACA6_DIR", "/srv/shapes")
	t.Setenv("FOILWORKS_NACA6_FILE", "/srv/shapes.yaml")
	t.Setenv("FOILWORKS_MAX_POINTS", "750")
	t.Setenv("FOILWORKS_SCRIPT_TIMEOUT", "2s")
	t.Setenv("FOILWORKS_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("FOILWORKS_MESH_CELLS", "64")
	t.Setenv("FOILWORKS_LOG_LEVEL", "warn")
	t.Setenv("FOILWORKS_LOG_FORMAT", "console")
	t.Setenv("FOILWORKS_BODY_LIMIT", "256K")
	t.Setenv("FOILWORKS_SCRIPT_ENABLED", "false")
	t.Setenv("FOILWORKS_SCRIPT_MAX_CONCURRENT", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/srv/shapes", cfg.NACA6.Dir)
	assert.Equal(t, "/srv/shapes.yaml", cfg.NACA6.File)
	assert.Equal(t, 750, cfg.Limits.MaxPoints)
	assert.Equal(t, 2*time.Second, cfg.GetScriptTimeout())
	assert.Equal(t, 3*time.Second, cfg.GetShutdownTimeout())
	assert.Equal(t, 64, cfg.Mesh.Cells)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "256K", cfg.Limits.BodyLimit)
	assert.False(t, cfg.Script.Enabled)
	assert.Equal(t, 2, cfg.Script.MaxConcurrent)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foilworks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  max_points: 10\n"), 0644))
	t.Setenv("FOILWORKS_MAX_POINTS", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Limits.MaxPoints)
}

func TestEnvEmptyNACA6DirDisablesDirectory(t *testing.T) {
	t.Setenv("FOILWORKS_NACA6_DIR", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.NACA6.Dir)
}

func TestEnvInvalidMaxPoints(t *testing.T) {
	t.Setenv("FOILWORKS_MAX_POINTS", "lots")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOILWORKS_MAX_POINTS")
}

func TestEnvInvalidScriptSettings(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		t.Setenv("FOILWORKS_SCRIPT_ENABLED", "maybe")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FOILWORKS_SCRIPT_ENABLED")
	})
	t.Run("max concurrent", func(t *testing.T) {
		t.Setenv("FOILWORKS_SCRIPT_MAX_CONCURRENT", "many")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FOILWORKS_SCRIPT_MAX_CONCURRENT")
	})
}

func TestLoadKeepsScriptEnabledWhenOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foilworks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("script:\n  max_concurrent: 8\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Script.Enabled)
	assert.Equal(t, 8, cfg.Script.MaxConcurrent)
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ShutdownTimeout = "soon"
	cfg.Script.Timeout = ""
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetScriptTimeout())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"bad shutdown", func(c *Config) { c.Server.ShutdownTimeout = "x" }, "server.shutdown_timeout"},
		{"zero script timeout", func(c *Config) { c.Script.Timeout = "0s" }, "script.timeout must be positive"},
		{"max points", func(c *Config) { c.Limits.MaxPoints = 1 }, "limits.max_points"},
		{"mesh cells", func(c *Config) { c.Mesh.Cells = 4 }, "mesh.cells"},
		{"body limit", func(c *Config) { c.Limits.BodyLimit = "huge" }, "limits.body_limit"},
		{"zero body limit", func(c *Config) { c.Limits.BodyLimit = "0" }, "limits.body_limit"},
		{"max concurrent", func(c *Config) { c.Script.MaxConcurrent = 0 }, "script.max_concurrent"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
