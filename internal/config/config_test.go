package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no config.yaml or
// .env from the repository is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "slog", cfg.Log.Backend)
	assert.Equal(t, 300, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PROBLEMJSON_SERVER_PORT", "9090")
	t.Setenv("PROBLEMJSON_SERVER_ENV", EnvProduction)
	t.Setenv("PROBLEMJSON_LOG_BACKEND", "zap")
	t.Setenv("PROBLEMJSON_RATELIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "zap", cfg.Log.Backend)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "server:\n  port: \"7070\"\nlog:\n  level: debug\n  format: text\nratelimit:\n  requests: 0\ncors:\n  allowed_origins:\n    - https://app.example.com\n    - https://*.preview.example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Zero(t, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"https://app.example.com", "https://*.preview.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROBLEMJSON_SERVER_PORT=6060\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PROBLEMJSON_SERVER_PORT") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PROBLEMJSON_LOG_BACKEND", "logrus")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.backend")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:      ServerConfig{Port: "8080", Env: EnvTest, ShutdownTimeout: time.Second},
			Log:         LogConfig{Level: "info", Format: "json", Backend: "slog"},
			RateLimit:   RateLimitConfig{Requests: 10, Window: time.Minute},
			Idempotency: IdempotencyConfig{TTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "non numeric port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: "server.port"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = "70000" }, wantErr: "server.port"},
		{name: "unknown env", mutate: func(c *Config) { c.Server.Env = "staging" }, wantErr: "server.env"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, wantErr: "shutdown_timeout"},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "negative requests", mutate: func(c *Config) { c.RateLimit.Requests = -1 }, wantErr: "ratelimit.requests"},
		{name: "missing window", mutate: func(c *Config) { c.RateLimit.Window = 0 }, wantErr: "ratelimit.window"},
		{name: "zero idempotency ttl", mutate: func(c *Config) { c.Idempotency.TTL = 0 }, wantErr: "idempotency.ttl"},
		{name: "disabled limiter ignores window", mutate: func(c *Config) { c.RateLimit = RateLimitConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
