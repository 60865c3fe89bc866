package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("MEDIATOR_ADDR", ":9090")
	t.Setenv("MEDIATOR_ABORT_TIMEOUT", "5s")
	t.Setenv("MEDIATOR_PERMISSION_ALLOWLIST", "https://pay.example, https://wallet.example")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Mediator.AbortTimeout)
	assert.Equal(t, []string{"https://pay.example", "https://wallet.example"}, cfg.Mediator.PermissionAllowlist)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.Brokers)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
}

func TestFromEnvRejectsBadDuration(t *testing.T) {
	t.Setenv("MEDIATOR_LOAD_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MEDIATOR_LOAD_TIMEOUT")
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: redis
redis:
  url: redis://localhost:6379/0
mediator:
  abortTimeout: 15s
`), 0o600))
	t.Setenv("MEDIATOR_CONFIG", path)
	t.Setenv("MEDIATOR_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 15*time.Second, cfg.Mediator.AbortTimeout)
	assert.Equal(t, ":7070", cfg.Server.Addr, "fields absent from the file keep their env value")
	assert.Equal(t, 30*time.Second, cfg.Mediator.LoadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "sqlite" }},
		{name: "redis without url", mutate: func(c *Config) { c.Storage.Backend = StorageRedis }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Backend = StoragePostgres }},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Audit.Sink = AuditKafka }},
		{name: "zero abort timeout", mutate: func(c *Config) { c.Mediator.AbortTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
