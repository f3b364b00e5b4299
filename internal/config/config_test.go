package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commandbar.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
host = "EXCEL"

[log]
level = "debug"

[server]
addr = "0.0.0.0:9090"
metrics = false

[store]
backend = "redis"

[store.redis]
addr = "redis:6379"
db = 2
ttl = "24h"

[sink]
kind = "redis"
queue = "intents"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EXCEL", cfg.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL.Duration)
	assert.Equal(t, "commandbar:session:", cfg.Store.Redis.Prefix, "unset keys keep their default")
	assert.Equal(t, 30*time.Second, cfg.Store.Redis.LockTTL.Duration)
	assert.Equal(t, "intents", cfg.Sink.Queue)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown key", "[server]\nport = 8080\n"},
		{"bad backend", "[store]\nbackend = \"sqlite\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad duration", "[store.redis]\nttl = \"soon\"\n"},
		{"bad addr", "[server]\naddr = \"nowhere\"\n"},
		{"bad encryption key", "[store]\nencryption_key = \"not base64!\"\n"},
		{"syntax", "[server\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.text))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
