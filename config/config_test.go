package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
version = "1.0.0"

[log]
service = "genkit"
module  = "test"
level   = "debug"

[redis]
addr = "127.0.0.1:6379"
db   = 1

[database]
driver = "postgres"
dsn    = "postgres://localhost/genkit"

[generator]
token_secret      = "unit-test-secret"
magic_token_bytes = 16
code_length       = 5
code_segments     = 3
code_separator    = "-"

[sequence]
start      = 5000
key_prefix = "test:seq"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	var cfg Config
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "genkit", cfg.Log.Service)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "unit-test-secret", cfg.Generator.TokenSecret)
	assert.Equal(t, 16, cfg.Generator.MagicTokenBytes)
	assert.Equal(t, 3, cfg.Generator.CodeSegments)
	assert.Equal(t, int64(5000), cfg.Sequence.Start)
	assert.Equal(t, "test:seq", cfg.Sequence.KeyPrefix)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Config
	err := Load(filepath.Join(t.TempDir(), "missing.toml"), &cfg)
	assert.Error(t, err)
}

func TestToLogging(t *testing.T) {
	lc := LogConfig{Service: "svc", Module: "mod", Level: "warn", MaxSize: 100}

	got := lc.ToLogging()
	assert.Equal(t, "svc", got.Service)
	assert.Equal(t, "mod", got.Module)
	assert.Equal(t, "warn", got.Level)
	assert.Equal(t, 100, got.MaxSize)
}
