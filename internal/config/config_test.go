package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7103", cfg.ServerAddress)
	assert.Equal(t, "./db", cfg.DBPath)
	assert.Equal(t, "./db/records.jsonl", cfg.FileStoragePath)
	assert.Equal(t, StorageLevel, cfg.Storage)
	assert.Equal(t, "", cfg.GRPCAddress)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasMasterKey)
}

func TestLoadMasterKey(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantKey    string
		wantHasKey bool
	}{
		{
			name:       "Unset",
			env:        map[string]string{},
			wantHasKey: false,
		},
		{
			name:       "Set",
			env:        map[string]string{"MASTER_KEY": "topsecret"},
			wantKey:    "topsecret",
			wantHasKey: true,
		},
		{
			name:       "Set but empty",
			env:        map[string]string{"MASTER_KEY": ""},
			wantKey:    "",
			wantHasKey: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(env(tt.env))
			require.NoError(t, err)

			assert.Equal(t, tt.wantKey, cfg.MasterKey)
			assert.Equal(t, tt.wantHasKey, cfg.HasMasterKey)
		})
	}
}

func TestLoadWithEnv(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"SERVER_ADDRESS":    "localhost:8888",
		"GRPC_ADDRESS":      "localhost:9999",
		"DB_PATH":           "/var/lib/shortlink",
		"STORAGE":           "memory",
		"FILE_STORAGE_PATH": "/tmp/records.jsonl",
		"DATABASE_DSN":      "postgres://localhost/shortlink",
		"LOG_LEVEL":         "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8888", cfg.ServerAddress)
	assert.Equal(t, "localhost:9999", cfg.GRPCAddress)
	assert.Equal(t, "/var/lib/shortlink", cfg.DBPath)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "/tmp/records.jsonl", cfg.FileStoragePath)
	assert.Equal(t, "postgres://localhost/shortlink", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server_address: file:7103
grpc_address: file:9000
db_path: /srv/db
log_level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(env(map[string]string{"CONFIG": path}))
	require.NoError(t, err)

	assert.Equal(t, "file:7103", cfg.ServerAddress)
	assert.Equal(t, "file:9000", cfg.GRPCAddress)
	assert.Equal(t, "/srv/db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, StorageLevel, cfg.Storage)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: file:7103\n"), 0644))

	cfg, err := Load(env(map[string]string{
		"CONFIG":         path,
		"SERVER_ADDRESS": "env:7103",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env:7103", cfg.ServerAddress)
}

func TestLoadFileCannotSetMasterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("master_key: fromfile\n"), 0644))

	cfg, err := Load(env(map[string]string{"CONFIG": path}))
	require.NoError(t, err)

	assert.False(t, cfg.HasMasterKey)
	assert.Empty(t, cfg.MasterKey)
}

func TestLoadErrors(t *testing.T) {
	badYAML := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("server_address: [unterminated\n"), 0644))

	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Missing config file",
			env:  map[string]string{"CONFIG": filepath.Join(t.TempDir(), "absent.yaml")},
		},
		{
			name: "Malformed config file",
			env:  map[string]string{"CONFIG": badYAML},
		},
		{
			name: "Unknown storage",
			env:  map[string]string{"STORAGE": "redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(env(tt.env))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewConfigReadsProcessEnvironment(t *testing.T) {
	t.Setenv("CONFIG", "")
	t.Setenv("STORAGE", "")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:7200")
	t.Setenv("MASTER_KEY", "topsecret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7200", cfg.ServerAddress)
	assert.Equal(t, "topsecret", cfg.MasterKey)
	assert.True(t, cfg.HasMasterKey)
}
