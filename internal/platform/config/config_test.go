package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data/json", cfg.DataRoot)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "rollcall.records", cfg.KafkaTopic)
	assert.Positive(t, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rollcall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_root: /srv/votes\nworkers: 2\ndb_driver: pgx\n"), 0o600))
	t.Setenv("ROLLCALL_WORKERS", "8")
	t.Setenv("ROLLCALL_KAFKA_BROKERS", "a:9092, b:9092,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/votes", cfg.DataRoot)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("ROLLCALL_WORKERS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "ROLLCALL_WORKERS")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBDriver = "mysql"
	cfg.Workers = 0
	cfg.OutputPath = " "

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "mysql")
	assert.ErrorContains(t, err, "workers must be positive")
	assert.ErrorContains(t, err, "output path is required")
}
