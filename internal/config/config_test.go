package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagtime/internal/stats"
)

func clearEnv(t *testing.T) {
	t.Setenv(DatabaseEnvVar, "")
	t.Setenv(LogEnvVar, "")
	t.Setenv(EnvEnvVar, "")
	t.Setenv(ConfigEnvVar, "")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, stats.DefaultFormat, cfg.Format())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
database_path = "/tmp/tt.db"
environment = "development"

[display]
time_format = "3:04 PM"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tt.db", cfg.DatabasePath)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3:04 PM", cfg.Format().Time)
	assert.Equal(t, stats.DefaultFormat.Date, cfg.Format().Date)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`database_path = "/tmp/file.db"`), 0644))
	t.Setenv(DatabaseEnvVar, "/tmp/env.db")
	t.Setenv(EnvEnvVar, "DEVELOPMENT")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DatabasePath)
	assert.Equal(t, "development", cfg.Environment)
}

func TestDefaultPathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigEnvVar, "/etc/tagtime/../tagtime.toml")
	assert.Equal(t, "/etc/tagtime.toml", DefaultPath())
}

func TestLoadRejectsBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`database_path = `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DatabasePath = " "
	assert.ErrorIs(t, cfg.Validate(), ErrNoDatabase)

	cfg = Default()
	cfg.Environment = "staging"
	assert.Error(t, cfg.Validate())
}
