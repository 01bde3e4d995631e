package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Server.CacheTTL)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, SourceDatabase, cfg.Source.Kind)
	assert.Equal(t, time.Hour, cfg.Refresh.Interval)
	assert.Equal(t, DefaultCriticalThreshold, cfg.Analysis.CriticalThreshold)
	require.NotNil(t, cfg.Analysis.Location)
	assert.Equal(t, "Asia/Jakarta", cfg.Analysis.Location.String())
}

func TestLoad_Example(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	cfg, err := Load("config.example.yaml")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Database.ConnMaxLifetimeMinutes)
	assert.True(t, cfg.Refresh.Enabled)
	assert.Equal(t, "./data/katalog_barang.xlsx", cfg.Source.CatalogPath)
}

func TestLoad_EnvOverridesDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "file:test.db")
	cfg, err := Load(writeConfig(t, "database:\n  driver: sqlite\n  dsn: ignored.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "analysis:\n  timezone: Mars/Olympus\n"))
	assert.ErrorContains(t, err, "invalid analysis.timezone")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotNil(t, cfg.Analysis.Location)
}
