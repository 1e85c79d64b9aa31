package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load(filepath.Join(dir, "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, defaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.SessionPath)
	assert.Equal(t, filepath.Join(dir, "data.db"), cfg.DataPath)
	assert.Equal(t, filepath.Join(dir, "client.log"), cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "US", cfg.PhoneRegion)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SERVER_ADDRESS", "pos.example.com")
	t.Setenv("ENABLE_TLS", "true")
	t.Setenv("SYNC_INTERVAL_SECONDS", "5")
	t.Setenv("PHONE_REGION", "GB")

	cfg, err := Load(filepath.Join(dir, "missing.env"))

	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.EnableTLS)
	assert.Equal(t, "pos.example.com", cfg.ServerAddress)
	assert.Equal(t, 5*time.Second, cfg.SyncInterval)
	assert.Equal(t, "GB", cfg.PhoneRegion)
}

func TestLoad_InvalidInterval(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SYNC_INTERVAL_SECONDS", "0")

	_, err := Load(filepath.Join(dir, "missing.env"))

	assert.Error(t, err)
}
