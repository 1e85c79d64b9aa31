package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/shop")
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, "postgres://localhost/shop", cfg.DB.DatabaseURI)
	assert.Equal(t, defaultMigrations, cfg.DB.Migrations)
	assert.Equal(t, defaultRegion, cfg.Server.PhoneRegion)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URI=postgres://file/shop\n"), 0600))
	t.Setenv("DATABASE_URI", "")
	os.Unsetenv("DATABASE_URI")
	t.Cleanup(func() { os.Unsetenv("DATABASE_URI") })

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres://file/shop", cfg.DB.DatabaseURI)
	assert.Equal(t, EnvLocal, cfg.Env)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URI", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("DATABASE_URI", "postgres://localhost/shop")
	t.Setenv("APP_ENV", "staging")

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
