package config_test

import (
	"os"
	"paperpulse/internal/config"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(config.CatalogEnv, "")
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults to the XDG catalog", func(t *testing.T) {
		dir := isolate(t)

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "data", "paperpulse", "catalog.yaml"), cfg.CatalogPath)
		assert.False(t, cfg.Explicit)
	})

	t.Run("environment overrides the default", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.CatalogEnv, "/srv/books.yaml")

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, "/srv/books.yaml", cfg.CatalogPath)
		assert.True(t, cfg.Explicit)
	})

	t.Run("flag overrides the environment", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.CatalogEnv, "/srv/books.yaml")

		cfg, err := config.Load("/tmp/flag.yaml")

		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag.yaml", cfg.CatalogPath)
		assert.True(t, cfg.Explicit)
	})

	t.Run("relative paths are made absolute", func(t *testing.T) {
		dir := isolate(t)

		cfg, err := config.Load("books.yaml")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "books.yaml"), cfg.CatalogPath)
	})

	t.Run("reads the catalog from a .env file", func(t *testing.T) {
		dir := isolate(t)
		os.Unsetenv(config.CatalogEnv)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAPERPULSE_CATALOG=/from/dotenv.yaml\n"), 0o644))

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, "/from/dotenv.yaml", cfg.CatalogPath)
		assert.True(t, cfg.Explicit)
	})

	t.Run(".env never overrides the environment", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(config.CatalogEnv, "/from/env.yaml")
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAPERPULSE_CATALOG=/from/dotenv.yaml\n"), 0o644))

		cfg, err := config.Load("")

		require.NoError(t, err)
		assert.Equal(t, "/from/env.yaml", cfg.CatalogPath)
	})

	t.Run("malformed .env is an error", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAPERPULSE_CATALOG='unterminated\n"), 0o644))

		_, err := config.Load("")

		assert.Error(t, err)
	})
}
