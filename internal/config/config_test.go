package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/config"
)

func TestDefaultIsUnbounded(t *testing.T) {
	cfg := config.Default()
	assert.Zero(t, cfg.MaxClauses)
	assert.Zero(t, cfg.MaxIterations)
	assert.False(t, cfg.Quiet)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pif.yaml")
	contents := "max_clauses: 500\nmax_iterations: 1000\nquiet: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxClauses)
	assert.Equal(t, 1000, cfg.MaxIterations)
	assert.True(t, cfg.Quiet)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pif.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_clauses: [this is not an int\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
