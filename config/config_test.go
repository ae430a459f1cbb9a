package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToEngineDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.EnableCombat)
	assert.Equal(t, 2000, cfg.MaxEvents)
	assert.NotEmpty(t, cfg.ScenarioTag, "Load should stamp a scenario tag when none is configured")
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nebula4x.yaml")
	contents := "enable_combat: false\nmax_events: 500\nscenario_tag: fixture-run\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.EnableCombat)
	assert.Equal(t, 500, cfg.MaxEvents)
	assert.Equal(t, "fixture-run", cfg.ScenarioTag)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("NEBULA4X_MAX_EVENTS", "777")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 777, cfg.MaxEvents)
}

func TestLoadRejectsOutOfRangeFractions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nebula4x.yaml")
	contents := "wrecks_cargo_salvage_fraction: 1.5\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WrecksCargoSalvageFraction")
}

func TestLoadOrDefaultNeverErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nebula4x.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wrecks_cargo_salvage_fraction: 5\n"), 0o644))

	cfg := LoadOrDefault(path)
	assert.Equal(t, 2000, cfg.MaxEvents, "a bad file should fall back to engine.DefaultConfig")
}
