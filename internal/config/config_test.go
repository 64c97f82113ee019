package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/football-sim/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: football-sim
  version: 0.2.0
  env: test
  port: 18080
  cors_origins: ["http://localhost:3000"]

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

simulation:
  seed: 42
  teams_per_league: 10
  matchday_interval: 72h
`
	path := writeTempConfig(t, yaml)
	t.Setenv("APP_SIMULATION_QUALIFIERS_PER_LEAGUE", "2")
	t.Setenv("APP_LOGGER_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSOrigins)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "stdout", cfg.Logger.OutputTarget)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, 10, cfg.Simulation.TeamsPerLeague)
	assert.Equal(t, 2, cfg.Simulation.Qualifiers)
	assert.Equal(t, 72*time.Hour, cfg.Simulation.MatchdayInterval)
	assert.InDelta(t, 0.015, cfg.Simulation.BaseRate, 1e-12)

	cfg.ApplyEnv()
	assert.Equal(t, "dev", cfg.Logger.Env)
}

func TestConfigLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "Champions League", cfg.Simulation.CupName)
	assert.Equal(t, 20, cfg.Simulation.TeamsPerLeague)

	settings := cfg.Simulation.ServiceSettings()
	assert.Equal(t, 3, settings.Qualifiers)
	require.NotNil(t, settings.Engine.MaxStoppage)
	assert.Equal(t, 10, *settings.Engine.MaxStoppage)
	require.NotNil(t, settings.Engine.NoAssistChance)
	assert.InDelta(t, 0.3, *settings.Engine.NoAssistChance, 1e-12)
}

func TestConfigLoad_ZeroChancesKept(t *testing.T) {
	yaml := `
simulation:
  injury_chance: 0
  no_assist_chance: 0
  max_stoppage: 0
`
	cfg, err := config.Load(writeTempConfig(t, yaml))
	require.NoError(t, err)

	ec := cfg.Simulation.EngineConfig()
	require.NotNil(t, ec.InjuryChance)
	assert.Zero(t, *ec.InjuryChance)
	assert.Zero(t, *ec.NoAssistChance)
	assert.Zero(t, *ec.MaxStoppage)
}

func TestConfigLoad_InvalidValuesFail(t *testing.T) {
	yaml := `
app:
  port: 70000
simulation:
  base_rate: 3
`
	_, err := config.Load(writeTempConfig(t, yaml))
	assert.Error(t, err)
}

func TestConfigLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
