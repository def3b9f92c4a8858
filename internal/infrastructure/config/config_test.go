package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
)

func TestSetDefaults_PlanningMatchesSchedulingConstants(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, 30*time.Minute, cfg.Planning.DwellTime)
	assert.Equal(t, 1600, cfg.Planning.DefaultRPM)
	assert.Equal(t, 10.0, cfg.Planning.FallbackSpeedKnots)
	assert.Equal(t, 100.0, cfg.Planning.RPMPerKnot)
	assert.Equal(t, 0.08, cfg.Planning.FuelPerRPMHour)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FromYAMLFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
database:
  type: memory
planning:
  dwell_time: 45m
  default_rpm: 1400
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 45*time.Minute, cfg.Planning.DwellTime)
	assert.Equal(t, 1400, cfg.Planning.DefaultRPM)
	assert.Equal(t, 0.08, cfg.Planning.FuelPerRPMHour)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: sqlite\n"), 0644))
	t.Setenv("VP_DATABASE_TYPE", "memory")
	t.Setenv("VP_PLANNING_DWELL_TIME", "1h")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, time.Hour, cfg.Planning.DwellTime)
}

func TestLoadConfig_InvalidValuesAreRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  type: mongodb\n"), 0644))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Database.Type")
}

func TestValidateConfig_FileOutputRequiresPath(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Logging.Output = "file"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FilePath")
}

func TestPlanningConfig_Policy(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	policy := cfg.Planning.Policy()

	assert.Equal(t, 30*time.Minute, policy.DwellTime)
	assert.Equal(t, 1600, policy.DefaultRPM)
}

func TestUserConfigHandler_DefaultVessel(t *testing.T) {
	// Arrange
	handler, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "prefs", "config.json"))
	require.NoError(t, err)

	// Act
	empty, err := handler.Load()
	require.NoError(t, err)
	require.NoError(t, handler.SetDefaultVessel(4))
	loaded, err := handler.Load()

	// Assert
	require.NoError(t, err)
	assert.Nil(t, empty.DefaultVesselID)
	require.NotNil(t, loaded.DefaultVesselID)
	assert.Equal(t, int64(4), *loaded.DefaultVesselID)

	require.NoError(t, handler.ClearDefaultVessel())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Nil(t, cleared.DefaultVesselID)
}
