package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	planninggrpc "github.com/andrescamacho/voyageplanner-go/internal/adapters/grpc"
)

// cliEnv points the CLI at a throwaway sqlite database and home directory
func cliEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  type: sqlite\n  path: " + filepath.Join(dir, "voyages.db") + "\n" +
		"logging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))
	return cfgPath
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_ScheduleCalibratedVoyage(t *testing.T) {
	// Arrange
	cfg := cliEnv(t)
	mustRun(t, cfg, "vessel", "create", "MV Aurora")
	mustRun(t, cfg, "calibration", "add", "--vessel", "1", "--kind", "speed", "--rpm", "1600", "--value", "12")
	mustRun(t, cfg, "calibration", "add", "--vessel", "1", "--kind", "fuel_rate", "--rpm", "1600", "--value", "50")
	mustRun(t, cfg, "voyage", "create", "--vessel", "1", "--name", "Channel run", "--start", "2024-01-01T00:00:00Z")
	mustRun(t, cfg, "waypoint", "add", "--voyage", "1", "--order", "0", "--lat", "0", "--lon", "0", "--name", "Origin")
	mustRun(t, cfg, "waypoint", "add", "--voyage", "1", "--order", "1", "--lat", "0", "--lon", "0.4",
		"--distance", "24", "--rpm", "1600")
	mustRun(t, cfg, "waypoint", "add", "--voyage", "1", "--order", "2", "--lat", "0", "--lon", "0.6",
		"--distance", "12", "--rpm", "1600")

	// Act
	out := mustRun(t, cfg, "voyage", "schedule", "1", "--json")

	// Assert
	var plan planninggrpc.PlanView
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.InDelta(t, 36.0, plan.TotalDistance, 1e-9)
	assert.InDelta(t, 150.0, plan.TotalFuelConsumption, 1e-9)
	assert.False(t, plan.Approximate)
	require.Len(t, plan.Waypoints, 3)
	require.NotNil(t, plan.Waypoints[2].EstimatedArrival)
	assert.Equal(t, "2024-01-01T03:30:00Z", plan.Waypoints[2].EstimatedArrival.UTC().Format("2006-01-02T15:04:05Z07:00"))
}

func TestCLI_ShowRendersStoredPlan(t *testing.T) {
	// Arrange
	cfg := cliEnv(t)
	mustRun(t, cfg, "vessel", "create", "MV Aurora")
	mustRun(t, cfg, "voyage", "create", "--vessel", "1", "--start", "2024-01-01T00:00:00Z")
	mustRun(t, cfg, "waypoint", "add", "--voyage", "1", "--order", "0", "--lat", "0", "--lon", "0", "--name", "Origin")
	mustRun(t, cfg, "waypoint", "add", "--voyage", "1", "--order", "1", "--lat", "0", "--lon", "0.5", "--name", "Buoy")
	mustRun(t, cfg, "voyage", "schedule", "1")

	// Act
	out := mustRun(t, cfg, "voyage", "show", "1")

	// Assert
	assert.Contains(t, out, "Voyage 1")
	assert.Contains(t, out, "Origin")
	assert.Contains(t, out, "Buoy")
	assert.Contains(t, out, "approximate")
	assert.Contains(t, out, "Warnings:")
}

func TestCLI_ListCommands(t *testing.T) {
	cfg := cliEnv(t)
	mustRun(t, cfg, "vessel", "create", "MV Aurora")
	mustRun(t, cfg, "vessel", "create", "MV Borealis")
	mustRun(t, cfg, "voyage", "create", "--vessel", "2", "--name", "North leg")

	vessels := mustRun(t, cfg, "vessel", "list")
	voyages := mustRun(t, cfg, "voyage", "list", "--vessel", "2")
	none := mustRun(t, cfg, "voyage", "list", "--vessel", "1")

	assert.Contains(t, vessels, "MV Aurora")
	assert.Contains(t, vessels, "MV Borealis")
	assert.Contains(t, voyages, "North leg")
	assert.Contains(t, none, "No voyages found")
}

func TestCLI_DefaultVessel(t *testing.T) {
	cfg := cliEnv(t)
	mustRun(t, cfg, "vessel", "create", "MV Aurora")

	_, errWithout := run(t, cfg, "voyage", "create", "--name", "No vessel")
	mustRun(t, cfg, "vessel", "use", "1")
	out := mustRun(t, cfg, "voyage", "create", "--name", "Default vessel")
	mustRun(t, cfg, "config", "clear-vessel")
	_, errCleared := run(t, cfg, "voyage", "create", "--name", "Cleared")

	require.Error(t, errWithout)
	assert.Contains(t, errWithout.Error(), "no vessel specified")
	assert.Contains(t, out, "for vessel 1")
	require.Error(t, errCleared)
}

func TestCLI_Errors(t *testing.T) {
	cfg := cliEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown voyage", []string{"voyage", "schedule", "99"}, "voyage not found: 99"},
		{"non-numeric id", []string{"voyage", "show", "abc"}, "invalid voyage ID"},
		{"bad start", []string{"voyage", "create", "--vessel", "1", "--start", "tomorrow"}, "invalid --start"},
		{"unknown vessel", []string{"voyage", "create", "--vessel", "7"}, "vessel not found: 7"},
		{"bad kind", []string{"calibration", "add", "--vessel", "1", "--kind", "torque", "--rpm", "1", "--value", "1"}, "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, cfg, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCLI_ConfigShow(t *testing.T) {
	cfg := cliEnv(t)

	out := mustRun(t, cfg, "config", "show")

	assert.Contains(t, out, "Type:             sqlite")
	assert.Contains(t, out, "Dwell Time:       30m0s")
	assert.Contains(t, out, "(not set)")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://vp:%2A%2A%2A%2A@db:5432/voyages",
		maskPassword("postgresql://vp:secret@db:5432/voyages"))
	assert.Equal(t, "postgresql://db/voyages", maskPassword("postgresql://db/voyages"))
	assert.Equal(t, "", maskPassword(""))
}
