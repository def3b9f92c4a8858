package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// Stop describes one waypoint of a fixture route
type Stop struct {
	Name      string
	Latitude  float64
	Longitude float64
	Distance  *float64
	EngineRPM *int
}

// VoyageStart is the departure used by fixture voyages
var VoyageStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// CreateVessel persists a named vessel
func CreateVessel(t *testing.T, repos Repositories, name string) *voyage.Vessel {
	t.Helper()
	vessel, err := voyage.NewVessel(name)
	require.NoError(t, err)
	require.NoError(t, repos.Vessels.Create(context.Background(), vessel))
	return vessel
}

// CreateVoyage persists a voyage departing at start with one waypoint per
// stop, numbered 0..n-1
func CreateVoyage(t *testing.T, repos Repositories, vesselID int64, start *time.Time, stops ...Stop) (*voyage.Voyage, []*voyage.Waypoint) {
	t.Helper()
	ctx := context.Background()

	v, err := voyage.NewVoyage(vesselID, "fixture", start)
	require.NoError(t, err)
	require.NoError(t, repos.Voyages.Create(ctx, v))

	waypoints := make([]*voyage.Waypoint, 0, len(stops))
	for i, stop := range stops {
		wp, err := voyage.NewWaypoint(v.ID, i, stop.Name, stop.Latitude, stop.Longitude)
		require.NoError(t, err)
		wp.Distance = stop.Distance
		wp.EngineRPM = stop.EngineRPM
		require.NoError(t, repos.Waypoints.Create(ctx, wp))
		waypoints = append(waypoints, wp)
	}
	return v, waypoints
}

// AddCalibration persists one sample per rpm/value pair
func AddCalibration(t *testing.T, repos Repositories, vesselID int64, kind calibration.Kind, points map[int]float64) {
	t.Helper()
	for rpm, value := range points {
		sample, err := calibration.NewSample(vesselID, kind, rpm, value)
		require.NoError(t, err)
		require.NoError(t, repos.Calibration.AddSample(context.Background(), sample))
	}
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
