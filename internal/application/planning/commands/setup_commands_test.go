package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/test/helpers"
)

func TestCreateVoyage_RequiresExistingVessel(t *testing.T) {
	// Arrange
	repos := helpers.NewMemoryRepositories(t)
	handler := commands.NewCreateVoyageHandler(repos.Vessels, repos.Voyages)

	// Act
	_, err := handler.Handle(context.Background(), &commands.CreateVoyageCommand{VesselID: 3})

	// Assert
	var notFound *shared.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "vessel", notFound.Entity)
}

func TestCreateVoyage_NormalizesStartDateToUTC(t *testing.T) {
	// Arrange
	repos := helpers.NewMemoryRepositories(t)
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	handler := commands.NewCreateVoyageHandler(repos.Vessels, repos.Voyages)
	start := time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 3600))

	// Act
	resp, err := handler.Handle(context.Background(), &commands.CreateVoyageCommand{
		VesselID:  vessel.ID,
		Name:      "Kiel run",
		StartDate: &start,
	})

	// Assert
	require.NoError(t, err)
	v := resp.(*commands.CreateVoyageResponse).Voyage
	assert.NotZero(t, v.ID)
	require.NotNil(t, v.StartDate)
	assert.Equal(t, time.UTC, v.StartDate.Location())
	assert.Equal(t, 1, v.StartDate.Hour())
}

func TestAddWaypoint_Validation(t *testing.T) {
	repos := helpers.NewMemoryRepositories(t)
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	v, _ := helpers.CreateVoyage(t, repos, vessel.ID, nil)
	handler := commands.NewAddWaypointHandler(repos.Voyages, repos.Waypoints)

	tests := []struct {
		name string
		cmd  *commands.AddWaypointCommand
	}{
		{"latitude out of range", &commands.AddWaypointCommand{VoyageID: v.ID, Latitude: 91}},
		{"longitude out of range", &commands.AddWaypointCommand{VoyageID: v.ID, Longitude: -181}},
		{"negative distance", &commands.AddWaypointCommand{VoyageID: v.ID, Distance: helpers.Float(-1)}},
		{"negative rpm", &commands.AddWaypointCommand{VoyageID: v.ID, EngineRPM: helpers.Int(-5)}},
		{"negative order", &commands.AddWaypointCommand{VoyageID: v.ID, OrderIndex: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)

			var validation *shared.ValidationError
			assert.True(t, errors.As(err, &validation), "got %v", err)
		})
	}
}

func TestAddWaypoint_DuplicateOrderIndex(t *testing.T) {
	// Arrange
	repos := helpers.NewMemoryRepositories(t)
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	v, _ := helpers.CreateVoyage(t, repos, vessel.ID, nil, helpers.Stop{Name: "A"})
	handler := commands.NewAddWaypointHandler(repos.Voyages, repos.Waypoints)

	// Act
	_, err := handler.Handle(context.Background(), &commands.AddWaypointCommand{VoyageID: v.ID, OrderIndex: 0})

	// Assert
	var dup *voyage.DuplicateOrderIndexError
	assert.True(t, errors.As(err, &dup))
}

func TestAddCalibrationSample_StoresSampleOnCurve(t *testing.T) {
	// Arrange
	repos := helpers.NewMemoryRepositories(t)
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	handler := commands.NewAddCalibrationSampleHandler(repos.Vessels, repos.Calibration)

	// Act
	_, err := handler.Handle(context.Background(), &commands.AddCalibrationSampleCommand{
		VesselID:  vessel.ID,
		Kind:      "fuel_rate",
		EngineRPM: 1600,
		Value:     50,
	})

	// Assert
	require.NoError(t, err)
	fuel, err := repos.Calibration.FuelCurve(context.Background(), vessel.ID)
	require.NoError(t, err)
	require.Len(t, fuel, 1)
	assert.Equal(t, calibration.KindFuelRate, fuel[0].Kind)
}

func TestAddCalibrationSample_RejectsUnknownKind(t *testing.T) {
	repos := helpers.NewMemoryRepositories(t)
	vessel := helpers.CreateVessel(t, repos, "Aurora")
	handler := commands.NewAddCalibrationSampleHandler(repos.Vessels, repos.Calibration)

	_, err := handler.Handle(context.Background(), &commands.AddCalibrationSampleCommand{
		VesselID: vessel.ID,
		Kind:     "torque",
	})

	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))
}
