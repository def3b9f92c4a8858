package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/test/helpers"
)

func TestCalibrationRepository_CurvesAreSplitByKindAndVessel(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCalibrationRepository(db)
	ctx := context.Background()

	samples := []struct {
		vessel int64
		kind   calibration.Kind
		rpm    int
		value  float64
	}{
		{1, calibration.KindSpeed, 1800, 12},
		{1, calibration.KindSpeed, 1200, 8},
		{1, calibration.KindFuelRate, 1800, 150},
		{2, calibration.KindSpeed, 1500, 10},
	}
	for _, s := range samples {
		sample, err := calibration.NewSample(s.vessel, s.kind, s.rpm, s.value)
		require.NoError(t, err)
		require.NoError(t, repo.AddSample(ctx, sample))
		assert.NotZero(t, sample.ID)
	}

	// Act
	speed, err := repo.SpeedCurve(ctx, 1)
	require.NoError(t, err)
	fuel, err := repo.FuelCurve(ctx, 1)
	require.NoError(t, err)

	// Assert
	require.Len(t, speed, 2)
	assert.Equal(t, 1800, speed[0].EngineRPM)
	assert.Equal(t, 1200, speed[1].EngineRPM)
	assert.Equal(t, calibration.KindSpeed, speed[0].Kind)
	require.Len(t, fuel, 1)
	assert.InDelta(t, 150.0, fuel[0].Value, 1e-9)
}

func TestCalibrationRepository_UncalibratedVesselHasEmptyCurves(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCalibrationRepository(db)

	// Act
	curves, err := calibration.LoadCurves(context.Background(), repo, 5)

	// Assert
	require.NoError(t, err)
	assert.True(t, curves.IsEmpty())
}
