package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/test/helpers"
)

func TestWaypointRepository_CreateAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	ctx := context.Background()

	rpm := 1800
	distance := 12.5
	wp, err := voyage.NewWaypoint(1, 0, "Dover", 51.1279, 1.3134)
	require.NoError(t, err)
	wp.EngineRPM = &rpm
	wp.Distance = &distance

	// Act
	err = repo.Create(ctx, wp)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, wp.ID)

	// Act - ListByVoyage
	found, err := repo.ListByVoyage(ctx, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	got := found[0]
	assert.Equal(t, wp.ID, got.ID)
	assert.Equal(t, "Dover", got.Name)
	assert.InDelta(t, 51.1279, got.Latitude, 1e-9)
	assert.InDelta(t, 1.3134, got.Longitude, 1e-9)
	require.NotNil(t, got.Distance)
	assert.InDelta(t, 12.5, *got.Distance, 1e-9)
	require.NotNil(t, got.EngineRPM)
	assert.Equal(t, 1800, *got.EngineRPM)
	assert.Nil(t, got.PlannedSpeed)
	assert.Nil(t, got.FuelConsumption)
	assert.Nil(t, got.EstimatedArrival)
	assert.Zero(t, got.Derived)
}

func TestWaypointRepository_ListByVoyageOrdersByIndex(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	ctx := context.Background()

	for _, order := range []int{30, 10, 20} {
		wp, _ := voyage.NewWaypoint(1, order, "", 0, 0)
		require.NoError(t, repo.Create(ctx, wp))
	}
	other, _ := voyage.NewWaypoint(2, 0, "", 0, 0)
	require.NoError(t, repo.Create(ctx, other))

	// Act
	waypoints, err := repo.ListByVoyage(ctx, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, waypoints, 3)
	assert.Equal(t, []int{10, 20, 30}, []int{
		waypoints[0].OrderIndex,
		waypoints[1].OrderIndex,
		waypoints[2].OrderIndex,
	})
}

func TestWaypointRepository_CreateRejectsDuplicateOrderIndex(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	ctx := context.Background()

	first, _ := voyage.NewWaypoint(1, 3, "A", 0, 0)
	require.NoError(t, repo.Create(ctx, first))
	dup, _ := voyage.NewWaypoint(1, 3, "B", 1, 1)

	// Act
	err := repo.Create(ctx, dup)

	// Assert
	var dupErr *voyage.DuplicateOrderIndexError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, 3, dupErr.OrderIndex)
}

func TestWaypointRepository_UpdateWritesOnlyChangedColumns(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	ctx := context.Background()

	rpm := 1500
	speed := 9.0
	wp, _ := voyage.NewWaypoint(1, 0, "A", 0, 0)
	wp.EngineRPM = &rpm
	wp.PlannedSpeed = &speed
	require.NoError(t, repo.Create(ctx, wp))

	fuel := 42.25
	arrival := time.Date(2024, 1, 1, 2, 24, 5, 0, time.UTC)
	changes := voyage.WaypointChanges{
		voyage.FieldFuelConsumption:  &fuel,
		voyage.FieldEstimatedArrival: &arrival,
		voyage.FieldDerived:          voyage.FieldSet(0).Add(voyage.FieldFuelConsumption),
	}

	// Act
	err := repo.Update(ctx, wp.ID, changes)

	// Assert
	require.NoError(t, err)
	waypoints, err := repo.ListByVoyage(ctx, 1)
	require.NoError(t, err)
	got := waypoints[0]
	require.NotNil(t, got.FuelConsumption)
	assert.InDelta(t, 42.25, *got.FuelConsumption, 1e-9)
	require.NotNil(t, got.EstimatedArrival)
	assert.True(t, arrival.Equal(*got.EstimatedArrival))
	assert.Equal(t, time.UTC, got.EstimatedArrival.Location())
	require.NotNil(t, got.PlannedSpeed)
	assert.InDelta(t, 9.0, *got.PlannedSpeed, 1e-9)
	require.NotNil(t, got.EngineRPM)
	assert.Equal(t, 1500, *got.EngineRPM)
	assert.True(t, got.Derived.Has(voyage.FieldFuelConsumption))
	assert.False(t, got.Derived.Has(voyage.FieldDistance))
}

func TestWaypointRepository_UpdateCanClearField(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	ctx := context.Background()

	distance := 5.0
	wp, _ := voyage.NewWaypoint(1, 0, "A", 0, 0)
	wp.Distance = &distance
	require.NoError(t, repo.Create(ctx, wp))

	// Act
	err := repo.Update(ctx, wp.ID, voyage.WaypointChanges{voyage.FieldDistance: (*float64)(nil)})

	// Assert
	require.NoError(t, err)
	waypoints, err := repo.ListByVoyage(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, waypoints[0].Distance)
}

func TestWaypointRepository_UpdateMissingWaypoint(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)
	fuel := 1.0

	// Act
	err := repo.Update(context.Background(), 404, voyage.WaypointChanges{voyage.FieldFuelConsumption: &fuel})

	// Assert
	var notFound *shared.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "waypoint", notFound.Entity)
}

func TestWaypointRepository_UpdateWithNoChangesIsNoop(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db)

	err := repo.Update(context.Background(), 404, voyage.WaypointChanges{})

	assert.NoError(t, err)
}
