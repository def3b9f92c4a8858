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

func TestVesselRepository_CreateFindList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVesselRepository(db)
	ctx := context.Background()

	vessel, err := voyage.NewVessel("Aurora")
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Create(ctx, vessel))
	found, err := repo.FindByID(ctx, vessel.ID)
	require.NoError(t, err)
	all, err := repo.List(ctx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Aurora", found.Name)
	assert.Len(t, all, 1)
}

func TestVesselRepository_FindByIDMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVesselRepository(db)

	_, err := repo.FindByID(context.Background(), 9)

	var notFound *shared.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "vessel", notFound.Entity)
}

func TestVoyageRepository_CreateAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC)
	v, err := voyage.NewVoyage(1, "Channel crossing", &start)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Create(ctx, v))
	found, err := repo.FindByID(ctx, v.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Channel crossing", found.Name)
	assert.Equal(t, int64(1), found.VesselID)
	require.NotNil(t, found.StartDate)
	assert.True(t, start.Equal(*found.StartDate))
	assert.Zero(t, found.Distance)
	assert.Zero(t, found.FuelConsumption)
}

func TestVoyageRepository_FindByIDMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)

	_, err := repo.FindByID(context.Background(), 77)

	var notFound *voyage.VoyageNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(77), notFound.ID)
}

func TestVoyageRepository_NilStartDateRoundTrips(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)
	ctx := context.Background()

	v, _ := voyage.NewVoyage(1, "", nil)
	require.NoError(t, repo.Create(ctx, v))

	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, found.StartDate)
}

func TestVoyageRepository_UpdateTotals(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)
	ctx := context.Background()

	v, _ := voyage.NewVoyage(1, "Totals", nil)
	require.NoError(t, repo.Create(ctx, v))

	// Act
	err := repo.UpdateTotals(ctx, v.ID, 185.5055, 64.1234)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.InDelta(t, 185.5055, found.Distance, 1e-4)
	assert.InDelta(t, 64.1234, found.FuelConsumption, 1e-4)
	assert.Equal(t, "Totals", found.Name)
}

func TestVoyageRepository_UpdateTotalsMissingVoyage(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)

	err := repo.UpdateTotals(context.Background(), 12, 1, 1)

	var notFound *voyage.VoyageNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestVoyageRepository_ListByVessel(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVoyageRepository(db)
	ctx := context.Background()

	for _, vesselID := range []int64{1, 2, 1} {
		v, _ := voyage.NewVoyage(vesselID, "", nil)
		require.NoError(t, repo.Create(ctx, v))
	}

	// Act
	forVessel, err := repo.List(ctx, 1)
	require.NoError(t, err)
	all, err := repo.List(ctx, 0)
	require.NoError(t, err)

	// Assert
	assert.Len(t, forVessel, 2)
	assert.Len(t, all, 3)
}
