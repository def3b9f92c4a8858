package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/memory"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

func newStore(t *testing.T) *memory.Store {
	store, err := memory.NewStore()
	require.NoError(t, err)
	return store
}

func TestVesselRepository_CreateAssignsSequentialIDs(t *testing.T) {
	// Arrange
	repo := memory.NewVesselRepository(newStore(t))
	ctx := context.Background()

	first, _ := voyage.NewVessel("Aurora")
	second, _ := voyage.NewVessel("Borealis")

	// Act
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// Assert
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	vessels, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vessels, 2)
	assert.Equal(t, "Aurora", vessels[0].Name)
	assert.Equal(t, "Borealis", vessels[1].Name)
}

func TestVesselRepository_FindByIDMissing(t *testing.T) {
	repo := memory.NewVesselRepository(newStore(t))

	_, err := repo.FindByID(context.Background(), 42)

	var notFound *shared.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "vessel", notFound.Entity)
}

func TestVoyageRepository_ListFiltersByVessel(t *testing.T) {
	// Arrange
	repo := memory.NewVoyageRepository(newStore(t))
	ctx := context.Background()

	for _, vesselID := range []int64{1, 2, 1} {
		v, err := voyage.NewVoyage(vesselID, "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, v))
	}

	// Act
	forVessel, err := repo.List(ctx, 1)
	require.NoError(t, err)
	all, err := repo.List(ctx, 0)
	require.NoError(t, err)

	// Assert
	require.Len(t, forVessel, 2)
	assert.Equal(t, int64(1), forVessel[0].ID)
	assert.Equal(t, int64(3), forVessel[1].ID)
	assert.Len(t, all, 3)
}

func TestVoyageRepository_UpdateTotalsOnlyTouchesTotals(t *testing.T) {
	// Arrange
	repo := memory.NewVoyageRepository(newStore(t))
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v, _ := voyage.NewVoyage(1, "North Sea", &start)
	require.NoError(t, repo.Create(ctx, v))

	// Act
	err := repo.UpdateTotals(ctx, v.ID, 120.5, 48.2)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.5, found.Distance)
	assert.Equal(t, 48.2, found.FuelConsumption)
	assert.Equal(t, "North Sea", found.Name)
	require.NotNil(t, found.StartDate)
	assert.True(t, start.Equal(*found.StartDate))
}

func TestVoyageRepository_UpdateTotalsMissingVoyage(t *testing.T) {
	repo := memory.NewVoyageRepository(newStore(t))

	err := repo.UpdateTotals(context.Background(), 7, 1, 1)

	var notFound *voyage.VoyageNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestVoyageRepository_ReturnsCopies(t *testing.T) {
	// Arrange
	repo := memory.NewVoyageRepository(newStore(t))
	ctx := context.Background()
	v, _ := voyage.NewVoyage(1, "", nil)
	require.NoError(t, repo.Create(ctx, v))

	// Act
	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	found.Distance = 999

	// Assert
	again, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Distance)
}

func TestWaypointRepository_RejectsDuplicateOrderIndex(t *testing.T) {
	// Arrange
	repo := memory.NewWaypointRepository(newStore(t))
	ctx := context.Background()

	first, _ := voyage.NewWaypoint(1, 0, "A", 0, 0)
	dup, _ := voyage.NewWaypoint(1, 0, "B", 1, 1)
	otherVoyage, _ := voyage.NewWaypoint(2, 0, "C", 1, 1)
	require.NoError(t, repo.Create(ctx, first))

	// Act
	err := repo.Create(ctx, dup)

	// Assert
	var dupErr *voyage.DuplicateOrderIndexError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, int64(1), dupErr.VoyageID)
	assert.Zero(t, dup.ID)
	assert.NoError(t, repo.Create(ctx, otherVoyage))
}

func TestWaypointRepository_ListByVoyageOrdersByIndex(t *testing.T) {
	// Arrange
	repo := memory.NewWaypointRepository(newStore(t))
	ctx := context.Background()

	for _, order := range []int{20, 5, 10} {
		wp, _ := voyage.NewWaypoint(1, order, "", 0, 0)
		require.NoError(t, repo.Create(ctx, wp))
	}

	// Act
	waypoints, err := repo.ListByVoyage(ctx, 1)

	// Assert
	require.NoError(t, err)
	require.Len(t, waypoints, 3)
	assert.Equal(t, 5, waypoints[0].OrderIndex)
	assert.Equal(t, 10, waypoints[1].OrderIndex)
	assert.Equal(t, 20, waypoints[2].OrderIndex)
}

func TestWaypointRepository_UpdateAppliesPartialChanges(t *testing.T) {
	// Arrange
	repo := memory.NewWaypointRepository(newStore(t))
	ctx := context.Background()

	rpm := 1800
	wp, _ := voyage.NewWaypoint(1, 0, "A", 0, 0)
	wp.EngineRPM = &rpm
	require.NoError(t, repo.Create(ctx, wp))

	distance := 24.0162
	arrival := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	changes := voyage.WaypointChanges{
		voyage.FieldDistance:         &distance,
		voyage.FieldEstimatedArrival: &arrival,
		voyage.FieldDerived:          voyage.FieldSet(0).Add(voyage.FieldDistance),
	}

	// Act
	err := repo.Update(ctx, wp.ID, changes)

	// Assert
	require.NoError(t, err)
	waypoints, err := repo.ListByVoyage(ctx, 1)
	require.NoError(t, err)
	require.Len(t, waypoints, 1)
	got := waypoints[0]
	require.NotNil(t, got.Distance)
	assert.Equal(t, distance, *got.Distance)
	require.NotNil(t, got.EngineRPM)
	assert.Equal(t, 1800, *got.EngineRPM)
	require.NotNil(t, got.EstimatedArrival)
	assert.True(t, arrival.Equal(*got.EstimatedArrival))
	assert.True(t, got.Derived.Has(voyage.FieldDistance))
}

func TestWaypointRepository_UpdateMissingWaypoint(t *testing.T) {
	repo := memory.NewWaypointRepository(newStore(t))
	distance := 1.0

	err := repo.Update(context.Background(), 99, voyage.WaypointChanges{voyage.FieldDistance: &distance})

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCalibrationRepository_CurvesKeepInsertionOrder(t *testing.T) {
	// Arrange
	repo := memory.NewCalibrationRepository(newStore(t))
	ctx := context.Background()

	add := func(vesselID int64, kind calibration.Kind, rpm int, value float64) {
		s, err := calibration.NewSample(vesselID, kind, rpm, value)
		require.NoError(t, err)
		require.NoError(t, repo.AddSample(ctx, s))
	}
	add(1, calibration.KindSpeed, 1800, 12)
	add(1, calibration.KindFuelRate, 1800, 150)
	add(1, calibration.KindSpeed, 1200, 8)
	add(2, calibration.KindSpeed, 1500, 10)

	// Act
	speed, err := repo.SpeedCurve(ctx, 1)
	require.NoError(t, err)
	fuel, err := repo.FuelCurve(ctx, 1)
	require.NoError(t, err)
	none, err := repo.FuelCurve(ctx, 3)
	require.NoError(t, err)

	// Assert
	require.Len(t, speed, 2)
	assert.Equal(t, 1800, speed[0].EngineRPM)
	assert.Equal(t, 1200, speed[1].EngineRPM)
	require.Len(t, fuel, 1)
	assert.Equal(t, 150.0, fuel[0].Value)
	assert.Empty(t, none)
}

func TestScheduleRunRepository_LatestPrefersNewest(t *testing.T) {
	// Arrange
	repo := memory.NewScheduleRunRepository(newStore(t))
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &voyage.ScheduleRun{ID: "a", VoyageID: 1, Mode: voyage.RunModeFull, CreatedAt: at}
	sameInstant := &voyage.ScheduleRun{ID: "b", VoyageID: 1, Mode: voyage.RunModeTimes, CreatedAt: at}
	otherVoyage := &voyage.ScheduleRun{ID: "c", VoyageID: 2, CreatedAt: at.Add(time.Hour)}
	require.NoError(t, repo.Record(ctx, older))
	require.NoError(t, repo.Record(ctx, sameInstant))
	require.NoError(t, repo.Record(ctx, otherVoyage))

	// Act
	latest, err := repo.Latest(ctx, 1)
	require.NoError(t, err)
	never, err := repo.Latest(ctx, 3)
	require.NoError(t, err)

	// Assert
	require.NotNil(t, latest)
	assert.Equal(t, "b", latest.ID)
	assert.Equal(t, voyage.RunModeTimes, latest.Mode)
	assert.Nil(t, never)
}

func TestStore_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	// Arrange
	repo := memory.NewVesselRepository(newStore(t))
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	ids := make(chan int64, n)

	// Act
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := voyage.NewVessel("v")
			if err := repo.Create(ctx, v); err == nil {
				ids <- v.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	// Assert
	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
