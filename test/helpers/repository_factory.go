package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/memory"
	"github.com/andrescamacho/voyageplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// Repositories groups the planning ports a test writes through
type Repositories struct {
	Vessels     voyage.VesselRepository
	Voyages     voyage.VoyageRepository
	Waypoints   voyage.WaypointRepository
	Calibration calibration.Repository
	Runs        voyage.ScheduleRunRepository
}

// NewGormRepositories wires every repository to db
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Vessels:     persistence.NewGormVesselRepository(db),
		Voyages:     persistence.NewGormVoyageRepository(db),
		Waypoints:   persistence.NewGormWaypointRepository(db),
		Calibration: persistence.NewGormCalibrationRepository(db),
		Runs:        persistence.NewGormScheduleRunRepository(db),
	}
}

// NewMemoryRepositories wires every repository to a fresh in-memory store
func NewMemoryRepositories(t *testing.T) Repositories {
	store, err := memory.NewStore()
	require.NoError(t, err)

	return Repositories{
		Vessels:     memory.NewVesselRepository(store),
		Voyages:     memory.NewVoyageRepository(store),
		Waypoints:   memory.NewWaypointRepository(store),
		Calibration: memory.NewCalibrationRepository(store),
		Runs:        memory.NewScheduleRunRepository(store),
	}
}

// NewTestRepositories returns GORM repositories over a fresh SQLite database
func NewTestRepositories(t *testing.T) Repositories {
	return NewGormRepositories(NewTestDB(t))
}
