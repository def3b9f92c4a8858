package storage

import (
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/memory"
	"github.com/andrescamacho/voyageplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/database"
)

// Backend bundles the repositories of one storage backend
type Backend struct {
	Kind        string
	Vessels     voyage.VesselRepository
	Voyages     voyage.VoyageRepository
	Waypoints   voyage.WaypointRepository
	Calibration calibration.Repository
	Runs        voyage.ScheduleRunRepository

	close func() error
}

// Open connects the backend named by cfg.Type. SQL backends are migrated on open.
func Open(cfg *config.DatabaseConfig) (*Backend, error) {
	switch cfg.Type {
	case "memory":
		store, err := memory.NewStore()
		if err != nil {
			return nil, err
		}
		return &Backend{
			Kind:        cfg.Type,
			Vessels:     memory.NewVesselRepository(store),
			Voyages:     memory.NewVoyageRepository(store),
			Waypoints:   memory.NewWaypointRepository(store),
			Calibration: memory.NewCalibrationRepository(store),
			Runs:        memory.NewScheduleRunRepository(store),
			close:       func() error { return nil },
		}, nil

	case "postgres", "sqlite":
		db, err := database.NewConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Type, err)
		}
		if err := database.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to migrate %s database: %w", cfg.Type, err)
		}
		return &Backend{
			Kind:        cfg.Type,
			Vessels:     persistence.NewGormVesselRepository(db),
			Voyages:     persistence.NewGormVoyageRepository(db),
			Waypoints:   persistence.NewGormWaypointRepository(db),
			Calibration: persistence.NewGormCalibrationRepository(db),
			Runs:        persistence.NewGormScheduleRunRepository(db),
			close:       func() error { return database.Close(db) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Type)
	}
}

// Close releases the underlying connection
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
