package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// GormWaypointRepository implements WaypointRepository using GORM
type GormWaypointRepository struct {
	db *gorm.DB
}

// NewGormWaypointRepository creates a new GORM waypoint repository
func NewGormWaypointRepository(db *gorm.DB) *GormWaypointRepository {
	return &GormWaypointRepository{db: db}
}

// Create persists a waypoint and assigns its ID
func (r *GormWaypointRepository) Create(ctx context.Context, wp *voyage.Waypoint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&WaypointModel{}).
			Where("voyage_id = ? AND order_index = ?", wp.VoyageID, wp.OrderIndex).
			Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check order index: %w", err)
		}
		if taken > 0 {
			return &voyage.DuplicateOrderIndexError{VoyageID: wp.VoyageID, OrderIndex: wp.OrderIndex}
		}

		model := r.waypointToModel(wp)
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &voyage.DuplicateOrderIndexError{VoyageID: wp.VoyageID, OrderIndex: wp.OrderIndex}
			}
			return fmt.Errorf("failed to create waypoint: %w", err)
		}
		wp.ID = model.ID
		return nil
	})
}

// ListByVoyage returns the waypoints of a voyage ordered by order index
func (r *GormWaypointRepository) ListByVoyage(ctx context.Context, voyageID int64) ([]*voyage.Waypoint, error) {
	var models []WaypointModel
	result := r.db.WithContext(ctx).
		Where("voyage_id = ?", voyageID).
		Order("order_index").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list waypoints: %w", result.Error)
	}

	waypoints := make([]*voyage.Waypoint, len(models))
	for i := range models {
		wp, err := r.modelToWaypoint(&models[i])
		if err != nil {
			return nil, err
		}
		waypoints[i] = wp
	}
	return waypoints, nil
}

// Update writes only the columns named in changes
func (r *GormWaypointRepository) Update(ctx context.Context, id int64, changes voyage.WaypointChanges) error {
	if len(changes) == 0 {
		return nil
	}

	columns, err := changesToColumns(changes)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WaypointModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update waypoint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("waypoint", id)
	}
	return nil
}

// changesToColumns converts a change set to a GORM column map.
// Field names are the column names.
func changesToColumns(changes voyage.WaypointChanges) (map[string]interface{}, error) {
	columns := make(map[string]interface{}, len(changes))

	for field, value := range changes {
		switch v := value.(type) {
		case *float64:
			columns[string(field)] = toNullDecimal(v)
		case *int:
			columns[string(field)] = v
		case *time.Time:
			if v == nil {
				columns[string(field)] = nil
			} else {
				columns[string(field)] = v.UTC()
			}
		case voyage.FieldSet:
			columns[string(field)] = v.String()
		default:
			return nil, fmt.Errorf("unsupported value %T for waypoint field %s", value, field)
		}
	}

	return columns, nil
}

func (r *GormWaypointRepository) waypointToModel(wp *voyage.Waypoint) *WaypointModel {
	return &WaypointModel{
		ID:                 wp.ID,
		VoyageID:           wp.VoyageID,
		OrderIndex:         wp.OrderIndex,
		Name:               wp.Name,
		Latitude:           wp.Latitude,
		Longitude:          wp.Longitude,
		Distance:           toNullDecimal(wp.Distance),
		EngineRPM:          wp.EngineRPM,
		PlannedSpeed:       toNullDecimal(wp.PlannedSpeed),
		FuelConsumption:    toNullDecimal(wp.FuelConsumption),
		EstimatedArrival:   utcPtr(wp.EstimatedArrival),
		EstimatedDeparture: utcPtr(wp.EstimatedDeparture),
		DerivedFields:      wp.Derived.String(),
	}
}

func (r *GormWaypointRepository) modelToWaypoint(model *WaypointModel) (*voyage.Waypoint, error) {
	derived, err := voyage.ParseFieldSet(model.DerivedFields)
	if err != nil {
		return nil, fmt.Errorf("invalid derived fields for waypoint %d: %w", model.ID, err)
	}

	return &voyage.Waypoint{
		ID:                 model.ID,
		VoyageID:           model.VoyageID,
		OrderIndex:         model.OrderIndex,
		Name:               model.Name,
		Latitude:           model.Latitude,
		Longitude:          model.Longitude,
		Distance:           fromNullDecimal(model.Distance),
		EngineRPM:          model.EngineRPM,
		PlannedSpeed:       fromNullDecimal(model.PlannedSpeed),
		FuelConsumption:    fromNullDecimal(model.FuelConsumption),
		EstimatedArrival:   utcPtr(model.EstimatedArrival),
		EstimatedDeparture: utcPtr(model.EstimatedDeparture),
		Derived:            derived,
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
