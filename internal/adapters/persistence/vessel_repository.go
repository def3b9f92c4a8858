package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// GormVesselRepository implements VesselRepository using GORM
type GormVesselRepository struct {
	db *gorm.DB
}

// NewGormVesselRepository creates a new GORM vessel repository
func NewGormVesselRepository(db *gorm.DB) *GormVesselRepository {
	return &GormVesselRepository{db: db}
}

// Create persists a vessel and assigns its ID
func (r *GormVesselRepository) Create(ctx context.Context, vessel *voyage.Vessel) error {
	model := &VesselModel{Name: vessel.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create vessel: %w", err)
	}
	vessel.ID = model.ID
	return nil
}

// FindByID retrieves a vessel by ID
func (r *GormVesselRepository) FindByID(ctx context.Context, id int64) (*voyage.Vessel, error) {
	var model VesselModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("vessel", id)
		}
		return nil, fmt.Errorf("failed to find vessel: %w", result.Error)
	}
	return &voyage.Vessel{ID: model.ID, Name: model.Name}, nil
}

// List returns all vessels ordered by ID
func (r *GormVesselRepository) List(ctx context.Context) ([]*voyage.Vessel, error) {
	var models []VesselModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}

	vessels := make([]*voyage.Vessel, len(models))
	for i, m := range models {
		vessels[i] = &voyage.Vessel{ID: m.ID, Name: m.Name}
	}
	return vessels, nil
}
