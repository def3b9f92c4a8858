package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// GormVoyageRepository implements VoyageRepository using GORM
type GormVoyageRepository struct {
	db *gorm.DB
}

// NewGormVoyageRepository creates a new GORM voyage repository
func NewGormVoyageRepository(db *gorm.DB) *GormVoyageRepository {
	return &GormVoyageRepository{db: db}
}

// Create persists a voyage and assigns its ID
func (r *GormVoyageRepository) Create(ctx context.Context, v *voyage.Voyage) error {
	model := r.voyageToModel(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create voyage: %w", err)
	}
	v.ID = model.ID
	return nil
}

// FindByID retrieves a voyage by ID
func (r *GormVoyageRepository) FindByID(ctx context.Context, id int64) (*voyage.Voyage, error) {
	var model VoyageModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, voyage.NewVoyageNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find voyage: %w", result.Error)
	}
	return r.modelToVoyage(&model), nil
}

// List returns voyages ordered by ID; vesselID <= 0 lists every vessel
func (r *GormVoyageRepository) List(ctx context.Context, vesselID int64) ([]*voyage.Voyage, error) {
	query := r.db.WithContext(ctx).Order("id")
	if vesselID > 0 {
		query = query.Where("vessel_id = ?", vesselID)
	}

	var models []VoyageModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}

	voyages := make([]*voyage.Voyage, len(models))
	for i := range models {
		voyages[i] = r.modelToVoyage(&models[i])
	}
	return voyages, nil
}

// UpdateTotals writes the distance and fuel totals only
func (r *GormVoyageRepository) UpdateTotals(ctx context.Context, id int64, distance, fuelConsumption float64) error {
	result := r.db.WithContext(ctx).
		Model(&VoyageModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"distance":         toDecimal(distance),
			"fuel_consumption": toDecimal(fuelConsumption),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update voyage totals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return voyage.NewVoyageNotFoundError(id)
	}
	return nil
}

func (r *GormVoyageRepository) voyageToModel(v *voyage.Voyage) *VoyageModel {
	return &VoyageModel{
		ID:              v.ID,
		VesselID:        v.VesselID,
		Name:            v.Name,
		StartDate:       v.StartDate,
		Distance:        toDecimal(v.Distance),
		FuelConsumption: toDecimal(v.FuelConsumption),
	}
}

func (r *GormVoyageRepository) modelToVoyage(model *VoyageModel) *voyage.Voyage {
	v := &voyage.Voyage{
		ID:              model.ID,
		VesselID:        model.VesselID,
		Name:            model.Name,
		Distance:        model.Distance.InexactFloat64(),
		FuelConsumption: model.FuelConsumption.InexactFloat64(),
	}
	if model.StartDate != nil {
		start := model.StartDate.UTC()
		v.StartDate = &start
	}
	return v
}
