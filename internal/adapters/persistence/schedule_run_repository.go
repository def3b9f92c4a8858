package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// GormScheduleRunRepository implements ScheduleRunRepository using GORM
type GormScheduleRunRepository struct {
	db *gorm.DB
}

// NewGormScheduleRunRepository creates a new GORM schedule run repository
func NewGormScheduleRunRepository(db *gorm.DB) *GormScheduleRunRepository {
	return &GormScheduleRunRepository{db: db}
}

// Record persists a run
func (r *GormScheduleRunRepository) Record(ctx context.Context, run *voyage.ScheduleRun) error {
	model, err := r.runToModel(run)
	if err != nil {
		return fmt.Errorf("failed to convert schedule run to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record schedule run: %w", err)
	}
	return nil
}

// Latest returns the most recent run of a voyage, or nil
func (r *GormScheduleRunRepository) Latest(ctx context.Context, voyageID int64) (*voyage.ScheduleRun, error) {
	var model ScheduleRunModel
	result := r.db.WithContext(ctx).
		Where("voyage_id = ?", voyageID).
		Order("created_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest schedule run: %w", result.Error)
	}

	return r.modelToRun(&model)
}

func (r *GormScheduleRunRepository) runToModel(run *voyage.ScheduleRun) (*ScheduleRunModel, error) {
	warnings := run.Warnings
	if warnings == nil {
		warnings = []voyage.Warning{}
	}
	raw, err := json.Marshal(warnings)
	if err != nil {
		return nil, err
	}

	return &ScheduleRunModel{
		ID:                   run.ID,
		VoyageID:             run.VoyageID,
		Mode:                 string(run.Mode),
		StartTime:            run.StartTime.UTC(),
		TotalDistance:        toDecimal(run.TotalDistance),
		TotalFuelConsumption: toDecimal(run.TotalFuelConsumption),
		TotalDurationHours:   toDecimal(run.TotalDurationHours),
		LegCount:             run.LegCount,
		ChangedWaypoints:     run.ChangedWaypoints,
		Approximate:          run.Approximate,
		Warnings:             datatypes.JSON(raw),
		CreatedAt:            run.CreatedAt.UTC(),
	}, nil
}

func (r *GormScheduleRunRepository) modelToRun(model *ScheduleRunModel) (*voyage.ScheduleRun, error) {
	var warnings []voyage.Warning
	if len(model.Warnings) > 0 {
		if err := json.Unmarshal(model.Warnings, &warnings); err != nil {
			return nil, fmt.Errorf("invalid warnings for schedule run %s: %w", model.ID, err)
		}
	}

	return &voyage.ScheduleRun{
		ID:                   model.ID,
		VoyageID:             model.VoyageID,
		Mode:                 voyage.RunMode(model.Mode),
		StartTime:            model.StartTime.UTC(),
		TotalDistance:        model.TotalDistance.InexactFloat64(),
		TotalFuelConsumption: model.TotalFuelConsumption.InexactFloat64(),
		TotalDurationHours:   model.TotalDurationHours.InexactFloat64(),
		LegCount:             model.LegCount,
		ChangedWaypoints:     model.ChangedWaypoints,
		Approximate:          model.Approximate,
		Warnings:             warnings,
		CreatedAt:            model.CreatedAt.UTC(),
	}, nil
}
