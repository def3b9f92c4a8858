package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
)

// GormCalibrationRepository implements calibration.Repository using GORM
type GormCalibrationRepository struct {
	db *gorm.DB
}

// NewGormCalibrationRepository creates a new GORM calibration repository
func NewGormCalibrationRepository(db *gorm.DB) *GormCalibrationRepository {
	return &GormCalibrationRepository{db: db}
}

// SpeedCurve returns the speed samples of a vessel in insertion order
func (r *GormCalibrationRepository) SpeedCurve(ctx context.Context, vesselID int64) (calibration.Curve, error) {
	return r.curve(ctx, vesselID, calibration.KindSpeed)
}

// FuelCurve returns the fuel-rate samples of a vessel in insertion order
func (r *GormCalibrationRepository) FuelCurve(ctx context.Context, vesselID int64) (calibration.Curve, error) {
	return r.curve(ctx, vesselID, calibration.KindFuelRate)
}

// AddSample persists a sample and assigns its ID
func (r *GormCalibrationRepository) AddSample(ctx context.Context, sample *calibration.Sample) error {
	model := &CalibrationSampleModel{
		VesselID:  sample.VesselID,
		Kind:      string(sample.Kind),
		EngineRPM: sample.EngineRPM,
		Value:     toDecimal(sample.Value),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create calibration sample: %w", err)
	}
	sample.ID = model.ID
	return nil
}

func (r *GormCalibrationRepository) curve(ctx context.Context, vesselID int64, kind calibration.Kind) (calibration.Curve, error) {
	var models []CalibrationSampleModel
	result := r.db.WithContext(ctx).
		Where("vessel_id = ? AND kind = ?", vesselID, string(kind)).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load %s curve: %w", kind, result.Error)
	}

	curve := make(calibration.Curve, len(models))
	for i, m := range models {
		curve[i] = calibration.Sample{
			ID:        m.ID,
			VesselID:  m.VesselID,
			Kind:      kind,
			EngineRPM: m.EngineRPM,
			Value:     m.Value.InexactFloat64(),
		}
	}
	return curve, nil
}
