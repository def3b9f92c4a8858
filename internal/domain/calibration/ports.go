package calibration

import "context"

// Repository defines persistence operations for calibration samples
type Repository interface {
	// SpeedCurve returns every speed sample recorded for a vessel (possibly empty)
	SpeedCurve(ctx context.Context, vesselID int64) (Curve, error)

	// FuelCurve returns every fuel-rate sample recorded for a vessel (possibly empty)
	FuelCurve(ctx context.Context, vesselID int64) (Curve, error)

	// AddSample persists a new sample and assigns its ID
	AddSample(ctx context.Context, sample *Sample) error
}

// LoadCurves reads both curves of a vessel through repo
func LoadCurves(ctx context.Context, repo Repository, vesselID int64) (Curves, error) {
	speed, err := repo.SpeedCurve(ctx, vesselID)
	if err != nil {
		return Curves{}, err
	}
	fuel, err := repo.FuelCurve(ctx, vesselID)
	if err != nil {
		return Curves{}, err
	}
	return Curves{VesselID: vesselID, Speed: speed, FuelRate: fuel}, nil
}
