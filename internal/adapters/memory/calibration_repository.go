package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
)

// CalibrationRepository implements calibration.Repository on a Store
type CalibrationRepository struct {
	store *Store
}

func NewCalibrationRepository(store *Store) *CalibrationRepository {
	return &CalibrationRepository{store: store}
}

func (r *CalibrationRepository) SpeedCurve(ctx context.Context, vesselID int64) (calibration.Curve, error) {
	return r.curve(vesselID, calibration.KindSpeed)
}

func (r *CalibrationRepository) FuelCurve(ctx context.Context, vesselID int64) (calibration.Curve, error) {
	return r.curve(vesselID, calibration.KindFuelRate)
}

func (r *CalibrationRepository) AddSample(ctx context.Context, sample *calibration.Sample) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	id, err := nextID(txn, tableSamples)
	if err != nil {
		return fmt.Errorf("failed to allocate sample id: %w", err)
	}

	record := *sample
	record.ID = id
	if err := txn.Insert(tableSamples, &record); err != nil {
		return fmt.Errorf("failed to create calibration sample: %w", err)
	}

	txn.Commit()
	sample.ID = id
	return nil
}

// curve returns samples in insertion (ID) order
func (r *CalibrationRepository) curve(vesselID int64, kind calibration.Kind) (calibration.Curve, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableSamples, indexVesselKind, vesselID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s curve: %w", kind, err)
	}

	curve := calibration.Curve{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		curve = append(curve, *raw.(*calibration.Sample))
	}

	sort.Slice(curve, func(i, j int) bool { return curve[i].ID < curve[j].ID })
	return curve, nil
}
