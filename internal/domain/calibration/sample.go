package calibration

import (
	"fmt"
	"math"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// Kind identifies which performance curve a sample belongs to
type Kind string

const (
	// KindSpeed samples map engine RPM to cruising speed in knots
	KindSpeed Kind = "speed"

	// KindFuelRate samples map engine RPM to fuel burned per hour
	KindFuelRate Kind = "fuel_rate"
)

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSpeed, KindFuelRate:
		return Kind(s), nil
	default:
		return "", shared.NewValidationError("kind", fmt.Sprintf("unknown calibration kind %q (want speed or fuel_rate)", s))
	}
}

func (k Kind) String() string {
	return string(k)
}

// Sample is one point on a vessel's calibration curve
type Sample struct {
	ID        int64
	VesselID  int64
	Kind      Kind
	EngineRPM int
	Value     float64
}

// NewSample creates a calibration sample with validation
func NewSample(vesselID int64, kind Kind, engineRPM int, value float64) (*Sample, error) {
	if vesselID <= 0 {
		return nil, shared.NewValidationError("vessel_id", "must be positive")
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if engineRPM < 0 {
		return nil, shared.NewValidationError("engine_rpm", "must be >= 0")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, shared.NewValidationError("value", "must be a finite number")
	}

	return &Sample{
		VesselID:  vesselID,
		Kind:      kind,
		EngineRPM: engineRPM,
		Value:     value,
	}, nil
}

func (s Sample) String() string {
	return fmt.Sprintf("%s@%drpm=%.2f", s.Kind, s.EngineRPM, s.Value)
}
