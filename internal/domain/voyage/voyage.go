package voyage

import (
	"fmt"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// Voyage is a planned passage of one vessel through an ordered set of waypoints.
//
// Distance and FuelConsumption are running totals owned by the scheduler:
// every full scheduling pass overwrites them with the sum over all legs.
type Voyage struct {
	ID              int64
	VesselID        int64
	Name            string
	StartDate       *time.Time
	Distance        float64
	FuelConsumption float64
}

// NewVoyage creates a voyage with validation. startDate may be nil, in which
// case departure is taken from the clock at scheduling time.
func NewVoyage(vesselID int64, name string, startDate *time.Time) (*Voyage, error) {
	if vesselID <= 0 {
		return nil, shared.NewValidationError("vessel_id", "must be positive")
	}

	v := &Voyage{
		VesselID: vesselID,
		Name:     name,
	}
	if startDate != nil {
		start := startDate.UTC()
		v.StartDate = &start
	}
	return v, nil
}

// DepartureTime returns the start date, or clock.Now() when none is set
func (v *Voyage) DepartureTime(clock shared.Clock) time.Time {
	if v.StartDate != nil {
		return *v.StartDate
	}
	return shared.ClockOrReal(clock).Now()
}

// ApplyTotals replaces the voyage totals with the result of a scheduling pass
func (v *Voyage) ApplyTotals(distance, fuelConsumption float64) {
	v.Distance = distance
	v.FuelConsumption = fuelConsumption
}

func (v *Voyage) String() string {
	return fmt.Sprintf("Voyage(%d, vessel=%d, %.1fnm, %.1f fuel)", v.ID, v.VesselID, v.Distance, v.FuelConsumption)
}
