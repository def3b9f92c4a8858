package voyage

import (
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// Waypoint is one stop on a voyage.
//
// Optional fields are pointers; nil means "not set". The scheduler only ever
// fills nil fields (back-fill) and rewrites the two estimated timestamps.
// Derived records which fields were filled by the scheduler rather than set
// by an operator.
type Waypoint struct {
	ID         int64
	VoyageID   int64
	OrderIndex int
	Name       string
	Latitude   float64
	Longitude  float64

	Distance        *float64 // nautical miles from the previous waypoint
	EngineRPM       *int
	PlannedSpeed    *float64 // knots
	FuelConsumption *float64 // fuel burned on the leg into this waypoint

	EstimatedArrival   *time.Time
	EstimatedDeparture *time.Time

	Derived FieldSet
}

// NewWaypoint creates a waypoint with validated coordinates
func NewWaypoint(voyageID int64, orderIndex int, name string, lat, lon float64) (*Waypoint, error) {
	if voyageID <= 0 {
		return nil, shared.NewValidationError("voyage_id", "must be positive")
	}
	pos, err := shared.NewPosition(lat, lon)
	if err != nil {
		return nil, err
	}

	return &Waypoint{
		VoyageID:   voyageID,
		OrderIndex: orderIndex,
		Name:       name,
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
	}, nil
}

// Position returns the waypoint coordinates
func (w *Waypoint) Position() shared.Position {
	return shared.Position{Latitude: w.Latitude, Longitude: w.Longitude}
}

// Clone returns a deep copy; pointer fields do not alias the original
func (w *Waypoint) Clone() *Waypoint {
	c := *w
	c.Distance = clonePtr(w.Distance)
	c.EngineRPM = clonePtr(w.EngineRPM)
	c.PlannedSpeed = clonePtr(w.PlannedSpeed)
	c.FuelConsumption = clonePtr(w.FuelConsumption)
	c.EstimatedArrival = clonePtr(w.EstimatedArrival)
	c.EstimatedDeparture = clonePtr(w.EstimatedDeparture)
	return &c
}

// ClearDerived resets every field the scheduler previously back-filled so the
// next pass recomputes it. Operator-set fields are left alone.
func (w *Waypoint) ClearDerived() {
	if w.Derived.Has(FieldDistance) {
		w.Distance = nil
	}
	if w.Derived.Has(FieldEngineRPM) {
		w.EngineRPM = nil
	}
	if w.Derived.Has(FieldPlannedSpeed) {
		w.PlannedSpeed = nil
	}
	if w.Derived.Has(FieldFuelConsumption) {
		w.FuelConsumption = nil
	}
	w.Derived = 0
}

func (w *Waypoint) String() string {
	label := w.Name
	if label == "" {
		label = fmt.Sprintf("#%d", w.OrderIndex)
	}
	return fmt.Sprintf("Waypoint(%s %s)", label, w.Position())
}

// SortByOrder returns a copy of waypoints ordered by OrderIndex.
// Equal indexes keep their input order.
func SortByOrder(waypoints []*Waypoint) []*Waypoint {
	ordered := make([]*Waypoint, len(waypoints))
	copy(ordered, waypoints)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})
	return ordered
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
