package voyage

import (
	"fmt"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// WarningKind classifies a non-fatal observation made while scheduling
type WarningKind string

const (
	WarningMissingCalibration WarningKind = "missing_calibration"
	WarningDegenerateLeg      WarningKind = "degenerate_leg"
	WarningInvalidDistance    WarningKind = "invalid_distance"
)

// Warning is a lower-confidence observation attached to a plan.
// WaypointID is zero for voyage-wide warnings.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	WaypointID int64       `json:"waypoint_id,omitempty"`
	OrderIndex int         `json:"order_index"`
	Message    string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Leg is one computed transit, keyed by the waypoint it arrives at
type Leg struct {
	FromWaypointID int64
	ToWaypointID   int64
	ToOrderIndex   int
	LegResult
}

// Plan is the result of a scheduling pass.
//
// Waypoints holds enriched copies in order; the input slice is never
// mutated. Changes maps waypoint ID to the fields that differ from the
// input, which is exactly what the caller needs to persist.
type Plan struct {
	VoyageID             int64
	StartTime            time.Time
	TotalDistance        float64
	TotalFuelConsumption float64
	TotalDurationHours   float64
	Waypoints            []*Waypoint
	Legs                 []Leg
	Changes              map[int64]WaypointChanges
	Warnings             []Warning
	Approximate          bool
}

// ChangedWaypoints returns the number of waypoints with at least one change
func (p *Plan) ChangedWaypoints() int {
	n := 0
	for _, c := range p.Changes {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

// HasWarning reports whether the plan carries a warning of the given kind
func (p *Plan) HasWarning(kind WarningKind) bool {
	for _, w := range p.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// Scheduler walks a voyage's waypoints in order, propagating a running clock
// from departure through every leg with a fixed dwell at intermediate stops.
//
// The first waypoint only departs, the last only arrives, every other
// waypoint gets both. A voyage with a single waypoint computes no leg.
type Scheduler struct {
	policy     Policy
	calculator *LegCalculator
	clock      shared.Clock
}

// NewScheduler creates a scheduler. A nil clock means wall-clock time.
func NewScheduler(policy Policy, clock shared.Clock) *Scheduler {
	policy = policy.withDefaults()
	return &Scheduler{
		policy:     policy,
		calculator: NewLegCalculator(policy),
		clock:      shared.ClockOrReal(clock),
	}
}

// DefaultRPM returns the vessel-wide RPM used when a waypoint has none
func (s *Scheduler) DefaultRPM(curves calibration.Curves) int {
	return s.calculator.DefaultRPM(curves)
}

// ScheduleVoyage runs the full pass: legs are computed, missing fields are
// back-filled, timestamps are rewritten and v's totals are replaced.
func (s *Scheduler) ScheduleVoyage(v *Voyage, waypoints []*Waypoint, curves calibration.Curves) *Plan {
	plan := s.run(v, waypoints, curves, false)
	v.ApplyTotals(plan.TotalDistance, plan.TotalFuelConsumption)
	return plan
}

// Recompute is ScheduleVoyage after discarding every field a previous pass
// back-filled. Operator-set fields are kept.
func (s *Scheduler) Recompute(v *Voyage, waypoints []*Waypoint, curves calibration.Curves) *Plan {
	plan := s.run(v, waypoints, curves, true)
	v.ApplyTotals(plan.TotalDistance, plan.TotalFuelConsumption)
	return plan
}

// PropagateTimes is the narrow pass: legs are computed on scratch copies to
// obtain durations, but only EstimatedArrival and EstimatedDeparture change
// on the returned waypoints. Voyage totals are reported and left untouched.
func (s *Scheduler) PropagateTimes(v *Voyage, waypoints []*Waypoint, curves calibration.Curves) *Plan {
	ordered := SortByOrder(waypoints)
	full := s.run(v, ordered, curves, false)

	plan := *full
	plan.Waypoints = make([]*Waypoint, len(ordered))
	plan.Changes = make(map[int64]WaypointChanges, len(ordered))

	for i, original := range ordered {
		wp := original.Clone()
		wp.EstimatedArrival = clonePtr(full.Waypoints[i].EstimatedArrival)
		wp.EstimatedDeparture = clonePtr(full.Waypoints[i].EstimatedDeparture)
		plan.Waypoints[i] = wp

		if changes := DiffWaypoint(original, wp); len(changes) > 0 {
			plan.Changes[wp.ID] = changes
		}
	}

	return &plan
}

func (s *Scheduler) run(v *Voyage, waypoints []*Waypoint, curves calibration.Curves, force bool) *Plan {
	ordered := SortByOrder(waypoints)
	clock := truncateTime(v.DepartureTime(s.clock))

	plan := &Plan{
		VoyageID:  v.ID,
		StartTime: clock,
		Waypoints: make([]*Waypoint, len(ordered)),
		Changes:   make(map[int64]WaypointChanges, len(ordered)),
	}
	if len(ordered) == 0 {
		return plan
	}

	for i, original := range ordered {
		wp := original.Clone()
		if force {
			wp.ClearDerived()
		}
		plan.Waypoints[i] = wp
	}

	if len(ordered) > 1 && s.warnMissingCalibration(plan, curves) {
		plan.Approximate = true
	}
	defaultRPM := s.calculator.DefaultRPM(curves)

	last := len(plan.Waypoints) - 1
	for i, wp := range plan.Waypoints {
		if i == 0 {
			departure := clock
			wp.EstimatedArrival = nil
			wp.EstimatedDeparture = &departure
			continue
		}

		prev := plan.Waypoints[i-1]
		if wp.Distance != nil && !validNonNegative(*wp.Distance) {
			plan.Warnings = append(plan.Warnings, Warning{
				Kind:       WarningInvalidDistance,
				WaypointID: wp.ID,
				OrderIndex: wp.OrderIndex,
				Message:    fmt.Sprintf("recorded distance %v replaced by great-circle distance", *wp.Distance),
			})
		}

		leg := s.calculator.Compute(prev, wp, curves, defaultRPM)
		if leg.Degenerate {
			plan.Warnings = append(plan.Warnings, Warning{
				Kind:       WarningDegenerateLeg,
				WaypointID: wp.ID,
				OrderIndex: wp.OrderIndex,
				Message:    fmt.Sprintf("resolved speed %.2f kn is not positive, leg duration set to 0", leg.SpeedKnots),
			})
		}
		if leg.Approximate() {
			plan.Approximate = true
		}

		plan.Legs = append(plan.Legs, Leg{
			FromWaypointID: prev.ID,
			ToWaypointID:   wp.ID,
			ToOrderIndex:   wp.OrderIndex,
			LegResult:      leg,
		})
		plan.TotalDistance += leg.DistanceNM
		plan.TotalFuelConsumption += leg.FuelConsumed
		plan.TotalDurationHours += leg.DurationHours

		arrival := clock.Add(leg.Duration())
		if arrival.Before(clock) {
			arrival = clock
		}
		wp.EstimatedArrival = &arrival

		if i == last {
			wp.EstimatedDeparture = nil
			break
		}

		departure := arrival.Add(s.policy.DwellTime)
		wp.EstimatedDeparture = &departure
		clock = departure
	}

	for i, wp := range plan.Waypoints {
		if changes := DiffWaypoint(ordered[i], wp); len(changes) > 0 {
			plan.Changes[wp.ID] = changes
		}
	}

	return plan
}

func (s *Scheduler) warnMissingCalibration(plan *Plan, curves calibration.Curves) bool {
	before := len(plan.Warnings)
	if len(curves.Speed) == 0 {
		plan.Warnings = append(plan.Warnings, Warning{
			Kind:    WarningMissingCalibration,
			Message: fmt.Sprintf("vessel %d has no speed calibration, using estimates", curves.VesselID),
		})
	}
	if len(curves.FuelRate) == 0 {
		plan.Warnings = append(plan.Warnings, Warning{
			Kind:    WarningMissingCalibration,
			Message: fmt.Sprintf("vessel %d has no fuel calibration, using estimates", curves.VesselID),
		})
	}
	return len(plan.Warnings) > before
}
