package voyage

import (
	"context"
	"time"
)

// VesselRepository defines persistence operations for vessels
type VesselRepository interface {
	Create(ctx context.Context, vessel *Vessel) error
	FindByID(ctx context.Context, id int64) (*Vessel, error)
	List(ctx context.Context) ([]*Vessel, error)
}

// VoyageRepository defines persistence operations for voyages
type VoyageRepository interface {
	Create(ctx context.Context, voyage *Voyage) error

	// FindByID returns a *VoyageNotFoundError when no voyage has the id
	FindByID(ctx context.Context, id int64) (*Voyage, error)

	List(ctx context.Context, vesselID int64) ([]*Voyage, error)

	// UpdateTotals writes only the distance and fuel consumption columns
	UpdateTotals(ctx context.Context, id int64, distance, fuelConsumption float64) error
}

// WaypointRepository defines persistence operations for waypoints
type WaypointRepository interface {
	// Create returns a *DuplicateOrderIndexError if the order index is taken
	Create(ctx context.Context, waypoint *Waypoint) error

	// ListByVoyage returns all waypoints of a voyage in no particular order
	ListByVoyage(ctx context.Context, voyageID int64) ([]*Waypoint, error)

	// Update applies a partial change set to one waypoint
	Update(ctx context.Context, id int64, changes WaypointChanges) error
}

// ScheduleRunRepository records the history of scheduling passes
type ScheduleRunRepository interface {
	Record(ctx context.Context, run *ScheduleRun) error

	// Latest returns nil without error when the voyage was never scheduled
	Latest(ctx context.Context, voyageID int64) (*ScheduleRun, error)
}

// RunMode distinguishes the full pass from the timestamp-only pass
type RunMode string

const (
	RunModeFull  RunMode = "full"
	RunModeForce RunMode = "force"
	RunModeTimes RunMode = "times"
)

// ScheduleRun is the audit record of one scheduling pass
type ScheduleRun struct {
	ID                   string
	VoyageID             int64
	Mode                 RunMode
	StartTime            time.Time
	TotalDistance        float64
	TotalFuelConsumption float64
	TotalDurationHours   float64
	LegCount             int
	ChangedWaypoints     int
	Approximate          bool
	Warnings             []Warning
	CreatedAt            time.Time
}

// NewScheduleRun summarizes plan as a run record
func NewScheduleRun(id string, mode RunMode, plan *Plan, createdAt time.Time) *ScheduleRun {
	return &ScheduleRun{
		ID:                   id,
		VoyageID:             plan.VoyageID,
		Mode:                 mode,
		StartTime:            plan.StartTime,
		TotalDistance:        plan.TotalDistance,
		TotalFuelConsumption: plan.TotalFuelConsumption,
		TotalDurationHours:   plan.TotalDurationHours,
		LegCount:             len(plan.Legs),
		ChangedWaypoints:     plan.ChangedWaypoints(),
		Approximate:          plan.Approximate,
		Warnings:             append([]Warning(nil), plan.Warnings...),
		CreatedAt:            createdAt,
	}
}
