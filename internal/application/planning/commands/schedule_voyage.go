package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// ScheduleVoyageCommand runs the full scheduling pass for one voyage
type ScheduleVoyageCommand struct {
	VoyageID int64 `validate:"gt=0"`

	// Force discards fields a previous run back-filled before recomputing
	Force bool
}

// ScheduleVoyageResponse carries the computed plan and the run record
type ScheduleVoyageResponse struct {
	Voyage           *voyage.Voyage
	Plan             *voyage.Plan
	Run              *voyage.ScheduleRun
	UpdatedWaypoints int
	TotalsPersisted  bool
	Approximate      bool
}

// ScheduleVoyageHandler handles the ScheduleVoyage command
type ScheduleVoyageHandler struct {
	voyageRepo      voyage.VoyageRepository
	calibrationRepo calibration.Repository
	scheduler       *voyage.Scheduler
	clock           shared.Clock
	writer          *planWriter
}

// NewScheduleVoyageHandler creates a new ScheduleVoyageHandler
func NewScheduleVoyageHandler(
	voyageRepo voyage.VoyageRepository,
	waypointRepo voyage.WaypointRepository,
	calibrationRepo calibration.Repository,
	runRepo voyage.ScheduleRunRepository,
	scheduler *voyage.Scheduler,
	clock shared.Clock,
) *ScheduleVoyageHandler {
	clock = shared.ClockOrReal(clock)
	if scheduler == nil {
		scheduler = voyage.NewScheduler(voyage.DefaultPolicy(), clock)
	}

	return &ScheduleVoyageHandler{
		voyageRepo:      voyageRepo,
		calibrationRepo: calibrationRepo,
		scheduler:       scheduler,
		clock:           clock,
		writer:          &planWriter{waypointRepo: waypointRepo, runRepo: runRepo},
	}
}

// Handle executes the ScheduleVoyage command
func (h *ScheduleVoyageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ScheduleVoyageCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ScheduleVoyageCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	// NotFound aborts before anything is read or written
	v, err := h.voyageRepo.FindByID(ctx, cmd.VoyageID)
	if err != nil {
		return nil, err
	}

	waypoints, err := h.writer.waypointRepo.ListByVoyage(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints: %w", err)
	}

	curves, err := calibration.LoadCurves(ctx, h.calibrationRepo, v.VesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to load calibration curves: %w", err)
	}

	mode := voyage.RunModeFull
	var plan *voyage.Plan
	if cmd.Force {
		mode = voyage.RunModeForce
		plan = h.scheduler.Recompute(v, waypoints, curves)
	} else {
		plan = h.scheduler.ScheduleVoyage(v, waypoints, curves)
	}

	updated, err := h.writer.writeWaypoints(ctx, plan)
	if err != nil {
		return nil, err
	}

	// Totals are best-effort; the plan is still returned
	totalsPersisted := true
	if err := h.voyageRepo.UpdateTotals(ctx, v.ID, v.Distance, v.FuelConsumption); err != nil {
		totalsPersisted = false
		logging.LoggerFromContext(ctx).Log("ERROR", "Failed to update voyage totals", map[string]interface{}{
			"voyage_id": v.ID,
			"error":     err.Error(),
		})
	}

	run := h.writer.recordRun(ctx, mode, plan, h.clock.Now())
	observe(ctx, mode, plan, run.ID)

	return &ScheduleVoyageResponse{
		Voyage:           v,
		Plan:             plan,
		Run:              run,
		UpdatedWaypoints: updated,
		TotalsPersisted:  totalsPersisted,
		Approximate:      plan.Approximate,
	}, nil
}
