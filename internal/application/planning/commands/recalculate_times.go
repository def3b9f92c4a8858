package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// RecalculateTimesCommand refreshes only the estimated arrival and departure
// timestamps of a voyage. Distances, fuel and voyage totals are left alone.
type RecalculateTimesCommand struct {
	VoyageID int64 `validate:"gt=0"`
}

// RecalculateTimesResponse carries the timestamp-only plan
type RecalculateTimesResponse struct {
	Voyage           *voyage.Voyage
	Plan             *voyage.Plan
	Run              *voyage.ScheduleRun
	UpdatedWaypoints int
}

// RecalculateTimesHandler handles the RecalculateTimes command
type RecalculateTimesHandler struct {
	voyageRepo      voyage.VoyageRepository
	calibrationRepo calibration.Repository
	scheduler       *voyage.Scheduler
	clock           shared.Clock
	writer          *planWriter
}

// NewRecalculateTimesHandler creates a new RecalculateTimesHandler
func NewRecalculateTimesHandler(
	voyageRepo voyage.VoyageRepository,
	waypointRepo voyage.WaypointRepository,
	calibrationRepo calibration.Repository,
	runRepo voyage.ScheduleRunRepository,
	scheduler *voyage.Scheduler,
	clock shared.Clock,
) *RecalculateTimesHandler {
	clock = shared.ClockOrReal(clock)
	if scheduler == nil {
		scheduler = voyage.NewScheduler(voyage.DefaultPolicy(), clock)
	}

	return &RecalculateTimesHandler{
		voyageRepo:      voyageRepo,
		calibrationRepo: calibrationRepo,
		scheduler:       scheduler,
		clock:           clock,
		writer:          &planWriter{waypointRepo: waypointRepo, runRepo: runRepo},
	}
}

// Handle executes the RecalculateTimes command
func (h *RecalculateTimesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecalculateTimesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecalculateTimesCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

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

	plan := h.scheduler.PropagateTimes(v, waypoints, curves)

	updated, err := h.writer.writeWaypoints(ctx, plan)
	if err != nil {
		return nil, err
	}

	run := h.writer.recordRun(ctx, voyage.RunModeTimes, plan, h.clock.Now())
	observe(ctx, voyage.RunModeTimes, plan, run.ID)

	return &RecalculateTimesResponse{
		Voyage:           v,
		Plan:             plan,
		Run:              run,
		UpdatedWaypoints: updated,
	}, nil
}
