package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/voyageplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/voyageplanner-go/internal/application/logging"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// planWriter persists the outcome of a scheduling pass. It is shared by the
// full and the timestamp-only commands.
type planWriter struct {
	waypointRepo voyage.WaypointRepository
	runRepo      voyage.ScheduleRunRepository
}

// writeWaypoints applies the plan's change sets in route order
func (w *planWriter) writeWaypoints(ctx context.Context, plan *voyage.Plan) (int, error) {
	updated := 0
	for _, wp := range plan.Waypoints {
		changes, ok := plan.Changes[wp.ID]
		if !ok || len(changes) == 0 {
			continue
		}
		if err := w.waypointRepo.Update(ctx, wp.ID, changes); err != nil {
			return updated, fmt.Errorf("failed to update waypoint %d: %w", wp.ID, err)
		}
		updated++
	}
	return updated, nil
}

// recordRun stores the run history entry. Failures are logged and the run
// is still returned so the caller can report its id.
func (w *planWriter) recordRun(ctx context.Context, mode voyage.RunMode, plan *voyage.Plan, now time.Time) *voyage.ScheduleRun {
	run := voyage.NewScheduleRun(uuid.NewString(), mode, plan, now)

	if w.runRepo == nil {
		return run
	}
	if err := w.runRepo.Record(ctx, run); err != nil {
		logging.LoggerFromContext(ctx).Log("ERROR", "Failed to record schedule run", map[string]interface{}{
			"voyage_id": plan.VoyageID,
			"run_id":    run.ID,
			"error":     err.Error(),
		})
	}
	return run
}

// observe logs the plan's warnings and records planning metrics
func observe(ctx context.Context, mode voyage.RunMode, plan *voyage.Plan, runID string) {
	logger := logging.LoggerFromContext(ctx)

	for _, warning := range plan.Warnings {
		logger.Log("WARN", warning.Message, map[string]interface{}{
			"voyage_id":   plan.VoyageID,
			"run_id":      runID,
			"kind":        string(warning.Kind),
			"waypoint_id": warning.WaypointID,
		})
	}

	logger.Log("INFO", "Voyage scheduled", map[string]interface{}{
		"voyage_id":      plan.VoyageID,
		"run_id":         runID,
		"mode":           string(mode),
		"legs":           len(plan.Legs),
		"distance_nm":    plan.TotalDistance,
		"fuel":           plan.TotalFuelConsumption,
		"duration_hours": plan.TotalDurationHours,
		"changed":        plan.ChangedWaypoints(),
		"approximate":    plan.Approximate,
	})

	metrics.RecordSchedulePlan(string(mode), plan)
}
