package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// GetVoyagePlanQuery reads the stored plan of a voyage without recomputing it
type GetVoyagePlanQuery struct {
	VoyageID int64
}

// GetVoyagePlanResponse is the voyage, its waypoints in route order and the
// most recent schedule run (nil if it was never scheduled)
type GetVoyagePlanResponse struct {
	Voyage    *voyage.Voyage
	Waypoints []*voyage.Waypoint
	LatestRun *voyage.ScheduleRun
}

// GetVoyagePlanHandler handles the GetVoyagePlan query
type GetVoyagePlanHandler struct {
	voyageRepo   voyage.VoyageRepository
	waypointRepo voyage.WaypointRepository
	runRepo      voyage.ScheduleRunRepository
}

// NewGetVoyagePlanHandler creates a new GetVoyagePlanHandler
func NewGetVoyagePlanHandler(
	voyageRepo voyage.VoyageRepository,
	waypointRepo voyage.WaypointRepository,
	runRepo voyage.ScheduleRunRepository,
) *GetVoyagePlanHandler {
	return &GetVoyagePlanHandler{
		voyageRepo:   voyageRepo,
		waypointRepo: waypointRepo,
		runRepo:      runRepo,
	}
}

// Handle executes the GetVoyagePlan query
func (h *GetVoyagePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetVoyagePlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetVoyagePlanQuery")
	}

	v, err := h.voyageRepo.FindByID(ctx, query.VoyageID)
	if err != nil {
		return nil, err
	}

	waypoints, err := h.waypointRepo.ListByVoyage(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints: %w", err)
	}

	var latest *voyage.ScheduleRun
	if h.runRepo != nil {
		latest, err = h.runRepo.Latest(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule history: %w", err)
		}
	}

	return &GetVoyagePlanResponse{
		Voyage:    v,
		Waypoints: voyage.SortByOrder(waypoints),
		LatestRun: latest,
	}, nil
}
