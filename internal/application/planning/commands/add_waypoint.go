package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// AddWaypointCommand appends a stop to a voyage. The optional fields are
// operator-set values the scheduler will never overwrite.
type AddWaypointCommand struct {
	VoyageID        int64    `validate:"gt=0"`
	OrderIndex      int      `validate:"gte=0"`
	Name            string   `validate:"max=200"`
	Latitude        float64  `validate:"gte=-90,lte=90"`
	Longitude       float64  `validate:"gte=-180,lte=180"`
	Distance        *float64 `validate:"omitempty,gte=0"`
	EngineRPM       *int     `validate:"omitempty,gte=0"`
	PlannedSpeed    *float64 `validate:"omitempty,gte=0"`
	FuelConsumption *float64 `validate:"omitempty,gte=0"`
}

// AddWaypointResponse returns the stored waypoint
type AddWaypointResponse struct {
	Waypoint *voyage.Waypoint
}

// AddWaypointHandler handles the AddWaypoint command
type AddWaypointHandler struct {
	voyageRepo   voyage.VoyageRepository
	waypointRepo voyage.WaypointRepository
}

// NewAddWaypointHandler creates a new AddWaypointHandler
func NewAddWaypointHandler(voyageRepo voyage.VoyageRepository, waypointRepo voyage.WaypointRepository) *AddWaypointHandler {
	return &AddWaypointHandler{
		voyageRepo:   voyageRepo,
		waypointRepo: waypointRepo,
	}
}

// Handle executes the AddWaypoint command
func (h *AddWaypointHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddWaypointCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddWaypointCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	if _, err := h.voyageRepo.FindByID(ctx, cmd.VoyageID); err != nil {
		return nil, err
	}

	wp, err := voyage.NewWaypoint(cmd.VoyageID, cmd.OrderIndex, cmd.Name, cmd.Latitude, cmd.Longitude)
	if err != nil {
		return nil, err
	}
	wp.Distance = cmd.Distance
	wp.EngineRPM = cmd.EngineRPM
	wp.PlannedSpeed = cmd.PlannedSpeed
	wp.FuelConsumption = cmd.FuelConsumption

	if err := h.waypointRepo.Create(ctx, wp); err != nil {
		return nil, fmt.Errorf("failed to persist waypoint: %w", err)
	}

	return &AddWaypointResponse{Waypoint: wp}, nil
}
