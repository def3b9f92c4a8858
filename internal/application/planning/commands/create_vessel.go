package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// CreateVesselCommand registers a vessel
type CreateVesselCommand struct {
	Name string `validate:"required,max=120"`
}

// CreateVesselResponse returns the stored vessel
type CreateVesselResponse struct {
	Vessel *voyage.Vessel
}

// CreateVesselHandler handles the CreateVessel command
type CreateVesselHandler struct {
	vesselRepo voyage.VesselRepository
}

// NewCreateVesselHandler creates a new CreateVesselHandler
func NewCreateVesselHandler(vesselRepo voyage.VesselRepository) *CreateVesselHandler {
	return &CreateVesselHandler{vesselRepo: vesselRepo}
}

// Handle executes the CreateVessel command
func (h *CreateVesselHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateVesselCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateVesselCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	vessel, err := voyage.NewVessel(cmd.Name)
	if err != nil {
		return nil, err
	}

	if err := h.vesselRepo.Create(ctx, vessel); err != nil {
		return nil, fmt.Errorf("failed to persist vessel: %w", err)
	}

	return &CreateVesselResponse{Vessel: vessel}, nil
}
