package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// CreateVoyageCommand plans a new voyage for an existing vessel.
// A nil StartDate means departure is taken from the clock when scheduling.
type CreateVoyageCommand struct {
	VesselID  int64  `validate:"gt=0"`
	Name      string `validate:"max=200"`
	StartDate *time.Time
}

// CreateVoyageResponse returns the stored voyage
type CreateVoyageResponse struct {
	Voyage *voyage.Voyage
}

// CreateVoyageHandler handles the CreateVoyage command
type CreateVoyageHandler struct {
	vesselRepo voyage.VesselRepository
	voyageRepo voyage.VoyageRepository
}

// NewCreateVoyageHandler creates a new CreateVoyageHandler
func NewCreateVoyageHandler(vesselRepo voyage.VesselRepository, voyageRepo voyage.VoyageRepository) *CreateVoyageHandler {
	return &CreateVoyageHandler{
		vesselRepo: vesselRepo,
		voyageRepo: voyageRepo,
	}
}

// Handle executes the CreateVoyage command
func (h *CreateVoyageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateVoyageCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateVoyageCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	if _, err := h.vesselRepo.FindByID(ctx, cmd.VesselID); err != nil {
		return nil, err
	}

	v, err := voyage.NewVoyage(cmd.VesselID, cmd.Name, cmd.StartDate)
	if err != nil {
		return nil, err
	}

	if err := h.voyageRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to persist voyage: %w", err)
	}

	return &CreateVoyageResponse{Voyage: v}, nil
}
