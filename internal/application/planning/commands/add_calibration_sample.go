package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/calibration"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// AddCalibrationSampleCommand records one point on a vessel's speed or fuel curve
type AddCalibrationSampleCommand struct {
	VesselID  int64   `validate:"gt=0"`
	Kind      string  `validate:"oneof=speed fuel_rate"`
	EngineRPM int     `validate:"gte=0"`
	Value     float64 `validate:"gte=0"`
}

// AddCalibrationSampleResponse returns the stored sample
type AddCalibrationSampleResponse struct {
	Sample *calibration.Sample
}

// AddCalibrationSampleHandler handles the AddCalibrationSample command
type AddCalibrationSampleHandler struct {
	vesselRepo      voyage.VesselRepository
	calibrationRepo calibration.Repository
}

// NewAddCalibrationSampleHandler creates a new AddCalibrationSampleHandler
func NewAddCalibrationSampleHandler(vesselRepo voyage.VesselRepository, calibrationRepo calibration.Repository) *AddCalibrationSampleHandler {
	return &AddCalibrationSampleHandler{
		vesselRepo:      vesselRepo,
		calibrationRepo: calibrationRepo,
	}
}

// Handle executes the AddCalibrationSample command
func (h *AddCalibrationSampleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddCalibrationSampleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddCalibrationSampleCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	kind, err := calibration.ParseKind(cmd.Kind)
	if err != nil {
		return nil, err
	}

	if _, err := h.vesselRepo.FindByID(ctx, cmd.VesselID); err != nil {
		return nil, err
	}

	sample, err := calibration.NewSample(cmd.VesselID, kind, cmd.EngineRPM, cmd.Value)
	if err != nil {
		return nil, err
	}

	if err := h.calibrationRepo.AddSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to persist calibration sample: %w", err)
	}

	return &AddCalibrationSampleResponse{Sample: sample}, nil
}
