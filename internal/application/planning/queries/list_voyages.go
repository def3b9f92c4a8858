package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/application/mediator"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// ListVoyagesQuery lists voyages, optionally for a single vessel (VesselID > 0)
type ListVoyagesQuery struct {
	VesselID int64
}

type ListVoyagesResponse struct {
	Voyages []*voyage.Voyage
}

type ListVoyagesHandler struct {
	voyageRepo voyage.VoyageRepository
}

func NewListVoyagesHandler(voyageRepo voyage.VoyageRepository) *ListVoyagesHandler {
	return &ListVoyagesHandler{voyageRepo: voyageRepo}
}

func (h *ListVoyagesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListVoyagesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListVoyagesQuery")
	}

	voyages, err := h.voyageRepo.List(ctx, query.VesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}

	return &ListVoyagesResponse{Voyages: voyages}, nil
}

// ListVesselsQuery lists all vessels
type ListVesselsQuery struct{}

type ListVesselsResponse struct {
	Vessels []*voyage.Vessel
}

type ListVesselsHandler struct {
	vesselRepo voyage.VesselRepository
}

func NewListVesselsHandler(vesselRepo voyage.VesselRepository) *ListVesselsHandler {
	return &ListVesselsHandler{vesselRepo: vesselRepo}
}

func (h *ListVesselsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListVesselsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListVesselsQuery")
	}

	vessels, err := h.vesselRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}

	return &ListVesselsResponse{Vessels: vessels}, nil
}
