package voyage

import (
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// VoyageNotFoundError is returned when a voyage id does not resolve.
// Scheduling aborts without touching any waypoint.
type VoyageNotFoundError struct {
	*shared.NotFoundError
}

func NewVoyageNotFoundError(id int64) *VoyageNotFoundError {
	return &VoyageNotFoundError{NotFoundError: shared.NewNotFoundError("voyage", id)}
}

// Unwrap exposes the generic not-found error to errors.As
func (e *VoyageNotFoundError) Unwrap() error {
	return e.NotFoundError
}

// DuplicateOrderIndexError is returned when a waypoint reuses an order index
// already taken within its voyage
type DuplicateOrderIndexError struct {
	VoyageID   int64
	OrderIndex int
}

func (e *DuplicateOrderIndexError) Error() string {
	return fmt.Sprintf("voyage %d already has a waypoint at order index %d", e.VoyageID, e.OrderIndex)
}
