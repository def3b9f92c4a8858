package voyage

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
)

// Vessel is the identity that calibration curves and voyages are keyed by
type Vessel struct {
	ID   int64
	Name string
}

// NewVessel creates a vessel with validation
func NewVessel(name string) (*Vessel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	return &Vessel{Name: name}, nil
}

func (v *Vessel) String() string {
	return fmt.Sprintf("Vessel(%d, %s)", v.ID, v.Name)
}
