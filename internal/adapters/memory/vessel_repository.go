package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// VesselRepository implements voyage.VesselRepository on a Store
type VesselRepository struct {
	store *Store
}

func NewVesselRepository(store *Store) *VesselRepository {
	return &VesselRepository{store: store}
}

func (r *VesselRepository) Create(ctx context.Context, vessel *voyage.Vessel) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	id, err := nextID(txn, tableVessels)
	if err != nil {
		return fmt.Errorf("failed to allocate vessel id: %w", err)
	}

	record := *vessel
	record.ID = id
	if err := txn.Insert(tableVessels, &record); err != nil {
		return fmt.Errorf("failed to create vessel: %w", err)
	}

	txn.Commit()
	vessel.ID = id
	return nil
}

func (r *VesselRepository) FindByID(ctx context.Context, id int64) (*voyage.Vessel, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableVessels, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find vessel: %w", err)
	}
	if raw == nil {
		return nil, shared.NewNotFoundError("vessel", id)
	}

	vessel := *raw.(*voyage.Vessel)
	return &vessel, nil
}

func (r *VesselRepository) List(ctx context.Context) ([]*voyage.Vessel, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableVessels, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}

	var vessels []*voyage.Vessel
	for raw := it.Next(); raw != nil; raw = it.Next() {
		vessel := *raw.(*voyage.Vessel)
		vessels = append(vessels, &vessel)
	}

	sort.Slice(vessels, func(i, j int) bool { return vessels[i].ID < vessels[j].ID })
	return vessels, nil
}
