package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// VoyageRepository implements voyage.VoyageRepository on a Store
type VoyageRepository struct {
	store *Store
}

func NewVoyageRepository(store *Store) *VoyageRepository {
	return &VoyageRepository{store: store}
}

func (r *VoyageRepository) Create(ctx context.Context, v *voyage.Voyage) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	id, err := nextID(txn, tableVoyages)
	if err != nil {
		return fmt.Errorf("failed to allocate voyage id: %w", err)
	}

	record := copyVoyage(v)
	record.ID = id
	if err := txn.Insert(tableVoyages, record); err != nil {
		return fmt.Errorf("failed to create voyage: %w", err)
	}

	txn.Commit()
	v.ID = id
	return nil
}

func (r *VoyageRepository) FindByID(ctx context.Context, id int64) (*voyage.Voyage, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableVoyages, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find voyage: %w", err)
	}
	if raw == nil {
		return nil, voyage.NewVoyageNotFoundError(id)
	}
	return copyVoyage(raw.(*voyage.Voyage)), nil
}

func (r *VoyageRepository) List(ctx context.Context, vesselID int64) ([]*voyage.Voyage, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	var (
		it  memdb.ResultIterator
		err error
	)
	if vesselID > 0 {
		it, err = txn.Get(tableVoyages, indexVesselID, vesselID)
	} else {
		it, err = txn.Get(tableVoyages, indexID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}

	var voyages []*voyage.Voyage
	for raw := it.Next(); raw != nil; raw = it.Next() {
		voyages = append(voyages, copyVoyage(raw.(*voyage.Voyage)))
	}

	sort.Slice(voyages, func(i, j int) bool { return voyages[i].ID < voyages[j].ID })
	return voyages, nil
}

func (r *VoyageRepository) UpdateTotals(ctx context.Context, id int64, distance, fuelConsumption float64) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableVoyages, indexID, id)
	if err != nil {
		return fmt.Errorf("failed to find voyage: %w", err)
	}
	if raw == nil {
		return voyage.NewVoyageNotFoundError(id)
	}

	record := copyVoyage(raw.(*voyage.Voyage))
	record.ApplyTotals(distance, fuelConsumption)
	if err := txn.Insert(tableVoyages, record); err != nil {
		return fmt.Errorf("failed to update voyage totals: %w", err)
	}

	txn.Commit()
	return nil
}

func copyVoyage(v *voyage.Voyage) *voyage.Voyage {
	c := *v
	if v.StartDate != nil {
		start := *v.StartDate
		c.StartDate = &start
	}
	return &c
}
