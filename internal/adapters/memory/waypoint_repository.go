package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/shared"
	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// WaypointRepository implements voyage.WaypointRepository on a Store
type WaypointRepository struct {
	store *Store
}

func NewWaypointRepository(store *Store) *WaypointRepository {
	return &WaypointRepository{store: store}
}

func (r *WaypointRepository) Create(ctx context.Context, wp *voyage.Waypoint) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	taken, err := txn.First(tableWaypoints, indexVoyageOrder, wp.VoyageID, wp.OrderIndex)
	if err != nil {
		return fmt.Errorf("failed to check order index: %w", err)
	}
	if taken != nil {
		return &voyage.DuplicateOrderIndexError{VoyageID: wp.VoyageID, OrderIndex: wp.OrderIndex}
	}

	id, err := nextID(txn, tableWaypoints)
	if err != nil {
		return fmt.Errorf("failed to allocate waypoint id: %w", err)
	}

	record := wp.Clone()
	record.ID = id
	if err := txn.Insert(tableWaypoints, record); err != nil {
		return fmt.Errorf("failed to create waypoint: %w", err)
	}

	txn.Commit()
	wp.ID = id
	return nil
}

func (r *WaypointRepository) ListByVoyage(ctx context.Context, voyageID int64) ([]*voyage.Waypoint, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableWaypoints, indexVoyageID, voyageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waypoints: %w", err)
	}

	var waypoints []*voyage.Waypoint
	for raw := it.Next(); raw != nil; raw = it.Next() {
		waypoints = append(waypoints, raw.(*voyage.Waypoint).Clone())
	}

	sort.Slice(waypoints, func(i, j int) bool { return waypoints[i].OrderIndex < waypoints[j].OrderIndex })
	return waypoints, nil
}

func (r *WaypointRepository) Update(ctx context.Context, id int64, changes voyage.WaypointChanges) error {
	if len(changes) == 0 {
		return nil
	}

	txn := r.store.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableWaypoints, indexID, id)
	if err != nil {
		return fmt.Errorf("failed to find waypoint: %w", err)
	}
	if raw == nil {
		return shared.NewNotFoundError("waypoint", id)
	}

	record := raw.(*voyage.Waypoint).Clone()
	if err := changes.Apply(record); err != nil {
		return err
	}
	if err := txn.Insert(tableWaypoints, record); err != nil {
		return fmt.Errorf("failed to update waypoint: %w", err)
	}

	txn.Commit()
	return nil
}
