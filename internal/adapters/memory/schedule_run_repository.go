package memory

import (
	"context"
	"fmt"

	"github.com/andrescamacho/voyageplanner-go/internal/domain/voyage"
)

// runRecord wraps a run with its insertion sequence so Latest can break
// CreatedAt ties
type runRecord struct {
	ID       string
	VoyageID int64
	Seq      int64
	Run      voyage.ScheduleRun
}

// ScheduleRunRepository implements voyage.ScheduleRunRepository on a Store
type ScheduleRunRepository struct {
	store *Store
}

func NewScheduleRunRepository(store *Store) *ScheduleRunRepository {
	return &ScheduleRunRepository{store: store}
}

func (r *ScheduleRunRepository) Record(ctx context.Context, run *voyage.ScheduleRun) error {
	txn := r.store.db.Txn(true)
	defer txn.Abort()

	seq, err := nextID(txn, tableRuns)
	if err != nil {
		return fmt.Errorf("failed to allocate run sequence: %w", err)
	}

	record := &runRecord{ID: run.ID, VoyageID: run.VoyageID, Seq: seq, Run: *run}
	record.Run.Warnings = append([]voyage.Warning(nil), run.Warnings...)
	if err := txn.Insert(tableRuns, record); err != nil {
		return fmt.Errorf("failed to record schedule run: %w", err)
	}

	txn.Commit()
	return nil
}

func (r *ScheduleRunRepository) Latest(ctx context.Context, voyageID int64) (*voyage.ScheduleRun, error) {
	txn := r.store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableRuns, indexVoyageID, voyageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest schedule run: %w", err)
	}

	var latest *runRecord
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rec := raw.(*runRecord)
		if latest == nil ||
			rec.Run.CreatedAt.After(latest.Run.CreatedAt) ||
			(rec.Run.CreatedAt.Equal(latest.Run.CreatedAt) && rec.Seq > latest.Seq) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}

	run := latest.Run
	run.Warnings = append([]voyage.Warning(nil), latest.Run.Warnings...)
	return &run, nil
}
