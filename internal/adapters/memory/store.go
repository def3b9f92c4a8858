package memory

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
)

const (
	tableVessels     = "vessels"
	tableVoyages     = "voyages"
	tableWaypoints   = "waypoints"
	tableSamples     = "calibration_samples"
	tableRuns        = "schedule_runs"
	tableSequences   = "sequences"
	indexID          = "id"
	indexVesselID    = "vessel_id"
	indexVoyageID    = "voyage_id"
	indexVoyageOrder = "voyage_order"
	indexVesselKind  = "vessel_kind"
)

// sequence is the last ID handed out for one table
type sequence struct {
	Table string
	Last  int64
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableVessels: {
				Name: tableVessels,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {Name: indexID, Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
				},
			},
			tableVoyages: {
				Name: tableVoyages,
				Indexes: map[string]*memdb.IndexSchema{
					indexID:       {Name: indexID, Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
					indexVesselID: {Name: indexVesselID, Indexer: &memdb.IntFieldIndex{Field: "VesselID"}},
				},
			},
			tableWaypoints: {
				Name: tableWaypoints,
				Indexes: map[string]*memdb.IndexSchema{
					indexID:       {Name: indexID, Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
					indexVoyageID: {Name: indexVoyageID, Indexer: &memdb.IntFieldIndex{Field: "VoyageID"}},
					indexVoyageOrder: {
						Name:   indexVoyageOrder,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.IntFieldIndex{Field: "VoyageID"},
								&memdb.IntFieldIndex{Field: "OrderIndex"},
							},
						},
					},
				},
			},
			tableSamples: {
				Name: tableSamples,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {Name: indexID, Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
					indexVesselKind: {
						Name: indexVesselKind,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.IntFieldIndex{Field: "VesselID"},
								&memdb.StringFieldIndex{Field: "Kind"},
							},
						},
					},
				},
			},
			tableRuns: {
				Name: tableRuns,
				Indexes: map[string]*memdb.IndexSchema{
					indexID:       {Name: indexID, Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ID"}},
					indexVoyageID: {Name: indexVoyageID, Indexer: &memdb.IntFieldIndex{Field: "VoyageID"}},
				},
			},
			tableSequences: {
				Name: tableSequences,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {Name: indexID, Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Table"}},
				},
			},
		},
	}
}

// Store is an in-memory arena of planning records keyed by integer IDs.
// Records are copied on the way in and on the way out, so callers never
// share memory with the store.
type Store struct {
	db *memdb.MemDB
}

// NewStore creates an empty store
func NewStore() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// nextID increments and returns the sequence of table within txn
func nextID(txn *memdb.Txn, table string) (int64, error) {
	raw, err := txn.First(tableSequences, indexID, table)
	if err != nil {
		return 0, err
	}

	next := &sequence{Table: table, Last: 1}
	if raw != nil {
		next.Last = raw.(*sequence).Last + 1
	}

	if err := txn.Insert(tableSequences, next); err != nil {
		return 0, err
	}
	return next.Last, nil
}
