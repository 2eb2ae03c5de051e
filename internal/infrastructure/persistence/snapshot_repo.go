package persistence

import (
	"context"
	"sync"
	"time"

	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/entity"
	"nft_tracker/pkg/errcodes"
)

// SnapshotRepository keeps the latest consolidated snapshot in memory.
type SnapshotRepository struct {
	mu    sync.RWMutex
	state entity.SnapshotState
	ready bool
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Save replaces the latest snapshot. The repository keeps its own copy.
func (r *SnapshotRepository) Save(_ context.Context, snapshot entity.Snapshot, updatedAt time.Time) error {
	cp := make(entity.Snapshot, len(snapshot))
	for name, record := range snapshot {
		cp[name] = record
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = entity.SnapshotState{
		Snapshot:  cp,
		UpdatedAt: updatedAt,
		Cycles:    r.state.Cycles + 1,
	}
	r.ready = true

	return nil
}

func (r *SnapshotRepository) Latest(_ context.Context) (entity.SnapshotState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ready {
		return entity.SnapshotState{}, domain.NewError(errcodes.SnapshotNotReady, "no successful cycle yet")
	}

	return r.state, nil
}

func (r *SnapshotRepository) GetByName(ctx context.Context, name string) (entity.AssetRecord, error) {
	state, err := r.Latest(ctx)
	if err != nil {
		return entity.AssetRecord{}, err
	}

	record, ok := state.Snapshot[name]
	if !ok {
		return entity.AssetRecord{}, domain.NewError(errcodes.AssetNotFound, "asset not found")
	}

	return record, nil
}
