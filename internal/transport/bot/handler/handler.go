package handler

import (
	"context"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/internal/worker"
)

type trackerStatus interface {
	Status() worker.Status
}

type snapshotReader interface {
	Latest(ctx context.Context) (entity.SnapshotState, error)
}

type Handler struct {
	tracker   trackerStatus
	snapshots snapshotReader
}

func New(tracker trackerStatus, snapshots snapshotReader) *Handler {
	return &Handler{
		tracker:   tracker,
		snapshots: snapshots,
	}
}
