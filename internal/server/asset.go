package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/pkg/httpx/reply"
)

type snapshotRepository interface {
	Latest(ctx context.Context) (entity.SnapshotState, error)
	GetByName(ctx context.Context, name string) (entity.AssetRecord, error)
}

type AssetServer struct {
	snapshots snapshotRepository
}

func NewAssetServer(snapshots snapshotRepository) AssetServer {
	return AssetServer{
		snapshots: snapshots,
	}
}

func (s AssetServer) getV1Assets(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	state, err := s.snapshots.Latest(ctx)
	if err != nil {
		return fmt.Errorf("snapshots.Latest: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAssetList(state))

	return nil
}

func (s AssetServer) getV1Asset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	record, err := s.snapshots.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		return fmt.Errorf("snapshots.GetByName: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAsset(record))

	return nil
}
