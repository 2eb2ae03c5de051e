package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nft_tracker/internal/domain"
	"nft_tracker/pkg/errcodes"
	"nft_tracker/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", handler(s.getV1Assets))
			r.Get("/{name}", handler(s.getV1Asset))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(w, r, err)
		}
	}
}

func replyError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case domain.HasCode(err, errcodes.AssetNotFound):
		reply.Status(ctx, w, http.StatusNotFound, errcodes.AssetNotFound, "asset not found")
	case domain.HasCode(err, errcodes.SnapshotNotReady):
		reply.Status(ctx, w, http.StatusServiceUnavailable, errcodes.SnapshotNotReady, "no successful poll cycle yet")
	default:
		reply.Error(ctx, w, err)
	}
}
