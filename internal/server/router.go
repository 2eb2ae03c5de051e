package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nft_tracker/pkg/logx"
	"nft_tracker/pkg/middlewarex"
)

// Server groups the HTTP handlers of every resource the tracker exposes.
type Server struct {
	AssetServer
}

func NewServer(assetServer AssetServer) Server {
	return Server{AssetServer: assetServer}
}

// Handler builds the chi router with the logging middlewares in front of the routes.
func (s Server) Handler(sensitiveDataMasker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
