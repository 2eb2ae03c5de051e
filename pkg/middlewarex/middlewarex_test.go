package middlewarex_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/logx"
	"nft_tracker/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	testCases := []struct {
		name    string
		header  string
		wantKey string
	}{
		{name: "Given by client", header: "abc", wantKey: "abc"},
		{name: "Generated"},
		{name: "Oversized header replaced", header: strings.Repeat("a", 65)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var seen contextx.TraceID

			h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				id, err := contextx.TraceIDFromContext(r.Context())
				rq.NoError(err)
				seen = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/assets", http.NoBody)
			if tc.header != "" {
				req.Header.Set("X-Trace-Id", tc.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			rq.Equal(seen.String(), rec.Header().Get("X-Trace-Id"))
			if tc.wantKey != "" {
				rq.Equal(tc.wantKey, seen.String())
			} else {
				rq.Len(seen.String(), 20)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	h := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rq.Equal(http.StatusInternalServerError, rec.Code)
	rq.Contains(rec.Body.String(), `"code":"InternalServerError"`)
}

func TestResponseLogging(t *testing.T) {
	rq := require.New(t)

	var logs bytes.Buffer

	log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), 16)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Api-Key", "secret")
			w.Write([]byte(`{"assets":[{"name":"Relic"}]}`)) //nolint:errcheck
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/assets", http.NoBody)
	req = req.WithContext(contextx.WithLogger(req.Context(), log))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	rq.Equal(http.StatusOK, rec.Code)

	line := logs.String()
	rq.Contains(line, `"response-status":200`)
	rq.Contains(line, `"level":"INFO"`)
	rq.Contains(line, `"response-body":"{\"assets\":[{\"nam"`, "body is cut to the max length")
	rq.NotContains(line, "secret")
	rq.True(strings.Contains(line, "[MASKED]"))
}
