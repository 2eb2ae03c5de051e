package middlewarex

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"nft_tracker/pkg/logx"
)

// RequestLogging dumps the incoming request at debug level. Multipart bodies
// are left out of the dump.
func RequestLogging(masker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			withBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
			dump, err := httputil.DumpRequest(r, withBody)

			logger(ctx).Debug(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, maskedField(masker, dump, logFieldMaxLen)),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}

// ResponseLogging tees the response body and logs it with status, headers and
// duration once the handler returns. 5xx responses are logged at warn level.
//
// mutil.WrapWriter keeps the optional interfaces (Flusher, Hijacker) of w:
// https://blog.merovius.de/posts/2017-07-30-the-trouble-with-optional-interfaces/
func ResponseLogging(masker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()

			var body bytes.Buffer

			lw := mutil.WrapWriter(w)
			lw.Tee(&body)

			next.ServeHTTP(lw, r)

			headers, err := dumpHeaders(w.Header())
			if err != nil {
				logger(ctx).Error("dumpHeaders", logx.Error(err))
			}

			// Status is 0 when the handler never called WriteHeader.
			status := cmp.Or(lw.Status(), http.StatusOK)

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			logger(ctx).Log(
				ctx,
				level,
				logx.FieldHTTPResponse,
				slog.Int(logx.FieldResponseStatus, status),
				slog.String(logx.FieldResponseHeaders, maskedField(masker, headers, 0)),
				slog.String(logx.FieldResponseBody, maskedField(masker, body.Bytes(), logFieldMaxLen)),
				slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			)
		})
	}
}

// maskedField masks data and cuts it to maxLen bytes. maxLen <= 0 keeps it whole.
func maskedField(masker logx.SensitiveDataMaskerInterface, data []byte, maxLen int) string {
	data = masker.Mask(data)
	if maxLen > 0 && len(data) > maxLen {
		data = data[:maxLen]
	}
	return string(data)
}

func dumpHeaders(h http.Header) ([]byte, error) {
	var buf bytes.Buffer

	if err := h.WriteSubset(&buf, nil); err != nil {
		return nil, fmt.Errorf("header.WriteSubset: %w", err)
	}

	return buf.Bytes(), nil
}
