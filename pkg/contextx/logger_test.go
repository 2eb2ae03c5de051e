package contextx_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"nft_tracker/pkg/contextx"
)

func TestLogger(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	logger, err := contextx.LoggerFromContext(ctx)
	rq.Nil(logger)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "logger: no value in context")
	rq.Equal(slog.Default(), contextx.LoggerFromContextOrDefault(ctx))

	var buf bytes.Buffer

	base := slog.New(slog.NewTextHandler(&buf, nil))
	ctx = contextx.WithLogger(ctx, base)

	logger, err = contextx.LoggerFromContext(ctx)
	rq.NoError(err)
	rq.Equal(base, logger)

	// A derived logger replaces the parent for the inner context only.
	inner := contextx.WithLogger(ctx, base.With(slog.String("cycle-id", "c1")))
	contextx.LoggerFromContextOrDefault(inner).Info("cycle")
	contextx.LoggerFromContextOrDefault(ctx).Info("outer")

	rq.Contains(buf.String(), "msg=cycle cycle-id=c1")
	rq.Contains(buf.String(), "msg=outer\n")
}
