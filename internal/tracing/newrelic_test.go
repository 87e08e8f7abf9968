package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	tracer, err := NewTracer(config.TracingConfig{})
	require.NoError(t, err)
	require.Nil(t, tracer.App())

	ctx, txn := tracer.StartTransaction(context.Background(), "job")
	require.Nil(t, txn)

	require.NotPanics(t, func() {
		StartSegment(ctx, "segment").End()
		NoticeError(ctx, errors.New("boom"))
		tracer.Close()
	})
}
