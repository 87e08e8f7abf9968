package tracing

import (
	"context"
	"time"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Tracer wraps the New Relic application
type Tracer struct {
	app     *newrelic.Application
	enabled bool
}

// NewTracer creates a new tracer. Without a license key tracing is disabled.
func NewTracer(cfg config.TracingConfig) (*Tracer, error) {
	if cfg.LicenseKey == "" {
		log.Warn().Msg("New Relic license key not provided, tracing will be disabled")
		return &Tracer{}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.DistribTracing),
		newrelic.ConfigAppLogForwardingEnabled(cfg.LogEnabled),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize New Relic")
	}

	return &Tracer{app: app, enabled: true}, nil
}

// App returns the New Relic application, nil when tracing is disabled
func (t *Tracer) App() *newrelic.Application {
	if t == nil || !t.enabled {
		return nil
	}
	return t.app
}

// StartTransaction starts a background transaction for worker jobs
func (t *Tracer) StartTransaction(ctx context.Context, name string) (context.Context, *newrelic.Transaction) {
	txn := t.App().StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn
}

// StartSegment starts a segment on the transaction carried by ctx.
// The returned segment is safe to End when no transaction exists.
func StartSegment(ctx context.Context, name string) *newrelic.Segment {
	return newrelic.FromContext(ctx).StartSegment(name)
}

// NoticeError records err on the transaction carried by ctx
func NoticeError(ctx context.Context, err error) {
	if txn := newrelic.FromContext(ctx); txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// Close flushes pending data
func (t *Tracer) Close() {
	if t.App() == nil {
		return
	}
	t.app.Shutdown(10 * time.Second)
	log.Info().Msg("New Relic tracer shutdown")
}
