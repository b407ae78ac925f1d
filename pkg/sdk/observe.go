package dinekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/dinekit/internal/domain"
)

// Operation outcome labels.
const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusRejected = "rejected"
	statusError    = "error"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	results    *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dinekit",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by name and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dinekit",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"operation"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dinekit",
			Subsystem: "sdk",
			Name:      "browse_result_size",
			Help:      "Records returned by SDK browse calls.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}, []string{"collection"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an identical one that is already registered,
// so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("dinekit: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("dinekit: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer provides logging and metrics for SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// outcome maps an operation error to a status label.
func outcome(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return statusNotFound
	case errors.Is(err, domain.ErrInvalidCriterion),
		errors.Is(err, domain.ErrInvalidSlotRequest),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrQuantityLimit):
		return statusRejected
	default:
		return statusError
	}
}

func (o *observer) observe(ctx context.Context, op string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs = append(attrs,
		slog.String("op", op),
		slog.Duration("duration", dur),
		slog.String("status", status),
	)
	switch status {
	case statusOK:
		o.logger.LogAttrs(ctx, slog.LevelDebug, "operation completed", attrs...)
	case statusError:
		o.logger.LogAttrs(ctx, slog.LevelError, "operation failed", append(attrs, slog.Any("error", err))...)
	default:
		o.logger.LogAttrs(ctx, slog.LevelWarn, "operation rejected", append(attrs, slog.Any("error", err))...)
	}
}

// resultSize records the size of a browse result.
func (o *observer) resultSize(collection string, n int) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.results.WithLabelValues(collection).Observe(float64(n))
}
