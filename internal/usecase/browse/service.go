package browse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	"github.com/kailas-cloud/dinekit/internal/domain/filter"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
	"github.com/kailas-cloud/dinekit/internal/domain/sorting"
	"github.com/kailas-cloud/dinekit/internal/logger"
	"github.com/kailas-cloud/dinekit/internal/metrics"
)

// Query is the derived view a caller asks for: active criteria plus sort order.
type Query struct {
	Criteria []filter.Criterion
	Sort     []sorting.Spec
}

// Service derives filtered, sorted and summarized views of catalog collections.
type Service struct {
	repo   RecordReader
	sorter *sorting.Library
}

// New creates a browse service.
func New(repo RecordReader, sorter *sorting.Library) *Service {
	return &Service{repo: repo, sorter: sorter}
}

// Browse filters then sorts a collection. The stored collection is never modified.
func (s *Service) Browse(ctx context.Context, collection string, q Query) ([]record.Record, error) {
	recs, err := s.repo.Records(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, spec := range q.Sort {
		if !s.sorter.Known(spec.Key) {
			log.Warn("Unknown sort key, falling back",
				zap.String("collection", collection),
				zap.String("key", string(spec.Key)),
				zap.String("fallback", string(sorting.FallbackKey)),
			)
			metrics.FallbacksTotal.WithLabelValues("sort_key").Inc()
		}
	}

	start := time.Now()
	out := s.sorter.Apply(filter.Apply(recs, q.Criteria...), q.Sort...)
	metrics.BrowseDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	metrics.BrowseResultSize.WithLabelValues(collection).Observe(float64(len(out)))

	log.Debug("Browse",
		zap.String("collection", collection),
		zap.Int("criteria", len(q.Criteria)),
		zap.Int("sort_keys", len(q.Sort)),
		zap.Int("input", len(recs)),
		zap.Int("output", len(out)),
	)
	return out, nil
}

// Summarize aggregates the whole collection, independent of any active filter.
func (s *Service) Summarize(ctx context.Context, collection string, spec aggregate.Spec) (aggregate.Result, error) {
	recs, err := s.repo.Records(ctx, collection)
	if err != nil {
		return aggregate.Result{}, fmt.Errorf("read collection: %w", err)
	}
	res := aggregate.Compute(recs, spec)
	logger.FromContext(ctx).Debug("Summarize",
		zap.String("collection", collection),
		zap.Int("records", res.Total),
		zap.Int("price_bands", len(spec.PriceBands)),
	)
	return res, nil
}
