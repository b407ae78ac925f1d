package dinekit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	"github.com/kailas-cloud/dinekit/internal/domain/filter"
	"github.com/kailas-cloud/dinekit/internal/domain/sorting"
	browseuc "github.com/kailas-cloud/dinekit/internal/usecase/browse"
)

// BrowseBuilder is a fluent builder for filtered, sorted collection queries.
// Criteria combine with AND; sort keys apply in order, later keys break ties.
type BrowseBuilder struct {
	client     *Client
	collection string
	criteria   []Criterion
	sorts      []sorting.Spec
}

// Where adds filter criteria.
func (b *BrowseBuilder) Where(criteria ...Criterion) *BrowseBuilder {
	b.criteria = append(b.criteria, criteria...)
	return b
}

// SortBy appends a sort key: date, price, name, rating, popularity or helpfulness.
// Unknown keys fall back to date.
func (b *BrowseBuilder) SortBy(key string, dir Direction) *BrowseBuilder {
	b.sorts = append(b.sorts, sorting.Spec{Key: sorting.Key(key), Direction: sorting.Direction(dir)})
	return b
}

// Do runs the query. The catalog is never modified.
func (b *BrowseBuilder) Do(ctx context.Context) (_ []Record, err error) {
	start := time.Now()
	defer func() {
		b.client.obs.observe(ctx, "browse", start, err, slog.String("collection", b.collection))
	}()

	criteria := make([]filter.Criterion, 0, len(b.criteria))
	for i, c := range b.criteria {
		fc, cerr := c.resolve()
		if cerr != nil {
			return nil, fmt.Errorf("criterion %d: %w", i, cerr)
		}
		criteria = append(criteria, fc)
	}

	recs, err := b.client.browseSvc.Browse(ctx, b.collection, browseuc.Query{Criteria: criteria, Sort: b.sorts})
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", b.collection, err)
	}

	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = recordFromDomain(r)
	}
	b.client.obs.resultSize(b.collection, len(out))
	return out, nil
}

// Summarize aggregates a whole collection: rating distribution, price bands,
// category shares and price statistics.
func (c *Client) Summarize(ctx context.Context, collection string, bands ...PriceBand) (_ Summary, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "summarize", start, err, slog.String("collection", collection)) }()

	domBands, err := bandsToDomain(bands)
	if err != nil {
		return Summary{}, err
	}
	res, err := c.browseSvc.Summarize(ctx, collection, aggregate.DefaultSpec(domBands...))
	if err != nil {
		return Summary{}, fmt.Errorf("summarize %s: %w", collection, err)
	}
	return summaryFromDomain(res), nil
}
