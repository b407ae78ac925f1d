package cart

import (
	"context"

	domcart "github.com/kailas-cloud/dinekit/internal/domain/cart"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// ItemReader looks up priced items in the catalog.
type ItemReader interface {
	Record(ctx context.Context, collection, id string) (record.Record, error)
}

// Store holds cart accumulators. Update commits fn's changes only when fn returns nil.
type Store interface {
	Create(ctx context.Context) (string, error)
	Get(ctx context.Context, id string) (domcart.Snapshot, error)
	Update(ctx context.Context, id string, fn func(*domcart.Accumulator) error) (domcart.Snapshot, error)
	Delete(ctx context.Context, id string) error
}
