package browse

import (
	"context"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// RecordReader reads record collections.
type RecordReader interface {
	Records(ctx context.Context, collection string) ([]record.Record, error)
}
