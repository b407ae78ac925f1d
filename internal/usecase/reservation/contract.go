package reservation

import (
	"context"

	"github.com/kailas-cloud/dinekit/internal/domain"
)

// RestaurantReader reads restaurant booking hours.
type RestaurantReader interface {
	Restaurant(ctx context.Context, id string) (domain.Restaurant, error)
}
