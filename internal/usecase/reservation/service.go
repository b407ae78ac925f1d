package reservation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinekit/internal/domain/slot"
	"github.com/kailas-cloud/dinekit/internal/logger"
	"github.com/kailas-cloud/dinekit/internal/metrics"
)

// DefaultIncrementMin is used when neither the restaurant nor the caller sets an increment.
const DefaultIncrementMin = 30

// Service generates reservation time slots from restaurant hours.
// Slots are derived per call and never cached.
type Service struct {
	restaurants      RestaurantReader
	gen              *slot.Generator
	defaultIncrement int
}

// New creates a reservation service.
func New(restaurants RestaurantReader, gen *slot.Generator) *Service {
	return &Service{restaurants: restaurants, gen: gen, defaultIncrement: DefaultIncrementMin}
}

// WithDefaultIncrement sets the increment for restaurants that do not declare one.
func (s *Service) WithDefaultIncrement(minutes int) *Service {
	if minutes > 0 {
		s.defaultIncrement = minutes
	}
	return s
}

// Slots returns the bookable start times of a restaurant.
// incrementMin overrides the restaurant's increment when positive.
func (s *Service) Slots(ctx context.Context, restaurantID string, incrementMin int) ([]slot.TimeSlot, error) {
	r, err := s.restaurants.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	inc := incrementMin
	if inc <= 0 {
		inc = r.IncrementMin
	}
	if inc <= 0 {
		inc = s.defaultIncrement
	}

	slots, err := s.gen.GenerateClock(slot.Request{
		Open:             r.Open,
		Close:            r.Close,
		IncrementMinutes: inc,
		Unavailable:      r.Unavailable,
		Popular:          r.Popular,
	})
	if err != nil {
		return nil, fmt.Errorf("restaurant %q: %w", restaurantID, err)
	}

	metrics.SlotsGeneratedTotal.Add(float64(len(slots)))
	logger.FromContext(ctx).Debug("Slots generated",
		zap.String("restaurant_id", restaurantID),
		zap.Int("increment_min", inc),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}
