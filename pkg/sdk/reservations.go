package dinekit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReservationService generates bookable time slots.
type ReservationService struct {
	svc reservationUseCase
	obs *observer
}

// Slots lists the start times between a restaurant's opening and closing hours,
// using the restaurant's own step or the client default.
func (s *ReservationService) Slots(ctx context.Context, restaurantID string) ([]Slot, error) {
	return s.SlotsEvery(ctx, restaurantID, 0)
}

// SlotsEvery is Slots with an explicit step in minutes. A step of 0 uses the default.
func (s *ReservationService) SlotsEvery(ctx context.Context, restaurantID string, minutes int) (_ []Slot, err error) {
	start := time.Now()
	defer func() {
		s.obs.observe(ctx, "reservation.slots", start, err, slog.String("restaurant", restaurantID))
	}()

	ts, err := s.svc.Slots(ctx, restaurantID, minutes)
	if err != nil {
		return nil, fmt.Errorf("slots for %s: %w", restaurantID, err)
	}
	return slotsFromDomain(ts), nil
}
