package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing collection or restaurant.
	ErrNotFound = errors.New("not found")
	// ErrCartNotFound signals a missing cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound signals an item id absent from the catalog.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidCriterion signals a malformed filter criterion (integration bug in the caller).
	ErrInvalidCriterion = errors.New("invalid criterion")
	// ErrInvalidSlotRequest signals malformed slot generator input.
	ErrInvalidSlotRequest = errors.New("invalid slot request")
	// ErrInvalidRequest signals a request the usecase layer rejects.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrQuantityLimit signals a line quantity above the configured cap.
	ErrQuantityLimit = errors.New("quantity limit exceeded")
)

// QuantityLimitError wraps ErrQuantityLimit with the configured cap.
type QuantityLimitError struct {
	Max int
}

func (e *QuantityLimitError) Error() string {
	return fmt.Sprintf("%s: max %d per item", ErrQuantityLimit.Error(), e.Max)
}

func (e *QuantityLimitError) Unwrap() error { return ErrQuantityLimit }

// NewQuantityLimit creates a quantity limit error.
func NewQuantityLimit(maxQty int) error {
	return &QuantityLimitError{Max: maxQty}
}
