package dinekit

import "github.com/kailas-cloud/dinekit/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrCartNotFound       = domain.ErrCartNotFound
	ErrItemNotFound       = domain.ErrItemNotFound
	ErrInvalidCriterion   = domain.ErrInvalidCriterion
	ErrInvalidSlotRequest = domain.ErrInvalidSlotRequest
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrQuantityLimit      = domain.ErrQuantityLimit
)

// QuantityLimitError carries the per-line cap. It matches ErrQuantityLimit.
type QuantityLimitError = domain.QuantityLimitError
