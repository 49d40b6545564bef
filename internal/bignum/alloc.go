package bignum

import (
	"fmt"

	apperrors "github.com/agbru/bigfib/internal/errors"
)

// DefaultMaxLimbs bounds a single limb allocation of the default allocator
// (1<<26 limbs is 256 MiB, roughly F(3.1e9)).
const DefaultMaxLimbs = 1 << 26

// Allocator abstracts limb storage acquisition so that callers can bound
// memory use or inject failures. Implementations must return a zeroed slice
// of exactly n limbs, or an error wrapping apperrors.ErrAllocation.
type Allocator interface {
	// Alloc returns n zeroed limbs.
	//
	// Parameters:
	//   - n: The number of limbs requested (>= 0).
	//
	// Returns:
	//   - []uint32: A zeroed slice with len(slice) == n.
	//   - error: An error wrapping apperrors.ErrAllocation on failure.
	Alloc(n int) ([]uint32, error)
}

// HeapAllocator allocates limbs on the Go heap. Requests above MaxLimbs, and
// runtime allocation panics, are reported as apperrors.ErrAllocation.
type HeapAllocator struct {
	// MaxLimbs is the largest accepted request. Zero means DefaultMaxLimbs.
	MaxLimbs int
}

// Alloc implements Allocator.
func (h HeapAllocator) Alloc(n int) (limbs []uint32, err error) {
	limit := h.MaxLimbs
	if limit <= 0 {
		limit = DefaultMaxLimbs
	}
	if n < 0 || n > limit {
		return nil, fmt.Errorf("%w: %d limbs requested, limit %d", apperrors.ErrAllocation, n, limit)
	}
	defer func() {
		if r := recover(); r != nil {
			limbs, err = nil, fmt.Errorf("%w: %v", apperrors.ErrAllocation, r)
		}
	}()
	return make([]uint32, n), nil
}

// defaultAllocator backs New and values created without an allocator.
var defaultAllocator Allocator = HeapAllocator{}
