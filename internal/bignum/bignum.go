// Package bignum implements an arbitrary-precision unsigned integer stored as
// 32-bit limbs, least significant limb first.
//
// A BigNum is owned by a single holder and is not safe for concurrent
// mutation. Operations take the destination as receiver and may be called
// with the receiver equal to any operand:
//
//	z.Add(z, x) // z += x
//	z.Mul(z, z) // z *= z
//
// Values are not kept globally normalized. Add, Sub and Mul trim leading zero
// limbs from their result (never below one limb); Lsh and Resize do not.
package bignum

import (
	apperrors "github.com/agbru/bigfib/internal/errors"
)

// BigNum is an unsigned multi-limb integer. The zero value is not usable;
// create values with New or NewWithAllocator.
type BigNum struct {
	// limbs[0] is the least significant limb. A live value has len >= 1;
	// a released value has nil limbs.
	limbs []uint32
	alloc Allocator
}

// New returns a zero-valued BigNum with limbCount limbs, using the default
// allocator.
//
// Parameters:
//   - limbCount: The initial number of limbs (>= 1).
//
// Returns:
//   - *BigNum: The new value.
//   - error: ErrInvalidOperand for limbCount < 1, ErrAllocation if storage
//     could not be acquired.
func New(limbCount int) (*BigNum, error) {
	return NewWithAllocator(limbCount, defaultAllocator)
}

// NewWithAllocator is New with an explicit allocator. The allocator is also
// used for every later resize and for temporaries derived from the value.
func NewWithAllocator(limbCount int, alloc Allocator) (*BigNum, error) {
	if limbCount < 1 {
		return nil, apperrors.NewArithmeticError("new", apperrors.ErrInvalidOperand)
	}
	if alloc == nil {
		alloc = defaultAllocator
	}
	limbs, err := alloc.Alloc(limbCount)
	if err != nil {
		return nil, apperrors.NewArithmeticError("new", err)
	}
	return &BigNum{limbs: limbs, alloc: alloc}, nil
}

// FromUint64 returns a BigNum holding v in the minimal number of limbs.
func FromUint64(v uint64) (*BigNum, error) {
	z, err := New(2)
	if err != nil {
		return nil, err
	}
	z.limbs[0], z.limbs[1] = uint32(v), uint32(v>>32)
	z.norm()
	return z, nil
}

func (z *BigNum) valid() bool {
	return z != nil && len(z.limbs) > 0
}

// Len returns the current limb count, or 0 for a nil or released value.
func (z *BigNum) Len() int {
	if z == nil {
		return 0
	}
	return len(z.limbs)
}

// Limbs returns a copy of the limbs, least significant first.
func (z *BigNum) Limbs() []uint32 {
	if !z.valid() {
		return nil
	}
	out := make([]uint32, len(z.limbs))
	copy(out, z.limbs)
	return out
}

// Resize changes the limb count to n.
//
// Growing zero-fills the new high limbs. Shrinking discards the high limbs
// permanently: growing again afterwards reads them back as zero. Resizing to
// zero releases the value, which is invalid afterwards. On allocation
// failure the value is left exactly as it was.
//
// Parameters:
//   - n: The new limb count (>= 0).
//
// Returns:
//   - error: ErrInvalidOperand for a released value or n < 0, ErrAllocation
//     if the storage could not be grown.
func (z *BigNum) Resize(n int) error {
	if !z.valid() || n < 0 {
		return apperrors.NewArithmeticError("resize", apperrors.ErrInvalidOperand)
	}
	return apperrors.NewArithmeticError("resize", z.resize(n))
}

func (z *BigNum) resize(n int) error {
	cur := len(z.limbs)
	switch {
	case n == cur:
		return nil
	case n == 0:
		z.release()
		return nil
	case n < cur:
		z.truncate(n)
		return nil
	case n <= cap(z.limbs):
		z.limbs = z.limbs[:n]
		clear(z.limbs[cur:])
		return nil
	}
	limbs, err := z.alloc.Alloc(n)
	if err != nil {
		return err
	}
	copy(limbs, z.limbs)
	z.limbs = limbs
	return nil
}

// truncate drops the limbs at index n and above. The dropped limbs are
// zeroed in the backing array so that a later in-capacity grow cannot expose
// them again. n must be in [1, len].
func (z *BigNum) truncate(n int) {
	clear(z.limbs[n:])
	z.limbs = z.limbs[:n]
}

// norm trims leading zero limbs, keeping at least one.
func (z *BigNum) norm() {
	n := len(z.limbs)
	for n > 1 && z.limbs[n-1] == 0 {
		n--
	}
	z.truncate(n)
}

func (z *BigNum) release() {
	z.limbs = nil
}

// Set copies src into z, resizing z to src's limb count.
//
// Returns:
//   - error: ErrInvalidOperand if either value is nil or released,
//     ErrAllocation if z could not be grown (z is then unchanged).
func (z *BigNum) Set(src *BigNum) error {
	if !z.valid() || !src.valid() {
		return apperrors.NewArithmeticError("copy", apperrors.ErrInvalidOperand)
	}
	if z == src {
		return nil
	}
	if err := z.resize(len(src.limbs)); err != nil {
		return apperrors.NewArithmeticError("copy", err)
	}
	copy(z.limbs, src.limbs)
	return nil
}

// Clone returns a new value equal to z, sharing z's allocator.
func (z *BigNum) Clone() (*BigNum, error) {
	if !z.valid() {
		return nil, apperrors.NewArithmeticError("copy", apperrors.ErrInvalidOperand)
	}
	c, err := NewWithAllocator(len(z.limbs), z.alloc)
	if err != nil {
		return nil, err
	}
	copy(c.limbs, z.limbs)
	return c, nil
}

// SetUint64 sets z to v, trimmed to the minimal limb count.
func (z *BigNum) SetUint64(v uint64) error {
	if !z.valid() {
		return apperrors.NewArithmeticError("set", apperrors.ErrInvalidOperand)
	}
	if err := z.resize(2); err != nil {
		return apperrors.NewArithmeticError("set", err)
	}
	z.limbs[0], z.limbs[1] = uint32(v), uint32(v>>32)
	z.norm()
	return nil
}

// Uint64 returns the value as a uint64 and whether it fits.
func (z *BigNum) Uint64() (uint64, bool) {
	if !z.valid() || z.BitLen() > 64 {
		return 0, false
	}
	return uint64(limbAt(z.limbs, 1))<<32 | uint64(z.limbs[0]), true
}

// Free releases the storage of z. Using z afterwards, including freeing it a
// second time, is an ErrInvalidOperand error.
func (z *BigNum) Free() error {
	if !z.valid() {
		return apperrors.NewArithmeticError("free", apperrors.ErrInvalidOperand)
	}
	z.release()
	return nil
}

// Cmp compares the numeric values of x and y, ignoring leading zero limbs.
// It returns -1, 0 or +1. A nil or released value compares as zero.
func (x *BigNum) Cmp(y *BigNum) int {
	var xl, yl []uint32
	if x != nil {
		xl = x.limbs
	}
	if y != nil {
		yl = y.limbs
	}
	for i := max(len(xl), len(yl)) - 1; i >= 0; i-- {
		a, b := limbAt(xl, i), limbAt(yl, i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// limbAt returns limbs[i], or 0 past the end.
func limbAt(limbs []uint32, i int) uint32 {
	if i < len(limbs) {
		return limbs[i]
	}
	return 0
}
