package bignum

import (
	"math/bits"

	apperrors "github.com/agbru/bigfib/internal/errors"
)

func checkOperands(op string, vals ...*BigNum) error {
	for _, v := range vals {
		if !v.valid() {
			return apperrors.NewArithmeticError(op, apperrors.ErrInvalidOperand)
		}
	}
	return nil
}

// Add sets z = a + b.
//
// z is sized to max(a.Len(), b.Len())+1 before the carry loop, then one top
// limb is trimmed if it stayed zero. Each step reads limb i of a and b before
// writing limb i of z, so z may alias a, b, or both.
//
// Returns:
//   - error: ErrInvalidOperand for a nil or released operand, ErrAllocation
//     if z could not be grown (z is then unchanged).
func (z *BigNum) Add(a, b *BigNum) error {
	if err := checkOperands("add", z, a, b); err != nil {
		return err
	}
	if err := z.resize(max(len(a.limbs), len(b.limbs)) + 1); err != nil {
		return apperrors.NewArithmeticError("add", err)
	}

	var carry uint32
	for i := range z.limbs {
		z.limbs[i], carry = bits.Add32(limbAt(a.limbs, i), limbAt(b.limbs, i), carry)
	}

	if n := len(z.limbs); n > 1 && z.limbs[n-1] == 0 {
		z.truncate(n - 1)
	}
	return nil
}

// Sub sets z = a - b. The value of a must be at least the value of b; there
// is no negative representation, so a < b is rejected with ErrInvalidOperand
// before z is touched. The result is trimmed to its minimal limb count.
func (z *BigNum) Sub(a, b *BigNum) error {
	if err := checkOperands("sub", z, a, b); err != nil {
		return err
	}
	if a.Cmp(b) < 0 {
		return apperrors.NewArithmeticError("sub", apperrors.ErrInvalidOperand)
	}
	if err := z.resize(max(len(a.limbs), len(b.limbs))); err != nil {
		return apperrors.NewArithmeticError("sub", err)
	}

	var borrow uint32
	for i := range z.limbs {
		z.limbs[i], borrow = bits.Sub32(limbAt(a.limbs, i), limbAt(b.limbs, i), borrow)
	}
	z.norm()
	return nil
}

// Lsh sets z = src << (s mod 32).
//
// Only the amount modulo 32 is honored: a multiple of 32 leaves the value
// unshifted and z becomes a copy of src. When the shift would move a set bit
// past the top limb (s mod 32 > src.LeadingZeros()) the result gets one extra
// limb; with z == src this grows src in place. The result is not trimmed.
// Limbs are produced from the most significant down, so z may alias src.
func (z *BigNum) Lsh(src *BigNum, s uint) error {
	if err := checkOperands("lsh", z, src); err != nil {
		return err
	}
	s %= 32
	if s == 0 {
		return z.Set(src)
	}

	size := len(src.limbs)
	if int(s) > src.LeadingZeros() {
		size++
	}
	if err := z.resize(size); err != nil {
		return apperrors.NewArithmeticError("lsh", err)
	}

	for i := size - 1; i > 0; i-- {
		z.limbs[i] = limbAt(src.limbs, i)<<s | limbAt(src.limbs, i-1)>>(32-s)
	}
	z.limbs[0] = src.limbs[0] << s
	return nil
}

// Mul sets z = a * b using bit-serial shift-and-add.
//
// The product is always built in a temporary that is then copied into z, so
// z may alias either operand and a failed allocation leaves z unchanged. The
// result is trimmed.
func (z *BigNum) Mul(a, b *BigNum) error {
	if err := checkOperands("mul", z, a, b); err != nil {
		return err
	}
	tmp, err := NewWithAllocator(1, z.alloc)
	if err != nil {
		return apperrors.NewArithmeticError("mul", err)
	}
	defer tmp.release()

	if err := tmp.mul(a, b); err != nil {
		return apperrors.NewArithmeticError("mul", err)
	}
	return apperrors.NewArithmeticError("mul", z.Set(tmp))
}

// mul requires z to be distinct from a and b. z and the running value are
// sized up front (z with room for the carry limb of Add) so the loop itself
// never allocates.
func (z *BigNum) mul(a, b *BigNum) error {
	size := len(a.limbs) + len(b.limbs)
	if err := z.resize(size + 1); err != nil {
		return err
	}
	clear(z.limbs)
	z.truncate(size)

	run, err := NewWithAllocator(size, z.alloc)
	if err != nil {
		return err
	}
	defer run.release()
	copy(run.limbs, a.limbs)
	run.truncate(len(a.limbs))

	nbits := b.BitLen()
	for i := 0; i < nbits; i++ {
		if b.Bit(i) == 1 {
			if err := z.Add(z, run); err != nil {
				return err
			}
		}
		if i < nbits-1 {
			if err := run.Lsh(run, 1); err != nil {
				return err
			}
		}
	}
	z.norm()
	return nil
}
