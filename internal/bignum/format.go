package bignum

import (
	apperrors "github.com/agbru/bigfib/internal/errors"
)

// log10of2 converts a bit length into a decimal digit estimate.
const log10of2 = 0.30102999566398119521

// Decimal returns the base-10 representation of x without leading zeros
// ("0" for zero). x itself is not modified: the repeated divisions run on a
// working copy.
//
// Returns:
//   - string: The decimal digits.
//   - error: ErrInvalidOperand for a nil or released value, ErrAllocation if
//     the working copy could not be allocated.
func (x *BigNum) Decimal() (string, error) {
	if !x.valid() {
		return "", apperrors.NewArithmeticError("decimal", apperrors.ErrInvalidOperand)
	}
	work, err := x.Clone()
	if err != nil {
		return "", apperrors.WrapError(err, "decimal working copy")
	}
	defer work.release()

	buf := make([]byte, int(float64(x.BitLen())*log10of2)+2)
	for i := range buf {
		buf[i] = '0'
	}

	pos := len(buf) - 1
	for !work.IsZero() {
		buf[pos] += byte(work.divTen())
		pos--
	}

	start := 0
	for start < len(buf)-1 && buf[start] == '0' {
		start++
	}
	return string(buf[start:]), nil
}

// divTen divides x by ten in place and returns the remainder. It is a long
// division that consumes one bit at a time from the most significant bit of
// the top limb down; the running remainder never exceeds 19.
func (x *BigNum) divTen() uint32 {
	var rem uint32
	for i := len(x.limbs) - 1; i >= 0; i-- {
		limb := x.limbs[i]
		var q uint32
		for d := uint32(1) << 31; d > 0; d >>= 1 {
			rem <<= 1
			if limb&d != 0 {
				rem |= 1
			}
			q <<= 1
			if rem >= 10 {
				rem -= 10
				q |= 1
			}
		}
		x.limbs[i] = q
	}
	return rem
}

// String implements fmt.Stringer. It returns "<nil>" for a nil value and
// "<invalid>" when Decimal fails.
func (x *BigNum) String() string {
	if x == nil {
		return "<nil>"
	}
	s, err := x.Decimal()
	if err != nil {
		return "<invalid>"
	}
	return s
}
