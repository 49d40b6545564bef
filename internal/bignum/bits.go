package bignum

import "math/bits"

// LeadingZeros returns the number of zero bits above the most significant set
// bit, counted across every limb. A zero value reports Len()*32.
func (x *BigNum) LeadingZeros() int {
	if x == nil {
		return 0
	}
	count := 0
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if x.limbs[i] != 0 {
			return count + bits.LeadingZeros32(x.limbs[i])
		}
		count += 32
	}
	return count
}

// BitLen returns the number of significant bits; zero has bit length 0.
func (x *BigNum) BitLen() int {
	return x.Len()*32 - x.LeadingZeros()
}

// IsZero reports whether every limb is zero.
func (x *BigNum) IsZero() bool {
	if x == nil {
		return true
	}
	for _, l := range x.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Bit returns bit i of x (0 or 1); bits past the end are 0.
func (x *BigNum) Bit(i int) uint {
	if x == nil || i < 0 {
		return 0
	}
	return uint(limbAt(x.limbs, i/32)>>(i%32)) & 1
}
