package fibonacci

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/bigfib/internal/bignum"
)

// TestBitLengthGrowth_PropertyBased checks that the bit length of F(n)
// grows as n*log2(phi), about 0.694 bits per step.
func TestBitLengthGrowth_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	log2Phi := math.Log2((1 + math.Sqrt(5)) / 2)

	properties.Property("BitLen(F(n)) tracks n*log2(phi)", prop.ForAll(
		func(n uint64) bool {
			f, err := Compute(n)
			if err != nil {
				return false
			}
			defer f.Free()
			return math.Abs(float64(f.BitLen())-float64(n)*log2Phi) <= 2
		},
		gen.UInt64Range(2, 5000),
	))

	properties.TestingRun(t)
}

// TestCassinisIdentity_PropertyBased verifies
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
//
// using only bignum arithmetic. Without negative values the identity is
// checked as F(n-1)*F(n+1) == F(n)² + 1 for even n and the mirror for odd n.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("Cassini's identity holds", prop.ForAll(
		func(n uint64) bool {
			fm, err1 := Compute(n - 1)
			f, err2 := Compute(n)
			fp, err3 := Compute(n + 1)
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			one, _ := bignum.FromUint64(1)
			outer, _ := bignum.New(1)
			square, _ := bignum.New(1)
			if outer.Mul(fm, fp) != nil || square.Mul(f, f) != nil {
				return false
			}
			if n%2 == 0 {
				if square.Add(square, one) != nil {
					return false
				}
			} else if outer.Add(outer, one) != nil {
				return false
			}
			return outer.Cmp(square) == 0
		},
		gen.UInt64Range(1, 400),
	))

	properties.TestingRun(t)
}
