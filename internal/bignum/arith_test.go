package bignum

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/shabbyrobe/golib/assert"

	apperrors "github.com/agbru/bigfib/internal/errors"
)

func TestAdd(t *testing.T) {
	for idx, tc := range []struct {
		a, b  *BigNum
		c     string
		limbs int
	}{
		{fromLimbs(0), fromLimbs(0), "0", 1},
		{fromLimbs(1), fromLimbs(2), "3", 1},
		{fromLimbs(0xFFFFFFFF), fromLimbs(1), "0x100000000", 2},
		{fromLimbs(0xFFFFFFFF, 0xFFFFFFFF), fromLimbs(1), "0x10000000000000000", 3},
		{fromLimbs(5, 0, 0), fromLimbs(1), "6", 3},
		{fromLimbs(0, 1), fromLimbs(0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF), "0x10000000000000000FFFFFFFF", 4},
	} {
		t.Run(fmt.Sprintf("%d/%s", idx, tc.c), func(t *testing.T) {
			tt := assert.WrapTB(t)
			z := fromLimbs(42)
			tt.MustOK(z.Add(tc.a, tc.b))
			tt.MustAssert(toBig(z).Cmp(bigs(tc.c)) == 0, "found %s", toBig(z))
			tt.MustEqual(tc.limbs, z.Len())
		})
	}
}

func TestAddAliasing(t *testing.T) {
	tt := assert.WrapTB(t)

	x := fromLimbs(0xFFFFFFFF, 0xFFFFFFFF)
	tt.MustOK(x.Add(x, x))
	tt.MustAssert(toBig(x).Cmp(bigs("36893488147419103230")) == 0, "x+x found %s", toBig(x))

	a, b := fromLimbs(7), fromLimbs(0, 3)
	tt.MustOK(b.Add(a, b))
	tt.MustAssert(toBig(b).Cmp(bigs("0x300000007")) == 0, "a+b into b found %s", toBig(b))
	tt.MustEqual([]uint32{7}, a.Limbs())
}

func TestSub(t *testing.T) {
	for idx, tc := range []struct {
		a, b  *BigNum
		c     string
		limbs int
	}{
		{fromLimbs(3), fromLimbs(3), "0", 1},
		{fromLimbs(0, 1), fromLimbs(1), "0xFFFFFFFF", 1},
		{fromLimbs(0, 0, 1), fromLimbs(1), "0xFFFFFFFFFFFFFFFF", 2},
		{fromLimbs(9, 0, 0), fromLimbs(4), "5", 1},
		{fromLimbs(5), fromLimbs(5, 0, 0), "0", 1},
	} {
		t.Run(fmt.Sprintf("%d/%s", idx, tc.c), func(t *testing.T) {
			tt := assert.WrapTB(t)
			z := fromLimbs(1, 2, 3, 4, 5)
			tt.MustOK(z.Sub(tc.a, tc.b))
			tt.MustAssert(toBig(z).Cmp(bigs(tc.c)) == 0, "found %s", toBig(z))
			tt.MustEqual(tc.limbs, z.Len())
		})
	}
}

func TestSubRejectsNegativeResult(t *testing.T) {
	tt := assert.WrapTB(t)
	z := fromLimbs(77)
	err := z.Sub(fromLimbs(1), fromLimbs(0, 1))
	tt.MustAssert(apperrors.IsInvalidOperand(err), err)
	tt.MustEqual([]uint32{77}, z.Limbs())
}

func TestLsh(t *testing.T) {
	for idx, tc := range []struct {
		src   *BigNum
		shift uint
		out   string
		limbs int
	}{
		{fromLimbs(1), 1, "2", 1},
		{fromLimbs(1), 31, "0x80000000", 1},
		{fromLimbs(0x80000000), 1, "0x100000000", 2},
		{fromLimbs(0x80000001, 0x1), 4, "0x1800000010", 2},
		{fromLimbs(0xFFFFFFFF, 0), 8, "0xFFFFFFFF00", 2},
		{fromLimbs(0), 5, "0", 1},
		{fromLimbs(3), 33, "6", 1},
		{fromLimbs(3), 32, "3", 1},
		{fromLimbs(3), 64, "3", 1},
	} {
		t.Run(fmt.Sprintf("%d/%s<<%d", idx, toBig(tc.src), tc.shift), func(t *testing.T) {
			tt := assert.WrapTB(t)
			before := tc.src.Limbs()
			z := fromLimbs(9, 9, 9)
			tt.MustOK(z.Lsh(tc.src, tc.shift))
			tt.MustAssert(toBig(z).Cmp(bigs(tc.out)) == 0, "found %s", toBig(z))
			tt.MustEqual(tc.limbs, z.Len())
			tt.MustEqual(before, tc.src.Limbs())

			inPlace := fromLimbs(before...)
			tt.MustOK(inPlace.Lsh(inPlace, tc.shift))
			tt.MustEqual(z.Limbs(), inPlace.Limbs())
		})
	}
}

func TestLshGrowsSourceInPlace(t *testing.T) {
	tt := assert.WrapTB(t)
	x := fromLimbs(0xC0000000)
	tt.MustOK(x.Lsh(x, 2))
	tt.MustEqual([]uint32{0, 3}, x.Limbs())
}

func TestMul(t *testing.T) {
	for idx, tc := range []struct {
		a, b string
	}{
		{"0", "0"},
		{"0", "12345"},
		{"12345", "0"},
		{"1", "1"},
		{"0xFFFFFFFF", "0xFFFFFFFF"},
		{"0xFFFFFFFFFFFFFFFF", "0xFFFFFFFFFFFFFFFF"},
		{"354224848179261915075", "354224848179261915075"},
		{"0x10000000000000000", "3"},
	} {
		t.Run(fmt.Sprintf("%d/%s*%s", idx, tc.a, tc.b), func(t *testing.T) {
			tt := assert.WrapTB(t)
			a, b := fromBig(bigs(tc.a)), fromBig(bigs(tc.b))
			want := new(big.Int).Mul(bigs(tc.a), bigs(tc.b))

			z := fromLimbs(1)
			tt.MustOK(z.Mul(a, b))
			tt.MustAssert(toBig(z).Cmp(want) == 0, "found %s, expected %s", toBig(z), want)
			tt.MustAssert(z.Len() == 1 || z.limbs[z.Len()-1] != 0, "result not trimmed: %v", z.Limbs())
		})
	}
}

func TestMulAliasing(t *testing.T) {
	tt := assert.WrapTB(t)
	x := fromLimbs(0xFFFFFFFF, 1)
	want := new(big.Int).Mul(toBig(x), toBig(x))
	tt.MustOK(x.Mul(x, x))
	tt.MustAssert(toBig(x).Cmp(want) == 0, "x*x found %s", toBig(x))

	a, b := fromLimbs(6), fromLimbs(7)
	tt.MustOK(a.Mul(a, b))
	tt.MustEqual([]uint32{42}, a.Limbs())
	tt.MustEqual([]uint32{7}, b.Limbs())

	a, b = fromLimbs(6), fromLimbs(7)
	tt.MustOK(b.Mul(a, b))
	tt.MustEqual([]uint32{42}, b.Limbs())
	tt.MustEqual([]uint32{6}, a.Limbs())
}

func TestMulAllocationFailure(t *testing.T) {
	t.Run("operands too wide", func(t *testing.T) {
		tt := assert.WrapTB(t)
		z, err := NewWithAllocator(1, HeapAllocator{MaxLimbs: 2})
		tt.MustOK(err)
		err = z.Mul(fromLimbs(1, 2), fromLimbs(3, 4))
		tt.MustAssert(apperrors.IsAllocationFailure(err), err)
		tt.MustEqual(1, z.Len())
	})

	t.Run("carry limb over the limit keeps destination", func(t *testing.T) {
		tt := assert.WrapTB(t)
		z, err := NewWithAllocator(1, HeapAllocator{MaxLimbs: 4})
		tt.MustOK(err)
		tt.MustOK(z.SetUint64(12345))

		// The product needs 3 limbs, the accumulator needs 2+2+1.
		err = z.Mul(fromLimbs(1, 1), fromLimbs(1, 1))
		tt.MustAssert(apperrors.IsAllocationFailure(err), err)
		tt.MustEqual([]uint32{12345}, z.Limbs())

		var arith apperrors.ArithmeticError
		tt.MustAssert(errors.As(err, &arith), err)
		tt.MustEqual("mul", arith.Op)
	})

	t.Run("aliased destination keeps value", func(t *testing.T) {
		tt := assert.WrapTB(t)
		z, err := NewWithAllocator(2, HeapAllocator{MaxLimbs: 4})
		tt.MustOK(err)
		z.limbs[0], z.limbs[1] = 1, 1
		tt.MustAssert(apperrors.IsAllocationFailure(z.Mul(z, z)))
		tt.MustEqual([]uint32{1, 1}, z.Limbs())
	})

	t.Run("limit with room for the carry limb succeeds", func(t *testing.T) {
		tt := assert.WrapTB(t)
		z, err := NewWithAllocator(1, HeapAllocator{MaxLimbs: 5})
		tt.MustOK(err)
		tt.MustOK(z.Mul(fromLimbs(1, 1), fromLimbs(1, 1)))
		tt.MustEqual([]uint32{1, 2, 1}, z.Limbs())
	})
}

func TestInvalidOperands(t *testing.T) {
	freed := fromLimbs(1)
	_ = freed.Free()
	var absent *BigNum

	for name, op := range map[string]func() error{
		"add freed":  func() error { return fromLimbs(0).Add(freed, fromLimbs(1)) },
		"add nil":    func() error { return fromLimbs(0).Add(fromLimbs(1), absent) },
		"sub dest":   func() error { return freed.Sub(fromLimbs(1), fromLimbs(1)) },
		"lsh nil":    func() error { return absent.Lsh(fromLimbs(1), 1) },
		"mul freed":  func() error { return fromLimbs(0).Mul(freed, fromLimbs(2)) },
		"copy freed": func() error { return fromLimbs(0).Set(freed) },
	} {
		t.Run(name, func(t *testing.T) {
			tt := assert.WrapTB(t)
			err := op()
			tt.MustAssert(apperrors.IsInvalidOperand(err), err)
		})
	}
}
