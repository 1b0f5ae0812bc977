package workload

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Fib computes F(base+index) for each item and checks the result against
// Cassini's identity, F(n-1)*F(n+1) - F(n)² = (-1)ⁿ.
type Fib struct {
	base uint64
}

// NewFib returns a Fibonacci workload starting at index base.
func NewFib(base int) *Fib {
	if base < 1 {
		base = 1
	}
	return &Fib{base: uint64(base)}
}

// Name implements Workload.
func (f *Fib) Name() string { return "fib" }

// Description implements Workload.
func (f *Fib) Description() string {
	return fmt.Sprintf("compute and verify F(%d+i) per item", f.base)
}

// Process implements Workload.
func (f *Fib) Process(index int) error {
	if index < 0 {
		return fmt.Errorf("negative index %d", index)
	}
	n := f.base + uint64(index)
	fn, fn1 := fastDoubling(n)
	if !cassini(n, fn, fn1) {
		return fmt.Errorf("F(%d) failed Cassini's identity", n)
	}
	return nil
}

// fastDoubling returns F(n) and F(n+1) using
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
func fastDoubling(n uint64) (*big.Int, *big.Int) {
	fk := big.NewInt(0)
	fk1 := big.NewInt(1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)

		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}
	return fk, fk1
}

// cassini checks F(n-1)*F(n+1) - F(n)² = (-1)ⁿ given F(n) and F(n+1).
func cassini(n uint64, fn, fn1 *big.Int) bool {
	if n == 0 {
		return fn.Sign() == 0 && fn1.Cmp(big.NewInt(1)) == 0
	}
	fnm1 := new(big.Int).Sub(fn1, fn)
	left := new(big.Int).Mul(fnm1, fn1)
	left.Sub(left, new(big.Int).Mul(fn, fn))
	want := int64(1)
	if n%2 == 1 {
		want = -1
	}
	return left.Cmp(big.NewInt(want)) == 0
}
