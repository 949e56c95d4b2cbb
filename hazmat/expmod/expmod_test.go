package expmod_test

import (
	"math/big"
	"testing"

	"pgregory.net/rapid"

	"github.com/bsdphk/PHC/hazmat/expmod"
)

// small, well-known primes: big enough to have nontrivial structure, small
// enough that fast/slow path tests run in no time.
var (
	testP = big.NewInt(101)
	testQ = big.NewInt(103)
	testN = new(big.Int).Mul(testP, testQ) // 10403
)

func TestExtendedEuclideanBezout(t *testing.T) {
	x, y := expmod.ExtendedEuclidean(testP, testQ)

	// a*x + b*y == gcd(a,b) == 1 for coprime p, q.
	lhs := new(big.Int).Add(
		new(big.Int).Mul(testP, x),
		new(big.Int).Mul(testQ, y),
	)
	if lhs.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("p*x + q*y = %s, want 1", lhs)
	}
}

// TestCRTIdempotentsSumToOne checks the invariant catfish.py's
// Catfish.__init__ relies on: ep + eq ≡ 1 (mod n).
func TestCRTIdempotentsSumToOne(t *testing.T) {
	e := expmod.NewCRT(testP, testQ)
	_ = e
	x, y := expmod.ExtendedEuclidean(testP, testQ)
	ep := new(big.Int).Mul(x, testP)
	eq := new(big.Int).Mul(y, testQ)
	sum := new(big.Int).Mod(new(big.Int).Add(ep, eq), testN)
	if sum.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("(ep+eq) mod n = %s, want 1", sum)
	}
}

func TestFastExpMatchesSlowExp(t *testing.T) {
	slow := expmod.New(testN)
	fast := expmod.NewCRT(testP, testQ)

	rapid.Check(t, func(t *rapid.T) {
		g := rapid.Int64Range(2, 10402).Draw(t, "g")
		k := rapid.Int64Range(0, 1<<20).Draw(t, "k")

		gg := big.NewInt(g)
		kk := big.NewInt(k)

		want := slow.Exp(gg, kk)
		got := fast.Exp(gg, kk)
		if want.Cmp(got) != 0 {
			t.Fatalf("fastExp(%d, %d) = %s, want %s", g, k, got, want)
		}
	})
}

func TestExpDeterministic(t *testing.T) {
	e := expmod.NewCRT(testP, testQ)
	a := e.Exp(big.NewInt(7), big.NewInt(12345))
	b := e.Exp(big.NewInt(7), big.NewInt(12345))
	if a.Cmp(b) != 0 {
		t.Fatalf("Exp is not deterministic: %s != %s", a, b)
	}
}

func TestHasCRT(t *testing.T) {
	if expmod.New(testN).HasCRT() {
		t.Fatal("New should not report HasCRT")
	}
	if !expmod.NewCRT(testP, testQ).HasCRT() {
		t.Fatal("NewCRT should report HasCRT")
	}
}

func TestModulus(t *testing.T) {
	e := expmod.NewCRT(testP, testQ)
	if e.Modulus().Cmp(testN) != 0 {
		t.Fatalf("Modulus() = %s, want %s", e.Modulus(), testN)
	}
}
