// Package expmod computes g^k mod n in the large multiplicative group
// Catfish's memory-hard schedule works in, optionally taking the fast CRT
// path of spec.md §4.3 when the factorization of n is known.
package expmod

import "math/big"

// Exponentiator evaluates g^k mod n for a fixed modulus. When constructed
// with the factors of n via NewCRT, it uses the Chinese Remainder Theorem
// fast path; otherwise it falls back to direct modular exponentiation.
type Exponentiator struct {
	n *big.Int

	// CRT fast-path state, all nil when unset.
	p, q   *big.Int
	pMinus *big.Int // p-1
	qMinus *big.Int // q-1
	ep, eq *big.Int
}

// New returns an Exponentiator for modulus n with no known factorization:
// Exp falls back to direct exponentiation mod n.
func New(n *big.Int) *Exponentiator {
	return &Exponentiator{n: new(big.Int).Set(n)}
}

// NewCRT returns an Exponentiator for modulus n = p*q, using the Chinese
// Remainder Theorem fast path. p and q must be the prime factors of n.
//
// Grounded on catfish.py's Catfish.__init__: ep, eq are derived from the
// extended Euclidean algorithm on (p, q) exactly as there, and satisfy
// ep + eq ≡ 1 (mod n).
func NewCRT(p, q *big.Int) *Exponentiator {
	n := new(big.Int).Mul(p, q)
	x, y := ExtendedEuclidean(p, q)

	// ep = x*p, eq = y*q (spec.md §4.3 / catfish.py's __ep, __eq).
	ep := new(big.Int).Mul(x, p)
	eq := new(big.Int).Mul(y, q)

	return &Exponentiator{
		n:      n,
		p:      new(big.Int).Set(p),
		q:      new(big.Int).Set(q),
		pMinus: new(big.Int).Sub(p, big.NewInt(1)),
		qMinus: new(big.Int).Sub(q, big.NewInt(1)),
		ep:     ep,
		eq:     eq,
	}
}

// Modulus returns n.
func (e *Exponentiator) Modulus() *big.Int {
	return new(big.Int).Set(e.n)
}

// HasCRT reports whether Exp will use the CRT fast path.
func (e *Exponentiator) HasCRT() bool {
	return e.p != nil
}

// Exp computes g^k mod n.
func (e *Exponentiator) Exp(g, k *big.Int) *big.Int {
	if e.HasCRT() {
		return e.fastExp(g, k)
	}
	return e.slowExp(g, k)
}

// slowExp computes g^k mod n directly — spec.md §4.3's slow path, used when
// the factorization of n is unknown.
func (e *Exponentiator) slowExp(g, k *big.Int) *big.Int {
	return new(big.Int).Exp(g, k, e.n)
}

// fastExp computes g^k mod n via the CRT shortcut:
//
//	r_p = (g mod p)^(k_p) mod p
//	r_q = (g mod q)^(k_q) mod q
//	result = (r_p*eq + r_q*ep) mod n
//
// where k_p ≡ k (mod p-1) and k_q ≡ k (mod q-1). For k > 0 the reduced
// exponents are taken in [1, p-1] and [1, q-1] rather than from 0, so a g
// sharing a factor with n still gives 0 (not 0^0 = 1) in that component.
func (e *Exponentiator) fastExp(g, k *big.Int) *big.Int {
	kp := new(big.Int).Set(k)
	kq := new(big.Int).Set(k)
	if k.Sign() > 0 {
		one := big.NewInt(1)
		kp.Sub(k, one).Mod(kp, e.pMinus).Add(kp, one)
		kq.Sub(k, one).Mod(kq, e.qMinus).Add(kq, one)
	}

	rp := new(big.Int).Exp(g, kp, e.p)
	rq := new(big.Int).Exp(g, kq, e.q)

	result := new(big.Int).Mul(rp, e.eq)
	result.Add(result, new(big.Int).Mul(rq, e.ep))
	result.Mod(result, e.n)
	return result
}

// ExtendedEuclidean runs the iterative extended Euclidean algorithm on (a, b)
// and returns (x, y) such that a*x + b*y = gcd(a, b).
//
// Ported directly from catfish.py's extended_euclidean, which intentionally
// avoids recursion:
//
//	x, y, u, v := 0, 1, 1, 0
//	for a != 0 {
//	    q, r := b/a, b%a
//	    m, n := x-u*q, y-v*q
//	    b, a, x, y, u, v = a, r, u, v, m, n
//	}
//	return x, y
func ExtendedEuclidean(a, b *big.Int) (x, y *big.Int) {
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)

	x = big.NewInt(0)
	y = big.NewInt(1)
	u := big.NewInt(1)
	v := big.NewInt(0)

	zero := big.NewInt(0)
	q, r := new(big.Int), new(big.Int)

	for a.Cmp(zero) != 0 {
		q.QuoRem(b, a, r)

		m := new(big.Int).Sub(x, new(big.Int).Mul(u, q))
		n := new(big.Int).Sub(y, new(big.Int).Mul(v, q))

		b.Set(a)
		a.Set(r)
		x.Set(u)
		y.Set(v)
		u.Set(m)
		v.Set(n)
	}

	return x, y
}
