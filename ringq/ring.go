package ringq

import (
	"fmt"
	"math/big"
)

// Ring describes the cyclotomic quotient R_q = Z_q[X]/(X^N+1), N a power of
// two. It holds no per-element state; it is a lightweight factory/context
// that every RingElt constructor needs to know how to reduce.
type Ring struct {
	Q *big.Int
	N int
}

// NewRing validates and constructs a ring descriptor. N must be a power of
// two; this is a configuration error (ParameterViolation), not a runtime
// condition, so it panics like the rest of the construction-time checks in
// this module.
func NewRing(q *big.Int, n int) Ring {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("ringq: N=%d is not a power of two", n))
	}
	return Ring{Q: new(big.Int).Set(q), N: n}
}

// RingElt is an element of R_q: a polynomial of degree < N over Z_q, always
// kept in reduced form.
type RingElt struct {
	ring Ring
	p    Poly
}

// Ring returns the ring this element belongs to.
func (e RingElt) Ring() Ring { return e.ring }

// reduce folds a polynomial of degree possibly >= N into degree < N by the
// identity X^N == -1, i.e. coefficient c_i for i>=N is subtracted from
// coefficient c_{i-N}. This runs in linear time and is equivalent to
// Euclidean division by X^N+1 (spec §4.3).
func reduce(r Ring, p Poly) Poly {
	out := make([]FieldElt, r.N)
	for i := 0; i < r.N; i++ {
		out[i] = Zero(r.Q)
	}
	for i, c := range p.Coeffs {
		if c.IsZero() {
			continue
		}
		idx := i % r.N
		// Each full wrap around X^N = -1 flips the sign once.
		wraps := i / r.N
		if wraps%2 == 1 {
			out[idx] = out[idx].Sub(c)
		} else {
			out[idx] = out[idx].Add(c)
		}
	}
	return Poly{q: r.Q, Coeffs: out}
}

// FromPoly reduces an arbitrary-degree polynomial into a RingElt of ring r.
func FromPoly(r Ring, p Poly) RingElt {
	return RingElt{ring: r, p: reduce(r, p)}
}

// NewRingElt builds a ring element of ring r directly from N coefficients
// (lowest degree first); fewer than N coefficients are zero-padded, more
// than N are folded per reduce.
func NewRingElt(r Ring, coeffs []FieldElt) RingElt {
	return FromPoly(r, NewPoly(r.Q, coeffs))
}

// RingEltFromBigUint embeds an arbitrary-precision integer as the constant
// term of a ring element of r (the canonical Z_q -> R_q embedding).
func RingEltFromBigUint(r Ring, v *big.Int) RingElt {
	return NewRingElt(r, []FieldElt{FromBigUint(v, r.Q)})
}

// ZeroRingElt returns the additive identity of r.
func ZeroRingElt(r Ring) RingElt {
	return RingElt{ring: r, p: ZeroPoly(r.Q)}
}

// OneRingElt returns the multiplicative identity of r.
func OneRingElt(r Ring) RingElt {
	return RingElt{ring: r, p: IdentityPoly(r.Q)}
}

func (e RingElt) sameRing(o RingElt) {
	if e.ring.N != o.ring.N || e.ring.Q.Cmp(o.ring.Q) != 0 {
		panic("ringq: ring element from a different ring")
	}
}

// Add returns e + o, reduced mod X^N+1.
func (e RingElt) Add(o RingElt) RingElt {
	e.sameRing(o)
	return FromPoly(e.ring, e.p.Add(o.p))
}

// Sub returns e - o, reduced mod X^N+1.
func (e RingElt) Sub(o RingElt) RingElt {
	e.sameRing(o)
	return FromPoly(e.ring, e.p.Sub(o.p))
}

// Mul returns e * o, reduced mod X^N+1.
func (e RingElt) Mul(o RingElt) RingElt {
	e.sameRing(o)
	return FromPoly(e.ring, e.p.Mul(o.p))
}

// Neg returns -e.
func (e RingElt) Neg() RingElt {
	return RingElt{ring: e.ring, p: e.p.Neg()}
}

// ScalarMul returns e with every coefficient multiplied by s.
func (e RingElt) ScalarMul(s FieldElt) RingElt {
	return RingElt{ring: e.ring, p: e.p.ScalarMul(s)}
}

// IsZero reports whether e is the additive identity.
func (e RingElt) IsZero() bool { return e.p.IsZero() }

// Equal reports whether e and o represent the same ring element.
func (e RingElt) Equal(o RingElt) bool {
	if e.ring.N != o.ring.N || e.ring.Q.Cmp(o.ring.Q) != 0 {
		return false
	}
	for i := 0; i < e.ring.N; i++ {
		if !e.Coeff(i).Equal(o.Coeff(i)) {
			return false
		}
	}
	return true
}

// Coeff returns the coefficient of X^i, 0 <= i < N.
func (e RingElt) Coeff(i int) FieldElt {
	return e.p.Coeff(i)
}

// NormL1 returns the L1 norm of e's symmetric coefficient lift.
func (e RingElt) NormL1() *big.Int { return e.p.NormL1() }

// NormL2Squared returns the squared L2 norm of e's symmetric coefficient
// lift; compare against B^2 to avoid integer square roots.
func (e RingElt) NormL2Squared() *big.Int { return e.p.NormL2Squared() }

// NormMax returns the L-infinity norm of e's symmetric coefficient lift.
func (e RingElt) NormMax() *big.Int { return e.p.NormMax() }

// ByteLen returns the fixed per-coefficient byte length times N, the
// serialized size of a single ring element.
func (e RingElt) ByteLen() int {
	return ByteLen(e.ring.Q) * e.ring.N
}

// Bytes serializes e as the concatenation of its N coefficients' canonical
// big-endian encodings, lowest degree first.
func (e RingElt) Bytes() []byte {
	out := make([]byte, 0, e.ByteLen())
	for i := 0; i < e.ring.N; i++ {
		out = append(out, e.Coeff(i).Bytes()...)
	}
	return out
}

// SampleUniformRingElt draws a uniformly random ring element of r, each
// coefficient independently uniform in Z_q, from rng.
func SampleUniformRingElt(r Ring, rng uniformSource) (RingElt, error) {
	coeffs := make([]FieldElt, r.N)
	for i := 0; i < r.N; i++ {
		c, err := SampleUniform(r.Q, rng)
		if err != nil {
			return RingElt{}, fmt.Errorf("ringq: sample ring element: %w", err)
		}
		coeffs[i] = c
	}
	return NewRingElt(r, coeffs), nil
}

// String renders e via its underlying polynomial, for debug printing.
func (e RingElt) String() string {
	return e.p.String()
}
