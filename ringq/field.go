// Package ringq implements the scalar field Z_q and the cyclotomic
// polynomial ring R_q = Z_q[X]/(X^N+1) that the commitment scheme is built
// over.
package ringq

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// FieldElt is an element of Z_q held in canonical representation [0, q).
// The zero value is not meaningful on its own: every FieldElt carries a
// modulus so arithmetic must go through the constructors below or methods
// on an existing element (which reuse its modulus).
type FieldElt struct {
	v *big.Int
	q *big.Int
}

// NewFieldElt reduces v modulo q and returns the resulting element.
// Panics if q is not positive; this is a programmer error, not a runtime
// condition callers should expect to handle.
func NewFieldElt(v *big.Int, q *big.Int) FieldElt {
	if q.Sign() <= 0 {
		panic("ringq: modulus must be positive")
	}
	r := new(big.Int).Mod(v, q)
	return FieldElt{v: r, q: new(big.Int).Set(q)}
}

// Zero returns the additive identity in the field of modulus q.
func Zero(q *big.Int) FieldElt {
	return FieldElt{v: big.NewInt(0), q: new(big.Int).Set(q)}
}

// One returns the multiplicative identity in the field of modulus q.
func One(q *big.Int) FieldElt {
	return NewFieldElt(big.NewInt(1), q)
}

// Modulus returns q for this element.
func (a FieldElt) Modulus() *big.Int { return new(big.Int).Set(a.q) }

// IsZero reports whether a is the additive identity.
func (a FieldElt) IsZero() bool { return a.v.Sign() == 0 }

func (a FieldElt) sameField(b FieldElt) {
	if a.q.Cmp(b.q) != 0 {
		panic("ringq: field element modulus mismatch")
	}
}

// Add returns a + b mod q.
func (a FieldElt) Add(b FieldElt) FieldElt {
	a.sameField(b)
	return NewFieldElt(new(big.Int).Add(a.v, b.v), a.q)
}

// Sub returns a - b mod q.
func (a FieldElt) Sub(b FieldElt) FieldElt {
	a.sameField(b)
	return NewFieldElt(new(big.Int).Sub(a.v, b.v), a.q)
}

// Mul returns a * b mod q.
func (a FieldElt) Mul(b FieldElt) FieldElt {
	a.sameField(b)
	return NewFieldElt(new(big.Int).Mul(a.v, b.v), a.q)
}

// Neg returns -a mod q.
func (a FieldElt) Neg() FieldElt {
	return NewFieldElt(new(big.Int).Neg(a.v), a.q)
}

// Inverse returns the multiplicative inverse of a. Returns an error if a is
// zero, since the field has no inverse for the additive identity.
func (a FieldElt) Inverse() (FieldElt, error) {
	if a.IsZero() {
		return FieldElt{}, fmt.Errorf("ringq: inverse of zero element")
	}
	inv := new(big.Int).ModInverse(a.v, a.q)
	if inv == nil {
		return FieldElt{}, fmt.Errorf("ringq: %s has no inverse mod %s", a.v, a.q)
	}
	return FieldElt{v: inv, q: new(big.Int).Set(a.q)}, nil
}

// Equal reports whether a and b are the same residue under the same
// modulus.
func (a FieldElt) Equal(b FieldElt) bool {
	return a.q.Cmp(b.q) == 0 && a.v.Cmp(b.v) == 0
}

// ToBigUint returns the canonical [0, q) representative.
func (a FieldElt) ToBigUint() *big.Int {
	return new(big.Int).Set(a.v)
}

// FromBigUint constructs a field element of modulus q from an
// arbitrary-precision integer, reducing it into canonical form.
func FromBigUint(v *big.Int, q *big.Int) FieldElt {
	return NewFieldElt(v, q)
}

// Symmetric returns the centered (symmetric) representative of a: the value
// itself if it is <= (q-1)/2, otherwise the value minus q. Used by norm
// computations, which operate over Z rather than Z_q.
func (a FieldElt) Symmetric() *big.Int {
	half := new(big.Int).Rsh(new(big.Int).Sub(a.q, big.NewInt(1)), 1)
	if a.v.Cmp(half) <= 0 {
		return new(big.Int).Set(a.v)
	}
	return new(big.Int).Sub(a.v, a.q)
}

// ByteLen returns the fixed byte length ceil(log2(q)/8) used for
// serialization of elements of this field.
func ByteLen(q *big.Int) int {
	bits := q.BitLen()
	return (bits + 7) / 8
}

// Bytes serializes a into a big-endian byte slice of ByteLen(q) bytes.
func (a FieldElt) Bytes() []byte {
	n := ByteLen(a.q)
	buf := make([]byte, n)
	a.v.FillBytes(buf)
	return buf
}

// FromBytes deserializes a big-endian byte slice into a field element of
// modulus q.
func FromBytes(b []byte, q *big.Int) FieldElt {
	return NewFieldElt(new(big.Int).SetBytes(b), q)
}

// uniformSource abstracts the byte source used for rejection sampling so
// that both crypto/rand.Reader and the deterministic ChaCha stream
// (chacharng.RNG) can feed this routine.
type uniformSource = io.Reader

// SampleUniform draws a uniformly random field element of modulus q from
// rng, using rejection sampling over ByteLen(q) bytes to avoid modulo bias.
// rng may be crypto/rand.Reader or any deterministic byte source.
func SampleUniform(q *big.Int, rng uniformSource) (FieldElt, error) {
	if rng == nil {
		rng = rand.Reader
	}
	n := ByteLen(q)
	buf := make([]byte, n)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return FieldElt{}, fmt.Errorf("ringq: sample uniform: %w", err)
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(q) < 0 {
			return FieldElt{v: v, q: new(big.Int).Set(q)}, nil
		}
	}
}
