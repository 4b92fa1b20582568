package ringq

import (
	"math/big"
	"testing"
)

func TestRingReductionMatchesEuclideanDivision(t *testing.T) {
	q := big.NewInt(101)
	const N = 8
	r := NewRing(q, N)

	// Build X^9 + 3*X^2 + 1, degree 9 >= N=8.
	p := ZeroPoly(q)
	p.Term(One(q), 9)
	p.Term(NewFieldElt(big.NewInt(3), q), 2)
	p.Term(One(q), 0)

	folded := FromPoly(r, p)

	// modulus X^8 + 1
	modulus := ZeroPoly(q)
	modulus.Term(One(q), N)
	modulus.Term(One(q), 0)
	_, remainder, err := p.DivMod(modulus)
	if err != nil {
		t.Fatalf("divmod: %v", err)
	}

	for i := 0; i < N; i++ {
		if !folded.Coeff(i).Equal(remainder.Coeff(i)) {
			t.Fatalf("fold-reduction disagrees with Euclidean division at coeff %d: %s vs %s",
				i, folded.Coeff(i).ToBigUint(), remainder.Coeff(i).ToBigUint())
		}
	}
}

func TestRingArithmetic(t *testing.T) {
	q := big.NewInt(101)
	r := NewRing(q, 4)
	a := NewRingElt(r, feSlice(q, 1, 2, 3, 4))
	b := NewRingElt(r, feSlice(q, 4, 3, 2, 1))
	sum := a.Add(b)
	for i := 0; i < 4; i++ {
		if sum.Coeff(i).ToBigUint().Int64() != 5 {
			t.Fatalf("sum coeff %d = %s, want 5", i, sum.Coeff(i).ToBigUint())
		}
	}
	diff := sum.Sub(b)
	if !diff.Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestRingMulWrapsWithSignFlip(t *testing.T) {
	q := big.NewInt(101)
	r := NewRing(q, 4) // X^4 + 1
	x3 := NewRingElt(r, feSlice(q, 0, 0, 0, 1))
	x2 := NewRingElt(r, feSlice(q, 0, 0, 1, 0))
	prod := x3.Mul(x2) // X^5 = X * X^4 = -X
	want := NewRingElt(r, feSlice(q, 0, 100, 0, 0)) // -1 mod 101 == 100
	if !prod.Equal(want) {
		t.Fatalf("X^3 * X^2 = %s, want %s", prod, want)
	}
}

func TestRingEltByteRoundTrip(t *testing.T) {
	q := big.NewInt(101)
	r := NewRing(q, 4)
	e := NewRingElt(r, feSlice(q, 9, 8, 7, 6))
	b := e.Bytes()
	if len(b) != e.ByteLen() {
		t.Fatalf("byte length mismatch: %d vs %d", len(b), e.ByteLen())
	}
}

func TestRingEltFromBigUintEmbedsConstant(t *testing.T) {
	q := big.NewInt(101)
	r := NewRing(q, 4)
	e := RingEltFromBigUint(r, big.NewInt(7))
	if e.Coeff(0).ToBigUint().Int64() != 7 {
		t.Fatalf("constant coeff = %s, want 7", e.Coeff(0).ToBigUint())
	}
	for i := 1; i < 4; i++ {
		if !e.Coeff(i).IsZero() {
			t.Fatalf("expected zero coeff at %d", i)
		}
	}
}
