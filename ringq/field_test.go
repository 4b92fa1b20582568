package ringq

import (
	"bytes"
	"math/big"
	"testing"
)

func q101() *big.Int { return big.NewInt(101) }

func TestFieldAddSubNeg(t *testing.T) {
	q := q101()
	a := NewFieldElt(big.NewInt(60), q)
	b := NewFieldElt(big.NewInt(80), q)
	sum := a.Add(b)
	if sum.ToBigUint().Cmp(big.NewInt(39)) != 0 {
		t.Fatalf("60+80 mod 101 = %s, want 39", sum.ToBigUint())
	}
	diff := sum.Sub(b)
	if !diff.Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
	if neg := a.Neg().Add(a); !neg.IsZero() {
		t.Fatalf("a + (-a) != 0")
	}
}

func TestFieldMulInverse(t *testing.T) {
	q := q101()
	a := NewFieldElt(big.NewInt(17), q)
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	if prod := a.Mul(inv); !prod.Equal(One(q)) {
		t.Fatalf("a * a^-1 != 1, got %s", prod.ToBigUint())
	}
}

func TestFieldInverseOfZero(t *testing.T) {
	q := q101()
	if _, err := Zero(q).Inverse(); err == nil {
		t.Fatalf("expected error inverting zero")
	}
}

func TestFieldSymmetric(t *testing.T) {
	q := q101()
	small := NewFieldElt(big.NewInt(3), q)
	if small.Symmetric().Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("symmetric(3) = %s, want 3", small.Symmetric())
	}
	large := NewFieldElt(big.NewInt(100), q) // 100 > (101-1)/2=50
	if large.Symmetric().Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("symmetric(100) mod 101 = %s, want -1", large.Symmetric())
	}
}

func TestFieldByteRoundTrip(t *testing.T) {
	q := q101()
	a := NewFieldElt(big.NewInt(42), q)
	b := FromBytes(a.Bytes(), q)
	if !a.Equal(b) {
		t.Fatalf("byte round trip failed")
	}
}

func TestFieldSampleUniformDeterministic(t *testing.T) {
	q := q101()
	src := bytes.NewReader([]byte{5, 6, 7, 8, 9, 10})
	e, err := SampleUniform(q, src)
	if err != nil {
		t.Fatalf("sample uniform: %v", err)
	}
	if e.ToBigUint().Sign() < 0 || e.ToBigUint().Cmp(q) >= 0 {
		t.Fatalf("sampled element out of range: %s", e.ToBigUint())
	}
}

func TestByteLen(t *testing.T) {
	// q = 101 needs 7 bits -> 1 byte.
	if got := ByteLen(q101()); got != 1 {
		t.Fatalf("ByteLen(101) = %d, want 1", got)
	}
	// BabyBear prime q = 2013265921 needs 31 bits -> 4 bytes.
	babyBear := big.NewInt(2013265921)
	if got := ByteLen(babyBear); got != 4 {
		t.Fatalf("ByteLen(babybear) = %d, want 4", got)
	}
}
