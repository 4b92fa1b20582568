package challenge

import (
	"math/big"
	"testing"

	"lattice-vcs/latmatrix"
	"lattice-vcs/ringq"
)

func testTranscript(r ringq.Ring) latmatrix.Vector {
	return latmatrix.Vector{
		ringq.RingEltFromBigUint(r, big.NewInt(7)),
		ringq.RingEltFromBigUint(r, big.NewInt(11)),
	}
}

func TestSampleDeterministic(t *testing.T) {
	r := ringq.NewRing(big.NewInt(2013265921), 64)
	transcript := testTranscript(r)
	a, err := Sample(r, transcript, 36)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := Sample(r, transcript, 36)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("two samples of the same transcript diverged")
	}
}

func TestSampleNorms(t *testing.T) {
	r := ringq.NewRing(big.NewInt(2013265921), 64)
	transcript := testTranscript(r)
	const kappa = 36
	d, err := Sample(r, transcript, kappa)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if d.NormL1().Cmp(big.NewInt(kappa)) != 0 {
		t.Fatalf("L1 norm = %s, want %d", d.NormL1(), kappa)
	}
	if d.NormMax().Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("Linf norm = %s, want 1", d.NormMax())
	}

	nonzero := 0
	for i := 0; i < r.N; i++ {
		c := d.Coeff(i)
		if !c.IsZero() {
			nonzero++
			if c.ToBigUint().Cmp(big.NewInt(1)) != 0 {
				t.Fatalf("nonzero coefficient at %d is %s, want 1", i, c.ToBigUint())
			}
		}
	}
	if nonzero != kappa {
		t.Fatalf("nonzero coefficient count = %d, want %d", nonzero, kappa)
	}
}

func TestSampleDifferentTranscriptsDiverge(t *testing.T) {
	r := ringq.NewRing(big.NewInt(2013265921), 64)
	t1 := latmatrix.Vector{ringq.RingEltFromBigUint(r, big.NewInt(1))}
	t2 := latmatrix.Vector{ringq.RingEltFromBigUint(r, big.NewInt(2))}
	a, err := Sample(r, t1, 36)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := Sample(r, t2, 36)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("different transcripts produced the same challenge")
	}
}

func TestSampleKappaExceedsNRejected(t *testing.T) {
	r := ringq.NewRing(big.NewInt(101), 8)
	if _, err := Sample(r, testTranscript(r), 9); err == nil {
		t.Fatalf("expected error for kappa=9 > N=8")
	}
}

func TestSampleZeroTranscriptS5(t *testing.T) {
	// Scenario S5: for a canonical zero transcript, the sampled challenge
	// has exactly 36 nonzero coefficients, each equal to 1.
	r := ringq.NewRing(big.NewInt(2013265921), 1024)
	zeroTranscript := latmatrix.Vector{ringq.ZeroRingElt(r)}
	d, err := Sample(r, zeroTranscript, 36)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if d.NormL1().Cmp(big.NewInt(36)) != 0 {
		t.Fatalf("L1 = %s, want 36", d.NormL1())
	}
	if d.NormMax().Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("Linf = %s, want 1", d.NormMax())
	}
}
