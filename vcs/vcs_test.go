package vcs

import (
	"crypto/rand"
	"math/big"
	"testing"

	"lattice-vcs/latmatrix"
	"lattice-vcs/ringq"
)

func smallParams() Params {
	return Params{
		Q:     big.NewInt(101),
		N:     64,
		K:     3,
		Nrows: 1,
		L:     1,
		Beta:  1,
		Kappa: 36,
	}
}

func babyBearParams() Params {
	return Params{
		Q:     big.NewInt(2013265921),
		N:     1024,
		K:     3,
		Nrows: 1,
		L:     1,
		Beta:  1,
		Kappa: 36,
	}
}

func TestParamsValidateRejectsBadShapes(t *testing.T) {
	p := smallParams()
	p.K = p.Nrows + p.L // k must be > n+l
	if err := p.Validate(); err == nil {
		t.Fatalf("expected validation error for k <= n+l")
	}

	p2 := smallParams()
	p2.Kappa = p2.N + 1
	if err := p2.Validate(); err == nil {
		t.Fatalf("expected validation error for kappa > N")
	}

	p3 := smallParams()
	p3.N = 3 // not a power of two
	if err := p3.Validate(); err == nil {
		t.Fatalf("expected validation error for non-power-of-two N")
	}
}

func TestNewPanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on invalid params")
		}
	}()
	p := smallParams()
	p.L = 0
	New(p)
}

// TestScenarioS1CommitZeroMessageOpens mirrors S1: N=64, q=101, k=3, n=1,
// l=1, beta=1, kappa=36, message x=[0] opens, and c2 equals x once the
// A2*r term is unwound (spec §8 S1).
func TestScenarioS1CommitZeroMessageOpens(t *testing.T) {
	v := New(smallParams())
	x := latmatrix.Vector{ringq.RingEltFromBigUint(v.Ring, big.NewInt(0))}

	alpha, c, opening, err := v.Commit(x, rand.Reader)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !v.Open(c, alpha, x, opening.R) {
		t.Fatalf("open failed for honestly-generated commitment")
	}

	_, c2, err := splitCommitment(c, v.Params.Nrows, v.Params.L)
	if err != nil {
		t.Fatalf("split commitment: %v", err)
	}
	_, a2, err := alpha.SplitVertical(v.Params.Nrows, v.Params.L)
	if err != nil {
		t.Fatalf("split alpha: %v", err)
	}
	a2r, err := a2.MulVector(opening.R)
	if err != nil {
		t.Fatalf("A2*r: %v", err)
	}
	unwound, err := c2.Sub(a2r)
	if err != nil {
		t.Fatalf("c2 - A2*r: %v", err)
	}
	if !unwound.Equal(x) {
		t.Fatalf("c2 - A2*r != x for zero message")
	}
}

// TestScenarioS2TamperedMessageFailsOpen mirrors S2: committing to x=[1] and
// attempting to open against a different x'=[2] must fail (binding).
func TestScenarioS2TamperedMessageFailsOpen(t *testing.T) {
	v := New(smallParams())
	x := latmatrix.Vector{ringq.RingEltFromBigUint(v.Ring, big.NewInt(1))}
	xPrime := latmatrix.Vector{ringq.RingEltFromBigUint(v.Ring, big.NewInt(2))}

	alpha, c, opening, err := v.Commit(x, rand.Reader)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if v.Open(c, alpha, xPrime, opening.R) {
		t.Fatalf("open succeeded against a tampered message")
	}
	// the honest opening must still succeed
	if !v.Open(c, alpha, x, opening.R) {
		t.Fatalf("open failed for the honest (untampered) message")
	}
}

// TestScenarioS3BabyBearRandomMessageOpens mirrors S3: the larger BabyBear
// field/degree parameter set with a random message.
func TestScenarioS3BabyBearRandomMessageOpens(t *testing.T) {
	v := New(babyBearParams())
	e, err := ringq.SampleUniformRingElt(v.Ring, rand.Reader)
	if err != nil {
		t.Fatalf("sample message: %v", err)
	}
	x := latmatrix.Vector{e}

	alpha, c, opening, err := v.Commit(x, rand.Reader)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !v.Open(c, alpha, x, opening.R) {
		t.Fatalf("open failed for BabyBear-parameter commitment")
	}
}

func TestOpenRejectsOutOfBoundRandomness(t *testing.T) {
	v := New(babyBearParams())
	x := latmatrix.Vector{ringq.RingEltFromBigUint(v.Ring, big.NewInt(0))}
	alpha, c, opening, err := v.Commit(x, rand.Reader)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	// Inflate one randomness component far past the bound; the commitment
	// will no longer match algebraically, but the norm check alone must
	// already be sufficient to reject (spec invariant: norm check precedes
	// the algebraic check). 1024 coefficients of 1,000,000 give a squared
	// L2 norm of about 1.0e15, above (4*theta*sqrt(N))^2 of about 7.9e12.
	huge := make([]ringq.FieldElt, v.Ring.N)
	for i := range huge {
		huge[i] = ringq.FromBigUint(big.NewInt(1000000), v.Params.Q)
	}
	tampered := append(latmatrix.Vector{}, opening.R...)
	tampered[0] = ringq.NewRingElt(v.Ring, huge)

	if v.Open(c, alpha, x, tampered) {
		t.Fatalf("open accepted randomness far outside the declared bound")
	}
}

func TestCommitPanicsOnMessageLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on message length mismatch")
		}
	}()
	v := New(smallParams())
	wrong := latmatrix.Vector{
		ringq.RingEltFromBigUint(v.Ring, big.NewInt(0)),
		ringq.RingEltFromBigUint(v.Ring, big.NewInt(1)),
	}
	_, _, _, _ = v.Commit(wrong, rand.Reader)
}

func TestSizesReportIsPositiveAndScalesWithK(t *testing.T) {
	v := New(smallParams())
	s := v.Sizes()
	if s.CommitmentBytes <= 0 || s.PublicParamBytes <= 0 || s.SecretBytes <= 0 {
		t.Fatalf("expected strictly positive sizes, got %+v", s)
	}

	wider := smallParams()
	wider.K = 6
	vw := New(wider)
	sw := vw.Sizes()
	if sw.PublicParamBytes <= s.PublicParamBytes || sw.SecretBytes <= s.SecretBytes {
		t.Fatalf("expected sizes to grow with k: base=%+v wider=%+v", s, sw)
	}
}

func TestThetaIsPositiveAndGrowsWithKappa(t *testing.T) {
	p := smallParams()
	base := p.Theta()
	if base <= 0 {
		t.Fatalf("theta must be positive, got %v", base)
	}
	p.Kappa *= 2
	if p.Theta() <= base {
		t.Fatalf("theta should grow with kappa")
	}
}
