// Package vcs implements the top-level structured-lattice vector
// commitment API: parameter validation, Commit, Open, PublicParams, and
// (in proof.go) the Σ-protocol ProveOpening/VerifyOpeningProof pair.
package vcs

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"lattice-vcs/chacharng"
	"lattice-vcs/latmatrix"
	"lattice-vcs/ringq"
)

// Params holds the configuration of a VCS instance (spec §3). All fields
// are validated once, at construction, by Validate.
type Params struct {
	Q     *big.Int // ring modulus
	N     int       // ring degree, power of two
	K     int       // width of the commitment matrix, in ring elements
	Nrows int       // row count of the upper block A1 ("n" in spec notation)
	L     int       // dimension of the message space
	Beta  int       // L-infinity bound on the randomness vector r
	Kappa int       // L1 norm / sparsity of challenge polynomials
}

// Validate checks the construction-time invariants of spec §3:
// n>=1, l>=1, k>n+l, kappa<=N, beta>=1, N a power of two.
func (p Params) Validate() error {
	if p.Q == nil || p.Q.Sign() <= 0 {
		return fmt.Errorf("vcs: modulus Q must be positive")
	}
	if p.N <= 0 || p.N&(p.N-1) != 0 {
		return fmt.Errorf("vcs: N=%d must be a power of two", p.N)
	}
	if p.Nrows < 1 {
		return fmt.Errorf("vcs: n=%d must be >= 1", p.Nrows)
	}
	if p.L < 1 {
		return fmt.Errorf("vcs: l=%d must be >= 1", p.L)
	}
	if p.K <= p.Nrows+p.L {
		return fmt.Errorf("vcs: k=%d must be > n+l=%d", p.K, p.Nrows+p.L)
	}
	if p.Kappa > p.N {
		return fmt.Errorf("vcs: kappa=%d must be <= N=%d", p.Kappa, p.N)
	}
	if p.Beta < 1 {
		return fmt.Errorf("vcs: beta=%d must be >= 1", p.Beta)
	}
	return nil
}

// Theta returns the discrete-Gaussian standard deviation theta = 11 *
// kappa * beta * sqrt(k*N) (spec §3), as an unrounded float64.
func (p Params) Theta() float64 {
	return 11.0 * float64(p.Kappa) * float64(p.Beta) * math.Sqrt(float64(p.K)*float64(p.N))
}

// Alpha is the public (n+l, k) parameter matrix returned by commit and
// consumed by open/prove/verify.
type Alpha = latmatrix.Matrix

// Commitment is the (n+l)-length vector c = (c1, c2) returned by Commit.
type Commitment = latmatrix.Vector

// Opening holds the secret (x, r) pair a committer reveals to open a
// commitment.
type Opening struct {
	X latmatrix.Vector // message, length l
	R latmatrix.Vector // randomness, length k, each component in S_beta
}

// Vcs is the parameter holder and top-level API. It is immutable after
// construction and holds no other state, so it is safe to share across
// goroutines for reading (spec §5).
type Vcs struct {
	Params Params
	Ring   ringq.Ring

	// Debug, when true, enables the construction-time assertions on
	// sampled randomness described in spec §4.7 step 2 (the original
	// source's debug_assertions). Off by default since these checks have
	// negligible failure probability and are not part of the algorithm's
	// contract.
	Debug bool
}

// New constructs a Vcs from params, validating every invariant in spec §3.
// Panics if kappa > N, per the public API table in spec §6 — this is a
// programmer error in parameter selection, not a runtime condition.
func New(params Params) *Vcs {
	if err := params.Validate(); err != nil {
		panic(fmt.Sprintf("vcs: invalid parameters: %v", err))
	}
	return &Vcs{
		Params: params,
		Ring:   ringq.NewRing(params.Q, params.N),
	}
}

// PublicParams samples fresh public parameters (A1, A2) and returns their
// vertical composition alpha, shape (n+l, k) (spec §4.6).
func (v *Vcs) PublicParams(rng io.Reader) (Alpha, error) {
	pp, err := latmatrix.BuildPublicParams(v.Ring, v.Params.Nrows, v.Params.L, v.Params.K, rng)
	if err != nil {
		return Alpha{}, fmt.Errorf("vcs: public params: %w", err)
	}
	alpha, err := pp.Alpha()
	if err != nil {
		return Alpha{}, fmt.Errorf("vcs: compose alpha: %w", err)
	}
	return alpha, nil
}

// sampleBetaVector draws a vector of k ring elements, each coefficient
// independently uniform in {-beta,...,beta} (spec §4.7 step 2). For the
// reference beta=1 this is a ternary distribution.
func (v *Vcs) sampleBetaVector(rng io.Reader) (latmatrix.Vector, error) {
	beta := v.Params.Beta
	span := uint64(2*beta + 1)
	out := make(latmatrix.Vector, v.Params.K)
	for i := 0; i < v.Params.K; i++ {
		coeffs := make([]ringq.FieldElt, v.Ring.N)
		for j := 0; j < v.Ring.N; j++ {
			d, err := uniformSmall(span, rng)
			if err != nil {
				return nil, fmt.Errorf("vcs: sample beta coefficient: %w", err)
			}
			centered := d - int64(beta)
			coeffs[j] = ringq.FromBigUint(big.NewInt(centered), v.Params.Q)
		}
		elt := ringq.NewRingElt(v.Ring, coeffs)
		if v.Debug && elt.NormMax().Cmp(big.NewInt(int64(beta))) > 0 {
			panic("vcs: sampled randomness exceeds beta bound")
		}
		out[i] = elt
	}
	if v.Debug && allZeroVector(out) {
		panic("vcs: sampled randomness vector r is entirely zero")
	}
	return out, nil
}

func allZeroVector(v latmatrix.Vector) bool {
	for _, e := range v {
		if !e.IsZero() {
			return false
		}
	}
	return true
}

// uniformSmall draws a uniform value in [0, span) from rng via rejection
// sampling, avoiding modulo bias; used for the small-span beta-set draws.
func uniformSmall(span uint64, rng io.Reader) (int64, error) {
	if cr, ok := rng.(*chacharng.RNG); ok {
		v, err := cr.UniformUint64(span)
		return int64(v), err
	}
	limit := (^uint64(0)) - (^uint64(0))%span
	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return 0, err
		}
		var v uint64
		for i := 0; i < 8; i++ {
			v |= uint64(buf[i]) << (8 * i)
		}
		if v < limit {
			return int64(v % span), nil
		}
	}
}

// Commit computes (alpha, c, opening) for message x (spec §4.7). Panics if
// len(x) != l, per the public API table in spec §6.
func (v *Vcs) Commit(x latmatrix.Vector, rng io.Reader) (Alpha, Commitment, Opening, error) {
	if len(x) != v.Params.L {
		panic(fmt.Sprintf("vcs: commit: invalid message length %d, want %d", len(x), v.Params.L))
	}

	r, err := v.sampleBetaVector(rng)
	if err != nil {
		return Alpha{}, nil, Opening{}, fmt.Errorf("vcs: commit: sample randomness: %w", err)
	}

	alpha, err := v.PublicParams(rng)
	if err != nil {
		return Alpha{}, nil, Opening{}, fmt.Errorf("vcs: commit: %w", err)
	}

	c, err := v.commitmentFor(alpha, x, r)
	if err != nil {
		return Alpha{}, nil, Opening{}, fmt.Errorf("vcs: commit: %w", err)
	}

	return alpha, c, Opening{X: x, R: r}, nil
}

// commitmentFor computes c = alpha*r + (0_n || x), the algebraic core
// shared by Commit and Open (spec §4.7 step 4, §4.8 step 2).
func (v *Vcs) commitmentFor(alpha Alpha, x, r latmatrix.Vector) (Commitment, error) {
	prod, err := alpha.MulVector(r)
	if err != nil {
		return nil, fmt.Errorf("alpha*r: %w", err)
	}
	padded := latmatrix.Concat(latmatrix.ZeroVector(v.Ring, v.Params.Nrows), x)
	return padded.Add(prod)
}

// randomnessNormBoundSquared returns (4*theta*sqrt(N))^2 as an integer,
// precomputed so that norm comparisons avoid floating point (spec §9).
func (v *Vcs) randomnessNormBoundSquared() *big.Int {
	bound := 4.0 * v.Params.Theta() * math.Sqrt(float64(v.Ring.N))
	return floorSquare(bound)
}

// responseNormBoundSquared returns (2*theta*sqrt(N))^2 as an integer, the
// bound used by ProveOpening's rejection sampling and VerifyOpeningProof
// (spec §4.10).
func (v *Vcs) responseNormBoundSquared() *big.Int {
	bound := 2.0 * v.Params.Theta() * math.Sqrt(float64(v.Ring.N))
	return floorSquare(bound)
}

func floorSquare(x float64) *big.Int {
	bf := new(big.Float).SetFloat64(x * x)
	out, _ := bf.Int(nil)
	return out
}

// Open checks the randomness-norm bound and then the algebraic identity
// (spec §4.8). There is no partial-failure mode: this always returns a
// plain bool, never an error — the norm check MUST precede the algebraic
// check, since a zero-norm r would otherwise trivially open any
// commitment.
func (v *Vcs) Open(c Commitment, alpha Alpha, x, r latmatrix.Vector) bool {
	bound := v.randomnessNormBoundSquared()
	for _, ri := range r {
		if ri.NormL2Squared().Cmp(bound) > 0 {
			return false
		}
	}

	recomputed, err := v.commitmentFor(alpha, x, r)
	if err != nil {
		return false
	}
	return recomputed.Equal(c)
}
