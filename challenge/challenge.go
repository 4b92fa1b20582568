// Package challenge implements the Fiat–Shamir challenge sampler (spec
// §4.9): given a transcript, it derives a κ-sparse ternary ring element
// with exactly κ nonzero coefficients, each equal to 1, at κ distinct
// degrees in [0, N).
package challenge

import (
	"fmt"
	"math/big"

	"lattice-vcs/chacharng"
	"lattice-vcs/latmatrix"
	"lattice-vcs/ringq"
)

// ErrInvalidChallenge indicates the sampled polynomial failed its declared
// norms — an internal-consistency error that cannot happen if the
// construction below is correct, kept as defense in depth (spec §4.9 step
// 5, §7).
var ErrInvalidChallenge = fmt.Errorf("challenge: sampled polynomial failed declared norms")

// Rounds is the ChaCha round count used to derive challenges. The
// specification ties the challenge stream to a fixed, reproducible
// construction (spec §9); this module uses the default 20-round variant.
const Rounds = chacharng.DefaultRounds

// Sample derives a challenge ring element from transcript by hashing its
// canonical byte serialization into a ChaCha stream (§4.5) and drawing
// kappa distinct degrees in [0, N) by rejection sampling (§4.9). Two
// callers with identical transcripts derive the same challenge without
// interaction (Fiat–Shamir).
func Sample(r ringq.Ring, transcript latmatrix.Vector, kappa int) (ringq.RingElt, error) {
	if kappa > r.N {
		return ringq.RingElt{}, fmt.Errorf("challenge: kappa=%d exceeds N=%d", kappa, r.N)
	}

	rng := chacharng.NewFromSeed(transcript.Bytes(), Rounds)

	degrees := make(map[int]struct{}, kappa)
	for len(degrees) < kappa {
		d, err := rng.UniformUint64(uint64(r.N))
		if err != nil {
			return ringq.RingElt{}, fmt.Errorf("challenge: draw degree: %w", err)
		}
		degrees[int(d)] = struct{}{}
	}

	one := ringq.One(r.Q)
	coeffs := make([]ringq.FieldElt, r.N)
	zero := ringq.Zero(r.Q)
	for i := range coeffs {
		coeffs[i] = zero
	}
	for d := range degrees {
		coeffs[d] = one
	}
	result := ringq.NewRingElt(r, coeffs)

	if result.NormL1().Cmp(big.NewInt(int64(kappa))) != 0 || result.NormMax().Cmp(big.NewInt(1)) != 0 {
		return ringq.RingElt{}, ErrInvalidChallenge
	}
	return result, nil
}
