// Package gaussian implements the discrete Gaussian sampler contract used
// by the Σ-protocol (spec §6, §9): SampleGaussian must be statistically
// indistinguishable from a discrete Gaussian of standard deviation sigma
// over Z. The specification deliberately leaves the algorithm unspecified
// ("contract only"); this package supplies a straightforward rejection
// sampler in the style of the teacher's big.Float-based numerics
// (Preimage_Sampler/bigcomplex.go), not a constant-time implementation —
// variable-time sampling is acceptable outside adversarial timing settings
// per spec §6.
package gaussian

import (
	"fmt"
	"io"
	"math"
	"math/big"
)

// ErrSamplerExhaustion is returned when the sampler cannot find an accepted
// value within its rejection-sampling budget; this is an operational
// error, not a parameter error (spec §7).
var ErrSamplerExhaustion = fmt.Errorf("gaussian: exhausted rejection-sampling budget")

// maxTrials bounds the number of rejection-sampling attempts per draw. The
// acceptance probability near the mode is close to 1, so this is generous
// headroom rather than an expected trial count.
const maxTrials = 1 << 20

// tailCut bounds the support sampled from to +/- tailCut*sigma, beyond
// which the discrete Gaussian's probability mass is cryptographically
// negligible.
const tailCut = 13.0

// SampleGaussian draws a single integer from a discrete Gaussian of
// standard deviation sigma centered at 0, reading uniform entropy from rng.
// Uses rejection sampling over a bounded integer range: draw x uniformly in
// [-tailCut*sigma, tailCut*sigma], accept with probability
// exp(-x^2/(2*sigma^2)).
func SampleGaussian(sigma float64, rng io.Reader) (int64, error) {
	if sigma <= 0 {
		return 0, fmt.Errorf("gaussian: sigma must be positive, got %v", sigma)
	}
	bound := int64(math.Ceil(tailCut * sigma))
	if bound <= 0 {
		bound = 1
	}
	span := uint64(2*bound + 1)

	for trial := 0; trial < maxTrials; trial++ {
		u, err := uniformUint64(span, rng)
		if err != nil {
			return 0, fmt.Errorf("gaussian: %w", err)
		}
		x := int64(u) - bound

		p := math.Exp(-float64(x*x) / (2 * sigma * sigma))
		coin, err := uniformFloat64(rng)
		if err != nil {
			return 0, fmt.Errorf("gaussian: %w", err)
		}
		if coin < p {
			return x, nil
		}
	}
	return 0, ErrSamplerExhaustion
}

// uniformUint64 draws a value uniform in [0, bound) from rng via rejection
// sampling over 8-byte reads, avoiding modulo bias.
func uniformUint64(bound uint64, rng io.Reader) (uint64, error) {
	if bound == 0 {
		return 0, fmt.Errorf("bound must be positive")
	}
	limit := (^uint64(0)) - (^uint64(0))%bound
	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return 0, fmt.Errorf("read entropy: %w", err)
		}
		v := bytesToUint64(buf)
		if v < limit {
			return v % bound, nil
		}
	}
}

// uniformFloat64 draws a uniform value in [0,1) from 8 bytes of entropy.
func uniformFloat64(rng io.Reader) (float64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	v := bytesToUint64(buf) >> 11 // 53 bits of mantissa precision
	return float64(v) / float64(uint64(1)<<53), nil
}

func bytesToUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// SampleGaussianVector draws n independent discrete Gaussian samples and
// returns them as *big.Int values, the form the Σ-protocol needs when
// embedding draws as ring-element coefficients.
func SampleGaussianVector(sigma float64, n int, rng io.Reader) ([]*big.Int, error) {
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		v, err := SampleGaussian(sigma, rng)
		if err != nil {
			return nil, fmt.Errorf("gaussian: sample vector element %d: %w", i, err)
		}
		out[i] = big.NewInt(v)
	}
	return out, nil
}
