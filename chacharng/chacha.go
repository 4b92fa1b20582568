// Package chacharng implements the deterministic ChaCha-family stream used
// to expand a transcript commitment into an unbounded byte stream for the
// challenge sampler (spec §4.5). It is seeded by hashing arbitrary-length
// input bytes with Keccak-256; the ChaCha counter is never advanced between
// blocks, by design — see RNG.round.
package chacharng

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/sha3"
)

// Nothing-up-my-sleeve constants, "expand 32-byte k" in little-endian
// 32-bit words.
const (
	constant0 uint32 = 1634760805
	constant1 uint32 = 857760878
	constant2 uint32 = 2036477234
	constant3 uint32 = 1797285236
)

// DefaultRounds is the round count used unless the caller requests the
// reduced 12-round variant.
const DefaultRounds = 20

// RNG is a seeded ChaCha-family stream cipher. The counter words (12,13) and
// the nonce words (14,15) of the block input state are fixed at zero for the
// lifetime of an RNG; a fresh block is generated by running the permutation
// again on the evolving working state, not by incrementing a counter. This is a correctness
// requirement (spec §4.5, §9): two callers seeding from the same transcript
// must derive byte-identical challenge streams.
type RNG struct {
	state      [16]uint32
	seedState  [16]uint32
	RoundCount int
	buffer     []byte
	offset     int
}

// NewFromSeed hashes seed with Keccak-256 and initializes a ChaCha state
// from the resulting 32-byte digest. rounds must be even (e.g. 12 or 20);
// DefaultRounds is used if rounds <= 0.
func NewFromSeed(seed []byte, rounds int) *RNG {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(seed)
	digest := h.Sum(nil)

	var state [16]uint32
	state[0] = constant0
	state[1] = constant1
	state[2] = constant2
	state[3] = constant3
	for i := 0; i < 8; i++ {
		state[4+i] = binary.LittleEndian.Uint32(digest[i*4 : i*4+4])
	}
	// counter and nonce start, and stay, at zero.
	state[12], state[13], state[14], state[15] = 0, 0, 0, 0

	return &RNG{
		state:      state,
		seedState:  state,
		RoundCount: rounds,
	}
}

// quarterRound is the standard ChaCha mixing primitive over four state
// words identified by their indices.
func (r *RNG) quarterRound(i [4]int) {
	a, b, c, d := r.state[i[0]], r.state[i[1]], r.state[i[2]], r.state[i[3]]

	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)

	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)

	r.state[i[0]], r.state[i[1]], r.state[i[2]], r.state[i[3]] = a, b, c, d
}

// round runs RoundCount/2 double-rounds (column quarter-rounds followed by
// diagonal quarter-rounds) and appends the resulting 64-byte block to the
// output buffer. The counter is intentionally not incremented: each call
// continues from the working state the previous call left, so successive
// blocks differ while the whole block sequence is fixed by the seed.
func (r *RNG) round() {
	if r.RoundCount%2 != 0 {
		panic("chacharng: round count must be even")
	}
	for i := 0; i < r.RoundCount/2; i++ {
		r.quarterRound([4]int{0, 4, 8, 12})
		r.quarterRound([4]int{1, 5, 9, 13})
		r.quarterRound([4]int{2, 6, 10, 14})
		r.quarterRound([4]int{3, 7, 11, 15})

		r.quarterRound([4]int{0, 5, 10, 15})
		r.quarterRound([4]int{1, 6, 11, 12})
		r.quarterRound([4]int{2, 7, 8, 13})
		r.quarterRound([4]int{3, 4, 9, 14})
	}
	block := make([]byte, 64)
	for i := 0; i < 16; i++ {
		word := r.seedState[i] + r.state[i]
		binary.LittleEndian.PutUint32(block[i*4:i*4+4], word)
	}
	r.buffer = append(r.buffer, block...)
}

// NextByte pops one byte from the internal buffer, generating a new 64-byte
// block when the buffer is exhausted.
func (r *RNG) NextByte() byte {
	if len(r.buffer) == 0 || r.offset == len(r.buffer) {
		r.buffer = nil
		r.offset = 0
		r.round()
	}
	b := r.buffer[r.offset]
	r.offset++
	return b
}

// NextBytes returns n freshly drawn bytes.
func (r *RNG) NextBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = r.NextByte()
	}
	return out
}

// FillBytes fills dest with freshly drawn bytes.
func (r *RNG) FillBytes(dest []byte) {
	for i := range dest {
		dest[i] = r.NextByte()
	}
}

// Read implements io.Reader so an RNG can be used anywhere a byte source is
// expected (field/ring element uniform sampling, matrix sampling).
func (r *RNG) Read(p []byte) (int, error) {
	r.FillBytes(p)
	return len(p), nil
}

// NextU32 returns the next 4 bytes as a little-endian uint32.
func (r *RNG) NextU32() uint32 {
	return binary.LittleEndian.Uint32(r.NextBytes(4))
}

// NextU64 returns the next 8 bytes as a little-endian uint64.
func (r *RNG) NextU64() uint64 {
	return binary.LittleEndian.Uint64(r.NextBytes(8))
}

// UniformUint64 draws a uniform value in [0, bound) by rejection sampling
// NextU64 draws that fall in the largest multiple of bound below 2^64, to
// avoid modulo bias.
func (r *RNG) UniformUint64(bound uint64) (uint64, error) {
	if bound == 0 {
		return 0, fmt.Errorf("chacharng: bound must be positive")
	}
	limit := (^uint64(0)) - (^uint64(0))%bound
	for {
		v := r.NextU64()
		if v < limit {
			return v % bound, nil
		}
	}
}
