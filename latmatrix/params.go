package latmatrix

import (
	"fmt"
	"io"

	"lattice-vcs/ringq"
)

// PublicParams holds the two sub-blocks A1 (n,k) and A2 (l,k) produced by
// public-parameter generation (spec §4.6); Alpha is their vertical
// composition, shape (n+l, k).
type PublicParams struct {
	A1 Matrix
	A2 Matrix
}

// Alpha composes A1 over A2 into the single (n+l, k) matrix used by commit,
// open, and the Σ-protocol.
func (pp PublicParams) Alpha() (Matrix, error) {
	return pp.A1.ComposeVertical(pp.A2)
}

// BuildPublicParams samples A1 = [I_n | A1'] (shape n, k) and
// A2 = [0_{l,n} | I_l | A2'] (shape l, k), where A1' is (n, k-n) uniform and
// A2' is (l, k-n-l) uniform, per spec §4.6. Requires k > n+l.
func BuildPublicParams(r ringq.Ring, n, l, k int, rng io.Reader) (PublicParams, error) {
	if k <= n+l {
		return PublicParams{}, fmt.Errorf("latmatrix: public params require k > n+l, got k=%d n=%d l=%d", k, n, l)
	}

	a1Prime, err := SampleUniform(r, n, k-n, rng)
	if err != nil {
		return PublicParams{}, fmt.Errorf("latmatrix: sample A1': %w", err)
	}
	a1, err := Identity(r, n).ComposeHorizontal(a1Prime)
	if err != nil {
		return PublicParams{}, fmt.Errorf("latmatrix: compose A1: %w", err)
	}

	a2Prime, err := SampleUniform(r, l, k-n-l, rng)
	if err != nil {
		return PublicParams{}, fmt.Errorf("latmatrix: sample A2': %w", err)
	}
	zeroBlock := Zero(r, l, n)
	idBlock := Identity(r, l)
	a2Left, err := zeroBlock.ComposeHorizontal(idBlock)
	if err != nil {
		return PublicParams{}, fmt.Errorf("latmatrix: compose A2 left: %w", err)
	}
	a2, err := a2Left.ComposeHorizontal(a2Prime)
	if err != nil {
		return PublicParams{}, fmt.Errorf("latmatrix: compose A2: %w", err)
	}

	return PublicParams{A1: a1, A2: a2}, nil
}
