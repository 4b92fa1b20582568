package vcs

import "lattice-vcs/ringq"

// SizeReport summarizes the byte sizes of a commitment, its public
// parameters, and the committer's secret randomness (spec §4.7; carried
// over from the original demonstration driver's printed sizes in
// main.rs: "Commitment size", "Public parameters size", "Secret size").
type SizeReport struct {
	CommitmentBytes  int
	PublicParamBytes int
	SecretBytes      int
}

// Sizes computes a SizeReport for this instance's parameters.
func (v *Vcs) Sizes() SizeReport {
	eltBytes := ringq.ByteLen(v.Params.Q) * v.Ring.N
	n, l, k := v.Params.Nrows, v.Params.L, v.Params.K
	return SizeReport{
		CommitmentBytes:  (n + l) * eltBytes,
		PublicParamBytes: (n + l) * k * eltBytes,
		SecretBytes:      k * eltBytes,
	}
}
