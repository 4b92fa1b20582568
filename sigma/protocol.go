// Package sigma implements the Σ-protocol state machine described in spec
// §4.11: READY -> COMMITTED(t,y) -> RESPONDED(t,z) | REJECTED -> READY.
// REJECTED unconditionally re-enters READY; there is no terminal failure
// state on the prover side, matching the issuance package's explicit
// state-enum-plus-transition-method shape in the teacher repo.
package sigma

import (
	"fmt"
	"io"

	"lattice-vcs/latmatrix"
	"lattice-vcs/vcs"
)

// State identifies where a Protocol instance sits in the Σ-protocol state
// machine.
type State int

const (
	// StateReady is the initial state, and the state REJECTED
	// unconditionally re-enters.
	StateReady State = iota
	// StateCommitted holds the prover's first-move commitment t (and the
	// masking randomness y that produced it) before a response is
	// computed.
	StateCommitted
	// StateResponded is reached once a response z within the verifier's
	// norm bound has been produced.
	StateResponded
	// StateRejected is reached when a candidate z falls outside the norm
	// bound; Step re-enters StateReady before it returns.
	StateRejected
)

// String renders a State for diagnostics.
func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateCommitted:
		return "COMMITTED"
	case StateResponded:
		return "RESPONDED"
	case StateRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Protocol drives one committer's Σ-protocol session against a fixed alpha
// and randomness vector r. It is not safe for concurrent use by multiple
// goroutines, matching the synchronous, single-threaded model of spec §5.
type Protocol struct {
	vcs   *vcs.Vcs
	alpha vcs.Alpha
	r     latmatrix.Vector

	state     State
	t         latmatrix.Vector
	lastProof vcs.Proof
}

// NewProtocol constructs a Protocol in StateReady for the given instance,
// public parameters, and committer randomness.
func NewProtocol(v *vcs.Vcs, alpha vcs.Alpha, r latmatrix.Vector) *Protocol {
	return &Protocol{vcs: v, alpha: alpha, r: r, state: StateReady}
}

// State returns the current state.
func (p *Protocol) State() State { return p.state }

// Step runs exactly one commit-challenge-response attempt: it samples fresh
// masking randomness, derives t and the Fiat–Shamir challenge, and computes
// a candidate z. The state transitions to StateCommitted once t is known,
// then to StateResponded if z is within bound, or to StateRejected
// otherwise. A rejection unconditionally re-enters StateReady (spec §4.11),
// so callers that want an accepted proof call Step repeatedly until it
// reports true, then read Proof().
func (p *Protocol) Step(rng io.Reader) (accepted bool, err error) {
	t, z, _, accepted, err := p.vcs.ProveOpeningRound(p.alpha, p.r, rng)
	if err != nil {
		p.state = StateReady
		return false, fmt.Errorf("sigma: step: %w", err)
	}

	p.t = t
	p.state = StateCommitted

	if !accepted {
		p.state = StateRejected
		p.state = StateReady
		return false, nil
	}

	p.lastProof = vcs.Proof{T: t, Z: z}
	p.state = StateResponded
	return true, nil
}

// Proof returns the most recently accepted proof. Only meaningful once
// State() reports StateResponded.
func (p *Protocol) Proof() vcs.Proof { return p.lastProof }
