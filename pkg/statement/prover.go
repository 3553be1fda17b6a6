package statement

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

// ProverPhase tracks where a Prover sits in the three-message protocol.
// Methods return an error wrapping ErrUsageError when called out of order:
// this is always a caller bug, never something a remote adversary can
// trigger.
type ProverPhase int

const (
	PhaseFresh ProverPhase = iota
	PhaseCommitted
	PhaseResponded
)

func (p ProverPhase) String() string {
	switch p {
	case PhaseFresh:
		return "fresh"
	case PhaseCommitted:
		return "committed"
	case PhaseResponded:
		return "responded"
	default:
		return "unknown"
	}
}

// Prover drives one run of the three-message protocol for a Statement: a
// real prover walks Commit -> (receive challenge) -> ComputeResponse; a
// prover built from GetSimulator can only call SimulateProof.
type Prover struct {
	suite      group.Suite
	root       proverNode
	simulating bool

	phase       ProverPhase
	rng         cipher.Stream
	randomizers map[string]kyber.Scalar
	commitment  Commitment
}

func newProver(suite group.Suite, root proverNode) *Prover {
	return &Prover{
		suite:      suite,
		root:       root,
		simulating: !root.canProve(),
		phase:      PhaseFresh,
		rng:        group.RandomStream(suite, ""),
	}
}

// WithRandomness replaces the Prover's source of randomness, for
// reproducible tests. Must be called before Commit or SimulateProof.
func (p *Prover) WithRandomness(rng cipher.Stream) *Prover {
	p.rng = rng
	return p
}

// Commit samples fresh randomizers and returns this run's Commitment,
// advancing Fresh -> Committed. Returns ErrUsageError if called twice, or
// if the Prover was built without a full witness (use SimulateProof
// instead).
func (p *Prover) Commit() (Commitment, error) {
	if p.simulating {
		return Commitment{}, usageErrorf("Prover.Commit: this Prover has no witness, use SimulateProof")
	}
	if p.phase != PhaseFresh {
		return Commitment{}, usageErrorf("Prover.Commit: called in phase %s", p.phase)
	}
	p.randomizers = p.root.randomizers(p.suite, p.rng)
	commitment, err := p.root.commit(p.rng, p.randomizers)
	if err != nil {
		return Commitment{}, err
	}
	p.commitment = commitment
	p.phase = PhaseCommitted
	return commitment, nil
}

// ComputeResponse answers challenge, advancing Committed -> Responded.
func (p *Prover) ComputeResponse(challenge kyber.Scalar) (Response, error) {
	if p.phase != PhaseCommitted {
		return Response{}, usageErrorf("Prover.ComputeResponse: called in phase %s", p.phase)
	}
	response, err := p.root.response(challenge, p.randomizers)
	if err != nil {
		return Response{}, err
	}
	p.phase = PhaseResponded
	return response, nil
}

// SimulateProof emits a complete, self-consistent (Commitment, challenge,
// Response) transcript atomically, bypassing the Commit/ComputeResponse
// state machine entirely -- it never needs a witness. challenge is freshly
// random unless forced by a caller composing this Or into an outer
// simulation (internal callers use simulateGivenChallenge directly; this is
// the entry point for a standalone simulator).
func (p *Prover) SimulateProof() (Commitment, kyber.Scalar, Response) {
	challenge := group.RandomChallenge(p.suite)
	commitment, response := p.root.simulateGivenChallenge(challenge, p.rng)
	return commitment, challenge, response
}
