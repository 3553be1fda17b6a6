package statement

import (
	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

// VerifierPhase tracks where a Verifier sits in the three-message
// protocol.
type VerifierPhase int

const (
	VerifierFresh VerifierPhase = iota
	VerifierReceivedCommitment
	VerifierSentChallenge
)

func (p VerifierPhase) String() string {
	switch p {
	case VerifierFresh:
		return "fresh"
	case VerifierReceivedCommitment:
		return "received-commitment"
	case VerifierSentChallenge:
		return "sent-challenge"
	default:
		return "unknown"
	}
}

// Verifier drives one run of the three-message protocol from the
// verifier's side: ProcessCommitment -> SendChallenge -> Verify.
type Verifier struct {
	suite      group.Suite
	root       verifierNode
	phase      VerifierPhase
	commitment Commitment
	challenge  kyber.Scalar
}

func newVerifier(suite group.Suite, root verifierNode) *Verifier {
	return &Verifier{suite: suite, root: root, phase: VerifierFresh}
}

// ProcessCommitment records the prover's first message, advancing
// Fresh -> ReceivedCommitment.
func (v *Verifier) ProcessCommitment(commitment Commitment) error {
	if v.phase != VerifierFresh {
		return usageErrorf("Verifier.ProcessCommitment: called in phase %s", v.phase)
	}
	v.commitment = commitment
	v.phase = VerifierReceivedCommitment
	return nil
}

// SendChallenge draws a fresh uniformly random challenge, advancing
// ReceivedCommitment -> SentChallenge.
func (v *Verifier) SendChallenge() (kyber.Scalar, error) {
	if v.phase != VerifierReceivedCommitment {
		return nil, usageErrorf("Verifier.SendChallenge: called in phase %s", v.phase)
	}
	v.challenge = group.RandomChallenge(v.suite)
	v.phase = VerifierSentChallenge
	return v.challenge, nil
}

// Verify checks the prover's final message against the recorded
// Commitment and challenge. It never returns an error for a failed
// check -- "the proof didn't check out" is reported as (false, nil).
// An error return means the Verifier itself was misused.
func (v *Verifier) Verify(response Response) (bool, error) {
	if v.phase != VerifierSentChallenge {
		return false, usageErrorf("Verifier.Verify: called in phase %s", v.phase)
	}
	return v.root.verify(v.commitment, v.challenge, response), nil
}

// VerifyProof is the non-interactive convenience path for a transcript
// that already has its challenge fixed (e.g. replayed from a transcript,
// or produced by a Fiat-Shamir wrapper): it skips the phase machine
// entirely and checks the triple directly.
func (v *Verifier) VerifyProof(commitment Commitment, challenge kyber.Scalar, response Response) bool {
	return v.root.verify(commitment, challenge, response)
}
