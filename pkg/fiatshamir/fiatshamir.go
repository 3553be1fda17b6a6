// Package fiatshamir is a thin, separately importable non-interactive
// wrapper over the interactive three-message core in package statement. It
// is never imported by statement or rangeproof themselves: the challenge is
// derived by hashing the encoded commitment with the suite's XOF, the same
// domain-separated-hash-to-scalar pattern the teacher uses to turn its Neff
// shuffle proof's interactive challenge into a non-interactive one.
package fiatshamir

import (
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/statement"
	"sigmazk/pkg/transcript"
)

const domainTag = "sigmazk-fiatshamir-challenge-derivation"

// Proof is a complete non-interactive transcript: a commitment, the
// challenge derived from it, and the response computed against that
// challenge.
type Proof struct {
	Commitment statement.Commitment
	Challenge  kyber.Scalar
	Response   statement.Response
}

// Prove runs a full honest three-message exchange against stmt, but derives
// the challenge from the commitment instead of waiting for a verifier to
// send one.
func Prove(suite group.Suite, stmt statement.Statement, secrets map[string]*big.Int) (Proof, error) {
	prover, err := stmt.GetProver(secrets)
	if err != nil {
		return Proof{}, err
	}
	commitment, err := prover.Commit()
	if err != nil {
		return Proof{}, err
	}
	challenge, err := DeriveChallenge(suite, commitment)
	if err != nil {
		return Proof{}, err
	}
	response, err := prover.ComputeResponse(challenge)
	if err != nil {
		return Proof{}, err
	}
	return Proof{Commitment: commitment, Challenge: challenge, Response: response}, nil
}

// Verify re-derives the challenge from proof.Commitment and checks both
// that it matches proof.Challenge (the prover didn't cheat by picking its
// own) and that the response satisfies stmt's verifier equations.
func Verify(suite group.Suite, stmt statement.Statement, proof Proof) bool {
	expected, err := DeriveChallenge(suite, proof.Commitment)
	if err != nil {
		return false
	}
	if !expected.Equal(proof.Challenge) {
		return false
	}
	verifier := stmt.GetVerifier()
	return verifier.VerifyProof(proof.Commitment, proof.Challenge, proof.Response)
}

// DeriveChallenge hashes the wire encoding of commitment through suite's XOF
// under a fixed domain tag and picks a challenge scalar from the resulting
// stream.
func DeriveChallenge(suite group.Suite, commitment statement.Commitment) (kyber.Scalar, error) {
	payload, err := transcript.EncodeCommitment(commitment)
	if err != nil {
		return nil, err
	}
	xof := suite.XOF([]byte(domainTag))
	if _, err := xof.Write(payload); err != nil {
		return nil, err
	}
	return suite.Scalar().Pick(xof), nil
}
