package statement

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

// Statement is a node of the proof-statement tree: an atomic DLRep, or an
// And/Or composition of other Statements. Statements are logically
// immutable after construction and safe to share by
// read-only reference across many independent Prover/Verifier runs.
type Statement interface {
	// SecretNames returns the name of every Secret this statement (and its
	// descendants) references, in term order, with repeats for each use.
	SecretNames() []string
	// Generators returns the generator Point paired with each name
	// returned by SecretNames, in the same order.
	Generators() []kyber.Point

	// GetProver builds a Prover bound to secrets. If secrets does not
	// cover every name this statement needs, the returned Prover can only
	// simulate (see DESIGN.md's fix for the source's prover/verifier
	// type-crossing bug).
	GetProver(secrets map[string]*big.Int) (*Prover, error)
	// GetVerifier builds a fresh Verifier for this statement.
	GetVerifier() *Verifier
	// GetSimulator builds a Prover with no witness at all, usable only
	// via Prover.SimulateProof.
	GetSimulator() *Prover

	// ProofID returns a canonical digest of this statement's shape: node
	// kind, child order, generator group tags, Secret names. Two
	// statements built through different syntactic paths but equal in
	// this sense produce equal ProofIDs.
	ProofID() []byte

	proverNode(secrets map[string]*big.Int) proverNode
	verifierNode() verifierNode
	writeProofID(b *proofIDBuilder)
}

// proverNode is the internal, per-run capability every statement kind
// implements on the prover side. It is rebuilt fresh by Statement.GetProver
// for every protocol run, so it is free to hold mutable per-run state (e.g.
// an Or's chosen simulated sub-challenges) without the parent Statement
// ever being mutated.
type proverNode interface {
	secretNames() []string
	// canProve reports whether this node (and all its descendants) has
	// enough witness to drive commit/response honestly. A node for which
	// this is false can still be used, but only via simulateGivenChallenge.
	canProve() bool
	// randomizers samples (or, for Or's non-real branches, skips) fresh
	// per-term randomizers, returning this subtree's contribution to the
	// run-wide shared randomizer map, keyed by Secret name.
	randomizers(suite group.Suite, rng cipher.Stream) map[string]kyber.Scalar
	// commit computes this node's honest Commitment from the run-wide
	// randomizer map. rng is only consulted by Or nodes, to pick
	// sub-challenges and responses for the branches they simulate.
	// Returns ErrNoWitness if this node has no witness (i.e. it should
	// have been driven through simulateGivenChallenge instead).
	commit(rng cipher.Stream, randomizers map[string]kyber.Scalar) (Commitment, error)
	// response computes this node's honest Response to challenge, using
	// the same run-wide randomizer map passed to commit.
	response(challenge kyber.Scalar, randomizers map[string]kyber.Scalar) (Response, error)
	// simulateGivenChallenge produces a (Commitment, Response) pair that
	// verifies against challenge, without needing any witness.
	simulateGivenChallenge(challenge kyber.Scalar, rng cipher.Stream) (Commitment, Response)
}

// verifierNode is the internal, per-statement capability on the verifier
// side: check a (Commitment, challenge, Response) triple against public
// data only.
type verifierNode interface {
	verify(commitment Commitment, challenge kyber.Scalar, response Response) bool
}

func hasFullWitness(names []string, secrets map[string]*big.Int) bool {
	for _, n := range names {
		if secrets[n] == nil {
			return false
		}
	}
	return true
}

func filterSecrets(secrets map[string]*big.Int, names []string) map[string]*big.Int {
	out := make(map[string]*big.Int, len(names))
	for _, n := range names {
		if v, ok := secrets[n]; ok {
			out[n] = v
		}
	}
	return out
}
