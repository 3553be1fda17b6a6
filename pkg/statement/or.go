package statement

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

// Or is the disjunction of one or more Statements: the prover needs a
// witness for only one child (the "real" branch, chosen deterministically
// as the first child whose secrets are all bound) and simulates every
// other branch so the transcript reveals nothing about which one was real.
type Or struct {
	suite         group.Suite
	children      []Statement
	names         []string
	gens          []kyber.Point
	forceSimulate bool
}

// NewOr combines children into a disjunction. Fails with
// ErrMalformedStatement under the same conditions as NewAnd.
func NewOr(suite group.Suite, children ...Statement) (*Or, error) {
	if len(children) == 0 {
		return nil, malformedStatementf("Or: no children")
	}
	var names []string
	var gens []kyber.Point
	for _, c := range children {
		names = append(names, c.SecretNames()...)
		gens = append(gens, c.Generators()...)
	}
	if err := checkConsistency(names, gens); err != nil {
		return nil, err
	}
	return &Or{suite: suite, children: children, names: names, gens: gens}, nil
}

// Simulated returns a copy of o that always proves in full-simulation mode,
// regardless of which witnesses are later supplied to GetProver. Used when
// a branch must look "disjoined" even though the caller happens to hold
// every witness (e.g. a privacy-preserving default, or testing the
// verifier against a statement nobody can truthfully prove).
func (o *Or) Simulated() *Or {
	clone := *o
	clone.forceSimulate = true
	return &clone
}

func (o *Or) SecretNames() []string     { return o.names }
func (o *Or) Generators() []kyber.Point { return o.gens }

func (o *Or) GetProver(secrets map[string]*big.Int) (*Prover, error) {
	return newProver(o.suite, o.proverNode(secrets)), nil
}

func (o *Or) GetVerifier() *Verifier {
	return newVerifier(o.suite, o.verifierNode())
}

func (o *Or) GetSimulator() *Prover {
	return newProver(o.suite, o.proverNode(nil))
}

func (o *Or) ProofID() []byte {
	b := newProofIDBuilder()
	o.writeProofID(b)
	return b.sum()
}

func (o *Or) writeProofID(b *proofIDBuilder) {
	b.writeKind(KindOr)
	b.writeInt(len(o.children))
	for _, c := range o.children {
		c.writeProofID(b)
	}
}

func (o *Or) proverNode(secrets map[string]*big.Int) proverNode {
	real := -1
	if !o.forceSimulate {
		for i, c := range o.children {
			if hasFullWitness(c.SecretNames(), secrets) {
				real = i
				break
			}
		}
	}
	children := make([]proverNode, len(o.children))
	for i, c := range o.children {
		children[i] = c.proverNode(secrets)
	}
	return &orProverNode{suite: o.suite, children: children, real: real}
}

func (o *Or) verifierNode() verifierNode {
	children := make([]verifierNode, len(o.children))
	for i, c := range o.children {
		children[i] = c.verifierNode()
	}
	return &orVerifierNode{suite: o.suite, children: children}
}

// orProverNode is the per-run prover state for an Or. real is the index of
// the branch proved honestly, or -1 when every branch is simulated. Between
// commit and response it remembers the sub-challenge and Response it chose
// for each simulated branch, so the two calls agree on the same transcript.
type orProverNode struct {
	suite    group.Suite
	children []proverNode
	real     int

	simChallenges map[int]kyber.Scalar
	simResponses  map[int]Response
}

func (n *orProverNode) secretNames() []string {
	var names []string
	for _, c := range n.children {
		names = append(names, c.secretNames()...)
	}
	return names
}

func (n *orProverNode) canProve() bool { return n.real >= 0 }

func (n *orProverNode) randomizers(suite group.Suite, rng cipher.Stream) map[string]kyber.Scalar {
	if n.real < 0 {
		return map[string]kyber.Scalar{}
	}
	return n.children[n.real].randomizers(suite, rng)
}

func (n *orProverNode) commit(rng cipher.Stream, randomizers map[string]kyber.Scalar) (Commitment, error) {
	if n.real < 0 {
		return Commitment{}, noWitnessf("Or.commit: no branch has a witness")
	}
	parts := make([]Commitment, len(n.children))
	n.simChallenges = make(map[int]kyber.Scalar, len(n.children)-1)
	n.simResponses = make(map[int]Response, len(n.children)-1)
	for i, c := range n.children {
		if i == n.real {
			continue
		}
		challenge := group.RandomScalar(n.suite, rng)
		commitment, response := c.simulateGivenChallenge(challenge, rng)
		n.simChallenges[i] = challenge
		n.simResponses[i] = response
		parts[i] = commitment
	}
	realCommit, err := n.children[n.real].commit(rng, randomizers)
	if err != nil {
		return Commitment{}, err
	}
	parts[n.real] = realCommit
	return Commitment{Kind: KindOr, Parts: parts}, nil
}

func (n *orProverNode) response(challenge kyber.Scalar, randomizers map[string]kyber.Scalar) (Response, error) {
	if n.real < 0 {
		return Response{}, noWitnessf("Or.response: no branch has a witness")
	}
	cReal := challenge
	for i := range n.children {
		if i == n.real {
			continue
		}
		cReal = n.suite.Scalar().Sub(cReal, n.simChallenges[i])
	}
	realResponse, err := n.children[n.real].response(cReal, randomizers)
	if err != nil {
		return Response{}, err
	}
	subChallenges := make([]kyber.Scalar, len(n.children))
	branches := make([]Response, len(n.children))
	for i := range n.children {
		if i == n.real {
			subChallenges[i] = cReal
			branches[i] = realResponse
			continue
		}
		subChallenges[i] = n.simChallenges[i]
		branches[i] = n.simResponses[i]
	}
	return Response{Kind: KindOr, SubChallenges: subChallenges, Branches: branches}, nil
}

func (n *orProverNode) simulateGivenChallenge(challenge kyber.Scalar, rng cipher.Stream) (Commitment, Response) {
	commitments := make([]Commitment, len(n.children))
	subChallenges := make([]kyber.Scalar, len(n.children))
	branches := make([]Response, len(n.children))

	last := len(n.children) - 1
	running := challenge
	for i := 0; i < last; i++ {
		c := group.RandomScalar(n.suite, rng)
		subChallenges[i] = c
		running = n.suite.Scalar().Sub(running, c)
		commitments[i], branches[i] = n.children[i].simulateGivenChallenge(c, rng)
	}
	subChallenges[last] = running
	commitments[last], branches[last] = n.children[last].simulateGivenChallenge(running, rng)

	return Commitment{Kind: KindOr, Parts: commitments}, Response{Kind: KindOr, SubChallenges: subChallenges, Branches: branches}
}

type orVerifierNode struct {
	suite    group.Suite
	children []verifierNode
}

// verify checks invariant #4 (the branches' sub-challenges must sum to the
// shared challenge) and then each branch independently against its own
// sub-challenge and Commitment/Response.
func (n *orVerifierNode) verify(commitment Commitment, challenge kyber.Scalar, response Response) bool {
	if commitment.Kind != KindOr || response.Kind != KindOr {
		return false
	}
	if len(commitment.Parts) != len(n.children) ||
		len(response.SubChallenges) != len(n.children) ||
		len(response.Branches) != len(n.children) {
		return false
	}
	sum := n.suite.Scalar().Zero()
	for _, c := range response.SubChallenges {
		sum = n.suite.Scalar().Add(sum, c)
	}
	if !sum.Equal(challenge) {
		return false
	}
	for i, c := range n.children {
		if !c.verify(commitment.Parts[i], response.SubChallenges[i], response.Branches[i]) {
			return false
		}
	}
	return true
}
