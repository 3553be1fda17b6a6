package statement

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

// And is the conjunction of one or more Statements: the prover must know a
// witness for every child, and all children share the same challenge.
type And struct {
	suite    group.Suite
	children []Statement
	names    []string
	gens     []kyber.Point
}

// NewAnd combines children into a single conjunction. It fails with
// ErrMalformedStatement if children is empty, or if a Secret name is shared
// across children under generators from different groups.
func NewAnd(suite group.Suite, children ...Statement) (*And, error) {
	if len(children) == 0 {
		return nil, malformedStatementf("And: no children")
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
	return &And{suite: suite, children: children, names: names, gens: gens}, nil
}

func (a *And) SecretNames() []string     { return a.names }
func (a *And) Generators() []kyber.Point { return a.gens }

func (a *And) GetProver(secrets map[string]*big.Int) (*Prover, error) {
	return newProver(a.suite, a.proverNode(secrets)), nil
}

func (a *And) GetVerifier() *Verifier {
	return newVerifier(a.suite, a.verifierNode())
}

func (a *And) GetSimulator() *Prover {
	return newProver(a.suite, a.proverNode(nil))
}

func (a *And) ProofID() []byte {
	b := newProofIDBuilder()
	a.writeProofID(b)
	return b.sum()
}

func (a *And) writeProofID(b *proofIDBuilder) {
	b.writeKind(KindAnd)
	b.writeInt(len(a.children))
	for _, c := range a.children {
		c.writeProofID(b)
	}
}

func (a *And) proverNode(secrets map[string]*big.Int) proverNode {
	children := make([]proverNode, len(a.children))
	for i, c := range a.children {
		children[i] = c.proverNode(secrets)
	}
	return &andProverNode{children: children}
}

func (a *And) verifierNode() verifierNode {
	children := make([]verifierNode, len(a.children))
	for i, c := range a.children {
		children[i] = c.verifierNode()
	}
	return &andVerifierNode{children: children}
}

type andProverNode struct {
	children []proverNode
}

func (n *andProverNode) secretNames() []string {
	var names []string
	for _, c := range n.children {
		names = append(names, c.secretNames()...)
	}
	return names
}

func (n *andProverNode) canProve() bool {
	for _, c := range n.children {
		if !c.canProve() {
			return false
		}
	}
	return true
}

func (n *andProverNode) randomizers(suite group.Suite, rng cipher.Stream) map[string]kyber.Scalar {
	out := make(map[string]kyber.Scalar)
	for _, c := range n.children {
		for name, k := range c.randomizers(suite, rng) {
			out[name] = k
		}
	}
	return out
}

func (n *andProverNode) commit(rng cipher.Stream, randomizers map[string]kyber.Scalar) (Commitment, error) {
	parts := make([]Commitment, len(n.children))
	for i, c := range n.children {
		part, err := c.commit(rng, randomizers)
		if err != nil {
			return Commitment{}, err
		}
		parts[i] = part
	}
	return Commitment{Kind: KindAnd, Parts: parts}, nil
}

func (n *andProverNode) response(challenge kyber.Scalar, randomizers map[string]kyber.Scalar) (Response, error) {
	parts := make([]Response, len(n.children))
	for i, c := range n.children {
		part, err := c.response(challenge, randomizers)
		if err != nil {
			return Response{}, err
		}
		parts[i] = part
	}
	return Response{Kind: KindAnd, Parts: parts}, nil
}

func (n *andProverNode) simulateGivenChallenge(challenge kyber.Scalar, rng cipher.Stream) (Commitment, Response) {
	commitParts := make([]Commitment, len(n.children))
	respParts := make([]Response, len(n.children))
	for i, c := range n.children {
		commitParts[i], respParts[i] = c.simulateGivenChallenge(challenge, rng)
	}
	return Commitment{Kind: KindAnd, Parts: commitParts}, Response{Kind: KindAnd, Parts: respParts}
}

type andVerifierNode struct {
	children []verifierNode
}

func (n *andVerifierNode) verify(commitment Commitment, challenge kyber.Scalar, response Response) bool {
	if commitment.Kind != KindAnd || response.Kind != KindAnd {
		return false
	}
	if len(commitment.Parts) != len(n.children) || len(response.Parts) != len(n.children) {
		return false
	}
	for i, c := range n.children {
		if !c.verify(commitment.Parts[i], challenge, response.Parts[i]) {
			return false
		}
	}
	return true
}
