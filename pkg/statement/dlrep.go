package statement

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
)

// DLRep is the atomic statement: "I know x0, x1, ... such that
// lhs = x0*G0 + x1*G1 + ...". It is the leaf of every statement tree; And
// and Or exist only to combine DLReps (and each other).
type DLRep struct {
	suite group.Suite
	lhs   kyber.Point
	terms secret.Expr
}

// NewDLRep builds a DLRep over suite asserting lhs == expr. It fails with
// ErrMalformedStatement if expr has no terms, or if any generator is not in
// the same group as lhs -- see pointGroupTag.
func NewDLRep(suite group.Suite, lhs kyber.Point, expr secret.Expr) (*DLRep, error) {
	if len(expr) == 0 {
		return nil, malformedStatementf("DLRep: expression has no terms")
	}
	tag := pointGroupTag(lhs)
	for i, t := range expr {
		if pointGroupTag(t.Generator) != tag {
			return nil, malformedStatementf("DLRep: term %d generator is not in lhs's group", i)
		}
	}
	return &DLRep{suite: suite, lhs: lhs, terms: expr}, nil
}

func (d *DLRep) SecretNames() []string     { return d.terms.SecretNames() }
func (d *DLRep) Generators() []kyber.Point { return d.terms.Generators() }

func (d *DLRep) GetProver(secrets map[string]*big.Int) (*Prover, error) {
	return newProver(d.suite, d.buildProverNode(secrets)), nil
}

func (d *DLRep) GetVerifier() *Verifier {
	return newVerifier(d.suite, &dlRepVerifierNode{stmt: d})
}

func (d *DLRep) GetSimulator() *Prover {
	return newProver(d.suite, &dlRepProverNode{stmt: d, values: nil})
}

func (d *DLRep) ProofID() []byte {
	b := newProofIDBuilder()
	d.writeProofID(b)
	return b.sum()
}

func (d *DLRep) writeProofID(b *proofIDBuilder) {
	b.writeKind(KindDLRep)
	b.writePoint(d.lhs)
	for _, t := range d.terms {
		b.writeString(t.Secret.Name)
		b.writePoint(t.Generator)
	}
}

func (d *DLRep) buildProverNode(secrets map[string]*big.Int) proverNode {
	values := mergedValues(d.terms, secrets)
	if !hasFullWitness(d.SecretNames(), values) {
		return &dlRepProverNode{stmt: d, values: nil}
	}
	return &dlRepProverNode{stmt: d, values: values}
}

// mergedValues resolves each term's witness preferring an explicit entry in
// secrets, falling back to a value already bound on the Secret itself (e.g.
// one built with secret.NewNamedWithValue).
func mergedValues(terms secret.Expr, secrets map[string]*big.Int) map[string]*big.Int {
	out := make(map[string]*big.Int, len(terms))
	for _, t := range terms {
		if v, ok := secrets[t.Secret.Name]; ok {
			out[t.Secret.Name] = v
		} else if t.Secret.Bound() {
			out[t.Secret.Name] = t.Secret.Value
		}
	}
	return out
}

func (d *DLRep) proverNode(secrets map[string]*big.Int) proverNode {
	return d.buildProverNode(secrets)
}

func (d *DLRep) verifierNode() verifierNode {
	return &dlRepVerifierNode{stmt: d}
}

// dlRepProverNode is the per-run prover state for a DLRep: either fully
// witnessed (values has an entry for every term) or entirely unwitnessed
// (values == nil, usable only via simulateGivenChallenge).
type dlRepProverNode struct {
	stmt   *DLRep
	values map[string]*big.Int
}

func (n *dlRepProverNode) secretNames() []string { return n.stmt.SecretNames() }

func (n *dlRepProverNode) canProve() bool { return n.values != nil }

func (n *dlRepProverNode) randomizers(suite group.Suite, rng cipher.Stream) map[string]kyber.Scalar {
	out := make(map[string]kyber.Scalar, len(n.stmt.terms))
	for _, t := range n.stmt.terms {
		if _, ok := out[t.Secret.Name]; ok {
			continue // repeated name: the first randomizer drawn is kept and reused.
		}
		out[t.Secret.Name] = group.RandomScalar(suite, rng)
	}
	return out
}

func (n *dlRepProverNode) commit(_ cipher.Stream, randomizers map[string]kyber.Scalar) (Commitment, error) {
	if n.values == nil {
		return Commitment{}, noWitnessf("DLRep.commit: no witness bound")
	}
	acc := n.stmt.suite.Point().Null()
	for _, t := range n.stmt.terms {
		k, ok := randomizers[t.Secret.Name]
		if !ok {
			return Commitment{}, noWitnessf("DLRep.commit: missing randomizer for %q", t.Secret.Name)
		}
		acc = n.stmt.suite.Point().Add(acc, n.stmt.suite.Point().Mul(k, t.Generator))
	}
	return Commitment{Kind: KindDLRep, Point: acc}, nil
}

func (n *dlRepProverNode) response(challenge kyber.Scalar, randomizers map[string]kyber.Scalar) (Response, error) {
	if n.values == nil {
		return Response{}, noWitnessf("DLRep.response: no witness bound")
	}
	scalars := make([]kyber.Scalar, len(n.stmt.terms))
	for i, t := range n.stmt.terms {
		k, ok := randomizers[t.Secret.Name]
		if !ok {
			return Response{}, noWitnessf("DLRep.response: missing randomizer for %q", t.Secret.Name)
		}
		x, ok := n.values[t.Secret.Name]
		if !ok {
			return Response{}, noWitnessf("DLRep.response: missing witness value for %q", t.Secret.Name)
		}
		xs := group.ScalarFromInt(n.stmt.suite, x)
		s := n.stmt.suite.Scalar().Mul(challenge, xs)
		s = n.stmt.suite.Scalar().Add(k, s)
		scalars[i] = s
	}
	return Response{Kind: KindDLRep, Scalars: scalars}, nil
}

func (n *dlRepProverNode) simulateGivenChallenge(challenge kyber.Scalar, rng cipher.Stream) (Commitment, Response) {
	suite := n.stmt.suite
	scalars := make([]kyber.Scalar, len(n.stmt.terms))
	for i := range n.stmt.terms {
		scalars[i] = group.RandomScalar(suite, rng)
	}
	commitment := recomputeDLRepCommitment(suite, n.stmt, challenge, scalars)
	return commitment, Response{Kind: KindDLRep, Scalars: scalars}
}

// recomputeDLRepCommitment derives the Commitment a DLRep must have emitted
// for (challenge, scalars) to verify: Sigma(s_i*G_i) - challenge*lhs.
func recomputeDLRepCommitment(suite group.Suite, d *DLRep, challenge kyber.Scalar, scalars []kyber.Scalar) Commitment {
	acc := suite.Point().Null()
	for i, t := range d.terms {
		acc = suite.Point().Add(acc, suite.Point().Mul(scalars[i], t.Generator))
	}
	acc = suite.Point().Sub(acc, suite.Point().Mul(challenge, d.lhs))
	return Commitment{Kind: KindDLRep, Point: acc}
}

type dlRepVerifierNode struct {
	stmt *DLRep
}

func (n *dlRepVerifierNode) verify(commitment Commitment, challenge kyber.Scalar, response Response) bool {
	if commitment.Kind != KindDLRep || response.Kind != KindDLRep {
		return false
	}
	if len(response.Scalars) != len(n.stmt.terms) {
		return false
	}
	want := recomputeDLRepCommitment(n.stmt.suite, n.stmt, challenge, response.Scalars)
	return want.Point.Equal(commitment.Point)
}
