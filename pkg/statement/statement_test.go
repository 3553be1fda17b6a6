package statement

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/suites"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
)

func runHonest(t *testing.T, stmt Statement, secrets map[string]*big.Int) (Commitment, kyber.Scalar, Response, bool) {
	t.Helper()
	prover, err := stmt.GetProver(secrets)
	require.NoError(t, err)

	commitment, err := prover.Commit()
	require.NoError(t, err)

	verifier := stmt.GetVerifier()
	require.NoError(t, verifier.ProcessCommitment(commitment))
	challenge, err := verifier.SendChallenge()
	require.NoError(t, err)

	response, err := prover.ComputeResponse(challenge)
	require.NoError(t, err)

	ok, err := verifier.Verify(response)
	require.NoError(t, err)
	return commitment, challenge, response, ok
}

// S1: atomic DLRep, honest run accepts.
func TestDLRepHonestRunAccepts(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	H := group.HashToPoint(suite, []byte("h"))

	x := secret.NewNamedWithValue("x", big.NewInt(3))
	y := secret.NewNamedWithValue("y", big.NewInt(5))
	lhs := suite.Point().Add(suite.Point().Mul(x.Scalar(suite), G), suite.Point().Mul(y.Scalar(suite), H))

	expr := x.Mul(G).Add(y.Mul(H))
	stmt, err := NewDLRep(suite, lhs, expr)
	require.NoError(t, err)

	_, _, _, ok := runHonest(t, stmt, map[string]*big.Int{"x": big.NewInt(3), "y": big.NewInt(5)})
	require.True(t, ok)
}

// S2: And with a shared secret across two sub-relations in one group accepts;
// sharing the secret with a generator from a different group fails at
// construction.
func TestAndSharedSecretAcceptsAndRejectsCrossGroup(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	H := group.HashToPoint(suite, []byte("h"))
	K := group.HashToPoint(suite, []byte("k"))
	M := group.HashToPoint(suite, []byte("m"))

	x := secret.NewNamed("x")
	y := secret.NewNamed("y")
	z := secret.NewNamed("z")

	xs := group.ScalarFromInt(suite, big.NewInt(3))
	ys := group.ScalarFromInt(suite, big.NewInt(4))
	zs := group.ScalarFromInt(suite, big.NewInt(7))

	lhs1 := suite.Point().Add(suite.Point().Mul(xs, G), suite.Point().Mul(ys, H))
	lhs2 := suite.Point().Add(suite.Point().Mul(xs, K), suite.Point().Mul(zs, M))

	d1, err := NewDLRep(suite, lhs1, x.Mul(G).Add(y.Mul(H)))
	require.NoError(t, err)
	d2, err := NewDLRep(suite, lhs2, x.Mul(K).Add(z.Mul(M)))
	require.NoError(t, err)

	and, err := NewAnd(suite, d1, d2)
	require.NoError(t, err)

	secrets := map[string]*big.Int{"x": big.NewInt(3), "y": big.NewInt(4), "z": big.NewInt(7)}
	_, _, _, ok := runHonest(t, and, secrets)
	require.True(t, ok)

	other := suites.MustFind("P256")
	otherM := other.Point().Base()
	d3, err := NewDLRep(other, otherM, secret.Expr{x.Mul(otherM)})
	require.NoError(t, err)
	_, err = NewAnd(suite, d1, d3)
	require.ErrorIs(t, err, ErrMalformedStatement)
}

// S3/S4: Or statement accepts whichever branch has a witness, and the
// sub-challenges always sum to the parent challenge.
func TestOrAcceptsEitherBranch(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()

	x := secret.NewNamed("x")
	y := secret.NewNamed("y")

	xs := group.ScalarFromInt(suite, big.NewInt(5))
	ys := group.ScalarFromInt(suite, big.NewInt(7))

	left, err := NewDLRep(suite, suite.Point().Mul(xs, G), secret.Expr{x.Mul(G)})
	require.NoError(t, err)
	right, err := NewDLRep(suite, suite.Point().Mul(ys, G), secret.Expr{y.Mul(G)})
	require.NoError(t, err)

	or, err := NewOr(suite, left, right)
	require.NoError(t, err)

	t.Run("left real", func(t *testing.T) {
		commitment, challenge, response, ok := runHonest(t, or, map[string]*big.Int{"x": big.NewInt(5)})
		require.True(t, ok)
		require.Equal(t, KindOr, commitment.Kind)
		requireSubChallengesSumTo(t, suite, response, challenge)
	})

	t.Run("right real", func(t *testing.T) {
		commitment, challenge, response, ok := runHonest(t, or, map[string]*big.Int{"y": big.NewInt(7)})
		require.True(t, ok)
		require.Equal(t, KindOr, commitment.Kind)
		requireSubChallengesSumTo(t, suite, response, challenge)
	})
}

func requireSubChallengesSumTo(t *testing.T, suite group.Suite, response Response, challenge kyber.Scalar) {
	t.Helper()
	sum := suite.Scalar().Zero()
	for _, c := range response.SubChallenges {
		sum = suite.Scalar().Add(sum, c)
	}
	require.True(t, sum.Equal(challenge))
}

// S5: tampering with a response scalar after an honest run must flip
// verification to false.
func TestTamperedResponseFailsVerification(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(3))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	commitment, challenge, response, ok := runHonest(t, stmt, map[string]*big.Int{"x": big.NewInt(3)})
	require.True(t, ok)

	tampered := Response{Kind: response.Kind, Scalars: []kyber.Scalar{suite.Scalar().Add(response.Scalars[0], suite.Scalar().One())}}
	verifier := stmt.GetVerifier()
	require.False(t, verifier.VerifyProof(commitment, challenge, tampered))
}

// Simulated transcripts (no witness at all) must satisfy the same verifier
// equations as honest ones -- property 2.
func TestSimulatedProofVerifies(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamed("x")
	lhs := group.HashToPoint(suite, []byte("arbitrary-lhs"))
	stmt, err := NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	simulator := stmt.GetSimulator()
	commitment, challenge, response := simulator.SimulateProof()

	verifier := stmt.GetVerifier()
	require.True(t, verifier.VerifyProof(commitment, challenge, response))
}

// A fully-forced-simulated Or must also verify, and never touches a real
// witness even when one is available.
func TestForceSimulatedOrVerifies(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamed("x")
	y := secret.NewNamed("y")
	xs := group.ScalarFromInt(suite, big.NewInt(5))
	ys := group.ScalarFromInt(suite, big.NewInt(7))

	left, err := NewDLRep(suite, suite.Point().Mul(xs, G), secret.Expr{x.Mul(G)})
	require.NoError(t, err)
	right, err := NewDLRep(suite, suite.Point().Mul(ys, G), secret.Expr{y.Mul(G)})
	require.NoError(t, err)

	or, err := NewOr(suite, left, right)
	require.NoError(t, err)
	forced := or.Simulated()

	prover, err := forced.GetProver(map[string]*big.Int{"x": big.NewInt(5)})
	require.NoError(t, err)
	commitment, challenge, response := prover.SimulateProof()

	verifier := forced.GetVerifier()
	require.True(t, verifier.VerifyProof(commitment, challenge, response))
}

// Property 7: two independently built statements equal in shape produce
// equal proof IDs; a structurally different statement does not.
func TestProofIDIsStructural(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	H := group.HashToPoint(suite, []byte("h"))
	x := secret.NewNamed("x")
	y := secret.NewNamed("y")

	build := func() Statement {
		d1, err := NewDLRep(suite, G, secret.Expr{x.Mul(G)})
		require.NoError(t, err)
		d2, err := NewDLRep(suite, H, secret.Expr{y.Mul(H)})
		require.NoError(t, err)
		and, err := NewAnd(suite, d1, d2)
		require.NoError(t, err)
		return and
	}

	a := build()
	b := build()
	require.Equal(t, a.ProofID(), b.ProofID())

	d1, _ := NewDLRep(suite, G, secret.Expr{x.Mul(G)})
	d2, _ := NewDLRep(suite, H, secret.Expr{y.Mul(H)})
	asOr, err := NewOr(suite, d1, d2)
	require.NoError(t, err)
	require.NotEqual(t, a.ProofID(), asOr.ProofID())
}

func TestNewDLRepRejectsEmptyExpression(t *testing.T) {
	suite := group.Default
	_, err := NewDLRep(suite, suite.Point().Base(), nil)
	require.ErrorIs(t, err, ErrMalformedStatement)
}

func TestProverUsageErrors(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(3))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	prover, err := stmt.GetProver(map[string]*big.Int{"x": big.NewInt(3)})
	require.NoError(t, err)
	_, err = prover.Commit()
	require.NoError(t, err)
	_, err = prover.Commit()
	require.ErrorIs(t, err, ErrUsageError)

	simulator := stmt.GetSimulator()
	_, err = simulator.Commit()
	require.ErrorIs(t, err, ErrUsageError)
}
