package fiatshamir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(9))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	proof, err := Prove(suite, stmt, map[string]*big.Int{"x": big.NewInt(9)})
	require.NoError(t, err)
	require.True(t, Verify(suite, stmt, proof))
}

// Swapping in a different challenge (the derived one plus one) must be caught:
// Verify re-derives the challenge itself rather than trusting proof.Challenge.
func TestVerifyRejectsForgedChallenge(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(9))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	proof, err := Prove(suite, stmt, map[string]*big.Int{"x": big.NewInt(9)})
	require.NoError(t, err)

	proof.Challenge = suite.Scalar().Add(proof.Challenge, suite.Scalar().One())
	require.False(t, Verify(suite, stmt, proof))
}

func TestProveErrorsWithoutWitness(t *testing.T) {
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamed("x")
	lhs := group.HashToPoint(suite, []byte("arbitrary"))
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	_, err = Prove(suite, stmt, nil)
	require.Error(t, err)
}
