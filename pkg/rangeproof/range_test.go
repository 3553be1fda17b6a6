package rangeproof

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

func buildRangeCom(suite group.Suite, g, h kyber.Point, v, r secret.Secret) kyber.Point {
	return suite.Point().Add(suite.Point().Mul(v.Scalar(suite), g), suite.Point().Mul(r.Scalar(suite), h))
}

// S6 (general reduction): a value within [lower, upper) produces an
// accepting proof end to end.
func TestRangeAccepts(t *testing.T) {
	suite := group.Default
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("h"))

	lower := big.NewInt(10)
	upper := big.NewInt(20)

	v := secret.NewWithValue(big.NewInt(15))
	r := secret.NewWithValue(group.RandomBig(256))
	com := buildRangeCom(suite, g, h, v, r)

	rng := group.RandomStream(suite, "range-test-seed")

	prover := NewRange(suite, com, g, h, lower, upper, v, r)
	pre, err := prover.Precommit(rng)
	require.NoError(t, err)

	verifierSideV := secret.NewNamed(v.Name)
	verifierSideR := secret.NewNamed(r.Name)
	verifier := NewRange(suite, com, g, h, lower, upper, verifierSideV, verifierSideR)
	ok, err := verifier.AdoptPrecommitment(pre)
	require.NoError(t, err)
	require.True(t, ok)

	sProver, err := prover.GetProver()
	require.NoError(t, err)
	commitment, err := sProver.Commit()
	require.NoError(t, err)

	sVerifier := verifier.GetVerifier()
	require.NoError(t, sVerifier.ProcessCommitment(commitment))
	challenge, err := sVerifier.SendChallenge()
	require.NoError(t, err)

	response, err := sProver.ComputeResponse(challenge)
	require.NoError(t, err)

	accepted, err := sVerifier.Verify(response)
	require.NoError(t, err)
	require.True(t, accepted)
}

// A value below lower is rejected at precommit.
func TestRangeRejectsBelowLower(t *testing.T) {
	suite := group.Default
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("h"))

	lower := big.NewInt(10)
	upper := big.NewInt(20)

	v := secret.NewWithValue(big.NewInt(5))
	r := secret.NewWithValue(group.RandomBig(256))
	com := buildRangeCom(suite, g, h, v, r)

	prover := NewRange(suite, com, g, h, lower, upper, v, r)
	_, err := prover.Precommit(group.RandomStream(suite, "below-lower-seed"))
	require.ErrorIs(t, err, statement.ErrOutOfRange)
}

// A value at or above upper is rejected at precommit.
func TestRangeRejectsAtOrAboveUpper(t *testing.T) {
	suite := group.Default
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("h"))

	lower := big.NewInt(10)
	upper := big.NewInt(20)

	v := secret.NewWithValue(big.NewInt(20))
	r := secret.NewWithValue(group.RandomBig(256))
	com := buildRangeCom(suite, g, h, v, r)

	prover := NewRange(suite, com, g, h, lower, upper, v, r)
	_, err := prover.Precommit(group.RandomStream(suite, "above-upper-seed"))
	require.ErrorIs(t, err, statement.ErrOutOfRange)
}

// A tampered outer precommitment (perturbed rho) fails the outer linking
// check before any three-message exchange happens.
func TestRangeRejectsTamperedOuterPrecommitment(t *testing.T) {
	suite := group.Default
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("h"))

	lower := big.NewInt(10)
	upper := big.NewInt(20)

	v := secret.NewWithValue(big.NewInt(15))
	r := secret.NewWithValue(group.RandomBig(256))
	com := buildRangeCom(suite, g, h, v, r)

	prover := NewRange(suite, com, g, h, lower, upper, v, r)
	pre, err := prover.Precommit(group.RandomStream(suite, "tamper-outer-seed"))
	require.NoError(t, err)

	pre.Rho = suite.Scalar().Add(pre.Rho, suite.Scalar().One())

	verifierSideV := secret.NewNamed(v.Name)
	verifierSideR := secret.NewNamed(r.Name)
	verifier := NewRange(suite, com, g, h, lower, upper, verifierSideV, verifierSideR)
	ok, err := verifier.AdoptPrecommitment(pre)
	require.NoError(t, err)
	require.False(t, ok)
}

// A tampered Com1 in the outer precommitment also fails the linking check.
func TestRangeRejectsTamperedCom1(t *testing.T) {
	suite := group.Default
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("h"))

	lower := big.NewInt(10)
	upper := big.NewInt(20)

	v := secret.NewWithValue(big.NewInt(15))
	r := secret.NewWithValue(group.RandomBig(256))
	com := buildRangeCom(suite, g, h, v, r)

	prover := NewRange(suite, com, g, h, lower, upper, v, r)
	pre, err := prover.Precommit(group.RandomStream(suite, "tamper-com1-seed"))
	require.NoError(t, err)

	pre.Com1 = suite.Point().Add(pre.Com1, g)

	verifierSideV := secret.NewNamed(v.Name)
	verifierSideR := secret.NewNamed(r.Name)
	verifier := NewRange(suite, com, g, h, lower, upper, verifierSideV, verifierSideR)
	ok, err := verifier.AdoptPrecommitment(pre)
	require.NoError(t, err)
	require.False(t, ok)
}
