package batch

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"sigmazk/pkg/config"
	"sigmazk/pkg/context"
	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

func buildRun(t *testing.T, value int64, tamper bool) Run {
	t.Helper()
	suite := group.Default
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(value))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	require.NoError(t, err)

	prover, err := stmt.GetProver(map[string]*big.Int{"x": big.NewInt(value)})
	require.NoError(t, err)
	commitment, err := prover.Commit()
	require.NoError(t, err)

	verifier := stmt.GetVerifier()
	require.NoError(t, verifier.ProcessCommitment(commitment))
	challenge, err := verifier.SendChallenge()
	require.NoError(t, err)

	response, err := prover.ComputeResponse(challenge)
	require.NoError(t, err)

	if tamper {
		response.Scalars[0] = suite.Scalar().Add(response.Scalars[0], suite.Scalar().One())
	}

	return Run{Statement: stmt, Commitment: commitment, Challenge: challenge, Response: response}
}

// VerifyAll reports per-run success/failure independently, sequentially.
func TestVerifyAllSequential(t *testing.T) {
	ctx := context.NewContext(&config.Config{Cores: 1}, nil)
	runs := []Run{buildRun(t, 3, false), buildRun(t, 5, true), buildRun(t, 7, false)}

	errs := VerifyAll(ctx, runs)
	require.Len(t, errs, 3)
	require.NoError(t, errs[0])
	require.ErrorIs(t, errs[1], ErrVerificationFailed)
	require.NoError(t, errs[2])
}

// The same batch, run with enough items and cores to take the parallel path,
// produces the same per-run results.
func TestVerifyAllParallel(t *testing.T) {
	runs := make([]Run, 150)
	for i := range runs {
		runs[i] = buildRun(t, int64(i+1), i%7 == 0)
	}

	ctx := context.NewContext(&config.Config{Cores: 4}, nil)
	errs := VerifyAll(ctx, runs)
	require.Len(t, errs, len(runs))
	for i, err := range errs {
		if i%7 == 0 {
			require.ErrorIs(t, err, ErrVerificationFailed)
		} else {
			require.NoError(t, err)
		}
	}
}
