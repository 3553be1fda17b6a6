// Package batch runs many independent proof verifications concurrently.
// Per the concurrency model the core packages hold to (no goroutines inside
// a single Prover/Verifier run), this is the one place a pool of CPU cores
// is put to work, and only across runs that share no mutable state.
package batch

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"sigmazk/pkg/concurrency"
	"sigmazk/pkg/context"
	"sigmazk/pkg/statement"
)

// ErrVerificationFailed reports that a run's Response did not satisfy its
// Statement's verifier equations -- distinct from an error return, which
// signals a usage or shape problem rather than a failed proof.
var ErrVerificationFailed = xerrors.New("batch: verification failed")

// Run is one independent, already-completed proof transcript: a Statement
// together with the three messages exchanged for it.
type Run struct {
	Statement  statement.Statement
	Commitment statement.Commitment
	Challenge  kyber.Scalar
	Response   statement.Response
}

// VerifyAll checks every run's transcript against its own Statement's
// verifier, in parallel when ctx.Config.Cores > 1 and there are enough runs
// to make it worthwhile (see concurrency.ForEach's threshold). The returned
// slice has one entry per run, in order: nil on acceptance,
// ErrVerificationFailed on a rejected proof.
func VerifyAll(ctx *context.OperationContext, runs []Run) []error {
	errs := make([]error, len(runs))
	_ = concurrency.ForEach(ctx, runs, func(i int, run Run) error {
		verifier := run.Statement.GetVerifier()
		if !verifier.VerifyProof(run.Commitment, run.Challenge, run.Response) {
			errs[i] = ErrVerificationFailed
		}
		return nil
	})
	return errs
}
