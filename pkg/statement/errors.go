package statement

import "golang.org/x/xerrors"

// Sentinel error kinds, checked with errors.Is/xerrors.Is. Construction-time
// errors (ErrMalformedStatement) are returned eagerly from New*/And/Or.
// Protocol-time programming errors (ErrNoWitness, ErrOutOfRange,
// ErrUsageError) are returned from Prover/Verifier methods.
// VerificationFailure is deliberately not among them: a failed verification
// is surfaced as Verifier.Verify returning false, never as an error -- this
// keeps "the proof didn't check out" distinct from "the caller misused the
// API".
var (
	ErrMalformedStatement = xerrors.New("malformed statement")
	ErrNoWitness          = xerrors.New("prover has no witness value for a secret")
	ErrOutOfRange         = xerrors.New("value exceeds its declared bit width")
	ErrUsageError         = xerrors.New("protocol phase violation")
)

func malformedStatementf(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, ErrMalformedStatement)...)
}

func noWitnessf(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, ErrNoWitness)...)
}

func outOfRangef(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, ErrOutOfRange)...)
}

func usageErrorf(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, ErrUsageError)...)
}
