// Package secret holds the witness-variable and linear-expression building
// blocks used to write down discrete-logarithm statements: Secret (a named
// witness slot) and Expr (a formal sum of Secret*generator terms).
package secret

import (
	"fmt"
	"math/big"
	"sync/atomic"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
)

var autoNameCounter atomic.Uint64

// Secret is a witness slot. Two Secrets denote the same proof variable iff
// their Name is equal -- there is no pointer identity here on purpose, so a
// Secret is a plain value type, safe to copy and compare by field.
type Secret struct {
	Name  string
	Value *big.Int // nil if unbound (verifier side, or not-yet-precommitted).
}

// New creates an unbound Secret with an automatically generated, unique
// name.
func New() Secret {
	return Secret{Name: nextAutoName()}
}

// NewNamed creates an unbound Secret with an explicit name.
func NewNamed(name string) Secret {
	return Secret{Name: name}
}

// NewWithValue creates a Secret bound to value, with an automatically
// generated name.
func NewWithValue(value *big.Int) Secret {
	return Secret{Name: nextAutoName(), Value: value}
}

// NewNamedWithValue creates a Secret with an explicit name, bound to value.
func NewNamedWithValue(name string, value *big.Int) Secret {
	return Secret{Name: name, Value: value}
}

func nextAutoName() string {
	return fmt.Sprintf("secret_%d", autoNameCounter.Add(1))
}

// Bound reports whether the Secret currently carries a witness value.
func (s Secret) Bound() bool {
	return s.Value != nil
}

// WithValue returns a copy of s bound to value, leaving s itself untouched.
func (s Secret) WithValue(value *big.Int) Secret {
	return Secret{Name: s.Name, Value: value}
}

// Scalar converts the witness value to a kyber.Scalar in suite's field.
// Panics if the Secret is unbound; callers must check Bound() first (the
// statement package does, raising NoWitness instead of panicking).
func (s Secret) Scalar(suite group.Suite) kyber.Scalar {
	if s.Value == nil {
		panic("secret: Scalar called on unbound Secret " + s.Name)
	}
	return group.ScalarFromInt(suite, s.Value)
}
