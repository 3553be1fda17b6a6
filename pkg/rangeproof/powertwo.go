// Package rangeproof implements the one extended statement spec.md carries:
// proving 0 <= v < 2^n for a Pedersen commitment, by decomposing v into
// bits and reducing to an And-of-Ors over the atomic statement algebra in
// package statement. It also reduces the general L <= v < U range to two
// power-of-two sub-proofs (see Range, and DESIGN.md's resolution of the
// upstream Open Question).
package rangeproof

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

// state is the builder phase a PowerTwoRange is in, per the design notes'
// call for a builder over a mutating tree: PreBuilt -> ReadyForProve (the
// prover's path, which knows v and r) or ReadyForVerify (the verifier's
// path, which only has the precommitment).
type state int

const (
	statePreBuilt state = iota
	stateReadyForProve
	stateReadyForVerify
)

// PowerTwoRange proves 0 <= value < 2^nrBits given com = value*g + r*h. It
// is a builder, not a Statement itself: Precommit (prover) or
// AdoptPrecommitment (verifier) must run before Statement is callable,
// matching spec.md's PRECOMMITTED phase for extended statements.
type PowerTwoRange struct {
	suite  group.Suite
	com    kyber.Point
	g, h   kyber.Point
	nrBits int
	value  secret.Secret // bound on the prover side, unbound on the verifier side.
	r      secret.Secret

	phase          state
	bitRandomizers []secret.Secret
	bitCommitments []kyber.Point
	rho            kyber.Scalar
	constructed    statement.Statement

	// leftSecrets/rightSecrets hold the per-branch randomizer Secret used
	// inside buildStatement's Or for bit i's "bit is 0"/"bit is 1" DLRep.
	// They are deliberately two distinct names, not one shared name: only
	// the branch that matches the real bit value is ever witnessed, so
	// Or's real-branch auto-detection (which keys off which Secret names
	// are bound) picks the correct side instead of always picking left
	// just because bitRandomizers[i] happens to be bound either way.
	leftSecrets  []secret.Secret
	rightSecrets []secret.Secret
}

// NewPowerTwoRange builds a PreBuilt PowerTwoRange. value and r may be
// unbound (verifier side): Precommit requires value to be bound,
// AdoptPrecommitment does not.
func NewPowerTwoRange(suite group.Suite, com, g, h kyber.Point, nrBits int, value, r secret.Secret) *PowerTwoRange {
	return &PowerTwoRange{suite: suite, com: com, g: g, h: h, nrBits: nrBits, value: value, r: r, phase: statePreBuilt}
}

// Precommitment is the message the prover sends before the three-message
// core protocol begins: one Pedersen commitment per bit, plus the revealed
// randomizer that lets the verifier check they sum to com.
type Precommitment struct {
	BitCommitments []kyber.Point
	Rho            kyber.Scalar
}

// Precommit runs the prover's precommit phase: bit-decompose value, sample
// fresh per-bit randomizers, commit to each bit, and reveal rho. Must be
// called exactly once, from statePreBuilt. Returns ErrOutOfRange if value
// does not fit in nrBits bits.
func (p *PowerTwoRange) Precommit(rng cipher.Stream) (Precommitment, error) {
	if p.phase != statePreBuilt {
		return Precommitment{}, statement.ErrUsageError
	}
	if !p.value.Bound() || !p.r.Bound() {
		return Precommitment{}, statement.ErrNoWitness
	}
	v := p.value.Value
	if v.Sign() < 0 || v.BitLen() > p.nrBits {
		return Precommitment{}, statement.ErrOutOfRange
	}

	bitRandomizers := make([]secret.Secret, p.nrBits)
	bitCommitments := make([]kyber.Point, p.nrBits)
	acc := p.suite.Scalar().Zero()

	for i := 0; i < p.nrBits; i++ {
		ri := group.RandomBig(256)
		riSecret := secret.NewWithValue(ri)
		bitRandomizers[i] = riSecret

		riScalar := group.ScalarFromInt(p.suite, ri)
		bitCommitments[i] = p.suite.Point().Mul(riScalar, p.h)
		if v.Bit(i) == 1 {
			bitCommitments[i] = p.suite.Point().Add(bitCommitments[i], p.g)
		}

		twoPowI := group.ScalarFromInt(p.suite, new(big.Int).Lsh(big.NewInt(1), uint(i)))
		term := p.suite.Scalar().Mul(twoPowI, riScalar)
		acc = p.suite.Scalar().Add(acc, term)
	}

	rScalar := p.r.Scalar(p.suite)
	rho := p.suite.Scalar().Sub(acc, rScalar)

	p.bitRandomizers = bitRandomizers
	p.bitCommitments = bitCommitments
	p.rho = rho
	p.constructed = p.buildStatement()
	p.phase = stateReadyForProve

	return Precommitment{BitCommitments: bitCommitments, Rho: rho}, nil
}

// AdoptPrecommitment runs the verifier's precommit phase: record the
// prover's precommitment and check it is internally adequate
// (check_adequate_lhs) before any three-message exchange happens.
func (p *PowerTwoRange) AdoptPrecommitment(pre Precommitment) (bool, error) {
	if p.phase != statePreBuilt {
		return false, statement.ErrUsageError
	}
	if len(pre.BitCommitments) != p.nrBits {
		return false, statement.ErrMalformedStatement
	}
	p.bitCommitments = pre.BitCommitments
	p.rho = pre.Rho
	p.constructed = p.buildStatement()
	p.phase = stateReadyForVerify

	if !p.checkAdequateLHS() {
		return false, nil
	}
	return true, nil
}

// checkAdequateLHS verifies Sigma(2^i * C_i) == com + rho*h, the public
// linear check tying the bit commitments back to com before the
// constructed And-of-Ors is even run.
func (p *PowerTwoRange) checkAdequateLHS() bool {
	acc := p.suite.Point().Null()
	for i, c := range p.bitCommitments {
		twoPowI := group.ScalarFromInt(p.suite, new(big.Int).Lsh(big.NewInt(1), uint(i)))
		acc = p.suite.Point().Add(acc, p.suite.Point().Mul(twoPowI, c))
	}
	want := p.suite.Point().Add(p.com, p.suite.Point().Mul(p.rho, p.h))
	return acc.Equal(want)
}

// buildStatement assembles the And of per-bit Ors: for bit i,
// DLRep(C_i, r_i_left*h) | DLRep(C_i - g, r_i_right*h), real-left when the
// bit is 0, real-right when it is 1.
func (p *PowerTwoRange) buildStatement() statement.Statement {
	ors := make([]statement.Statement, p.nrBits)
	p.leftSecrets = make([]secret.Secret, p.nrBits)
	p.rightSecrets = make([]secret.Secret, p.nrBits)
	for i := 0; i < p.nrBits; i++ {
		leftSecret := secret.New()
		rightSecret := secret.New()
		p.leftSecrets[i] = leftSecret
		p.rightSecrets[i] = rightSecret

		left, err := statement.NewDLRep(p.suite, p.bitCommitments[i], secret.Expr{leftSecret.Mul(p.h)})
		if err != nil {
			panic(err) // both sides have the same group-tagged generators by construction.
		}
		shifted := p.suite.Point().Sub(p.bitCommitments[i], p.g)
		right, err := statement.NewDLRep(p.suite, shifted, secret.Expr{rightSecret.Mul(p.h)})
		if err != nil {
			panic(err)
		}
		or, err := statement.NewOr(p.suite, left, right)
		if err != nil {
			panic(err)
		}
		ors[i] = or
	}
	and, err := statement.NewAnd(p.suite, ors...)
	if err != nil {
		panic(err) // distinct per-branch secret names, only h shared; can't fail consistency.
	}
	return and
}

// Statement returns the constructed And-of-Ors once precommitment has
// happened on either side. Panics if called while still PreBuilt -- the
// builder pattern exists precisely so a caller can't reach this state by
// accident (see DESIGN.md).
func (p *PowerTwoRange) Statement() statement.Statement {
	if p.phase == statePreBuilt {
		panic("rangeproof: Statement called before Precommit/AdoptPrecommitment")
	}
	return p.constructed
}

// proverSecrets returns, for each bit, the witness for whichever branch is
// real -- the map GetProver (and Range, which combines several of these)
// feeds to the constructed statement.
func (p *PowerTwoRange) proverSecrets() map[string]*big.Int {
	secrets := make(map[string]*big.Int, p.nrBits)
	for i, ri := range p.bitRandomizers {
		if p.value.Value.Bit(i) == 0 {
			secrets[p.leftSecrets[i].Name] = ri.Value
		} else {
			secrets[p.rightSecrets[i].Name] = ri.Value
		}
	}
	return secrets
}

// GetProver builds a Prover for the constructed statement. For each bit it
// binds only the branch Secret matching the real bit value, so Or's
// real-branch detection lands on the side that is actually true.
func (p *PowerTwoRange) GetProver() (*statement.Prover, error) {
	if p.phase != stateReadyForProve {
		return nil, statement.ErrUsageError
	}
	return p.Statement().GetProver(p.proverSecrets())
}

// GetVerifier builds a Verifier for the constructed statement. Must be
// called after AdoptPrecommitment.
func (p *PowerTwoRange) GetVerifier() *statement.Verifier {
	if p.phase != stateReadyForVerify {
		panic("rangeproof: GetVerifier called before AdoptPrecommitment")
	}
	return p.Statement().GetVerifier()
}
