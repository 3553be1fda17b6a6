package rangeproof

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

// Range proves L <= v < U given com = v*g + r*h, by reducing to two
// PowerTwoRange sub-proofs on v-L and U-1-v (see DESIGN.md for why: the
// source this was distilled from declares RangeProof(lower, upper) but
// never implements its body).
type Range struct {
	suite      group.Suite
	com        kyber.Point
	g, h       kyber.Point
	lower      *big.Int
	span       *big.Int // upper - 1 - lower, the public constant v1+v2 always equals.
	nrBits     int
	value, r   secret.Secret

	phase state
	sub1  *PowerTwoRange
	sub2  *PowerTwoRange
	r1, r2 secret.Secret
}

// NewRange builds a PreBuilt Range asserting lower <= v < upper.
func NewRange(suite group.Suite, com, g, h kyber.Point, lower, upper *big.Int, value, r secret.Secret) *Range {
	span := new(big.Int).Sub(upper, big.NewInt(1))
	span.Sub(span, lower)
	return &Range{
		suite: suite, com: com, g: g, h: h,
		lower: lower, span: span, nrBits: span.BitLen(),
		value: value, r: r, phase: statePreBuilt,
	}
}

// OuterPrecommitment is the message a Range prover sends before the core
// protocol: the two sub-proofs' own precommitments, their Pedersen
// commitments com1/com2, and the revealed linking randomizer rho.
type OuterPrecommitment struct {
	Com1, Com2   kyber.Point
	Pre1, Pre2   Precommitment
	Rho          kyber.Scalar
}

// Precommit runs both sub-proofs' precommit phases and reveals the linking
// randomizer rho = r1 + r2 - r (mod order).
func (rp *Range) Precommit(rng cipher.Stream) (OuterPrecommitment, error) {
	if rp.phase != statePreBuilt {
		return OuterPrecommitment{}, statement.ErrUsageError
	}
	if !rp.value.Bound() || !rp.r.Bound() {
		return OuterPrecommitment{}, statement.ErrNoWitness
	}
	v := rp.value.Value
	if v.Cmp(rp.lower) < 0 {
		return OuterPrecommitment{}, statement.ErrOutOfRange
	}

	v1 := new(big.Int).Sub(v, rp.lower)
	v2 := new(big.Int).Sub(rp.span, v1)
	if v2.Sign() < 0 {
		return OuterPrecommitment{}, statement.ErrOutOfRange
	}

	r1Big := group.RandomBig(256)
	r2Big := group.RandomBig(256)
	rp.r1 = secret.NewWithValue(r1Big)
	rp.r2 = secret.NewWithValue(r2Big)

	v1Secret := secret.NewWithValue(v1)
	v2Secret := secret.NewWithValue(v2)

	com1 := rp.suite.Point().Add(rp.suite.Point().Mul(v1Secret.Scalar(rp.suite), rp.g), rp.suite.Point().Mul(rp.r1.Scalar(rp.suite), rp.h))
	com2 := rp.suite.Point().Add(rp.suite.Point().Mul(v2Secret.Scalar(rp.suite), rp.g), rp.suite.Point().Mul(rp.r2.Scalar(rp.suite), rp.h))

	rp.sub1 = NewPowerTwoRange(rp.suite, com1, rp.g, rp.h, rp.nrBits, v1Secret, rp.r1)
	rp.sub2 = NewPowerTwoRange(rp.suite, com2, rp.g, rp.h, rp.nrBits, v2Secret, rp.r2)

	pre1, err := rp.sub1.Precommit(rng)
	if err != nil {
		return OuterPrecommitment{}, err
	}
	pre2, err := rp.sub2.Precommit(rng)
	if err != nil {
		return OuterPrecommitment{}, err
	}

	rScalar := rp.r.Scalar(rp.suite)
	rho := rp.suite.Scalar().Add(rp.r1.Scalar(rp.suite), rp.r2.Scalar(rp.suite))
	rho = rp.suite.Scalar().Sub(rho, rScalar)

	rp.phase = stateReadyForProve
	return OuterPrecommitment{Com1: com1, Com2: com2, Pre1: pre1, Pre2: pre2, Rho: rho}, nil
}

// AdoptPrecommitment runs the verifier's side: build the two sub-proof
// verifiers, check each one's own adequate-lhs condition, then check the
// outer linking equation com1+com2 == com + span*g + rho*h.
func (rp *Range) AdoptPrecommitment(pre OuterPrecommitment) (bool, error) {
	if rp.phase != statePreBuilt {
		return false, statement.ErrUsageError
	}
	v1Unbound := secret.New()
	v2Unbound := secret.New()
	r1Unbound := secret.New()
	r2Unbound := secret.New()

	rp.sub1 = NewPowerTwoRange(rp.suite, pre.Com1, rp.g, rp.h, rp.nrBits, v1Unbound, r1Unbound)
	rp.sub2 = NewPowerTwoRange(rp.suite, pre.Com2, rp.g, rp.h, rp.nrBits, v2Unbound, r2Unbound)

	ok1, err := rp.sub1.AdoptPrecommitment(pre.Pre1)
	if err != nil || !ok1 {
		return false, err
	}
	ok2, err := rp.sub2.AdoptPrecommitment(pre.Pre2)
	if err != nil || !ok2 {
		return false, err
	}

	spanScalar := group.ScalarFromInt(rp.suite, rp.span)
	want := rp.suite.Point().Add(rp.com, rp.suite.Point().Mul(spanScalar, rp.g))
	want = rp.suite.Point().Add(want, rp.suite.Point().Mul(pre.Rho, rp.h))
	got := rp.suite.Point().Add(pre.Com1, pre.Com2)
	if !got.Equal(want) {
		return false, nil
	}

	rp.phase = stateReadyForVerify
	return true, nil
}

// Statement returns the conjunction of both sub-proofs' constructed
// statements.
func (rp *Range) Statement() statement.Statement {
	if rp.phase == statePreBuilt {
		panic("rangeproof: Range.Statement called before Precommit/AdoptPrecommitment")
	}
	and, err := statement.NewAnd(rp.suite, rp.sub1.Statement(), rp.sub2.Statement())
	if err != nil {
		panic(err) // the two sub-proofs share no Secret names (each PowerTwoRange mints its own).
	}
	return and
}

// GetProver builds a Prover for both sub-proofs combined.
func (rp *Range) GetProver() (*statement.Prover, error) {
	if rp.phase != stateReadyForProve {
		return nil, statement.ErrUsageError
	}
	secrets := make(map[string]*big.Int)
	for k, v := range rp.sub1.proverSecrets() {
		secrets[k] = v
	}
	for k, v := range rp.sub2.proverSecrets() {
		secrets[k] = v
	}
	return rp.Statement().GetProver(secrets)
}

// GetVerifier builds a Verifier for both sub-proofs combined.
func (rp *Range) GetVerifier() *statement.Verifier {
	if rp.phase != stateReadyForVerify {
		panic("rangeproof: Range.GetVerifier called before AdoptPrecommitment")
	}
	return rp.Statement().GetVerifier()
}
