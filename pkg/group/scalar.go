package group

import (
	"crypto/cipher"
	cryptorand "crypto/rand"
	"math/big"

	"go.dedis.ch/kyber/v3"
)

// ScalarFromInt converts a non-negative big.Int into a kyber.Scalar in
// suite's field, by repeated double-and-add. kyber's Scalar arithmetic
// always reduces modulo the group order on every operation, so this never
// needs the order itself: it is simply "n mod order" expressed the only
// way the adapter ever touches a modulus -- through Scalar.Add/Mul.
func ScalarFromInt(suite Suite, n *big.Int) kyber.Scalar {
	result := suite.Scalar().Zero()
	if n.Sign() == 0 {
		return result
	}
	two := suite.Scalar().One()
	two = suite.Scalar().Add(two, suite.Scalar().One())
	one := suite.Scalar().One()

	bitLen := n.BitLen()
	for i := bitLen - 1; i >= 0; i-- {
		result = suite.Scalar().Mul(result, two)
		if n.Bit(i) == 1 {
			result = suite.Scalar().Add(result, one)
		}
	}
	return result
}

// RandomScalar samples a scalar uniformly from the full scalar field of
// suite, using rand (typically the suite's own RandomStream, or a seeded
// stream for reproducible tests).
func RandomScalar(suite Suite, rand cipher.Stream) kyber.Scalar {
	return suite.Scalar().Pick(rand)
}

// RandomChallenge samples a challenge scalar from a 128-bit random value,
// matching spec's "uniformly random 128-bit Scalar (reduced mod order)".
// The reduction happens implicitly: ScalarFromInt performs every addition
// and multiplication inside the scalar field.
func RandomChallenge(suite Suite) kyber.Scalar {
	buf := make([]byte, 16)
	if _, err := cryptorand.Read(buf); err != nil {
		panic(err)
	}
	return ScalarFromInt(suite, new(big.Int).SetBytes(buf))
}

// RandomBig samples a uniform non-negative integer of bits bits of entropy,
// suitable for feeding to ScalarFromInt. It deliberately does not try to
// stay under any group order: ScalarFromInt's double-and-add reduces
// implicitly, the same way RandomChallenge reduces its 128-bit sample.
func RandomBig(bits int) *big.Int {
	buf := make([]byte, (bits+7)/8)
	if _, err := cryptorand.Read(buf); err != nil {
		panic(err)
	}
	return new(big.Int).SetBytes(buf)
}

// HashToPoint derives a group element with uniform distribution and
// unknown discrete logarithm from msg, by picking a point from the
// deterministic stream the suite's XOF produces for msg.
func HashToPoint(suite Suite, msg []byte) kyber.Point {
	return suite.Point().Pick(suite.XOF(msg))
}

// SameGroup reports whether a and b were constructed by the same prime
// order group, by comparing their String() names. The statement package
// does not use it: its consistency checker tags each generator by its
// concrete point type instead (see statement.pointGroupTag).
func SameGroup(a, b Suite) bool {
	return a.String() == b.String()
}
