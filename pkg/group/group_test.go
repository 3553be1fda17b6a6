package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarFromIntIsDeterministic(t *testing.T) {
	suite := Default
	tests := []int64{0, 1, 2, 3, 5, 255, 1 << 20}
	for _, v := range tests {
		a := ScalarFromInt(suite, big.NewInt(v))
		b := ScalarFromInt(suite, big.NewInt(v))
		require.True(t, a.Equal(b), "ScalarFromInt should be deterministic for %d", v)
	}
}

func TestScalarFromIntIsAdditive(t *testing.T) {
	suite := Default
	x := ScalarFromInt(suite, big.NewInt(3))
	y := ScalarFromInt(suite, big.NewInt(5))
	sum := ScalarFromInt(suite, big.NewInt(8))

	got := suite.Scalar().Add(x, y)
	require.True(t, got.Equal(sum))
}

func TestRandomChallengeIsNonDeterministic(t *testing.T) {
	suite := Default
	a := RandomChallenge(suite)
	b := RandomChallenge(suite)
	require.False(t, a.Equal(b), "two independently sampled challenges should not collide")
}

func TestHashToPointIsDeterministicPerMessage(t *testing.T) {
	suite := Default
	a := HashToPoint(suite, []byte("h"))
	b := HashToPoint(suite, []byte("h"))
	c := HashToPoint(suite, []byte("g"))

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestSameGroup(t *testing.T) {
	require.True(t, SameGroup(Default, Default))
	require.False(t, SameGroup(Default, Find("P256")))
}
