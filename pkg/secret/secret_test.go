package secret

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"sigmazk/pkg/group"
)

func TestSecretIdentityIsByName(t *testing.T) {
	a := NewNamed("x")
	b := NewNamed("x")
	require.Equal(t, a.Name, b.Name)

	c := New()
	d := New()
	require.NotEqual(t, c.Name, d.Name, "auto-named secrets must be distinct")
}

func TestExprPreservesTermOrder(t *testing.T) {
	suite := group.Default
	g0 := suite.Point().Base()
	g1 := group.HashToPoint(suite, []byte("one"))
	g2 := group.HashToPoint(suite, []byte("two"))

	x0 := NewNamed("x0")
	x1 := NewNamed("x1")
	x2 := NewNamed("x2")

	expr := x0.Mul(g0).Add(x1.Mul(g1)).Add(x2.Mul(g2))

	require.Equal(t, []string{"x0", "x1", "x2"}, expr.SecretNames())
	require.True(t, expr.Generators()[0].Equal(g0))
	require.True(t, expr.Generators()[1].Equal(g1))
	require.True(t, expr.Generators()[2].Equal(g2))
}

func TestSecretScalarRoundTrips(t *testing.T) {
	suite := group.Default
	x := NewNamedWithValue("x", big.NewInt(42))
	got := x.Scalar(suite)
	want := group.ScalarFromInt(suite, big.NewInt(42))
	require.True(t, got.Equal(want))
}

func TestSecretScalarPanicsWhenUnbound(t *testing.T) {
	x := NewNamed("x")
	require.Panics(t, func() { x.Scalar(group.Default) })
}

func TestWithValueDoesNotMutateReceiver(t *testing.T) {
	x := NewNamed("x")
	bound := x.WithValue(big.NewInt(7))

	require.False(t, x.Bound())
	require.True(t, bound.Bound())
	require.Equal(t, big.NewInt(7), bound.Value)
}
