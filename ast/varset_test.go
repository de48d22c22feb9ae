package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarSetBasics(t *testing.T) {
	vs := NewVarSet("X", "Y")
	require.Equal(t, 2, vs.Len())
	require.True(t, vs.Contains("X"))
	require.False(t, vs.Contains("Z"))
}

func TestVarSetDiffIntersect(t *testing.T) {
	a := NewVarSet("X", "Y", "Z")
	b := NewVarSet("Y", "Z", "W")

	diff := a.Diff(b)
	require.Equal(t, 1, diff.Len())
	require.True(t, diff.Contains("X"))

	inter := a.Intersect(b)
	require.Equal(t, 2, inter.Len())
	require.True(t, inter.Contains("Y"))
	require.True(t, inter.Contains("Z"))
}

func TestVarSetCopyIsIndependent(t *testing.T) {
	a := NewVarSet("X")
	b := a.Copy()
	b.Add("Y")
	require.Equal(t, 1, a.Len())
	require.Equal(t, 2, b.Len())
}

func TestVarSetSortedDeterministic(t *testing.T) {
	vs := NewVarSet("Z", "A", "M")
	require.Equal(t, []string{"A", "M", "Z"}, vs.Sorted())
}
