package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomArityAndGround(t *testing.T) {
	a := NewAtom("p", NumberTerm(1), VarTerm("X"))
	require.Equal(t, 2, a.Arity())
	require.False(t, a.IsGround())

	g := NewAtom("p", NumberTerm(1), NumberTerm(2))
	require.True(t, g.IsGround())
}

func TestAtomFreeVars(t *testing.T) {
	a := NewAtom("edge", VarTerm("X"), VarTerm("Y"), VarTerm("X"))
	vs := a.FreeVars()
	require.Equal(t, 2, vs.Len())
}

func TestAtomEqual(t *testing.T) {
	require.True(t, NewAtom("p", NumberTerm(1)).Equal(NewAtom("p", NumberTerm(1))))
	require.False(t, NewAtom("p", NumberTerm(1)).Equal(NewAtom("q", NumberTerm(1))))
	require.False(t, NewAtom("p", NumberTerm(1)).Equal(NewAtom("p", NumberTerm(1), NumberTerm(2))))
}

func TestAtomHashConsistentWithEqual(t *testing.T) {
	a := NewAtom("p", NumberTerm(1), ConstTerm("a"))
	b := NewAtom("p", NumberTerm(1), ConstTerm("a"))
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestAtomApply(t *testing.T) {
	sub := NewSubstitution()
	require.True(t, sub.Match(VarTerm("X"), NumberTerm(7)))
	a := NewAtom("p", VarTerm("X"), ConstTerm("a"))
	applied := a.Apply(sub)
	require.True(t, applied.Equal(NewAtom("p", NumberTerm(7), ConstTerm("a"))))
}

func TestAtomStringAndPredicate(t *testing.T) {
	require.Equal(t, "p", NewAtom("p").String())
	require.Equal(t, "p(1,2)", NewAtom("p", NumberTerm(1), NumberTerm(2)).String())

	key := NewAtom("edge", NumberTerm(1), NumberTerm(2)).Predicate()
	require.Equal(t, PredicateKey{Name: "edge", Arity: 2}, key)
	require.Equal(t, "edge/2", key.String())
}
