package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralFreeVarsPositiveNegative(t *testing.T) {
	lit := PositiveLit(NewAtom("p", VarTerm("X"), VarTerm("Y")))
	require.Equal(t, 2, lit.FreeVars().Len())

	neg := NegativeLit(NewAtom("q", VarTerm("X")))
	require.Equal(t, 1, neg.FreeVars().Len())
}

func TestLiteralFreeVarsBuiltin(t *testing.T) {
	lit := BuiltinLit(CmpLt, VarTerm("X"), NumberTerm(3))
	vs := lit.FreeVars()
	require.Equal(t, 1, vs.Len())
	require.True(t, vs.Contains("X"))
}

// Aggregate element-local variables must not leak into the literal's own
// FreeVars unless they also occur in a guard.
func TestLiteralAggregateElementVarsDoNotLeakIntoFreeVars(t *testing.T) {
	elem := &AggregateElement{
		Terms:     []*Term{VarTerm("Y")},
		Condition: []*Literal{PositiveLit(NewAtom("q", VarTerm("Y")))},
	}
	lit := AggregateLit(AggCount, nil, &Guard{Op: CmpLe, Term: VarTerm("N")}, elem)

	free := lit.FreeVars()
	require.Equal(t, 1, free.Len())
	require.True(t, free.Contains("N"))
	require.False(t, free.Contains("Y"))

	elemVars := lit.ElementVars()
	require.True(t, elemVars.Contains("Y"))
}

func TestLiteralIsGround(t *testing.T) {
	ground := PositiveLit(NewAtom("p", NumberTerm(1)))
	require.True(t, ground.IsGround())

	notGround := PositiveLit(NewAtom("p", VarTerm("X")))
	require.False(t, notGround.IsGround())

	elem := &AggregateElement{Terms: []*Term{NumberTerm(1)}}
	aggGround := AggregateLit(AggCount, nil, &Guard{Op: CmpLe, Term: NumberTerm(1)}, elem)
	require.True(t, aggGround.IsGround())
}

func TestLiteralApplyPositive(t *testing.T) {
	sub := NewSubstitution()
	require.True(t, sub.Match(VarTerm("X"), NumberTerm(4)))
	lit := PositiveLit(NewAtom("p", VarTerm("X")))
	applied := lit.Apply(sub)
	require.True(t, applied.Atom.Equal(NewAtom("p", NumberTerm(4))))
}

func TestLiteralApplyAggregatePreservesStructure(t *testing.T) {
	sub := NewSubstitution()
	require.True(t, sub.Match(VarTerm("N"), NumberTerm(2)))
	elem := &AggregateElement{Terms: []*Term{VarTerm("Y")}}
	lit := AggregateLit(AggCount, nil, &Guard{Op: CmpLe, Term: VarTerm("N")}, elem)
	applied := lit.Apply(sub)
	require.Equal(t, LitAggregate, applied.Kind)
	require.True(t, applied.GuardRight.Term.Equal(NumberTerm(2)))
	require.True(t, applied.Elements[0].Terms[0].Equal(VarTerm("Y")))
}

func TestLiteralString(t *testing.T) {
	require.Equal(t, "p(1)", PositiveLit(NewAtom("p", NumberTerm(1))).String())
	require.Equal(t, "not p(1)", NegativeLit(NewAtom("p", NumberTerm(1))).String())
	require.Equal(t, "X<3", BuiltinLit(CmpLt, VarTerm("X"), NumberTerm(3)).String())
}
