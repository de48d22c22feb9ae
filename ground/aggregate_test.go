package ground

import (
	"testing"

	"github.com/asporia/grounder/ast"
	"github.com/stretchr/testify/require"
)

func TestEvalAggregateGuardCountSatisfied(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(1)))
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(2)))

	elem := &ast.AggregateElement{
		Terms:     []*ast.Term{ast.VarTerm("X")},
		Condition: []*ast.Literal{ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X")))},
	}
	lit := ast.AggregateLit(ast.AggCount, nil, &ast.Guard{Op: ast.CmpGe, Term: ast.NumberTerm(2)}, elem)

	sub := ast.NewSubstitution()
	ground, ok, err := evalAggregateGuard(store, lit, sub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ground.Elements, 2)
}

func TestEvalAggregateGuardCountNotSatisfied(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(1)))

	elem := &ast.AggregateElement{
		Terms:     []*ast.Term{ast.VarTerm("X")},
		Condition: []*ast.Literal{ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X")))},
	}
	lit := ast.AggregateLit(ast.AggCount, nil, &ast.Guard{Op: ast.CmpGe, Term: ast.NumberTerm(2)}, elem)

	sub := ast.NewSubstitution()
	_, ok, err := evalAggregateGuard(store, lit, sub)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvalAggregateGuardDeduplicatesElements(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	qKey := ast.PredicateKey{Name: "q", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(1)))
	store.For(qKey).Add(ast.NewAtom("q", ast.NumberTerm(1)))
	store.For(qKey).Add(ast.NewAtom("q", ast.NumberTerm(2)))

	// The same element is listed twice; both expand to the ground element
	// "1:p(1)", so the two joins collapse to one distinct element.
	elem := &ast.AggregateElement{
		Terms: []*ast.Term{ast.VarTerm("X")},
		Condition: []*ast.Literal{
			ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X"))),
		},
	}
	lit := ast.AggregateLit(ast.AggCount, nil, &ast.Guard{Op: ast.CmpGe, Term: ast.NumberTerm(1)}, elem, elem)
	sub := ast.NewSubstitution()
	ground, ok, err := evalAggregateGuard(store, lit, sub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ground.Elements, 1)
}

func TestAggregateValueSum(t *testing.T) {
	elements := []*ast.AggregateElement{
		{Terms: []*ast.Term{ast.NumberTerm(2)}},
		{Terms: []*ast.Term{ast.NumberTerm(3)}},
	}
	value, definite := aggregateValue(ast.AggSum, elements)
	require.True(t, definite)
	require.Equal(t, int64(5), value.Num)
}

func TestAggregateValueMinMax(t *testing.T) {
	elements := []*ast.AggregateElement{
		{Terms: []*ast.Term{ast.NumberTerm(5)}},
		{Terms: []*ast.Term{ast.NumberTerm(1)}},
		{Terms: []*ast.Term{ast.NumberTerm(3)}},
	}
	min, definite := aggregateValue(ast.AggMin, elements)
	require.True(t, definite)
	require.Equal(t, int64(1), min.Num)

	max, definite := aggregateValue(ast.AggMax, elements)
	require.True(t, definite)
	require.Equal(t, int64(5), max.Num)
}

func TestFlipOp(t *testing.T) {
	require.Equal(t, ast.CmpGt, flipOp(ast.CmpLt))
	require.Equal(t, ast.CmpGe, flipOp(ast.CmpLe))
	require.Equal(t, ast.CmpLt, flipOp(ast.CmpGt))
	require.Equal(t, ast.CmpLe, flipOp(ast.CmpGe))
	require.Equal(t, ast.CmpEq, flipOp(ast.CmpEq))
}

func TestExpandChoiceElementsKeepsDuplicateAtomsOnlyOnce(t *testing.T) {
	store := NewStore()
	nKey := ast.PredicateKey{Name: "n", Arity: 1}
	store.For(nKey).Add(ast.NewAtom("n", ast.NumberTerm(1)))

	elements := []*ast.ChoiceElement{
		{Atom: ast.NewAtom("q", ast.VarTerm("X"), ast.NumberTerm(0)), Condition: []*ast.Literal{
			ast.PositiveLit(ast.NewAtom("n", ast.VarTerm("X"))),
		}},
	}
	sub := ast.NewSubstitution()
	out, err := expandChoiceElements(store, elements, sub)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].Atom.Equal(ast.NewAtom("q", ast.NumberTerm(1), ast.NumberTerm(0))))
}
