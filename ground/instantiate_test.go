package ground

import (
	"testing"

	"github.com/asporia/grounder/ast"
	"github.com/stretchr/testify/require"
)

func TestInstantiateSimpleRule(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(1)))
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(2)))

	r := &ast.Rule{
		Head: &ast.Head{Disjuncts: []*ast.Atom{ast.NewAtom("q", ast.VarTerm("X"))}},
		Body: []*ast.Literal{ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X")))},
	}

	var emitted []*ast.Rule
	count, err := NewInstantiator(store).Instantiate(r, func(gr *ast.Rule) error {
		emitted = append(emitted, gr)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, emitted, 2)
}

func TestInstantiateDiscardsDivisionByZero(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(0)))

	r := &ast.Rule{
		Head: &ast.Head{Disjuncts: []*ast.Atom{ast.NewAtom("q", ast.VarTerm("Y"))}},
		Body: []*ast.Literal{
			ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X"))),
			ast.BuiltinLit(ast.CmpEq, ast.VarTerm("Y"), ast.ArithTerm(ast.ArithDiv, ast.NumberTerm(1), ast.VarTerm("X"))),
		},
	}

	count, err := NewInstantiator(store).Instantiate(r, func(gr *ast.Rule) error { return nil })
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestInstantiateStrictModePropagatesDivisionByZero(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(0)))

	// Strict mode applies to head instantiation, so the division sits in
	// the head: q(1/X) :- p(X).
	r := &ast.Rule{
		Head: &ast.Head{Disjuncts: []*ast.Atom{ast.NewAtom("q", ast.ArithTerm(ast.ArithDiv, ast.NumberTerm(1), ast.VarTerm("X")))}},
		Body: []*ast.Literal{
			ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X"))),
		},
	}

	_, err := NewInstantiator(store).WithStrict(true).Instantiate(r, func(gr *ast.Rule) error { return nil })
	require.Error(t, err)
}

func TestInstantiateConstraintEmitsEmptyHead(t *testing.T) {
	store := NewStore()
	pKey := ast.PredicateKey{Name: "p", Arity: 1}
	store.For(pKey).Add(ast.NewAtom("p", ast.NumberTerm(5)))

	r := &ast.Rule{
		Head: &ast.Head{},
		Body: []*ast.Literal{
			ast.PositiveLit(ast.NewAtom("p", ast.VarTerm("X"))),
			ast.BuiltinLit(ast.CmpGt, ast.VarTerm("X"), ast.NumberTerm(3)),
		},
	}

	var emitted *ast.Rule
	_, err := NewInstantiator(store).Instantiate(r, func(gr *ast.Rule) error {
		emitted = gr
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, emitted)
	require.True(t, emitted.Head.IsConstraint())
}

func TestInstantiateChoiceHeadExpandsElements(t *testing.T) {
	store := NewStore()
	nKey := ast.PredicateKey{Name: "n", Arity: 1}
	store.For(nKey).Add(ast.NewAtom("n", ast.NumberTerm(1)))

	r := &ast.Rule{
		Head: &ast.Head{Choice: &ast.ChoiceHead{
			Lower: ast.NumberTerm(1),
			Elements: []*ast.ChoiceElement{
				{Atom: ast.NewAtom("q", ast.VarTerm("X"), ast.NumberTerm(0))},
				{Atom: ast.NewAtom("q", ast.VarTerm("X"), ast.NumberTerm(1))},
			},
		}},
		Body: []*ast.Literal{ast.PositiveLit(ast.NewAtom("n", ast.VarTerm("X")))},
	}

	var emitted *ast.Rule
	count, err := NewInstantiator(store).Instantiate(r, func(gr *ast.Rule) error {
		emitted = gr
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.True(t, emitted.Head.IsChoice())
	require.Len(t, emitted.Head.Choice.Elements, 2)
}

func TestGroundAtomReducesArithmetic(t *testing.T) {
	sub := ast.NewSubstitution()
	atom := ast.NewAtom("p", ast.ArithTerm(ast.ArithAdd, ast.NumberTerm(1), ast.NumberTerm(2)))
	ground, err := groundAtom(atom, sub)
	require.NoError(t, err)
	require.True(t, ground.Equal(ast.NewAtom("p", ast.NumberTerm(3))))
}

func TestCompareOpOrderingRequiresNumeric(t *testing.T) {
	_, err := compareOp(ast.CmpLt, ast.ConstTerm("a"), ast.NumberTerm(1))
	require.Error(t, err)

	ok, err := compareOp(ast.CmpLt, ast.NumberTerm(1), ast.NumberTerm(2))
	require.NoError(t, err)
	require.True(t, ok)
}
