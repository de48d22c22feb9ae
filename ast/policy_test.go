package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeadKinds(t *testing.T) {
	constraint := &Head{}
	require.True(t, constraint.IsConstraint())
	require.False(t, constraint.IsChoice())

	disjunctive := &Head{Disjuncts: []*Atom{NewAtom("p"), NewAtom("q")}}
	require.False(t, disjunctive.IsConstraint())
	require.Equal(t, "p|q", disjunctive.String())

	choice := &Head{Choice: &ChoiceHead{Elements: []*ChoiceElement{{Atom: NewAtom("p")}}}}
	require.True(t, choice.IsChoice())
}

func TestChoiceHeadString(t *testing.T) {
	ch := &ChoiceHead{
		Lower: NumberTerm(1),
		Upper: NumberTerm(2),
		Elements: []*ChoiceElement{
			{Atom: NewAtom("q", VarTerm("X"), NumberTerm(0))},
			{Atom: NewAtom("q", VarTerm("X"), NumberTerm(1))},
		},
	}
	require.Equal(t, "1 { q(X,0); q(X,1) } 2", ch.String())
}

func TestChoiceHeadAtoms(t *testing.T) {
	ch := &ChoiceHead{Elements: []*ChoiceElement{
		{Atom: NewAtom("p", NumberTerm(1))},
		{Atom: NewAtom("p", NumberTerm(2))},
	}}
	atoms := ch.HeadAtoms()
	require.Len(t, atoms, 2)
	require.True(t, atoms[0].Equal(NewAtom("p", NumberTerm(1))))
}

func TestRuleIsFactAndConstraint(t *testing.T) {
	fact := &Rule{Head: &Head{Disjuncts: []*Atom{NewAtom("p")}}}
	require.True(t, fact.IsFact())
	require.False(t, fact.IsConstraint())

	constraint := &Rule{Head: &Head{}, Body: []*Literal{PositiveLit(NewAtom("p"))}}
	require.False(t, constraint.IsFact())
	require.True(t, constraint.IsConstraint())
}

func TestRulePosVars(t *testing.T) {
	r := &Rule{
		Head: &Head{Disjuncts: []*Atom{NewAtom("r", VarTerm("X"))}},
		Body: []*Literal{
			PositiveLit(NewAtom("p", VarTerm("X"))),
			NegativeLit(NewAtom("q", VarTerm("Y"))),
		},
	}
	vs := r.PosVars()
	require.Equal(t, 1, vs.Len())
	require.True(t, vs.Contains("X"))
	require.False(t, vs.Contains("Y"))
}

func TestRuleBodyPredicates(t *testing.T) {
	r := &Rule{
		Head: &Head{Disjuncts: []*Atom{NewAtom("r", VarTerm("X"))}},
		Body: []*Literal{
			PositiveLit(NewAtom("p", VarTerm("X"))),
			NegativeLit(NewAtom("q", VarTerm("X"))),
		},
	}
	preds := r.BodyPredicates()
	require.Len(t, preds, 2)
	require.Equal(t, PredicateKey{Name: "p", Arity: 1}, preds[0].Key)
	require.True(t, preds[0].Positive)
	require.Equal(t, PredicateKey{Name: "q", Arity: 1}, preds[1].Key)
	require.False(t, preds[1].Positive)
}

func TestRuleHeadPredicatesChoice(t *testing.T) {
	r := &Rule{
		Head: &Head{Choice: &ChoiceHead{Elements: []*ChoiceElement{
			{Atom: NewAtom("q", NumberTerm(1))},
			{Atom: NewAtom("q", NumberTerm(2))},
		}}},
	}
	preds := r.HeadPredicates()
	require.Equal(t, []PredicateKey{{Name: "q", Arity: 1}, {Name: "q", Arity: 1}}, preds)
}

func TestRuleIsGround(t *testing.T) {
	ground := &Rule{
		Head: &Head{Disjuncts: []*Atom{NewAtom("p", NumberTerm(1))}},
		Body: []*Literal{PositiveLit(NewAtom("q", NumberTerm(1)))},
	}
	require.True(t, ground.IsGround())

	notGround := &Rule{
		Head: &Head{Disjuncts: []*Atom{NewAtom("p", VarTerm("X"))}},
	}
	require.False(t, notGround.IsGround())
}

func TestRuleString(t *testing.T) {
	fact := &Rule{Head: &Head{Disjuncts: []*Atom{NewAtom("p", NumberTerm(1))}}}
	require.Equal(t, "p(1).", fact.String())

	rule := &Rule{
		Head: &Head{Disjuncts: []*Atom{NewAtom("p", VarTerm("X"))}},
		Body: []*Literal{
			PositiveLit(NewAtom("q", VarTerm("X"))),
			BuiltinLit(CmpGt, VarTerm("X"), NumberTerm(3)),
		},
	}
	require.Equal(t, "p(X) :- q(X), X>3.", rule.String())
}

func TestProgramString(t *testing.T) {
	p := &Program{Rules: []*Rule{
		{Head: &Head{Disjuncts: []*Atom{NewAtom("p")}}},
		{Head: &Head{Disjuncts: []*Atom{NewAtom("q")}}},
	}}
	require.Equal(t, "p.\nq.", p.String())
}
