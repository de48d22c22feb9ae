package ast

import (
	"fmt"
	"strings"
)

// CompareOp enumerates the built-in comparison operators.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op CompareOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	}
	return "?"
}

// AggFunc enumerates the aggregate functions of §3.
type AggFunc int

const (
	AggCount AggFunc = iota
	AggSum
	AggMin
	AggMax
)

func (f AggFunc) String() string {
	switch f {
	case AggCount:
		return "count"
	case AggSum:
		return "sum"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	}
	return "?"
}

// LiteralKind tags a Literal's case.
type LiteralKind int

const (
	LitPositive LiteralKind = iota
	LitNegative
	LitBuiltin
	LitAggregate
)

// Guard is an (operator, term) pair bounding an aggregate, e.g. "X <" or
// "< X" depending on position.
type Guard struct {
	Op   CompareOp
	Term *Term
}

// AggregateElement is one element of an aggregate: a tuple of terms plus a
// condition (list of literals) that must hold for the tuple to count.
type AggregateElement struct {
	Terms     []*Term
	Condition []*Literal
}

func (e *AggregateElement) FreeVars() VarSet {
	vs := NewVarSet()
	for _, t := range e.Terms {
		t.collectFreeVars(vs)
	}
	for _, l := range e.Condition {
		vs.Update(l.FreeVars())
	}
	return vs
}

func (e *AggregateElement) String() string {
	terms := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = t.String()
	}
	s := strings.Join(terms, ",")
	if len(e.Condition) > 0 {
		conds := make([]string, len(e.Condition))
		for i, l := range e.Condition {
			conds[i] = l.String()
		}
		s += ":" + strings.Join(conds, ",")
	}
	return s
}

// Literal is a closed sum type over the four literal cases of §3.
type Literal struct {
	Kind LiteralKind

	Atom *Atom // Positive | Negative

	// Builtin
	Op    CompareOp
	Left  *Term
	Right *Term

	// Aggregate
	AggFn      AggFunc
	GuardLeft  *Guard
	GuardRight *Guard
	Elements   []*AggregateElement
}

func PositiveLit(a *Atom) *Literal { return &Literal{Kind: LitPositive, Atom: a} }
func NegativeLit(a *Atom) *Literal { return &Literal{Kind: LitNegative, Atom: a} }

func BuiltinLit(op CompareOp, left, right *Term) *Literal {
	return &Literal{Kind: LitBuiltin, Op: op, Left: left, Right: right}
}

func AggregateLit(fn AggFunc, left, right *Guard, elems ...*AggregateElement) *Literal {
	return &Literal{Kind: LitAggregate, AggFn: fn, GuardLeft: left, GuardRight: right, Elements: elems}
}

// IsAggregate reports whether this is an AggregateLiteral. Used by the
// safety analyzer's "positive non-aggregate" distinction (§4.2 step 1) and
// the instantiator's matching-order partition (§4.4).
func (l *Literal) IsAggregate() bool { return l.Kind == LitAggregate }

// FreeVars returns the free variables occurring in the literal. For an
// aggregate, this is the variables in its guards only — the element-scoped
// variables are local to each element per §4.4 and do not leak out unless
// they also occur in a guard.
func (l *Literal) FreeVars() VarSet {
	vs := NewVarSet()
	switch l.Kind {
	case LitPositive, LitNegative:
		vs.Update(l.Atom.FreeVars())
	case LitBuiltin:
		l.Left.collectFreeVars(vs)
		l.Right.collectFreeVars(vs)
	case LitAggregate:
		if l.GuardLeft != nil {
			l.GuardLeft.Term.collectFreeVars(vs)
		}
		if l.GuardRight != nil {
			l.GuardRight.Term.collectFreeVars(vs)
		}
	}
	return vs
}

// ElementVars returns every variable occurring anywhere inside the
// aggregate's elements (terms and condition literals), used by the
// instantiator to know which variables are "local" to the aggregate.
func (l *Literal) ElementVars() VarSet {
	vs := NewVarSet()
	for _, e := range l.Elements {
		vs.Update(e.FreeVars())
	}
	return vs
}

func (l *Literal) IsGround() bool {
	switch l.Kind {
	case LitPositive, LitNegative:
		return l.Atom.IsGround()
	case LitBuiltin:
		return l.Left.IsGround() && l.Right.IsGround()
	case LitAggregate:
		for _, e := range l.Elements {
			for _, t := range e.Terms {
				if !t.IsGround() {
					return false
				}
			}
			for _, c := range e.Condition {
				if !c.IsGround() {
					return false
				}
			}
		}
		return true
	}
	return true
}

func (l *Literal) Apply(s *Substitution) *Literal {
	switch l.Kind {
	case LitPositive:
		return PositiveLit(l.Atom.Apply(s))
	case LitNegative:
		return NegativeLit(l.Atom.Apply(s))
	case LitBuiltin:
		return BuiltinLit(l.Op, s.Apply(l.Left), s.Apply(l.Right))
	case LitAggregate:
		elems := make([]*AggregateElement, len(l.Elements))
		for i, e := range l.Elements {
			elems[i] = applyElement(e, s)
		}
		var gl, gr *Guard
		if l.GuardLeft != nil {
			gl = &Guard{Op: l.GuardLeft.Op, Term: s.Apply(l.GuardLeft.Term)}
		}
		if l.GuardRight != nil {
			gr = &Guard{Op: l.GuardRight.Op, Term: s.Apply(l.GuardRight.Term)}
		}
		return AggregateLit(l.AggFn, gl, gr, elems...)
	}
	return l
}

func applyElement(e *AggregateElement, s *Substitution) *AggregateElement {
	terms := make([]*Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = s.Apply(t)
	}
	cond := make([]*Literal, len(e.Condition))
	for i, c := range e.Condition {
		cond[i] = c.Apply(s)
	}
	return &AggregateElement{Terms: terms, Condition: cond}
}

func (l *Literal) String() string {
	switch l.Kind {
	case LitPositive:
		return l.Atom.String()
	case LitNegative:
		return "not " + l.Atom.String()
	case LitBuiltin:
		return fmt.Sprintf("%s%s%s", l.Left, l.Op, l.Right)
	case LitAggregate:
		elems := make([]string, len(l.Elements))
		for i, e := range l.Elements {
			elems[i] = e.String()
		}
		body := fmt.Sprintf("%s{%s}", l.AggFn, strings.Join(elems, ";"))
		if l.GuardLeft != nil {
			body = fmt.Sprintf("%s%s%s", l.GuardLeft.Term, l.GuardLeft.Op, body)
		}
		if l.GuardRight != nil {
			body = fmt.Sprintf("%s%s%s", body, l.GuardRight.Op, l.GuardRight.Term)
		}
		return body
	}
	return "?"
}
