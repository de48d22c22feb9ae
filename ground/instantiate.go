package ground

import (
	"errors"

	"github.com/asporia/grounder/ast"
)

// Instantiator enumerates every satisfying substitution for a single
// rule's body against the current derivation sets and emits the
// corresponding ground rules, per §4.4.
type Instantiator struct {
	store   *Store
	metrics *Metrics
	strict  bool
}

func NewInstantiator(store *Store) *Instantiator {
	return &Instantiator{store: store}
}

// WithMetrics attaches Prometheus instrumentation to the instantiator,
// returning the receiver for chaining at construction time.
func (in *Instantiator) WithMetrics(m *Metrics) *Instantiator {
	in.metrics = m
	return in
}

// WithStrict controls what happens when a substitution's head
// instantiation hits an arithmetic or comparison failure (division by
// zero, a non-numeric ordering comparison): by default it is silently
// discarded per the EvaluationDiscard error kind of spec.md §7; in strict
// mode it aborts the whole grounding run instead, for callers that would
// rather fail loudly on a malformed program than emit a partial result.
func (in *Instantiator) WithStrict(strict bool) *Instantiator {
	in.strict = strict
	return in
}

// Instantiate runs the backtracking join over r's body (already
// safety-checked) and calls emit once per satisfying substitution with the
// fully ground rule. It returns the number of ground rules emitted.
func (in *Instantiator) Instantiate(r *ast.Rule, emit func(*ast.Rule) error) (int, error) {
	order := matchingOrder(r.Body, in.store.Size)
	count := 0
	sub := ast.NewSubstitution()
	resolved := map[*ast.Literal]*ast.Literal{}

	err := joinBodyWithAggregates(in.store, order, sub, resolved, func() error {
		if in.metrics != nil {
			in.metrics.SubstitutionsTried.Inc()
		}
		ground, err := instantiateHead(in.store, r, sub, resolved)
		if err != nil {
			if in.metrics != nil {
				in.metrics.Discards.Inc()
			}
			if in.strict && (errors.Is(err, ast.ErrDivisionByZero) || errors.Is(err, ast.ErrNotNumeric)) {
				return err
			}
			return discardOrPropagate(err)
		}
		if ground == nil {
			return nil
		}
		count++
		return emit(ground)
	})
	return count, err
}

// joinBodyWithAggregates extends joinBody with aggregate-literal handling:
// an aggregate is evaluated by first expanding its elements (§4.4) against
// the outer substitution, then checking its guard(s) against the resulting
// enumerated elements before continuing the join. resolved records the
// fully-expanded ground form of each aggregate literal encountered, keyed
// by the original (non-ground) literal, so instantiateHead can emit it
// without re-running the element expansion.
func joinBodyWithAggregates(store *Store, order []*ast.Literal, sub *ast.Substitution, resolved map[*ast.Literal]*ast.Literal, leaf func() error) error {
	var walk func(pos int) error
	walk = func(pos int) error {
		if pos == len(order) {
			return leaf()
		}
		lit := order[pos]
		if lit.Kind != ast.LitAggregate {
			return joinBody(store, order[pos:pos+1], sub, func() error { return walk(pos + 1) })
		}
		ground, ok, err := evalAggregateGuard(store, lit, sub)
		if err != nil {
			return discardOrPropagate(err)
		}
		if !ok {
			return nil
		}
		resolved[lit] = ground
		return walk(pos + 1)
	}
	return walk(0)
}

// discardOrPropagate maps arithmetic/comparison failures to a silent
// no-op (EvaluationDiscard) and propagates anything else.
func discardOrPropagate(err error) error {
	if errors.Is(err, ast.ErrDivisionByZero) || errors.Is(err, ast.ErrNotNumeric) {
		return nil
	}
	return err
}

func groundAtom(a *ast.Atom, sub *ast.Substitution) (*ast.Atom, error) {
	applied := a.Apply(sub)
	args := make([]*ast.Term, len(applied.Args))
	for i, t := range applied.Args {
		reduced, err := ast.ReduceArith(t)
		if err != nil {
			return nil, err
		}
		args[i] = reduced
	}
	return ast.NewAtom(applied.Name, args...), nil
}

// evalBuiltin evaluates a built-in comparison literal once both sides are
// ground, per §4.2: "=" and "!=" use the total term order, the ordering
// comparisons use numeric order and fail (as an EvaluationDiscard, not a
// program error) when either side is non-numeric.
func evalBuiltin(lit *ast.Literal, sub *ast.Substitution) (bool, error) {
	left, err := reduceSide(lit.Left, sub)
	if err != nil {
		return false, err
	}
	right, err := reduceSide(lit.Right, sub)
	if err != nil {
		return false, err
	}
	return compareOp(lit.Op, left, right)
}

func reduceSide(t *ast.Term, sub *ast.Substitution) (*ast.Term, error) {
	return ast.ReduceArith(sub.Apply(t))
}

func compareOp(op ast.CompareOp, left, right *ast.Term) (bool, error) {
	switch op {
	case ast.CmpEq:
		return ast.Compare(left, right) == 0, nil
	case ast.CmpNe:
		return ast.Compare(left, right) != 0, nil
	case ast.CmpLt, ast.CmpLe, ast.CmpGt, ast.CmpGe:
		if left.Kind != ast.KindNumber || right.Kind != ast.KindNumber {
			return false, ast.ErrNotNumeric
		}
		switch op {
		case ast.CmpLt:
			return left.Num < right.Num, nil
		case ast.CmpLe:
			return left.Num <= right.Num, nil
		case ast.CmpGt:
			return left.Num > right.Num, nil
		case ast.CmpGe:
			return left.Num >= right.Num, nil
		}
	}
	return false, nil
}

// instantiateHead applies σ to the rule's head and reduces arithmetic,
// returning the fully ground rule. Constraints (empty head) produce a rule
// with a nil Disjuncts/Choice head and the ground body.
func instantiateHead(store *Store, r *ast.Rule, sub *ast.Substitution, resolved map[*ast.Literal]*ast.Literal) (*ast.Rule, error) {
	body := make([]*ast.Literal, len(r.Body))
	for i, l := range r.Body {
		if l.Kind == ast.LitAggregate {
			// matchingOrder always includes every body literal, so the
			// join always resolves each aggregate before reaching here.
			body[i] = resolved[l]
			continue
		}
		applied := l.Apply(sub)
		reduced, err := reduceLiteral(applied)
		if err != nil {
			return nil, err
		}
		body[i] = reduced
	}

	head := &ast.Head{}
	if r.Head.IsConstraint() {
		// nothing to do
	} else if r.Head.IsChoice() {
		choice, err := instantiateChoice(store, r.Head.Choice, sub)
		if err != nil {
			return nil, err
		}
		head.Choice = choice
	} else {
		disjuncts := make([]*ast.Atom, len(r.Head.Disjuncts))
		for i, a := range r.Head.Disjuncts {
			ga, err := groundAtom(a, sub)
			if err != nil {
				return nil, err
			}
			disjuncts[i] = ga
		}
		head.Disjuncts = disjuncts
	}

	return &ast.Rule{Head: head, Body: body, Location: r.Location}, nil
}

func reduceLiteral(l *ast.Literal) (*ast.Literal, error) {
	switch l.Kind {
	case ast.LitPositive, ast.LitNegative:
		args := make([]*ast.Term, len(l.Atom.Args))
		for i, t := range l.Atom.Args {
			r, err := ast.ReduceArith(t)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		a := ast.NewAtom(l.Atom.Name, args...)
		if l.Kind == ast.LitPositive {
			return ast.PositiveLit(a), nil
		}
		return ast.NegativeLit(a), nil
	case ast.LitBuiltin:
		left, err := ast.ReduceArith(l.Left)
		if err != nil {
			return nil, err
		}
		right, err := ast.ReduceArith(l.Right)
		if err != nil {
			return nil, err
		}
		return ast.BuiltinLit(l.Op, left, right), nil
	case ast.LitAggregate:
		return l, nil // already grounded by instantiateChoice/aggregate path
	}
	return l, nil
}

func instantiateChoice(store *Store, c *ast.ChoiceHead, sub *ast.Substitution) (*ast.ChoiceHead, error) {
	elems, err := expandChoiceElements(store, c.Elements, sub)
	if err != nil {
		return nil, err
	}
	var lower, upper *ast.Term
	if c.Lower != nil {
		lower, err = reduceSide(c.Lower, sub)
		if err != nil {
			return nil, err
		}
	}
	if c.Upper != nil {
		upper, err = reduceSide(c.Upper, sub)
		if err != nil {
			return nil, err
		}
	}
	return &ast.ChoiceHead{Lower: lower, Upper: upper, Elements: elems}, nil
}
