package ground

import "github.com/asporia/grounder/ast"

// evalAggregateGuard implements §4.4's aggregate grounding: every element
// (term-tuple, condition-literals) is instantiated by joining its condition
// against the current derivation sets, exactly like a rule body; the
// resulting ground element tuples are collected, deduplicated, and ordered
// deterministically (by the total term order, §9 Open Questions), then the
// guard(s) are evaluated against the aggregate's computed value. The
// grounder never collapses the aggregate to that value — it returns the
// full aggregate literal with concrete enumerated elements, because later
// components (or later passes of the same component) may still grow the
// predicates the elements depend on.
func evalAggregateGuard(store *Store, lit *ast.Literal, sub *ast.Substitution) (*ast.Literal, bool, error) {
	elements, err := expandAggregateElements(store, lit.Elements, sub)
	if err != nil {
		return nil, false, err
	}

	var guardLeft, guardRight *ast.Guard
	if lit.GuardLeft != nil {
		t, err := reduceSide(lit.GuardLeft.Term, sub)
		if err != nil {
			return nil, false, err
		}
		guardLeft = &ast.Guard{Op: lit.GuardLeft.Op, Term: t}
	}
	if lit.GuardRight != nil {
		t, err := reduceSide(lit.GuardRight.Term, sub)
		if err != nil {
			return nil, false, err
		}
		guardRight = &ast.Guard{Op: lit.GuardRight.Op, Term: t}
	}

	ground := ast.AggregateLit(lit.AggFn, guardLeft, guardRight, elements...)

	value, definite := aggregateValue(lit.AggFn, elements)
	if !definite {
		// The aggregate's truth value depends on predicates still growing
		// in this component; the solver resolves it downstream. Keep the
		// literal in the body unconditionally satisfied for grounding
		// purposes — the grounder must not drop ground instances just
		// because their aggregate cannot yet be evaluated.
		return ground, true, nil
	}

	if guardLeft != nil {
		ok, err := compareOp(flipOp(guardLeft.Op), value, guardLeft.Term)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
	}
	if guardRight != nil {
		ok, err := compareOp(guardRight.Op, value, guardRight.Term)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
	}
	return ground, true, nil
}

// flipOp mirrors an operator when the guard is written with the aggregate
// on the right-hand side (e.g. "2 < #count{...}" is "#count{...} > 2").
func flipOp(op ast.CompareOp) ast.CompareOp {
	switch op {
	case ast.CmpLt:
		return ast.CmpGt
	case ast.CmpLe:
		return ast.CmpGe
	case ast.CmpGt:
		return ast.CmpLt
	case ast.CmpGe:
		return ast.CmpLe
	default:
		return op
	}
}

// aggregateValue computes the aggregate's value from its ground elements,
// treating every element as holding; the elements' condition literals are
// not inspected. This is the "trivial constant folding" allowance from the
// Non-goals: it never looks a predicate up beyond what the derivation sets
// already settled during element expansion. A count is always definite; a
// sum is indefinite unless every element's first term is a number; a min or
// max is indefinite when there are no elements, when an element has no
// terms, or when more than one element is present and a compared first term
// is not a number.
func aggregateValue(fn ast.AggFunc, elements []*ast.AggregateElement) (*ast.Term, bool) {
	switch fn {
	case ast.AggCount:
		return ast.NumberTerm(int64(len(elements))), true
	case ast.AggSum:
		var total int64
		for _, e := range elements {
			if len(e.Terms) == 0 || e.Terms[0].Kind != ast.KindNumber {
				return nil, false
			}
			total += e.Terms[0].Num
		}
		return ast.NumberTerm(total), true
	case ast.AggMin, ast.AggMax:
		if len(elements) == 0 || len(elements[0].Terms) == 0 {
			return nil, false
		}
		best := elements[0].Terms[0]
		for _, e := range elements[1:] {
			if len(e.Terms) == 0 {
				return nil, false
			}
			t := e.Terms[0]
			if t.Kind != ast.KindNumber || best.Kind != ast.KindNumber {
				return nil, false
			}
			if (fn == ast.AggMin && t.Num < best.Num) || (fn == ast.AggMax && t.Num > best.Num) {
				best = t
			}
		}
		return best, true
	}
	return nil, false
}

// expandAggregateElements instantiates every element's condition against
// the current derivation sets and returns the deduplicated, deterministic
// set of resulting ground elements.
func expandAggregateElements(store *Store, elements []*ast.AggregateElement, sub *ast.Substitution) ([]*ast.AggregateElement, error) {
	var out []*ast.AggregateElement
	seen := map[string]bool{}

	for _, e := range elements {
		order := matchingOrder(e.Condition, store.Size)
		mark := sub.Mark()
		err := joinBody(store, order, sub, func() error {
			terms := make([]*ast.Term, len(e.Terms))
			for i, t := range e.Terms {
				r, err := reduceSide(t, sub)
				if err != nil {
					return discardOrPropagate(err)
				}
				terms[i] = r
			}
			cond := make([]*ast.Literal, len(e.Condition))
			for i, c := range e.Condition {
				applied := c.Apply(sub)
				r, err := reduceLiteral(applied)
				if err != nil {
					return discardOrPropagate(err)
				}
				cond[i] = r
			}
			ge := &ast.AggregateElement{Terms: terms, Condition: cond}
			key := ge.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, ge)
			}
			return nil
		})
		sub.Undo(mark)
		if err != nil {
			return nil, err
		}
	}

	sortElements(out)
	return out, nil
}

// expandChoiceElements instantiates every choice element's condition the
// same way — a choice head's elements are analogous to an aggregate's per
// §4.4's "Choice heads" paragraph — and likewise drops ground elements
// whose canonical text (atom plus grounded condition) was already seen.
func expandChoiceElements(store *Store, elements []*ast.ChoiceElement, sub *ast.Substitution) ([]*ast.ChoiceElement, error) {
	var out []*ast.ChoiceElement
	seen := map[string]bool{}

	for _, e := range elements {
		order := matchingOrder(e.Condition, store.Size)
		mark := sub.Mark()
		err := joinBody(store, order, sub, func() error {
			atom, err := groundAtom(e.Atom, sub)
			if err != nil {
				return discardOrPropagate(err)
			}
			cond := make([]*ast.Literal, len(e.Condition))
			for i, c := range e.Condition {
				applied := c.Apply(sub)
				r, err := reduceLiteral(applied)
				if err != nil {
					return discardOrPropagate(err)
				}
				cond[i] = r
			}
			ce := &ast.ChoiceElement{Atom: atom, Condition: cond}
			key := ce.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, ce)
			}
			return nil
		})
		sub.Undo(mark)
		if err != nil {
			return nil, err
		}
	}

	sortChoiceElements(out)
	return out, nil
}

// sortChoiceElements orders choice elements deterministically, mirroring
// sortElements: joinBody enumerates candidates by walking a derivation set
// backed by a Go map, which randomizes iteration order per run, so the
// elements collected above arrive in a different order each time without
// this pass.
func sortChoiceElements(elements []*ast.ChoiceElement) {
	for i := 1; i < len(elements); i++ {
		for j := i; j > 0 && compareChoiceElements(elements[j-1], elements[j]) > 0; j-- {
			elements[j-1], elements[j] = elements[j], elements[j-1]
		}
	}
}

func compareChoiceElements(a, b *ast.ChoiceElement) int {
	if a.Atom.Name != b.Atom.Name {
		if a.Atom.Name < b.Atom.Name {
			return -1
		}
		return 1
	}
	n := len(a.Atom.Args)
	if len(b.Atom.Args) < n {
		n = len(b.Atom.Args)
	}
	for i := 0; i < n; i++ {
		if c := ast.Compare(a.Atom.Args[i], b.Atom.Args[i]); c != 0 {
			return c
		}
	}
	if c := len(a.Atom.Args) - len(b.Atom.Args); c != 0 {
		return c
	}
	// Tie-break on the full canonical text, which also covers any
	// remaining condition literals the atom comparison above doesn't see.
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func sortElements(elements []*ast.AggregateElement) {
	for i := 1; i < len(elements); i++ {
		for j := i; j > 0 && compareElements(elements[j-1], elements[j]) > 0; j-- {
			elements[j-1], elements[j] = elements[j], elements[j-1]
		}
	}
}

func compareElements(a, b *ast.AggregateElement) int {
	n := len(a.Terms)
	if len(b.Terms) < n {
		n = len(b.Terms)
	}
	for i := 0; i < n; i++ {
		if c := ast.Compare(a.Terms[i], b.Terms[i]); c != 0 {
			return c
		}
	}
	return len(a.Terms) - len(b.Terms)
}
