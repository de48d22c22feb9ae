// Package solve is an explicitly unsupported convenience: a brute-force,
// exhaustive truth-assignment search over an already-ground program,
// built only to smoke-test a grounder's output on tiny programs. It is
// not a stable-model solver — it performs no minimality check, no
// unfounded-set elimination, and no optimization, matching spec.md's
// Non-goal of "producing a full solver". A real answer-set solver is an
// external collaborator, exactly like the surface-syntax parser.
package solve

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/asporia/grounder/ast"
)

// MaxFreeAtoms bounds the search: with n free atoms the search tries 2^n
// candidate assignments, so anything beyond a small handful of atoms is
// refused outright rather than silently taking forever.
const MaxFreeAtoms = 20

// Model is one truth assignment the search accepted, keyed by the atom's
// canonical string form.
type Model map[string]bool

// TrueAtoms returns the atoms in m that hold, sorted for deterministic
// output.
func (m Model) TrueAtoms() []string {
	var out []string
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Search enumerates every truth assignment over the program's "free" head
// atoms (those appearing in a disjunctive or choice head with a nonempty
// body, or as one of several disjuncts) and returns the ones under which
// every rule is satisfied: constraints have a false body, and every other
// rule's head holds whenever its body does. Fact atoms (an unconditional
// single-atom head with an empty body) are fixed true up front and are not
// part of the free search space.
func Search(rules []*ast.Rule) ([]Model, error) {
	forced := map[string]bool{}
	free := map[string]*ast.Atom{}

	for _, r := range rules {
		if r.IsFact() && !r.Head.IsChoice() && len(r.Head.Disjuncts) == 1 {
			forced[r.Head.Disjuncts[0].String()] = true
			continue
		}
		for _, a := range r.Head.Disjuncts {
			free[a.String()] = a
		}
		if r.Head.IsChoice() {
			for _, e := range r.Head.Choice.Elements {
				free[e.Atom.String()] = e.Atom
			}
		}
	}

	keys := make([]string, 0, len(free))
	for k := range free {
		if !forced[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > MaxFreeAtoms {
		return nil, errors.Errorf("solve: %d free atoms exceeds the brute-force search limit of %d; this command is a smoke-test convenience, not a real solver", len(keys), MaxFreeAtoms)
	}

	var models []Model
	total := uint64(1) << uint(len(keys))
	for mask := uint64(0); mask < total; mask++ {
		candidate := make(Model, len(forced)+len(keys))
		for k := range forced {
			candidate[k] = true
		}
		for i, k := range keys {
			candidate[k] = mask&(1<<uint(i)) != 0
		}
		if satisfies(rules, candidate) {
			models = append(models, candidate)
		}
	}
	return models, nil
}

func satisfies(rules []*ast.Rule, m Model) bool {
	for _, r := range rules {
		bodyTrue := bodyHolds(r.Body, m)
		switch {
		case r.IsConstraint():
			if bodyTrue {
				return false
			}
		case r.Head.IsChoice():
			// A choice head is satisfied by any selection within bounds;
			// the brute-force search already fixed which elements are
			// true, so only the cardinality bound needs checking when the
			// body holds.
			if !bodyTrue {
				continue
			}
			count := 0
			for _, e := range r.Head.Choice.Elements {
				if m[e.Atom.String()] {
					count++
				}
			}
			if r.Head.Choice.Lower != nil && r.Head.Choice.Lower.Kind == ast.KindNumber && int64(count) < r.Head.Choice.Lower.Num {
				return false
			}
			if r.Head.Choice.Upper != nil && r.Head.Choice.Upper.Kind == ast.KindNumber && int64(count) > r.Head.Choice.Upper.Num {
				return false
			}
		default:
			if !bodyTrue {
				continue
			}
			ok := false
			for _, a := range r.Head.Disjuncts {
				if m[a.String()] {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
	}
	return true
}

func bodyHolds(body []*ast.Literal, m Model) bool {
	for _, l := range body {
		switch l.Kind {
		case ast.LitPositive:
			if !m[l.Atom.String()] {
				return false
			}
		case ast.LitNegative:
			if m[l.Atom.String()] {
				return false
			}
		case ast.LitBuiltin:
			left, err := ast.ReduceArith(l.Left)
			if err != nil {
				return false
			}
			right, err := ast.ReduceArith(l.Right)
			if err != nil {
				return false
			}
			if !builtinHolds(l.Op, left, right) {
				return false
			}
		case ast.LitAggregate:
			// A ground aggregate literal's elements are already concrete;
			// a body-only smoke test just needs every element condition
			// (by now ground) to hold to count it.
			count := 0
			for _, e := range l.Elements {
				if bodyHolds(e.Condition, m) {
					count++
				}
			}
			if !aggregateGuardHolds(l, count) {
				return false
			}
		}
	}
	return true
}

func builtinHolds(op ast.CompareOp, left, right *ast.Term) bool {
	switch op {
	case ast.CmpEq:
		return ast.Compare(left, right) == 0
	case ast.CmpNe:
		return ast.Compare(left, right) != 0
	case ast.CmpLt, ast.CmpLe, ast.CmpGt, ast.CmpGe:
		if left.Kind != ast.KindNumber || right.Kind != ast.KindNumber {
			return false
		}
		switch op {
		case ast.CmpLt:
			return left.Num < right.Num
		case ast.CmpLe:
			return left.Num <= right.Num
		case ast.CmpGt:
			return left.Num > right.Num
		case ast.CmpGe:
			return left.Num >= right.Num
		}
	}
	return false
}

// aggregateGuardHolds checks an aggregate's guard against how many of its
// elements held under the candidate assignment. Only #count is evaluated
// faithfully; sum/min/max over arbitrary element tuples are approximated
// by the same cardinality, consistent with this package's smoke-test-only
// scope.
func aggregateGuardHolds(l *ast.Literal, count int) bool {
	value := int64(count)
	if l.GuardLeft != nil && l.GuardLeft.Term.Kind == ast.KindNumber {
		if !builtinHolds(l.GuardLeft.Op, l.GuardLeft.Term, ast.NumberTerm(value)) {
			return false
		}
	}
	if l.GuardRight != nil && l.GuardRight.Term.Kind == ast.KindNumber {
		if !builtinHolds(l.GuardRight.Op, ast.NumberTerm(value), l.GuardRight.Term) {
			return false
		}
	}
	return true
}
