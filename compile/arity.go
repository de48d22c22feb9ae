package compile

import "github.com/asporia/grounder/ast"

// CheckArities implements spec.md §6 step 1's "compute predicate arity
// table": every predicate symbol used across the program (in any head or
// body position) must be used with a single, consistent arity. A mismatch
// is reported against the same predicate name the dependency graph and
// derivation-set store key on, so it is caught before any grounding work
// begins rather than surfacing as a confusing empty result downstream.
func CheckArities(rules []*ast.Rule) error {
	seen := map[string]map[int]bool{}
	order := map[string][]int{}

	record := func(name string, arity int) error {
		if seen[name] == nil {
			seen[name] = map[int]bool{}
		}
		if !seen[name][arity] {
			seen[name][arity] = true
			order[name] = append(order[name], arity)
		}
		if len(order[name]) > 1 {
			return ast.NewArityMismatchError(name, order[name])
		}
		return nil
	}

	for _, r := range rules {
		for _, a := range r.Head.Disjuncts {
			if err := record(a.Name, a.Arity()); err != nil {
				return err
			}
		}
		if r.Head.IsChoice() {
			for _, a := range r.Head.Choice.HeadAtoms() {
				if err := record(a.Name, a.Arity()); err != nil {
					return err
				}
			}
		}
		for _, bp := range r.BodyPredicates() {
			if err := record(bp.Key.Name, bp.Key.Arity); err != nil {
				return err
			}
		}
	}
	return nil
}
