package ground

import "github.com/asporia/grounder/ast"

// joinBody is the shared backtracking join used both for a rule's top-level
// body (§4.4) and for expanding an aggregate/choice element's condition
// literals against the current derivation sets. Positive literals bind by
// matching, an equality with one unbound side binds that side, and every
// other built-in filters. leaf is called once per
// satisfying substitution found along the way; returning a non-nil error
// from leaf aborts the whole search (propagated to the caller), letting
// callers collect a bounded or early-exiting set of results.
func joinBody(store *Store, order []*ast.Literal, sub *ast.Substitution, leaf func() error) error {
	var walk func(pos int) error
	walk = func(pos int) error {
		if pos == len(order) {
			return leaf()
		}
		lit := order[pos]
		switch lit.Kind {
		case ast.LitPositive:
			set := store.For(lit.Atom.Predicate())
			var result error
			set.Each(func(candidate *ast.Atom) {
				if result != nil {
					return
				}
				if len(candidate.Args) != len(lit.Atom.Args) {
					return
				}
				mark := sub.Mark()
				ok := true
				for i := range lit.Atom.Args {
					if !sub.Match(lit.Atom.Args[i], candidate.Args[i]) {
						ok = false
						break
					}
				}
				if ok {
					if err := walk(pos + 1); err != nil {
						result = err
					}
				}
				sub.Undo(mark)
			})
			return result
		case ast.LitNegative:
			ground, err := groundAtom(lit.Atom, sub)
			if err != nil {
				return discardOrPropagate(err)
			}
			if store.For(ground.Predicate()).Contains(ground) {
				return nil
			}
			return walk(pos + 1)
		case ast.LitBuiltin:
			if lit.Op == ast.CmpEq {
				// A chained equality binds its unbound side once the other
				// side is ground, as the safety analysis assumes.
				for _, s := range [][2]*ast.Term{{lit.Left, lit.Right}, {lit.Right, lit.Left}} {
					pattern, target := sub.Apply(s[0]), sub.Apply(s[1])
					if pattern.IsGround() || !target.IsGround() {
						continue
					}
					reduced, err := ast.ReduceArith(target)
					if err != nil {
						return discardOrPropagate(err)
					}
					mark := sub.Mark()
					if sub.Match(pattern, reduced) {
						err = walk(pos + 1)
					}
					sub.Undo(mark)
					return err
				}
			}
			ok, err := evalBuiltin(lit, sub)
			if err != nil {
				return discardOrPropagate(err)
			}
			if !ok {
				return nil
			}
			return walk(pos + 1)
		default:
			// Aggregates are not supported as element/condition members
			// (ASP-Core-2 forbids nested aggregates) and are treated as
			// vacuously satisfied; safety analysis does not inspect element
			// conditions, so nothing upstream rejects such a literal.
			return walk(pos + 1)
		}
	}
	return walk(0)
}
