package ground

import "github.com/asporia/grounder/ast"

// matchingOrder re-sequences a safety-verified rule body using the
// heuristic of §4.4 step 1: within each safety tier (literals that became
// safe in the same pass, any order of which is equally safe — see
// ast.SafeTiers), positive non-aggregate literals are ordered to prefer
// binding the most currently-unbound variables of the rest of the body,
// breaking ties by the predicate's current derivation-set size. Built-ins,
// negatives, and aggregates keep their tier-relative order, since §4.4
// already places them "as early as their variables become bound" /
// "last" via the tiering itself.
func matchingOrder(body []*ast.Literal, sizeOf func(ast.PredicateKey) int) []*ast.Literal {
	tiers := ast.SafeTiers(body)

	remainingVars := ast.NewVarSet()
	for _, l := range body {
		remainingVars.Update(l.FreeVars())
	}

	out := make([]*ast.Literal, 0, len(body))
	for _, tier := range tiers {
		positives := make([]*ast.Literal, 0, len(tier.Literals))
		rest := make([]*ast.Literal, 0, len(tier.Literals))
		for _, l := range tier.Literals {
			if l.Kind == ast.LitPositive {
				positives = append(positives, l)
			} else {
				rest = append(rest, l)
			}
		}

		ordered := orderByFanout(positives, remainingVars, sizeOf)
		ordered = append(ordered, rest...)
		out = append(out, ordered...)
	}
	return out
}

// orderByFanout greedily selects, at each step, the remaining positive
// literal that binds the most variables still needed by the rest of the
// body, breaking ties by the smaller current derivation-set size (a
// smaller set means fewer candidate bindings to try per join step).
func orderByFanout(literals []*ast.Literal, neededElsewhere ast.VarSet, sizeOf func(ast.PredicateKey) int) []*ast.Literal {
	remaining := append([]*ast.Literal(nil), literals...)
	out := make([]*ast.Literal, 0, len(literals))

	for len(remaining) > 0 {
		bestIdx := 0
		bestBound := -1
		bestSize := -1
		for i, l := range remaining {
			bound := l.FreeVars().Intersect(neededElsewhere).Len()
			size := sizeOf(l.Atom.Predicate())
			if bound > bestBound || (bound == bestBound && size < bestSize) {
				bestIdx, bestBound, bestSize = i, bound, size
			}
		}
		chosen := remaining[bestIdx]
		out = append(out, chosen)
		for v := range chosen.FreeVars() {
			delete(neededElsewhere, v)
		}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out
}
