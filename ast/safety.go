package ast

// CheckSafety implements §4.2's safety analysis as a left-to-right
// reordering pass, grounded on the teacher's ast.reorderBodyForSafety: body
// literals are appended to the reordered body as soon as every variable
// they require is already safe, iterating to a fixpoint. If a fixpoint is
// reached with literals still unplaced, those literals name the unsafe
// variables returned in the error.
//
// The matching order produced here is also handed to the instantiator
// as-is: the reordering IS the matching order described in §4.4 step 1,
// modulo the fan-out heuristic the instantiator layers on top for ties
// among literals that become safe in the same pass.
func CheckSafety(ruleID string, r *Rule) (*Rule, error) {
	safe := NewVarSet()

	reordered, unsafe := reorderForSafety(safe, r.Body)
	if len(unsafe) > 0 {
		return nil, NewSafetyError(ruleID, unsafe)
	}

	// Extend safe with the output variables of the fully reordered body,
	// then check head/negative/builtin/aggregate-guard variables per step 3.
	bodySafe := NewVarSet()
	for _, l := range reordered {
		bodySafe.Update(outputVars(l, bodySafe))
	}

	headUnsafe := r.Head.FreeVars().Diff(bodySafe)
	if len(headUnsafe) > 0 {
		return nil, NewSafetyError(ruleID, headUnsafe)
	}

	cpy := *r
	cpy.Body = reordered
	return &cpy, nil
}

// Tier groups literals that became safe in the same reordering pass: within
// a tier, any order is equally safe, so the instantiator is free to apply
// its fan-out-minimizing heuristic (§4.4 step 1) without reconsidering
// safety.
type Tier struct {
	Literals []*Literal
}

// SafeTiers re-runs the safety reordering pass on an already-verified-safe
// body and returns it grouped by tier instead of flattened, so that
// ground.Instantiator can re-sequence positive literals within a tier by
// derivation-set size while still respecting the cross-tier safety order.
func SafeTiers(body []*Literal) []Tier {
	placed := make(map[*Literal]bool, len(body))
	safe := NewVarSet()
	var tiers []Tier

	for {
		// Every literal of a tier is judged against the safe set as it stood
		// at the start of the pass, so that no member depends on another.
		var tier []*Literal
		bound := NewVarSet()
		for _, l := range body {
			if placed[l] {
				continue
			}
			if literalIsSafe(l, safe) {
				placed[l] = true
				tier = append(tier, l)
				bound.Update(outputVars(l, safe))
			}
		}
		if len(tier) == 0 {
			break
		}
		safe.Update(bound)
		tiers = append(tiers, Tier{Literals: tier})
	}

	return tiers
}

// reorderForSafety is the core two-pass fixpoint: append literals as soon
// as they become safe (their required input variables are already bound),
// tracking which variables each literal still needs.
func reorderForSafety(globals VarSet, body []*Literal) ([]*Literal, VarSet) {
	reordered := make([]*Literal, 0, len(body))
	placed := make(map[*Literal]bool, len(body))
	safe := globals.Copy()

	// needed[l] is recomputed each pass against the growing safe set rather
	// than cached, since "needed" depends on what has already become safe
	// (e.g. builtins only need their non-output side bound).
	for {
		progress := false
		for _, l := range body {
			if placed[l] {
				continue
			}
			if literalIsSafe(l, safe) {
				placed[l] = true
				reordered = append(reordered, l)
				safe.Update(outputVars(l, safe))
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	if len(reordered) == len(body) {
		return reordered, NewVarSet()
	}

	unsafe := NewVarSet()
	for _, l := range body {
		if placed[l] {
			continue
		}
		for v := range requiredVars(l) {
			if !safe.Contains(v) {
				unsafe.Add(v)
			}
		}
	}
	return nil, unsafe
}

// literalIsSafe reports whether l can be evaluated given that every
// variable in safe is already bound.
func literalIsSafe(l *Literal, safe VarSet) bool {
	switch l.Kind {
	case LitPositive:
		// A positive non-aggregate literal is always safe to place — it is
		// the thing that BINDS variables (§4.2 step 1); its own free
		// variables need not already be safe.
		return true
	case LitNegative:
		return l.Atom.FreeVars().Diff(safe).Len() == 0
	case LitBuiltin:
		// Chained equality x = t is safe as soon as fv(t) subseteq safe,
		// even if x is not yet safe, because x becomes safe as a result
		// (§4.2 step 2). Otherwise both sides must already be safe.
		if l.Op == CmpEq {
			lv, rv := l.Left.FreeVars(), l.Right.FreeVars()
			if rv.Diff(safe).Len() == 0 {
				return true
			}
			if lv.Diff(safe).Len() == 0 {
				return true
			}
			return false
		}
		return l.Left.FreeVars().Diff(safe).Len() == 0 && l.Right.FreeVars().Diff(safe).Len() == 0
	case LitAggregate:
		// An aggregate is safe once every variable outside its own element
		// scope (i.e. its guards) is bound; per §4.4 step 2 it is placed
		// once globals cover its guard variables.
		return l.FreeVars().Diff(safe).Len() == 0
	}
	return false
}

// requiredVars returns the variables a literal needs bound to be safe,
// used only for the final unsafe-variable report.
func requiredVars(l *Literal) VarSet {
	switch l.Kind {
	case LitNegative:
		return l.Atom.FreeVars()
	case LitBuiltin:
		vs := l.Left.FreeVars()
		vs.Update(l.Right.FreeVars())
		return vs
	case LitAggregate:
		return l.FreeVars()
	default:
		return NewVarSet()
	}
}

// outputVars returns the variables a literal newly binds once it is placed
// in the reordered body, given the variables already safe beforehand.
func outputVars(l *Literal, safe VarSet) VarSet {
	switch l.Kind {
	case LitPositive:
		return l.Atom.FreeVars()
	case LitBuiltin:
		if l.Op == CmpEq {
			lv, rv := l.Left.FreeVars(), l.Right.FreeVars()
			if rv.Diff(safe).Len() == 0 {
				return lv.Diff(safe)
			}
			if lv.Diff(safe).Len() == 0 {
				return rv.Diff(safe)
			}
			return NewVarSet()
		}
		return NewVarSet()
	default:
		return NewVarSet()
	}
}
