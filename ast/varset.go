package ast

// VarSet is a set of variable names. It is used throughout safety analysis
// and the instantiator's matching-order heuristic, mirroring the teacher's
// ast.VarSet used by checkSafetyBody/reorderBodyForSafety.
type VarSet map[string]struct{}

// NewVarSet returns an empty VarSet.
func NewVarSet(names ...string) VarSet {
	vs := make(VarSet, len(names))
	for _, n := range names {
		vs.Add(n)
	}
	return vs
}

func (vs VarSet) Add(name string) { vs[name] = struct{}{} }

func (vs VarSet) Contains(name string) bool {
	_, ok := vs[name]
	return ok
}

// Update adds every member of other into vs.
func (vs VarSet) Update(other VarSet) {
	for k := range other {
		vs[k] = struct{}{}
	}
}

// Diff returns the members of vs not present in other.
func (vs VarSet) Diff(other VarSet) VarSet {
	r := NewVarSet()
	for k := range vs {
		if !other.Contains(k) {
			r.Add(k)
		}
	}
	return r
}

// Intersect returns the members present in both sets.
func (vs VarSet) Intersect(other VarSet) VarSet {
	r := NewVarSet()
	for k := range vs {
		if other.Contains(k) {
			r.Add(k)
		}
	}
	return r
}

func (vs VarSet) Copy() VarSet {
	r := make(VarSet, len(vs))
	for k := range vs {
		r[k] = struct{}{}
	}
	return r
}

func (vs VarSet) Len() int { return len(vs) }

// Sorted returns the members in a stable, deterministic order (plain sort
// by name) so that error messages and safety diagnostics are reproducible
// across runs, satisfying the determinism property in §8.
func (vs VarSet) Sorted() []string {
	out := make([]string, 0, len(vs))
	for k := range vs {
		out = append(out, k)
	}
	insertionSortStrings(out)
	return out
}

func insertionSortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
