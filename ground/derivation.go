// Package ground implements the instantiator and driver of §4.4–§4.5: the
// backtracking join that enumerates satisfying substitutions for a single
// rule, and the outer fixed-point loop that drives it component by
// component.
package ground

import (
	"github.com/asporia/grounder/ast"
	"github.com/asporia/grounder/internal/util"
)

// Set is the per-predicate derivation set: a hash table keyed by ground
// argument tuple, storing the canonical ground atom, per §9's design note.
// It grows monotonically while its component is being grounded and is
// never mutated once that component is frozen.
type Set struct {
	m        *util.HashMap[atomKey, *ast.Atom]
	frozen   bool
	grewSince bool
}

type atomKey struct{ a *ast.Atom }

func atomKeyEq(a, b atomKey) bool   { return a.a.Equal(b.a) }
func atomKeyHash(a atomKey) uint64 { return a.a.Hash() }

func newSet() *Set {
	return &Set{m: util.NewHashMap[atomKey, *ast.Atom](atomKeyEq, atomKeyHash)}
}

// Contains reports whether the ground atom is a member.
func (s *Set) Contains(a *ast.Atom) bool {
	_, ok := s.m.Get(atomKey{a})
	return ok
}

// Add inserts a ground atom, returning true if it was not already present
// (used by the driver to detect fixed-point progress).
func (s *Set) Add(a *ast.Atom) bool {
	if s.frozen {
		panic("ground: derivation set mutated after its component was frozen")
	}
	if s.Contains(a) {
		return false
	}
	s.m.Put(atomKey{a}, a)
	s.grewSince = true
	return true
}

func (s *Set) Len() int { return s.m.Len() }

func (s *Set) Each(f func(*ast.Atom)) {
	s.m.Iter(func(_ atomKey, a *ast.Atom) bool {
		f(a)
		return false
	})
}

// Store holds one Set per predicate symbol across the whole grounding run.
// Predicates never referenced by any rule head simply have no entry and
// behave as an always-empty set (EDB/undefined predicates per §4.3).
type Store struct {
	sets map[ast.PredicateKey]*Set
}

func NewStore() *Store {
	return &Store{sets: map[ast.PredicateKey]*Set{}}
}

// For returns the Set for a predicate, creating an empty one on first
// access.
func (s *Store) For(p ast.PredicateKey) *Set {
	set, ok := s.sets[p]
	if !ok {
		set = newSet()
		s.sets[p] = set
	}
	return set
}

// Size reports the current cardinality of a predicate's derivation set
// without creating an entry for predicates never seen, used by the
// instantiator's fan-out heuristic.
func (s *Store) Size(p ast.PredicateKey) int {
	if set, ok := s.sets[p]; ok {
		return set.Len()
	}
	return 0
}

// Freeze marks every predicate in a finished component as no longer
// growing, matching §3's "frozen once the component is complete". It also
// clears grewSince in preparation for the next component.
func (s *Store) Freeze(predicates []ast.PredicateKey) {
	for _, p := range predicates {
		set := s.For(p)
		set.frozen = true
		set.grewSince = false
	}
}

// ResetGrowthFlag clears the per-pass growth flag for the given predicates
// ahead of a new fixed-point pass.
func (s *Store) ResetGrowthFlag(predicates []ast.PredicateKey) {
	for _, p := range predicates {
		s.For(p).grewSince = false
	}
}

// AnyGrew reports whether any of the given predicates' sets grew since the
// last ResetGrowthFlag call — the driver's fixed-point termination test.
func (s *Store) AnyGrew(predicates []ast.PredicateKey) bool {
	for _, p := range predicates {
		if s.For(p).grewSince {
			return true
		}
	}
	return false
}
