package ast

// Substitution maps variable names to ground (or partially ground) terms.
// It is implemented as a flat trail plus an index, per §9's design note:
// backtracking truncates the trail in O(1) instead of allocating a fresh
// map at every search node. Anonymous variables are never entries in a
// Substitution; they pass through Apply unchanged.
type Substitution struct {
	trail []binding
	index map[string]int // var name -> position in trail (last binding wins)
}

type binding struct {
	name string
	term *Term
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{index: map[string]int{}}
}

// Mark returns the current trail length, to be passed to Undo later.
func (s *Substitution) Mark() int { return len(s.trail) }

// Undo truncates the trail back to the given mark, undoing every binding
// made since. Index entries that point at removed trail positions are
// deleted.
func (s *Substitution) Undo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		name := s.trail[i].name
		if s.index[name] == i {
			delete(s.index, name)
		}
	}
	s.trail = s.trail[:mark]
}

// Bind extends the substitution with name -> term. Caller is responsible
// for ensuring name is not already bound to a different term (Match
// enforces this).
func (s *Substitution) Bind(name string, term *Term) {
	s.trail = append(s.trail, binding{name, term})
	s.index[name] = len(s.trail) - 1
}

// Lookup returns the term bound to name, if any.
func (s *Substitution) Lookup(name string) (*Term, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.trail[i].term, true
}

// Apply produces a new term with every bound Variable replaced by its
// binding. AnonymousVariable nodes are never bound and pass through
// unchanged (callers checking IsGround on the result will see unbound
// anonymous variables remain, which is expected for them).
func (s *Substitution) Apply(t *Term) *Term {
	switch t.Kind {
	case KindVariable:
		if bound, ok := s.Lookup(t.Sym); ok {
			return bound
		}
		return t
	case KindAnonymousVariable:
		return t
	case KindArith:
		return ArithTerm(t.Op, s.Apply(t.Children[0]), s.Apply(t.Children[1]))
	case KindFuncTerm:
		return FuncTermOf(t.Functor, s.applyAll(t.Children)...)
	case KindTupleTerm:
		return TupleTermOf(s.applyAll(t.Children)...)
	default:
		return t
	}
}

func (s *Substitution) applyAll(ts []*Term) []*Term {
	out := make([]*Term, len(ts))
	for i, c := range ts {
		out[i] = s.Apply(c)
	}
	return out
}

// Match performs one-way unification of pattern against a ground target,
// extending s in place. It returns false (and may have partially applied
// bindings that the caller must Undo back to a pre-call Mark) on failure.
//
// Matching succeeds on equal constants/numbers/strings, on structurally
// equal functors of equal name and arity (arguments matched pointwise), and
// binds an unbound variable to any ground term. A variable already bound in
// the partial substitution must match its prior binding exactly.
func (s *Substitution) Match(pattern, target *Term) bool {
	switch pattern.Kind {
	case KindVariable:
		if bound, ok := s.Lookup(pattern.Sym); ok {
			return bound.Equal(target)
		}
		s.Bind(pattern.Sym, target)
		return true
	case KindAnonymousVariable:
		// never bound; matches anything without recording a binding
		return true
	case KindNumber:
		return target.Kind == KindNumber && pattern.Num == target.Num
	case KindString:
		return target.Kind == KindString && pattern.Str == target.Str
	case KindSymbolicConstant:
		return target.Kind == KindSymbolicConstant && pattern.Sym == target.Sym
	case KindFuncTerm:
		if target.Kind != KindFuncTerm || target.Functor != pattern.Functor || len(target.Children) != len(pattern.Children) {
			return false
		}
		for i := range pattern.Children {
			if !s.Match(pattern.Children[i], target.Children[i]) {
				return false
			}
		}
		return true
	case KindTupleTerm:
		if target.Kind != KindTupleTerm || len(target.Children) != len(pattern.Children) {
			return false
		}
		for i := range pattern.Children {
			if !s.Match(pattern.Children[i], target.Children[i]) {
				return false
			}
		}
		return true
	case KindInfimum, KindSupremum:
		return pattern.Kind == target.Kind
	case KindArith:
		// Arith never appears as a match pattern against a ground derivation
		// set entry; callers must evaluate it first via EvalArith.
		return false
	}
	return false
}
