package ast

import (
	"fmt"
	"strings"
)

// Atom is a predicate atom p(t1,...,tn). Identity for derivation-set
// membership is by (Name, Arity, ground Args); Atom itself does not
// require its args to be ground (it may appear inside a rule body before
// instantiation).
type Atom struct {
	Name string
	Args []*Term
}

func NewAtom(name string, args ...*Term) *Atom {
	return &Atom{Name: symbolInterner.Intern(name), Args: args}
}

func (a *Atom) Arity() int { return len(a.Args) }

func (a *Atom) IsGround() bool {
	for _, t := range a.Args {
		if !t.IsGround() {
			return false
		}
	}
	return true
}

func (a *Atom) FreeVars() VarSet {
	vs := NewVarSet()
	for _, t := range a.Args {
		t.collectFreeVars(vs)
	}
	return vs
}

func (a *Atom) Equal(other *Atom) bool {
	if a.Name != other.Name || len(a.Args) != len(other.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Hash keys a derivation set entry; equal atoms always hash equal.
func (a *Atom) Hash() uint64 {
	h := hashString(a.Name) ^ uint64(len(a.Args))<<40
	for _, t := range a.Args {
		h = h*31 + t.Hash()
	}
	return h
}

func (a *Atom) Apply(s *Substitution) *Atom {
	args := make([]*Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = s.Apply(t)
	}
	return &Atom{Name: a.Name, Args: args}
}

func (a *Atom) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	args := make([]string, len(a.Args))
	for i, t := range a.Args {
		args[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(args, ","))
}

// PredicateKey identifies a predicate symbol by name and arity; the
// dependency analyzer and derivation-set tables are both keyed by this.
type PredicateKey struct {
	Name  string
	Arity int
}

func (p PredicateKey) String() string {
	return fmt.Sprintf("%s/%d", p.Name, p.Arity)
}

func (a *Atom) Predicate() PredicateKey {
	return PredicateKey{Name: a.Name, Arity: len(a.Args)}
}
