// Package ast: policy.go defines the rule and program model, matching the
// teacher's ast.Module/Rule/Body layout in ast/policy.go, adapted from
// OPA's Datalog-flavored rules to ASP-Core-2 rules (disjunctive/choice
// heads, default negation, aggregates).
package ast

import "strings"

// ChoiceElement is one element of a choice head: an atom and the condition
// literals that must hold for the atom to be eligible for selection.
type ChoiceElement struct {
	Atom      *Atom
	Condition []*Literal
}

func (e *ChoiceElement) FreeVars() VarSet {
	vs := e.Atom.FreeVars()
	for _, l := range e.Condition {
		vs.Update(l.FreeVars())
	}
	return vs
}

func (e *ChoiceElement) String() string {
	s := e.Atom.String()
	if len(e.Condition) > 0 {
		conds := make([]string, len(e.Condition))
		for i, l := range e.Condition {
			conds[i] = l.String()
		}
		s += ":" + strings.Join(conds, ",")
	}
	return s
}

// ChoiceHead represents "lower { elements } upper".
type ChoiceHead struct {
	Lower    *Term // nil if unbounded below
	Upper    *Term // nil if unbounded above
	Elements []*ChoiceElement
}

func (c *ChoiceHead) FreeVars() VarSet {
	vs := NewVarSet()
	if c.Lower != nil {
		c.Lower.collectFreeVars(vs)
	}
	if c.Upper != nil {
		c.Upper.collectFreeVars(vs)
	}
	return vs
}

// HeadAtoms returns every atom that could be produced by the choice head,
// ignoring conditions — used by the dependency analyzer to add edges from
// the atoms referenced in conditions to these head predicates.
func (c *ChoiceHead) HeadAtoms() []*Atom {
	atoms := make([]*Atom, len(c.Elements))
	for i, e := range c.Elements {
		atoms[i] = e.Atom
	}
	return atoms
}

func (c *ChoiceHead) String() string {
	elems := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		elems[i] = e.String()
	}
	body := "{ " + strings.Join(elems, "; ") + " }"
	if c.Lower != nil {
		body = c.Lower.String() + " " + body
	}
	if c.Upper != nil {
		body = body + " " + c.Upper.String()
	}
	return body
}

// Head is the disjunction-of-atoms | choice | empty (constraint) head of a
// rule, modeled as a closed sum rather than an interface so that the
// instantiator's switch over head kinds is exhaustive and compiler-checked.
type Head struct {
	Disjuncts []*Atom     // nil if Choice != nil or this is a constraint
	Choice    *ChoiceHead // nil if this is a disjunctive/fact head or a constraint
}

func (h *Head) IsConstraint() bool { return len(h.Disjuncts) == 0 && h.Choice == nil }
func (h *Head) IsChoice() bool     { return h.Choice != nil }

func (h *Head) FreeVars() VarSet {
	vs := NewVarSet()
	for _, a := range h.Disjuncts {
		vs.Update(a.FreeVars())
	}
	if h.Choice != nil {
		vs.Update(h.Choice.FreeVars())
	}
	return vs
}

func (h *Head) String() string {
	switch {
	case h.IsConstraint():
		return ""
	case h.IsChoice():
		return h.Choice.String()
	default:
		parts := make([]string, len(h.Disjuncts))
		for i, a := range h.Disjuncts {
			parts[i] = a.String()
		}
		return strings.Join(parts, "|")
	}
}

// Rule is a head/body pair. A fact has an empty Body; a constraint has an
// empty Head (IsConstraint() == true).
type Rule struct {
	Head *Head
	Body []*Literal

	// Location is diagnostic-only provenance copied from the parser's AST;
	// it is not part of String and so not part of ground-rule
	// deduplication.
	Location string
}

func (r *Rule) IsFact() bool       { return len(r.Body) == 0 }
func (r *Rule) IsConstraint() bool { return r.Head.IsConstraint() }

// PosVars returns the union of free variables in positive, non-aggregate
// body literals — step 1 of the §4.2 safety analysis.
func (r *Rule) PosVars() VarSet {
	vs := NewVarSet()
	for _, l := range r.Body {
		if l.Kind == LitPositive {
			vs.Update(l.Atom.FreeVars())
		}
	}
	return vs
}

// BodyPredicates returns every predicate referenced positively or
// negatively in the body, used by the dependency analyzer.
func (r *Rule) BodyPredicates() [](struct {
	Key      PredicateKey
	Positive bool
}) {
	var out [](struct {
		Key      PredicateKey
		Positive bool
	})
	for _, l := range r.Body {
		switch l.Kind {
		case LitPositive:
			out = append(out, struct {
				Key      PredicateKey
				Positive bool
			}{l.Atom.Predicate(), true})
		case LitNegative:
			out = append(out, struct {
				Key      PredicateKey
				Positive bool
			}{l.Atom.Predicate(), false})
		case LitAggregate:
			for _, e := range l.Elements {
				for _, c := range e.Condition {
					if c.Kind == LitPositive {
						out = append(out, struct {
							Key      PredicateKey
							Positive bool
						}{c.Atom.Predicate(), true})
					} else if c.Kind == LitNegative {
						out = append(out, struct {
							Key      PredicateKey
							Positive bool
						}{c.Atom.Predicate(), false})
					}
				}
			}
		}
	}
	if r.Head.IsChoice() {
		for _, e := range r.Head.Choice.Elements {
			for _, c := range e.Condition {
				if c.Kind == LitPositive || c.Kind == LitNegative {
					out = append(out, struct {
						Key      PredicateKey
						Positive bool
					}{c.Atom.Predicate(), c.Kind == LitPositive})
				}
			}
		}
	}
	return out
}

// HeadPredicates returns every predicate the rule's head can produce.
func (r *Rule) HeadPredicates() []PredicateKey {
	var out []PredicateKey
	for _, a := range r.Head.Disjuncts {
		out = append(out, a.Predicate())
	}
	if r.Head.IsChoice() {
		for _, a := range r.Head.Choice.HeadAtoms() {
			out = append(out, a.Predicate())
		}
	}
	return out
}

func (r *Rule) IsGround() bool {
	for _, a := range r.Head.Disjuncts {
		if !a.IsGround() {
			return false
		}
	}
	if r.Head.Choice != nil {
		if r.Head.Choice.Lower != nil && !r.Head.Choice.Lower.IsGround() {
			return false
		}
		if r.Head.Choice.Upper != nil && !r.Head.Choice.Upper.IsGround() {
			return false
		}
		for _, e := range r.Head.Choice.Elements {
			if !e.Atom.IsGround() {
				return false
			}
			for _, c := range e.Condition {
				if !c.IsGround() {
					return false
				}
			}
		}
	}
	for _, l := range r.Body {
		if !l.IsGround() {
			return false
		}
	}
	return true
}

func (r *Rule) String() string {
	if r.IsFact() {
		return r.Head.String() + "."
	}
	body := make([]string, len(r.Body))
	for i, l := range r.Body {
		body[i] = l.String()
	}
	return r.Head.String() + " :- " + strings.Join(body, ", ") + "."
}

// Directive is an opaque key/value pair (e.g. #show, #const) held on
// Program.Directives. Grounding does not interpret directives, and the
// driver's Result does not carry them.
type Directive struct {
	Name string
	Args []*Term
}

// Program is an ordered sequence of rules plus opaque directives.
type Program struct {
	Rules      []*Rule
	Directives []*Directive
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Rules))
	for _, r := range p.Rules {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
