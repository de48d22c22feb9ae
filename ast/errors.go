package ast

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ParseError is a passthrough marker: the grounder never constructs one
// itself (the parser is an external collaborator per §6), but it exports
// the type for an upstream parser to return. The CLI does not inspect it;
// its own loader failures use a separate wrapper type.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string { return "parse error: " + e.Cause.Error() }
func (e *ParseError) Unwrap() error { return e.Cause }

// SafetyError reports a rule that failed §4.2 safety: one or more
// variables appear in the head, a negated literal, a built-in literal, or
// an aggregate guard without being range-restricted by a positive body
// literal.
type SafetyError struct {
	RuleID        string
	UnsafeVars    []string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("rule %s: unsafe variable(s): %s", e.RuleID, strings.Join(e.UnsafeVars, ", "))
}

// NewSafetyError wraps the error with a stack trace via pkg/errors so
// debug logging can render "%+v" while Error() stays stable for tests and
// CLI exit-code matching.
func NewSafetyError(ruleID string, unsafeVars VarSet) error {
	return errors.WithStack(&SafetyError{RuleID: ruleID, UnsafeVars: unsafeVars.Sorted()})
}

// ArityMismatchError reports a predicate name used with inconsistent
// arities across the program.
type ArityMismatchError struct {
	Predicate string
	Arities   []int
}

func (e *ArityMismatchError) Error() string {
	arities := make([]string, len(e.Arities))
	for i, a := range e.Arities {
		arities[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("predicate %q used with inconsistent arities: %s", e.Predicate, strings.Join(arities, ", "))
}

func NewArityMismatchError(predicate string, arities []int) error {
	return errors.WithStack(&ArityMismatchError{Predicate: predicate, Arities: arities})
}
