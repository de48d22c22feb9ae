package ground

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/asporia/grounder/ast"
	"github.com/asporia/grounder/compile"
)

// Driver implements §4.5: safety-check every rule once, stratify the
// predicate dependency graph, then ground each component in topological
// order, iterating to a fixed point within a component that is recursive
// or carries an internal negative edge.
type Driver struct {
	store   *Store
	metrics *Metrics
	log     *logrus.Entry
	strict  bool
}

// NewDriver constructs a Driver. log and metrics may be nil: a nil log
// falls back to logrus's standard logger, and a nil metrics skips
// instrumentation.
func NewDriver(log *logrus.Entry, metrics *Metrics) *Driver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Driver{store: NewStore(), metrics: metrics, log: log}
}

// WithStrict propagates the instantiator's strict-discard mode (see
// Instantiator.WithStrict) to every component this Driver grounds.
func (d *Driver) WithStrict(strict bool) *Driver {
	d.strict = strict
	return d
}

// Result is the outcome of a full grounding run.
type Result struct {
	Rules      []*ast.Rule
	Store      *Store
	Components int
}

// Ground safety-checks prog's rules, stratifies them, grounds every
// component and then the integrity constraints, returning the concatenated
// ground program in the order components were processed (each component's
// rules sorted by their canonical text, constraints last).
func (d *Driver) Ground(ctx context.Context, prog *ast.Program) (*Result, error) {
	ctx, span := startSpan(ctx, "ground.Driver.Ground")
	defer span.End()

	if err := compile.CheckArities(prog.Rules); err != nil {
		return nil, err
	}

	checked, err := d.checkSafety(prog.Rules)
	if err != nil {
		return nil, err
	}

	graph := compile.Build(checked)
	components := compile.StratifiedOrder(graph)
	d.log.WithField("components", len(components)).Debug("stratified dependency graph")

	var out []*ast.Rule
	for i, comp := range components {
		compCtx, compSpan := startSpan(ctx, "ground.Driver.groundComponent")
		start := time.Now()

		rules := componentRules(graph, comp)
		entry := d.log.WithFields(logrus.Fields{
			"component": i,
			"predicates": len(comp.Predicates),
			"recursive":  comp.Recursive,
			"self_neg":   comp.SelfNeg,
		})
		entry.Debug("grounding component")

		emitted, err := d.groundComponent(compCtx, comp, rules)
		compSpan.End()
		if err != nil {
			return nil, errors.Wrapf(err, "grounding component %d", i)
		}
		d.store.Freeze(comp.Predicates)
		out = append(out, emitted...)

		if d.metrics != nil {
			d.metrics.ComponentSeconds.Observe(time.Since(start).Seconds())
		}
		entry.WithField("rules_emitted", len(emitted)).Debug("component grounded")
	}

	// Integrity constraints have no head predicate, so no component owns
	// them; ground them once every derivation set is complete.
	var constraints []*ast.Rule
	for _, r := range checked {
		if len(r.HeadPredicates()) == 0 {
			constraints = append(constraints, r)
		}
	}
	if len(constraints) > 0 {
		emitted, err := d.groundComponent(ctx, &compile.Component{}, constraints)
		if err != nil {
			return nil, errors.Wrap(err, "grounding constraints")
		}
		out = append(out, emitted...)
	}

	return &Result{Rules: out, Store: d.store, Components: len(components)}, nil
}

// checkSafety runs ast.CheckSafety over every rule, using the rule's
// Location (when the parser set one) or a positional fallback as the rule
// ID carried into any SafetyError.
func (d *Driver) checkSafety(rules []*ast.Rule) ([]*ast.Rule, error) {
	checked := make([]*ast.Rule, 0, len(rules))
	for i, r := range rules {
		ruleID := r.Location
		if ruleID == "" {
			ruleID = fmt.Sprintf("rule#%d", i)
		}
		safe, err := ast.CheckSafety(ruleID, r)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %s failed safety analysis", ruleID)
		}
		checked = append(checked, safe)
	}
	return checked, nil
}

// componentRules collects the deduplicated set of rules that can produce
// any predicate in comp, grouped by predicate in comp.Predicates order and
// in source order within each predicate.
func componentRules(g *compile.Graph, comp *compile.Component) []*ast.Rule {
	seen := map[*ast.Rule]bool{}
	var out []*ast.Rule
	for _, p := range comp.Predicates {
		for _, r := range g.Rules[p] {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// groundComponent runs the semi-naive fixed-point loop of §4.5 step 3 over
// a single component's rules. Choice-head atoms are never added to the
// store while THIS component is grounding (the "pessimistic regime"
// resolution of the choice-in-SCC open question: a choice head is the
// solver's decision, not a fact the grounder may assume to keep deriving
// more atoms), but are flushed into the store once the component reaches
// its fixed point, so that later, dependent components can still join
// against them.
func (d *Driver) groundComponent(ctx context.Context, comp *compile.Component, rules []*ast.Rule) ([]*ast.Rule, error) {
	inst := NewInstantiator(d.store).WithMetrics(d.metrics).WithStrict(d.strict)
	seenGround := map[string]bool{}
	var emitted []*ast.Rule
	var pendingChoice []*ast.Atom

	emit := func(gr *ast.Rule) error {
		key := gr.String()
		if seenGround[key] {
			return nil
		}
		seenGround[key] = true
		emitted = append(emitted, gr)
		if d.metrics != nil {
			d.metrics.RulesEmitted.Inc()
		}

		for _, a := range gr.Head.Disjuncts {
			d.store.For(a.Predicate()).Add(a)
		}
		if gr.Head.IsChoice() {
			for _, e := range gr.Head.Choice.Elements {
				pendingChoice = append(pendingChoice, e.Atom)
			}
		}
		return nil
	}

	needsFixpoint := comp.Recursive || comp.SelfNeg
	pass := 0
	for {
		pass++
		d.store.ResetGrowthFlag(comp.Predicates)
		for _, r := range rules {
			if _, err := inst.Instantiate(r, emit); err != nil {
				return nil, err
			}
		}
		if !needsFixpoint || !d.store.AnyGrew(comp.Predicates) {
			break
		}
	}
	if d.metrics != nil {
		d.metrics.FixpointPasses.Observe(float64(pass))
	}

	_, span := startSpan(ctx, "ground.Driver.flushChoiceAtoms")
	for _, a := range pendingChoice {
		d.store.For(a.Predicate()).Add(a)
	}
	span.End()

	// The join order above walks derivation sets backed by a Go map, which
	// randomizes iteration order per run. Sort on the rule's canonical text
	// so a component's emitted rules are stable across runs regardless of
	// that enumeration order.
	sort.Slice(emitted, func(i, j int) bool { return emitted[i].String() < emitted[j].String() })

	return emitted, nil
}
