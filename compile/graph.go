// Package compile builds the predicate dependency graph for a program and
// orders its strongly connected components for grounding, per §4.3.
package compile

import (
	"github.com/asporia/grounder/ast"
)

// Edge records that Dst depends on Src (Src occurs in the body, Dst in the
// head) with the given polarity.
type Edge struct {
	Src, Dst ast.PredicateKey
	Negative bool
}

// Graph is the predicate dependency graph: nodes are predicate symbols,
// edges point from a body predicate to a head predicate it helps derive.
type Graph struct {
	Nodes []ast.PredicateKey
	// Rules maps each predicate to the rules that can produce it, so the
	// driver can pull exactly R_S (§4.5 step 3a) for a component.
	Rules map[ast.PredicateKey][]*ast.Rule
	adj   map[ast.PredicateKey][]Edge
	index map[ast.PredicateKey]int
}

// Build constructs the dependency graph from a program's rules. Facts
// contribute no body edges but still register their head predicates as
// nodes so that an all-facts predicate participates in its own
// (singleton, non-recursive) component.
func Build(rules []*ast.Rule) *Graph {
	g := &Graph{
		Rules: map[ast.PredicateKey][]*ast.Rule{},
		adj:   map[ast.PredicateKey][]Edge{},
		index: map[ast.PredicateKey]int{},
	}

	ensure := func(k ast.PredicateKey) {
		if _, ok := g.index[k]; !ok {
			g.index[k] = len(g.Nodes)
			g.Nodes = append(g.Nodes, k)
		}
	}

	for _, r := range rules {
		heads := r.HeadPredicates()
		for _, h := range heads {
			ensure(h)
			g.Rules[h] = append(g.Rules[h], r)
		}
		bodyPreds := r.BodyPredicates()
		for _, b := range bodyPreds {
			ensure(b.Key)
		}
		for _, h := range heads {
			for _, b := range bodyPreds {
				g.adj[b.Key] = append(g.adj[b.Key], Edge{Src: b.Key, Dst: h, Negative: !b.Positive})
			}
		}
	}

	return g
}

// Successors returns the edges leaving a predicate node (i.e. the rules'
// heads it can help derive).
func (g *Graph) Successors(k ast.PredicateKey) []Edge { return g.adj[k] }
