package compile

import "github.com/asporia/grounder/ast"

// Component is a strongly connected component of the predicate dependency
// graph: the set of predicates that must be grounded together, plus
// whether any edge within the component is negative (a component with no
// internal negative edge is trivially stratified; one with an internal
// negative edge is grounded as a whole per §4.3's semi-naive
// approximation).
type Component struct {
	Predicates []ast.PredicateKey
	Recursive  bool // true if the component has more than one predicate or a self-loop
	SelfNeg    bool // true if any edge within the component is negative
}

// StratifiedOrder computes the strongly connected components of g with an
// iterative (explicit-stack) Tarjan algorithm — grounded on the teacher's
// SLGEngine.DetectCycles, adapted from SLG subgoal dependency tracking to
// predicate-symbol dependency tracking — and returns them in topological
// order (a component only depends on components that precede it).
//
// Tarjan's algorithm naturally yields SCCs in reverse topological order as
// each root pops off the stack, so the result only needs one reversal, not
// a separate topological sort.
func StratifiedOrder(g *Graph) []*Component {
	n := len(g.Nodes)
	if n == 0 {
		return nil
	}

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var sccsOrder [][]int // each entry is a set of node indices, in discovery-pop order
	nextIndex := 0
	stack := make([]int, 0, n)

	// Explicit-stack DFS to avoid recursion depth concerns on large
	// programs; frame tracks which successor edge to resume from.
	type frame struct {
		node    int
		edgeIdx int
		edges   []Edge
	}

	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}

		callStack := []frame{{node: start, edges: g.adj[g.Nodes[start]]}}
		index[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		stack = append(stack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]

			if top.edgeIdx < len(top.edges) {
				e := top.edges[top.edgeIdx]
				top.edgeIdx++
				wIdx := g.index[e.Dst]

				if index[wIdx] == unvisited {
					index[wIdx] = nextIndex
					lowlink[wIdx] = nextIndex
					nextIndex++
					stack = append(stack, wIdx)
					onStack[wIdx] = true
					callStack = append(callStack, frame{node: wIdx, edges: g.adj[g.Nodes[wIdx]]})
				} else if onStack[wIdx] {
					if index[wIdx] < lowlink[top.node] {
						lowlink[top.node] = index[wIdx]
					}
				}
				continue
			}

			// Done with this node's successors; pop and propagate lowlink
			// to parent, forming an SCC if this node is a root.
			v := top.node
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if lowlink[v] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				var scc []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sccsOrder = append(sccsOrder, scc)
			}
		}
	}

	// sccsOrder is in reverse topological order (sinks first, matching
	// Tarjan's standard output); reverse it so sources are grounded first.
	components := make([]*Component, len(sccsOrder))
	for i, scc := range sccsOrder {
		components[len(sccsOrder)-1-i] = buildComponent(g, scc)
	}
	return components
}

func buildComponent(g *Graph, nodeIdxs []int) *Component {
	members := make(map[int]bool, len(nodeIdxs))
	preds := make([]ast.PredicateKey, len(nodeIdxs))
	for i, idx := range nodeIdxs {
		members[idx] = true
		preds[i] = g.Nodes[idx]
	}

	c := &Component{Predicates: preds, Recursive: len(nodeIdxs) > 1}

	for _, idx := range nodeIdxs {
		for _, e := range g.adj[g.Nodes[idx]] {
			dstIdx := g.index[e.Dst]
			if members[dstIdx] {
				if dstIdx == idx && len(nodeIdxs) == 1 {
					c.Recursive = true
				}
				if e.Negative {
					c.SelfNeg = true
				}
			}
		}
	}

	return c
}
