// Package toposort implements the Topological Sorter of spec.md §4.9:
// Kahn's-algorithm evaluation-order construction for the init phase and
// the aux/level phases, including level-to-level edge reversal and
// stable isolated-node handling.
package toposort

// Edge is a (source, target) pair among refIds: source depends on
// target, matching spec.md §4.9's "edges (v.refId, ref.refId)" shape.
type Edge struct {
	From, To string
}

// kahn runs Kahn's algorithm over the graph edges describe. The
// returned order satisfies: for every edge (a, b), a precedes b
// (spec.md §4.9 — callers reverse this to get an evaluation order,
// since an edge here means "a depends on b"). Ties among ready nodes
// are broken by first-appearance order among edges, keeping the result
// deterministic for a fixed edge list (spec.md §5).
//
// Returns ok=false and the name of one unprocessed node when a cycle
// remains after the queue drains.
func kahn(edges []Edge) (order []string, cycleNode string, ok bool) {
	indeg := make(map[string]int)
	adj := make(map[string][]string)
	var nodes []string
	seenNode := make(map[string]bool)
	addNode := func(n string) {
		if !seenNode[n] {
			seenNode[n] = true
			nodes = append(nodes, n)
			indeg[n] = 0
		}
	}

	seenEdge := make(map[Edge]bool)
	var uniq []Edge
	for _, e := range edges {
		if seenEdge[e] {
			continue
		}
		seenEdge[e] = true
		uniq = append(uniq, e)
		addNode(e.From)
		addNode(e.To)
	}
	for _, e := range uniq {
		adj[e.From] = append(adj[e.From], e.To)
		indeg[e.To]++
	}

	var queue []string
	for _, n := range nodes {
		if indeg[n] == 0 {
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, m := range adj[n] {
			indeg[m]--
			if indeg[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) != len(nodes) {
		for _, n := range nodes {
			if indeg[n] > 0 {
				return nil, n, false
			}
		}
	}
	return order, "", true
}

func reverseOf(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func edgeNodeSet(edges []Edge) map[string]bool {
	out := make(map[string]bool, len(edges)*2)
	for _, e := range edges {
		out[e.From] = true
		out[e.To] = true
	}
	return out
}
