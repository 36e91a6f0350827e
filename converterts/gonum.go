package converters

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
)

// Snapshot wraps the *simple.DirectedGraph built by Export, plus the
// arena-vertex-name -> gonum-node-ID mapping used to build it.
type Snapshot struct {
	Graph *simple.DirectedGraph
	ids   map[stategraph.VertexID]int64
}

// IDOf returns the gonum node ID assigned to v, or ok=false if v was
// not a canonical vertex of the arena at snapshot time. Only each
// class's representative name has an ID; a name already merged into
// another class when Export ran has none. The mapping is fixed at
// export time and does not follow later merges.
func (s *Snapshot) IDOf(v stategraph.VertexID) (id int64, ok bool) {
	id, ok = s.ids[v]

	return id, ok
}

// AsDirected exposes the snapshot as a graph.Directed for callers that
// only want the gonum interface, not the concrete *simple.DirectedGraph.
func (s *Snapshot) AsDirected() graph.Directed {
	return s.Graph
}

// Export walks every canonical vertex and forward edge of a, in the
// order digraph.Arena's own iteration yields them, and returns a
// Snapshot wrapping the resulting gonum graph. The export is one-way:
// nothing here ever mutates the arena, and the snapshot is stale the
// instant the arena changes again. Complexity: O(V+E).
func Export[T any](a *digraph.Arena[stategraph.VertexID, T]) *Snapshot {
	g := simple.NewDirectedGraph()
	ids := make(map[stategraph.VertexID]int64)

	next := int64(0)
	for v := range a.IterVertices() {
		ids[v] = next
		g.AddNode(simple.Node(next))
		next++
	}

	for v := range a.IterVertices() {
		from := ids[v]
		for w := range a.IterFwdEdges(v) {
			to, ok := ids[w]
			if !ok {
				continue // w canonicalized away between the two passes
			}
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	return &Snapshot{Graph: g, ids: ids}
}
