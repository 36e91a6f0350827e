// Package propagate holds the dead-propagation logic shared by the
// Simple and Tarjan engines (spec §4.5). The original BFGT source
// itself notes the duplication between its simple.rs and tarjan.rs
// check_dead routines; this package is that shared routine, collapsed
// into one place rather than copied twice.
package propagate

import (
	"slices"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
)

// Label is the per-vertex payload shared by the Simple and Tarjan
// engines: a Status plus a pseudo-topological Level. Simple never
// advances Level past its zero value; it is carried purely for storage
// uniformity with Tarjan (spec §4.4).
type Label struct {
	Status stategraph.Status
	Level  int
}

// Equal reports whether two Labels match on both fields — invariant I6
// requires equal status, and for Tarjan additionally equal level,
// before two vertices may be merged.
func Equal(a, b Label) bool {
	return a.Status == b.Status && a.Level == b.Level
}

// CheckDead runs topo_search_bck from {v} with closed_pred(u) :=
// (u.Status ∈ {Unknown, Dead}) and keep(w) := ¬w.Status.IsDead(), and
// sets Dead on every vertex the search yields (spec §4.5). Thanks to
// invariant I3 (the canonical graph is acyclic at quiescence for both
// callers), this is well-defined: a vertex is declared Dead only after
// every one of its forward-reachable, closed, not-yet-dead successors
// has already been decided.
func CheckDead(g *digraph.Arena[stategraph.VertexID, Label], v stategraph.VertexID) {
	closedPred := func(u stategraph.VertexID) bool {
		label, _ := g.GetLabel(u)
		return label.Status == stategraph.Unknown || label.Status == stategraph.Dead
	}
	keep := func(w stategraph.VertexID) bool {
		label, _ := g.GetLabel(w)
		return !label.Status.IsDead()
	}

	sources := slices.Values([]stategraph.VertexID{v})
	for u := range g.TopoSearchBck(sources, closedPred, keep) {
		g.Mutate(u, func(cur *Label) { cur.Status = stategraph.Dead })
	}
}
