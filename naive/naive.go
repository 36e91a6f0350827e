// Package naive implements the reference state-graph engine: on every
// closure it recomputes the entire dead set from scratch via a
// backward DFS from the open vertices (spec §4.3). It is the simplest
// and slowest of the four engines, and is used as the cross-check
// oracle the other three are validated against.
package naive

import (
	"slices"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
)

// Engine is the naive incremental state-graph implementation. It
// satisfies stategraph.Engine.
type Engine struct {
	g *digraph.Arena[stategraph.VertexID, stategraph.Status]
}

// New constructs an empty Engine. Pass digraph.WithInstrumentation() to
// enable the GetSpace/GetTime debug counters.
func New(opts ...digraph.Option) *Engine {
	return &Engine{
		g: digraph.NewArena[stategraph.VertexID](stategraph.Open, statusEqual, opts...),
	}
}

func statusEqual(a, b stategraph.Status) bool { return a == b }

// AddTransition records an edge v1->v2. Naive has no precondition on
// v1's status; it simply appends the edge and lets the next closure
// sort things out.
func (e *Engine) AddTransition(v1, v2 stategraph.VertexID) {
	e.g.EnsureEdge(v1, v2)
}

// MarkClosed declares v closed and, unless v is already Live, sets it
// Unknown and recomputes the dead set from scratch.
func (e *Engine) MarkClosed(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	if status, _ := e.g.GetLabel(v); status == stategraph.Live {
		return // Live is absorbing (I5); closing a live vertex is a no-op
	}
	e.g.OverwriteVertex(v, stategraph.Unknown)
	e.recalculateDeadStates()
}

// MarkLive declares v live and propagates Live backward to every
// predecessor that isn't already Live.
func (e *Engine) MarkLive(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	for u := range e.g.DFSBck(slices.Values([]stategraph.VertexID{v}), func(w stategraph.VertexID) bool {
		status, _ := e.g.GetLabel(w)
		return status != stategraph.Live
	}) {
		e.g.OverwriteVertex(u, stategraph.Live)
	}
}

// NotReachable is accepted but ignored: the naive engine always
// recomputes exactly, so it has no use for reachability hints.
func (e *Engine) NotReachable(v1, v2 stategraph.VertexID) {
	e.g.EnsureVertex(v1)
}

// GetStatus returns v's current status, or ok=false if v has never
// been referenced.
func (e *Engine) GetStatus(v stategraph.VertexID) (stategraph.Status, bool) {
	return e.g.GetLabel(v)
}

// GetSpace returns the arena's accumulated allocation counter.
func (e *Engine) GetSpace() uint64 { return e.g.Space.Get() }

// GetTime returns the arena's accumulated operation-step counter.
func (e *Engine) GetTime() uint64 { return e.g.Time.Get() }

// recalculateDeadStates partitions the seen vertices into open and
// closed, does a backward DFS from every open vertex through closed
// predecessors only, and marks every closed vertex that DFS didn't
// reach as Dead (spec §4.3).
func (e *Engine) recalculateDeadStates() {
	var openSources []stategraph.VertexID
	var closedVerts []stategraph.VertexID
	for v := range e.g.IterVertices() {
		status, _ := e.g.GetLabel(v)
		switch status {
		case stategraph.Open:
			openSources = append(openSources, v)
		case stategraph.Unknown, stategraph.Dead:
			closedVerts = append(closedVerts, v)
		}
	}

	isClosed := func(u stategraph.VertexID) bool {
		status, _ := e.g.GetLabel(u)
		return status == stategraph.Unknown || status == stategraph.Dead
	}

	notDead := make(map[stategraph.VertexID]bool, len(closedVerts))
	for v := range e.g.DFSBck(slices.Values(openSources), isClosed) {
		notDead[v] = true
	}

	for _, v := range closedVerts {
		if !notDead[v] {
			e.g.OverwriteVertex(v, stategraph.Dead)
		}
	}
}
