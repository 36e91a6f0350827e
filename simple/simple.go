// Package simple implements the "Simple" incremental state-graph
// engine (spec §4.4): it keeps the canonical digraph acyclic by
// contracting any cycle eagerly at the moment its closing edge is
// installed, then propagates deadness via the shared topological
// backward search in internal/propagate.
package simple

import (
	"slices"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
	"github.com/katalvlaran/stategraph/internal/invariant"
	"github.com/katalvlaran/stategraph/internal/propagate"
)

// Engine is the Simple incremental state-graph implementation. It
// satisfies stategraph.Engine.
type Engine struct {
	g *digraph.Arena[stategraph.VertexID, propagate.Label]

	// pending buffers out-edges of still-open vertices; they are
	// installed into the arena only once their source closes (spec
	// §4.4: "On add_transition(v1, v2) with v1 Open, queue the edge").
	pending map[stategraph.VertexID][]stategraph.VertexID
}

// New constructs an empty Engine. Pass digraph.WithInstrumentation() to
// enable the GetSpace/GetTime debug counters.
func New(opts ...digraph.Option) *Engine {
	return &Engine{
		g:       digraph.NewArena[stategraph.VertexID](propagate.Label{Status: stategraph.Open}, propagate.Equal, opts...),
		pending: make(map[stategraph.VertexID][]stategraph.VertexID),
	}
}

// AddTransition queues the edge v1->v2 on v1. Precondition: v1 is Open.
func (e *Engine) AddTransition(v1, v2 stategraph.VertexID) {
	e.g.EnsureVertex(v1)
	e.g.EnsureVertex(v2)
	label, _ := e.g.GetLabel(v1)
	invariant.Assert(label.Status == stategraph.Open, "simple: AddTransition requires v1 Open, got %v", label.Status)
	e.pending[v1] = append(e.pending[v1], v2)
}

// MarkClosed declares v closed (spec §4.4): sets v Unknown, installs
// every queued out-edge — contracting the SCC whenever an edge closes
// a cycle back to v — then runs the shared dead-propagation check.
func (e *Engine) MarkClosed(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	if label, _ := e.g.GetLabel(v); label.Status == stategraph.Live {
		return // Live is absorbing (I5)
	}
	e.g.Mutate(v, func(cur *propagate.Label) { cur.Status = stategraph.Unknown })

	queued := e.pending[v]
	delete(e.pending, v)
	for _, w := range queued {
		e.g.EnsureEdge(v, w)
		if e.forwardReaches(w, v) {
			e.contractCycle(v)
		}
	}

	propagate.CheckDead(e.g, v)
}

// MarkLive declares v live and propagates Live backward to every
// predecessor that isn't already Live.
func (e *Engine) MarkLive(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	for u := range e.g.DFSBck(slices.Values([]stategraph.VertexID{v}), e.notLive) {
		e.g.Mutate(u, func(cur *propagate.Label) { cur.Status = stategraph.Live })
	}
}

// NotReachable is accepted but ignored: the Simple engine has no use
// for reachability hints.
func (e *Engine) NotReachable(v1, v2 stategraph.VertexID) {
	e.g.EnsureVertex(v1)
}

// GetStatus returns v's current status, or ok=false if v has never
// been referenced.
func (e *Engine) GetStatus(v stategraph.VertexID) (stategraph.Status, bool) {
	label, ok := e.g.GetLabel(v)

	return label.Status, ok
}

// GetSpace returns the arena's accumulated allocation counter.
func (e *Engine) GetSpace() uint64 { return e.g.Space.Get() }

// GetTime returns the arena's accumulated operation-step counter.
func (e *Engine) GetTime() uint64 { return e.g.Time.Get() }

func (e *Engine) notLive(w stategraph.VertexID) bool {
	label, _ := e.g.GetLabel(w)

	return label.Status != stategraph.Live
}

// forwardReaches reports whether to is forward-reachable from from.
func (e *Engine) forwardReaches(from, to stategraph.VertexID) bool {
	for u := range e.g.DFSFwd(slices.Values([]stategraph.VertexID{from}), always) {
		if e.g.IsSameVertex(u, to) {
			return true
		}
	}

	return false
}

// contractCycle merges the whole SCC containing v — the vertices both
// forward-reachable from v and backward-reachable from v — into v's
// class (spec §4.4 step 2). Their labels must already match (all
// Unknown, Level 0); Merge enforces that as a programmer-contract
// check (invariant I6).
func (e *Engine) contractCycle(v stategraph.VertexID) {
	inForward := make(map[stategraph.VertexID]bool)
	for u := range e.g.DFSFwd(slices.Values([]stategraph.VertexID{v}), always) {
		inForward[u] = true
	}

	var toMerge []stategraph.VertexID
	for u := range e.g.DFSBck(slices.Values([]stategraph.VertexID{v}), always) {
		if inForward[u] {
			toMerge = append(toMerge, u)
		}
	}

	for _, u := range toMerge {
		if !e.g.IsSameVertex(u, v) {
			e.g.Merge(v, u)
		}
	}
}

func always(stategraph.VertexID) bool { return true }
