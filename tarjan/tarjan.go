// Package tarjan implements the Bender-Fineman-Gilbert-Tarjan
// incremental cycle-detection engine at parameter δ=⌊√m⌋ (spec §4.6):
// it maintains a pseudo-topological Level per vertex, promoting levels
// and contracting cycles incrementally as each edge is installed,
// rather than Simple's eager full-SCC scan on every closing edge.
package tarjan

import (
	"math"
	"slices"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
	"github.com/katalvlaran/stategraph/internal/invariant"
	"github.com/katalvlaran/stategraph/internal/propagate"
)

// Engine is the Tarjan incremental state-graph implementation. It
// satisfies stategraph.Engine.
type Engine struct {
	g *digraph.Arena[stategraph.VertexID, propagate.Label]

	// pending buffers out-edges of still-open vertices, installed and
	// leveled only once their source closes (spec §4.6).
	pending map[stategraph.VertexID][]stategraph.VertexID

	// edgeCount is the running edge total m used to derive δ=⌊√m⌋.
	edgeCount int
}

// New constructs an empty Engine. Pass digraph.WithInstrumentation() to
// enable the GetSpace/GetTime debug counters.
func New(opts ...digraph.Option) *Engine {
	return &Engine{
		g:       digraph.NewArena[stategraph.VertexID](propagate.Label{Status: stategraph.Open}, propagate.Equal, opts...),
		pending: make(map[stategraph.VertexID][]stategraph.VertexID),
	}
}

// AddTransition queues the edge v1->v2 on v1 and counts it toward m.
// Precondition: v1 is Open.
func (e *Engine) AddTransition(v1, v2 stategraph.VertexID) {
	e.g.EnsureVertex(v1)
	e.g.EnsureVertex(v2)
	label, _ := e.g.GetLabel(v1)
	invariant.Assert(label.Status == stategraph.Open, "tarjan: AddTransition requires v1 Open, got %v", label.Status)
	e.pending[v1] = append(e.pending[v1], v2)
	e.edgeCount++
}

// MarkClosed declares v closed: sets v Unknown, runs updateLevels for
// every buffered out-edge, then the shared dead-propagation check.
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
		e.updateLevels(v, w)
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

// NotReachable is accepted but ignored: the Tarjan engine has no use
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

// delta returns the current δ=⌊√m⌋ truncation parameter.
func (e *Engine) delta() int {
	return int(math.Sqrt(float64(e.edgeCount)))
}

func (e *Engine) level(v stategraph.VertexID) int {
	label, _ := e.g.GetLabel(v)

	return label.Level
}

func (e *Engine) setLevel(v stategraph.VertexID, lvl int) {
	e.g.Mutate(v, func(cur *propagate.Label) { cur.Level = lvl })
}

// updateLevels runs the four-step BFGT level update for the newly
// installed edge v1->v2 (spec §4.6).
func (e *Engine) updateLevels(v1, v2 stategraph.VertexID) {
	// Step 1 — test order.
	if e.g.IsSameVertex(v1, v2) {
		return
	}
	l1, l2 := e.level(v1), e.level(v2)
	if l1 < l2 {
		return
	}

	// Step 2 — backward search from v1, truncated at delta, accepting
	// only vertices at level(v1).
	delta := e.delta()
	sameLevel := func(u stategraph.VertexID) bool { return e.level(u) == l1 }
	backward := digraph.Take(e.g.DFSBck(slices.Values([]stategraph.VertexID{v1}), sameLevel), delta)

	inB := make(map[stategraph.VertexID]bool)
	count := 0
	for u := range backward {
		inB[u] = true
		count++
	}
	foundCycle := inB[v2]
	truncated := delta > 0 && count >= delta

	// Step 3 — forward search and level lift.
	if truncated || l2 < l1 {
		newLevel := l1
		if truncated {
			newLevel = l1 + 1
		}
		e.setLevel(v2, newLevel)

		keep := func(w stategraph.VertexID) bool {
			return inB[w] || e.level(w) < newLevel
		}
		for w := range e.g.DFSFwd(slices.Values([]stategraph.VertexID{v2}), keep) {
			if inB[w] {
				foundCycle = true
			}
			e.setLevel(w, newLevel)
		}
	}

	// Step 4 — form component.
	if foundCycle {
		e.contractComponent(v1, v2)
	}
}

// contractComponent merges every vertex both forward-reachable from
// the canonical v2 and backward-reachable from the canonical v1 — the
// SCC the new edge just closed — into v1's class. The merged label's
// Level is the higher of the two constituents', which keeps invariant
// I4 (level monotonicity across edges) intact even when step 3 lifted
// v2's branch to a level v1 itself never reached.
func (e *Engine) contractComponent(v1, v2 stategraph.VertexID) {
	inForward := make(map[stategraph.VertexID]bool)
	for u := range e.g.DFSFwd(slices.Values([]stategraph.VertexID{v2}), always) {
		inForward[u] = true
	}

	var toMerge []stategraph.VertexID
	for u := range e.g.DFSBck(slices.Values([]stategraph.VertexID{v1}), always) {
		if inForward[u] {
			toMerge = append(toMerge, u)
		}
	}

	for _, u := range toMerge {
		if !e.g.IsSameVertex(u, v1) {
			e.g.MergeUsing(v1, u, mergeLabels)
		}
	}
}

func mergeLabels(l1, l2 propagate.Label) propagate.Label {
	lvl := l1.Level
	if l2.Level > lvl {
		lvl = l2.Level
	}

	return propagate.Label{Status: stategraph.Unknown, Level: lvl}
}

func always(stategraph.VertexID) bool { return true }
