package jump

import (
	"slices"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/digraph"
)

// Engine is the Jump incremental state-graph implementation. It
// satisfies stategraph.Engine.
type Engine struct {
	g *digraph.Arena[stategraph.VertexID, Node]
}

// New constructs an empty Engine. Pass digraph.WithInstrumentation() to
// enable the GetSpace/GetTime debug counters. Merge is never called on
// this arena (only MergeUsing, via MergeNodes), so no label-equality
// function is needed.
func New(opts ...digraph.Option) *Engine {
	return &Engine{
		g: digraph.NewArena[stategraph.VertexID](Node{Status: stategraph.Open}, nil, opts...),
	}
}

// AddTransition records the back-edge v2<-v1 eagerly, propagates any
// liveness v2 being reachable newly exposes, and — unless v1 is already
// Live — appends v2 to v1's reserve for initializeJumps to drain once
// v1 closes.
func (e *Engine) AddTransition(v1, v2 stategraph.VertexID) {
	e.g.EnsureEdgeBck(v1, v2)
	if e.isLive(v2) {
		e.calculateNewLiveStates(v2)
	}

	label, _ := e.g.GetLabel(v1)
	if label.Status != stategraph.Live {
		e.g.Mutate(v1, func(n *Node) { n.Reserve = append(n.Reserve, v2) })
	}
}

// MarkClosed ensures v exists and drains its reserve (spec §4.7).
func (e *Engine) MarkClosed(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	if e.isLive(v) {
		return // Live is absorbing (I5)
	}
	e.initializeJumps(v)
}

// MarkLive declares v live and propagates Live backward across every
// not-yet-live predecessor, clearing jumps and reserve as it goes.
func (e *Engine) MarkLive(v stategraph.VertexID) {
	e.g.EnsureVertex(v)
	e.g.Mutate(v, func(n *Node) {
		n.Status = stategraph.Live
		n.Jumps = nil
		n.Reserve = nil
	})
	e.calculateNewLiveStates(v)
}

// NotReachable records a hint that v2 is not reachable from v1.
func (e *Engine) NotReachable(v1, v2 stategraph.VertexID) {
	e.g.EnsureVertex(v1)
	e.g.Mutate(v1, func(n *Node) {
		if n.NotReachable == nil {
			n.NotReachable = make(map[stategraph.VertexID]bool)
		}
		n.NotReachable[v2] = true
	})
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

// calculateNewLiveStates does a backward DFS from v across any
// non-Live predecessor, setting every reached vertex Live — the same
// backward-closure idea every engine uses for mark_live, specialized
// here to also clear jumps/reserve on each newly-live vertex. Callers
// must ensure v is already Live before calling this — it never checks
// v's own status, since DFSBck always visits its source regardless of
// the keep predicate.
func (e *Engine) calculateNewLiveStates(v stategraph.VertexID) {
	for u := range e.g.DFSBck(slices.Values([]stategraph.VertexID{v}), e.notLive) {
		e.g.Mutate(u, func(n *Node) {
			n.Status = stategraph.Live
			n.Jumps = nil
			n.Reserve = nil
		})
	}
}

func (e *Engine) notLive(w stategraph.VertexID) bool {
	label, _ := e.g.GetLabel(w)

	return label.Status != stategraph.Live
}

func (e *Engine) isLive(v stategraph.VertexID) bool {
	label, _ := e.g.GetLabel(v)

	return label.Status == stategraph.Live
}

// initializeJumps drains v's reserve (spec §4.7): dead candidates are
// skipped, a candidate that loops back to v is contracted via
// mergePathFrom and draining continues, the first candidate that is
// neither gets installed as v's initial jump, and an exhausted reserve
// kills v and recursively re-initializes its orphaned predecessors.
func (e *Engine) initializeJumps(v stategraph.VertexID) {
	for {
		label, _ := e.g.GetLabel(v)
		if len(label.Reserve) == 0 {
			e.killVertex(v)
			return
		}
		w := label.Reserve[0]
		e.g.Mutate(v, func(n *Node) { n.Reserve = n.Reserve[1:] })

		wLabel, _ := e.g.GetLabel(w)
		if wLabel.Status == stategraph.Dead {
			continue
		}
		if e.isRoot(w, v) {
			e.mergePathFrom(w)
			continue
		}

		e.g.Mutate(v, func(n *Node) {
			n.Status = stategraph.Unknown
			n.Jumps = []stategraph.VertexID{w}
		})
		e.g.EnsureEdgeFwd(v, w)

		return
	}
}

// killVertex marks v Dead and recursively re-initializes every
// predecessor whose confirmed first jump was v — their witness just
// died, so they must go back to Open and re-drain their reserve. All
// affected predecessors are flipped to Open first, then re-initialized,
// so the recursive calls never observe a partially-updated sibling.
func (e *Engine) killVertex(v stategraph.VertexID) {
	e.g.Mutate(v, func(n *Node) {
		n.Status = stategraph.Dead
		n.Jumps = nil
		n.Reserve = nil
	})

	var orphans []stategraph.VertexID
	for u := range e.g.IterBckEdges(v) {
		label, _ := e.g.GetLabel(u)
		if label.Status == stategraph.Unknown && len(label.Jumps) > 0 && e.g.IsSameVertex(label.Jumps[0], v) {
			orphans = append(orphans, u)
		}
	}

	for _, u := range orphans {
		e.g.Mutate(u, func(n *Node) {
			n.Status = stategraph.Open
			n.Jumps = nil
		})
	}
	for _, u := range orphans {
		e.initializeJumps(u)
	}
}

// mergePathFrom collects the chain start, first_jump(start),
// first_jump(first_jump(start)), ... for as long as each vertex is
// Unknown, then merges the whole chain, together with the vertex that
// ends it (the Open root the cycle runs back to), into one class via
// MergeNodes (spec §4.7). An empty chain (start itself is not Unknown)
// merges nothing.
func (e *Engine) mergePathFrom(start stategraph.VertexID) {
	var chain []stategraph.VertexID
	cur := start
	for {
		label, _ := e.g.GetLabel(cur)
		if label.Status != stategraph.Unknown {
			break
		}
		chain = append(chain, cur)
		if len(label.Jumps) == 0 {
			break
		}
		next := label.Jumps[0]
		if e.g.IsSameVertex(next, cur) {
			break
		}
		cur = next
	}

	for _, u := range chain {
		if !e.g.IsSameVertex(cur, u) {
			e.g.MergeUsing(cur, u, MergeNodes)
		}
	}
}

// isRoot reports whether v's unvisited root is end (spec §4.7). end
// must be Open. Implemented iteratively with an explicit stack rather
// than the source algorithm's recursion, since recursion depth would
// equal path length (spec §9, Open Question).
func (e *Engine) isRoot(v, end stategraph.VertexID) bool {
	type frame struct{ v, w stategraph.VertexID }

	var stack []frame
	cur := v
	var result bool

	for {
		label, _ := e.g.GetLabel(cur)
		if label.Status == stategraph.Open {
			result = e.g.IsSameVertex(cur, end)
			break
		}
		if label.NotReachable[end] {
			result = false
			break
		}

		jumps := e.stripDeadJumps(cur)
		if len(jumps) == 0 {
			// Invariant I7 says this shouldn't happen for a closed,
			// non-dead, non-live vertex; treat it as "no root found"
			// rather than panicking on a transient inconsistency.
			result = false
			break
		}

		w := jumps[len(jumps)-1]
		stack = append(stack, frame{v: cur, w: w})
		cur = w
	}

	for i := len(stack) - 1; i >= 0; i-- {
		fr := stack[i]
		vLabel, _ := e.g.GetLabel(fr.v)
		wLabel, _ := e.g.GetLabel(fr.w)
		if len(vLabel.Jumps) <= len(wLabel.Jumps) {
			idx := len(vLabel.Jumps) - 1
			if idx >= 0 && idx < len(wLabel.Jumps) {
				target := wLabel.Jumps[idx]
				e.g.Mutate(fr.v, func(n *Node) { n.Jumps = append(n.Jumps, target) })
			}
		}
	}

	return result
}

// stripDeadJumps removes trailing Dead entries from v's jump list in
// place and returns the resulting list (spec §9: "dead jumps are not
// eagerly garbage-collected" — they're trimmed lazily, here).
func (e *Engine) stripDeadJumps(v stategraph.VertexID) []stategraph.VertexID {
	var result []stategraph.VertexID
	e.g.Mutate(v, func(n *Node) {
		for len(n.Jumps) > 0 {
			last := n.Jumps[len(n.Jumps)-1]
			lastLabel, _ := e.g.GetLabel(last)
			if lastLabel.Status != stategraph.Dead {
				break
			}
			n.Jumps = n.Jumps[:len(n.Jumps)-1]
		}
		result = n.Jumps
	})

	return result
}
