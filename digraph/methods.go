package digraph

import (
	"container/list"

	"github.com/katalvlaran/stategraph/internal/invariant"
)

// IsSeen reports whether v has ever been referenced.
// Complexity: O(1).
func (a *Arena[V, T]) IsSeen(v V) bool {
	a.Time.inc()
	_, ok := a.vertexIDs[v]

	return ok
}

// EnsureVertex idempotently creates v with the default label if it has
// not been seen before. Complexity: O(1) amortized.
func (a *Arena[V, T]) EnsureVertex(v V) {
	if !a.IsSeen(v) {
		a.addVertex(v, a.defaultLabel)
	}
}

// OverwriteVertex sets v's label, creating v first if it has not been
// seen. Complexity: O(1) amortized.
func (a *Arena[V, T]) OverwriteVertex(v V, label T) {
	if a.IsSeen(v) {
		canon := a.canonOf(v)
		a.labels[canon] = label
		a.Time.inc()
	} else {
		a.addVertex(v, label)
	}
}

// GetLabel returns the label of v's canonical vertex, or the zero value
// and ok=false if v has not been seen. Complexity: O(1).
func (a *Arena[V, T]) GetLabel(v V) (label T, ok bool) {
	a.Time.inc()
	id, seen := a.vertexIDs[v]
	if !seen {
		return label, false
	}
	label, ok = a.labels[a.uf.find(id)]

	return label, ok
}

// GetLabelOrDefault returns v's label, or the arena's default label if v
// has not been seen. This is the Go equivalent of get_label_or_default.
func (a *Arena[V, T]) GetLabelOrDefault(v V) T {
	if label, ok := a.GetLabel(v); ok {
		return label
	}

	return a.defaultLabel
}

// Mutate applies fn in place to v's label — the Go stand-in for
// get_label_mut, since map-stored values cannot be addressed directly.
// Panics if v has not been seen.
func (a *Arena[V, T]) Mutate(v V, fn func(cur *T)) {
	invariant.Assert(a.IsSeen(v), "digraph: Mutate on unseen vertex %v", v)
	canon := a.canonOf(v)
	label := a.labels[canon]
	fn(&label)
	a.labels[canon] = label
	a.Time.inc()
}

// IsSameVertex reports whether x and y currently canonicalize to the
// same class. Complexity: O(1).
func (a *Arena[V, T]) IsSameVertex(x, y V) bool {
	return a.canonOf(x) == a.canonOf(y)
}

// GetCanonVertex returns a deterministic representative name for v's
// equivalence class: the name that was originally assigned the
// canonical unique id. Panics if v has not been seen.
func (a *Arena[V, T]) GetCanonVertex(v V) V {
	invariant.Assert(a.IsSeen(v), "digraph: GetCanonVertex on unseen vertex %v", v)

	return a.idVertices[a.uf.find(a.vertexIDs[v])]
}

// EnsureEdge idempotently records a forward edge v1->v2 and its mirror
// backward entry. Both endpoints are created first if unseen. Duplicate
// edges are intentional (spec §4.1); no dedup is performed.
// Complexity: O(1) amortized.
func (a *Arena[V, T]) EnsureEdge(v1, v2 V) {
	a.EnsureVertex(v1)
	a.EnsureVertex(v2)
	a.addEdgeCore(v1, v2)
}

// EnsureEdgeFwd records only the forward half of the v1->v2 edge
// (used by the Jump engine once a reserve edge is installed as a
// vertex's first jump).
// Complexity: O(1) amortized.
func (a *Arena[V, T]) EnsureEdgeFwd(v1, v2 V) {
	a.EnsureVertex(v1)
	a.EnsureVertex(v2)
	c1, c2 := a.canonOf(v1), a.canonOf(v2)
	if c1 == c2 {
		a.Time.inc()
		return
	}
	a.fwdList(c1).PushBack(a.vertexIDs[v2])
	a.Space.inc()
	a.Time.inc()
}

// EnsureEdgeBck records only the backward half of the v1->v2 edge
// (used by the Jump engine's add_transition, before the edge is known
// to be a real forward edge). Complexity: O(1) amortized.
func (a *Arena[V, T]) EnsureEdgeBck(v1, v2 V) {
	a.EnsureVertex(v1)
	a.EnsureVertex(v2)
	c1, c2 := a.canonOf(v1), a.canonOf(v2)
	if c1 == c2 {
		a.Time.inc()
		return
	}
	a.bckList(c2).PushBack(a.vertexIDs[v1])
	a.Space.inc()
	a.Time.inc()
}

// Merge unions v1 and v2's classes. Both must already be seen and carry
// equal labels (per the equal function passed to NewArena), or Merge
// panics — this is a programmer-contract violation (spec §7), not a
// recoverable condition. Idempotent once v1 and v2 are already the same
// class. The survivor inherits both adjacency lists by O(1) splice.
func (a *Arena[V, T]) Merge(v1, v2 V) {
	invariant.Assert(a.IsSeen(v1), "digraph: Merge on unseen vertex %v", v1)
	invariant.Assert(a.IsSeen(v2), "digraph: Merge on unseen vertex %v", v2)
	l1, _ := a.GetLabel(v1)
	l2, _ := a.GetLabel(v2)
	invariant.Assert(a.equal != nil && a.equal(l1, l2), "digraph: Merge requires equal labels for %v, %v", v1, v2)
	a.mergeClasses(v1, v2, l1)
}

// MergeUsing unions v1 and v2's classes like Merge, but combines their
// labels with f(label(v1), label(v2)) instead of requiring them to be
// equal. The caller is responsible for f's correctness (spec §4.1); used
// by the Jump engine's cycle contraction (see jump.MergeNodes).
func (a *Arena[V, T]) MergeUsing(v1, v2 V, f func(l1, l2 T) T) {
	invariant.Assert(a.IsSeen(v1), "digraph: MergeUsing on unseen vertex %v", v1)
	invariant.Assert(a.IsSeen(v2), "digraph: MergeUsing on unseen vertex %v", v2)
	l1, _ := a.GetLabel(v1)
	l2, _ := a.GetLabel(v2)
	a.mergeClasses(v1, v2, f(l1, l2))
}

// mergeClasses does the actual union-find union plus O(1) adjacency
// splice, installing combined as the survivor's new label. No-op if v1
// and v2 are already the same class (merge idempotence, property P6).
func (a *Arena[V, T]) mergeClasses(v1, v2 V, combined T) {
	a.Time.inc()
	c1, c2 := a.canonOf(v1), a.canonOf(v2)
	if c1 == c2 {
		a.labels[c1] = combined

		return
	}

	newRoot := a.uf.union(c1, c2)
	old := c1
	if newRoot == c1 {
		old = c2
	}

	delete(a.labels, old)
	a.labels[newRoot] = combined

	// O(1) splice: append the retired class's adjacency onto the
	// survivor's, per spec's "intrusive linked lists" guidance.
	a.fwdList(newRoot).PushBackList(a.fwdList(old))
	a.bckList(newRoot).PushBackList(a.bckList(old))
	delete(a.fwd, old)
	delete(a.bck, old)
}

// addVertex installs a brand-new vertex name with the given label.
func (a *Arena[V, T]) addVertex(v V, label T) {
	id := a.uf.alloc()
	a.vertexIDs[v] = id
	a.idVertices = append(a.idVertices, v)
	a.labels[id] = label
	a.fwd[id] = newList()
	a.bck[id] = newList()
	a.Space.inc()
	a.Time.inc()
}

// addEdgeCore records both adjacency halves of v1->v2, skipping
// self-loops produced by a prior merge (invariant I2 is enforced at
// iteration time, but we also avoid storing edges that are already
// self-loops post-canonicalization to keep list sizes meaningful).
func (a *Arena[V, T]) addEdgeCore(v1, v2 V) {
	c1, c2 := a.canonOf(v1), a.canonOf(v2)
	if c1 != c2 {
		a.fwdList(c1).PushBack(a.vertexIDs[v2])
		a.bckList(c2).PushBack(a.vertexIDs[v1])
		a.Space.inc()
	}
	a.Time.inc()
}

func (a *Arena[V, T]) canonOf(v V) int {
	id, ok := a.vertexIDs[v]
	invariant.Assert(ok, "digraph: vertex %v not seen", v)

	return a.uf.find(id)
}

func (a *Arena[V, T]) fwdList(canon int) *list.List {
	return a.fwd[canon]
}

func (a *Arena[V, T]) bckList(canon int) *list.List {
	return a.bck[canon]
}

func newList() *list.List {
	return list.New()
}
