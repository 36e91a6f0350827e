package digraph

import (
	"container/list"
	"iter"
)

// IterVertices yields each canonical vertex exactly once — for merged
// classes, only the surviving representative appears.
// Complexity: O(V).
func (a *Arena[V, T]) IterVertices() iter.Seq[V] {
	return func(yield func(V) bool) {
		for canon := range a.labels {
			a.Time.inc()
			if !yield(a.idVertices[canon]) {
				return
			}
		}
	}
}

// IterVerticesAll yields every declared vertex name, including names
// that have since been merged into another class. Complexity: O(V).
func (a *Arena[V, T]) IterVerticesAll() iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range a.vertexIDs {
			if !yield(v) {
				return
			}
		}
	}
}

// IterFwdEdges yields the canonical target of each forward edge stored
// at v, dropping any that canonicalize to v itself (self-loops produced
// by a later merge — invariant I2). Duplicates are not deduplicated.
// Panics if v has not been seen. Complexity: O(out-degree).
func (a *Arena[V, T]) IterFwdEdges(v V) iter.Seq[V] {
	return a.iterEdges(v, a.fwdList(a.canonOf(v)))
}

// IterBckEdges is the backward counterpart of IterFwdEdges: it yields
// the canonical source of each backward edge stored at v.
func (a *Arena[V, T]) IterBckEdges(v V) iter.Seq[V] {
	return a.iterEdges(v, a.bckList(a.canonOf(v)))
}

func (a *Arena[V, T]) iterEdges(v V, l *list.List) iter.Seq[V] {
	own := a.canonOf(v)

	return func(yield func(V) bool) {
		for e := l.Front(); e != nil; e = e.Next() {
			a.Time.inc()
			canon := a.uf.find(e.Value.(int))
			if canon == own {
				continue // self-loop introduced by a later merge (I2)
			}
			if !yield(a.idVertices[canon]) {
				return
			}
		}
	}
}

// DFSFwd is a depth-first traversal over forward edges, starting from
// every vertex in sources (always visited, regardless of keep) and
// continuing through a successor only if keep(successor) holds. Each
// canonical vertex is yielded at most once. Complexity: O(V+E) worst
// case, bounded by however much of the graph the caller actually
// consumes from the returned sequence.
func (a *Arena[V, T]) DFSFwd(sources iter.Seq[V], keep func(V) bool) iter.Seq[V] {
	return a.dfs(sources, keep, (*Arena[V, T]).IterFwdEdges)
}

// DFSBck is the backward counterpart of DFSFwd, walking predecessor
// edges instead of successor edges.
func (a *Arena[V, T]) DFSBck(sources iter.Seq[V], keep func(V) bool) iter.Seq[V] {
	return a.dfs(sources, keep, (*Arena[V, T]).IterBckEdges)
}

func (a *Arena[V, T]) dfs(sources iter.Seq[V], keep func(V) bool, neighbors func(*Arena[V, T], V) iter.Seq[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		visited := make(map[int]bool)
		var stack []V
		sources(func(v V) bool {
			stack = append(stack, v)
			return true
		})

		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			canon := a.canonOf(v)
			if visited[canon] {
				continue
			}
			visited[canon] = true
			if !yield(v) {
				return
			}

			for w := range neighbors(a, v) {
				if visited[a.canonOf(w)] {
					continue
				}
				if keep(w) {
					stack = append(stack, w)
				}
			}
		}
	}
}

// TopoSearchBck performs a backward search gated by closedPred (exactly
// like DFSBck(sources, closedPred)) to find the candidate set of
// vertices that reach a source through closed predecessors only, then
// yields each eligible candidate in forward-topological order: u is
// yielded only once every forward-reachable vertex it depends on has
// either been yielded already or excluded by failing keep or
// closedPred. A candidate with a forward edge into a vertex that fails
// closedPred (i.e. is still open or live) is never yielded, and that
// exclusion propagates to anything waiting on it.
//
// Used to propagate dead status in topological order (see
// internal/propagate.CheckDead), shared by the Simple and Tarjan
// engines.
func (a *Arena[V, T]) TopoSearchBck(sources iter.Seq[V], closedPred, keep func(V) bool) iter.Seq[V] {
	return func(yield func(V) bool) {
		var candidates []V
		for v := range a.DFSBck(sources, closedPred) {
			candidates = append(candidates, v)
		}

		memo := make(map[int]bool)
		visiting := make(map[int]bool)
		aborted := false

		var visit func(u V) bool
		visit = func(u V) bool {
			canon := a.canonOf(u)
			if res, done := memo[canon]; done {
				return res
			}
			if visiting[canon] {
				// A true cycle here would violate the acyclicity the
				// Simple/Tarjan canonical graph maintains at quiescence;
				// treat it as unresolved rather than loop forever.
				return false
			}
			visiting[canon] = true

			eligible := true
			for w := range a.IterFwdEdges(u) {
				if aborted {
					break
				}
				if !keep(w) {
					continue // already settled (e.g. dead); doesn't block u
				}
				if !closedPred(w) {
					eligible = false // w is still open or live
					break
				}
				if !visit(w) {
					eligible = false
					break
				}
			}

			delete(visiting, canon)
			memo[canon] = eligible
			if eligible && !aborted {
				if !yield(u) {
					aborted = true
				}
			}

			return eligible
		}

		for _, u := range candidates {
			if aborted {
				return
			}
			visit(u)
		}
	}
}

// Take returns a sequence that stops after at most n elements of seq —
// the Go equivalent of Rust's Iterator::take, used by the Tarjan engine
// to truncate its backward search at the delta threshold.
func Take[V any](seq iter.Seq[V], n int) iter.Seq[V] {
	return func(yield func(V) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
