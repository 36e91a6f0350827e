// Package jump implements the jump-pointer incremental state-graph
// engine (spec §4.7): each closed, non-dead vertex keeps a doubling
// jump list built lazily during is_root queries, amortizing reachability
// checks instead of Simple's eager cycle scan or Tarjan's level
// bookkeeping.
package jump

import "github.com/katalvlaran/stategraph"

// NotReachableMax bounds the amount of work MergeNodes spends unioning
// two not_reachable hint sets: the smaller set contributes at most this
// many entries, the rest are discarded (spec §4.7, §9 "Bounded
// not-reachable merge"). A tunable constant, not a correctness
// requirement — the hints are advisory and losing some never produces
// a wrong answer, only a slower one.
const NotReachableMax = 10

// Node is the Jump engine's per-vertex label (spec §4.7).
type Node struct {
	Status stategraph.Status

	// Jumps is the doubling jump list: Jumps[0] is a concrete out-edge
	// target, each later entry approximately 2^i edges further ahead.
	// Nonempty iff Status == Unknown (invariant I7).
	Jumps []stategraph.VertexID

	// Reserve is the FIFO of as-yet-unwalked forward-edge targets,
	// drained by initializeJumps during closure.
	Reserve []stategraph.VertexID

	// NotReachable is a bounded set of negative-reachability hints,
	// keyed by the caller's original vertex names (not canonicalized —
	// see MergeNodes).
	NotReachable map[stategraph.VertexID]bool
}

// MergeNodes combines two Jump nodes being contracted into one
// equivalence class (spec §4.7 merge_path_from / §9). The result is
// always Open — load-bearing for initializeJumps, which relies on a
// freshly-merged vertex looking unvisited again. The reserve queues are
// concatenated in order; the not_reachable sets are unioned, with the
// smaller one capped at NotReachableMax contributed entries.
func MergeNodes(a, b Node) Node {
	reserve := make([]stategraph.VertexID, 0, len(a.Reserve)+len(b.Reserve))
	reserve = append(reserve, a.Reserve...)
	reserve = append(reserve, b.Reserve...)

	small, big := a.NotReachable, b.NotReachable
	if len(small) > len(big) {
		small, big = big, small
	}
	merged := make(map[stategraph.VertexID]bool, len(big))
	for k := range big {
		merged[k] = true
	}
	taken := 0
	for k := range small {
		if taken >= NotReachableMax {
			break
		}
		if !merged[k] {
			merged[k] = true
			taken++
		}
	}
	if len(merged) == 0 {
		merged = nil
	}

	return Node{
		Status:       stategraph.Open,
		Reserve:      reserve,
		NotReachable: merged,
	}
}
