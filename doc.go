// Package stategraph maintains an online state graph under a stream of
// transition, closure, and liveness events, and answers a running
// reachability verdict — Open, Unknown, Dead, or Live — for every state
// as it is discovered.
//
// It targets symbolic-execution and regex-exploration-style search: a
// caller discovers states one at a time, declares a state closed once
// its out-edges are fully enumerated, and needs to know as early as
// possible which states can no longer reach anything still under
// construction (Dead) versus those that matter regardless (Live).
//
// Four engines implement the same Engine contract at different points
// on the recompute/maintain tradeoff:
//
//	naive/  — recomputes the dead set from scratch on every closure
//	simple/ — contracts cycles eagerly, propagates deadness topologically
//	tarjan/ — Bender-Fineman-Gilbert-Tarjan pseudo-topological levels
//	jump/   — doubling jump pointers with bounded not-reachable hints
//
// All four are built on the shared digraph arena in digraph/, which
// provides O(1)-amortized vertex merging via union-find and the
// traversal primitives the engines share (forward/backward DFS,
// topological-filter backward search).
//
//	go get github.com/katalvlaran/stategraph
package stategraph
