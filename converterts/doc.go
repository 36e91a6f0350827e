// Package converters provides a one-way, read-only adapter from a
// digraph.Arena to gonum.org/v1/gonum/graph: Export builds a
// *simple.DirectedGraph snapshot of an arena's canonical vertices and
// forward edges, so callers can run gonum's own traversal and path
// algorithms (topological sort, dominator trees) as an external
// cross-check against an engine's internal bookkeeping.
//
// Of the four adapter targets the teacher's original version of this
// package named (dominikbraun/graph, gonum/graph, hmdsefi/gograph,
// yourbasic/graph), only gonum/graph is wired here: it is the one
// target with independent grounding elsewhere in the reference corpus
// (a Lengauer-Tarjan dominator-tree implementation over
// gonum.org/v1/gonum/graph), and the arena's read-only snapshot export
// has no second distinct consumer that would justify also wiring the
// other three as redundant exports of the same data.
package converters
