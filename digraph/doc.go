// Package digraph is the shared directed-graph substrate for the four
// incremental state-graph engines in github.com/katalvlaran/stategraph.
//
// It is a mutable, labeled digraph keyed by opaque caller-supplied vertex
// names, with O(1)-amortized vertex merging via union-find. Two vertex
// names become aliases of each other once merged: edges and labels are
// always addressed through the merged class's canonical representative,
// while the caller keeps referring to either original name.
//
// Forward and backward adjacency are both maintained (as container/list
// lists, so merging two classes is an O(1) list splice rather than a
// copy), which is what lets check_dead, the Tarjan backward search, and
// the Jump engine's predecessor re-initialization all run without a
// full graph scan.
//
// Mutation of a vertex that has never been referenced is a programmer
// error and panics (see internal/invariant); queries against such a
// vertex return the zero value and ok=false, never an error.
package digraph
