package stategraph

// VertexID is the opaque vertex-name type every engine operates over
// (spec §6: "vertex names are opaque non-negative integers"). The
// digraph arena itself is generic over vertex name; the four engines
// fix it to VertexID since nothing in this module needs more generality
// than that.
type VertexID = int

// Engine is the uniform mutation-and-query contract implemented by all
// four incremental state-graph algorithms (spec §4.2). Every engine
// must produce identical status outputs for any input trace of these
// operations, modulo GetSpace/GetTime telemetry — that agreement is the
// primary cross-check exercised by the conformance tests.
type Engine interface {
	// AddTransition records an edge v1->v2. The precondition on v1's
	// status varies by engine: Naive has none; Simple and Tarjan
	// require v1 to be Open; Jump accepts v1 Open or not-yet-seen.
	// Violating the precondition panics (spec §7: programmer-contract
	// violation).
	AddTransition(v1, v2 VertexID)

	// MarkClosed declares v closed: its out-edges are fully enumerated.
	// Afterward GetStatus(v) is Unknown, Dead, or Live, and the dead
	// set is up to date through v.
	MarkClosed(v VertexID)

	// MarkLive declares v live. The transitive backward closure of v
	// (every vertex that can reach v) also becomes Live.
	MarkLive(v VertexID)

	// NotReachable records a hint that v2 is not reachable from v1.
	// Every engine accepts this; only Jump uses it, as a query
	// shortcut. It never affects correctness (spec §7): a hint later
	// contradicted by an actual path is not an error.
	NotReachable(v1, v2 VertexID)

	// GetStatus returns v's current status, or ok=false if v has never
	// been referenced.
	GetStatus(v VertexID) (status Status, ok bool)

	// GetSpace and GetTime report the underlying arena's debug
	// counters. Both return 0 unless the engine was constructed with
	// digraph.WithInstrumentation.
	GetSpace() uint64
	GetTime() uint64
}
