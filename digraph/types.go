package digraph

import "container/list"

// Counter is a debug-only accumulator for the arena's space/time
// statistics (spec §6: "two process-global-behaving counters... only
// meaningful in debug builds; release builds should return zero").
// Instrumentation is a per-arena runtime flag (see WithInstrumentation)
// rather than a Rust-style cfg!(debug_assertions) build split, since
// that keeps the counters exercisable from ordinary tests.
type Counter struct {
	n       uint64
	enabled bool
}

func (c *Counter) inc() {
	if c.enabled {
		c.n++
	}
}

// Get returns the accumulated count, or 0 if instrumentation is off.
func (c *Counter) Get() uint64 {
	if !c.enabled {
		return 0
	}

	return c.n
}

// Option configures an Arena at construction time.
type Option func(*arenaConfig)

type arenaConfig struct {
	instrumented bool
}

// WithInstrumentation turns on the Space/Time debug counters. Off by
// default, matching the teacher's opt-in GraphOption style
// (core.WithWeighted, core.WithLoops, ...).
func WithInstrumentation() Option {
	return func(c *arenaConfig) { c.instrumented = true }
}

// Arena is the mutable labeled digraph described in spec §4.1. V is the
// caller's opaque vertex-name type; T is the engine-specific per-vertex
// label. T must supply its own equality via the equal function passed to
// NewArena — Merge (but not MergeUsing) requires equal(label(v1),
// label(v2)) per invariant I6.
type Arena[V comparable, T any] struct {
	uf unionFind

	vertexIDs  map[V]int // vertex name -> unique id
	idVertices []V       // unique id -> vertex name

	labels map[int]T         // canonical id -> label
	fwd    map[int]*list.List // canonical id -> list of unique-id targets
	bck    map[int]*list.List // canonical id -> list of unique-id sources

	defaultLabel T
	equal        func(a, b T) bool

	Space Counter
	Time  Counter
}

// NewArena constructs an empty Arena. defaultLabel is what EnsureVertex
// installs for a newly-seen vertex; equal decides label equality for
// Merge's precondition (invariant I6) — pass nil if the engine only
// ever calls MergeUsing (the Jump engine's Node type has no natural
// equality; see jump.MergeNodes).
func NewArena[V comparable, T any](defaultLabel T, equal func(a, b T) bool, opts ...Option) *Arena[V, T] {
	cfg := arenaConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Arena[V, T]{
		vertexIDs:    make(map[V]int),
		labels:       make(map[int]T),
		fwd:          make(map[int]*list.List),
		bck:          make(map[int]*list.List),
		defaultLabel: defaultLabel,
		equal:        equal,
	}
	a.Space.enabled = cfg.instrumented
	a.Time.enabled = cfg.instrumented

	return a
}
