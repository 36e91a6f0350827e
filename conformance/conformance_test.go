// Package conformance runs identical event traces against all four
// engines and checks that they agree on every vertex's status at every
// step (spec §8, P1/P2), plus the six named end-to-end scenarios
// (S1-S6) and a seeded randomized agreement sweep.
package conformance_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/jump"
	"github.com/katalvlaran/stategraph/naive"
	"github.com/katalvlaran/stategraph/simple"
	"github.com/katalvlaran/stategraph/tarjan"
)

// op is one step of an event trace. kind is one of "add", "close",
// "live", "notreach".
type op struct {
	kind   string
	v1, v2 stategraph.VertexID
}

func addTransition(v1, v2 stategraph.VertexID) op { return op{"add", v1, v2} }
func markClosed(v stategraph.VertexID) op         { return op{kind: "close", v1: v} }
func markLive(v stategraph.VertexID) op           { return op{kind: "live", v1: v} }
func notReachable(v1, v2 stategraph.VertexID) op  { return op{"notreach", v1, v2} }

func apply(e stategraph.Engine, o op) {
	switch o.kind {
	case "add":
		e.AddTransition(o.v1, o.v2)
	case "close":
		e.MarkClosed(o.v1)
	case "live":
		e.MarkLive(o.v1)
	case "notreach":
		e.NotReachable(o.v1, o.v2)
	}
}

func engines() map[string]stategraph.Engine {
	return map[string]stategraph.Engine{
		"naive":  naive.New(),
		"simple": simple.New(),
		"tarjan": tarjan.New(),
		"jump":   jump.New(),
	}
}

// runTrace applies every op to every engine, asserting P2 agreement on
// every vertex seen so far after each op, then asserts every engine's
// final status for each vertex in want.
func runTrace(t *testing.T, trace []op, want map[stategraph.VertexID]stategraph.Status) {
	t.Helper()

	es := engines()
	seen := make(map[stategraph.VertexID]bool)
	for _, o := range trace {
		seen[o.v1] = true
		if o.kind == "add" || o.kind == "notreach" {
			seen[o.v2] = true
		}
	}

	for _, o := range trace {
		for _, e := range es {
			apply(e, o)
		}

		for v := range seen {
			var first stategraph.Status
			var firstName string
			for name, e := range es {
				status, ok := e.GetStatus(v)
				if !ok {
					continue
				}
				if firstName == "" {
					first, firstName = status, name
					continue
				}
				assert.Equalf(t, first, status, "engines disagree on vertex %d: %s=%s vs %s=%s", v, firstName, first, name, status)
			}
		}
	}

	for v, expected := range want {
		for name, e := range es {
			status, ok := e.GetStatus(v)
			require.Truef(t, ok, "%s: vertex %d was never seen", name, v)
			assert.Equalf(t, expected, status, "%s: vertex %d", name, v)
		}
	}
}

func TestScenario_S1_SingleOpenState(t *testing.T) {
	runTrace(t, []op{markClosed(0)}, map[stategraph.VertexID]stategraph.Status{
		0: stategraph.Dead,
	})
}

func TestScenario_S2_LineOfThree(t *testing.T) {
	runTrace(t, []op{
		addTransition(0, 1),
		addTransition(1, 2),
		markClosed(2),
		markClosed(1),
		markClosed(0),
	}, map[stategraph.VertexID]stategraph.Status{
		0: stategraph.Dead,
		1: stategraph.Dead,
		2: stategraph.Dead,
	})
}

func TestScenario_S3_LiveSink(t *testing.T) {
	runTrace(t, []op{
		addTransition(0, 1),
		markClosed(0),
		markLive(1),
	}, map[stategraph.VertexID]stategraph.Status{
		0: stategraph.Live,
		1: stategraph.Live,
	})
}

func TestScenario_S4_SelfLoopClosing(t *testing.T) {
	runTrace(t, []op{
		addTransition(0, 0),
		markClosed(0),
	}, map[stategraph.VertexID]stategraph.Status{
		0: stategraph.Dead,
	})
}

func TestScenario_S5_CycleThenExternalExit(t *testing.T) {
	es := engines()
	trace := []op{
		addTransition(0, 1),
		addTransition(1, 0),
		addTransition(1, 2),
		markClosed(0),
		markClosed(1),
	}
	for _, o := range trace {
		for _, e := range es {
			apply(e, o)
		}
	}
	for name, e := range es {
		s0, _ := e.GetStatus(0)
		s1, _ := e.GetStatus(1)
		assert.Equalf(t, stategraph.Unknown, s0, "%s: vertex 0 mid-trace", name)
		assert.Equalf(t, stategraph.Unknown, s1, "%s: vertex 1 mid-trace", name)
	}

	for _, e := range es {
		e.MarkClosed(2)
	}
	for name, e := range es {
		s0, _ := e.GetStatus(0)
		s1, _ := e.GetStatus(1)
		s2, _ := e.GetStatus(2)
		assert.Equalf(t, stategraph.Dead, s0, "%s: vertex 0", name)
		assert.Equalf(t, stategraph.Dead, s1, "%s: vertex 1", name)
		assert.Equalf(t, stategraph.Dead, s2, "%s: vertex 2", name)
	}
}

func TestScenario_S6_NotReachableHintEventuallyViolated(t *testing.T) {
	runTrace(t, []op{
		notReachable(0, 2),
		addTransition(0, 1),
		addTransition(1, 2),
		markClosed(0),
		markClosed(1),
		markLive(2),
	}, map[stategraph.VertexID]stategraph.Status{
		0: stategraph.Live,
		1: stategraph.Live,
		2: stategraph.Live,
	})
}

// TestRandomTraces_Agreement is the P1/P2 cross-check: random traces
// over a small vertex universe, asserted to produce identical statuses
// across all four engines at every step. Traces are built so that
// add_transition's source is always still Open (the precondition
// Simple and Tarjan enforce).
func TestRandomTraces_Agreement(t *testing.T) {
	const vertexCount = 8
	const traceLength = 40
	const iterations = 25

	for iter := 0; iter < iterations; iter++ {
		rng := rand.New(rand.NewSource(int64(iter)))
		open := make(map[stategraph.VertexID]bool)
		for v := 0; v < vertexCount; v++ {
			open[v] = true
		}

		var trace []op
		for len(trace) < traceLength {
			var openList []stategraph.VertexID
			for v, isOpen := range open {
				if isOpen {
					openList = append(openList, v)
				}
			}
			if len(openList) == 0 {
				break
			}

			switch rng.Intn(3) {
			case 0:
				v1 := openList[rng.Intn(len(openList))]
				v2 := stategraph.VertexID(rng.Intn(vertexCount))
				trace = append(trace, addTransition(v1, v2))
			case 1:
				v := openList[rng.Intn(len(openList))]
				trace = append(trace, markClosed(v))
				open[v] = false
			case 2:
				v := stategraph.VertexID(rng.Intn(vertexCount))
				trace = append(trace, markLive(v))
				open[v] = false // a Live vertex is no longer Open
			}
		}
		for v := range open {
			if open[v] {
				trace = append(trace, markClosed(v))
			}
		}

		t.Run("", func(t *testing.T) {
			runTrace(t, trace, nil)
		})
	}
}
