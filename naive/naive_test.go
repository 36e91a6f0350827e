package naive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stategraph"
	"github.com/katalvlaran/stategraph/naive"
)

func TestNaive_UnseenVertexNotOK(t *testing.T) {
	e := naive.New()
	_, ok := e.GetStatus(42)
	assert.False(t, ok)
}

func TestNaive_RecomputesAfterEachClosure(t *testing.T) {
	e := naive.New()
	e.AddTransition(0, 1)
	e.MarkClosed(1)

	status, ok := e.GetStatus(1)
	require.True(t, ok)
	assert.Equal(t, stategraph.Dead, status)

	status, _ = e.GetStatus(0)
	assert.Equal(t, stategraph.Open, status)
}

func TestNaive_LiveAbsorbsAndPropagatesBackward(t *testing.T) {
	e := naive.New()
	e.AddTransition(0, 1)
	e.AddTransition(1, 2)
	e.MarkClosed(2)
	e.MarkClosed(1)
	e.MarkLive(2)

	for _, v := range []stategraph.VertexID{1, 2} {
		status, ok := e.GetStatus(v)
		require.True(t, ok)
		assert.Equal(t, stategraph.Live, status)
	}
}

func TestNaive_SelfLoopAloneIsDead(t *testing.T) {
	e := naive.New()
	e.AddTransition(0, 0)
	e.MarkClosed(0)

	status, _ := e.GetStatus(0)
	assert.Equal(t, stategraph.Dead, status)
}
