package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph(t *testing.T) *Graph {
	t.Helper()
	// 0 --3-- 1 --4-- 2 --2-- 3 (a simple chain, velocity 1)
	g, err := NewGraph([]int{0, 1, 2, 3}, []Edge{
		{From: 0, To: 1, Weight: 3}, {From: 1, To: 0, Weight: 3},
		{From: 1, To: 2, Weight: 4}, {From: 2, To: 1, Weight: 4},
		{From: 2, To: 3, Weight: 2}, {From: 3, To: 2, Weight: 2},
	}, 1)
	require.NoError(t, err)
	return g
}

func TestGraph_InterpTime_SingleHop(t *testing.T) {
	g := chainGraph(t)

	// Full remaining time: still at the origin node, about to start the
	// first hop.
	loc, jump := g.InterpTime(0, 1, g.T(0, 1))
	assert.Equal(t, 1, loc)
	assert.InDelta(t, 3.0, jump, 1e-9)

	// No time left: already at the destination.
	loc, jump = g.InterpTime(0, 1, 0)
	assert.Equal(t, 1, loc)
	assert.InDelta(t, 0.0, jump, 1e-9)
}

func TestGraph_InterpTime_MultiHopSnapsPastIntermediateNodes(t *testing.T) {
	g := chainGraph(t)

	// total T(0,3) = 3+4+2 = 9. With 5 time units left to reach 3, 4 units
	// have elapsed: 3 to clear node 1, 1 more into the 1->2 edge (4 long),
	// leaving 3 more to reach node 2.
	loc, jump := g.InterpTime(0, 3, 5)
	assert.Equal(t, 2, loc)
	assert.InDelta(t, 3.0, jump, 1e-9)

	// with 2 time units left, we're exactly at node 2 (T(2,3) == 2), so no
	// jump time remains.
	loc, jump = g.InterpTime(0, 3, 2)
	assert.Equal(t, 2, loc)
	assert.InDelta(t, 0.0, jump, 1e-9)
}

func TestGraph_InterpTime_SameLocation(t *testing.T) {
	g := chainGraph(t)
	loc, jump := g.InterpTime(2, 2, 0)
	assert.Equal(t, 2, loc)
	assert.Equal(t, 0.0, jump)
}
