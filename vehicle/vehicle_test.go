package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridefleet/dispatch"
	"ridefleet/model"
	"ridefleet/space"
)

func TestState_EvaluateThenCommit(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	v, err := New(0, 0.0, sp, dispatch.TaxiDispatcher{}, 1, 0.0)
	require.NoError(t, err)

	req := model.NewOpenTransportationRequest(1, 0, 10.0, 20.0)
	sol := v.EvaluateRequest(req)
	require.False(t, sol.Rejected())

	// Stoplist must be untouched until Commit is called.
	assert.Len(t, v.Stoplist, 1)

	v.Commit()
	assert.Len(t, v.Stoplist, 3)
}

func TestState_FastForward_ServicesDueStops(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	v, err := New(7, 0.0, sp, dispatch.TaxiDispatcher{}, 1, 0.0)
	require.NoError(t, err)

	req := model.NewOpenTransportationRequest(1, 0, 10.0, 20.0)
	v.EvaluateRequest(req)
	v.Commit()

	events := v.FastForward(10.0)
	require.Len(t, events, 1)
	assert.Equal(t, model.ActionPickup, events[0].Action)
	assert.Equal(t, 1, events[0].RequestID)
	assert.Equal(t, 7, events[0].VehicleID)

	// CPE now sits at the pickup location; dropoff stop remains pending.
	require.Len(t, v.Stoplist, 2)
	assert.Equal(t, 10.0, v.Stoplist[0].Location)
	assert.Equal(t, model.ActionDropoff, v.Stoplist[1].Action)

	events = v.FastForward(20.0)
	require.Len(t, events, 1)
	assert.Equal(t, model.ActionDropoff, events[0].Action)
	require.Len(t, v.Stoplist, 1)
	assert.Equal(t, 20.0, v.Stoplist[0].Location)
}

func TestState_FastForward_InterpolatesTowardNextStop(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	v, err := New(0, 0.0, sp, dispatch.TaxiDispatcher{}, 1, 0.0)
	require.NoError(t, err)

	req := model.NewOpenTransportationRequest(1, 0, 10.0, 20.0)
	v.EvaluateRequest(req)
	v.Commit()

	// Halfway to the pickup: CPE should interpolate, not jump.
	events := v.FastForward(5.0)
	assert.Len(t, events, 0)
	require.Len(t, v.Stoplist, 3)
	assert.InDelta(t, 5.0, v.Stoplist[0].Location.(float64), 1e-9)
	assert.InDelta(t, 5.0, v.Stoplist[0].EstimatedArrivalTime, 1e-9)
}

func TestNewFromStoplist_RejectsEmpty(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	_, err := NewFromStoplist(0, nil, sp, dispatch.TaxiDispatcher{}, 1)
	assert.ErrorIs(t, err, ErrEmptyStoplist)
}
