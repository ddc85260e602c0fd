package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridefleet/model"
	"ridefleet/space"
)

func TestTaxiDispatcher_SingleRequest(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)
	req := model.NewOpenTransportationRequest(1, 0, 10.0, 20.0)

	sol := TaxiDispatcher{}.Dispatch(req, sl, sp, 1)

	require.False(t, sol.Rejected())
	require.Len(t, sol.Stoplist, 3)
	assert.Equal(t, model.ActionPickup, sol.Stoplist[1].Action)
	assert.Equal(t, model.ActionDropoff, sol.Stoplist[2].Action)
	assert.InDelta(t, 10.0, sol.Stoplist[1].EstimatedArrivalTime, 1e-9)
	assert.InDelta(t, 20.0, sol.Stoplist[2].EstimatedArrivalTime, 1e-9)
	assert.Equal(t, 20.0, sol.Cost)
}

func TestTaxiDispatcher_FIFOUnderLoad(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)

	req1 := model.NewOpenTransportationRequest(1, 0, 5.0, 8.0)
	sol1 := TaxiDispatcher{}.Dispatch(req1, sl, sp, 1)
	require.False(t, sol1.Rejected())

	req2 := model.NewOpenTransportationRequest(2, 0, 12.0, 15.0)
	sol2 := TaxiDispatcher{}.Dispatch(req2, sol1.Stoplist, sp, 1)
	require.False(t, sol2.Rejected())

	require.Len(t, sol2.Stoplist, 5)
	assert.Equal(t, 1, sol2.Stoplist[1].Request.ID())
	assert.Equal(t, 1, sol2.Stoplist[2].Request.ID())
	assert.Equal(t, 2, sol2.Stoplist[3].Request.ID())
	assert.Equal(t, 2, sol2.Stoplist[4].Request.ID())
}

func TestBruteForceDispatcher_PureAppending(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)
	d := BruteForceDispatcher{}

	req1 := model.NewOpenTransportationRequest(1, 0, 5.0, 10.0)
	sol1 := d.Dispatch(req1, sl, sp, 4)
	require.False(t, sol1.Rejected())

	req2 := model.NewOpenTransportationRequest(2, 0, 20.0, 25.0)
	sol2 := d.Dispatch(req2, sol1.Stoplist, sp, 4)
	require.False(t, sol2.Rejected())
	require.Len(t, sol2.Stoplist, 5)
	// far ahead of req1's dropoff: cheapest insertion is at the end.
	assert.Equal(t, 2, sol2.Stoplist[3].Request.ID())
	assert.Equal(t, 2, sol2.Stoplist[4].Request.ID())
}

func TestBruteForceDispatcher_MiddleInsertion(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)
	d := BruteForceDispatcher{}

	far := model.NewOpenTransportationRequest(1, 0, 100.0, 200.0)
	sol1 := d.Dispatch(far, sl, sp, 4)
	require.False(t, sol1.Rejected())

	// a request entirely inside [0, 100] should be woven in, not appended
	// after the far trip.
	near := model.NewOpenTransportationRequest(2, 0, 10.0, 20.0)
	sol2 := d.Dispatch(near, sol1.Stoplist, sp, 4)
	require.False(t, sol2.Rejected())

	require.Len(t, sol2.Stoplist, 5)
	ids := make([]int, len(sol2.Stoplist))
	for i, s := range sol2.Stoplist {
		ids[i] = s.Request.ID()
	}
	assert.Equal(t, []int{model.CPERequestID, 2, 2, 1, 1}, ids)
}

func TestBruteForceDispatcher_CapacityForcesAdjacency(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)
	d := BruteForceDispatcher{}

	req1 := model.NewOpenTransportationRequest(1, 0, 0.0, 100.0)
	sol1 := d.Dispatch(req1, sl, sp, 1) // capacity 1: fully booked between pickup/dropoff

	req2 := model.NewOpenTransportationRequest(2, 0, 50.0, 60.0)
	sol2 := d.Dispatch(req2, sol1.Stoplist, sp, 1)

	require.False(t, sol2.Rejected())
	ids := make([]int, len(sol2.Stoplist))
	for i, s := range sol2.Stoplist {
		ids[i] = s.Request.ID()
	}
	// req2 cannot be woven between req1's pickup and dropoff (capacity 1
	// is already full there), so it is inserted back-to-back; after req1
	// (added time 60) is cheaper than before it (added time 120).
	assert.Equal(t, []int{model.CPERequestID, 1, 1, 2, 2}, ids)
}

func TestBruteForceDispatcher_RejectsInfeasibleWindow(t *testing.T) {
	sp := space.NewEuclidean1D(1)
	sl := model.NewCPEStoplist(0.0, 0.0)
	d := BruteForceDispatcher{}

	req := &model.TransportationRequest{
		RequestID:             1,
		Origin:                10.0,
		Destination:           20.0,
		PickupTimeWindowMin:   0,
		PickupTimeWindowMax:   1.0, // unreachable: 10 time units away at velocity 1
		DeliveryTimeWindowMin: 0,
		DeliveryTimeWindowMax: 2.0,
	}

	sol := d.Dispatch(req, sl, sp, 4)
	assert.True(t, sol.Rejected())
	assert.Nil(t, sol.Stoplist)
}
