package dispatch

import (
	"math"

	"ridefleet/model"
	"ridefleet/space"
)

// TaxiDispatcher appends a pickup then a dropoff to the end of the
// stoplist; it never inserts in the middle. seatCapacity MUST be 1 — see
// spec.md §4.3 and §9's Open Question notes: append-only service means no
// re-ordering is possible, so the dispatcher does not itself check
// pickup/delivery window feasibility beyond the seat-capacity assertion.
//
// Grounded in ridepy.util.dispatchers.taxicab.TaxicabDispatcherDriveFirst.
type TaxiDispatcher struct{}

func (TaxiDispatcher) Dispatch(request *model.TransportationRequest, stoplist model.Stoplist, sp space.TransportSpace, seatCapacity int) Solution {
	if seatCapacity != 1 {
		panic("dispatch: TaxiDispatcher requires seat_capacity == 1")
	}
	last := stoplist[len(stoplist)-1]

	cpatPickup := last.EstimatedDepartureTime() + sp.T(last.Location, request.Origin)
	eastPickup := request.PickupTimeWindowMin
	cpatDropoff := math.Max(eastPickup, cpatPickup) + sp.T(request.Origin, request.Destination)
	lastPickup := math.Inf(1)
	if !math.IsInf(request.DeliveryTimeWindowMax, 1) {
		lastPickup = cpatPickup + request.DeliveryTimeWindowMax
	}
	eastDropoff := eastPickup
	lastDropoff := math.Inf(1)

	pickupStop := &model.Stop{
		Location:                request.Origin,
		Request:                 request,
		Action:                  model.ActionPickup,
		EstimatedArrivalTime:    cpatPickup,
		OccupancyAfterServicing: last.OccupancyAfterServicing + 1,
		TimeWindowMin:           eastPickup,
		TimeWindowMax:           lastPickup,
	}
	dropoffStop := &model.Stop{
		Location:                request.Destination,
		Request:                 request,
		Action:                  model.ActionDropoff,
		EstimatedArrivalTime:    cpatDropoff,
		OccupancyAfterServicing: 0,
		TimeWindowMin:           eastDropoff,
		TimeWindowMax:           lastDropoff,
	}

	newStoplist := append(stoplist.Clone(), pickupStop, dropoffStop)

	return Solution{
		Cost:     cpatDropoff,
		Stoplist: newStoplist,
		Windows: TimeWindows{
			PickupMin:   eastPickup,
			PickupMax:   lastPickup,
			DeliveryMin: eastDropoff,
			DeliveryMax: lastDropoff,
		},
	}
}
