package dispatch

import (
	"math"

	"ridefleet/model"
	"ridefleet/space"
)

// BruteForceDispatcher enumerates every feasible (pickup, dropoff) index
// pair and commits the one with strictly minimal added travel time,
// breaking ties by the first pair achieving the minimum (deterministic
// given a deterministic stoplist ordering). O(L^2) per call, where L is
// the stoplist length; see spec.md §4.4.
//
// Grounded in
// ridepy.util.dispatchers.ridepooling.BruteForceTotalTravelTimeMinimizingDispatcher.
type BruteForceDispatcher struct{}

func (BruteForceDispatcher) Dispatch(request *model.TransportationRequest, stoplist model.Stoplist, sp space.TransportSpace, seatCapacity int) Solution {
	minCost := math.Inf(1)
	bestPickupIdx, bestDropoffIdx := -1, -1

	for i := 0; i < len(stoplist); i++ {
		stopBeforePickup := stoplist[i]
		if stopBeforePickup.OccupancyAfterServicing == seatCapacity {
			// inserting here would violate the capacity constraint
			continue
		}
		timeToPickup := sp.T(stopBeforePickup.Location, request.Origin)
		cpatPickup := model.CPATOfInsertedStop(stopBeforePickup, timeToPickup, 0)
		if cpatPickup > request.PickupTimeWindowMax {
			continue
		}
		eastPickup := request.PickupTimeWindowMin

		// --- adjacent insertion: pickup then dropoff back-to-back ---
		cpatDropoffAdj := math.Max(eastPickup, cpatPickup) + sp.T(request.Origin, request.Destination)
		if cpatDropoffAdj <= request.DeliveryTimeWindowMax {
			timeToDropoff := sp.T(request.Origin, request.Destination)
			timeFromDropoff := model.TimeToStopAfterInsertion(stoplist, request.Destination, i, sp)
			originalPickupEdge := model.TimeFromCurrentStopToNext(stoplist, i, sp)
			totalCost := timeToPickup + timeToDropoff + timeFromDropoff - originalPickupEdge

			if totalCost < minCost {
				cpatAtNextStop := math.Max(cpatDropoffAdj, request.DeliveryTimeWindowMin) + timeFromDropoff
				if !model.IsTimeWindowViolatedOrWorsened(stoplist, i, cpatAtNextStop) {
					bestPickupIdx, bestDropoffIdx = i, i
					minCost = totalCost
				}
			}
		}

		// --- non-adjacent insertion: pickup at i, dropoff at some j > i ---
		timeFromPickup := model.TimeToStopAfterInsertion(stoplist, request.Origin, i, sp)
		cpatAtNextStop := math.Max(cpatPickup, request.PickupTimeWindowMin) + timeFromPickup
		if model.IsTimeWindowViolatedOrWorsened(stoplist, i, cpatAtNextStop) {
			continue
		}

		originalPickupEdge := model.TimeFromCurrentStopToNext(stoplist, i, sp)
		pickupCost := timeToPickup + timeFromPickup - originalPickupEdge

		var deltaCPAT float64
		if i < len(stoplist)-1 {
			deltaCPAT = cpatAtNextStop - stoplist[i+1].EstimatedArrivalTime
		}

		for j := i + 1; j < len(stoplist); j++ {
			stopBeforeDropoff := stoplist[j]
			if stopBeforeDropoff.OccupancyAfterServicing == seatCapacity {
				// any later j would also violate capacity
				break
			}
			timeToDropoff := sp.T(stopBeforeDropoff.Location, request.Destination)
			cpatDropoff := model.CPATOfInsertedStop(stopBeforeDropoff, timeToDropoff, deltaCPAT)
			if cpatDropoff > request.DeliveryTimeWindowMax {
				break
			}

			timeFromDropoff := model.TimeToStopAfterInsertion(stoplist, request.Destination, j, sp)
			originalDropoffEdge := model.TimeFromCurrentStopToNext(stoplist, j, sp)
			dropoffCost := timeToDropoff + timeFromDropoff - originalDropoffEdge
			totalCost := pickupCost + dropoffCost

			if totalCost < minCost {
				cpatAtNextStop := math.Max(cpatDropoff, request.DeliveryTimeWindowMin) + timeFromDropoff
				if !model.IsTimeWindowViolatedOrWorsened(stoplist, j, cpatAtNextStop) {
					bestPickupIdx, bestDropoffIdx = i, j
					minCost = totalCost
				}
			}

			newDeparture := stopBeforeDropoff.EstimatedArrivalTime + deltaCPAT
			if newDeparture < stopBeforeDropoff.TimeWindowMin {
				newDeparture = stopBeforeDropoff.TimeWindowMin
			}
			deltaCPAT = newDeparture - stopBeforeDropoff.EstimatedDepartureTime()
		}
	}

	if math.IsInf(minCost, 1) {
		return Rejection
	}

	newStoplist := model.InsertRequest(stoplist, request, bestPickupIdx, bestDropoffIdx, sp)
	pickupStop := newStoplist[bestPickupIdx+1]
	dropoffStop := newStoplist[bestDropoffIdx+2]

	return Solution{
		Cost:     minCost,
		Stoplist: newStoplist,
		Windows: TimeWindows{
			PickupMin:   pickupStop.TimeWindowMin,
			PickupMax:   pickupStop.TimeWindowMax,
			DeliveryMin: dropoffStop.TimeWindowMin,
			DeliveryMax: dropoffStop.TimeWindowMax,
		},
	}
}
