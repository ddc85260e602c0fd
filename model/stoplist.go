package model

import (
	"math"

	"ridefleet/space"
)

// Stoplist is the ordered plan of what a single vehicle will do next. Its
// first element is always the CPE (current position element): an
// ActionInternal stop with RequestID == -1. Grounded structurally in the
// teacher's model.Route (an ordered []*BusStop); here the sequence belongs
// to one vehicle rather than a shared route.
type Stoplist []*Stop

// NewCPEStoplist returns a fresh single-element stoplist whose only stop is
// the CPE at the given location and time, matching
// ridepy.fleet_state.FleetState.__init__'s construction of each vehicle's
// initial_stoplist.
func NewCPEStoplist(location space.Location, now float64) Stoplist {
	return Stoplist{
		{
			Location: location,
			Request: &InternalRequest{
				RequestID:    CPERequestID,
				CreationTime: now,
				Location:     location,
			},
			Action:                  ActionInternal,
			EstimatedArrivalTime:    now,
			OccupancyAfterServicing: 0,
			TimeWindowMin:           0,
			TimeWindowMax:           math.Inf(1),
		},
	}
}

// Clone returns a deep-enough copy of the stoplist: each Stop is copied,
// but the Stop.Request references are shared, since requests are immutable.
// Dispatcher insertion must never mutate the stoplist it was handed
// (spec.md §4.2.2 step 1, §9 "Stoplist mutation discipline").
func (sl Stoplist) Clone() Stoplist {
	out := make(Stoplist, len(sl))
	for i, s := range sl {
		out[i] = s.Clone()
	}
	return out
}

// RecomputeArrivalTimes restores invariant 2 of spec.md §3 by walking the
// list once and setting each stop's EAT from its drive-first predecessor.
// Grounded in VehicleState.recompute_arrival_times_drive_first.
func (sl Stoplist) RecomputeArrivalTimes(sp space.TransportSpace) {
	for i := 0; i+1 < len(sl); i++ {
		a, b := sl[i], sl[i+1]
		b.EstimatedArrivalTime = a.EstimatedDepartureTime() + sp.T(a.Location, b.Location)
	}
}

// CPATOfInsertedStop computes the estimated arrival time of a stop being
// inserted directly after stopBefore, given the travel time from
// stopBefore's location and an optional propagated delay (deltaCPAT),
// assuming a drive-first strategy. Grounded in
// ridepy.util.dispatchers.helper_functions.cpat_of_inserted_stop.
func CPATOfInsertedStop(stopBefore *Stop, timeFromStopBefore, deltaCPAT float64) float64 {
	dep := stopBefore.EstimatedArrivalTime + deltaCPAT
	if dep < stopBefore.TimeWindowMin {
		dep = stopBefore.TimeWindowMin
	}
	return dep + timeFromStopBefore
}

// TimeToStopAfterInsertion returns the travel time from location to the
// stop that currently sits at index+1 in stoplist, or 0 if index is the
// last element (insertion at the end incurs no further travel). Grounded
// in ridepy.util.dispatchers.helper_functions.time_to_stop_after_insertion.
func TimeToStopAfterInsertion(sl Stoplist, location space.Location, index int, sp space.TransportSpace) float64 {
	if index < len(sl)-1 {
		return sp.T(location, sl[index+1].Location)
	}
	return 0
}

// TimeFromCurrentStopToNext returns the travel time from stop i to stop
// i+1, or 0 if i is the last index. Grounded in
// ridepy.util.dispatchers.helper_functions.time_from_current_stop_to_next.
func TimeFromCurrentStopToNext(sl Stoplist, i int, sp space.TransportSpace) float64 {
	if i < len(sl)-1 {
		return sp.T(sl[i].Location, sl[i+1].Location)
	}
	return 0
}

// IsTimeWindowViolatedOrWorsened implements the feasibility pre-check of
// spec.md §4.2.3: given that a stop was (hypothetically) inserted so that
// the next stop's arrival time becomes estArrivalFirstStopAfterInsertion,
// walks forward and reports whether any downstream time window becomes
// newly (or more) violated. A stop counts as violated only when its leeway
// is negative after the shift and strictly smaller than before, so a
// pre-existing violation that the insertion does not worsen is tolerated.
//
// Grounded in
// ridepy.util.dispatchers.helper_functions.is_timewindow_violated_or_violation_worsened_due_to_insertion.
func IsTimeWindowViolatedOrWorsened(sl Stoplist, idx int, estArrivalFirstStopAfterInsertion float64) bool {
	if idx > len(sl)-2 {
		return false
	}
	if estArrivalFirstStopAfterInsertion <= sl[idx+1].EstimatedArrivalTime {
		return false
	}
	deltaCPAT := estArrivalFirstStopAfterInsertion - sl[idx+1].EstimatedArrivalTime
	for i := idx + 1; i < len(sl); i++ {
		stop := sl[i]
		oldLeeway := stop.TimeWindowMax - stop.EstimatedArrivalTime
		newLeeway := oldLeeway - deltaCPAT
		if newLeeway < 0 && newLeeway < oldLeeway {
			return true
		}
		if stop.TimeWindowMin >= stop.EstimatedArrivalTime+deltaCPAT {
			return false
		}
		dep := stop.EstimatedArrivalTime + deltaCPAT
		if dep < stop.TimeWindowMin {
			dep = stop.TimeWindowMin
		}
		deltaCPAT = dep - stop.EstimatedDepartureTime()
	}
	return false
}

// insertStopDriveFirst inserts stop after index idx in sl (modifying sl in
// place — callers must already hold a private copy, see InsertRequest),
// computing the new stop's EAT and propagating the resulting delay forward
// until it is fully absorbed by downstream slack. Grounded in
// ridepy.util.dispatchers.helper_functions.insert_stop_to_stoplist_drive_first.
func insertStopDriveFirst(sl Stoplist, stop *Stop, idx int, sp space.TransportSpace) Stoplist {
	stopBefore := sl[idx]
	stop.EstimatedArrivalTime = CPATOfInsertedStop(stopBefore, sp.T(stopBefore.Location, stop.Location), 0)

	if idx < len(sl)-1 {
		deltaCPATNext := stop.EstimatedDepartureTime() + sp.T(stop.Location, sl[idx+1].Location) - sl[idx+1].EstimatedArrivalTime
		for i := idx + 1; i < len(sl); i++ {
			later := sl[i]
			oldDeparture := later.EstimatedDepartureTime()
			later.EstimatedArrivalTime += deltaCPATNext
			deltaCPATNext = later.EstimatedDepartureTime() - oldDeparture
			if deltaCPATNext == 0 {
				break
			}
		}
	}

	out := make(Stoplist, 0, len(sl)+1)
	out = append(out, sl[:idx+1]...)
	out = append(out, stop)
	out = append(out, sl[idx+1:]...)
	return out
}

// InsertRequest implements spec.md §4.2.2: returns a new stoplist with
// request's pickup inserted after pickupIdx and its dropoff inserted after
// dropoffIdx (indices into the *original* stoplist; pickupIdx <= dropoffIdx,
// equal indices meaning adjacent insertion). The input stoplist is never
// modified.
func InsertRequest(sl Stoplist, request *TransportationRequest, pickupIdx, dropoffIdx int, sp space.TransportSpace) Stoplist {
	newSl := sl.Clone()

	stopBeforePickup := newSl[pickupIdx]
	pickupStop := &Stop{
		Location:                request.Origin,
		Request:                 request,
		Action:                  ActionPickup,
		TimeWindowMin:           request.PickupTimeWindowMin,
		TimeWindowMax:           request.PickupTimeWindowMax,
		OccupancyAfterServicing: stopBeforePickup.OccupancyAfterServicing + 1,
	}
	for _, s := range newSl[pickupIdx+1 : dropoffIdx+1] {
		s.OccupancyAfterServicing++
	}
	newSl = insertStopDriveFirst(newSl, pickupStop, pickupIdx, sp)

	dropoffIdx++ // the pickup shifted everything after it by one
	stopBeforeDropoff := newSl[dropoffIdx]
	dropoffStop := &Stop{
		Location:                request.Destination,
		Request:                 request,
		Action:                  ActionDropoff,
		TimeWindowMin:           request.DeliveryTimeWindowMin,
		TimeWindowMax:           request.DeliveryTimeWindowMax,
		OccupancyAfterServicing: stopBeforeDropoff.OccupancyAfterServicing - 1,
	}
	newSl = insertStopDriveFirst(newSl, dropoffStop, dropoffIdx, sp)

	return newSl
}
