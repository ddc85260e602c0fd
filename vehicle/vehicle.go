// Package vehicle implements VehicleState: a single vehicle's stoplist,
// the fast-forward time-advance state machine (spec.md §4.5), and the
// single-vehicle insertion evaluation that invokes a Dispatcher without
// committing its result until told to by the fleet.
//
// Grounded in ridepy.vehicle_state.VehicleState (original_source) and,
// structurally, in the teacher's model.Bus passenger bookkeeping
// (model/bus.go's LoadPassengers/UnloadPassengers occupancy tracking).
package vehicle

import (
	"github.com/pkg/errors"

	"ridefleet/dispatch"
	"ridefleet/model"
	"ridefleet/space"
)

// ErrEmptyStoplist is returned when a vehicle is constructed with no CPE.
var ErrEmptyStoplist = errors.New("vehicle: stoplist must contain at least the CPE")

// StopEvent is one serviced stop, emitted by FastForward in stoplist order.
type StopEvent struct {
	Timestamp float64
	VehicleID int
	Action    model.StopAction
	RequestID int // only meaningful for pickup/dropoff
}

// State owns exactly one Stoplist and the Dispatcher used to evaluate
// candidate insertions for it. Candidate holds the most recent
// dispatcher-proposed stoplist, pending fleet-level selection; it is never
// applied to Stoplist except via Commit.
type State struct {
	VehicleID    int
	Stoplist     model.Stoplist
	Space        space.TransportSpace
	SeatCapacity int
	Dispatcher   dispatch.Dispatcher

	candidate dispatch.Solution
}

// New constructs a vehicle state with a fresh CPE stoplist at
// initialLocation. seatCapacity must be positive.
func New(vehicleID int, initialLocation space.Location, sp space.TransportSpace, d dispatch.Dispatcher, seatCapacity int, now float64) (*State, error) {
	if seatCapacity <= 0 {
		return nil, errors.Errorf("vehicle: seat capacity must be positive, got %d", seatCapacity)
	}
	return &State{
		VehicleID:    vehicleID,
		Stoplist:     model.NewCPEStoplist(initialLocation, now),
		Space:        sp,
		SeatCapacity: seatCapacity,
		Dispatcher:   d,
	}, nil
}

// NewFromStoplist wraps a pre-built stoplist (used when restoring vehicle
// state between runs, or in tests that need specific stoplist fixtures).
// The first stop must be a well-formed CPE, per spec.md §3 invariant 1.
func NewFromStoplist(vehicleID int, stoplist model.Stoplist, sp space.TransportSpace, d dispatch.Dispatcher, seatCapacity int) (*State, error) {
	if len(stoplist) == 0 {
		return nil, ErrEmptyStoplist
	}
	cpe := stoplist[0]
	if cpe.Action != model.ActionInternal || cpe.Request.ID() != model.CPERequestID {
		return nil, errors.New("vehicle: malformed CPE: action must be internal and request_id must be -1")
	}
	return &State{
		VehicleID:    vehicleID,
		Stoplist:     stoplist,
		Space:        sp,
		SeatCapacity: seatCapacity,
		Dispatcher:   d,
	}, nil
}

// EvaluateRequest invokes the vehicle's dispatcher against the current
// stoplist and stashes the proposed solution as the pending Candidate. It
// never mutates Stoplist — only Commit does that, once the fleet has
// chosen a winner (spec.md §4.6 "Commit discipline").
func (v *State) EvaluateRequest(request *model.TransportationRequest) dispatch.Solution {
	v.candidate = v.Dispatcher.Dispatch(request, v.Stoplist, v.Space, v.SeatCapacity)
	return v.candidate
}

// Commit replaces Stoplist with the most recently evaluated candidate.
// Must only be called after this vehicle has won fleet-level selection
// for the request that produced the candidate.
func (v *State) Commit() {
	v.Stoplist = v.candidate.Stoplist
}

// FastForward advances the vehicle to time t: stops whose departure time
// is <= t are serviced and removed, emitting one StopEvent per stop in
// stoplist order; the CPE is updated to reflect the vehicle's position at
// t (possibly mid-jump on a discrete space edge, possibly idle). Grounded
// in VehicleState.fast_forward_time.
func (v *State) FastForward(t float64) []StopEvent {
	sl := v.Stoplist
	var events []StopEvent
	var lastStop *model.Stop

	// Walk backward from the end, dropping every stop whose departure
	// time is <= t except index 0 (the CPE is never dropped here).
	for i := len(sl) - 1; i > 0; i-- {
		stop := sl[i]
		serviceTime := stop.EstimatedArrivalTime
		if stop.TimeWindowMin > serviceTime {
			serviceTime = stop.TimeWindowMin
		}
		if serviceTime > t {
			continue
		}
		if lastStop == nil {
			lastStop = stop
		}
		ev := StopEvent{Timestamp: serviceTime, VehicleID: v.VehicleID}
		switch stop.Action {
		case model.ActionPickup:
			ev.Action = model.ActionPickup
			ev.RequestID = stop.Request.ID()
		case model.ActionDropoff:
			ev.Action = model.ActionDropoff
			ev.RequestID = stop.Request.ID()
		case model.ActionInternal:
			ev.Action = model.ActionInternal
		default:
			panic("vehicle: unknown StopAction")
		}
		events = append(events, ev)
		// splice stop i out of sl, keeping relative order of survivors
		sl = append(sl[:i], sl[i+1:]...)
	}
	// events were appended while walking backward (last serviced first);
	// restore stoplist order.
	for l, r := 0, len(events)-1; l < r; l, r = l+1, r-1 {
		events[l], events[r] = events[r], events[l]
	}

	if lastStop == nil {
		lastStop = sl[0]
	}

	sl[0].OccupancyAfterServicing = lastStop.OccupancyAfterServicing

	if sl[0].EstimatedArrivalTime <= t {
		if len(sl) > 1 {
			loc, jumpTime := v.Space.InterpTime(lastStop.Location, sl[1].Location, sl[1].EstimatedArrivalTime-t)
			sl[0].Location = loc
			sl[0].EstimatedArrivalTime = t + jumpTime
		} else {
			sl[0].Location = lastStop.Location
			sl[0].EstimatedArrivalTime = t
		}
	}

	v.Stoplist = sl
	return events
}
