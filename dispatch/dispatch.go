// Package dispatch implements the dispatcher contract of spec.md §4: a
// pure function mapping (request, stoplist, space, seat capacity) to
// either a cost, a new stoplist and the committed time windows, or a
// rejection. Two implementations are provided: TaxiDispatcher (append-only,
// §4.3) and BruteForceDispatcher (minimum added travel time, ride-pooling,
// §4.4).
//
// Grounded in ridepy.util.dispatchers (original_source); structurally
// exposed as an interface per spec.md §9 "Dispatcher as a first-class
// capability", mirroring the teacher's Control interface
// (sim/runner.go) for a small, swappable strategy object.
package dispatch

import (
	"math"

	"ridefleet/model"
	"ridefleet/space"
)

// TimeWindows reports the committed pickup/delivery time windows of a
// dispatch solution.
type TimeWindows struct {
	PickupMin, PickupMax     float64
	DeliveryMin, DeliveryMax float64
}

// NoWindows is returned alongside a rejection; all fields are NaN, matching
// the Python reference's (nan, nan, nan, nan) rejection payload.
var NoWindows = TimeWindows{
	PickupMin:   math.NaN(),
	PickupMax:   math.NaN(),
	DeliveryMin: math.NaN(),
	DeliveryMax: math.NaN(),
}

// Solution is what a Dispatcher returns: the additional cost incurred by
// inserting the request, the resulting stoplist (nil on rejection), and
// the committed time windows of the two new stops.
type Solution struct {
	Cost     float64
	Stoplist model.Stoplist
	Windows  TimeWindows
}

// Rejected reports whether the solution represents an infeasible request
// (infinite cost, no stoplist).
func (s Solution) Rejected() bool {
	return math.IsInf(s.Cost, 1)
}

// Rejection is the canonical infeasible-request Solution.
var Rejection = Solution{Cost: math.Inf(1), Stoplist: nil, Windows: NoWindows}

// Dispatcher is a pure function: it must not mutate stoplist, and it must
// return the same Solution given the same inputs (spec.md §4.6
// "Commit discipline", §5 "embarrassingly parallel and side-effect-free").
type Dispatcher interface {
	Dispatch(request *model.TransportationRequest, stoplist model.Stoplist, sp space.TransportSpace, seatCapacity int) Solution
}
