// Package fleet implements FleetState: the top-level simulation loop that
// owns every vehicle, advances simulated time, and routes each incoming
// request to the minimum-cost vehicle. Grounded in
// ridepy.fleet_state.FleetState / SlowSimpleFleetState (original_source),
// restructured around the teacher's channel-based event stream
// (sim/runner.go's StartRunner: a buffered chan of Event, a goroutine per
// concurrent unit of work, sync.WaitGroup to join them).
package fleet

import (
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"ridefleet/dispatch"
	"ridefleet/model"
	"ridefleet/space"
	"ridefleet/vehicle"
)

// ErrNoInitialLocations is returned when New is called with an empty fleet.
var ErrNoInitialLocations = errors.New("fleet: no initial locations supplied")

// State owns every vehicle in the fleet plus the space and dispatcher they
// share. Vehicles are keyed by vehicle_id, matching
// ridepy.fleet_state.FleetState.fleet.
type State struct {
	vehicles map[int]*vehicle.State
	space    space.TransportSpace
	ids      []int // sorted, cached for deterministic iteration
}

// New builds a FleetState with one freshly initialized vehicle per entry in
// initialLocations, all sharing the given space, dispatcher and seat
// capacity.
func New(initialLocations map[int]space.Location, sp space.TransportSpace, d dispatch.Dispatcher, seatCapacity int) (*State, error) {
	if len(initialLocations) == 0 {
		return nil, ErrNoInitialLocations
	}
	vehicles := make(map[int]*vehicle.State, len(initialLocations))
	for id, loc := range initialLocations {
		v, err := vehicle.New(id, loc, sp, d, seatCapacity, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "fleet: vehicle %d", id)
		}
		vehicles[id] = v
	}
	return newState(vehicles, sp), nil
}

// FromFleet builds a FleetState from a pre-built set of VehicleStates,
// validating that every one carries a well-formed CPE as its first stop.
// Grounded in FleetState.from_fleet's validate=True path.
func FromFleet(vehicles map[int]*vehicle.State, sp space.TransportSpace) (*State, error) {
	if len(vehicles) == 0 {
		return nil, ErrNoInitialLocations
	}
	for id, v := range vehicles {
		if len(v.Stoplist) == 0 {
			return nil, errors.Errorf("fleet: vehicle %d has an empty stoplist", id)
		}
		cpe := v.Stoplist[0]
		if cpe.Action != model.ActionInternal || cpe.Request.ID() != model.CPERequestID {
			panic(errors.Errorf("fleet: malformed CPE in vehicle %d: action must be internal and request_id must be -1", id))
		}
	}
	return newState(vehicles, sp), nil
}

func newState(vehicles map[int]*vehicle.State, sp space.TransportSpace) *State {
	ids := make([]int, 0, len(vehicles))
	for id := range vehicles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return &State{vehicles: vehicles, space: sp, ids: ids}
}

// Vehicle returns the vehicle state for the given id, or nil if absent.
func (fs *State) Vehicle(id int) *vehicle.State { return fs.vehicles[id] }

// Simulate runs the fleet against requests (which must be sorted by
// creation timestamp) and returns a channel of the events produced, closed
// once the run completes. tCutoff forcibly ends the run, discarding any
// remaining stops or requests past that time.
//
// Per-request dispatch evaluation runs one goroutine per vehicle — the
// dispatcher contract (spec.md §5) guarantees this is side-effect-free —
// joined with a sync.WaitGroup before the minimum-cost reduction, which is
// always done single-threaded with a deterministic lowest-vehicle-ID
// tie-break so that repeated runs over the same input are reproducible.
// A non-positive tCutoff means unbounded: the run proceeds until the
// request stream is drained, per spec.md §4.6's "optional t_cutoff".
func (fs *State) Simulate(requests []model.Request, tCutoff float64) <-chan Event {
	if tCutoff <= 0 {
		tCutoff = math.Inf(1)
	}
	ch := make(chan Event, 256)

	go func() {
		defer close(ch)

		t := 0.0
		for _, id := range fs.ids {
			ch <- VehicleStateBeginEvent{
				Timestamp: t,
				VehicleID: id,
				Location:  fs.vehicles[id].Stoplist[0].Location,
				RequestID: model.BeginRequestID,
			}
		}

		for _, req := range requests {
			t = req.CreationTimestamp()
			if t > tCutoff {
				break
			}

			fs.fastForward(t, ch)

			switch r := req.(type) {
			case *model.TransportationRequest:
				ch <- RequestSubmissionEvent{
					Timestamp:   t,
					RequestID:   r.ID(),
					Origin:      r.Origin,
					Destination: r.Destination,
					PickupMin:   r.PickupTimeWindowMin,
					PickupMax:   r.PickupTimeWindowMax,
					DeliveryMin: r.DeliveryTimeWindowMin,
					DeliveryMax: r.DeliveryTimeWindowMax,
				}
				ch <- fs.handleTransportationRequest(r, t)
			case *model.InternalRequest:
				// internal requests carry no user-visible response; see
				// FleetState.handle_internal_request.
			default:
				panic("fleet: unknown request variant")
			}
		}

		tEnd := fs.finalCutoff(tCutoff)
		fs.fastForward(tEnd, ch)

		for _, id := range fs.ids {
			ch <- VehicleStateEndEvent{
				Timestamp: tEnd,
				VehicleID: id,
				Location:  fs.vehicles[id].Stoplist[0].Location,
				RequestID: model.EndRequestID,
			}
		}
	}()

	return ch
}

// finalCutoff mirrors FleetState.simulate's closing t computation:
// min(t_cutoff, max over vehicles of their last stop's estimated arrival
// time).
func (fs *State) finalCutoff(tCutoff float64) float64 {
	maxLast := 0.0
	first := true
	for _, id := range fs.ids {
		sl := fs.vehicles[id].Stoplist
		last := sl[len(sl)-1].EstimatedArrivalTime
		if first || last > maxLast {
			maxLast = last
			first = false
		}
	}
	if tCutoff < maxLast {
		return tCutoff
	}
	return maxLast
}

// fastForward advances every vehicle to t, emitting the resulting stop
// events on ch in timestamp order (ties broken by vehicle id, for
// determinism). Grounded in SlowSimpleFleetState.fast_forward.
func (fs *State) fastForward(t float64, ch chan<- Event) {
	type stamped struct {
		ev  vehicle.StopEvent
		vid int
	}
	var wg sync.WaitGroup
	results := make([][]vehicle.StopEvent, len(fs.ids))
	for i, id := range fs.ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			results[i] = fs.vehicles[id].FastForward(t)
		}(i, id)
	}
	wg.Wait()

	var all []stamped
	for i, id := range fs.ids {
		for _, ev := range results[i] {
			all = append(all, stamped{ev: ev, vid: id})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ev.Timestamp != all[j].ev.Timestamp {
			return all[i].ev.Timestamp < all[j].ev.Timestamp
		}
		return all[i].vid < all[j].vid
	})
	for _, s := range all {
		ch <- stopEventToEvent(s.vid, s.ev.Action, s.ev.RequestID, s.ev.Timestamp)
	}
}

// handleTransportationRequest evaluates req against every vehicle
// concurrently, commits the winner, and returns the resulting acceptance
// or rejection event. Grounded in
// SlowSimpleFleetState.handle_transportation_request +
// FleetState._apply_request_solution.
func (fs *State) handleTransportationRequest(req *model.TransportationRequest, t float64) Event {
	if req.Origin == req.Destination {
		return RequestRejectionEvent{Timestamp: t, RequestID: req.ID()}
	}

	type evaluated struct {
		vid int
		sol dispatch.Solution
	}
	results := make([]evaluated, len(fs.ids))
	var wg sync.WaitGroup
	for i, id := range fs.ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			sol := fs.vehicles[id].EvaluateRequest(req)
			results[i] = evaluated{vid: id, sol: sol}
		}(i, id)
	}
	wg.Wait()

	bestIdx := -1
	for i, r := range results {
		if bestIdx == -1 || r.sol.Cost < results[bestIdx].sol.Cost {
			bestIdx = i
		}
	}

	best := results[bestIdx]
	if best.sol.Rejected() {
		return RequestRejectionEvent{Timestamp: t, RequestID: req.ID()}
	}

	fs.vehicles[best.vid].Commit()
	return RequestAcceptanceEvent{
		Timestamp:   t,
		RequestID:   req.ID(),
		VehicleID:   best.vid,
		Origin:      req.Origin,
		Destination: req.Destination,
		PickupMin:   best.sol.Windows.PickupMin,
		PickupMax:   best.sol.Windows.PickupMax,
		DeliveryMin: best.sol.Windows.DeliveryMin,
		DeliveryMax: best.sol.Windows.DeliveryMax,
	}
}
