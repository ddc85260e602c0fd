package fleet

import (
	"ridefleet/model"
	"ridefleet/space"
)

// Event is a marker for all events a FleetState simulation run emits.
// Grounded in the teacher's sim.Event (sim/events.go): one concrete struct
// per event kind, tagged with an unexported isEvent method.
type Event interface{ isEvent() }

// VehicleStateBeginEvent is emitted once per vehicle at the start of a run,
// carrying its CPE location and the begin sentinel request_id (-100), per
// spec.md §4.6 step 1 and §6's event payload table.
type VehicleStateBeginEvent struct {
	Timestamp float64
	VehicleID int
	Location  space.Location
	RequestID int
}

func (VehicleStateBeginEvent) isEvent() {}

// VehicleStateEndEvent is emitted once per vehicle at the end of a run,
// carrying its final CPE location and the end sentinel request_id (-200),
// per spec.md §4.6 step 4.
type VehicleStateEndEvent struct {
	Timestamp float64
	VehicleID int
	Location  space.Location
	RequestID int
}

func (VehicleStateEndEvent) isEvent() {}

// RequestSubmissionEvent marks a request entering the system, carrying the
// same origin/destination/window payload as the eventual
// RequestAcceptanceEvent, per spec.md §6.
type RequestSubmissionEvent struct {
	Timestamp   float64
	RequestID   int
	Origin      space.Location
	Destination space.Location
	PickupMin   float64
	PickupMax   float64
	DeliveryMin float64
	DeliveryMax float64
}

func (RequestSubmissionEvent) isEvent() {}

// RequestAcceptanceEvent marks a request accepted by the fleet, recording
// the winning vehicle, the request's origin/destination, and the committed
// pickup/delivery windows.
type RequestAcceptanceEvent struct {
	Timestamp   float64
	RequestID   int
	VehicleID   int
	Origin      space.Location
	Destination space.Location
	PickupMin   float64
	PickupMax   float64
	DeliveryMin float64
	DeliveryMax float64
}

func (RequestAcceptanceEvent) isEvent() {}

// RequestRejectionEvent marks a request no vehicle could feasibly serve.
type RequestRejectionEvent struct {
	Timestamp float64
	RequestID int
}

func (RequestRejectionEvent) isEvent() {}

// PickupEvent marks a vehicle servicing a pickup stop.
type PickupEvent struct {
	Timestamp float64
	VehicleID int
	RequestID int
}

func (PickupEvent) isEvent() {}

// DeliveryEvent marks a vehicle servicing a dropoff stop.
type DeliveryEvent struct {
	Timestamp float64
	VehicleID int
	RequestID int
}

func (DeliveryEvent) isEvent() {}

// InternalEvent marks a vehicle servicing a non-request stop (anything
// other than the CPE, which is never itself serviced).
type InternalEvent struct {
	Timestamp float64
	VehicleID int
}

func (InternalEvent) isEvent() {}

func stopEventToEvent(vehicleID int, a model.StopAction, requestID int, ts float64) Event {
	switch a {
	case model.ActionPickup:
		return PickupEvent{Timestamp: ts, VehicleID: vehicleID, RequestID: requestID}
	case model.ActionDropoff:
		return DeliveryEvent{Timestamp: ts, VehicleID: vehicleID, RequestID: requestID}
	default:
		return InternalEvent{Timestamp: ts, VehicleID: vehicleID}
	}
}
