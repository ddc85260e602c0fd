// Package model holds the core data model shared by the dispatch, vehicle
// and fleet packages: requests, stops and stoplists. Grounded in
// ridepy.data_structures (original_source) and, structurally, in the
// teacher's own route/stop/passenger split (model/route.go, model/stop.go,
// model/passenger.go).
package model

import (
	"math"

	"ridefleet/space"
)

// Sentinel request IDs, per spec.md §6.
const (
	CPERequestID   = -1
	BeginRequestID = -100
	EndRequestID   = -200
)

// Request is the polymorphic request type: either an InternalRequest or a
// TransportationRequest.
type Request interface {
	ID() int
	CreationTimestamp() float64
	isRequest()
}

// InternalRequest marks the CPE (request_id == -1) or a synthetic
// begin/end boundary (-100 / -200). It carries a location but no
// spatio-temporal constraints.
type InternalRequest struct {
	RequestID    int
	CreationTime float64
	Location     space.Location
}

func (r *InternalRequest) ID() int                  { return r.RequestID }
func (r *InternalRequest) CreationTimestamp() float64 { return r.CreationTime }
func (r *InternalRequest) isRequest()                {}

// TransportationRequest is a request to move a single passenger from
// Origin to Destination within the given pickup/delivery time windows.
// Upper bounds may be +Inf.
type TransportationRequest struct {
	RequestID    int
	CreationTime float64
	Origin       space.Location
	Destination  space.Location

	PickupTimeWindowMin   float64
	PickupTimeWindowMax   float64
	DeliveryTimeWindowMin float64
	DeliveryTimeWindowMax float64
}

func (r *TransportationRequest) ID() int                  { return r.RequestID }
func (r *TransportationRequest) CreationTimestamp() float64 { return r.CreationTime }
func (r *TransportationRequest) isRequest()                {}

// NewOpenTransportationRequest builds a request with unconstrained windows
// (pickup/delivery minimums at 0, maximums at +Inf), the common case for
// ad hoc insertion tests and the taxi dispatcher.
func NewOpenTransportationRequest(id int, creation float64, origin, destination space.Location) *TransportationRequest {
	return &TransportationRequest{
		RequestID:             id,
		CreationTime:          creation,
		Origin:                origin,
		Destination:           destination,
		PickupTimeWindowMin:   0,
		PickupTimeWindowMax:   math.Inf(1),
		DeliveryTimeWindowMin: 0,
		DeliveryTimeWindowMax: math.Inf(1),
	}
}
