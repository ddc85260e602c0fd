// Package requestgen supplies the []model.Request streams a fleet.State
// consumes. RandomGenerator produces a Poisson arrival process of
// transportation requests over a transport space; SliceGenerator replays a
// fixed, pre-built sequence for deterministic tests and scenario replays.
//
// RandomGenerator is grounded in ridepy.util.request_generators
// (original_source) for the timewindow math, and in the teacher's
// rand.New(rand.NewSource(seed)) seeding idiom (sim/simulator.go's
// NewSimulator).
package requestgen

import (
	"math"
	"math/rand"

	"ridefleet/model"
	"ridefleet/space"
)

// Generator produces an ordered (by CreationTimestamp) stream of requests.
type Generator interface {
	// Next returns the next request, or ok=false once the generator is
	// exhausted (SliceGenerator only; RandomGenerator never exhausts).
	Next() (req model.Request, ok bool)
}

// RandomGenerator emits TransportationRequests as a Poisson process: the
// gap between consecutive creation timestamps is exponentially distributed
// with the given Rate. Config mirrors
// ridepy.util.request_generators.RandomRequestGenerator's timewindow
// parameters.
type RandomGenerator struct {
	Space Rand2Space
	Rate  float64

	PickupTimewindowOffset float64
	MaxPickupDelay         float64
	MaxDeliveryDelayAbs    float64
	MaxDeliveryDelayRel    float64

	rng   *rand.Rand
	now   float64
	index int
}

// Rand2Space is the subset of space.TransportSpace a RandomGenerator needs:
// travel time and a uniform random point.
type Rand2Space interface {
	T(u, v space.Location) float64
	RandomPoint(rng space.Rand) space.Location
}

type randAdapter struct{ r *rand.Rand }

func (a randAdapter) Float64() float64 { return a.r.Float64() }
func (a randAdapter) Intn(n int) int   { return a.r.Intn(n) }

// NewRandomGenerator builds a generator with unconstrained pickup/delivery
// delays (matching the Python default of all np.inf); callers can
// narrow MaxPickupDelay etc. afterward.
func NewRandomGenerator(sp Rand2Space, rate float64, seed int64) *RandomGenerator {
	return &RandomGenerator{
		Space:                  sp,
		Rate:                   rate,
		MaxPickupDelay:         math.Inf(1),
		MaxDeliveryDelayAbs:    math.Inf(1),
		MaxDeliveryDelayRel:    math.Inf(1),
		rng:                    rand.New(rand.NewSource(seed)),
		index:                  -1,
	}
}

// Next draws the next request from the Poisson process.
func (g *RandomGenerator) Next() (model.Request, bool) {
	g.now += g.rng.ExpFloat64() / g.Rate
	g.index++

	var origin, destination space.Location
	for {
		origin = g.Space.RandomPoint(randAdapter{g.rng})
		destination = g.Space.RandomPoint(randAdapter{g.rng})
		if origin != destination {
			break
		}
	}

	directTravelTime := g.Space.T(origin, destination)
	pickupMin := g.now + g.PickupTimewindowOffset
	pickupMax := pickupMin + g.MaxPickupDelay
	deliveryMax := pickupMin + directTravelTime + math.Min(g.MaxDeliveryDelayAbs, g.MaxDeliveryDelayRel*directTravelTime)

	return &model.TransportationRequest{
		RequestID:             g.index,
		CreationTime:          g.now,
		Origin:                origin,
		Destination:           destination,
		PickupTimeWindowMin:   pickupMin,
		PickupTimeWindowMax:   pickupMax,
		DeliveryTimeWindowMin: pickupMin,
		DeliveryTimeWindowMax: deliveryMax,
	}, true
}

// SliceGenerator replays a pre-built, already-sorted sequence of requests.
// Useful for scenario files and for tests that need exact, reproducible
// input.
type SliceGenerator struct {
	Requests []model.Request
	pos      int
}

func NewSliceGenerator(requests []model.Request) *SliceGenerator {
	return &SliceGenerator{Requests: requests}
}

func (g *SliceGenerator) Next() (model.Request, bool) {
	if g.pos >= len(g.Requests) {
		return nil, false
	}
	req := g.Requests[g.pos]
	g.pos++
	return req, true
}

// Take draws n requests from g, stopping early if g is exhausted first.
func Take(g Generator, n int) []model.Request {
	out := make([]model.Request, 0, n)
	for i := 0; i < n; i++ {
		req, ok := g.Next()
		if !ok {
			break
		}
		out = append(out, req)
	}
	return out
}
