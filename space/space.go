// Package space implements the transport space abstraction consumed by the
// dispatcher and vehicle packages: distance, travel time, and interpolation
// along a path. See ridepy.data_structures.TransportSpace (original_source)
// for the reference semantics.
package space

// Location is an opaque value understood by a TransportSpace. Concrete
// spaces box a comparable underlying type (float64, [2]float64, int) so
// that Location equality via == is decidable, as required by the data
// model's Location contract.
type Location any

// TransportSpace is the capability interface the dispatcher and vehicle
// state depend on, and on nothing else.
type TransportSpace interface {
	// D returns the distance between u and v. D(u, u) == 0 for all u.
	D(u, v Location) float64
	// T returns the travel time between u and v.
	T(u, v Location) float64
	// InterpTime returns the intermediate location x such that
	// T(x, v) == timeToDest, plus a non-negative jumpTime expressing,
	// for discrete spaces, the residual time until x is actually
	// reached. jumpTime is always 0 for continuous spaces.
	InterpTime(u, v Location, timeToDest float64) (x Location, jumpTime float64)
	// RandomPoint returns a random point on the space. Used only by
	// request generators, never by the core dispatch/vehicle logic.
	RandomPoint(rng Rand) Location
}

// Rand is the minimal random source required by RandomPoint, satisfied by
// *math/rand.Rand. Spaces never reach for a package-level RNG so that
// simulations stay reproducible given a seed, matching the teacher's own
// practice of threading a *rand.Rand through model.BuildFleetBuses and
// sim.NewSimulator rather than using the default global source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
