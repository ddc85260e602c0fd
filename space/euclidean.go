package space

import "math"

// Euclidean1D is R with a constant-velocity metric. Grounded in
// ridepy.util.spaces.Euclidean1D.
type Euclidean1D struct {
	Velocity float64
}

// NewEuclidean1D returns a Euclidean1D space with the given velocity. A
// non-positive velocity is replaced with 1, matching the teacher's pattern
// of clamping user-supplied rates (model.Bus.SetSpeedKmph) rather than
// propagating a divide-by-zero.
func NewEuclidean1D(velocity float64) *Euclidean1D {
	if velocity <= 0 {
		velocity = 1
	}
	return &Euclidean1D{Velocity: velocity}
}

func (s *Euclidean1D) D(u, v Location) float64 {
	return math.Abs(v.(float64) - u.(float64))
}

func (s *Euclidean1D) T(u, v Location) float64 {
	return s.D(u, v) / s.Velocity
}

func (s *Euclidean1D) InterpTime(u, v Location, timeToDest float64) (Location, float64) {
	uf, vf := u.(float64), v.(float64)
	total := s.T(u, v)
	if total == 0 {
		return vf, 0
	}
	return vf - (vf-uf)*timeToDest/total, 0
}

func (s *Euclidean1D) RandomPoint(rng Rand) Location {
	return rng.Float64()
}

// Point2D is a location in R^2.
type Point2D [2]float64

// Euclidean2D is R^2 with the L2 metric and a constant velocity. Grounded in
// ridepy.util.spaces.Euclidean2D.
type Euclidean2D struct {
	Velocity   float64
	CoordRange [2][2]float64 // [dim][min,max], used only by RandomPoint
}

func NewEuclidean2D(velocity float64, coordRange [2][2]float64) *Euclidean2D {
	if velocity <= 0 {
		velocity = 1
	}
	return &Euclidean2D{Velocity: velocity, CoordRange: coordRange}
}

func (s *Euclidean2D) D(u, v Location) float64 {
	up, vp := u.(Point2D), v.(Point2D)
	dx, dy := vp[0]-up[0], vp[1]-up[1]
	return math.Sqrt(dx*dx + dy*dy)
}

func (s *Euclidean2D) T(u, v Location) float64 {
	return s.D(u, v) / s.Velocity
}

func (s *Euclidean2D) InterpTime(u, v Location, timeToDest float64) (Location, float64) {
	up, vp := u.(Point2D), v.(Point2D)
	total := s.T(u, v)
	if total == 0 {
		return vp, 0
	}
	frac := timeToDest / total
	return Point2D{
		vp[0] - (vp[0]-up[0])*frac,
		vp[1] - (vp[1]-up[1])*frac,
	}, 0
}

func (s *Euclidean2D) RandomPoint(rng Rand) Location {
	cr := s.CoordRange
	x := cr[0][0] + rng.Float64()*(cr[0][1]-cr[0][0])
	y := cr[1][0] + rng.Float64()*(cr[1][1]-cr[1][0])
	return Point2D{x, y}
}

// Manhattan2D is R^2 with the L1-induced metric. Grounded in
// ridepy.util.spaces.Manhattan2D.
type Manhattan2D struct {
	Velocity   float64
	CoordRange [2][2]float64
}

func NewManhattan2D(velocity float64, coordRange [2][2]float64) *Manhattan2D {
	if velocity <= 0 {
		velocity = 1
	}
	return &Manhattan2D{Velocity: velocity, CoordRange: coordRange}
}

func (s *Manhattan2D) D(u, v Location) float64 {
	up, vp := u.(Point2D), v.(Point2D)
	return math.Abs(up[0]-vp[0]) + math.Abs(up[1]-vp[1])
}

func (s *Manhattan2D) T(u, v Location) float64 {
	return s.D(u, v) / s.Velocity
}

func (s *Manhattan2D) InterpTime(u, v Location, timeToDest float64) (Location, float64) {
	up, vp := u.(Point2D), v.(Point2D)
	total := s.T(u, v)
	if total == 0 {
		return vp, 0
	}
	frac := timeToDest / total
	return Point2D{
		vp[0] - (vp[0]-up[0])*frac,
		vp[1] - (vp[1]-up[1])*frac,
	}, 0
}

func (s *Manhattan2D) RandomPoint(rng Rand) Location {
	cr := s.CoordRange
	x := cr[0][0] + rng.Float64()*(cr[0][1]-cr[0][0])
	y := cr[1][0] + rng.Float64()*(cr[1][1]-cr[1][0])
	return Point2D{x, y}
}
