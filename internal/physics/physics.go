// Package physics provides continuous collision detection and response for
// circular bodies moving among static walls.
//
// Every query works on one tick's trajectory: a body at position p with
// velocity v sweeps the segment p + t*v for t in [0,1). Times of impact are
// fractions of that tick.
package physics

import (
	"errors"

	"github.com/TR-Jackson/collisions-game/internal/geom"
)

// Restitution is the coefficient used by the simulation's resolvers.
// 1 is perfectly elastic.
const Restitution = 1.0

var (
	ErrInvalidMass   = errors.New("mass must be positive and finite")
	ErrInvalidRadius = errors.New("radius must be positive and finite")
	ErrNonFinite     = errors.New("vector component is not finite")
	ErrZeroDirection = errors.New("wall direction must be non-zero")
	ErrInvalidDomain = errors.New("wall domain start must not exceed end")
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b geom.Vec) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b geom.Vec) float64 {
	return b.Sub(a).LenSq()
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(a geom.Vec, ra float64, b geom.Vec, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// earliestInTick returns the smallest candidate in [0,1).
func earliestInTick(candidates ...float64) (float64, bool) {
	best, found := 0.0, false
	for _, t := range candidates {
		if t < 0 || t >= 1 {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	return best, found
}
