package physics

import "github.com/TR-Jackson/collisions-game/internal/geom"

// OverlapsAny reports whether a candidate circle conflicts with any existing
// body: either the discs already overlap, or travelling at their current
// velocities they touch within the first tick. It reads the bodies'
// position and velocity, not their cached trajectory, and mutates nothing.
func OverlapsAny(pos, vel geom.Vec, radius float64, existing []*Body) bool {
	candidate := geom.Segment{Origin: pos, Disp: vel}
	for _, b := range existing {
		if CirclesOverlap(pos, radius, b.pos, b.radius) {
			return true
		}
		other := geom.Segment{Origin: b.pos, Disp: b.vel}
		if _, hit := SweptCircles(candidate, radius, other, b.radius); hit {
			return true
		}
	}
	return false
}
