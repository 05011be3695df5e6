package physics

import (
	"fmt"
	"math"

	"github.com/TR-Jackson/collisions-game/internal/geom"
)

// Wall is the static segment anchor + λ*direction for λ in [start, end].
// Direction need not be unit length; λ is measured in multiples of it.
type Wall struct {
	anchor geom.Vec
	dir    geom.Vec
	start  float64
	end    float64
}

// WallContact describes a swept circle reaching a wall.
type WallContact struct {
	Time  float64  // Fraction of the tick in [0,1)
	Point geom.Vec // Centre of the circle at Time
}

// NewWall creates a wall.
func NewWall(anchor, dir geom.Vec, start, end float64) (Wall, error) {
	if !anchor.IsFinite() || !dir.IsFinite() {
		return Wall{}, fmt.Errorf("new wall: %w", ErrNonFinite)
	}
	if dir.IsZero() {
		return Wall{}, fmt.Errorf("new wall: %w", ErrZeroDirection)
	}
	if start > end || math.IsNaN(start) || math.IsNaN(end) {
		return Wall{}, fmt.Errorf("new wall: domain [%v, %v]: %w", start, end, ErrInvalidDomain)
	}
	return Wall{anchor: anchor, dir: dir, start: start, end: end}, nil
}

// Anchor returns the point at λ = 0.
func (w Wall) Anchor() geom.Vec { return w.anchor }

// Direction returns the wall's direction, not necessarily unit length.
func (w Wall) Direction() geom.Vec { return w.dir }

// Domain returns the wall's λ range.
func (w Wall) Domain() (start, end float64) { return w.start, w.end }

// PointAt returns anchor + λ*direction.
func (w Wall) PointAt(lambda float64) geom.Vec {
	return w.anchor.Add(w.dir.Scale(lambda))
}

// Collide finds when a circle of the given radius travelling along traj
// first comes within radius of the wall's line, then accepts the hit only
// if the centre's projection onto the wall at that time lies inside the
// domain. A trajectory parallel to the wall never hits.
func (w Wall) Collide(traj geom.Segment, radius float64) (WallContact, bool) {
	b := w.dir
	d := traj.Disp
	rel := traj.Origin.Sub(w.anchor)

	g := b.LenSq()
	offset := radius * math.Sqrt(g) // radius scaled by |b|
	side := b.Cross(rel)            // signed distance of the origin, times |b|
	rate := d.Cross(b)              // how fast that distance shrinks
	if rate == 0 {
		return WallContact{}, false
	}

	mu, ok := earliestInTick((offset+side)/rate, (side-offset)/rate)
	if !ok {
		return WallContact{}, false
	}

	lambda := (b.Dot(rel) + b.Dot(d)*mu) / g
	if lambda < w.start || lambda > w.end {
		return WallContact{}, false
	}
	return WallContact{Time: mu, Point: traj.At(mu)}, true
}
