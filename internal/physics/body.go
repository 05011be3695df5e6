package physics

import (
	"fmt"
	"math"

	"github.com/TR-Jackson/collisions-game/internal/geom"
)

// Body is a moving circular entity.
type Body struct {
	pos    geom.Vec
	vel    geom.Vec
	force  geom.Vec // Force applied at the next Integrate
	mass   float64
	radius float64
	traj   geom.Segment // Path for the current tick, rebuilt by Integrate
}

// PairContact describes the first touch of two swept circles.
type PairContact struct {
	Time float64  // Fraction of the tick in [0,1)
	A    geom.Vec // Centre of the first circle at Time
	B    geom.Vec // Centre of the second circle at Time
}

// NewBody creates a body. Mass and radius must be positive.
func NewBody(pos, vel geom.Vec, mass, radius float64) (*Body, error) {
	if !pos.IsFinite() || !vel.IsFinite() {
		return nil, fmt.Errorf("new body: %w", ErrNonFinite)
	}
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("new body: mass %v: %w", mass, ErrInvalidMass)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("new body: radius %v: %w", radius, ErrInvalidRadius)
	}
	return &Body{
		pos:    pos,
		vel:    vel,
		mass:   mass,
		radius: radius,
		traj:   geom.Segment{Origin: pos, Disp: vel},
	}, nil
}

// Position returns the current centre.
func (b *Body) Position() geom.Vec { return b.pos }

// Velocity returns the current velocity in units per tick.
func (b *Body) Velocity() geom.Vec { return b.vel }

// Mass returns the body's mass, always positive.
func (b *Body) Mass() float64 { return b.mass }

// Radius returns the body's radius, always positive.
func (b *Body) Radius() float64 { return b.radius }

// Force returns the force that the next Integrate will apply.
func (b *Body) Force() geom.Vec { return b.force }

// Trajectory returns the segment the body sweeps this tick.
func (b *Body) Trajectory() geom.Segment { return b.traj }

// ApplyForce sets the force for the next tick's integration.
// The force persists until replaced.
func (b *Body) ApplyForce(f geom.Vec) {
	b.force = f
}

// Integrate turns the applied force into an acceleration, updates the
// velocity and rebuilds the trajectory for this tick.
func (b *Body) Integrate() {
	acc := b.force.Scale(1 / b.mass)
	b.vel = b.vel.Add(acc)
	b.traj = geom.Segment{Origin: b.pos, Disp: b.vel}
}

// Override replaces position and velocity, e.g. after a collision response.
func (b *Body) Override(pos, vel geom.Vec) {
	b.pos = pos
	b.vel = vel
}

// Move advances the body by its velocity for a full tick.
func (b *Body) Move() {
	b.pos = b.pos.Add(b.vel)
}

// CollideWith reports the earliest time this tick at which the body touches
// a circle of the given radius travelling along traj. In the returned
// contact, A is this body's centre and B the other's.
func (b *Body) CollideWith(traj geom.Segment, radius float64) (PairContact, bool) {
	return SweptCircles(b.traj, b.radius, traj, radius)
}

// SweptCircles solves |Δp + λΔv|² = (ra+rb)² for the earliest λ in [0,1),
// where Δp and Δv are the relative origin and displacement of b against a.
// Equal displacements never converge and report no contact.
func SweptCircles(a geom.Segment, ra float64, b geom.Segment, rb float64) (PairContact, bool) {
	dp := b.Origin.Sub(a.Origin)
	dv := b.Disp.Sub(a.Disp)
	if dv.IsZero() {
		return PairContact{}, false
	}

	reach := ra + rb
	qa := dv.LenSq()
	qb := 2 * dp.Dot(dv)
	qc := dp.LenSq() - reach*reach

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return PairContact{}, false
	}
	sq := math.Sqrt(disc)
	t, ok := earliestInTick((-qb+sq)/(2*qa), (-qb-sq)/(2*qa))
	if !ok {
		return PairContact{}, false
	}
	return PairContact{Time: t, A: a.At(t), B: b.At(t)}, true
}
