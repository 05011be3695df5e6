package physics

import "github.com/TR-Jackson/collisions-game/internal/geom"

// PairResolver applies the collision response between two bodies.
type PairResolver struct {
	Restitution float64
}

// WallResolver applies the collision response between a body and a wall.
type WallResolver struct {
	Restitution float64
}

// Resolve sets both bodies' post-impact velocities and moves each from its
// impact centre for the rest of the tick. c must come from a.CollideWith on
// b's trajectory, so c.A belongs to a and c.B to b.
func (r PairResolver) Resolve(a, b *Body, c PairContact) {
	va, vb := ElasticVelocities(a.mass, b.mass, a.vel, b.vel, c.A, c.B, r.Restitution)
	rem := 1 - c.Time
	a.Override(c.A.Add(va.Scale(rem)), va)
	b.Override(c.B.Add(vb.Scale(rem)), vb)
}

// ElasticVelocities exchanges momentum along the line of centres ca-cb.
// Components along the common tangent are kept. With e = 1 both momentum
// and kinetic energy are conserved.
//
// Coincident centres have no line of centres; the velocities are returned
// unchanged.
func ElasticVelocities(ma, mb float64, ua, ub, ca, cb geom.Vec, e float64) (va, vb geom.Vec) {
	n := ca.Sub(cb)
	mod := n.Len()
	if mod == 0 {
		return ua, ub
	}
	n = n.Scale(1 / mod)
	t := n.Perp()

	una, uta := ua.Dot(n), ua.Dot(t)
	unb, utb := ub.Dot(n), ub.Dot(t)

	// momentum: ma*una + mb*unb = ma*vna + mb*vnb
	// restitution: vnb - vna = e*(una - unb)
	p := ma*una + mb*unb
	closing := e * (una - unb)
	total := ma + mb
	vna := (p - mb*closing) / total
	vnb := (p + ma*closing) / total

	va = n.Scale(vna).Add(t.Scale(uta))
	vb = n.Scale(vnb).Add(t.Scale(utb))
	return va, vb
}

// Resolve reflects the body off the wall and moves it from the impact centre
// for the rest of the tick.
func (r WallResolver) Resolve(b *Body, w Wall, c WallContact) {
	v := ReflectVelocity(w.dir, b.vel, r.Restitution)
	b.Override(c.Point.Add(v.Scale(1-c.Time)), v)
}

// ReflectVelocity solves u·w = v·w and v·I = -e(u·I) for v, where I is the
// in-plane normal of direction w. w must be non-zero.
func ReflectVelocity(w, u geom.Vec, e float64) geom.Vec {
	normal := w.Perp()
	along := u.Dot(w)
	across := normal.Dot(u)
	det := w.Cross(normal)

	return geom.Vec{
		X: (normal.Y*along + e*w.Y*across) / det,
		Y: (-normal.X*along - e*w.X*across) / det,
	}
}

// Invert reverses the body's velocity at the contact and moves it for the
// rest of the tick. Used when one tick's path crosses two walls at a corner.
func Invert(b *Body, c WallContact) {
	v := b.vel.Neg()
	b.Override(c.Point.Add(v.Scale(1-c.Time)), v)
}
