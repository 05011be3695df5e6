package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TR-Jackson/collisions-game/internal/geom"
)

const tolerance = 1e-9

func assertVecInDelta(t *testing.T, want, got geom.Vec, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
}

func randVec(rng *rand.Rand, scale float64) geom.Vec {
	return geom.V((rng.Float64()*2-1)*scale, (rng.Float64()*2-1)*scale)
}

func TestElasticVelocitiesConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		ma := 0.1 + rng.Float64()*10
		mb := 0.1 + rng.Float64()*10
		ua := randVec(rng, 20)
		ub := randVec(rng, 20)
		ca := randVec(rng, 100)
		cb := ca.Add(randVec(rng, 1).Unit().Scale(1 + rng.Float64()*5))

		va, vb := ElasticVelocities(ma, mb, ua, ub, ca, cb, 1)

		// momentum
		before := ua.Scale(ma).Add(ub.Scale(mb))
		after := va.Scale(ma).Add(vb.Scale(mb))
		assertVecInDelta(t, before, after, tolerance*100, "case %d momentum", i)

		// kinetic energy
		keBefore := ma*ua.LenSq() + mb*ub.LenSq()
		keAfter := ma*va.LenSq() + mb*vb.LenSq()
		assert.InEpsilon(t, keBefore, keAfter, 1e-9, "case %d energy", i)

		// tangential components
		tangent := ca.Sub(cb).Unit().Perp()
		assert.InDelta(t, ua.Dot(tangent), va.Dot(tangent), tolerance*100, "case %d tangent a", i)
		assert.InDelta(t, ub.Dot(tangent), vb.Dot(tangent), tolerance*100, "case %d tangent b", i)
	}
}

func TestElasticVelocitiesInelastic(t *testing.T) {
	// head-on, equal masses, e = 0: both leave with the mean normal velocity
	va, vb := ElasticVelocities(1, 1, geom.V(4, 0), geom.V(0, 0), geom.V(0, 0), geom.V(2, 0), 0)
	assertVecInDelta(t, geom.V(2, 0), va, tolerance)
	assertVecInDelta(t, geom.V(2, 0), vb, tolerance)
}

func TestElasticVelocitiesCoincidentCentres(t *testing.T) {
	va, vb := ElasticVelocities(1, 1, geom.V(1, 2), geom.V(3, 4), geom.V(5, 5), geom.V(5, 5), 1)
	assert.Equal(t, geom.V(1, 2), va)
	assert.Equal(t, geom.V(3, 4), vb)
}

func TestPairResolverHeadOn(t *testing.T) {
	a := mustBody(t, geom.V(0, 0), geom.V(8, 0), 1, 2)
	b := mustBody(t, geom.V(10, 0), geom.Vec{}, 1, 2)
	a.Integrate()
	b.Integrate()

	c, hit := a.CollideWith(b.Trajectory(), b.Radius())
	require.True(t, hit)

	PairResolver{Restitution: Restitution}.Resolve(a, b, c)

	assertVecInDelta(t, geom.Vec{}, a.Velocity(), tolerance)
	assertVecInDelta(t, geom.V(8, 0), b.Velocity(), tolerance)
	assertVecInDelta(t, geom.V(6, 0), a.Position(), tolerance)
	assertVecInDelta(t, geom.V(12, 0), b.Position(), tolerance)
}

func TestPairResolverUnequalMasses(t *testing.T) {
	a := mustBody(t, geom.V(0, 0), geom.V(6, 0), 3, 1)
	b := mustBody(t, geom.V(4, 0), geom.Vec{}, 1, 1)
	a.Integrate()
	b.Integrate()

	c, hit := a.CollideWith(b.Trajectory(), b.Radius())
	require.True(t, hit)
	assert.InDelta(t, 1.0/3, c.Time, tolerance)

	PairResolver{Restitution: 1}.Resolve(a, b, c)

	// 1-D elastic: va = (ma-mb)/(ma+mb)*u, vb = 2ma/(ma+mb)*u
	assertVecInDelta(t, geom.V(3, 0), a.Velocity(), tolerance)
	assertVecInDelta(t, geom.V(9, 0), b.Velocity(), tolerance)
	assertVecInDelta(t, geom.V(2+3*2.0/3, 0), a.Position(), tolerance)
	assertVecInDelta(t, geom.V(4+9*2.0/3, 0), b.Position(), tolerance)
}

func TestReflectVelocity(t *testing.T) {
	tests := []struct {
		name string
		wall geom.Vec
		u    geom.Vec
		e    float64
		want geom.Vec
	}{
		{"into_floor", geom.V(1, 0), geom.V(0, 3), 1, geom.V(0, -3)},
		{"into_side", geom.V(0, 1), geom.V(-2, 5), 1, geom.V(2, 5)},
		{"reversed_direction", geom.V(-1, 0), geom.V(4, -3), 1, geom.V(4, 3)},
		{"non_unit_direction", geom.V(0, -7), geom.V(1, 1), 1, geom.V(-1, 1)},
		{"half_restitution", geom.V(1, 0), geom.V(2, -4), 0.5, geom.V(2, 2)},
		{"diagonal", geom.V(1, 1), geom.V(1, 0), 1, geom.V(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReflectVelocity(tt.wall, tt.u, tt.e)
			assertVecInDelta(t, tt.want, got, tolerance)
		})
	}
}

func TestReflectVelocityPreservesSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		w := randVec(rng, 10)
		if w.IsZero() {
			continue
		}
		u := randVec(rng, 20)
		v := ReflectVelocity(w, u, 1)

		assert.InEpsilon(t, u.Len(), v.Len(), 1e-9, "case %d speed", i)
		assert.InDelta(t, u.Dot(w), v.Dot(w), tolerance*100, "case %d along-wall", i)
		n := w.Perp()
		assert.InDelta(t, -u.Dot(n), v.Dot(n), tolerance*100, "case %d normal", i)
	}
}

func TestWallResolver(t *testing.T) {
	floor := mustWall(t, geom.V(0, 0), geom.V(1, 0), 0, 10)
	b := mustBody(t, geom.V(5, 5), geom.V(0, -8), 1, 2)
	b.Integrate()

	c, hit := floor.Collide(b.Trajectory(), b.Radius())
	require.True(t, hit)

	WallResolver{Restitution: Restitution}.Resolve(b, floor, c)

	assertVecInDelta(t, geom.V(0, 8), b.Velocity(), tolerance)
	assertVecInDelta(t, geom.V(5, 7), b.Position(), tolerance)
}

func TestInvert(t *testing.T) {
	b := mustBody(t, geom.V(1, 1), geom.V(-4, -2), 1, 1)
	Invert(b, WallContact{Time: 0.25, Point: geom.V(0, 0.5)})

	assert.Equal(t, geom.V(4, 2), b.Velocity())
	assertVecInDelta(t, geom.V(3, 2), b.Position(), tolerance)
	assert.False(t, math.IsNaN(b.Position().X))
}
