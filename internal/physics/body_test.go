package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TR-Jackson/collisions-game/internal/geom"
)

func mustBody(t *testing.T, pos, vel geom.Vec, mass, radius float64) *Body {
	t.Helper()
	b, err := NewBody(pos, vel, mass, radius)
	require.NoError(t, err)
	return b
}

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name   string
		pos    geom.Vec
		mass   float64
		radius float64
		want   error
	}{
		{"zero_mass", geom.V(0, 0), 0, 1, ErrInvalidMass},
		{"negative_mass", geom.V(0, 0), -1, 1, ErrInvalidMass},
		{"infinite_mass", geom.V(0, 0), math.Inf(1), 1, ErrInvalidMass},
		{"zero_radius", geom.V(0, 0), 1, 0, ErrInvalidRadius},
		{"nan_radius", geom.V(0, 0), 1, math.NaN(), ErrInvalidRadius},
		{"nan_position", geom.V(math.NaN(), 0), 1, 1, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(tt.pos, geom.Vec{}, tt.mass, tt.radius)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBodyIntegrate(t *testing.T) {
	b := mustBody(t, geom.V(1, 1), geom.V(1, 0), 2, 1)
	b.ApplyForce(geom.V(2, -4))
	b.Integrate()

	assert.Equal(t, geom.V(2, -2), b.Velocity())
	assert.Equal(t, geom.Segment{Origin: geom.V(1, 1), Disp: geom.V(2, -2)}, b.Trajectory())
	assert.Equal(t, geom.V(1, 1), b.Position(), "integration must not move the body")

	b.Move()
	assert.Equal(t, geom.V(3, -1), b.Position())

	// the force persists until replaced
	b.Integrate()
	assert.Equal(t, geom.V(3, -4), b.Velocity())
}

func TestSweptCircles(t *testing.T) {
	tests := []struct {
		name     string
		velA     geom.Vec
		posB     geom.Vec
		velB     geom.Vec
		wantHit  bool
		wantTime float64
	}{
		{"closes_too_slowly", geom.V(5, 0), geom.V(10, 0), geom.Vec{}, false, 0},
		{"closes_within_tick", geom.V(8, 0), geom.V(10, 0), geom.Vec{}, true, 0.75},
		{"both_moving", geom.V(4, 0), geom.V(10, 0), geom.V(-4, 0), true, 0.75},
		{"same_velocity", geom.V(3, 3), geom.V(5, 0), geom.V(3, 3), false, 0},
		{"passes_beside", geom.V(20, 0), geom.V(10, 5), geom.Vec{}, false, 0},
		{"moving_apart", geom.V(-8, 0), geom.V(10, 0), geom.Vec{}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := geom.Segment{Origin: geom.V(0, 0), Disp: tt.velA}
			b := geom.Segment{Origin: tt.posB, Disp: tt.velB}
			c, hit := SweptCircles(a, 2, b, 2)
			require.Equal(t, tt.wantHit, hit)
			if !hit {
				return
			}
			assert.InDelta(t, tt.wantTime, c.Time, 1e-12)
			assert.InDelta(t, 4.0, Distance(c.A, c.B), 1e-9)
		})
	}
}

func TestBodyCollideWith(t *testing.T) {
	a := mustBody(t, geom.V(0, 0), geom.V(8, 0), 1, 2)
	b := mustBody(t, geom.V(10, 0), geom.Vec{}, 1, 2)
	a.Integrate()
	b.Integrate()

	c, hit := a.CollideWith(b.Trajectory(), b.Radius())
	require.True(t, hit)
	assert.InDelta(t, 0.75, c.Time, 1e-12)
	assert.Equal(t, geom.V(6, 0), c.A)
	assert.Equal(t, geom.V(10, 0), c.B)

	// the query is symmetric in time
	r, hit := b.CollideWith(a.Trajectory(), a.Radius())
	require.True(t, hit)
	assert.InDelta(t, c.Time, r.Time, 1e-12)
	assert.Equal(t, c.A, r.B)
}

func TestSweptCirclesMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for gap := 11.0; gap >= 4.5; gap -= 0.5 {
		a := geom.Segment{Origin: geom.Vec{}, Disp: geom.V(8, 1)}
		b := geom.Segment{Origin: geom.V(gap, 0), Disp: geom.V(-1, 0)}
		c, hit := SweptCircles(a, 2, b, 2)
		if !hit {
			continue
		}
		assert.LessOrEqual(t, c.Time, prev, "gap %v", gap)
		prev = c.Time
	}
	assert.Less(t, prev, 1.0, "expected at least one hit")
}

func TestSweptCirclesNoFalsePositives(t *testing.T) {
	// parallel tracks 5 apart never come within 4
	for speed := 1.0; speed <= 50; speed += 7 {
		a := geom.Segment{Origin: geom.Vec{}, Disp: geom.V(speed, 0)}
		b := geom.Segment{Origin: geom.V(3, 5), Disp: geom.V(-speed, 0)}
		_, hit := SweptCircles(a, 2, b, 2)
		assert.False(t, hit, "speed %v", speed)
	}
}

func TestDistanceHelpers(t *testing.T) {
	assert.Equal(t, 5.0, Distance(geom.V(0, 0), geom.V(3, 4)))
	assert.Equal(t, 25.0, DistanceSquared(geom.V(0, 0), geom.V(3, 4)))
	assert.True(t, CirclesOverlap(geom.V(0, 0), 3, geom.V(5, 0), 3))
	assert.False(t, CirclesOverlap(geom.V(0, 0), 2, geom.V(5, 0), 3), "touching is not overlapping")
}
