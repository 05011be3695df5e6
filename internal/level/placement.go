package level

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/TR-Jackson/collisions-game/internal/geom"
	"github.com/TR-Jackson/collisions-game/internal/physics"
)

// placeObstacles proposes random obstacles until spec.Count are placed.
// Positions are whole units inside the arena inset by the radius; velocity
// components are uniform in [0, MaxSpeed). A candidate conflicting with any
// body placed so far is discarded.
func placeObstacles(rng *rand.Rand, spec ObstacleSpec, width, height float64, placed []*physics.Body) ([]*physics.Body, error) {
	if spec.Count <= 0 {
		return nil, nil
	}

	minX, maxX := int(math.Ceil(spec.Radius)), int(math.Floor(width-spec.Radius))
	minY, maxY := int(math.Ceil(spec.Radius)), int(math.Floor(height-spec.Radius))
	if maxX < minX || maxY < minY {
		return nil, fmt.Errorf("obstacle radius %v in %vx%v: %w", spec.Radius, width, height, ErrArenaTooSmall)
	}

	existing := append([]*physics.Body(nil), placed...)
	obstacles := make([]*physics.Body, 0, spec.Count)

	for len(obstacles) < spec.Count {
		var pos, vel geom.Vec
		found := false
		for attempt := 0; attempt < spec.MaxAttempts; attempt++ {
			pos = geom.V(
				float64(minX+rng.Intn(maxX-minX+1)),
				float64(minY+rng.Intn(maxY-minY+1)),
			)
			vel = geom.V(rng.Float64()*spec.MaxSpeed, rng.Float64()*spec.MaxSpeed)
			if !physics.OverlapsAny(pos, vel, spec.Radius, existing) {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("obstacle %d of %d after %d attempts: %w",
				len(obstacles)+1, spec.Count, spec.MaxAttempts, ErrPlacementExhausted)
		}

		ob, err := physics.NewBody(pos, vel, spec.Mass, spec.Radius)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", len(obstacles)+1, err)
		}
		obstacles = append(obstacles, ob)
		existing = append(existing, ob)
	}
	return obstacles, nil
}
