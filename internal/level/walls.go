package level

import (
	"fmt"

	"github.com/TR-Jackson/collisions-game/internal/geom"
	"github.com/TR-Jackson/collisions-game/internal/physics"
)

// BoundaryWalls returns the four walls of a width x height arena with its
// origin at the top-left corner: top, left, bottom, right. Each wall extends
// margin past both corners so a disc sliding along one edge still meets the
// perpendicular wall.
func BoundaryWalls(width, height, margin float64) ([]physics.Wall, error) {
	corner := geom.V(width, height)
	defs := []struct {
		anchor geom.Vec
		dir    geom.Vec
		length float64
	}{
		{geom.Vec{}, geom.V(1, 0), width},
		{geom.Vec{}, geom.V(0, 1), height},
		{corner, geom.V(-1, 0), width},
		{corner, geom.V(0, -1), height},
	}

	walls := make([]physics.Wall, 0, len(defs))
	for _, d := range defs {
		w, err := physics.NewWall(d.anchor, d.dir, -margin, d.length+margin)
		if err != nil {
			return nil, fmt.Errorf("boundary walls %vx%v: %w", width, height, err)
		}
		walls = append(walls, w)
	}
	return walls, nil
}
