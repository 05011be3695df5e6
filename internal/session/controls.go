package session

import "github.com/TR-Jackson/collisions-game/internal/geom"

// Controls are the directions held by the player this tick.
type Controls struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Force returns the thrust for the held directions. The arena uses screen
// coordinates, so Up is -y. Opposite directions cancel.
func (c Controls) Force(thrust float64) geom.Vec {
	var f geom.Vec
	if c.Up {
		f.Y -= thrust
	}
	if c.Down {
		f.Y += thrust
	}
	if c.Left {
		f.X -= thrust
	}
	if c.Right {
		f.X += thrust
	}
	return f
}
