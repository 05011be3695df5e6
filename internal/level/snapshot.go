package level

import "github.com/TR-Jackson/collisions-game/internal/geom"

// BodyState is a read-only copy of a body for renderers and other observers.
type BodyState struct {
	Position geom.Vec
	Velocity geom.Vec
	Radius   float64
}

// Snapshot is an immutable copy of the level state after a tick.
type Snapshot struct {
	Player       BodyState
	Obstacles    []BodyState
	Invulnerable bool
}

// Snapshot copies the current body states.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Player:       stateOf(l.player.Position(), l.player.Velocity(), l.player.Radius()),
		Obstacles:    make([]BodyState, len(l.obstacles)),
		Invulnerable: l.invulnerable,
	}
	for i, o := range l.obstacles {
		s.Obstacles[i] = stateOf(o.Position(), o.Velocity(), o.Radius())
	}
	return s
}

func stateOf(pos, vel geom.Vec, radius float64) BodyState {
	return BodyState{Position: pos, Velocity: vel, Radius: radius}
}
