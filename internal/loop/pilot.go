package loop

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/TR-Jackson/collisions-game/internal/geom"
	"github.com/TR-Jackson/collisions-game/internal/physics"
	"github.com/TR-Jackson/collisions-game/internal/session"
)

// ErrUnknownPilot is returned by PilotByName.
var ErrUnknownPilot = errors.New("unknown pilot")

// Pilot supplies the controls held during the next tick. The snapshot is the
// state after the previous tick and may be nil.
type Pilot interface {
	Controls(s *Snapshot) session.Controls
}

// IdlePilot never thrusts.
type IdlePilot struct{}

func (IdlePilot) Controls(*Snapshot) session.Controls { return session.Controls{} }

// RandomPilot holds a random direction for a random number of ticks, like a
// player mashing keys.
type RandomPilot struct {
	rng     *rand.Rand
	maxHold int
	left    int
	current session.Controls
}

// NewRandomPilot returns a pilot that changes direction at most every
// maxHold ticks.
func NewRandomPilot(seed int64, maxHold int) *RandomPilot {
	if maxHold < 1 {
		maxHold = 1
	}
	return &RandomPilot{rng: rand.New(rand.NewSource(seed)), maxHold: maxHold}
}

func (p *RandomPilot) Controls(*Snapshot) session.Controls {
	if p.left == 0 {
		p.current = session.Controls{
			Up:    p.rng.Intn(3) == 0,
			Down:  p.rng.Intn(3) == 0,
			Left:  p.rng.Intn(3) == 0,
			Right: p.rng.Intn(3) == 0,
		}
		p.left = 1 + p.rng.Intn(p.maxHold)
	}
	p.left--
	return p.current
}

// EvadePilot thrusts away from the nearest obstacle once it comes within
// Range of the player's edge.
type EvadePilot struct {
	Range float64
}

func (p EvadePilot) Controls(s *Snapshot) session.Controls {
	if s == nil || len(s.World.Obstacles) == 0 {
		return session.Controls{}
	}
	player := s.World.Player
	found := false
	var best float64
	var away geom.Vec
	for _, o := range s.World.Obstacles {
		gap := physics.Distance(player.Position, o.Position) - player.Radius - o.Radius
		if gap > p.Range {
			continue
		}
		if !found || gap < best {
			found, best, away = true, gap, player.Position.Sub(o.Position)
		}
	}
	if !found {
		return session.Controls{}
	}
	return session.Controls{
		Up:    away.Y < 0,
		Down:  away.Y > 0,
		Left:  away.X < 0,
		Right: away.X > 0,
	}
}

// PilotByName builds one of the named pilots: idle, random or evade.
func PilotByName(name string, seed int64) (Pilot, error) {
	switch name {
	case "", "idle":
		return IdlePilot{}, nil
	case "random":
		return NewRandomPilot(seed, 200), nil
	case "evade":
		return EvadePilot{Range: 40}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPilot, name)
	}
}
