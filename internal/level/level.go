// Package level owns the bodies and walls of one level and advances them a
// tick at a time.
package level

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/TR-Jackson/collisions-game/internal/geom"
	"github.com/TR-Jackson/collisions-game/internal/physics"
)

var (
	ErrPlacementExhausted = errors.New("no free position for obstacle")
	ErrArenaTooSmall      = errors.New("arena too small for body radius")
)

// BodySpec describes the initial state of a body.
type BodySpec struct {
	Position geom.Vec
	Velocity geom.Vec
	Mass     float64
	Radius   float64
}

// ObstacleSpec describes how a level's obstacles are generated.
type ObstacleSpec struct {
	Count       int
	Radius      float64
	Mass        float64
	MaxSpeed    float64 // Upper bound for each velocity component
	MaxAttempts int     // Rejected candidates tolerated per obstacle
}

// Params configures a level.
type Params struct {
	Width      float64
	Height     float64
	WallMargin float64 // Walls extend this far past the arena corners
	Player     BodySpec
	Obstacles  ObstacleSpec
}

// Report summarizes one tick.
type Report struct {
	GameOver   bool // Player touched an obstacle while vulnerable
	WallHits   int
	CornerHits int
	PairHits   int
}

// Level is the tick coordinator for one level. The player is the primary
// body; obstacles are secondary bodies in creation order.
type Level struct {
	player       *physics.Body
	obstacles    []*physics.Body
	bodies       []*physics.Body // player first, then obstacles
	walls        []physics.Wall
	invulnerable bool

	resolved []bool // per-tick resolution flags, indexed like bodies

	pairResolver physics.PairResolver
	wallResolver physics.WallResolver
}

// New builds a level: boundary walls, the player, then obstacles placed so
// that none overlaps or meets an already placed body within its first tick.
// Levels start invulnerable.
func New(p Params, rng *rand.Rand) (*Level, error) {
	walls, err := BoundaryWalls(p.Width, p.Height, p.WallMargin)
	if err != nil {
		return nil, err
	}

	player, err := physics.NewBody(p.Player.Position, p.Player.Velocity, p.Player.Mass, p.Player.Radius)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	obstacles, err := placeObstacles(rng, p.Obstacles, p.Width, p.Height, []*physics.Body{player})
	if err != nil {
		return nil, err
	}

	return newLevel(player, obstacles, walls), nil
}

// NewWithBodies builds a level from explicit bodies and walls.
func NewWithBodies(player *physics.Body, obstacles []*physics.Body, walls []physics.Wall) *Level {
	return newLevel(player, obstacles, walls)
}

func newLevel(player *physics.Body, obstacles []*physics.Body, walls []physics.Wall) *Level {
	bodies := make([]*physics.Body, 0, len(obstacles)+1)
	bodies = append(bodies, player)
	bodies = append(bodies, obstacles...)

	return &Level{
		player:       player,
		obstacles:    obstacles,
		bodies:       bodies,
		walls:        walls,
		invulnerable: true,
		resolved:     make([]bool, len(bodies)),
		pairResolver: physics.PairResolver{Restitution: physics.Restitution},
		wallResolver: physics.WallResolver{Restitution: physics.Restitution},
	}
}

func (l *Level) Player() *physics.Body { return l.player }

func (l *Level) Obstacles() []*physics.Body { return l.obstacles }

func (l *Level) Walls() []physics.Wall { return l.walls }

// ApplyForce sets the player's force for the next tick.
func (l *Level) ApplyForce(f geom.Vec) {
	l.player.ApplyForce(f)
}

// SetInvulnerable toggles whether touching an obstacle ends the game.
// Momentum exchange is unaffected.
func (l *Level) SetInvulnerable(inv bool) {
	l.invulnerable = inv
}

func (l *Level) Invulnerable() bool { return l.invulnerable }

// Tick advances the level by one step.
//
// Every body integrates its force into a trajectory. If the vulnerable
// player's trajectory meets any obstacle the tick stops there and reports
// GameOver with no body moved. Otherwise each body, player first, resolves
// at most one collision: walls first (two walls at once invert the
// velocity), then the first unresolved body it meets, else it moves freely.
// A body's partner is resolved with it and skipped later in the tick.
func (l *Level) Tick() Report {
	for _, b := range l.bodies {
		b.Integrate()
	}

	if !l.invulnerable && l.playerHit() {
		return Report{GameOver: true}
	}

	clear(l.resolved)
	var rep Report
	for i, b := range l.bodies {
		if l.resolved[i] {
			continue
		}
		l.resolved[i] = true

		if l.resolveWalls(b, &rep) {
			continue
		}
		if l.resolvePair(i, b, &rep) {
			continue
		}
		b.Move()
	}
	return rep
}

// playerHit checks the player's full-tick trajectory against every obstacle.
func (l *Level) playerHit() bool {
	for _, o := range l.obstacles {
		if _, hit := l.player.CollideWith(o.Trajectory(), o.Radius()); hit {
			return true
		}
	}
	return false
}

type wallHit struct {
	wall    physics.Wall
	contact physics.WallContact
}

// resolveWalls records up to two wall hits in wall order and resolves them.
func (l *Level) resolveWalls(b *physics.Body, rep *Report) bool {
	var hits [2]wallHit
	n := 0
	traj := b.Trajectory()
	for _, w := range l.walls {
		if n == len(hits) {
			break
		}
		if c, ok := w.Collide(traj, b.Radius()); ok {
			hits[n] = wallHit{wall: w, contact: c}
			n++
		}
	}

	switch n {
	case 0:
		return false
	case 1:
		l.wallResolver.Resolve(b, hits[0].wall, hits[0].contact)
		rep.WallHits++
	default:
		first := hits[0]
		if hits[1].contact.Time < first.contact.Time {
			first = hits[1]
		}
		physics.Invert(b, first.contact)
		rep.CornerHits++
	}
	return true
}

// resolvePair resolves b against the first later body it meets this tick.
func (l *Level) resolvePair(i int, b *physics.Body, rep *Report) bool {
	for j := i + 1; j < len(l.bodies); j++ {
		if l.resolved[j] {
			continue
		}
		other := l.bodies[j]
		c, ok := b.CollideWith(other.Trajectory(), other.Radius())
		if !ok {
			continue
		}
		l.pairResolver.Resolve(b, other, c)
		l.resolved[j] = true
		rep.PairHits++
		return true
	}
	return false
}
