// Package session runs a game: a sequence of timed levels with an
// invulnerability window at the start of each, ending when the player
// touches an obstacle.
package session

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/TR-Jackson/collisions-game/internal/config"
	"github.com/TR-Jackson/collisions-game/internal/geom"
	"github.com/TR-Jackson/collisions-game/internal/level"
)

// LevelBuilder builds level n, counting from 1.
type LevelBuilder func(n int) (*level.Level, error)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithLevelBuilder replaces the random level generator.
func WithLevelBuilder(b LevelBuilder) Option {
	return func(g *Game) { g.build = b }
}

// Game holds per-game state. It is not safe for concurrent use; the Runner
// serializes all calls.
type Game struct {
	cfg   config.Config
	rng   *rand.Rand
	log   *zap.Logger
	build LevelBuilder

	state    State
	levelNum int
	elapsed  int // Game clock within the current level, in ms
	cheat    bool
	paused   bool
	score    int
	totals   Totals
	level    *level.Level
}

// New creates an idle game. rng drives level generation.
func New(cfg config.Config, rng *rand.Rand, opts ...Option) *Game {
	g := &Game{
		cfg: cfg,
		rng: rng,
		log: zap.NewNop(),
	}
	g.build = g.randomLevel
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the level parameters for level n: n obstacles whose
// velocity components are below n.
func Params(cfg config.Config, n int) level.Params {
	return level.Params{
		Width:      cfg.Arena.Width,
		Height:     cfg.Arena.Height,
		WallMargin: cfg.Arena.WallMargin,
		Player: level.BodySpec{
			Position: geom.V(cfg.Player.X, cfg.Player.Y),
			Velocity: geom.V(cfg.Player.VX, cfg.Player.VY),
			Mass:     cfg.Player.Mass,
			Radius:   cfg.Player.Radius,
		},
		Obstacles: level.ObstacleSpec{
			Count:       n,
			Radius:      cfg.Obstacle.Radius,
			Mass:        cfg.Obstacle.Mass,
			MaxSpeed:    float64(n),
			MaxAttempts: cfg.Obstacle.MaxAttempts,
		},
	}
}

func (g *Game) randomLevel(n int) (*level.Level, error) {
	return level.New(Params(g.cfg, n), g.rng)
}

// Start begins a new game at level 1, discarding any previous game.
func (g *Game) Start() error {
	g.score = 0
	g.totals = Totals{}
	g.paused = false
	if err := g.enterLevel(1); err != nil {
		return err
	}
	g.state = StatePlaying
	return nil
}

func (g *Game) enterLevel(n int) error {
	lvl, err := g.build(n)
	if err != nil {
		return fmt.Errorf("build level %d: %w", n, err)
	}
	lvl.SetInvulnerable(true)

	g.level = lvl
	g.levelNum = n
	g.elapsed = 0
	g.cheat = false
	g.log.Info("level started", zap.Int("level", n), zap.Int("obstacles", len(lvl.Obstacles())))
	return nil
}

// Tick advances the game clock and the level by one step. It does nothing
// unless the game is playing and not paused.
func (g *Game) Tick(ctl Controls) (Event, error) {
	if g.state != StatePlaying || g.paused {
		return EventNone, nil
	}

	g.elapsed += g.cfg.Timing.TickMillis
	if g.elapsed >= g.cfg.Timing.GraceMillis && !g.cheat {
		g.level.SetInvulnerable(false)
	}

	g.level.ApplyForce(ctl.Force(g.cfg.Player.Thrust))
	rep := g.level.Tick()

	g.totals.Ticks++
	g.totals.Walls += rep.WallHits
	g.totals.Corners += rep.CornerHits
	g.totals.Pairs += rep.PairHits

	if rep.GameOver {
		g.state = StateOver
		g.score = g.runningScore()
		g.log.Info("game over",
			zap.Int("level", g.levelNum),
			zap.Int("elapsed_ms", g.elapsed),
			zap.Int("score", g.score))
		return EventGameOver, nil
	}

	if g.elapsed >= g.cfg.Timing.LevelMillis {
		g.log.Debug("level complete", zap.Int("level", g.levelNum))
		if err := g.enterLevel(g.levelNum + 1); err != nil {
			return EventNone, err
		}
		return EventLevelComplete, nil
	}
	return EventNone, nil
}

// SetCheat holds or releases the invulnerability cheat. Holding is only
// accepted once the level's grace window has passed. It reports whether
// the request changed anything.
func (g *Game) SetCheat(on bool) bool {
	if g.state != StatePlaying || g.elapsed < g.cfg.Timing.GraceMillis || g.cheat == on {
		return false
	}
	g.cheat = on
	g.level.SetInvulnerable(on)
	g.log.Debug("cheat", zap.Bool("held", on))
	return true
}

// Pause stops ticks from having any effect. Physics state is untouched.
func (g *Game) Pause() { g.paused = true }

// Resume continues from the last completed tick.
func (g *Game) Resume() { g.paused = false }

func (g *Game) Paused() bool { return g.paused }

func (g *Game) State() State { return g.state }

// LevelNumber returns the current level, counting from 1.
func (g *Game) LevelNumber() int { return g.levelNum }

// ElapsedMillis returns the game clock within the current level.
func (g *Game) ElapsedMillis() int { return g.elapsed }

// Level returns the current level, or nil before Start.
func (g *Game) Level() *level.Level { return g.level }

func (g *Game) Totals() Totals { return g.totals }

// Score is the total game time survived: full levels plus the current one.
// After game over it is frozen.
func (g *Game) Score() int {
	if g.state == StateOver {
		return g.score
	}
	return g.runningScore()
}

func (g *Game) runningScore() int {
	if g.levelNum == 0 {
		return 0
	}
	return (g.levelNum-1)*g.cfg.Timing.LevelMillis + g.elapsed
}
