// Package loop drives a game at a fixed cadence: Input → Tick → Snapshot.
package loop

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TR-Jackson/collisions-game/internal/level"
	"github.com/TR-Jackson/collisions-game/internal/session"
)

// Outcome is why a run stopped.
type Outcome string

const (
	OutcomeGameOver  Outcome = "game_over"
	OutcomeTickLimit Outcome = "tick_limit"
	OutcomeCancelled Outcome = "cancelled"
)

// Options configures a Runner.
type Options struct {
	Interval time.Duration // Time between ticks; 0 runs ticks back to back
	MaxTicks int           // Stop after this many ticks; 0 means no limit
	RunID    string        // Defaults to a random UUID
	Logger   *zap.Logger
}

// Snapshot is an immutable view of the game after a tick, for renderers and
// pilots. It is replaced, never modified.
type Snapshot struct {
	Tick          int
	Level         int
	ElapsedMillis int
	Score         int
	State         session.State
	Paused        bool
	World         level.Snapshot
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Ticks   int
	Level   int
	Score   int
	Outcome Outcome
	Totals  session.Totals
}

// Runner owns a game and is the only goroutine that ticks it. Pause, Resume
// and Snapshot may be called from any goroutine.
type Runner struct {
	id       string
	game     *session.Game
	pilot    Pilot
	interval time.Duration
	maxTicks int
	log      *zap.Logger

	ticks     int
	wantPause atomic.Bool
	snapshot  atomic.Pointer[Snapshot]
}

// NewRunner creates a runner. A nil pilot never thrusts.
func NewRunner(game *session.Game, pilot Pilot, opts Options) *Runner {
	if pilot == nil {
		pilot = IdlePilot{}
	}
	id := opts.RunID
	if id == "" {
		id = uuid.NewString()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		id:       id,
		game:     game,
		pilot:    pilot,
		interval: opts.Interval,
		maxTicks: opts.MaxTicks,
		log:      log.With(zap.String("run_id", id)),
	}
}

func (r *Runner) ID() string { return r.id }

// Pause asks the runner to stop advancing the game. Takes effect before the
// next tick; physics state is not touched.
func (r *Runner) Pause() { r.wantPause.Store(true) }

// Resume undoes Pause.
func (r *Runner) Resume() { r.wantPause.Store(false) }

// Snapshot returns the latest published snapshot, or nil before the first.
func (r *Runner) Snapshot() *Snapshot { return r.snapshot.Load() }

// Run starts the game if it is idle and ticks it until game over, the tick
// limit, or ctx cancellation. Cancellation is a normal stop: the last
// completed tick stands and the summary reports OutcomeCancelled. Calling
// Run again on a playing game continues where it stopped.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.game.State() != session.StatePlaying {
		if err := r.game.Start(); err != nil {
			return r.summary(OutcomeCancelled), err
		}
	}
	r.publish()
	r.log.Info("run started",
		zap.Duration("interval", r.interval),
		zap.Int("max_ticks", r.maxTicks),
		zap.Int("level", r.game.LevelNumber()))

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if r.maxTicks > 0 && r.ticks >= r.maxTicks {
			return r.finish(OutcomeTickLimit), nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return r.finish(OutcomeCancelled), nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return r.finish(OutcomeCancelled), nil
		}

		over, err := r.step()
		if err != nil {
			r.log.Error("tick failed", zap.Error(err))
			return r.finish(OutcomeCancelled), err
		}
		if over {
			return r.finish(OutcomeGameOver), nil
		}
	}
}

// step applies any pause request and runs one tick unless paused.
func (r *Runner) step() (gameOver bool, err error) {
	if paused := r.wantPause.Load(); paused != r.game.Paused() {
		if paused {
			r.game.Pause()
		} else {
			r.game.Resume()
		}
		r.log.Debug("pause toggled", zap.Bool("paused", paused), zap.Int("tick", r.ticks))
		r.publish()
	}
	if r.game.Paused() {
		if r.interval == 0 {
			// nothing else will wake a batch run
			time.Sleep(time.Millisecond)
		}
		return false, nil
	}

	ctl := r.pilot.Controls(r.Snapshot())
	ev, err := r.game.Tick(ctl)
	if err != nil {
		return false, err
	}
	r.ticks++
	r.publish()

	switch ev {
	case session.EventLevelComplete:
		r.log.Info("level complete", zap.Int("tick", r.ticks), zap.Int("next_level", r.game.LevelNumber()))
	case session.EventGameOver:
		return true, nil
	}
	return false, nil
}

func (r *Runner) publish() {
	var world level.Snapshot
	if lvl := r.game.Level(); lvl != nil {
		world = lvl.Snapshot()
	}
	r.snapshot.Store(&Snapshot{
		Tick:          r.ticks,
		Level:         r.game.LevelNumber(),
		ElapsedMillis: r.game.ElapsedMillis(),
		Score:         r.game.Score(),
		State:         r.game.State(),
		Paused:        r.game.Paused(),
		World:         world,
	})
}

func (r *Runner) finish(outcome Outcome) Summary {
	s := r.summary(outcome)
	r.log.Info("run finished",
		zap.String("outcome", string(s.Outcome)),
		zap.Int("ticks", s.Ticks),
		zap.Int("level", s.Level),
		zap.Int("score", s.Score),
		zap.Int("wall_hits", s.Totals.Walls),
		zap.Int("corner_hits", s.Totals.Corners),
		zap.Int("pair_hits", s.Totals.Pairs))
	return s
}

func (r *Runner) summary(outcome Outcome) Summary {
	return Summary{
		RunID:   r.id,
		Ticks:   r.ticks,
		Level:   r.game.LevelNumber(),
		Score:   r.game.Score(),
		Outcome: outcome,
		Totals:  r.game.Totals(),
	}
}
