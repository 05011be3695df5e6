package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TR-Jackson/collisions-game/internal/config"
	internallog "github.com/TR-Jackson/collisions-game/internal/logging"
	"github.com/TR-Jackson/collisions-game/internal/loop"
	"github.com/TR-Jackson/collisions-game/internal/session"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := internallog.NewStderr(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := serve(cfg, log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func serve(cfg config.Config, log *zap.Logger) error {
	addr := net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)
	workingDir, err := os.Getwd()
	if err != nil {
		log.Warn("failed to get working directory", zap.Error(err))
	}
	log.Info("ssh config",
		zap.String("addr", addr),
		zap.String("host_key_path", cfg.SSH.HostKeyPath),
		zap.String("working_dir", workingDir))

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			runMiddleware(cfg, log),
			logging.Middleware(),
		),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting ssh server", zap.String("addr", addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// runMiddleware runs one headless game per session and writes a report.
// The run stops early if the client disconnects.
func runMiddleware(cfg config.Config, log *zap.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			id := uuid.NewString()
			slog := log.With(zap.String("session_id", id), zap.String("user", sess.User()))

			req, err := parseRunRequest(sess.Command())
			if err != nil {
				wish.Errorln(sess, err)
				wish.Errorln(sess, "usage: run [seed=N] [ticks=N] [pilot=idle|random|evade]")
				_ = sess.Exit(2)
				return
			}

			sum, err := simulate(sess.Context(), cfg, req, id, slog)
			if err != nil {
				slog.Error("run failed", zap.Error(err))
				wish.Errorln(sess, "run failed:", err)
				_ = sess.Exit(1)
				return
			}
			writeReport(sess, req, sum)
			next(sess)
		}
	}
}

func simulate(ctx context.Context, cfg config.Config, req runRequest, id string, log *zap.Logger) (loop.Summary, error) {
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pilot, err := loop.PilotByName(req.Pilot, seed)
	if err != nil {
		return loop.Summary{}, err
	}

	game := session.New(cfg, rand.New(rand.NewSource(seed)), session.WithLogger(log))
	r := loop.NewRunner(game, pilot, loop.Options{
		MaxTicks: req.Ticks,
		RunID:    id,
		Logger:   log,
	})
	return r.Run(ctx)
}

func writeReport(w io.Writer, req runRequest, sum loop.Summary) {
	fmt.Fprintf(w, "run:      %s\n", sum.RunID)
	fmt.Fprintf(w, "pilot:    %s\n", req.Pilot)
	fmt.Fprintf(w, "outcome:  %s\n", sum.Outcome)
	fmt.Fprintf(w, "ticks:    %d\n", sum.Ticks)
	fmt.Fprintf(w, "level:    %d\n", sum.Level)
	fmt.Fprintf(w, "score:    %d\n", sum.Score)
	fmt.Fprintf(w, "contacts: %d walls, %d corners, %d pairs\n",
		sum.Totals.Walls, sum.Totals.Corners, sum.Totals.Pairs)
}
