package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvLogLevel     = "COLLISIONS_LOG_LEVEL"
	EnvTickInterval = "COLLISIONS_TICK_INTERVAL"
	EnvSSHHost      = "SSH_HOST"
	EnvSSHPort      = "SSH_PORT"
	EnvSSHHostKey   = "SSH_HOST_KEY"
)

var ErrInvalid = errors.New("invalid config")

// Config holds every tunable parameter.
type Config struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Player   PlayerConfig   `yaml:"player"`
	Obstacle ObstacleConfig `yaml:"obstacle"`
	Timing   TimingConfig   `yaml:"timing"`
	Log      LogConfig      `yaml:"log"`
	SSH      SSHConfig      `yaml:"ssh"`
}

// ArenaConfig sets the level bounds. Walls run along the edges and reach
// WallMargin past each corner.
type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	WallMargin float64 `yaml:"wall_margin"`
}

// PlayerConfig sets the player's start state and thrust.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
	Thrust float64 `yaml:"thrust"` // Force per held direction
}

type ObstacleConfig struct {
	Mass        float64 `yaml:"mass"`
	Radius      float64 `yaml:"radius"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// TimingConfig separates the game clock from wall-clock cadence.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"` // Real time between ticks
	TickMillis   int           `yaml:"tick_millis"`   // Game clock advance per tick
	GraceMillis  int           `yaml:"grace_millis"`  // Invulnerability at level start
	LevelMillis  int           `yaml:"level_millis"`  // Level length
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SSHConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Default returns the stock configuration: a 600x300 arena, a 5 ms tick,
// 1.5 s of invulnerability and 5 s levels.
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:      600,
			Height:     300,
			WallMargin: 10,
		},
		Player: PlayerConfig{
			X:      20,
			Y:      150,
			VX:     1,
			VY:     0,
			Mass:   1,
			Radius: 10,
			Thrust: 0.05,
		},
		Obstacle: ObstacleConfig{
			Mass:        1,
			Radius:      10,
			MaxAttempts: 10000,
		},
		Timing: TimingConfig{
			TickInterval: 5 * time.Millisecond,
			TickMillis:   5,
			GraceMillis:  1500,
			LevelMillis:  5000,
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: ".ssh/collisions_host_key",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// non-empty) and then with environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() error {
	c.Log.Level = GetEnv(EnvLogLevel, c.Log.Level)
	c.SSH.Host = GetEnv(EnvSSHHost, c.SSH.Host)
	c.SSH.Port = GetEnv(EnvSSHPort, c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv(EnvSSHHostKey, c.SSH.HostKeyPath)

	interval, err := GetEnvDuration(EnvTickInterval, c.Timing.TickInterval)
	if err != nil {
		return fmt.Errorf("config env: %w", err)
	}
	c.Timing.TickInterval = interval
	return nil
}

// Validate checks that values are usable by the simulation.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena %vx%v", c.Arena.Width, c.Arena.Height)
	check(c.Arena.WallMargin >= 0, "arena.wall_margin %v", c.Arena.WallMargin)
	check(c.Player.Mass > 0, "player.mass %v", c.Player.Mass)
	check(c.Player.Radius > 0, "player.radius %v", c.Player.Radius)
	check(c.Player.Thrust >= 0, "player.thrust %v", c.Player.Thrust)
	check(c.Obstacle.Mass > 0, "obstacle.mass %v", c.Obstacle.Mass)
	check(c.Obstacle.Radius > 0, "obstacle.radius %v", c.Obstacle.Radius)
	check(c.Obstacle.MaxAttempts > 0, "obstacle.max_attempts %d", c.Obstacle.MaxAttempts)
	check(c.Timing.TickInterval > 0, "timing.tick_interval %v", c.Timing.TickInterval)
	check(c.Timing.TickMillis > 0, "timing.tick_millis %d", c.Timing.TickMillis)
	check(c.Timing.GraceMillis >= 0, "timing.grace_millis %d", c.Timing.GraceMillis)
	check(c.Timing.LevelMillis > 0, "timing.level_millis %d", c.Timing.LevelMillis)

	return errors.Join(errs...)
}
