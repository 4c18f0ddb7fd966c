package sim

import (
	"errors"
	"fmt"
	"math"

	"mad-pool/internal/geom"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// LimitPolicy decides what happens when a spawn would exceed MaxBalls.
type LimitPolicy string

const (
	LimitUnbounded   LimitPolicy = "unbounded"
	LimitReject      LimitPolicy = "reject"
	LimitEvictOldest LimitPolicy = "evict-oldest"
)

// BallSpec is the fixed shape and material of every spawned ball.
type BallSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

// Config holds the clock, world and lifecycle constants of a run.
type Config struct {
	Dt            float64     `yaml:"dt"`
	StepsPerFrame int         `yaml:"steps_per_frame"`
	Iterations    int         `yaml:"iterations"`
	Gravity       geom.Point  `yaml:"gravity"`
	DespawnY      float64     `yaml:"despawn_y"`
	Ball          BallSpec    `yaml:"ball"`
	MaxBalls      int         `yaml:"max_balls"`
	Limit         LimitPolicy `yaml:"limit"`
	// ScreenHeight converts screen y (down) to world y (up).
	ScreenHeight float64 `yaml:"screen_height"`
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		StepsPerFrame: 1,
		Iterations:    10,
		Gravity:       geom.Pt(0, -981),
		DespawnY:      -100,
		Ball:          BallSpec{Radius: 12, Mass: 10, Friction: 0.9, Elasticity: 0.95},
		Limit:         LimitUnbounded,
		ScreenHeight:  600,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	case c.StepsPerFrame < 1:
		return fmt.Errorf("%w: steps_per_frame must be at least 1, got %d", ErrInvalidConfig, c.StepsPerFrame)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	case !c.Gravity.Finite():
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	case math.IsNaN(c.DespawnY):
		return fmt.Errorf("%w: despawn_y is NaN", ErrInvalidConfig)
	case !(c.Ball.Radius > 0):
		return fmt.Errorf("%w: ball radius must be positive, got %v", ErrInvalidConfig, c.Ball.Radius)
	case !(c.Ball.Mass > 0):
		return fmt.Errorf("%w: ball mass must be positive, got %v", ErrInvalidConfig, c.Ball.Mass)
	case !finiteNonNegative(c.Ball.Friction) || !finiteNonNegative(c.Ball.Elasticity):
		return fmt.Errorf("%w: ball friction and elasticity must be finite and non-negative, got %v/%v",
			ErrInvalidConfig, c.Ball.Friction, c.Ball.Elasticity)
	case c.MaxBalls < 0:
		return fmt.Errorf("%w: max_balls must not be negative", ErrInvalidConfig)
	}
	switch c.Limit {
	case "", LimitUnbounded, LimitReject, LimitEvictOldest:
	default:
		return fmt.Errorf("%w: unknown limit policy %q", ErrInvalidConfig, c.Limit)
	}
	return nil
}

func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }
