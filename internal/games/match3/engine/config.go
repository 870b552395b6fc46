package engine

import (
	"errors"
	"fmt"
	"time"
)

// Defaults taken from the classic timed mode.
const (
	DefaultWidth           = 8
	DefaultHeight          = 8
	DefaultTileTypes       = 5
	DefaultScorePerCascade = 30
	DefaultTargetScore     = 700
	DefaultDuration        = 100 * time.Second
)

// Configuration errors. Validate wraps them with details.
var (
	ErrTooFewTileTypes = errors.New("engine: at least 3 tile types are required")
	ErrTooManyTypes    = errors.New("engine: too many tile types")
	ErrBoardTooSmall   = errors.New("engine: board cannot hold a playable position")
	ErrBadScoring      = errors.New("engine: score per cascade must be positive")
	ErrBadTarget       = errors.New("engine: target score must not be negative")
	ErrBadDuration     = errors.New("engine: round duration must be positive")
)

// Config is the static configuration of a board and its session.
type Config struct {
	Width             int
	Height            int
	TileTypes         int
	ScorePerCascade   int
	TargetScore       int
	Duration          time.Duration
	NoStartingMatches bool
}

// DefaultConfig returns the classic 8x8, 100 second, 700 point round.
func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		TileTypes:         DefaultTileTypes,
		ScorePerCascade:   DefaultScorePerCascade,
		TargetScore:       DefaultTargetScore,
		Duration:          DefaultDuration,
		NoStartingMatches: true,
	}
}

// Validate checks the preconditions the playability repair loop relies on:
// at least 3 tile types, and at least a 3x2 or 2x3 board. A narrower board
// can never hold a position with a legal move and no standing match.
func (c Config) Validate() error {
	if c.TileTypes < MinRun {
		return fmt.Errorf("%w: got %d", ErrTooFewTileTypes, c.TileTypes)
	}
	if c.TileTypes > 256 {
		return fmt.Errorf("%w: got %d, max 256", ErrTooManyTypes, c.TileTypes)
	}
	long, short := c.Width, c.Height
	if short > long {
		long, short = short, long
	}
	if long < MinRun || short < 2 {
		return fmt.Errorf("%w: %dx%d, need at least 3x2", ErrBoardTooSmall, c.Width, c.Height)
	}
	if c.ScorePerCascade <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadScoring, c.ScorePerCascade)
	}
	if c.TargetScore < 0 {
		return fmt.Errorf("%w: got %d", ErrBadTarget, c.TargetScore)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: got %s", ErrBadDuration, c.Duration)
	}
	return nil
}
