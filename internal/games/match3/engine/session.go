package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Outcome is the terminal result of a round.
type Outcome int

const (
	OutcomeNone Outcome = iota // round still running
	OutcomeWon
	OutcomeLost
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Clock is a pausable countdown. Start and Stop are idempotent.
type Clock struct {
	duration  time.Duration
	remaining time.Duration
	running   bool
}

// NewClock creates a stopped clock holding the full duration.
func NewClock(d time.Duration) *Clock {
	return &Clock{duration: d, remaining: d}
}

// Start resumes the countdown.
func (c *Clock) Start() {
	c.running = true
}

// Stop pauses the countdown.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether the clock is counting down.
func (c *Clock) Running() bool {
	return c.running
}

// Advance decrements the remaining time by dt while the clock runs.
// Non-positive dt is ignored, so remaining time never increases.
func (c *Clock) Advance(dt time.Duration) time.Duration {
	if c.running && dt > 0 {
		c.remaining -= dt
	}
	return c.remaining
}

// Remaining returns the time left, clamped at zero.
func (c *Clock) Remaining() time.Duration {
	return max(c.remaining, 0)
}

// Elapsed returns how much of the duration has been consumed.
func (c *Clock) Elapsed() time.Duration {
	return c.duration - c.Remaining()
}

// Expired reports whether the countdown reached zero.
func (c *Clock) Expired() bool {
	return c.remaining <= 0
}

// RoundSummary describes a finished (or abandoned) round.
type RoundSummary struct {
	RoundID     string
	Outcome     Outcome
	Score       int
	TargetScore int
	Duration    time.Duration
	Elapsed     time.Duration
	Stats       Stats
}

// SessionOptions are the collaborators of a Session. Zero values are valid.
type SessionOptions struct {
	Effects Effects
	Hooks   Hooks
	Logger  *log.Logger
}

// Session wraps a Board with a countdown and a target score. It observes
// the board score; when the clock runs out the round ends Won or Lost and
// further input and board events are dropped.
type Session struct {
	cfg        Config
	rng        *rand.Rand
	opts       SessionOptions
	board      *Board
	clock      *Clock
	outcome    Outcome
	finalScore int
	roundID    uuid.UUID
	round      int
}

// NewSession validates cfg and starts the first round.
func NewSession(cfg Config, rng *rand.Rand, opts SessionOptions) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{cfg: cfg, rng: rng, opts: opts}
	if err := s.startRound(); err != nil {
		return nil, err
	}
	return s, nil
}

// startRound discards the current board and clock and builds fresh ones.
func (s *Session) startRound() error {
	board, err := NewBoard(s.cfg, s.rng)
	if err != nil {
		return err
	}
	board.SetLogger(s.opts.Logger)
	board.SetEffects(s.opts.Effects)
	board.SetHooks(s.boardHooks())

	s.board = board
	s.clock = NewClock(s.cfg.Duration)
	s.clock.Start()
	s.outcome = OutcomeNone
	s.finalScore = 0
	s.roundID = uuid.New()
	s.round++

	s.opts.Logger.Info("round started",
		"round", s.round,
		"id", s.roundID.String(),
		"target", s.cfg.TargetScore,
		"duration", s.cfg.Duration,
	)
	return nil
}

// boardHooks forwards board events to the session hooks while the round
// is active.
func (s *Session) boardHooks() Hooks {
	return Hooks{
		OnMatch: func(t TileType, size int) {
			if s.outcome == OutcomeNone && s.opts.Hooks.OnMatch != nil {
				s.opts.Hooks.OnMatch(t, size)
			}
		},
		OnScore: func(score int) {
			if s.outcome == OutcomeNone && s.opts.Hooks.OnScore != nil {
				s.opts.Hooks.OnScore(score)
			}
		},
		OnShuffle: func() {
			if s.outcome == OutcomeNone && s.opts.Hooks.OnShuffle != nil {
				s.opts.Hooks.OnShuffle()
			}
		},
	}
}

// Restart tears the round down and starts a new one with score zero and a
// full clock. It fails with ErrBusy while a transaction is in flight.
func (s *Session) Restart() error {
	if s.board.Busy() {
		return ErrBusy
	}
	return s.startRound()
}

// Tick advances the clock by dt and ends the round when it runs out.
func (s *Session) Tick(dt time.Duration) Outcome {
	if s.outcome != OutcomeNone {
		return s.outcome
	}
	s.clock.Advance(dt)
	if s.clock.Expired() {
		s.finish()
	}
	return s.outcome
}

func (s *Session) finish() {
	s.finalScore = s.board.Score()
	s.outcome = OutcomeLost
	if s.finalScore >= s.cfg.TargetScore {
		s.outcome = OutcomeWon
	}
	s.clock.Stop()

	s.opts.Logger.Info("round finished",
		"round", s.round,
		"id", s.roundID.String(),
		"outcome", s.outcome.String(),
		"score", s.finalScore,
	)
	if s.opts.Hooks.OnOutcome != nil {
		s.opts.Hooks.OnOutcome(s.outcome, s.finalScore)
	}
}

// Start resumes the clock. It does nothing once the round has ended.
func (s *Session) Start() {
	if s.outcome == OutcomeNone {
		s.clock.Start()
	}
}

// Stop pauses the clock.
func (s *Session) Stop() {
	s.clock.Stop()
}

// Select forwards a tap to the board while the round is active.
func (s *Session) Select(c Coord) SelectResult {
	if s.outcome != OutcomeNone {
		s.opts.Logger.Debug("selection ignored", "reason", "round over", "coord", c.String())
		return SelectIgnored
	}
	return s.board.Select(c)
}

// AutoPlay forwards to Board.AutoPlay while the round is active.
func (s *Session) AutoPlay() SelectResult {
	if s.outcome != OutcomeNone {
		return SelectIgnored
	}
	return s.board.AutoPlay()
}

// Hint returns the best move while the round is active.
func (s *Session) Hint() (Move, bool) {
	if s.outcome != OutcomeNone {
		return Move{}, false
	}
	return s.board.Hint()
}

// CancelSelection drops a pending first selection.
func (s *Session) CancelSelection() {
	s.board.CancelSelection()
}

// Board exposes the board for read-only queries (Snapshot, Selection, State).
func (s *Session) Board() *Board {
	return s.board
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Score returns the current score, frozen at the final value once the
// round has ended.
func (s *Session) Score() int {
	if s.outcome != OutcomeNone {
		return s.finalScore
	}
	return s.board.Score()
}

// Outcome returns the round outcome (OutcomeNone while running).
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Remaining returns the time left in the round.
func (s *Session) Remaining() time.Duration {
	return s.clock.Remaining()
}

// Running reports whether the clock is counting down.
func (s *Session) Running() bool {
	return s.clock.Running()
}

// RoundID returns the identifier of the current round.
func (s *Session) RoundID() string {
	return s.roundID.String()
}

// Round returns the 1-based round counter of this session.
func (s *Session) Round() int {
	return s.round
}

// Summary describes the current round.
func (s *Session) Summary() RoundSummary {
	return RoundSummary{
		RoundID:     s.roundID.String(),
		Outcome:     s.outcome,
		Score:       s.Score(),
		TargetScore: s.cfg.TargetScore,
		Duration:    s.cfg.Duration,
		Elapsed:     s.clock.Elapsed(),
		Stats:       s.board.Stats(),
	}
}
