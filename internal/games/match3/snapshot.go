package match3

import (
	"time"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Round     int
	Score     int
	Target    int
	Remaining time.Duration
	Board     [][]engine.TileType
	Cursor    engine.Coord
	Selection []engine.Coord
	Stats     engine.Stats
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Outcome() == engine.OutcomeWon:
		state = StateWon
	case g.session.Outcome() == engine.OutcomeLost:
		state = StateLost
	case g.paused:
		state = StatePaused
	case g.anim.Busy():
		state = StateAnimating
	}

	board := g.session.Board()
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.preset),
		Round:     g.session.Round(),
		Score:     g.session.Score(),
		Target:    g.session.Config().TargetScore,
		Remaining: g.session.Remaining(),
		Board:     board.Snapshot().Rows(),
		Cursor:    g.cursor,
		Selection: board.Selection(),
		Stats:     board.Stats(),
		State:     state,
	}
}
