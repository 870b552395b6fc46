// Package match3 is the terminal front end of the match-three rules engine:
// a cursor-driven board with animated swaps and cascades, a countdown and
// a target score.
package match3

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// GameID is the registry identifier.
const GameID = "match3"

const (
	hintTicks    = 90  // how long a hint stays highlighted
	messageTicks = 120 // how long a status message stays up
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
	logger           = log.New(io.Discard)
	builtinConfig    = config.DefaultMatch3Config
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// GetDifficultyPreset returns the preset the next Reset will use.
func GetDifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// SetLogger sets the logger handed to new sessions. Nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game on top of engine.Session.
type Game struct {
	cfg     config.Match3Config
	preset  config.DifficultyPreset
	tickDur time.Duration
	tick    uint64

	session *engine.Session
	anim    *animator
	styles  []tileStyle

	cursor     engine.Coord
	hint       *engine.Move
	hintLeft   int
	message    string
	messageFor int

	pending    bool // a move was submitted and has not settled yet
	chain      int  // cascade steps of the current move
	scoreAt    int  // score when the current move started
	lastResult engine.SelectResult

	paused    bool
	tooSmall  bool
	screenW   int
	screenH   int
	configErr error

	mode config.DifficultyPreset // overrides the package preset when set
}

// New creates a match-three game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Match-3"
}

// Reset loads the configuration and starts a fresh round.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.Close()

	preset := difficultyPreset
	if g.mode != "" {
		preset = g.mode
	}
	cfg, err := config.LoadMatch3Preset(configPath, preset)
	g.configErr = err
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "err", err)
		cfg = config.ApplyMatch3Preset(builtinConfig(), preset)
	}

	anim := newAnimator(cfg.Animation)
	session, cfg, err := g.newSession(cfg, rc.Seed, anim)
	if err != nil {
		g.configErr = err
	}

	g.cfg = cfg
	g.preset = preset
	g.tickDur = rc.TickDuration()
	g.tick = 0
	g.session = session
	g.anim = anim
	g.styles = palette(cfg.Tiles, cfg.Board.TileTypes)
	g.cursor = engine.C(cfg.Board.Width/2, cfg.Board.Height/2)
	g.hint = nil
	g.hintLeft = 0
	g.message = ""
	g.messageFor = 0
	g.pending = false
	g.chain = 0
	g.scoreAt = 0
	g.lastResult = engine.SelectIgnored
	g.paused = false
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()

	if g.configErr != nil {
		g.say("Config error, using defaults")
	}
}

// newSession starts a round on cfg. When the engine rejects cfg the round
// runs on the built-in configuration and the rejection is returned. A
// rejected built-in configuration is a programming error and panics.
func (g *Game) newSession(cfg config.Match3Config, seed int64, anim *animator) (*engine.Session, config.Match3Config, error) {
	opts := engine.SessionOptions{
		Effects: anim,
		Hooks:   g.hooks(),
		Logger:  logger,
	}
	session, err := engine.NewSession(cfg.EngineConfig(), rand.New(rand.NewSource(seed)), opts)
	if err == nil {
		return session, cfg, nil
	}

	logger.Warn("engine rejected config, using built-in defaults", "err", err)
	fallback := builtinConfig()
	session, fbErr := engine.NewSession(fallback.EngineConfig(), rand.New(rand.NewSource(seed)), opts)
	if fbErr != nil {
		panic(fmt.Errorf("match3: built-in config rejected: %w", fbErr))
	}
	return session, fallback, err
}

func (g *Game) hooks() engine.Hooks {
	return engine.Hooks{
		OnMatch: func(engine.TileType, int) {
			g.chain++
		},
		OnShuffle: func() {
			g.say("No moves left, reshuffling")
		},
		OnOutcome: func(o engine.Outcome, score int) {
			if o == engine.OutcomeWon {
				g.say(fmt.Sprintf("Target reached with %d points", score))
			} else {
				g.say(fmt.Sprintf("Time is up at %d points", score))
			}
		},
	}
}

// Close completes any in-flight transaction so the worker goroutine exits.
func (g *Game) Close() {
	if g.anim != nil {
		g.anim.Flush()
		g.settle()
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	bw, bh := g.boardSize()
	minW := max(bw, 40)
	minH := bh + hudRows + footerRows
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.session.Outcome() == engine.OutcomeNone {
		g.paused = !g.paused
		if g.paused {
			g.session.Stop()
		} else {
			g.session.Start()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.session.Tick(g.tickDur)
	g.anim.Step()
	g.settle()
	g.ageOverlays()

	if g.session.Outcome() == engine.OutcomeNone && !g.anim.Busy() {
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Empty() {
		return
	}
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y = core.Wrap(g.cursor.Y-1, h)
	case in.Has(core.ActionDown):
		g.cursor.Y = core.Wrap(g.cursor.Y+1, h)
	case in.Has(core.ActionLeft):
		g.cursor.X = core.Wrap(g.cursor.X-1, w)
	case in.Has(core.ActionRight):
		g.cursor.X = core.Wrap(g.cursor.X+1, w)
	}

	switch {
	case in.Has(core.ActionCancel):
		g.session.CancelSelection()
	case in.Has(core.ActionHint):
		if move, ok := g.session.Hint(); ok {
			g.hint = &move
			g.hintLeft = hintTicks
		}
	case in.Has(core.ActionSelect):
		cursor := g.cursor
		g.play(func() engine.SelectResult { return g.session.Select(cursor) })
	case in.Has(core.ActionAutoPlay):
		if move, ok := g.session.Hint(); ok {
			g.cursor = move.B
		}
		g.play(g.session.AutoPlay)
	}
}

// play submits a board operation to the animator.
func (g *Game) play(fn func() engine.SelectResult) {
	g.hint = nil
	g.hintLeft = 0
	g.chain = 0
	g.scoreAt = g.session.Score()
	g.pending = true
	g.anim.Run(func() { g.lastResult = fn() })
	g.settle()
}

// settle reports the result of a move once its transaction has ended.
func (g *Game) settle() {
	if !g.pending || g.anim.Busy() {
		return
	}
	g.pending = false

	switch g.lastResult {
	case engine.SelectMatched:
		gained := g.session.Score() - g.scoreAt
		if g.chain > 1 {
			g.say(fmt.Sprintf("Chain x%d! +%d", g.chain, gained))
		} else if gained > 0 {
			g.say(fmt.Sprintf("+%d", gained))
		}
	case engine.SelectReverted:
		g.say("No match, swap undone")
	case engine.SelectIgnored:
		if len(g.session.Board().Selection()) > 0 {
			g.say("Pick a neighbouring tile")
		}
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageFor = messageTicks
}

func (g *Game) ageOverlays() {
	if g.hintLeft > 0 {
		g.hintLeft--
		if g.hintLeft == 0 {
			g.hint = nil
		}
	}
	if g.messageFor > 0 {
		g.messageFor--
		if g.messageFor == 0 {
			g.message = ""
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	outcome := g.session.Outcome()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: outcome != engine.OutcomeNone,
		Paused:   g.paused || g.tooSmall,
		Won:      outcome == engine.OutcomeWon,
	}
}

// RoundReport implements registry.RoundRecorder.
func (g *Game) RoundReport() core.RoundReport {
	if g.session == nil {
		return core.RoundReport{}
	}
	s := g.session.Summary()
	return core.RoundReport{
		RoundID:      s.RoundID,
		Mode:         string(g.preset),
		Won:          s.Outcome == engine.OutcomeWon,
		Score:        s.Score,
		TargetScore:  s.TargetScore,
		Duration:     s.Duration,
		Elapsed:      s.Elapsed,
		Swaps:        s.Stats.Swaps,
		Matches:      s.Stats.Matches,
		LargestMatch: s.Stats.LargestMatch,
		LongestChain: s.Stats.LongestChain,
		Shuffles:     s.Stats.Shuffles,
	}
}

// Mode returns the difficulty preset of the current round.
func (g *Game) Mode() config.DifficultyPreset {
	return g.preset
}

// SetMode implements registry.ModeSetter. Unknown names fall back to the
// package preset.
func (g *Game) SetMode(mode string) {
	p, err := config.ParsePreset(mode)
	if err != nil {
		p = ""
	}
	g.mode = p
}

// Resize implements registry.Resizer. The round keeps running; only the
// too-small check is redone.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Pick | X: Cancel | H: Hint | M: Auto | P: Pause | Q: Quit"
}

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.RoundRecorder = (*Game)(nil)
	_ registry.Closer        = (*Game)(nil)
	_ registry.ModeSetter    = (*Game)(nil)
	_ registry.Resizer       = (*Game)(nil)
)
