package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// State is the selection/swap state of a Board.
type State int

const (
	StateIdle           State = iota // waiting for a first selection
	StateAwaitingSecond              // one tile selected
	StateResolving                   // swap and cascade in flight
	StateShuffling                   // playability repair in flight
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSecond:
		return "awaiting_second"
	case StateResolving:
		return "resolving"
	case StateShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

// SelectResult tells the caller what a Select call did.
type SelectResult int

const (
	SelectIgnored  SelectResult = iota // tap rejected, nothing changed
	SelectPending                      // first tile selected
	SelectMatched                      // swap produced at least one match
	SelectReverted                     // swap produced no match and was undone
)

// String returns a human-readable name for the result.
func (r SelectResult) String() string {
	switch r {
	case SelectIgnored:
		return "ignored"
	case SelectPending:
		return "pending"
	case SelectMatched:
		return "matched"
	case SelectReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Stats are running counters for a board since creation.
type Stats struct {
	Swaps        int // swap transactions started
	Reverted     int // swaps undone for lack of a match
	Matches      int // cascade steps resolved
	TilesCleared int // cells refilled by cascades
	LargestMatch int // biggest single match
	LongestChain int // most cascade steps in one transaction
	Shuffles     int // full-board reshuffles by the repair loop
}

var (
	// ErrBusy is returned when the live board is replaced mid-transaction.
	ErrBusy = errors.New("engine: board is resolving a move")
	// ErrDimensionMismatch is returned by Load for a matrix of the wrong size.
	ErrDimensionMismatch = errors.New("engine: matrix dimensions do not match the board")
)

// Board owns the live grid and runs the selection, swap, cascade and
// playability-repair protocol. It is not safe for concurrent use; callers
// drive it from a single goroutine (the Effects hand-off included).
type Board struct {
	cfg       Config
	rng       *rand.Rand
	cells     []TileType
	state     State
	selection []Coord
	score     int
	stats     Stats
	effects   Effects
	hooks     Hooks
	logger    *log.Logger
}

// NewBoard validates cfg and creates a randomly filled board. When
// cfg.NoStartingMatches is set, the board is reshuffled until it holds no
// standing match. A nil rng is seeded from the current time.
func NewBoard(cfg Config, rng *rand.Rand) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		cfg:       cfg,
		rng:       rng,
		cells:     make([]TileType, cfg.Width*cfg.Height),
		selection: make([]Coord, 0, 2),
		effects:   NopEffects{},
		logger:    log.New(io.Discard),
	}
	b.fillRandom()

	if cfg.NoStartingMatches {
		b.repair(false)
		b.stats = Stats{}
	}
	return b, nil
}

// SetEffects installs the presentation effects. Nil restores NopEffects.
func (b *Board) SetEffects(e Effects) {
	if e == nil {
		e = NopEffects{}
	}
	b.effects = e
}

// SetHooks installs event notifications.
func (b *Board) SetHooks(h Hooks) {
	b.hooks = h
}

// SetLogger installs a logger. Nil discards output.
func (b *Board) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	b.logger = l
}

// Config returns the board configuration.
func (b *Board) Config() Config {
	return b.cfg
}

// Snapshot returns an immutable copy of the live grid.
func (b *Board) Snapshot() Matrix {
	return matrixFromCells(b.cfg.Width, b.cfg.Height, b.cells)
}

// State returns the current state.
func (b *Board) State() State {
	return b.state
}

// Busy reports whether a transaction or repair is in flight.
func (b *Board) Busy() bool {
	return b.state == StateResolving || b.state == StateShuffling
}

// Selection returns a copy of the pending selection.
func (b *Board) Selection() []Coord {
	return slices.Clone(b.selection)
}

// Score returns the accumulated score.
func (b *Board) Score() int {
	return b.score
}

// Stats returns the running counters.
func (b *Board) Stats() Stats {
	return b.stats
}

// Load replaces the live grid wholesale and clears the selection.
func (b *Board) Load(m Matrix) error {
	if b.Busy() {
		return ErrBusy
	}
	if m.Width() != b.cfg.Width || m.Height() != b.cfg.Height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, m.Width(), m.Height(), b.cfg.Width, b.cfg.Height)
	}
	for i, t := range m.cells {
		if int(t) >= b.cfg.TileTypes {
			return fmt.Errorf("engine: tile type %d at index %d exceeds %d types", t, i, b.cfg.TileTypes)
		}
	}
	copy(b.cells, m.cells)
	b.selection = b.selection[:0]
	b.state = StateIdle
	return nil
}

// Select registers a tap on c. The first valid tap becomes the pending
// selection; a second tap adjacent to it runs the swap transaction before
// Select returns. Taps while busy, out of range, on the selected tile, or
// not adjacent to the first selection are ignored.
func (b *Board) Select(c Coord) SelectResult {
	if b.Busy() {
		b.ignore(c, "busy")
		return SelectIgnored
	}
	if !b.inBounds(c) {
		b.ignore(c, "out of range")
		return SelectIgnored
	}
	if slices.Contains(b.selection, c) {
		b.ignore(c, "already selected")
		return SelectIgnored
	}
	if len(b.selection) == 0 {
		b.selection = append(b.selection, c)
		b.state = StateAwaitingSecond
		return SelectPending
	}
	first := b.selection[0]
	if !first.Adjacent(c) {
		b.ignore(c, "not adjacent")
		return SelectIgnored
	}
	b.selection = append(b.selection, c)
	return b.resolve(first, c)
}

// CancelSelection drops a pending first selection.
func (b *Board) CancelSelection() {
	if b.state != StateAwaitingSecond {
		return
	}
	b.selection = b.selection[:0]
	b.state = StateIdle
}

// Hint returns the best available move on the current board.
func (b *Board) Hint() (Move, bool) {
	return FindBestMove(b.Snapshot())
}

// AutoPlay performs the best available move, replacing any pending selection.
func (b *Board) AutoPlay() SelectResult {
	if b.Busy() {
		b.logger.Debug("auto-play ignored", "reason", "busy", "state", b.state)
		return SelectIgnored
	}
	move, ok := b.Hint()
	if !ok {
		b.logger.Debug("auto-play ignored", "reason", "no legal move")
		return SelectIgnored
	}
	b.CancelSelection()
	b.Select(move.A)
	return b.Select(move.B)
}

// EnsurePlayable reshuffles until the board has at least one legal move and
// no standing match. It returns the number of reshuffles performed.
func (b *Board) EnsurePlayable() int {
	if b.Busy() {
		return 0
	}
	n := b.repair(true)
	if n > 0 {
		b.CancelSelection()
	}
	return n
}

// EnsureNoMatches reshuffles until the board has no standing match. It
// returns the number of reshuffles performed.
func (b *Board) EnsureNoMatches() int {
	if b.Busy() {
		return 0
	}
	n := b.repair(false)
	if n > 0 {
		b.CancelSelection()
	}
	return n
}

// resolve runs the swap transaction for two adjacent selected tiles.
func (b *Board) resolve(first, second Coord) SelectResult {
	b.state = StateResolving
	b.stats.Swaps++

	b.swap(first, second)
	b.effects.Play(Effect{Kind: EffectSwap, Cells: []Coord{first, second}})

	result := SelectMatched
	if !b.cascade() {
		b.swap(first, second)
		b.stats.Reverted++
		b.effects.Play(Effect{Kind: EffectRevert, Cells: []Coord{first, second}})
		result = SelectReverted
	}

	b.repair(true)

	b.selection = b.selection[:0]
	b.state = StateIdle
	return result
}

// cascade resolves matches until the board is quiescent. Each step is
// scored with the fixed per-cascade increment regardless of match size.
// It returns false when the first scan found nothing.
func (b *Board) cascade() bool {
	chain := 0
	for {
		match, ok := FindBestMatch(b.Snapshot())
		if !ok {
			break
		}
		chain++

		b.effects.Play(Effect{Kind: EffectDeflate, Cells: match.Cells, Type: match.Type})
		if b.hooks.OnMatch != nil {
			b.hooks.OnMatch(match.Type, match.Size())
		}
		b.addScore(b.cfg.ScorePerCascade)

		for _, c := range match.Cells {
			b.cells[b.index(c)] = b.randomTile()
		}
		b.effects.Play(Effect{Kind: EffectInflate, Cells: match.Cells})

		b.stats.Matches++
		b.stats.TilesCleared += match.Size()
		b.stats.LargestMatch = max(b.stats.LargestMatch, match.Size())
	}
	b.stats.LongestChain = max(b.stats.LongestChain, chain)
	return chain > 0
}

// repair reshuffles the whole board until it has no standing match and,
// when needMove is set, at least one legal move. The loop has no attempt
// bound: Config.Validate guarantees each reshuffle succeeds with nonzero
// probability.
func (b *Board) repair(needMove bool) int {
	prev := b.state
	attempts := 0
	for {
		snap := b.Snapshot()
		if !HasMatch(snap) && (!needMove || HasMove(snap)) {
			break
		}
		b.state = StateShuffling
		b.fillRandom()
		attempts++
		b.stats.Shuffles++

		if b.hooks.OnShuffle != nil {
			b.hooks.OnShuffle()
		}
		b.effects.Play(Effect{Kind: EffectShuffle})
	}
	if attempts > 0 {
		b.logger.Debug("board reshuffled", "attempts", attempts, "need_move", needMove)
	}
	b.state = prev
	return attempts
}

func (b *Board) addScore(delta int) {
	b.score += delta
	if b.hooks.OnScore != nil {
		b.hooks.OnScore(b.score)
	}
}

func (b *Board) ignore(c Coord, reason string) {
	b.logger.Debug("selection ignored", "reason", reason, "coord", c.String(), "state", b.state.String())
}

func (b *Board) swap(a, c Coord) {
	ia, ic := b.index(a), b.index(c)
	b.cells[ia], b.cells[ic] = b.cells[ic], b.cells[ia]
}

func (b *Board) fillRandom() {
	for i := range b.cells {
		b.cells[i] = b.randomTile()
	}
}

func (b *Board) randomTile() TileType {
	return TileType(b.rng.Intn(b.cfg.TileTypes))
}

func (b *Board) index(c Coord) int {
	return c.Y*b.cfg.Width + c.X
}

func (b *Board) inBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.cfg.Width && c.Y >= 0 && c.Y < b.cfg.Height
}
