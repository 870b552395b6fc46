package engine

// EffectKind names a presentation step the board waits on.
type EffectKind int

const (
	EffectSwap    EffectKind = iota // two tiles exchanged on the live board
	EffectRevert                    // a non-matching swap undone
	EffectDeflate                   // matched tiles about to be refilled
	EffectInflate                   // matched cells refilled with new tiles
	EffectShuffle                   // whole board reassigned by the repair loop
)

// String returns a human-readable name for the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectSwap:
		return "swap"
	case EffectRevert:
		return "revert"
	case EffectDeflate:
		return "deflate"
	case EffectInflate:
		return "inflate"
	case EffectShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Effect describes one step of a transaction for the presentation layer.
// Cells lists the affected coordinates (nil for EffectShuffle).
type Effect struct {
	Kind  EffectKind
	Cells []Coord
	Type  TileType // matched tile type, EffectDeflate only
}

// Effects is the awaitable side of the presentation. Play blocks until the
// effect has finished; the board resumes its transaction only afterwards.
// Effects are always played sequentially, never concurrently.
type Effects interface {
	Play(e Effect)
}

// NopEffects completes every effect immediately.
type NopEffects struct{}

// Play implements Effects.
func (NopEffects) Play(Effect) {}

// EffectsFunc adapts a function to the Effects interface.
type EffectsFunc func(e Effect)

// Play implements Effects.
func (f EffectsFunc) Play(e Effect) {
	f(e)
}

// Hooks are notifications raised by the board and the session.
// Nil hooks are skipped.
type Hooks struct {
	// OnMatch fires once per cascade step, in emission order.
	OnMatch func(t TileType, size int)
	// OnScore fires after the score changed, with the new total.
	OnScore func(score int)
	// OnShuffle fires after each full-board reshuffle.
	OnShuffle func()
	// OnOutcome fires exactly once per round when the session ends.
	OnOutcome func(o Outcome, score int)
}
