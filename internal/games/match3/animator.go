package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// playback is the effect currently on screen.
type playback struct {
	effect   engine.Effect
	elapsed  int
	duration int
}

// Progress returns how far the effect has run, in [0, 1].
func (p playback) Progress() float64 {
	if p.duration <= 0 {
		return 1
	}
	return min(float64(p.elapsed)/float64(p.duration), 1)
}

// animator runs engine transactions on a worker goroutine and turns each
// blocking Effects.Play into a fixed number of simulation ticks.
//
// Hand-off is strict: at any moment either the worker runs engine code and
// the game goroutine waits on a channel, or the worker is parked in Play (or
// idle) and the game goroutine owns the board. Nothing touches the board
// from both sides at once, so no locking is needed.
type animator struct {
	effects chan engine.Effect
	resume  chan struct{}
	done    chan struct{}

	ticks   config.Match3Animation
	current *playback
	busy    bool
}

func newAnimator(ticks config.Match3Animation) *animator {
	return &animator{
		effects: make(chan engine.Effect),
		resume:  make(chan struct{}),
		done:    make(chan struct{}),
		ticks:   ticks,
	}
}

// Play implements engine.Effects. It runs on the worker goroutine.
func (a *animator) Play(e engine.Effect) {
	a.effects <- e
	<-a.resume
}

// Busy reports whether a transaction is in flight.
func (a *animator) Busy() bool {
	return a.busy
}

// Current returns the effect being animated, if any.
func (a *animator) Current() (playback, bool) {
	if a.current == nil {
		return playback{}, false
	}
	return *a.current, true
}

// Run starts fn on the worker and blocks until it either reaches its first
// effect with a nonzero duration or finishes.
func (a *animator) Run(fn func()) {
	if a.busy {
		return
	}
	a.busy = true
	go func() {
		fn()
		a.done <- struct{}{}
	}()
	a.await()
}

// Step advances the current effect by one tick, resuming the worker when
// the effect has run its course.
func (a *animator) Step() {
	if a.current == nil {
		return
	}
	a.current.elapsed++
	if a.current.elapsed >= a.current.duration {
		a.current = nil
		a.resume <- struct{}{}
		a.await()
	}
}

// Flush completes every remaining effect immediately and waits for the
// transaction to end.
func (a *animator) Flush() {
	for a.busy {
		a.current = nil
		a.resume <- struct{}{}
		a.await()
	}
}

// await waits for the worker's next effect or its completion. Effects with
// no duration are acknowledged immediately.
func (a *animator) await() {
	for {
		select {
		case e := <-a.effects:
			d := a.duration(e.Kind)
			if d <= 0 {
				a.resume <- struct{}{}
				continue
			}
			a.current = &playback{effect: e, duration: d}
			return
		case <-a.done:
			a.current = nil
			a.busy = false
			return
		}
	}
}

func (a *animator) duration(k engine.EffectKind) int {
	switch k {
	case engine.EffectSwap:
		return a.ticks.SwapTicks
	case engine.EffectRevert:
		return a.ticks.RevertTicks
	case engine.EffectDeflate:
		return a.ticks.DeflateTicks
	case engine.EffectInflate:
		return a.ticks.InflateTicks
	case engine.EffectShuffle:
		return a.ticks.ShuffleTicks
	default:
		return 0
	}
}
