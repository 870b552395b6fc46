package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func TestAnimatorTicksEffects(t *testing.T) {
	a := newAnimator(config.Match3Animation{SwapTicks: 2, DeflateTicks: 0, InflateTicks: 1})

	var order []engine.EffectKind
	play := func(k engine.EffectKind) {
		a.Play(engine.Effect{Kind: k})
		order = append(order, k)
	}

	finished := false
	a.Run(func() {
		play(engine.EffectSwap)
		play(engine.EffectDeflate)
		play(engine.EffectInflate)
		finished = true
	})

	if !a.Busy() {
		t.Fatal("animator should be busy after Run")
	}
	p, ok := a.Current()
	if !ok || p.effect.Kind != engine.EffectSwap {
		t.Fatalf("current = %+v, want swap", p)
	}

	a.Step()
	if p, _ := a.Current(); p.Progress() != 0.5 {
		t.Errorf("progress = %v, want 0.5", p.Progress())
	}

	// The swap ends; the zero-length deflate is skipped straight to inflate.
	a.Step()
	if p, ok := a.Current(); !ok || p.effect.Kind != engine.EffectInflate {
		t.Fatalf("current = %+v, want inflate", p)
	}

	a.Step()
	if a.Busy() {
		t.Fatal("transaction should have finished")
	}
	if _, ok := a.Current(); ok {
		t.Error("no effect should be current after the transaction")
	}
	if !finished || len(order) != 3 {
		t.Errorf("finished = %v order = %v", finished, order)
	}
}

func TestAnimatorRunWithoutEffects(t *testing.T) {
	a := newAnimator(config.Match3Animation{SwapTicks: 5})

	ran := false
	a.Run(func() { ran = true })
	if !ran || a.Busy() {
		t.Errorf("ran = %v busy = %v", ran, a.Busy())
	}
}

func TestAnimatorFlush(t *testing.T) {
	a := newAnimator(config.Match3Animation{SwapTicks: 100, RevertTicks: 100})

	count := 0
	a.Run(func() {
		a.Play(engine.Effect{Kind: engine.EffectSwap})
		count++
		a.Play(engine.Effect{Kind: engine.EffectRevert})
		count++
	})

	a.Flush()
	if a.Busy() || count != 2 {
		t.Errorf("busy = %v count = %d after Flush", a.Busy(), count)
	}

	// Flushing an idle animator is a no-op.
	a.Flush()
}

func TestAnimatorIgnoresRunWhileBusy(t *testing.T) {
	a := newAnimator(config.Match3Animation{SwapTicks: 3})
	defer a.Flush()

	a.Run(func() { a.Play(engine.Effect{Kind: engine.EffectSwap}) })

	second := false
	a.Run(func() { second = true })
	if second {
		t.Error("Run while busy should be ignored")
	}
}
