package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionSelect) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionSelect)
	f.Set(ActionLeft)
	if !f.Has(ActionSelect) || !f.Has(ActionLeft) || f.Has(ActionHint) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionSelect) {
		t.Error("Clear should remove all actions")
	}

	// A cleared frame is reusable
	f.Set(ActionHint)
	if f.Empty() || !f.Has(ActionHint) {
		t.Error("frame should accept actions after Clear")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:     "None",
		ActionLeft:     "Left",
		ActionSelect:   "Select",
		ActionAutoPlay: "AutoPlay",
		ActionPause:    "Pause",
		Action(99):     "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
		ok       bool
	}{
		{"red", ColorRed, true},
		{"  Bright_Cyan ", ColorBrightCyan, true},
		{"grey", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}
	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickDuration() != time.Second/60 {
		t.Errorf("TickDuration() = %v", cfg.TickDuration())
	}
	cfg.TickRate = 20
	if cfg.TickDuration() != 50*time.Millisecond {
		t.Errorf("TickDuration() = %v, expected 50ms", cfg.TickDuration())
	}
	cfg.TickRate = 0
	if cfg.TickDuration() != time.Second/60 {
		t.Errorf("zero tick rate should fall back to 60Hz")
	}
}
