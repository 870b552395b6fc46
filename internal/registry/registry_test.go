package registry

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type stubGame struct {
	id     string
	closed *int
}

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }
func (g stubGame) Close() { *g.closed++ }

func TestRegisterAndCreate(t *testing.T) {
	closed := 0
	Register("stub-a", func() Game { return stubGame{id: "stub-a", closed: &closed} })

	if closed != 1 {
		t.Errorf("sample instance should be closed once, got %d", closed)
	}
	if !Exists("stub-a") {
		t.Fatal("Exists() should report a registered game")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub-a" {
			found = true
			if info.Title != "Stub stub-a" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
	if Exists("nope") {
		t.Error("Exists() should be false for unknown ids")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	closed := 0
	f := func() Game { return stubGame{id: "stub-dup", closed: &closed} }
	Register("stub-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("registering the same id twice should panic")
		}
	}()
	Register("stub-dup", f)
}
