package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("normal", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("hard", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Mode != "normal" {
		t.Errorf("Mode = %q, expected normal", scores[0].Mode)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	hardScores, err := store.TopScores("hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hardScores) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(hardScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("normal", (i+1)*100)
	}

	scores, err := store.TopScores("normal", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("normal", 100)
	store.SaveScore("normal", 300)
	store.SaveScore("normal", 200)

	high, err = store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("easy", 100)
	store.SaveScore("easy", 200)
	store.SaveScore("hard", 300)
	store.SaveRound(RoundResult{Mode: "easy", Outcome: OutcomeWon, Score: 600})
	store.SaveRound(RoundResult{Mode: "hard", Outcome: OutcomeLost, Score: 300})

	if err := store.ClearScores("easy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	easyScores, _ := store.TopScores("easy", 10)
	if len(easyScores) != 0 {
		t.Errorf("Expected 0 easy scores after clear, got %d", len(easyScores))
	}
	hardScores, _ := store.TopScores("hard", 10)
	if len(hardScores) != 1 {
		t.Errorf("Hard scores should not be affected by clearing easy")
	}

	rounds, _ := store.RecentRounds(10)
	if len(rounds) != 1 || rounds[0].Mode != "hard" {
		t.Errorf("Only the hard round should remain, got %+v", rounds)
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := openTestStore(t)

	report := core.RoundReport{
		RoundID:      uuid.NewString(),
		Mode:         "normal",
		Won:          true,
		Score:        720,
		TargetScore:  700,
		Duration:     100 * time.Second,
		Elapsed:      100 * time.Second,
		Swaps:        31,
		Matches:      24,
		LargestMatch: 5,
		LongestChain: 3,
		Shuffles:     1,
	}
	if _, err := store.SaveRound(RoundFromReport(report, "alice")); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	got, err := store.RoundByID(report.RoundID)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RoundByID() returned nil for a saved round")
	}
	if got.Outcome != OutcomeWon || got.Score != 720 || got.Player != "alice" {
		t.Errorf("unexpected round: %+v", got)
	}
	if got.Duration != 100 || got.LongestChain != 3 || got.LargestMatch != 5 {
		t.Errorf("stats not persisted: %+v", got)
	}

	// Duplicate round ids are rejected by the unique index
	if _, err := store.SaveRound(RoundFromReport(report, "alice")); err == nil {
		t.Error("saving the same round twice should fail")
	}
}

func TestStoreSaveRoundIDs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(RoundResult{Mode: "normal", Outcome: OutcomeLost}); err != nil {
		t.Fatalf("SaveRound() without id failed: %v", err)
	}
	rounds, err := store.RecentRounds(1)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}
	if _, err := uuid.Parse(rounds[0].RoundID); err != nil {
		t.Errorf("generated round id %q is not a UUID", rounds[0].RoundID)
	}
	if rounds[0].Player != "local" {
		t.Errorf("Player = %q, expected local", rounds[0].Player)
	}

	_, err = store.SaveRound(RoundResult{RoundID: "not-a-uuid", Mode: "normal", Outcome: OutcomeLost})
	if !errors.Is(err, ErrInvalidRoundID) {
		t.Errorf("SaveRound() error = %v, expected ErrInvalidRoundID", err)
	}

	missing, err := store.RoundByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RoundByID() for unknown id = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStorePlayerRounds(t *testing.T) {
	store := openTestStore(t)

	for i := range 3 {
		store.SaveRound(RoundResult{Mode: "normal", Player: "alice", Outcome: OutcomeLost, Score: i * 10})
	}
	store.SaveRound(RoundResult{Mode: "normal", Player: "bob", Outcome: OutcomeWon, Score: 900})

	alice, err := store.PlayerRounds("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRounds() failed: %v", err)
	}
	if len(alice) != 3 {
		t.Fatalf("Expected 3 rounds for alice, got %d", len(alice))
	}
	// Newest first
	if alice[0].Score != 20 {
		t.Errorf("Expected newest round first, got score %d", alice[0].Score)
	}

	recent, _ := store.RecentRounds(2)
	if len(recent) != 2 || recent[0].Player != "bob" {
		t.Errorf("RecentRounds(2) = %+v", recent)
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats("hard")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.WinRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRound(RoundResult{Mode: "normal", Outcome: OutcomeWon, Score: 750, LongestChain: 4, LargestMatch: 5})
	store.SaveRound(RoundResult{Mode: "normal", Outcome: OutcomeLost, Score: 450, LongestChain: 2, LargestMatch: 3})
	store.SaveRound(RoundResult{Mode: "normal", Outcome: OutcomeLost, Score: 300, LongestChain: 1, LargestMatch: 4})
	store.SaveRound(RoundResult{Mode: "easy", Outcome: OutcomeWon, Score: 510})

	stats, err := store.GetModeStats("normal")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 1 || stats.Losses != 2 {
		t.Errorf("record = %d games, %d wins, %d losses", stats.GamesCount, stats.Wins, stats.Losses)
	}
	if stats.HighScore != 750 || stats.AvgScore != 500 {
		t.Errorf("HighScore = %d, AvgScore = %v", stats.HighScore, stats.AvgScore)
	}
	if stats.LongestChain != 4 || stats.LargestMatch != 5 {
		t.Errorf("LongestChain = %d, LargestMatch = %d", stats.LongestChain, stats.LargestMatch)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be populated")
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 || all["easy"].Wins != 1 {
		t.Errorf("GetAllModeStats() = %+v", all)
	}
}
