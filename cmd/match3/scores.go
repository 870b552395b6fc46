package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagLimit  int
	flagRounds bool
	flagPlayer string
	flagStats  bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and round history",
	Long: `Display the top scores for each difficulty preset.

Use --difficulty to show a single preset, --rounds for the most recent
rounds, --player to filter rounds by player and --stats for aggregated
statistics.

Examples:
  match3 scores
  match3 scores --difficulty hard --limit 5
  match3 scores --rounds
  match3 scores --rounds --player alice
  match3 scores --stats
  match3 scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagRounds, "rounds", false, "Show recent rounds instead of top scores")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show rounds played by this player")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show aggregated statistics per preset")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the high scores of the selected presets")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	presets := config.Presets()
	if flagDifficulty != "" {
		presets = []config.DifficultyPreset{selectedPreset()}
	}

	switch {
	case flagClear:
		err = clearScores(store, presets)
	case flagRounds || flagPlayer != "":
		err = printRounds(store, presets)
	case flagStats:
		err = printStats(store, presets)
	default:
		err = printTopScores(store, presets)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, presets []config.DifficultyPreset) error {
	empty := true
	for _, p := range presets {
		scores, err := store.TopScores(string(p), flagLimit)
		if err != nil {
			return fmt.Errorf("retrieving scores: %w", err)
		}

		fmt.Printf("High Scores - Match-3 (%s)\n", p)
		fmt.Println()

		if len(scores) == 0 {
			fmt.Println("  No scores recorded yet.")
			fmt.Println()
			continue
		}
		empty = false

		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		fmt.Println()
		if best, err := store.HighScore(string(p)); err == nil {
			fmt.Printf("Best: %d\n", best)
			fmt.Println()
		}
	}

	if empty {
		fmt.Println("Play 'match3 play' to set the first high score!")
	}
	return nil
}

func printRounds(store *storage.Store, presets []config.DifficultyPreset) error {
	var (
		rounds []storage.RoundResult
		err    error
	)
	// Fetch extra rows so the preset filter still fills the limit
	fetch := flagLimit * len(config.Presets())
	if flagPlayer != "" {
		rounds, err = store.PlayerRounds(flagPlayer, fetch)
	} else {
		rounds, err = store.RecentRounds(fetch)
	}
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	wanted := make(map[string]bool, len(presets))
	for _, p := range presets {
		wanted[string(p)] = true
	}

	fmt.Println("Recent Rounds - Match-3")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-10s  %-4s  %-11s  %-5s  %-5s  %s\n",
		"Date", "Preset", "Player", "Won", "Score", "Time", "Chain", "Round")
	fmt.Printf("  %-16s  %-8s  %-10s  %-4s  %-11s  %-5s  %-5s  %s\n",
		"----", "------", "------", "---", "-----", "----", "-----", "-----")

	shown := 0
	for _, r := range rounds {
		if !wanted[r.Mode] || shown == flagLimit {
			continue
		}
		shown++
		won := "no"
		if r.Outcome == storage.OutcomeWon {
			won = "yes"
		}
		fmt.Printf("  %-16s  %-8s  %-10s  %-4s  %-11s  %-5s  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Player, won,
			fmt.Sprintf("%d/%d", r.Score, r.TargetScore),
			(time.Duration(r.Elapsed) * time.Second).String(),
			r.LongestChain, r.RoundID)
	}

	if shown == 0 {
		fmt.Println("  No rounds recorded yet.")
	}
	return nil
}

func printStats(store *storage.Store, presets []config.DifficultyPreset) error {
	fmt.Println("Statistics - Match-3")
	fmt.Println()
	fmt.Printf("  %-8s  %-5s  %-5s  %-6s  %-5s  %-7s  %-5s  %-5s  %s\n",
		"Preset", "Games", "Wins", "Win %", "Best", "Average", "Chain", "Match", "Last played")
	fmt.Printf("  %-8s  %-5s  %-5s  %-6s  %-5s  %-7s  %-5s  %-5s  %s\n",
		"------", "-----", "----", "-----", "----", "-------", "-----", "-----", "-----------")

	for _, p := range presets {
		stats, err := store.GetModeStats(string(p))
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		last := "never"
		if !stats.LastPlayed.IsZero() {
			last = stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-8s  %-5d  %-5d  %-6s  %-5d  %-7.1f  %-5d  %-5d  %s\n",
			p, stats.GamesCount, stats.Wins,
			fmt.Sprintf("%.0f%%", stats.WinRate()*100),
			stats.HighScore, stats.AvgScore, stats.LongestChain, stats.LargestMatch, last)
	}
	return nil
}

func clearScores(store *storage.Store, presets []config.DifficultyPreset) error {
	for _, p := range presets {
		if err := store.ClearScores(string(p)); err != nil {
			return fmt.Errorf("clearing %s scores: %w", p, err)
		}
		fmt.Printf("Cleared %s high scores.\n", p)
	}
	return nil
}
