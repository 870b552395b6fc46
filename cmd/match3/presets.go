package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Shows every difficulty preset with the board, timer and target it
produces from the active configuration (--config or the default search path).`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	fmt.Println("Difficulty presets:")
	fmt.Println()

	fmt.Printf("  %-8s  %-6s  %-5s  %-6s  %-6s  %s\n", "Preset", "Board", "Kinds", "Time", "Target", "Description")
	fmt.Printf("  %-8s  %-6s  %-5s  %-6s  %-6s  %s\n", "------", "-----", "-----", "----", "------", "-----------")

	for _, p := range config.Presets() {
		cfg, err := config.LoadMatch3Preset(flagConfig, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		board := fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height)
		fmt.Printf("  %-8s  %-6s  %-5d  %-6s  %-6d  %s\n",
			p, board, cfg.Board.TileTypes,
			fmt.Sprintf("%ds", cfg.Rules.DurationSeconds),
			cfg.Rules.TargetScore, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'match3 play --difficulty <preset>' to play one.")
}
