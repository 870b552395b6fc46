package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagNoScores bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a Match-3 round straight away.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select tile (select a neighbour to swap)
  X/Backspace  - Cancel selection
  H            - Show a hint
  M            - Let the game play a move
  P            - Pause
  R            - Restart (after the round ends)
  B/Esc        - Leave (when paused or finished)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Four tile kinds, 150 seconds, 500 points
  normal - Five tile kinds, 100 seconds, 700 points
  hard   - Six tile kinds, 80 seconds, 900 points
  (timer and target scale from the loaded config)

Examples:
  match3 play
  match3 play --difficulty hard
  match3 play --seed 42
  match3 play --config ./my-match3.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoScores, "no-scores", false, "Do not record rounds or scores")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(match3.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if !flagNoScores {
		store = openScores(logger)
	}
	if store != nil {
		defer store.Close()
	}

	preset := selectedPreset()
	logger.Debug("starting round", "preset", preset, "seed", flagSeed, "fps", flagFPS)

	if _, err := tui.Run(game, store, runtimeConfig(), tui.ModelOptions{
		Player: localPlayer(),
		Mode:   string(preset),
		Logger: logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
