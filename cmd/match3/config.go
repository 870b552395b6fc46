package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in match3.yaml. Save it to ~/.match3/configs/match3.yaml
or ./configs/match3.yaml and edit it to change the board, palette, rules
or animation lengths.

With --config, the given file is loaded and validated instead.

Examples:
  match3 config > ~/.match3/configs/match3.yaml
  match3 config --config ./my-match3.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfig == "" {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: OK (%dx%d board, %d of %d tile kinds, %ds, target %d)\n",
		flagConfig, cfg.Board.Width, cfg.Board.Height, cfg.Board.TileTypes,
		len(cfg.Tiles), cfg.Rules.DurationSeconds, cfg.Rules.TargetScore)
}
