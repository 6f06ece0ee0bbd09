package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopbunny/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a menu",
	Long: `Start Hop Bunny in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game (B/Esc when idle, paused or over) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  hopbunny menu
  hopbunny menu --fps 30
  hopbunny menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(true)
	defer closeLog()

	svc := mustServices(logger)

	cfg := runtimeConfig(terminalSize())
	runErr := tui.RunSession(svc.gameFactory(), svc.board(), cfg, logger)

	svc.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
