package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopbunny/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start playing Hop Bunny in the terminal.

Controls:
  Space/Enter/Up  - Start
  Left/Right/A/D  - Steer (Down stops steering)
  P/Esc           - Pause
  R               - Restart
  Q/Ctrl+C        - Quit
  Ctrl+S          - Save a screenshot

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  hopbunny play
  hopbunny play --difficulty easy
  hopbunny play --seed 42 --player alice
  hopbunny play --config ./my-hop.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(true)
	defer closeLog()

	svc := mustServices(logger)

	cfg := runtimeConfig(terminalSize())
	logger.Info("starting game", "player", cfg.Player, "seed", cfg.Seed)

	// Run the game
	runErr := tui.Run(svc.newGame(), cfg, logger)

	// Flush scores before potential exit
	svc.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
