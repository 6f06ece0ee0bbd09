package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopbunny/internal/platform/gui"
)

// Window size in world cells.
const (
	windowCellsW = 40
	windowCellsH = 48
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start Hop Bunny in a desktop window.

Controls:
  Space/Enter/Up  - Start
  Left/Right/A/D  - Steer while held
  P               - Pause
  R               - Restart
  Esc/Q           - Quit

Examples:
  hopbunny window
  hopbunny window --scale 2`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(false)
	defer closeLog()

	if flagScale <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --scale must be positive, got %v\n", flagScale)
		os.Exit(1)
	}

	svc := mustServices(logger)

	cfg := runtimeConfig(windowCellsW, windowCellsH)
	runErr := gui.Run(svc.newGame(), cfg, flagScale, logger)

	svc.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
