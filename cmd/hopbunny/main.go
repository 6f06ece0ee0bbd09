// hopbunny is an endless hopping game for the terminal, a desktop window
// and SSH.
//
// Usage:
//
//	hopbunny play            - Play in the terminal
//	hopbunny menu            - Start menu with the leaderboard
//	hopbunny window          - Play in a desktop window
//	hopbunny serve           - Start SSH server for remote play
//	hopbunny scores          - Show the leaderboard
//	hopbunny config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.hopbunny/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <name>       - Name for high scores (default: OS user)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hopbunny",
	Short: "Hop Bunny - an endless hopping game",
	Long: `Hop Bunny is an endless vertical hopping game. Bounce from platform
to platform, climb as high as you can and don't fall off the screen.

Available commands:
  play     - Play directly in the terminal
  menu     - Start menu with the leaderboard
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  config   - Print the effective configuration

Examples:
  hopbunny play
  hopbunny play --difficulty hard
  hopbunny menu --player alice
  hopbunny window --scale 1.5
  hopbunny serve --ssh :2222
  hopbunny scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hopbunny/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name (default: current OS user)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
