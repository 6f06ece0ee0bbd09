package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hopbunny/internal/leaderboard"
	"github.com/vovakirdan/hopbunny/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores and the player's personal best.
With --player the player's full session history is listed too.

Examples:
  hopbunny scores
  hopbunny scores --player alice
  hopbunny scores --player alice --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the player's scores (all scores without --player)")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		target := leaderboard.NormalizePlayer(flagPlayer)
		if err := store.ClearScores(target); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		if target == "" {
			fmt.Println("Cleared all scores.")
		} else {
			fmt.Printf("Cleared scores for %s.\n", target)
		}
		return
	}

	history := leaderboard.NormalizePlayer(flagPlayer) != ""
	if err := printScores(os.Stdout, store, currentPlayer(), history); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
	}
}

// printScores writes the leaderboard, the board best and the player's
// stats. With history set it also lists every session of the player.
func printScores(w io.Writer, store *storage.Store, player string, history bool) error {
	entries, err := store.Leaderboard(leaderboard.DefaultLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Hop Bunny - Leaderboard")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'hopbunny play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")

	for _, e := range entries {
		mark := " "
		if e.Player == player {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-4d  %-16s  %-10d  %s\n", mark, e.Rank, e.Player, e.Score, e.Date.Local().Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Board best: %d\n", best)

	stats, err := store.PlayerStats(player)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: best %d", player, stats.HighScore)
	if stats.GamesCount > 0 {
		fmt.Fprintf(w, ", %d games, avg %.0f, last played %s",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)

	if !history {
		return nil
	}

	sessions, err := store.PlayerScores(player)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "History of %s:\n", player)
	if len(sessions) == 0 {
		fmt.Fprintln(w, "  no sessions")
		return nil
	}
	for _, sc := range sessions {
		fmt.Fprintf(w, "  %-10d  %s\n", sc.Score, sc.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
