package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pyro/internal/registry"
	"github.com/vovakirdan/tui-pyro/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent levels",
	Long: `Display the top scores and the most recently played levels of a mode
(default: pyro).

Examples:
  pyro scores
  pyro scores pyro_endless --limit 20
  pyro scores pyro --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored scores of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "pyro"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'pyro list' to see available modes", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("\nPlay 'pyro play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Levels", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Levels, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	levels, err := store.RecentLevels(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(levels) > 0 {
		fmt.Printf("\nRecent Levels\n\n")
		fmt.Printf("  %-5s  %-8s  %-10s  %-6s  %-6s\n", "Level", "Outcome", "Walls", "Points", "Ticks")
		for _, r := range levels {
			walls := fmt.Sprintf("%d/%d", r.WallsLeft, r.Baseline)
			fmt.Printf("  %-5d  %-8s  %-10s  %-6d  %-6d\n", r.Number, r.Outcome, walls, r.Increment, r.Ticks)
		}
	}

	high, err := store.HighScore(gameID)
	if err == nil {
		fmt.Printf("\nBest: %d\n", high)
	}
	return nil
}
