package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/progress"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTable bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the run history for a game",
	Long: `Display the best runs of the current profile for a game mode.

With --table the interactive scoreboard opens instead. With --clear the
run history of the game mode is deleted for every profile.

Examples:
  flappy scores
  flappy scores flappy_classic --limit 20
  flappy scores --table
  flappy scores flappy_classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := flappy.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'flappy list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		logger.Info("run history cleared", "game", gameID)
		fmt.Printf("Run history of %s cleared\n", titleOf(gameID))
		return nil
	}

	profile := progress.Load(store, tui.ProfileName(profileName()), logger.WithPrefix("progress"))

	if flagScoresTable {
		w, h, err := tui.CheckTerminal(os.Stdout)
		if err != nil {
			return reportRender(err)
		}
		_, err = tui.RunScoreboard(store, profile, w, h)
		return err
	}

	runs, err := store.TopRuns(gameID, profile.Name(), flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s (%s)\n", titleOf(gameID), profile.Name())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-10s  %-7s  %s\n", "Rank", "Score", "Coins", "Biome", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-10s  %-7s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, r := range runs {
		score := fmt.Sprintf("%d", r.Score)
		if r.Perfect {
			score += "*"
		}
		fmt.Printf("  %-4d  %-7s  %-5d  %-10s  %-7s  %s\n",
			i+1, score, r.Coins, r.Biome, fmt.Sprintf("%.1fs", r.Duration.Seconds()), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("All profiles: %d runs, best %d, average %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	fmt.Println("* perfect run")
	return nil
}

func titleOf(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
