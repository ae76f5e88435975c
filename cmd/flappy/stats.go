package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/progress"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile stats and achievements",
	Long: `Display the lifetime counters, coin balance and achievement progress
of a profile.

With --reset the profile's best score, coins, stats and achievements are
erased. Run history is kept; use 'flappy scores --clear' for that.

Examples:
  flappy stats
  flappy stats --profile alice
  flappy stats --profile alice --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var flagStatsReset bool

func init() {
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Erase the profile's progress")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if flagStatsReset {
		name := tui.ProfileName(profileName())
		n, err := progress.Reset(store, name)
		if err != nil {
			return err
		}
		logger.Info("profile reset", "profile", name, "keys", n)
		fmt.Printf("Profile %s reset (%d entries removed)\n", name, n)
		return nil
	}

	p := progress.Load(store, tui.ProfileName(profileName()), logger.WithPrefix("progress"))
	s := p.Stats()

	fmt.Printf("Profile %s\n", p.Name())
	fmt.Println()
	fmt.Printf("  %-18s %d\n", "Best score", p.Best())
	fmt.Printf("  %-18s %d\n", "Coins", p.Coins())
	fmt.Printf("  %-18s %d\n", "Games played", s.GamesPlayed)
	fmt.Printf("  %-18s %s\n", "Play time", (time.Duration(s.TotalPlayTime * float64(time.Second))).Round(time.Second))
	fmt.Printf("  %-18s %d\n", "Pipes cleared", s.PipesCleared)
	fmt.Printf("  %-18s %d\n", "Coins collected", s.CoinsCollected)
	fmt.Printf("  %-18s %d\n", "Power-ups used", s.PowerUpsUsed)
	fmt.Printf("  %-18s %d\n", "Shields used", s.ShieldActivations)
	fmt.Printf("  %-18s %d\n", "Jumps", s.TotalJumps)
	fmt.Printf("  %-18s %d\n", "Crashes", s.CrashCount)
	fmt.Printf("  %-18s %d\n", "Perfect runs", s.PerfectRuns)

	fmt.Println()
	fmt.Printf("Achievements (%d/%d)\n", len(p.UnlockedIDs()), len(progress.Catalog))
	fmt.Println()
	for _, a := range progress.Catalog {
		mark := " "
		if p.IsUnlocked(a.ID) {
			mark = "x"
		}
		fmt.Printf("  [%s] %-20s %-5d %s\n", mark, a.Title, a.Reward, a.Description)
	}
	return nil
}
