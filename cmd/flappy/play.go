package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the given game mode without the menu.

Difficulty options:
  easy   - Wider gaps, lighter gravity, progression from the start
  normal - Progression starts at 30%
  hard   - Narrower gaps, faster scroll, progression starts at 70%
  fixed  - No progression

Examples:
  flappy play
  flappy play flappy_classic
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := flappy.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'flappy list' to see available games)", gameID)
	}

	env, cleanup, err := newEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	return reportRender(tui.Run(env, gameID, runtimeConfig()))
}
