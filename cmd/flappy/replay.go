package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/loop"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

var (
	flagReplayTicks  int
	flagReplayScreen bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [game]",
	Short: "Run a seeded game headless and print the outcome",
	Long: `Play a game without a terminal using a simple autopilot and fixed
frame times. The same seed and config always give the same outcome, which
makes replay useful for checking config changes.

Replays are not recorded in the run history.

Examples:
  flappy replay --seed 42
  flappy replay flappy_classic --seed 7 --ticks 3600 --screen`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplayTicks, "ticks", 60*60, "Maximum number of frames to simulate")
	replayCmd.Flags().BoolVar(&flagReplayScreen, "screen", false, "Print the final frame")
}

func runReplay(_ *cobra.Command, args []string) error {
	gameID := flappy.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	rc := runtimeConfig()
	if rc.Seed == 0 {
		rc.Seed = 1
	}
	game, err := registry.Create(gameID, registry.Deps{Config: cfg, Logger: logger.WithPrefix("replay")})
	if err != nil {
		return err
	}
	if err := game.Reset(rc); err != nil {
		return err
	}
	fg, ok := game.(*flappy.Game)
	if !ok {
		return fmt.Errorf("replay is not supported for %q", gameID)
	}

	res := replay(fg, rc.FrameDuration(), flagReplayTicks)

	snap := fg.Snapshot()
	fmt.Printf("Replay %s seed %d\n", gameID, rc.Seed)
	fmt.Println()
	fmt.Printf("  %-10s %d\n", "Frames", res.frames)
	fmt.Printf("  %-10s %d\n", "Score", snap.Score)
	fmt.Printf("  %-10s %d\n", "Coins", snap.RunCoins)
	fmt.Printf("  %-10s %d\n", "Pipes", snap.Stats.Pipes)
	fmt.Printf("  %-10s %d\n", "Jumps", snap.Stats.Jumps)
	fmt.Printf("  %-10s %s\n", "Biome", snap.BiomeInfo().Name)
	fmt.Printf("  %-10s %.1fs\n", "Play time", snap.PlayTime.Seconds())
	fmt.Printf("  %-10s %d\n", "Cues", res.cues)
	fmt.Printf("  %-10s %s\n", "Outcome", res.outcome(snap))

	if flagReplayScreen {
		screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
		game.Render(screen)
		fmt.Println()
		for y := range screen.Height() {
			fmt.Println(strings.TrimRight(screen.Row(y), " "))
		}
	}
	return nil
}

type replayResult struct {
	frames uint64
	cues   int
}

func (r replayResult) outcome(snap sim.Snapshot) string {
	switch {
	case snap.Phase == sim.PhaseGameOver:
		return "crashed"
	case r.frames == 0:
		return "not started"
	}
	return "alive"
}

// replay steps the game through a loop driver with synthetic frame times
// until it ends or the frame budget runs out.
func replay(g *flappy.Game, frame time.Duration, maxFrames int) replayResult {
	var res replayResult
	in := core.NewInputFrame()
	d := loop.New(loop.Options{
		Step: func(dt time.Duration) {
			step := g.Step(dt, in)
			res.cues += len(step.Cues)
		},
		MaxDelta: max(loop.MaxDelta, frame),
		Nominal:  frame,
	})
	tok := d.Start()
	defer d.Stop()

	now := time.Unix(0, 0)
	for range maxFrames {
		in.Clear()
		if autopilot(g.Snapshot()) {
			in.Set(core.ActionJump)
		}
		now = now.Add(frame)
		if _, ok := d.Frame(tok, now); !ok {
			break
		}
		if g.State().GameOver {
			break
		}
	}
	res.frames = d.Frames()
	return res
}

// autopilot flaps when the bird has sunk below the middle of the next gap.
func autopilot(snap sim.Snapshot) bool {
	p := snap.Player
	w := snap.World
	target := (w.Height - w.GroundHeight) / 2
	for _, o := range snap.Obstacles {
		if o.X+w.ObstacleWidth >= p.X-p.Radius {
			target = o.GapTop + w.GapSize/2
			break
		}
	}
	return p.Y > target+w.GapSize/6 && p.VY >= 0
}
