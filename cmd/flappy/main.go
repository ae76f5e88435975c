// flappy is a terminal flappy game with power-ups, combos, biomes and
// persistent progress.
//
// Usage:
//
//	flappy                  - Start the menu
//	flappy play [game]      - Play a game directly
//	flappy list             - List available modes
//	flappy scores [game]    - Show the run history
//	flappy stats            - Show profile stats and achievements
//	flappy replay           - Run a seeded game headless and print the outcome
//	flappy config           - Print the effective configuration
//	flappy serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/flappy.db)
//	--profile <name>    - Profile to load (default: $USER)
//	--config <path>     - Custom config YAML
//	--difficulty <name> - easy, normal, hard or fixed
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination (default: ~/.arcade/flappy.log)
//	--mute              - Disable sound
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/audio"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
)

// logger is the root logger, set up before every command runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a flappy game for your terminal",
	Long: `Flappy is a terminal flappy game with power-ups, coin combos,
rotating biomes and weather, achievements and a run history.

Running flappy without a command opens the menu.

Controls:
  Space/W/Up/Click - Flap
  P/Esc            - Pause
  R                - Restart after game over
  D                - Debug overlay
  B                - Back to menu (paused or game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Examples:
  flappy
  flappy play flappy_classic --difficulty hard
  flappy replay --seed 42
  flappy serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to the progress database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile name (default: current user)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/flappy.log", "Log file path")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogger builds the root logger. The terminal belongs to the game, so
// logs go to a file unless the command is a plain console one.
func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if cmd.Name() != "serve" || cmd.Flags().Changed("log-file") {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "flappy",
	})
	return nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig loads the game configuration and applies --difficulty.
func loadConfig() (config.FlappyConfig, config.Source, error) {
	cfg, src, err := config.LoadFlappyWithSource(flagConfig)
	if err != nil {
		return cfg, src, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, src, err
		}
		config.ApplyFlappyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, src, err
		}
	}
	logger.Debug("config loaded", "source", src, "difficulty", flagDifficulty)
	return cfg, src, nil
}

// openStore opens the progress database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database; progress will not be saved", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		return nil
	}
	return store
}

// profileName picks the profile from --profile or the login name.
func profileName() string {
	if flagProfile != "" {
		return flagProfile
	}
	return os.Getenv("USER")
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newEnv wires the collaborators for a local terminal session. The caller
// closes the returned function when done.
func newEnv() (tui.Env, func(), error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return tui.Env{}, nil, err
	}

	store := openStore()
	player := audio.New(audio.Options{
		Muted:  flagMute,
		Logger: logger.WithPrefix("audio"),
	})
	if err := player.Start(); err != nil {
		// Already logged; the game runs silent.
		logger.Debug("continuing without sound", "err", err)
	}

	env := tui.Env{
		Config:  cfg,
		Store:   store,
		Audio:   player,
		Logger:  logger,
		Profile: profileName(),
	}
	cleanup := func() {
		player.Close()
		if store != nil {
			store.Close()
		}
	}
	return env, cleanup, nil
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, cleanup, err := newEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	return reportRender(tui.RunSession(env, runtimeConfig()))
}

// reportRender adds a hint when there is no terminal to draw on.
func reportRender(err error) error {
	if errors.Is(err, tui.ErrRenderUnavailable) {
		return fmt.Errorf("%w (try 'flappy replay' for a headless run)", err)
	}
	return err
}
