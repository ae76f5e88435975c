package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/audio"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/progress"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// ErrRenderUnavailable is returned when there is no terminal to draw on.
var ErrRenderUnavailable = errors.New("render unavailable")

// Env holds the collaborators shared by every screen of a session.
type Env struct {
	Config  config.FlappyConfig
	Store   *storage.Store // nil keeps progress in memory only
	Audio   *audio.Player  // nil is silent
	Logger  *log.Logger
	Profile string
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// loadProfile reads the session profile from the store, or from memory when
// there is no store.
func (e Env) loadProfile() *progress.Profile {
	var kv progress.KV = progress.NewMemoryKV()
	if e.Store != nil {
		kv = e.Store
	}
	return progress.Load(kv, ProfileName(e.Profile), e.logger().WithPrefix("progress"))
}

// ProfileName turns a user name into a key-safe profile name.
func ProfileName(user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(user))
	if name == "" {
		return progress.DefaultProfile
	}
	return name
}

// CheckTerminal reports the size of f, or ErrRenderUnavailable when f is not
// a terminal.
func CheckTerminal(f *os.File) (width, height int, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, fmt.Errorf("tui: %w: %s is not a terminal", ErrRenderUnavailable, f.Name())
	}
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("tui: %w: %w", ErrRenderUnavailable, err)
	}
	return width, height, nil
}

// runRecorder forwards tracking to the profile and appends finished runs to
// the run history.
type runRecorder struct {
	profile *progress.Profile
	store   *storage.Store
	gameID  string
	logger  *log.Logger
}

func (r *runRecorder) Track(events []sim.Event) []string {
	return r.profile.Track(events)
}

func (r *runRecorder) FinishRun(run sim.RunSummary) (bool, []string) {
	newBest, unlocked := r.profile.FinishRun(run)
	r.logger.Info("run finished",
		"game", r.gameID,
		"profile", r.profile.Name(),
		"score", run.Score,
		"coins", run.Coins,
		"biome", run.Biome,
		"new_best", newBest,
	)

	if r.store == nil || run.Score <= 0 {
		return newBest, unlocked
	}
	_, err := r.store.SaveRun(storage.RunRecord{
		GameID:   r.gameID,
		Profile:  r.profile.Name(),
		Score:    run.Score,
		Coins:    run.Coins,
		Seed:     run.Seed,
		Ticks:    int64(run.Ticks),
		Duration: run.PlayTime,
		Biome:    run.Biome,
		Perfect:  run.Perfect,
	})
	if err != nil {
		r.logger.Warn("could not save run", "err", err)
	}
	return newBest, unlocked
}
