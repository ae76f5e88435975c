package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/loop"
	"github.com/vovakirdan/flappy-arcade/internal/progress"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// toastDuration is how long an achievement notice stays in the status bar.
const toastDuration = 3 * time.Second

// frameState is the part of a GameModel touched from the frame callback.
// Bubble Tea copies models by value, so every copy shares one frameState.
type frameState struct {
	game    registry.Game
	driver  *loop.Driver
	token   loop.Token
	input   core.InputFrame
	result  core.StepResult
	stepped bool
	pending bool // a FrameMsg is in flight
}

// GameModel runs one game with a frame loop, input mapping, audio and
// progress tracking.
type GameModel struct {
	env        Env
	fs         *frameState
	profile    *progress.Profile
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	logger     *log.Logger
	gameState  core.GameState
	toast      string
	toastUntil time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the game, resets it and starts its frame loop.
// The bottom row of the terminal is kept for the status bar.
func NewGameModel(env Env, gameID string, profile *progress.Profile, cfg core.RuntimeConfig) (GameModel, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := env.logger().WithPrefix(gameID)

	game, err := registry.Create(gameID, registry.Deps{
		Config: env.Config,
		Tracker: &runRecorder{
			profile: profile,
			store:   env.Store,
			gameID:  gameID,
			logger:  logger,
		},
		Logger: logger,
	})
	if err != nil {
		return GameModel{}, err
	}
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	fs := &frameState{game: game, input: core.NewInputFrame()}
	fs.driver = loop.New(loop.Options{
		Step: func(dt time.Duration) {
			fs.result = fs.game.Step(dt, fs.input)
			fs.stepped = true
			fs.input.Clear()
		},
		OnHidden: game.Pause,
		MaxDelta: max(loop.MaxDelta, cfg.FrameDuration()),
		Nominal:  cfg.FrameDuration(),
	})
	fs.token = fs.driver.Start()

	return GameModel{
		env:       env,
		fs:        fs,
		profile:   profile,
		screen:    core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		logger:    logger,
		gameState: game.State(),
	}, nil
}

// Init schedules the first frame.
func (m GameModel) Init() tea.Cmd {
	return m.schedule()
}

func (m GameModel) schedule() tea.Cmd {
	if m.fs.pending || !m.fs.driver.Valid(m.fs.token) || m.fs.driver.Hidden() {
		return nil
	}
	m.fs.pending = true
	return frameCmd(m.fs.token, m.config.FrameDuration())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.fs.input.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The viewport rescales the world; the run keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		return m, nil

	case tea.BlurMsg:
		m.fs.driver.SetHidden(true)
		m.gameState = m.fs.game.State()
		return m, nil

	case tea.FocusMsg:
		m.fs.driver.SetHidden(false)
		return m, m.schedule()

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.Stop()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Back to menu only when nothing is in motion
		if m.gameState.GameOver || m.gameState.Paused {
			m.Stop()
			m.backToMenu = true
		}
		return m, nil

	case action != core.ActionNone:
		m.fs.input.Set(action)
	}
	return m, nil
}

// handleFrame runs one frame and schedules the next.
func (m GameModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if msg.Token != m.fs.token {
		// Scheduled by a loop that has since stopped.
		return m, nil
	}
	m.fs.pending = false

	if _, ok := m.fs.driver.Frame(msg.Token, msg.Time); ok && m.fs.stepped {
		m.fs.stepped = false
		m.afterStep(m.fs.result, msg.Time)
	}
	return m, m.schedule()
}

// afterStep plays cues and surfaces unlocks from the last step.
func (m *GameModel) afterStep(res core.StepResult, now time.Time) {
	wasOver := m.gameState.GameOver
	m.gameState = res.State

	if m.env.Audio != nil {
		m.env.Audio.PlayAll(res.Cues)
	}

	if len(res.Unlocked) > 0 {
		titles := make([]string, 0, len(res.Unlocked))
		for _, id := range res.Unlocked {
			if a, ok := progress.Lookup(id); ok {
				titles = append(titles, a.Title)
				m.logger.Info("achievement unlocked", "id", id, "reward", a.Reward)
			}
		}
		m.toast = "Achievement unlocked: " + strings.Join(titles, ", ")
		m.toastUntil = now.Add(toastDuration)
	}

	if res.State.GameOver && !wasOver && res.State.NewBest {
		m.toast = fmt.Sprintf("New best: %d", res.State.Score)
		m.toastUntil = now.Add(toastDuration)
	}
	if !m.toastUntil.IsZero() && now.After(m.toastUntil) {
		m.toast = ""
		m.toastUntil = time.Time{}
	}
}

// Stop cancels the frame loop. Pending frames are dropped when they arrive.
func (m GameModel) Stop() {
	m.fs.driver.Stop()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.fs.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.fs.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.toast = "Saved " + path
	m.toastUntil = time.Now().Add(toastDuration)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.fs.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusBar()
}

func (m GameModel) statusBar() string {
	audioState := "muted"
	if m.env.Audio != nil && m.env.Audio.Enabled() {
		audioState = "sound"
	}
	left := fmt.Sprintf("%s  best %d  coins %d  %s",
		m.profile.Name(), m.profile.Best(), m.profile.Coins(), audioState)
	return renderStatusBar(left, m.toast, m.config.ScreenW)
}

// Game returns the running game.
func (m GameModel) Game() registry.Game {
	return m.fs.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game on the local terminal.
func Run(env Env, gameID string, cfg core.RuntimeConfig) error {
	w, h, err := CheckTerminal(os.Stdout)
	if err != nil {
		return err
	}
	cfg.ScreenW, cfg.ScreenH = w, h

	model, err := NewGameModel(env, gameID, env.loadProfile(), cfg)
	if err != nil {
		return err
	}
	defer model.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flap
		tea.WithReportFocus(),     // Blur pauses the game
	)

	_, err = p.Run()
	return err
}
