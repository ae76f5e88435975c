package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/progress"
)

// screenKind is what a SessionModel is currently showing.
type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the scoreboard reachable from the menu. It is used for local play
// and for every SSH connection.
type SessionModel struct {
	env        Env
	config     core.RuntimeConfig
	profile    *progress.Profile
	current    screenKind
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	err        error
	quitting   bool
}

// NewSessionModel creates a new session model and loads the profile.
func NewSessionModel(env Env, cfg core.RuntimeConfig) SessionModel {
	profile := env.loadProfile()
	return SessionModel{
		env:     env,
		config:  cfg,
		profile: profile,
		menu:    NewMenuModel(profile, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.env.Store, m.profile, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		gameModel, err := NewGameModel(m.env, selected.GameID, m.profile, m.config)
		if err != nil {
			m.env.logger().Error("could not start game", "game", selected.GameID, "err", err)
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.gameModel = &gameModel
		m.current = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.toMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		// Drop the scoreboard's own tea.Quit; the session goes on.
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) toMenu() {
	m.current = screenMenu
	m.menu = NewMenuModel(m.profile, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Profile returns the session profile.
func (m SessionModel) Profile() *progress.Profile {
	return m.profile
}

// RunSession runs the menu-driven session on the local terminal.
func RunSession(env Env, cfg core.RuntimeConfig) error {
	w, h, err := CheckTerminal(os.Stdout)
	if err != nil {
		return err
	}
	cfg.ScreenW, cfg.ScreenH = w, h

	p := tea.NewProgram(
		NewSessionModel(env, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(SessionModel); ok {
		if sm.gameModel != nil {
			sm.gameModel.Stop()
		}
		return sm.Err()
	}
	return nil
}
