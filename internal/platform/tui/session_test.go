package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func newTestSession() SessionModel {
	return NewSessionModel(Env{Profile: "sess"}, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 3})
}

func TestSessionStartsGame(t *testing.T) {
	m := newTestSession()
	if m.Profile().Name() != "sess" {
		t.Fatalf("profile = %q", m.Profile().Name())
	}

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatal("enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule a frame")
	}
	if id := m.gameModel.Game().ID(); id != flappy.GameID {
		t.Errorf("game = %q, want %q", id, flappy.GameID)
	}

	m, cmd = sessionUpdate(t, m, runeKey("q"))
	if cmd == nil || !m.quitting {
		t.Error("q in game should end the session")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession()

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatal("tab should open the scoreboard")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatal("back should return to the menu")
	}
	if m.quitting {
		t.Error("leaving the scoreboard must not end the session")
	}
	if m.Err() != nil {
		t.Errorf("Err = %v", m.Err())
	}
}
