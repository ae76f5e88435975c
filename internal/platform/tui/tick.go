// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/loop"
)

// FrameMsg is sent to run one frame. It carries the token it was scheduled
// under; frames from a stopped loop are dropped.
type FrameMsg struct {
	Token loop.Token
	Time  time.Time
}

// frameCmd schedules the next frame after interval.
func frameCmd(tok loop.Token, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Token: tok, Time: t}
	})
}
