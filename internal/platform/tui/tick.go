// Package tui is the terminal front end of the runner: a Bubble Tea model that
// feeds key presses to the engine as intents, drives its frame loop from
// tea.Tick and draws snapshots. It also serves the same model over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// TickMsg is sent to trigger an engine frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
