package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/streetrunner/internal/core"
)

// KeyMap defines the key bindings of the game screen.
// It translates Bubble Tea key messages to engine intents and keeps
// bindings in one testable place.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Start      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Start, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Start, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left lane"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right lane"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w", "k"),
			key.WithHelp("space/↑", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "start"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Intent translates a key message to an engine intent.
// Returns the intent (may be IntentNone) and whether it's a quit request.
func (k KeyMap) Intent(msg tea.KeyMsg) (intent core.Intent, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.IntentNone, true
	case key.Matches(msg, k.Left):
		return core.IntentMoveLeft, false
	case key.Matches(msg, k.Right):
		return core.IntentMoveRight, false
	case key.Matches(msg, k.Jump):
		return core.IntentJump, false
	case key.Matches(msg, k.Start):
		return core.IntentStart, false
	}
	return core.IntentNone, false
}
