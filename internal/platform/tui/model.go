package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/engine"
	"github.com/vovakirdan/streetrunner/internal/storage"
)

// Options configures a game model.
type Options struct {
	Engine *engine.Engine // required; the caller closes it
	Store  *storage.Store // nil disables run history
	Player string         // recorded with saved runs
	FPS    int
	Width  int
	Height int
	Logger *log.Logger
}

// Model is the Bubble Tea model for one player's game screen.
type Model struct {
	eng       *engine.Engine
	screen    *core.Screen
	store     *storage.Store
	player    string
	fps       int
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	state     engine.GameState
	feed      *Feed
	flash     string
	flashTTL  int // frames left to show flash
	highScore int
	run       uint64 // run the saved flag refers to
	saved     bool   // whether the current run has been recorded
	quitting  bool
}

// NewModel creates a new game model around an idle engine.
func NewModel(opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = storage.LocalPlayer
	}

	m := Model{
		eng:    opts.Engine,
		screen: core.NewScreen(opts.Width, max(opts.Height-1, 0)),
		store:  opts.Store,
		player: player,
		fps:    fps,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
		state:  opts.Engine.Snapshot(),
		feed:   &Feed{},
	}
	m.help.Width = opts.Width

	if m.store != nil {
		high, err := m.store.HighScore()
		if err != nil {
			logger.Warn("could not read high score", "err", err)
		}
		m.highScore = high
	}
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey turns keyboard input into intents for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	intent, isQuit := m.keys.Intent(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.eng.Enqueue(intent)
	return m, nil
}

// handleTick runs one engine frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	res := m.eng.Tick(now)
	m.state = m.eng.Snapshot()

	if m.state.Run != m.run {
		m.run = m.state.Run
		m.saved = false
		m.feed.Reset()
	}

	if res.PhaseApplied > 0 {
		m.feed.Push(now, m.state)
		m.setFlash(fmt.Sprintf("Sector %d: %s", m.state.Phase, m.state.CurrentWorld))
	}
	for _, o := range res.Outcomes {
		m.setFlash(outcomeText(o))
	}

	if m.state.Status == engine.StatusGameOver && !m.saved {
		m.saveRun()
		m.saved = true
	}

	if m.flashTTL > 0 {
		m.flashTTL--
		if m.flashTTL == 0 {
			m.flash = ""
		}
	}

	return m, tickCmd(m.fps)
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashTTL = m.fps
}

func outcomeText(o engine.Outcome) string {
	switch o.Kind {
	case engine.OutcomeCollected:
		return fmt.Sprintf("+%d coin", o.Points)
	case engine.OutcomeCleared:
		if o.Points > 0 {
			return fmt.Sprintf("+%d clean jump", o.Points)
		}
		return "cleared " + o.Entity.Model.String()
	case engine.OutcomeHit:
		return "CRASH into " + o.Entity.Model.String()
	}
	return ""
}

// saveRun records the finished run. Best effort: the game continues regardless.
func (m *Model) saveRun() {
	s := m.state
	if s.Score > m.highScore {
		m.highScore = s.Score
	}
	if m.store == nil || s.Score <= 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		Player:   m.player,
		Score:    s.Score,
		Phase:    s.Phase,
		World:    s.CurrentWorld,
		Duration: s.Elapsed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "player", m.player, "score", s.Score, "phase", s.Phase)
}

// saveScreenshot saves the current screen to a file under the app directory.
func (m *Model) saveScreenshot() {
	Draw(m.screen, m.view())

	dir := filepath.Join(config.HomeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	filename := fmt.Sprintf("streetrunner_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.setFlash("saved " + filename)
}

func (m Model) view() View {
	return View{
		State:     m.state,
		HighScore: m.highScore,
		Flash:     m.flash,
		Feed:      m.feed.Entries(),
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.screen, m.view())
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last snapshot the model drew from.
func (m Model) State() engine.GameState {
	return m.state
}

// IsQuitting returns true if the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for the local terminal and blocks until
// the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
