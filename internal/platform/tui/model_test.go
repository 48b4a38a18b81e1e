package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/engine"
	"github.com/vovakirdan/streetrunner/internal/storage"
)

// carAhead always spawns a car in the center lane.
type carAhead struct{}

func (carAhead) Float64() float64 { return 0.5 }
func (carAhead) Intn(int) int     { return 1 }

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	cfg.Spawner.BaseInterval = time.Millisecond

	eng := engine.New(engine.Options{Config: cfg, Random: carAhead{}})
	t.Cleanup(eng.Close)

	return NewModel(Options{Engine: eng, Store: store, FPS: 60, Width: 80, Height: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestModelStartsOnEnter(t *testing.T) {
	m := newTestModel(t, nil)
	if m.State().Status != engine.StatusIdle {
		t.Fatalf("new model status = %v, want IDLE", m.State().Status)
	}

	t0 := time.Unix(1000, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0))
	if m.State().Status != engine.StatusPlaying {
		t.Fatalf("status after enter = %v, want PLAYING", m.State().Status)
	}

	m = update(t, m, TickMsg(t0.Add(engine.DurationForStep(1))))
	if m.State().Score != 1 {
		t.Errorf("score after one frame = %d, want 1", m.State().Score)
	}
}

func TestModelMovesLanes(t *testing.T) {
	m := newTestModel(t, nil)
	t0 := time.Unix(1000, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg(t0.Add(10*time.Millisecond)))
	if m.State().Lane != engine.LaneLeft {
		t.Errorf("lane = %d, want left", m.State().Lane)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model not quitting after q")
	}
	if next.View() != "" {
		t.Error("quitting model still renders")
	}
}

func TestModelSavesRunOnCrash(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	now := time.Unix(1000, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(now))

	// Clamped 250ms frames bring the cars in quickly.
	for i := 0; i < 100 && m.State().Status == engine.StatusPlaying; i++ {
		now = now.Add(250 * time.Millisecond)
		m = update(t, m, TickMsg(now))
	}
	if m.State().Status != engine.StatusGameOver {
		t.Fatalf("run did not end, status %v", m.State().Status)
	}

	// More frames after the crash must not record the run twice.
	for i := 0; i < 3; i++ {
		now = now.Add(20 * time.Millisecond)
		m = update(t, m, TickMsg(now))
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Score != m.State().Score || runs[0].Player != storage.LocalPlayer {
		t.Errorf("saved run %+v does not match state score %d", runs[0], m.State().Score)
	}
	if m.highScore != runs[0].Score {
		t.Errorf("high score = %d, want %d", m.highScore, runs[0].Score)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
	if m.View() == "" {
		t.Error("empty view after resize")
	}
}
