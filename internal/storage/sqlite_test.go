package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Score: 1200, Phase: 2, World: "Neon Underpass", Duration: 40 * time.Second},
		{Score: 300, Phase: 1, World: "Downtown Highway", Duration: 9 * time.Second},
		{Player: "alice", Score: 2500, Phase: 3, World: "Harbor Expressway", Duration: 95 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	if top[0].Score != 2500 || top[1].Score != 1200 || top[2].Score != 300 {
		t.Errorf("Runs not sorted by score: %+v", top)
	}
	if top[0].Player != "alice" {
		t.Errorf("Expected player alice, got %q", top[0].Player)
	}
	if top[1].Player != LocalPlayer {
		t.Errorf("Expected default player %q, got %q", LocalPlayer, top[1].Player)
	}
	if top[1].World != "Neon Underpass" || top[1].Phase != 2 {
		t.Errorf("World/phase not stored: %+v", top[1])
	}
	if top[0].Duration != 95*time.Second {
		t.Errorf("Expected duration 95s, got %v", top[0].Duration)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Score: (i + 1) * 100, Phase: 1})
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 30, 20} {
		store.SaveRun(Run{Score: score, Phase: 1})
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].Score != 30 {
		t.Errorf("Expected newest first [20 30], got %+v", recent)
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "bob", Score: 50, Phase: 1})
	store.SaveRun(Run{Player: "carol", Score: 70, Phase: 1})
	store.SaveRun(Run{Player: "bob", Score: 90, Phase: 1})

	runs, err := store.PlayerRuns("bob", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 90 {
		t.Errorf("Expected bob's two runs best first, got %+v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty history, got %d", high)
	}

	store.SaveRun(Run{Score: 100, Phase: 1})
	store.SaveRun(Run{Score: 300, Phase: 1})
	store.SaveRun(Run{Score: 200, Phase: 1})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Score: -1}); err == nil {
		t.Error("Expected error for negative score")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{Score: 1000, Phase: 2, Duration: 30 * time.Second})
	store.SaveRun(Run{Score: 3000, Phase: 4, Duration: 90 * time.Second})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.Runs)
	}
	if stats.HighScore != 3000 {
		t.Errorf("Expected high score 3000, got %d", stats.HighScore)
	}
	if stats.AvgScore != 2000 {
		t.Errorf("Expected average 2000, got %v", stats.AvgScore)
	}
	if stats.BestPhase != 4 {
		t.Errorf("Expected best phase 4, got %d", stats.BestPhase)
	}
	if stats.TotalTime != 2*time.Minute {
		t.Errorf("Expected total time 2m, got %v", stats.TotalTime)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Score: 100, Phase: 1})
	store.SaveRun(Run{Score: 200, Phase: 1})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	top, _ := store.TopRuns(10)
	if len(top) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(top))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.streetrunner/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".streetrunner", "runs.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under HOME")
	}
}
