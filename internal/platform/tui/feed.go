package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/streetrunner/internal/engine"
)

// feedSize is how many sector narratives the feed keeps.
const feedSize = 5

// FeedEntry is one sector narrative as it arrived during a run.
type FeedEntry struct {
	At       time.Time
	Phase    int
	World    string
	Text     string
	Distance int // score when the sector was entered
}

// Line formats the entry for the side panel.
func (e FeedEntry) Line() string {
	return fmt.Sprintf("%s P%d @%dm %s", e.At.Format("15:04:05"), e.Phase, e.Distance, e.World)
}

// Feed is a bounded log of sector narratives, newest last.
type Feed struct {
	entries []FeedEntry
}

// Push records the sector the state just entered.
func (f *Feed) Push(at time.Time, s engine.GameState) {
	f.entries = append(f.entries, FeedEntry{
		At:       at,
		Phase:    s.Phase,
		World:    s.CurrentWorld,
		Text:     s.Narrative,
		Distance: s.Score,
	})
	if len(f.entries) > feedSize {
		f.entries = f.entries[len(f.entries)-feedSize:]
	}
}

// Entries returns the entries, oldest first.
func (f *Feed) Entries() []FeedEntry {
	return f.entries
}

// Reset empties the feed.
func (f *Feed) Reset() {
	f.entries = nil
}
