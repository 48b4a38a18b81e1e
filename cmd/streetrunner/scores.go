package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/streetrunner/internal/platform/tui"
	"github.com/vovakirdan/streetrunner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs with their sector and duration.

Examples:
  streetrunner scores
  streetrunner scores --limit 25
  streetrunner scores --player alice
  streetrunner scores --tui
  streetrunner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history in an interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.Run
	if flagScoresPlayer != "" {
		runs, err = store.PlayerRuns(flagScoresPlayer, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Street Runner")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'streetrunner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-20s  %-8s  %-10s  %s\n", "Rank", "Score", "Sector", "World", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-20s  %-8s  %-10s  %s\n", "----", "-----", "------", "-----", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-20s  %-8s  %-10s  %s\n",
			i+1, r.Score, r.Phase, r.World, r.Duration.Round(100_000_000), r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Best sector: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.BestPhase)
	}
}
