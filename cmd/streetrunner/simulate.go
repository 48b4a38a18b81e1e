package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/streetrunner/internal/autopilot"
	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/engine"
	"github.com/vovakirdan/streetrunner/internal/narrative"
	"github.com/vovakirdan/streetrunner/internal/storage"
)

// autopilotPlayer is the player name simulated runs are stored under.
const autopilotPlayer = "autopilot"

var (
	flagSimFrames int
	flagSimRuns   int
	flagSimSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot drive and print a summary",
	Long: `Run the engine headless with the autopilot at a fixed frame step and
print a summary of every run. Useful for tuning configs and presets.

Phase content is fetched synchronously: the run waits for each sector
before the next frame, so the same --seed and config replay the same run.

Examples:
  streetrunner simulate
  streetrunner simulate --frames 10000 --runs 5 --seed 42
  streetrunner simulate --difficulty hard --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Maximum frames per run")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished runs in the database as player 'autopilot'")
}

// runSummary describes one simulated run.
type runSummary struct {
	Frames   int
	Crashed  bool
	Score    int
	Phase    int
	World    string
	Elapsed  time.Duration
	Spawned  int
	Outcomes map[engine.OutcomeKind]int
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSimFrames <= 0 || flagSimRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --frames and --runs must be positive")
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	gen := newGenerator(cfg.Narrative, logger)
	pilot := autopilot.New(cfg)
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for i := range flagSimRuns {
		sum := simulateRun(cfg, gen, engine.NewSeededSource(seed+int64(i)), logger, pilot, flagSimFrames)
		fmt.Println(formatSummary(i+1, sum))

		if store != nil && sum.Score > 0 {
			_, saveErr := store.SaveRun(storage.Run{
				Player:   autopilotPlayer,
				Score:    sum.Score,
				Phase:    sum.Phase,
				World:    sum.World,
				Duration: sum.Elapsed,
			})
			if saveErr != nil {
				logger.Error("failed to save run", "err", saveErr)
			}
		}
	}
}

// simulateRun plays one run with a fresh engine until it crashes or
// maxFrames unit steps have passed. Every phase request is awaited before
// the next frame so the speed step always lands on the same frame.
func simulateRun(cfg config.RunnerConfig, gen narrative.Generator, rng engine.RandomSource,
	logger *log.Logger, pilot *autopilot.Pilot, maxFrames int) runSummary {
	eng := engine.New(engine.Options{
		Config:    cfg,
		Generator: gen,
		Random:    rng,
		Logger:    logger,
	})
	defer eng.Close()

	step := engine.DurationForStep(1)
	sum := runSummary{Outcomes: make(map[engine.OutcomeKind]int)}

	awaitPhase := func() {
		if gen == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Narrative.Timeout)
		defer cancel()
		eng.AwaitPhase(ctx)
	}

	eng.Start()
	awaitPhase()
	for sum.Frames < maxFrames {
		for _, in := range pilot.Decide(eng.Snapshot()) {
			eng.Enqueue(in)
		}
		res := eng.Advance(step)
		sum.Frames++
		if res.Spawned != nil {
			sum.Spawned++
		}
		if res.PhaseRequested > 0 {
			awaitPhase()
		}
		for _, o := range res.Outcomes {
			sum.Outcomes[o.Kind]++
		}
		if res.GameOver {
			sum.Crashed = true
			break
		}
	}
	eng.Pump()

	s := eng.Snapshot()
	sum.Score = s.Score
	sum.Phase = s.Phase
	sum.World = s.CurrentWorld
	sum.Elapsed = s.Elapsed
	return sum
}

func formatSummary(n int, s runSummary) string {
	end := "survived"
	if s.Crashed {
		end = "crashed"
	}
	return fmt.Sprintf("Run %d: %s after %d frames (%s)\n"+
		"  Score: %d  Sector: %d  World: %s\n"+
		"  Spawned: %d  Coins: %d  Cleared: %d  Hits: %d",
		n, end, s.Frames, s.Elapsed.Round(time.Millisecond),
		s.Score, s.Phase, s.World,
		s.Spawned, s.Outcomes[engine.OutcomeCollected], s.Outcomes[engine.OutcomeCleared], s.Outcomes[engine.OutcomeHit])
}
