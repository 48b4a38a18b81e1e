package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/streetrunner/internal/engine"
	"github.com/vovakirdan/streetrunner/internal/platform/tui"
	"github.com/vovakirdan/streetrunner/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in this terminal.

Controls:
  Left/A, Right/D  - Change lane
  Space/Up/W       - Jump
  Enter/R          - Start (again after a crash)
  Ctrl+S           - Screenshot
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, sparser traffic
  normal - Config values as they are
  hard   - Faster start, denser traffic

Logs go to a file because the game owns the screen.

Examples:
  streetrunner play
  streetrunner play --difficulty easy
  streetrunner play --config ./my-runner.yaml
  STREETRUNNER_NARRATIVE_BACKEND=http STREETRUNNER_NARRATIVE_URL=http://localhost:8080 streetrunner play`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.streetrunner/streetrunner.log", "Path to log file")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if f, fileErr := openLogFile(flagLogFile); fileErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", fileErr)
	} else {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "streetrunner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	eng := engine.New(engine.Options{
		Config:    cfg,
		Generator: newGenerator(cfg.Narrative, logger),
		Random:    newRandom(),
		Logger:    logger,
	})

	runErr := tui.Run(tui.Options{
		Engine: eng,
		Store:  store,
		FPS:    flagFPS,
		Width:  width,
		Height: height,
		Logger: logger,
	})

	eng.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
