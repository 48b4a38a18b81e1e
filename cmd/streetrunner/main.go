// streetrunner is a three-lane endless runner for the terminal.
//
// Usage:
//
//	streetrunner play         - Play in this terminal
//	streetrunner simulate     - Run the autopilot headless and print a summary
//	streetrunner scores       - Show the run history
//	streetrunner serve        - Start SSH server for remote play
//	streetrunner sectors      - List narrative backends and sectors
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Set database path (default: ~/.streetrunner/runs.db)
//	--config <path>       - Use a custom runner config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "streetrunner",
	Short: "Street Runner - dodge traffic on a three-lane highway in your terminal",
	Long: `Street Runner is an endless runner for the terminal. Switch lanes, jump
over cones and cars, collect coins and push through sector after sector
of an ever faster highway.

Available commands:
  play      - Play in this terminal
  simulate  - Let the autopilot drive and print a summary
  scores    - View the run history
  serve     - Start SSH server for remote play
  sectors   - List narrative backends and sectors

Examples:
  streetrunner play
  streetrunner play --difficulty hard
  streetrunner simulate --runs 5 --seed 42
  streetrunner scores --tui
  streetrunner serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for spawn draws (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.streetrunner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sectorsCmd)
}
