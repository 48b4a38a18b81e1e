package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/streetrunner/internal/narrative"
)

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List narrative backends and the built-in sector catalogue",
	Long: `Shows the registered narrative backends and the sectors the static
backend cycles through. Pass --config to list a custom catalogue.`,
	Args: cobra.NoArgs,
	Run:  runSectors,
}

func runSectors(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Narrative backends:")
	for _, name := range narrative.List() {
		marker := " "
		if name == cfg.Narrative.Backend {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	fmt.Println()

	sectors, err := narrative.LoadCatalog(cfg.Narrative.Catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(sectors) == 0 {
		fmt.Println("No sectors in catalogue.")
		return
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range sectors {
		if len(s.SectorName) > maxNameLen {
			maxNameLen = len(s.SectorName)
		}
	}

	fmt.Println("Static sectors:")
	fmt.Println()
	fmt.Printf("  %-5s  %-*s  %s\n", "Phase", maxNameLen, "Name", "Image prompt")
	fmt.Printf("  %-5s  %-*s  %s\n", "-----", maxNameLen, "----", "------------")
	for i, s := range sectors {
		fmt.Printf("  %-5d  %-*s  %s\n", i+1, maxNameLen, s.SectorName, s.ImagePrompt)
	}
}
