package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/narrative"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Palette colors the road for the current sector.
type Palette struct {
	Edge    core.Color // road shoulders
	Marking core.Color // lane dividers
	Horizon core.Color // skyline row
	Accent  core.Color // world title
}

var defaultPalette = Palette{
	Edge:    core.ColorWhite,
	Marking: core.ColorGray,
	Horizon: core.ColorDarkGray,
	Accent:  core.ColorBrightYellow,
}

// palettes maps background references from the static generator to colors.
var palettes = map[string]Palette{
	narrative.PaletteAsphalt: defaultPalette,
	narrative.PaletteNeon:    {Edge: core.ColorMagenta, Marking: core.ColorCyan, Horizon: core.ColorMagenta, Accent: core.ColorBrightCyan},
	narrative.PaletteHarbor:  {Edge: core.ColorBlue, Marking: core.ColorWhite, Horizon: core.ColorCyan, Accent: core.ColorCyan},
	narrative.PaletteStorm:   {Edge: core.ColorGray, Marking: core.ColorBlue, Horizon: core.ColorDarkGray, Accent: core.ColorWhite},
	narrative.PaletteDesert:  {Edge: core.ColorOrange, Marking: core.ColorYellow, Horizon: core.ColorOrange, Accent: core.ColorBrightYellow},
	narrative.PaletteNight:   {Edge: core.ColorBlue, Marking: core.ColorDarkGray, Horizon: core.ColorBlue, Accent: core.ColorWhite},
}

// PaletteFor returns the palette for a background reference. Unknown
// references, such as image URLs from a remote generator, get the default.
func PaletteFor(ref string) Palette {
	if p, ok := palettes[ref]; ok {
		return p
	}
	return defaultPalette
}
