package narrative

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/streetrunner/internal/config"
)

//go:embed catalog/sectors.yaml
var defaultCatalogYAML []byte

// Palette names returned by the static backend as background references.
// The TUI maps them to road colors.
const (
	PaletteAsphalt = "palette:asphalt"
	PaletteNeon    = "palette:neon"
	PaletteHarbor  = "palette:harbor"
	PaletteStorm   = "palette:storm"
	PaletteDesert  = "palette:desert"
	PaletteNight   = "palette:night"
)

// paletteKeywords maps prompt keywords to palettes, first match wins.
var paletteKeywords = []struct {
	keyword string
	palette string
}{
	{"neon", PaletteNeon},
	{"harbor", PaletteHarbor},
	{"rain", PaletteStorm},
	{"storm", PaletteStorm},
	{"desert", PaletteDesert},
	{"dust", PaletteDesert},
	{"midnight", PaletteNight},
	{"night", PaletteNight},
}

// Catalog is the on-disk format of the static backend's sector list.
type Catalog struct {
	Sectors []Sector `yaml:"sectors"`
}

// Static is an offline generator cycling through a sector catalogue.
// It is deterministic: the same phase always yields the same sector.
type Static struct {
	sectors []Sector
}

// NewStatic creates a static generator over the given sectors.
func NewStatic(sectors []Sector) (*Static, error) {
	if len(sectors) == 0 {
		return nil, errors.New("narrative: static catalogue is empty")
	}
	return &Static{sectors: sectors}, nil
}

// LoadCatalog reads a catalogue file, or the embedded one when path is empty.
func LoadCatalog(path string) ([]Sector, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("narrative: failed to read catalogue %s: %w", path, err)
		}
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("narrative: failed to parse catalogue: %w", err)
	}
	for i, s := range cat.Sectors {
		if s.SectorName == "" {
			return nil, fmt.Errorf("narrative: catalogue sector %d has no name", i)
		}
	}
	return cat.Sectors, nil
}

// PhaseShift returns the catalogue entry for the phase. When that entry is the
// world the runner is already in, the next one is used so a shift is visible.
func (s *Static) PhaseShift(ctx context.Context, targetPhase int, currentWorld string) (Sector, error) {
	if err := ctx.Err(); err != nil {
		return Sector{}, err
	}
	if targetPhase < 1 {
		return Sector{}, fmt.Errorf("narrative: invalid phase %d", targetPhase)
	}

	idx := (targetPhase - 1) % len(s.sectors)
	if s.sectors[idx].SectorName == currentWorld && len(s.sectors) > 1 && targetPhase > 1 {
		idx = (idx + 1) % len(s.sectors)
	}

	sector := s.sectors[idx]
	r := strings.NewReplacer("{phase}", strconv.Itoa(targetPhase), "{from}", currentWorld)
	sector.Narrative = r.Replace(sector.Narrative)
	return sector, nil
}

// WorldImage picks a palette by prompt keyword.
func (s *Static) WorldImage(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lower := strings.ToLower(prompt)
	for _, pk := range paletteKeywords {
		if strings.Contains(lower, pk.keyword) {
			return pk.palette, nil
		}
	}
	return PaletteAsphalt, nil
}

func init() {
	Register("static", func(cfg config.NarrativeConfig) (Generator, error) {
		sectors, err := LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		return NewStatic(sectors)
	})
}
