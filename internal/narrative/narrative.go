// Package narrative provides the content generator the engine consults on
// phase transitions: a sector name, a line of mission narrative and a
// background reference for the presentation layer.
//
// Generators are slow and may fail. The engine calls them off the frame
// loop and treats every error as degraded content, never as a game error.
package narrative

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned by Create for an unregistered backend name.
var ErrUnknownBackend = errors.New("narrative: unknown backend")

// Sector is the generator's answer to a phase shift.
type Sector struct {
	SectorName  string `json:"sectorName" yaml:"name"`
	Narrative   string `json:"narrative" yaml:"narrative"`
	ImagePrompt string `json:"imagePrompt" yaml:"image_prompt"`
}

// Generator produces world content for a phase.
type Generator interface {
	// PhaseShift describes the sector entered at targetPhase, coming from currentWorld.
	PhaseShift(ctx context.Context, targetPhase int, currentWorld string) (Sector, error)

	// WorldImage resolves an image prompt to a background reference.
	WorldImage(ctx context.Context, prompt string) (string, error)
}

// Content is a fully fetched phase shift.
type Content struct {
	Sector Sector

	// BackgroundRef is empty when the image could not be produced; the
	// caller keeps its previous background in that case.
	BackgroundRef string

	// ImageErr records why BackgroundRef is empty, if it failed.
	ImageErr error
}

// Fetch asks gen for the sector at phase and then for its background image.
// The suffix is appended to the sector's image prompt. A failed image fetch
// is reported in Content.ImageErr, not as an error: the sector is still usable.
func Fetch(ctx context.Context, gen Generator, phase int, currentWorld, suffix string) (Content, error) {
	sector, err := gen.PhaseShift(ctx, phase, currentWorld)
	if err != nil {
		return Content{}, fmt.Errorf("narrative: phase %d: %w", phase, err)
	}

	content := Content{Sector: sector}
	ref, err := gen.WorldImage(ctx, sector.ImagePrompt+suffix)
	if err != nil {
		content.ImageErr = fmt.Errorf("narrative: image for phase %d: %w", phase, err)
		return content, nil
	}
	content.BackgroundRef = ref
	return content, nil
}
