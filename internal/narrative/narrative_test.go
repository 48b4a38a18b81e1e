package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/streetrunner/internal/config"
)

type stubGenerator struct {
	sector   Sector
	shiftErr error
	imageRef string
	imageErr error
	prompt   string
}

func (s *stubGenerator) PhaseShift(_ context.Context, _ int, _ string) (Sector, error) {
	return s.sector, s.shiftErr
}

func (s *stubGenerator) WorldImage(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.imageRef, s.imageErr
}

func TestFetchComposesSectorAndImage(t *testing.T) {
	gen := &stubGenerator{
		sector:   Sector{SectorName: "Neon Underpass", Narrative: "n", ImagePrompt: "neon tunnel"},
		imageRef: "palette:neon",
	}

	content, err := Fetch(context.Background(), gen, 2, "Downtown Highway", ", city highway")
	require.NoError(t, err)
	assert.Equal(t, "Neon Underpass", content.Sector.SectorName)
	assert.Equal(t, "palette:neon", content.BackgroundRef)
	assert.NoError(t, content.ImageErr)
	assert.Equal(t, "neon tunnel, city highway", gen.prompt, "suffix is appended to the image prompt")
}

func TestFetchImageFailureKeepsSector(t *testing.T) {
	gen := &stubGenerator{
		sector:   Sector{SectorName: "Harbor Expressway"},
		imageErr: errors.New("quota exceeded"),
	}

	content, err := Fetch(context.Background(), gen, 3, "x", "")
	require.NoError(t, err, "image failure must not fail the fetch")
	assert.Equal(t, "Harbor Expressway", content.Sector.SectorName)
	assert.Empty(t, content.BackgroundRef)
	assert.Error(t, content.ImageErr)
}

func TestFetchPhaseShiftFailure(t *testing.T) {
	cause := errors.New("service down")
	gen := &stubGenerator{shiftErr: cause}

	_, err := Fetch(context.Background(), gen, 2, "x", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestRegistryBuiltins(t *testing.T) {
	assert.Equal(t, []string{"http", "static"}, List())

	gen, err := Create(config.NarrativeConfig{Backend: "static"})
	require.NoError(t, err)
	assert.IsType(t, &Static{}, gen)

	_, err = Create(config.NarrativeConfig{Backend: "http"})
	assert.Error(t, err, "http backend without endpoint should fail")

	_, err = Create(config.NarrativeConfig{Backend: "oracle"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("static", func(config.NarrativeConfig) (Generator, error) { return nil, nil })
	})
}
