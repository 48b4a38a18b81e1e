package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vovakirdan/streetrunner/internal/config"
)

// maxResponseBytes caps how much of a content service reply is read.
const maxResponseBytes = 1 << 20

// HTTP is a generator backed by a JSON content service.
//
//	POST {endpoint}/phase-shift  {"targetPhase": 2, "currentWorld": "..."}
//	  -> {"sectorName": "...", "narrative": "...", "imagePrompt": "..."}
//	POST {endpoint}/world-image  {"prompt": "..."}
//	  -> {"imageRef": "..."}
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP creates an HTTP generator. A nil client uses http.DefaultClient;
// request deadlines come from the caller's context.
func NewHTTP(endpoint string, client *http.Client) (*HTTP, error) {
	if endpoint == "" {
		return nil, errors.New("narrative: http backend needs an endpoint")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}, nil
}

type phaseShiftRequest struct {
	TargetPhase  int    `json:"targetPhase"`
	CurrentWorld string `json:"currentWorld"`
}

type worldImageRequest struct {
	Prompt string `json:"prompt"`
}

type worldImageResponse struct {
	ImageRef string `json:"imageRef"`
}

// PhaseShift asks the service for the next sector.
func (h *HTTP) PhaseShift(ctx context.Context, targetPhase int, currentWorld string) (Sector, error) {
	var sector Sector
	req := phaseShiftRequest{TargetPhase: targetPhase, CurrentWorld: currentWorld}
	if err := h.post(ctx, "/phase-shift", req, &sector); err != nil {
		return Sector{}, err
	}
	if sector.SectorName == "" {
		return Sector{}, errors.New("narrative: phase-shift response has no sectorName")
	}
	return sector, nil
}

// WorldImage asks the service for a background reference (typically a URL).
func (h *HTTP) WorldImage(ctx context.Context, prompt string) (string, error) {
	var resp worldImageResponse
	if err := h.post(ctx, "/world-image", worldImageRequest{Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	if resp.ImageRef == "" {
		return "", errors.New("narrative: world-image response has no imageRef")
	}
	return resp.ImageRef, nil
}

func (h *HTTP) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("narrative: cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("narrative: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("narrative: %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("narrative: %s: cannot read response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("narrative: %s: unexpected status %s", path, resp.Status)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("narrative: %s: cannot decode response: %w", path, err)
	}
	return nil
}

func init() {
	Register("http", func(cfg config.NarrativeConfig) (Generator, error) {
		return NewHTTP(cfg.Endpoint, nil)
	})
}
