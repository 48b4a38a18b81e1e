package engine

import (
	"context"

	"github.com/vovakirdan/streetrunner/internal/narrative"
)

// PhaseResult is the outcome of one phase-advance request.
type PhaseResult struct {
	Run     uint64 // run generation the request was issued in
	Phase   int
	Content narrative.Content
	Err     error
}

// phaseTracker holds the counters behind the staleness guard.
type phaseTracker struct {
	issued  int // highest phase requested in this run
	applied int // highest phase applied in this run
}

func (p *phaseTracker) reset() {
	p.issued = 0
	p.applied = 0
}

// next reserves the phase number for a new request.
func (p *phaseTracker) next(current int) int {
	n := max(p.issued, current) + 1
	p.issued = n
	return n
}

// release returns a failed phase number so the next crossing asks for it
// again. Numbers above it still in flight stay reserved.
func (p *phaseTracker) release(phase, current int) {
	if phase == p.issued {
		p.issued = max(p.applied, current)
	}
}

// accept reports whether a result for phase may be applied, and records it.
func (p *phaseTracker) accept(phase int) bool {
	if phase <= p.applied {
		return false
	}
	p.applied = phase
	return true
}

// crossed reports whether the score passed a phase boundary.
func crossed(oldScore, newScore, every int) bool {
	return newScore/every > oldScore/every
}

// requestPhase fetches content for phase on its own goroutine. The frame loop
// never waits for it; the result arrives on e.results.
func (e *Engine) requestPhase(phase int) {
	if e.gen == nil || e.closed {
		return
	}

	run := e.state.Run
	world := e.state.CurrentWorld
	timeout := e.cfg.Narrative.Timeout
	suffix := e.cfg.Narrative.ImagePromptSuffix

	e.logger.Debug("phase requested", "run", run, "phase", phase, "from", world)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(e.ctx, timeout)
		defer cancel()

		content, err := narrative.Fetch(ctx, e.gen, phase, world, suffix)
		res := PhaseResult{Run: run, Phase: phase, Content: content, Err: err}

		select {
		case e.results <- res:
		case <-e.ctx.Done():
		}
	}()
}

// drainResults applies every result that has arrived, without blocking.
// It returns the highest phase applied, or 0.
func (e *Engine) drainResults() int {
	applied := 0
	for {
		select {
		case res := <-e.results:
			if e.ApplyPhaseResult(res) {
				applied = max(applied, res.Phase)
			}
		default:
			return applied
		}
	}
}

// AwaitPhase blocks until one phase result arrives and applies it. It returns
// the applied phase, or 0 when the result was dropped, ctx ended first or no
// generator is configured. Headless callers use it to keep runs reproducible.
func (e *Engine) AwaitPhase(ctx context.Context) int {
	if e.gen == nil || e.closed {
		return 0
	}
	select {
	case res := <-e.results:
		if e.ApplyPhaseResult(res) {
			return res.Phase
		}
		return 0
	case <-ctx.Done():
		return 0
	}
}

// ApplyPhaseResult applies res if it belongs to the current run and is newer
// than the applied phase. Stale or failed results are dropped.
func (e *Engine) ApplyPhaseResult(res PhaseResult) bool {
	if res.Run != e.state.Run {
		e.logger.Debug("phase result discarded", "reason", "previous run", "run", res.Run, "phase", res.Phase)
		return false
	}
	if res.Err != nil {
		e.logger.Warn("phase request failed", "phase", res.Phase, "err", res.Err)
		e.phases.release(res.Phase, e.state.Phase)
		return false
	}
	if !e.phases.accept(res.Phase) {
		e.logger.Debug("phase result discarded", "reason", "stale", "phase", res.Phase, "applied", e.phases.applied)
		return false
	}

	prev := e.state
	sector := res.Content.Sector
	e.state.Phase = res.Phase
	e.state.CurrentWorld = sector.SectorName
	e.state.Narrative = sector.Narrative
	if res.Content.BackgroundRef != "" {
		e.state.BackgroundRef = res.Content.BackgroundRef
	}
	if res.Content.ImageErr != nil {
		e.logger.Warn("background unavailable", "phase", res.Phase, "err", res.Content.ImageErr)
	}
	e.state.Speed += e.cfg.Scoring.SpeedStep

	e.checkInvariants(prev)
	e.logger.Info("phase applied", "phase", res.Phase, "world", e.state.CurrentWorld, "speed", e.state.Speed)
	return true
}
