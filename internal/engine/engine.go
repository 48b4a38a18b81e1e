// Package engine is the runner simulation: a single-threaded frame loop that
// advances the jump, moves the track, spawns entities, resolves collisions
// and scores, plus the asynchronous phase requests to the narrative generator.
//
// The engine is not safe for concurrent use. One goroutine owns it and calls
// Tick or Advance once per frame; request workers only talk to it through a
// result channel that is drained at the start of a frame.
package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/narrative"
)

const resultBuffer = 16

// Options configures a new Engine. Only Config is required.
type Options struct {
	Config    config.RunnerConfig
	Generator narrative.Generator // nil disables phase content
	Random    RandomSource        // nil seeds math/rand from the clock
	IDs       IDSource            // nil uses UUIDs
	Logger    *log.Logger         // nil discards
}

// FrameResult summarises one frame for the presentation layer and logs.
type FrameResult struct {
	Stepped        bool // false when no simulation step ran
	Step           float64
	Outcomes       []Outcome
	Spawned        *Entity
	PhaseRequested int // phase requested this frame, or 0
	PhaseApplied   int // highest phase applied at the start of this frame, or 0
	GameOver       bool
}

// Engine owns the GameState of one player.
type Engine struct {
	cfg    config.RunnerConfig
	rules  Rules
	logger *log.Logger
	gen    narrative.Generator

	state   GameState
	jump    Jump
	clock   Clock
	spawner *Spawner
	intents core.IntentQueue
	phases  phaseTracker

	ctx     context.Context
	cancel  context.CancelFunc
	results chan PhaseResult
	wg      sync.WaitGroup
	closed  bool
}

// New creates an idle engine.
func New(opts Options) *Engine {
	rng := opts.Random
	if rng == nil {
		rng = NewSeededSource(time.Now().UnixNano())
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewUUIDSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cfg := opts.Config

	return &Engine{
		cfg:     cfg,
		rules:   RulesFromConfig(cfg),
		logger:  logger,
		gen:     opts.Generator,
		clock:   NewClock(cfg.Clock.MaxDelta),
		spawner: NewSpawner(cfg.Spawner.BaseInterval, rng, ids),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan PhaseResult, resultBuffer),
		state: GameState{
			Status:        StatusIdle,
			Speed:         cfg.Run.InitialSpeed,
			Phase:         1,
			CurrentWorld:  cfg.Run.InitialWorld,
			Narrative:     cfg.Run.InitialNarrative,
			BackgroundRef: "",
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() GameState {
	return e.state.clone()
}

// Status returns the run status.
func (e *Engine) Status() Status {
	return e.state.Status
}

// Enqueue queues an intent for the start of the next frame.
func (e *Engine) Enqueue(i core.Intent) {
	e.intents.Push(i)
}

// Start begins a new run from IDLE or GAMEOVER. It reports whether a run started.
// World, narrative and background carry over from the previous run until
// the phase-1 content arrives.
func (e *Engine) Start() bool {
	if e.state.Status == StatusPlaying {
		return false
	}

	e.state.Status = StatusPlaying
	e.state.Score = 0
	e.state.Lane = LaneCenter
	e.state.JumpY = 0
	e.state.Entities = nil
	e.state.Speed = e.cfg.Run.InitialSpeed
	e.state.Phase = 1
	e.state.Elapsed = 0
	e.state.Run++

	e.jump = Jump{}
	e.spawner.Reset()
	e.phases.reset()

	e.logger.Info("run started", "run", e.state.Run)
	e.requestPhase(e.phases.next(0))
	return true
}

// Tick runs one frame at wall-clock time now. The first tick only records
// the timestamp; queued intents and arrived results are still applied.
// Deltas above clock.max_delta are clamped, so a long stall advances the
// track and the spawn timer by at most max_delta. Advance takes the delta
// as given.
func (e *Engine) Tick(now time.Time) FrameResult {
	delta, ok := e.clock.Tick(now)
	if !ok {
		var res FrameResult
		res.PhaseApplied = e.drainResults()
		e.applyIntents()
		return res
	}
	return e.Advance(delta)
}

// Pump applies arrived phase results without simulating. It returns the
// highest phase applied, or 0.
func (e *Engine) Pump() int {
	return e.drainResults()
}

// Advance runs one frame with an explicit delta. The delta is not clamped.
func (e *Engine) Advance(delta time.Duration) FrameResult {
	var res FrameResult
	res.PhaseApplied = e.drainResults()
	e.applyIntents()

	if e.state.Status != StatusPlaying || delta <= 0 {
		return res
	}

	prev := e.state
	step := StepFor(delta)
	res.Stepped = true
	res.Step = step

	e.state.Elapsed += delta

	e.jump = Integrate(e.jump, e.cfg.Physics.Gravity, step)
	e.state.JumpY = e.jump.Y

	entities := Advance(e.state.Entities, e.state.Speed, step)
	if ent, ok := e.spawner.Update(delta, e.state.Speed); ok {
		entities = append(entities, ent)
		res.Spawned = &ent
	}

	resolution := Resolve(entities, e.state.Lane, e.state.JumpY, e.rules)
	e.state.Entities = resolution.Survivors
	res.Outcomes = resolution.Outcomes

	if resolution.Fatal {
		// The frame's points are discarded on a crash.
		e.state.Status = StatusGameOver
		res.GameOver = true
		e.checkInvariants(prev)
		e.logger.Info("run over",
			"run", e.state.Run,
			"score", e.state.Score,
			"phase", e.state.Phase,
			"world", e.state.CurrentWorld,
			"elapsed", e.state.Elapsed)
		return res
	}

	oldScore := e.state.Score
	e.state.Score += resolution.ScoreDelta + e.cfg.Scoring.SurvivalBonus
	if crossed(oldScore, e.state.Score, e.cfg.Scoring.PhaseEvery) {
		res.PhaseRequested = e.phases.next(e.state.Phase)
		e.requestPhase(res.PhaseRequested)
	}

	e.checkInvariants(prev)
	return res
}

func (e *Engine) applyIntents() {
	for _, in := range e.intents.Drain() {
		e.apply(in)
	}
}

func (e *Engine) apply(in core.Intent) {
	if in == core.IntentStart {
		e.Start()
		return
	}
	if e.state.Status != StatusPlaying {
		return
	}

	switch in {
	case core.IntentMoveLeft:
		e.state.Lane = clampLane(e.state.Lane - 1)
	case core.IntentMoveRight:
		e.state.Lane = clampLane(e.state.Lane + 1)
	case core.IntentJump:
		e.jump = e.jump.Trigger(e.cfg.Physics.JumpImpulse)
	}
}

func clampLane(l Lane) Lane {
	return Lane(core.Clamp(int(l), int(LaneLeft), int(LaneRight)))
}

// Close cancels in-flight phase requests and waits for their workers.
// Results that have not been applied are discarded.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
	e.wg.Wait()
}

// checkInvariants panics when the state is impossible. Only engine bugs get here.
func (e *Engine) checkInvariants(prev GameState) {
	s := e.state
	switch {
	case !s.Lane.Valid():
		panic(fmt.Sprintf("engine: lane %d out of range", s.Lane))
	case s.Speed <= 0:
		panic(fmt.Sprintf("engine: non-positive speed %v", s.Speed))
	case s.JumpY < 0:
		panic(fmt.Sprintf("engine: negative jumpY %v", s.JumpY))
	}
	if s.Run != prev.Run {
		return
	}
	switch {
	case s.Score < prev.Score:
		panic(fmt.Sprintf("engine: score decreased from %d to %d", prev.Score, s.Score))
	case s.Phase < prev.Phase:
		panic(fmt.Sprintf("engine: phase regressed from %d to %d", prev.Phase, s.Phase))
	}
}
