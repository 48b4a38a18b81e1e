// Package autopilot drives a run without a human: it reads engine snapshots
// and answers with intents, the same way a keyboard would.
package autopilot

import (
	"math"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/engine"
)

const (
	// DefaultLookahead is how far down the track the pilot looks for threats.
	DefaultLookahead = 25.0

	// jumpLead is how many frames early a jump may start. A high obstacle
	// spends about 2*window/speed frames in the window and the arc stays
	// above clearance for much longer than that.
	jumpLead = 10.0
)

// Pilot is a lane-avoidance policy. It dodges into a clear lane when it can,
// jumps when it cannot, and drifts toward coins when nothing threatens it.
type Pilot struct {
	lookahead     float64
	window        float64
	framesToClear float64 // frames from takeoff until a high obstacle is cleared
}

// New creates a pilot tuned to the physics and collision settings of cfg.
func New(cfg config.RunnerConfig) *Pilot {
	return &Pilot{
		lookahead:     DefaultLookahead,
		window:        cfg.Collision.Window,
		framesToClear: climbFrames(cfg.Physics, cfg.Collision.HighClearHeight),
	}
}

// climbFrames counts unit steps until a fresh jump reaches height.
// Returns +Inf when the jump never gets there.
func climbFrames(p config.PhysicsConfig, height float64) float64 {
	j := engine.Jump{}.Trigger(p.JumpImpulse)
	for n := 1; n < 10000; n++ {
		j = engine.Integrate(j, p.Gravity, 1)
		if !j.Active {
			break
		}
		if j.Y >= height {
			return float64(n)
		}
	}
	return math.Inf(1)
}

// Decide returns the intents for the next frame. Outside PLAYING it returns nil.
func (p *Pilot) Decide(s engine.GameState) []core.Intent {
	if s.Status != engine.StatusPlaying {
		return nil
	}

	threat, ok := p.nearestObstacle(s, s.Lane)
	if ok {
		if lane, found := p.safeNeighbor(s); found {
			return []core.Intent{moveToward(s.Lane, lane)}
		}
		if s.JumpY == 0 && p.shouldJump(threat, s.Speed) {
			return []core.Intent{core.IntentJump}
		}
		return nil
	}

	if lane, found := p.coinLane(s); found && lane != s.Lane {
		return []core.Intent{moveToward(s.Lane, lane)}
	}
	return nil
}

// shouldJump reports whether a jump started now is airborne high enough by
// the time the obstacle enters the collision window.
func (p *Pilot) shouldJump(e engine.Entity, speed float64) bool {
	framesUntil := (e.Depth - p.window) / speed
	return framesUntil <= p.framesToClear+jumpLead
}

// nearestObstacle finds the closest obstacle in lane that has not passed yet.
func (p *Pilot) nearestObstacle(s engine.GameState, lane engine.Lane) (engine.Entity, bool) {
	var nearest engine.Entity
	found := false
	for _, e := range s.Entities {
		if e.Lane != lane || e.Kind == engine.KindCoin {
			continue
		}
		if e.Depth <= -p.window || e.Depth >= p.lookahead {
			continue
		}
		if !found || e.Depth < nearest.Depth {
			nearest = e
			found = true
		}
	}
	return nearest, found
}

func (p *Pilot) clear(s engine.GameState, lane engine.Lane) bool {
	_, blocked := p.nearestObstacle(s, lane)
	return lane.Valid() && !blocked
}

// safeNeighbor picks an adjacent clear lane, preferring the one nearer center.
func (p *Pilot) safeNeighbor(s engine.GameState) (engine.Lane, bool) {
	candidates := []engine.Lane{s.Lane - 1, s.Lane + 1}
	if s.Lane < engine.LaneCenter {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, lane := range candidates {
		if p.clear(s, lane) {
			return lane, true
		}
	}
	return 0, false
}

// coinLane returns the lane of the nearest reachable coin in a clear lane.
func (p *Pilot) coinLane(s engine.GameState) (engine.Lane, bool) {
	best := math.Inf(1)
	var lane engine.Lane
	found := false
	for _, e := range s.Entities {
		if e.Kind != engine.KindCoin || e.Depth <= 0 || e.Depth >= p.lookahead {
			continue
		}
		if e.Lane != s.Lane && !p.clear(s, moveLane(s.Lane, e.Lane)) {
			continue
		}
		if e.Depth < best {
			best = e.Depth
			lane = e.Lane
			found = true
		}
	}
	return lane, found
}

func moveLane(from, to engine.Lane) engine.Lane {
	switch {
	case to < from:
		return from - 1
	case to > from:
		return from + 1
	default:
		return from
	}
}

func moveToward(from, to engine.Lane) core.Intent {
	if to < from {
		return core.IntentMoveLeft
	}
	return core.IntentMoveRight
}
