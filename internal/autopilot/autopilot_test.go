package autopilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/core"
	"github.com/vovakirdan/streetrunner/internal/engine"
)

func playing(lane engine.Lane, entities ...engine.Entity) engine.GameState {
	return engine.GameState{
		Status:   engine.StatusPlaying,
		Lane:     lane,
		Speed:    0.6,
		Phase:    1,
		Entities: entities,
	}
}

func obstacle(lane engine.Lane, depth float64) engine.Entity {
	return engine.Entity{Lane: lane, Depth: depth, Kind: engine.KindObstacleHigh, Model: engine.ModelCar}
}

func coin(lane engine.Lane, depth float64) engine.Entity {
	return engine.Entity{Lane: lane, Depth: depth, Kind: engine.KindCoin, Model: engine.ModelCoin}
}

func TestClimbFrames(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	n := climbFrames(cfg.Physics, cfg.Collision.HighClearHeight)
	assert.Equal(t, 7.0, n)

	assert.True(t, climbFrames(cfg.Physics, 100) > 10000)
}

func TestDecide(t *testing.T) {
	p := New(config.DefaultRunnerConfig())

	tests := []struct {
		name  string
		state engine.GameState
		want  []core.Intent
	}{
		{
			name:  "idle does nothing",
			state: engine.GameState{Status: engine.StatusIdle},
			want:  nil,
		},
		{
			name:  "clear road",
			state: playing(engine.LaneCenter),
			want:  nil,
		},
		{
			name:  "dodge left from center",
			state: playing(engine.LaneCenter, obstacle(engine.LaneCenter, 10)),
			want:  []core.Intent{core.IntentMoveLeft},
		},
		{
			name:  "dodge right when left is blocked",
			state: playing(engine.LaneCenter, obstacle(engine.LaneCenter, 10), obstacle(engine.LaneLeft, 12)),
			want:  []core.Intent{core.IntentMoveRight},
		},
		{
			name:  "edge lane dodges toward center",
			state: playing(engine.LaneLeft, obstacle(engine.LaneLeft, 10)),
			want:  []core.Intent{core.IntentMoveRight},
		},
		{
			name: "boxed in and close jumps",
			state: playing(engine.LaneCenter,
				obstacle(engine.LaneCenter, 6),
				obstacle(engine.LaneLeft, 8),
				obstacle(engine.LaneRight, 8)),
			want: []core.Intent{core.IntentJump},
		},
		{
			name: "boxed in and far waits",
			state: playing(engine.LaneCenter,
				obstacle(engine.LaneCenter, 20),
				obstacle(engine.LaneLeft, 8),
				obstacle(engine.LaneRight, 8)),
			want: nil,
		},
		{
			name:  "passed obstacle ignored",
			state: playing(engine.LaneCenter, obstacle(engine.LaneCenter, -4)),
			want:  nil,
		},
		{
			name:  "steer to coin",
			state: playing(engine.LaneCenter, coin(engine.LaneRight, 15)),
			want:  []core.Intent{core.IntentMoveRight},
		},
		{
			name:  "skip coin behind blocked lane",
			state: playing(engine.LaneCenter, coin(engine.LaneRight, 15), obstacle(engine.LaneRight, 20)),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Decide(tt.state))
		})
	}
}

func TestPilotAirborneDoesNotJumpAgain(t *testing.T) {
	p := New(config.DefaultRunnerConfig())
	s := playing(engine.LaneCenter,
		obstacle(engine.LaneCenter, 5),
		obstacle(engine.LaneLeft, 5),
		obstacle(engine.LaneRight, 5))
	s.JumpY = 1.2
	assert.Nil(t, p.Decide(s))
}

func TestPilotDrivesEngine(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	e := engine.New(engine.Options{Config: cfg, Random: engine.NewSeededSource(7)})
	defer e.Close()
	p := New(cfg)

	require.True(t, e.Start())
	step := engine.DurationForStep(1)
	for i := 0; i < 3000 && e.Status() == engine.StatusPlaying; i++ {
		for _, in := range p.Decide(e.Snapshot()) {
			e.Enqueue(in)
		}
		e.Advance(step)
	}

	s := e.Snapshot()
	assert.Positive(t, s.Score)
	assert.Greater(t, s.Elapsed, time.Duration(0))
}
