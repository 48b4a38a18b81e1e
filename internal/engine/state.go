package engine

import "time"

// Status is the run state machine:
// IDLE --start--> PLAYING --fatal collision--> GAMEOVER --start--> PLAYING.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusPlaying:
		return "PLAYING"
	case StatusGameOver:
		return "GAMEOVER"
	default:
		return "UNKNOWN"
	}
}

// Lane is a horizontal track position: -1 left, 0 center, 1 right.
type Lane int

const (
	LaneLeft   Lane = -1
	LaneCenter Lane = 0
	LaneRight  Lane = 1
)

// Valid reports whether the lane is one of the three track lanes.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// Kind decides how an entity is resolved on contact.
type Kind int

const (
	KindObstacleLow Kind = iota
	KindObstacleHigh
	KindCoin
)

func (k Kind) String() string {
	switch k {
	case KindObstacleLow:
		return "OBSTACLE_LOW"
	case KindObstacleHigh:
		return "OBSTACLE_HIGH"
	case KindCoin:
		return "COIN"
	default:
		return "UNKNOWN"
	}
}

// Model is the visual skin of an entity. Only presentation cares about it.
type Model int

const (
	ModelCone Model = iota
	ModelBarrier
	ModelCar
	ModelCoin
)

func (m Model) String() string {
	switch m {
	case ModelCone:
		return "CONE"
	case ModelBarrier:
		return "BARRIER"
	case ModelCar:
		return "CAR"
	case ModelCoin:
		return "COIN"
	default:
		return "UNKNOWN"
	}
}

// Track depth limits.
const (
	SpawnDepth = 100.0 // entities appear here
	PruneDepth = -10.0 // entities at or behind this are removed
)

// Entity is an obstacle or pickup on the track. Kind, Model and Lane never
// change after spawn; Depth decreases every frame the entity survives.
type Entity struct {
	ID    string
	Lane  Lane
	Depth float64
	Kind  Kind
	Model Model
}

// GameState is the authoritative snapshot of a run.
type GameState struct {
	Status   Status
	Score    int
	Lane     Lane
	JumpY    float64 // 0 means grounded
	Speed    float64
	Entities []Entity // spawn order
	Phase    int

	// Written only from narrative results.
	CurrentWorld  string
	Narrative     string
	BackgroundRef string

	Elapsed time.Duration // time spent PLAYING in this run
	Run     uint64        // incremented by every start
}

// clone returns a deep copy safe to hand to readers.
func (s GameState) clone() GameState {
	if s.Entities != nil {
		entities := make([]Entity, len(s.Entities))
		copy(entities, s.Entities)
		s.Entities = entities
	}
	return s
}
