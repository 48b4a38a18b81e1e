package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// RandomSource supplies the spawner's draws. *rand.Rand satisfies it;
// tests inject scripted sequences.
type RandomSource interface {
	Float64() float64 // in [0, 1)
	Intn(n int) int   // in [0, n)
}

// NewSeededSource returns a math/rand source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// IDSource produces opaque unique entity ids.
type IDSource func() string

// NewUUIDSource returns an IDSource backed by random UUIDs.
func NewUUIDSource() IDSource {
	return uuid.NewString
}

// Spawn table thresholds over a draw r in [0, 1). These are fixed:
// 20% coin, 40% car, 20% barrier, 20% cone.
const (
	coinAbove    = 0.8
	carAbove     = 0.4
	barrierAbove = 0.2
)

// Classify maps a draw to an entity kind and visual model.
func Classify(r float64) (Kind, Model) {
	switch {
	case r > coinAbove:
		return KindCoin, ModelCoin
	case r > carAbove:
		return KindObstacleHigh, ModelCar
	case r > barrierAbove:
		return KindObstacleLow, ModelBarrier
	default:
		return KindObstacleLow, ModelCone
	}
}

// Spawner emits one entity each time its accumulator exceeds baseInterval / speed.
type Spawner struct {
	baseInterval time.Duration
	elapsed      time.Duration
	rng          RandomSource
	ids          IDSource
}

// NewSpawner creates a spawner.
func NewSpawner(baseInterval time.Duration, rng RandomSource, ids IDSource) *Spawner {
	return &Spawner{
		baseInterval: baseInterval,
		rng:          rng,
		ids:          ids,
	}
}

// Reset clears the accumulator.
func (s *Spawner) Reset() {
	s.elapsed = 0
}

// Interval returns the spawn interval at the given speed.
func (s *Spawner) Interval(speed float64) time.Duration {
	return time.Duration(float64(s.baseInterval) / speed)
}

// Update accumulates delta and returns a new entity when the interval has elapsed.
func (s *Spawner) Update(delta time.Duration, speed float64) (Entity, bool) {
	s.elapsed += delta
	if s.elapsed <= s.Interval(speed) {
		return Entity{}, false
	}
	s.elapsed = 0
	return s.spawn(), true
}

func (s *Spawner) spawn() Entity {
	lane := Lane(s.rng.Intn(3) - 1)
	kind, model := Classify(s.rng.Float64())
	return Entity{
		ID:    s.ids(),
		Lane:  lane,
		Depth: SpawnDepth,
		Kind:  kind,
		Model: model,
	}
}
