package engine

import "github.com/vovakirdan/streetrunner/internal/config"

// OutcomeKind is the result of evaluating one entity in the collision window.
type OutcomeKind int

const (
	OutcomeCollected OutcomeKind = iota // coin picked up
	OutcomeCleared                      // obstacle jumped
	OutcomeHit                          // fatal collision
)

func (o OutcomeKind) String() string {
	switch o {
	case OutcomeCollected:
		return "collected"
	case OutcomeCleared:
		return "cleared"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Outcome records how one entity was resolved.
type Outcome struct {
	Entity Entity
	Kind   OutcomeKind
	Points int
}

// Rules are the collision thresholds and awards.
type Rules struct {
	Window        float64 // entities with |depth| < Window are in range
	LowClear      float64 // low obstacles need jumpY > LowClear
	HighClear     float64 // high obstacles need jumpY >= HighClear
	CoinBonus     int
	LowClearBonus int
}

// RulesFromConfig builds Rules from the collision and scoring sections.
func RulesFromConfig(cfg config.RunnerConfig) Rules {
	return Rules{
		Window:        cfg.Collision.Window,
		LowClear:      cfg.Collision.LowClearHeight,
		HighClear:     cfg.Collision.HighClearHeight,
		CoinBonus:     cfg.Scoring.CoinBonus,
		LowClearBonus: cfg.Scoring.LowClearBonus,
	}
}

// Resolution partitions a frame's entities.
type Resolution struct {
	Survivors  []Entity
	ScoreDelta int
	Fatal      bool
	Outcomes   []Outcome
}

// InRange reports whether e is in the player's lane inside the open depth window.
func (r Rules) InRange(e Entity, lane Lane) bool {
	return e.Lane == lane && e.Depth > -r.Window && e.Depth < r.Window
}

// Resolve evaluates every in-range entity exactly once and removes it.
// Entities out of range survive untouched, in order.
func Resolve(entities []Entity, lane Lane, jumpY float64, rules Rules) Resolution {
	res := Resolution{Survivors: make([]Entity, 0, len(entities))}

	for _, e := range entities {
		if !rules.InRange(e, lane) {
			res.Survivors = append(res.Survivors, e)
			continue
		}

		out := Outcome{Entity: e}
		switch e.Kind {
		case KindCoin:
			out.Kind = OutcomeCollected
			out.Points = rules.CoinBonus
		case KindObstacleLow:
			if jumpY > rules.LowClear {
				out.Kind = OutcomeCleared
				out.Points = rules.LowClearBonus
			} else {
				out.Kind = OutcomeHit
			}
		case KindObstacleHigh:
			if jumpY >= rules.HighClear {
				out.Kind = OutcomeCleared
			} else {
				out.Kind = OutcomeHit
			}
		}

		if out.Kind == OutcomeHit {
			res.Fatal = true
		}
		res.ScoreDelta += out.Points
		res.Outcomes = append(res.Outcomes, out)
	}

	return res
}
