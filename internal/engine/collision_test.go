package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/streetrunner/internal/config"
)

func testRules() Rules {
	return RulesFromConfig(config.DefaultRunnerConfig())
}

func TestResolveCoinAwardedOnce(t *testing.T) {
	entities := []Entity{{ID: "c", Lane: LaneCenter, Depth: 0, Kind: KindCoin, Model: ModelCoin}}

	first := Resolve(entities, LaneCenter, 0, testRules())
	assert.Equal(t, 100, first.ScoreDelta)
	assert.False(t, first.Fatal)
	assert.Empty(t, first.Survivors)
	require.Len(t, first.Outcomes, 1)
	assert.Equal(t, OutcomeCollected, first.Outcomes[0].Kind)

	second := Resolve(first.Survivors, LaneCenter, 0, testRules())
	assert.Zero(t, second.ScoreDelta)
	assert.Empty(t, second.Outcomes)
}

func TestResolveLowObstacle(t *testing.T) {
	cone := []Entity{{ID: "o", Lane: LaneRight, Depth: 0, Kind: KindObstacleLow, Model: ModelCone}}

	cleared := Resolve(cone, LaneRight, 0.6, testRules())
	assert.False(t, cleared.Fatal)
	assert.Equal(t, 50, cleared.ScoreDelta)
	assert.Empty(t, cleared.Survivors)
	assert.Equal(t, OutcomeCleared, cleared.Outcomes[0].Kind)

	hit := Resolve(cone, LaneRight, 0.4, testRules())
	assert.True(t, hit.Fatal)
	assert.Empty(t, hit.Survivors)
	assert.Equal(t, OutcomeHit, hit.Outcomes[0].Kind)

	edge := Resolve(cone, LaneRight, 0.5, testRules())
	assert.True(t, edge.Fatal, "low clearance is strict")
}

func TestResolveHighObstacle(t *testing.T) {
	car := []Entity{{ID: "o", Lane: LaneLeft, Depth: 0, Kind: KindObstacleHigh, Model: ModelCar}}

	hit := Resolve(car, LaneLeft, 1.4, testRules())
	assert.True(t, hit.Fatal)

	cleared := Resolve(car, LaneLeft, 1.5, testRules())
	assert.False(t, cleared.Fatal)
	assert.Zero(t, cleared.ScoreDelta)
	assert.Empty(t, cleared.Survivors)
}

func TestResolveIgnoresOutOfRange(t *testing.T) {
	entities := []Entity{
		{ID: "other-lane", Lane: LaneLeft, Depth: 0, Kind: KindObstacleHigh},
		{ID: "ahead", Lane: LaneCenter, Depth: 3, Kind: KindObstacleHigh},
		{ID: "behind", Lane: LaneCenter, Depth: -3, Kind: KindObstacleHigh},
		{ID: "far", Lane: LaneCenter, Depth: 80, Kind: KindCoin},
	}
	res := Resolve(entities, LaneCenter, 0, testRules())

	assert.False(t, res.Fatal)
	assert.Zero(t, res.ScoreDelta)
	assert.Equal(t, entities, res.Survivors)
}

func TestResolveEvaluatesEveryEntityInRange(t *testing.T) {
	entities := []Entity{
		{ID: "coin", Lane: LaneCenter, Depth: -1, Kind: KindCoin},
		{ID: "cone", Lane: LaneCenter, Depth: 1, Kind: KindObstacleLow},
		{ID: "far", Lane: LaneCenter, Depth: 50, Kind: KindCoin},
	}
	res := Resolve(entities, LaneCenter, 0, testRules())

	assert.True(t, res.Fatal)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, OutcomeCollected, res.Outcomes[0].Kind)
	assert.Equal(t, OutcomeHit, res.Outcomes[1].Kind)
	require.Len(t, res.Survivors, 1)
	assert.Equal(t, "far", res.Survivors[0].ID)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "collected", OutcomeCollected.String())
	assert.Equal(t, "cleared", OutcomeCleared.String())
	assert.Equal(t, "hit", OutcomeHit.String())
}
