package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGravity = 0.008
	testImpulse = 0.25
)

func TestIntegrateGrounded(t *testing.T) {
	assert.Equal(t, Jump{}, Integrate(Jump{}, testGravity, 1))
}

func TestTriggerIgnoredWhileAirborne(t *testing.T) {
	j := Jump{}.Trigger(testImpulse)
	require.True(t, j.Active)
	j = Integrate(j, testGravity, 1)

	again := j.Trigger(1.0)
	assert.Equal(t, j, again)
}

func TestIntegrateUsesVelocityBeforeGravity(t *testing.T) {
	j := Jump{}.Trigger(testImpulse)
	j = Integrate(j, testGravity, 1)

	assert.InDelta(t, 0.25, j.Y, 1e-12)
	assert.InDelta(t, 0.242, j.V, 1e-12)
	assert.True(t, j.Active)
}

func TestJumpLandsExactlyOnGround(t *testing.T) {
	for _, step := range []float64{0.5, 1, 1.37, 2, 3.2} {
		j := Jump{}.Trigger(testImpulse)
		apex := 0.0
		frames := 0
		for j.Active {
			j = Integrate(j, testGravity, step)
			apex = max(apex, j.Y)
			frames++
			require.Less(t, frames, 10000, "jump never landed at step %v", step)
		}
		assert.Zero(t, j.Y, "step %v", step)
		assert.Zero(t, j.V, "step %v", step)
		assert.Greater(t, apex, 1.5, "jump must clear high obstacles at step %v", step)
	}
}

func TestJumpApexAtUnitStep(t *testing.T) {
	j := Jump{}.Trigger(testImpulse)
	apex := 0.0
	for j.Active {
		j = Integrate(j, testGravity, 1)
		apex = max(apex, j.Y)
	}
	assert.InDelta(t, 4.0, apex, 0.15)
}
