package engine

import "time"

// FrameMillis is the reference frame length; a step of 1.0 is one 60 Hz frame.
const FrameMillis = 16.67

// StepFor converts an elapsed duration into a normalized step.
func StepFor(delta time.Duration) float64 {
	return float64(delta) / float64(time.Millisecond) / FrameMillis
}

// DurationForStep is the inverse of StepFor, handy for fixed-step drivers.
func DurationForStep(step float64) time.Duration {
	return time.Duration(step * FrameMillis * float64(time.Millisecond))
}

// Clock turns wall-clock frame callbacks into deltas. It owns no game state.
type Clock struct {
	last     time.Time
	maxDelta time.Duration
}

// NewClock creates a clock. Deltas above maxDelta are clamped; 0 disables clamping.
func NewClock(maxDelta time.Duration) Clock {
	return Clock{maxDelta: maxDelta}
}

// Tick records now and returns the delta since the previous tick.
// The first tick after Reset only records the timestamp and returns ok=false,
// as does a timestamp that does not move forward.
func (c *Clock) Tick(now time.Time) (time.Duration, bool) {
	if c.last.IsZero() {
		c.last = now
		return 0, false
	}
	delta := now.Sub(c.last)
	if delta <= 0 {
		return 0, false
	}
	c.last = now
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}
	return delta, true
}

// Reset forgets the previous timestamp.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
