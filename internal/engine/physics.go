package engine

// Jump is the vertical state of the player.
type Jump struct {
	Y      float64 // height above ground, 0 when grounded
	V      float64 // vertical velocity, positive is up
	Active bool
}

// Trigger starts a jump with the given impulse. Re-triggering while
// airborne is a no-op.
func (j Jump) Trigger(impulse float64) Jump {
	if j.Active {
		return j
	}
	return Jump{Y: j.Y, V: impulse, Active: true}
}

// Integrate advances the jump by step. Position uses the velocity from
// before this step's gravity decrement. Landing is instantaneous: any
// height at or below zero snaps to the ground with no bounce.
func Integrate(j Jump, gravity, step float64) Jump {
	if !j.Active {
		return Jump{}
	}
	y := j.Y + j.V*step
	v := j.V - gravity*step
	if y <= 0 {
		return Jump{}
	}
	return Jump{Y: y, V: v, Active: true}
}
