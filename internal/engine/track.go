package engine

// Advance moves every entity toward the player by speed*step and drops the
// ones that reached PruneDepth. The input slice is not modified.
func Advance(entities []Entity, speed, step float64) []Entity {
	out := make([]Entity, 0, len(entities)+1)
	for _, e := range entities {
		e.Depth -= speed * step
		if e.Depth <= PruneDepth {
			continue
		}
		out = append(out, e)
	}
	return out
}
