package core

// Intent is a normalized, discrete player action. Input devices (keyboard,
// SSH session, autopilot) translate their events into intents; the engine
// never sees raw keys.
type Intent int

const (
	IntentNone      Intent = iota
	IntentMoveLeft         // A, Left arrow - shift one lane left
	IntentMoveRight        // D, Right arrow - shift one lane right
	IntentJump             // Space, W, Up - start a jump when grounded
	IntentStart            // Enter, R - start a run from idle or after a crash
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentMoveLeft:
		return "move_left"
	case IntentMoveRight:
		return "move_right"
	case IntentJump:
		return "jump"
	case IntentStart:
		return "start"
	default:
		return "unknown"
	}
}

// IntentQueue collects intents between frames.
// Intents are applied in arrival order at the start of the next frame,
// never in the middle of a frame computation.
type IntentQueue struct {
	pending []Intent
}

// Push appends an intent. IntentNone is dropped.
func (q *IntentQueue) Push(i Intent) {
	if i == IntentNone {
		return
	}
	q.pending = append(q.pending, i)
}

// Drain returns all queued intents in arrival order and empties the queue.
func (q *IntentQueue) Drain() []Intent {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued intents.
func (q *IntentQueue) Len() int {
	return len(q.pending)
}
