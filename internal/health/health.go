package health

import "sync/atomic"

// Tracker holds the two process-wide health booleans. Liveness and
// readiness are deliberately independent flags: liveness drives restart
// decisions, readiness drives traffic routing.
type Tracker struct {
	alive      atomic.Bool
	modelReady atomic.Bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// MarkAlive is called once the HTTP listener has bound. The flag never
// flips back; a dead process is simply unreachable.
func (t *Tracker) MarkAlive() {
	t.alive.Store(true)
}

// MarkModelReady is called exactly once, after the model artifact has
// loaded successfully. If loading fails the flag stays false for the
// process lifetime.
func (t *Tracker) MarkModelReady() {
	t.modelReady.Store(true)
}

func (t *Tracker) Alive() bool {
	return t.alive.Load()
}

func (t *Tracker) ModelReady() bool {
	return t.modelReady.Load()
}
