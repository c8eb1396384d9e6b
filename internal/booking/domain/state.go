package domain

import (
	"sync"
	"time"
)

// Booking flow states, tracked per class.
const (
	StateIdle    = "idle"
	StateBooking = "booking"
	StateBooked  = "booked"
)

// StateTracker tracks the booking flow state of each class. A class moves
// idle -> booking while a reservation is in flight, then booking -> booked on
// success. The booked state is transient: after the reset interval the class
// returns to idle so the next customer can book.
//
// All methods are safe for concurrent use.
type StateTracker struct {
	mu       sync.Mutex
	states   map[int]string
	timers   map[int]*time.Timer
	resetDur time.Duration
}

// NewStateTracker creates a tracker that resets booked classes to idle after
// the given duration.
func NewStateTracker(resetDur time.Duration) *StateTracker {
	return &StateTracker{
		states:   make(map[int]string),
		timers:   make(map[int]*time.Timer),
		resetDur: resetDur,
	}
}

// State returns the current state of a class. Unknown classes are idle.
func (t *StateTracker) State(classID int) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state, ok := t.states[classID]; ok {
		return state
	}
	return StateIdle
}

// Begin moves a class from idle to booking. It returns false if the class is
// already mid-flow or booked, in which case the caller must not proceed.
func (t *StateTracker) Begin(classID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state, ok := t.states[classID]; ok && state != StateIdle {
		return false
	}
	t.states[classID] = StateBooking
	return true
}

// Fail returns a class from booking to idle after a failed reservation.
func (t *StateTracker) Fail(classID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.states[classID] == StateBooking {
		t.states[classID] = StateIdle
	}
}

// Complete moves a class from booking to booked and schedules the reset back
// to idle.
func (t *StateTracker) Complete(classID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.states[classID] != StateBooking {
		return
	}
	t.states[classID] = StateBooked

	if timer, ok := t.timers[classID]; ok {
		timer.Stop()
	}
	t.timers[classID] = time.AfterFunc(t.resetDur, func() {
		t.reset(classID)
	})
}

// Snapshot returns a copy of all non-idle class states.
func (t *StateTracker) Snapshot() map[int]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make(map[int]string, len(t.states))
	for classID, state := range t.states {
		if state != StateIdle {
			snapshot[classID] = state
		}
	}
	return snapshot
}

// Stop cancels all pending reset timers. Used during shutdown.
func (t *StateTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for classID, timer := range t.timers {
		timer.Stop()
		delete(t.timers, classID)
	}
}

func (t *StateTracker) reset(classID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.states[classID] == StateBooked {
		t.states[classID] = StateIdle
	}
	delete(t.timers, classID)
}
