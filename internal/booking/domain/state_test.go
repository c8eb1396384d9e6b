package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTracker_UnknownClassIsIdle(t *testing.T) {
	tracker := NewStateTracker(time.Minute)
	assert.Equal(t, StateIdle, tracker.State(42))
}

func TestStateTracker_BeginMovesToBooking(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	require.True(t, tracker.Begin(1))
	assert.Equal(t, StateBooking, tracker.State(1))
}

func TestStateTracker_BeginRejectsWhileInFlight(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	require.True(t, tracker.Begin(1))
	assert.False(t, tracker.Begin(1))
}

func TestStateTracker_BeginIndependentPerClass(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	require.True(t, tracker.Begin(1))
	assert.True(t, tracker.Begin(2))
}

func TestStateTracker_FailReturnsToIdle(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	require.True(t, tracker.Begin(1))
	tracker.Fail(1)

	assert.Equal(t, StateIdle, tracker.State(1))
	assert.True(t, tracker.Begin(1))
}

func TestStateTracker_CompleteMovesToBooked(t *testing.T) {
	tracker := NewStateTracker(time.Minute)
	defer tracker.Stop()

	require.True(t, tracker.Begin(1))
	tracker.Complete(1)

	assert.Equal(t, StateBooked, tracker.State(1))
	assert.False(t, tracker.Begin(1))
}

func TestStateTracker_CompleteWithoutBeginIsNoop(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	tracker.Complete(1)
	assert.Equal(t, StateIdle, tracker.State(1))
}

func TestStateTracker_BookedResetsToIdleAfterInterval(t *testing.T) {
	tracker := NewStateTracker(20 * time.Millisecond)
	defer tracker.Stop()

	require.True(t, tracker.Begin(1))
	tracker.Complete(1)
	require.Equal(t, StateBooked, tracker.State(1))

	assert.Eventually(t, func() bool {
		return tracker.State(1) == StateIdle
	}, time.Second, 5*time.Millisecond)
}

func TestStateTracker_SnapshotOmitsIdle(t *testing.T) {
	tracker := NewStateTracker(time.Minute)
	defer tracker.Stop()

	require.True(t, tracker.Begin(1))
	require.True(t, tracker.Begin(2))
	tracker.Complete(2)
	require.True(t, tracker.Begin(3))
	tracker.Fail(3)

	snapshot := tracker.Snapshot()
	assert.Equal(t, map[int]string{1: StateBooking, 2: StateBooked}, snapshot)
}

func TestStateTracker_ConcurrentBeginSingleWinner(t *testing.T) {
	tracker := NewStateTracker(time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Begin(7) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
