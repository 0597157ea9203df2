package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakClock_PassNormalizes(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newTestService(t)

	id, err := svc.AddTask(ctx, AddTaskInput{Title: "Floss", IsHabit: true})
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, id)
	require.NoError(t, err)

	sc := NewStreakClock(svc, time.Hour, zerolog.Nop())

	sc.pass(ctx)
	assert.True(t, store.state.task(id).Completed, "same day, pass is a no-op")

	clock.Advance(24 * time.Hour)
	sc.pass(ctx)
	assert.False(t, store.state.task(id).Completed)
	assert.Equal(t, 1, store.state.task(id).Streak)

	// Two more days with no completion breaks the streak.
	clock.Advance(48 * time.Hour)
	sc.pass(ctx)
	assert.Equal(t, 0, store.state.task(id).Streak)
}

func TestStreakClock_RunStopsOnCancel(t *testing.T) {
	svc, _, _ := newTestService(t)
	sc := NewStreakClock(svc, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sc.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("streak clock did not stop on context cancel")
	}
}

func TestNewStreakClock_DefaultTick(t *testing.T) {
	svc, _, _ := newTestService(t)
	sc := NewStreakClock(svc, 0, zerolog.Nop())
	assert.Equal(t, DefaultStreakTick, sc.tick)
}
