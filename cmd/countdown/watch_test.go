package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countdown/countdown-go/pkg/countdown"
	"github.com/countdown/countdown-go/pkg/scheduler"
)

func TestWatchPrintsUntilComplete(t *testing.T) {
	sched := scheduler.NewManual()
	timer := countdown.NewTimerWithConfig(countdown.Config{Scheduler: sched})
	require.NoError(t, timer.Start(3))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for timer.IsTimerRunning() {
			time.Sleep(5 * time.Millisecond)
			sched.Tick()
		}
	}()

	var buf bytes.Buffer
	err := watch(context.Background(), timer, &buf, time.Millisecond)
	<-done

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "0:03")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "0:00"), "output %q should end at 0:00", out)
}

func TestWatchReturnsImmediatelyWhenIdle(t *testing.T) {
	timer := countdown.NewTimerWithConfig(countdown.Config{Scheduler: scheduler.NewManual()})

	var buf bytes.Buffer
	require.NoError(t, watch(context.Background(), timer, &buf, time.Millisecond))
	assert.Contains(t, buf.String(), "0:00")
}

func TestWatchHonorsContext(t *testing.T) {
	sched := scheduler.NewManual()
	timer := countdown.NewTimerWithConfig(countdown.Config{Scheduler: sched})
	require.NoError(t, timer.Start(10))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := watch(ctx, timer, &buf, time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, timer.IsTimerRunning())
}
