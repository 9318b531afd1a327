package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/countdown/countdown-go/pkg/countdown"
)

const defaultPollInterval = 100 * time.Millisecond

// watch prints the timer's remaining time each time it changes and returns
// nil once the timer leaves the running state. Returns ctx.Err() if ctx ends
// first.
func watch(ctx context.Context, timer *countdown.Timer, w io.Writer, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	last := -1
	for {
		// State first: if it reads idle, the remaining time read after it is final.
		state := timer.State()
		remaining := timer.RemainingTime()
		if remaining != last {
			fmt.Fprintf(w, "\r%s ", countdown.FormatSeconds(remaining))
			last = remaining
		}

		if state != countdown.StateRunning {
			fmt.Fprintln(w)
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
