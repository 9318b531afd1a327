package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/countdown/countdown-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// completedRun returns the events of a 2-second countdown that ran to zero.
func completedRun(id string, ts time.Time) []log.Event {
	at := func(s int) time.Time { return ts.Add(time.Duration(s) * time.Second) }
	return []log.Event{
		{Timestamp: at(0), TimerID: id, Category: log.CategoryControl, Control: &log.ControlEvent{Op: log.OpStart, Duration: 2}},
		{Timestamp: at(0), TimerID: id, Category: log.CategoryState, StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "RUNNING", Reason: "start", Remaining: 2}},
		{Timestamp: at(1), TimerID: id, Category: log.CategoryTick, Tick: &log.TickEvent{Remaining: 1}},
		{Timestamp: at(2), TimerID: id, Category: log.CategoryTick, Tick: &log.TickEvent{Remaining: 0}},
		{Timestamp: at(2), TimerID: id, Category: log.CategoryState, StateChange: &log.StateChangeEvent{OldState: "RUNNING", NewState: "IDLE", Reason: "complete"}},
	}
}
