package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/countdown/countdown-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByOp       map[log.Operation]int
	Timers           map[string]*TimerStats
	Completions      int
	StaleTicks       int
	Ignored          int
	Errors           int
	Truncated        bool
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// TimerStats holds statistics for a single timer.
type TimerStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Ticks       int
	Completions int
	LastState   string
}

// CollectStats reads every event in the log file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsByOp:       make(map[log.Operation]int),
		Timers:           make(map[string]*TimerStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	stats.Truncated = reader.Truncated()

	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	timer, ok := s.Timers[event.TimerID]
	if !ok {
		timer = &TimerStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Timers[event.TimerID] = timer
	}
	timer.Events++
	if event.Timestamp.After(timer.LastSeen) {
		timer.LastSeen = event.Timestamp
	}

	switch {
	case event.Control != nil:
		s.EventsByOp[event.Control.Op]++
		if event.Control.Ignored {
			s.Ignored++
		}
	case event.Tick != nil:
		if event.Tick.Stale {
			s.StaleTicks++
		} else {
			timer.Ticks++
		}
	case event.StateChange != nil:
		timer.LastState = event.StateChange.NewState
		if event.StateChange.Reason == "complete" {
			s.Completions++
			timer.Completions++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Countdown Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryControl, log.CategoryTick, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Operations:")
	for _, op := range []log.Operation{log.OpStart, log.OpStop, log.OpReset, log.OpPause, log.OpResume} {
		if count := stats.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", op.String()+":", count)
		}
	}
	if stats.Ignored > 0 {
		fmt.Fprintf(w, "  %-12s %d\n", "ignored:", stats.Ignored)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Timers: %d\n", len(stats.Timers))
	if len(stats.Timers) > 0 {
		type timerInfo struct {
			id    string
			stats *TimerStats
		}
		timers := make([]timerInfo, 0, len(stats.Timers))
		for id, ts := range stats.Timers {
			timers = append(timers, timerInfo{id, ts})
		}
		sort.Slice(timers, func(i, j int) bool {
			return timers[i].stats.FirstSeen.Before(timers[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, t := range timers {
			span := t.stats.LastSeen.Sub(t.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, %d ticks, span %s\n", shortenTimerID(t.id), t.stats.Events, t.stats.Ticks, span)
			if t.stats.Completions > 0 {
				fmt.Fprintf(w, "           Completions: %d\n", t.stats.Completions)
			}
			if t.stats.LastState != "" {
				fmt.Fprintf(w, "           Last state: %s\n", t.stats.LastState)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Completions: %d\n", stats.Completions)
	if stats.StaleTicks > 0 {
		fmt.Fprintf(w, "Stale ticks: %d\n", stats.StaleTicks)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
	if stats.Truncated {
		fmt.Fprintln(w, "Warning: log ends in a truncated record")
	}
}
