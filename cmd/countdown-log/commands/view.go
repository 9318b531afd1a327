// Package commands implements the countdown-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/countdown/countdown-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category *log.Category
	TimerID  string
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [timer:%s] %-7s %s\n", ts, shortenTimerID(event.TimerID), event.Category.String(), eventLabel(event))

	switch {
	case event.Control != nil:
		formatControlDetails(w, event.Control)
	case event.Tick != nil:
		formatTickDetails(w, event.Tick)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// eventLabel names the event for headers and exports.
func eventLabel(event log.Event) string {
	switch {
	case event.Control != nil:
		return event.Control.Op.String()
	case event.Tick != nil:
		if event.Tick.Stale {
			return "Tick (stale)"
		}
		return "Tick"
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenTimerID returns the first 8 characters of the timer ID.
func shortenTimerID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatControlDetails(w io.Writer, c *log.ControlEvent) {
	if c.Op == log.OpStart {
		fmt.Fprintf(w, "  Duration: %ds\n", c.Duration)
	}
	if c.Ignored {
		fmt.Fprintln(w, "  Ignored")
	}
}

func formatTickDetails(w io.Writer, tick *log.TickEvent) {
	fmt.Fprintf(w, "  Remaining: %ds\n", tick.Remaining)
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
	fmt.Fprintf(w, "  Remaining: %ds\n", sc.Remaining)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "control":
		return log.CategoryControl, nil
	case "tick":
		return log.CategoryTick, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be control, tick, state, or error)", s)
	}
}

func parseOperation(s string) (log.Operation, error) {
	op, ok := log.ParseOperation(s)
	if !ok {
		return 0, fmt.Errorf("invalid operation: %s (must be start, stop, reset, pause, or resume)", s)
	}
	return op, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		TimerID:  filter.TimerID,
		Category: filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
