package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/countdown/countdown-go/pkg/log"
)

// RunExport exports the log file to the specified format, writing to output
// or stdout when output is empty.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *log.Reader, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSON shape of an event, with enums rendered as names.
type jsonEvent struct {
	Timestamp   string                `json:"timestamp"`
	TimerID     string                `json:"timer_id"`
	Category    string                `json:"category"`
	Control     *jsonControl          `json:"control,omitempty"`
	Tick        *log.TickEvent        `json:"tick,omitempty"`
	StateChange *log.StateChangeEvent `json:"state_change,omitempty"`
	Error       *log.ErrorEventData   `json:"error,omitempty"`
}

type jsonControl struct {
	Op       string `json:"op"`
	Duration int    `json:"duration,omitempty"`
	Ignored  bool   `json:"ignored,omitempty"`
}

func toJSONEvent(event log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp:   event.Timestamp.UTC().Format(timestampLayout),
		TimerID:     event.TimerID,
		Category:    event.Category.String(),
		Tick:        event.Tick,
		StateChange: event.StateChange,
		Error:       event.Error,
	}
	if event.Control != nil {
		je.Control = &jsonControl{
			Op:       event.Control.Op.String(),
			Duration: event.Control.Duration,
			Ignored:  event.Control.Ignored,
		}
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "timer_id", "category", "type", "remaining", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		remaining := ""
		detail := ""
		switch {
		case event.Control != nil:
			if event.Control.Op == log.OpStart {
				detail = strconv.Itoa(event.Control.Duration)
			}
			if event.Control.Ignored {
				detail = "ignored"
			}
		case event.Tick != nil:
			remaining = strconv.Itoa(event.Tick.Remaining)
			if event.Tick.Stale {
				detail = "stale"
			}
		case event.StateChange != nil:
			remaining = strconv.Itoa(event.StateChange.Remaining)
			detail = fmt.Sprintf("%s->%s (%s)", event.StateChange.OldState, event.StateChange.NewState, event.StateChange.Reason)
		case event.Error != nil:
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.TimerID,
			event.Category.String(),
			eventLabel(event),
			remaining,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
