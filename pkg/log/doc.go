// Package log provides diagnostic event capture for countdown timers.
//
// This package defines the Logger interface and Event types for recording
// what a timer did: which controls were invoked, which ticks were delivered,
// and which state transitions followed. It is separate from operational
// logging (slog) - event capture provides a complete machine-readable trace
// for debugging and analysis. It is not a notification mechanism: a timer
// never waits on, or changes behavior because of, its Logger.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("/tmp/timer.clog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries exactly one payload:
//   - Control: a public operation was invoked (ControlEvent)
//   - Tick: the scheduler delivered a tick (TickEvent)
//   - State: the run state changed (StateChangeEvent)
//   - Error: an operation was rejected (ErrorEventData)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .clog extension.
// The countdown-log CLI provides viewing, filtering, and export.
package log
