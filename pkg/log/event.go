package log

import (
	"strings"
	"time"
)

// Event represents a timer event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TimerID identifies the timer that produced the event.
	TimerID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Type-specific payload (one of these will be set).
	Control     *ControlEvent     `cbor:"4,keyasint,omitempty"`
	Tick        *TickEvent        `cbor:"5,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryControl indicates a public operation was invoked.
	CategoryControl Category = 0
	// CategoryTick indicates a scheduler tick was delivered.
	CategoryTick Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates a rejected operation.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryControl:
		return "CONTROL"
	case CategoryTick:
		return "TICK"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Operation identifies a public timer operation.
type Operation uint8

const (
	OpStart  Operation = 1
	OpStop   Operation = 2
	OpReset  Operation = 3
	OpPause  Operation = 4
	OpResume Operation = 5
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpStart:
		return "START"
	case OpStop:
		return "STOP"
	case OpReset:
		return "RESET"
	case OpPause:
		return "PAUSE"
	case OpResume:
		return "RESUME"
	default:
		return "UNKNOWN"
	}
}

// ParseOperation parses an operation name (case-insensitive).
func ParseOperation(s string) (Operation, bool) {
	for _, op := range []Operation{OpStart, OpStop, OpReset, OpPause, OpResume} {
		if strings.EqualFold(s, op.String()) {
			return op, true
		}
	}
	return 0, false
}

// ControlEvent captures a public operation call.
type ControlEvent struct {
	// Op is the operation invoked.
	Op Operation `cbor:"1,keyasint"`

	// Duration is the requested duration in seconds (start only).
	Duration int `cbor:"2,keyasint,omitempty"`

	// Ignored is set when the call was a no-op in the current state.
	Ignored bool `cbor:"3,keyasint,omitempty"`
}

// TickEvent captures one tick delivery.
type TickEvent struct {
	// Remaining is the remaining time in seconds after the tick.
	Remaining int `cbor:"1,keyasint"`

	// Stale is set when the tick belonged to a cancelled registration and
	// was dropped without changing state.
	Stale bool `cbor:"2,keyasint,omitempty"`
}

// StateChangeEvent captures a run state transition.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (start, stop, reset, pause, resume, restart, complete).
	Reason string `cbor:"3,keyasint,omitempty"`

	// Remaining is the remaining time in seconds at the moment of the change.
	Remaining int `cbor:"4,keyasint"`
}

// ErrorEventData captures a rejected operation.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
