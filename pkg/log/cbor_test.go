package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecodePreservesNanoseconds(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	event := Event{
		Timestamp:   ts,
		TimerID:     "timer-1",
		Category:    CategoryState,
		StateChange: &StateChangeEvent{OldState: "RUNNING", NewState: "IDLE", Reason: "complete"},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.StateChange == nil {
		t.Fatal("StateChange is nil")
	}
	if decoded.StateChange.Reason != "complete" {
		t.Errorf("Reason = %q, want %q", decoded.StateChange.Reason, "complete")
	}
	if decoded.Control != nil || decoded.Tick != nil || decoded.Error != nil {
		t.Error("unexpected payload decoded")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TimerID:   "timer-1",
		Category:  CategoryControl,
		Control:   &ControlEvent{Op: OpStart, Duration: 30},
	}

	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding differs between calls")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("DecodeEvent succeeded on garbage input")
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 3; i > 0; i-- {
		if err := enc.Encode(Event{TimerID: "t", Category: CategoryTick, Tick: &TickEvent{Remaining: i - 1}}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	for want := 2; want >= 0; want-- {
		var e Event
		if err := dec.Decode(&e); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if e.Tick == nil || e.Tick.Remaining != want {
			t.Errorf("Tick = %+v, want Remaining %d", e.Tick, want)
		}
	}
}
