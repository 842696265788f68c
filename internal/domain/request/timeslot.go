package request

import (
	"errors"
	"time"
)

var (
	ErrTimeSlotUnset  = errors.New("time slot is not set")
	ErrTimeSlotInPast = errors.New("scheduled time is in the past")
)

// WireImmediate is the wire form of an immediate slot.
const WireImmediate = "NOW"

type slotMode int

const (
	slotUnset slotMode = iota
	slotImmediate
	slotScheduled
)

// TimeSlot is Immediate or Scheduled(at). The zero value is unset.
type TimeSlot struct {
	mode slotMode
	at   time.Time
}

func Immediate() TimeSlot {
	return TimeSlot{mode: slotImmediate}
}

func Scheduled(at time.Time) TimeSlot {
	return TimeSlot{mode: slotScheduled, at: at}
}

// ParseTimeSlot accepts "NOW" or an RFC 3339 timestamp.
func ParseTimeSlot(s string) (TimeSlot, error) {
	if s == WireImmediate {
		return Immediate(), nil
	}
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return TimeSlot{}, err
	}
	return Scheduled(at), nil
}

func (ts TimeSlot) IsSet() bool            { return ts.mode != slotUnset }
func (ts TimeSlot) IsImmediate() bool      { return ts.mode == slotImmediate }
func (ts TimeSlot) IsScheduled() bool      { return ts.mode == slotScheduled }
func (ts TimeSlot) ScheduledAt() time.Time { return ts.at }

// ValidateAt checks the slot against the evaluation instant now.
func (ts TimeSlot) ValidateAt(now time.Time) error {
	switch ts.mode {
	case slotUnset:
		return ErrTimeSlotUnset
	case slotScheduled:
		if ts.at.Before(now) {
			return ErrTimeSlotInPast
		}
	}
	return nil
}

// Wire renders the slot as the backend expects it.
func (ts TimeSlot) Wire() string {
	switch ts.mode {
	case slotImmediate:
		return WireImmediate
	case slotScheduled:
		return ts.at.Format(time.RFC3339)
	default:
		return ""
	}
}
