package booking

import "errors"

// Status is the booking lifecycle state. Transitions only happen through
// Apply so every legal edge lives in one place.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

type Event string

const (
	EventPaymentSucceeded Event = "payment_succeeded"
	EventPaymentFailed    Event = "payment_failed"
	EventCancel           Event = "cancel"
	EventComplete         Event = "complete"
)

var ErrInvalidState = errors.New("operation not allowed in current booking status")

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusFailed, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether a booking in this status holds its time slot.
// CANCELLED and FAILED bookings release the interval.
func (s Status) Blocking() bool {
	return s != StatusCancelled && s != StatusFailed
}

// Apply returns the status after the given event, or ErrInvalidState when the
// transition is not legal.
func (s Status) Apply(e Event) (Status, error) {
	switch s {
	case StatusPending:
		switch e {
		case EventPaymentSucceeded:
			return StatusConfirmed, nil
		case EventPaymentFailed:
			return StatusFailed, nil
		case EventCancel:
			return StatusCancelled, nil
		}
	case StatusConfirmed:
		switch e {
		case EventCancel:
			return StatusCancelled, nil
		case EventComplete:
			return StatusCompleted, nil
		}
	}
	return s, ErrInvalidState
}
