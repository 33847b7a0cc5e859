package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// RejectReason is the machine-distinguishable code attached to a policy
// rejection. The human message travels next to it verbatim.
type RejectReason string

const (
	ReasonRoomInactive       RejectReason = "ROOM_INACTIVE"
	ReasonNotYetAvailable    RejectReason = "ROOM_NOT_YET_AVAILABLE"
	ReasonNoLongerAvailable  RejectReason = "ROOM_NO_LONGER_AVAILABLE"
	ReasonOutsideHorizon     RejectReason = "OUTSIDE_BOOKING_HORIZON"
	ReasonCrossesMidnight    RejectReason = "CROSSES_MIDNIGHT"
	ReasonDurationOutOfRange RejectReason = "DURATION_OUT_OF_RANGE"
	ReasonDurationNotAligned RejectReason = "DURATION_NOT_ALIGNED"
	ReasonStartNotAligned    RejectReason = "START_NOT_ALIGNED"
	ReasonRoomClosed         RejectReason = "ROOM_CLOSED"
	ReasonOutsideHours       RejectReason = "OUTSIDE_OPERATING_HOURS"
)

// RejectedError reports a booking request that violates room policy.
// It is decided before any write happens and is never retried.
type RejectedError struct {
	Reason  RejectReason
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// ConflictError reports an overlap with an existing BOOKED reservation.
// The offending row's id and bounds are diagnostic, not sensitive, and
// are surfaced to the caller verbatim. A conflict is an expected
// outcome, not an infrastructure failure.
type ConflictError struct {
	ReservationID int64
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	if e.ReservationID == 0 {
		return "time slot is already reserved"
	}
	return fmt.Sprintf("time slot is already reserved (reservation %d, %s - %s)",
		e.ReservationID,
		e.Start.Format("2006-01-02 15:04"),
		e.End.Format("2006-01-02 15:04"))
}
