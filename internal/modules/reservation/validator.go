package reservation

import (
	"fmt"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"
)

// Validate checks a requested [start, end) window against room policy
// and the resolved operating window. It is pure: no I/O, no clock reads
// (today is passed in). The first failing check wins, in this order:
// active flag, availability bounds, booking horizon, same-day, duration
// bounds and alignment, start alignment, closed date, operating hours.
func Validate(start, end time.Time, policy *domain.RoomPolicy, window domain.OperatingWindow, today time.Time) *reservation.RejectedError {
	if !policy.IsActive {
		return rejected(reservation.ReasonRoomInactive, "this room is not active")
	}

	day := domain.DayOf(start)
	today = domain.DayOf(today)

	if policy.AvailableFrom != nil && day.Before(domain.DayOf(*policy.AvailableFrom)) {
		return rejected(reservation.ReasonNotYetAvailable,
			"this room accepts reservations from %s", policy.AvailableFrom.Format("2006-01-02"))
	}
	if policy.AvailableTo != nil && day.After(domain.DayOf(*policy.AvailableTo)) {
		return rejected(reservation.ReasonNoLongerAvailable,
			"this room accepts reservations until %s", policy.AvailableTo.Format("2006-01-02"))
	}

	horizon := today.AddDate(0, 0, policy.BookingOpenDaysAhead)
	if day.Before(today) || day.After(horizon) {
		return rejected(reservation.ReasonOutsideHorizon, "outside booking horizon")
	}

	if !domain.DayOf(end).Equal(day) {
		return rejected(reservation.ReasonCrossesMidnight, "reservations must start and end on the same date")
	}

	duration := int(end.Sub(start).Minutes())
	if duration < policy.MinMinutes || duration > policy.MaxMinutes {
		return rejected(reservation.ReasonDurationOutOfRange,
			"duration must be between %d and %d minutes", policy.MinMinutes, policy.MaxMinutes)
	}
	if policy.SlotMinutes > 0 && duration%policy.SlotMinutes != 0 {
		return rejected(reservation.ReasonDurationNotAligned,
			"duration must be a multiple of %d minutes", policy.SlotMinutes)
	}
	if policy.SlotMinutes > 0 && domain.MinuteOfDay(start).Minutes()%policy.SlotMinutes != 0 {
		return rejected(reservation.ReasonStartNotAligned,
			"start time must fall on a %d-minute boundary", policy.SlotMinutes)
	}

	if window.Closed {
		if window.Reason != "" {
			return rejected(reservation.ReasonRoomClosed, "the room is closed on this date (%s)", window.Reason)
		}
		return rejected(reservation.ReasonRoomClosed, "the room is closed on this date")
	}

	startMin := domain.MinuteOfDay(start).Minutes()
	endMin := startMin + duration
	if startMin < window.Open.Minutes() || endMin > window.Close.Minutes() {
		return rejected(reservation.ReasonOutsideHours,
			"reservations must fall within operating hours %s - %s", window.Open, window.Close)
	}

	return nil
}

func rejected(reason reservation.RejectReason, format string, args ...any) *reservation.RejectedError {
	return &reservation.RejectedError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}
