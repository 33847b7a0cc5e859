package reservation

import (
	"context"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"
)

// CalendarResolver turns (room, date) into the operating window in
// effect that day. A date-specific exception is authoritative; only
// when none exists does the weekly schedule apply.
type CalendarResolver struct {
	rooms reservation.RoomDirectory
}

func NewCalendarResolver(rooms reservation.RoomDirectory) *CalendarResolver {
	return &CalendarResolver{rooms: rooms}
}

func (c *CalendarResolver) Resolve(ctx context.Context, roomID int64, date time.Time) (domain.OperatingWindow, error) {
	day := domain.DayOf(date)

	ex, err := c.rooms.GetException(ctx, roomID, day)
	if err != nil {
		return domain.OperatingWindow{}, err
	}
	if ex != nil {
		if ex.IsClosed || ex.Open == nil || ex.Close == nil {
			return domain.OperatingWindow{Closed: true, Reason: ex.Reason}, nil
		}
		return domain.OperatingWindow{
			Open:   *ex.Open,
			Close:  *ex.Close,
			Reason: ex.Reason,
		}, nil
	}

	wh, err := c.rooms.GetWeeklyHour(ctx, roomID, domain.ISOWeekday(day))
	if err != nil {
		return domain.OperatingWindow{}, err
	}
	// A missing weekly row means closed, not misconfigured. Failing
	// safe here matches the rest of the schedule lookups.
	if wh == nil || wh.IsClosed {
		return domain.OperatingWindow{Closed: true}, nil
	}
	return domain.OperatingWindow{Open: wh.Open, Close: wh.Close}, nil
}
