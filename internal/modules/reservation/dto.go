package reservation

import (
	"fmt"
	"time"

	"meetingroom/internal/domain"
)

// CreateReservationRequest is the wire form of a booking request.
// user_id is honored only on the administrative proxy route.
type CreateReservationRequest struct {
	RoomID          int64  `json:"room_id" binding:"required"`
	Title           string `json:"title" binding:"max=200"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	UserID          int64  `json:"user_id"`
}

func (r CreateReservationRequest) start() (time.Time, error) {
	return parseStart(r.Date, r.StartTime)
}

type UpdateReservationRequest struct {
	RoomID          int64   `json:"room_id" binding:"required"`
	Title           *string `json:"title" binding:"omitempty,max=200"`
	Date            string  `json:"date" binding:"required"`
	StartTime       string  `json:"start_time" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

func (r UpdateReservationRequest) start() (time.Time, error) {
	return parseStart(r.Date, r.StartTime)
}

// parseStart combines "YYYY-MM-DD" and "HH:MM" into a UTC timestamp.
func parseStart(date, startTime string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	tod, err := domain.ParseTimeOfDay(startTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Minutes()/60, tod.Minutes()%60, 0, 0, time.UTC), nil
}
