package reservation

import (
	"context"
	"time"

	"meetingroom/internal/domain"
)

// Repository is the transactional ledger of reservations. Writes are
// atomic "reserve" operations: the conflict scan and the row write
// happen inside one transaction so concurrent requests for overlapping
// windows on the same room serialize instead of both succeeding.
type Repository interface {
	// InsertIfFree creates res as BOOKED unless its buffer-expanded
	// window intersects an existing BOOKED row of the same room.
	// On success res.ID is populated; on overlap it returns a
	// *ConflictError naming the earliest conflicting reservation.
	InsertIfFree(ctx context.Context, res *domain.Reservation, bufferMinutes int) error

	// RebookIfFree moves an existing BOOKED reservation to a new window
	// in place, excluding the row itself from the conflict scan.
	RebookIfFree(ctx context.Context, rb Rebooking, bufferMinutes int) error

	// Cancel transitions BOOKED -> CANCELED. When requesterID is
	// non-nil the row must belong to that requester. Canceling a row
	// that is missing, canceled, or foreign yields ErrReservationNotFound.
	Cancel(ctx context.Context, id int64, requesterID *int64) error

	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)

	// ListForDay returns the BOOKED reservations starting on the given
	// date, earliest first.
	ListForDay(ctx context.Context, roomID int64, day time.Time) ([]domain.Reservation, error)

	// CountByDay returns per-date BOOKED counts for starts in [from, to).
	CountByDay(ctx context.Context, roomID int64, from, to time.Time) ([]DayCount, error)

	ListForUser(ctx context.Context, userID int64, q string, limit, offset int) ([]ListItem, int64, error)
	ListForRoom(ctx context.Context, roomID int64, q string, limit, offset int) ([]ListItem, int64, error)
}

// Rebooking carries the parameters of an in-place update.
type Rebooking struct {
	ReservationID int64
	RoomID        int64
	RequesterID   *int64  // nil for the administrative flow
	Title         *string // nil keeps the current title
	Start         time.Time
	End           time.Time
}

// DayCount is one calendar cell: date (YYYY-MM-DD) and BOOKED count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ListItem is a reservation row joined with its room, for paged lists.
type ListItem struct {
	ID           int64     `json:"id" gorm:"column:id"`
	RoomID       int64     `json:"room_id" gorm:"column:room_id"`
	RoomName     string    `json:"room_name" gorm:"column:room_name"`
	RoomLocation string    `json:"room_location" gorm:"column:room_location"`
	Title        string    `json:"title,omitempty" gorm:"column:title"`
	Status       string    `json:"status" gorm:"column:status"`
	StartTime    time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime      time.Time `json:"end_time" gorm:"column:end_time"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

// RoomDirectory is the read-only view of room policy and calendar the
// booking path consumes. Implementations must not let the booking path
// mutate rooms.
type RoomDirectory interface {
	// GetPolicy returns ErrRoomNotFound when the room id is unknown.
	// Whether the room is active is the validator's concern, not a
	// lookup failure.
	GetPolicy(ctx context.Context, roomID int64) (*domain.RoomPolicy, error)

	// GetWeeklyHour returns (nil, nil) when no row exists for the
	// weekday; callers treat that as closed.
	GetWeeklyHour(ctx context.Context, roomID int64, weekday int) (*domain.WeeklyHour, error)

	// GetException returns (nil, nil) when the date has no override.
	GetException(ctx context.Context, roomID int64, date time.Time) (*domain.OperatingException, error)
}
