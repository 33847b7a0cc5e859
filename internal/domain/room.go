package domain

import "time"

// Room is a bookable meeting room together with its booking policy.
// Rooms are managed by the admin side; the reservation engine only
// reads them.
type Room struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" validate:"required"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	IsActive bool   `json:"is_active"`

	// Inclusive date bounds of the bookable period; nil means unbounded.
	AvailableFrom *time.Time `json:"available_from,omitempty" gorm:"type:date"`
	AvailableTo   *time.Time `json:"available_to,omitempty" gorm:"type:date"`

	SlotMinutes          int `json:"slot_minutes"`
	MinMinutes           int `json:"min_minutes"`
	MaxMinutes           int `json:"max_minutes"`
	BufferMinutes        int `json:"buffer_minutes"`
	BookingOpenDaysAhead int `json:"booking_open_days_ahead"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

// Policy returns the frozen snapshot the booking path validates against.
func (r *Room) Policy() *RoomPolicy {
	return &RoomPolicy{
		RoomID:               r.ID,
		IsActive:             r.IsActive,
		AvailableFrom:        r.AvailableFrom,
		AvailableTo:          r.AvailableTo,
		SlotMinutes:          r.SlotMinutes,
		MinMinutes:           r.MinMinutes,
		MaxMinutes:           r.MaxMinutes,
		BufferMinutes:        r.BufferMinutes,
		BookingOpenDaysAhead: r.BookingOpenDaysAhead,
	}
}

// RoomPolicy is the per-room booking policy as seen by the validator.
// It is a value snapshot: policy rows may change between calls and the
// engine never holds policy locks.
type RoomPolicy struct {
	RoomID               int64      `json:"room_id"`
	IsActive             bool       `json:"is_active"`
	AvailableFrom        *time.Time `json:"available_from,omitempty"`
	AvailableTo          *time.Time `json:"available_to,omitempty"`
	SlotMinutes          int        `json:"slot_minutes"`
	MinMinutes           int        `json:"min_minutes"`
	MaxMinutes           int        `json:"max_minutes"`
	BufferMinutes        int        `json:"buffer_minutes"`
	BookingOpenDaysAhead int        `json:"booking_open_days_ahead"`
}

// WeeklyHour is one row of a room's weekly operating schedule,
// one per ISO weekday (1=Monday .. 7=Sunday).
type WeeklyHour struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	RoomID   int64     `json:"room_id" gorm:"uniqueIndex:idx_weekly_hours_room_dow"`
	Weekday  int       `json:"weekday" gorm:"uniqueIndex:idx_weekly_hours_room_dow"`
	IsClosed bool      `json:"is_closed"`
	Open     TimeOfDay `json:"open" gorm:"type:varchar(5)"`
	Close    TimeOfDay `json:"close" gorm:"type:varchar(5)"`
}

func (WeeklyHour) TableName() string { return "weekly_hours" }

// OperatingException overrides the weekly schedule for a single date.
// Its values are authoritative for that date, whether it closes a
// normally open day or shifts the hours.
type OperatingException struct {
	ID       int64      `json:"id" gorm:"primaryKey"`
	RoomID   int64      `json:"room_id" gorm:"uniqueIndex:idx_exceptions_room_date"`
	Date     time.Time  `json:"date" gorm:"type:date;uniqueIndex:idx_exceptions_room_date"`
	IsClosed bool       `json:"is_closed"`
	Open     *TimeOfDay `json:"open,omitempty" gorm:"type:varchar(5)"`
	Close    *TimeOfDay `json:"close,omitempty" gorm:"type:varchar(5)"`
	Reason   string     `json:"reason,omitempty"`
}

func (OperatingException) TableName() string { return "operating_exceptions" }

// OperatingWindow is the resolved open/close range for one room on one
// date. Open and Close are meaningless when Closed is true.
type OperatingWindow struct {
	Closed bool      `json:"closed"`
	Open   TimeOfDay `json:"open,omitempty"`
	Close  TimeOfDay `json:"close,omitempty"`
	Reason string    `json:"reason,omitempty"`
}
