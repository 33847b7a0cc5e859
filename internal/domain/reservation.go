package domain

import "time"

type ReservationStatus string

const (
	ReservationBooked   ReservationStatus = "BOOKED"
	ReservationCanceled ReservationStatus = "CANCELED"
)

// Reservation books one room for one minute-precision time window on a
// single calendar date. The only lifecycle transitions are
// BOOKED -> CANCELED (terminal) and BOOKED -> BOOKED (in-place rebook).
type Reservation struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	RoomID int64  `json:"room_id" gorm:"index:idx_reservations_room_scan,priority:1"`
	UserID int64  `json:"user_id" gorm:"index"`
	Title  string `json:"title,omitempty"`

	Status    ReservationStatus `json:"status" gorm:"type:varchar(16);index:idx_reservations_room_scan,priority:2"`
	StartTime time.Time         `json:"start_time" gorm:"index:idx_reservations_room_scan,priority:3"`
	EndTime   time.Time         `json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reservation) TableName() string { return "reservations" }
