package catalog

import (
	"context"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/catalog"
)

// Service exposes the read-only room directory: callers browse rooms
// and their schedules here, while all mutations stay with the separate
// room-management side.
type Service struct {
	rooms *catalog.RoomRepository
	now   func() time.Time
}

func NewService(rooms *catalog.RoomRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{rooms: rooms, now: now}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

// RoomDetail bundles a room with its weekly schedule and upcoming
// overrides, the shape the room page renders from.
type RoomDetail struct {
	Room        domain.Room                 `json:"room"`
	WeeklyHours []domain.WeeklyHour         `json:"weekly_hours"`
	Exceptions  []domain.OperatingException `json:"exceptions"`
}

func (s *Service) GetRoom(ctx context.Context, roomID int64) (*RoomDetail, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	hours, err := s.rooms.GetWeeklyHours(ctx, roomID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.rooms.ListUpcomingExceptions(ctx, roomID, s.now())
	if err != nil {
		return nil, err
	}
	return &RoomDetail{Room: *room, WeeklyHours: hours, Exceptions: exceptions}, nil
}
