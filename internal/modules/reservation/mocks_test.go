package reservation

import (
	"context"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"

	"github.com/stretchr/testify/mock"
)

type MockRoomDirectory struct {
	mock.Mock
}

func (m *MockRoomDirectory) GetPolicy(ctx context.Context, roomID int64) (*domain.RoomPolicy, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomPolicy), args.Error(1)
}

func (m *MockRoomDirectory) GetWeeklyHour(ctx context.Context, roomID int64, weekday int) (*domain.WeeklyHour, error) {
	args := m.Called(ctx, roomID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyHour), args.Error(1)
}

func (m *MockRoomDirectory) GetException(ctx context.Context, roomID int64, date time.Time) (*domain.OperatingException, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingException), args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertIfFree(ctx context.Context, res *domain.Reservation, bufferMinutes int) error {
	args := m.Called(ctx, res, bufferMinutes)
	if args.Error(0) == nil && res != nil {
		res.ID = 999
		res.Status = domain.ReservationBooked
	}
	return args.Error(0)
}

func (m *MockRepository) RebookIfFree(ctx context.Context, rb reservation.Rebooking, bufferMinutes int) error {
	args := m.Called(ctx, rb, bufferMinutes)
	return args.Error(0)
}

func (m *MockRepository) Cancel(ctx context.Context, id int64, requesterID *int64) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockRepository) ListForDay(ctx context.Context, roomID int64, day time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, roomID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockRepository) CountByDay(ctx context.Context, roomID int64, from, to time.Time) ([]reservation.DayCount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.DayCount), args.Error(1)
}

func (m *MockRepository) ListForUser(ctx context.Context, userID int64, q string, limit, offset int) ([]reservation.ListItem, int64, error) {
	args := m.Called(ctx, userID, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]reservation.ListItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ListForRoom(ctx context.Context, roomID int64, q string, limit, offset int) ([]reservation.ListItem, int64, error) {
	args := m.Called(ctx, roomID, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]reservation.ListItem), args.Get(1).(int64), args.Error(2)
}
