package catalog

import (
	"context"
	"errors"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"

	"gorm.io/gorm"
)

// RoomRepository is the read-only room directory. The reservation
// engine consumes it through reservation.RoomDirectory and never
// mutates rooms; room management is a separate concern.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reservation.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetPolicy returns the frozen policy snapshot for one room.
func (r *RoomRepository) GetPolicy(ctx context.Context, roomID int64) (*domain.RoomPolicy, error) {
	room, err := r.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return room.Policy(), nil
}

// GetWeeklyHour returns (nil, nil) when the weekday has no row; the
// calendar resolver treats that as closed.
func (r *RoomRepository) GetWeeklyHour(ctx context.Context, roomID int64, weekday int) (*domain.WeeklyHour, error) {
	var wh domain.WeeklyHour
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND weekday = ?", roomID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// GetException returns (nil, nil) when the date has no override.
func (r *RoomRepository) GetException(ctx context.Context, roomID int64, date time.Time) (*domain.OperatingException, error) {
	var ex domain.OperatingException
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, domain.DayOf(date)).
		First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// List returns rooms for the directory endpoints, active first.
func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Order("is_active DESC, name ASC").
		Find(&rooms).Error
	return rooms, err
}

// GetWeeklyHours returns all weekly rows of a room ordered by weekday.
func (r *RoomRepository) GetWeeklyHours(ctx context.Context, roomID int64) ([]domain.WeeklyHour, error) {
	var hours []domain.WeeklyHour
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("weekday ASC").
		Find(&hours).Error
	return hours, err
}

// ListUpcomingExceptions returns overrides dated on or after from.
func (r *RoomRepository) ListUpcomingExceptions(ctx context.Context, roomID int64, from time.Time) ([]domain.OperatingException, error) {
	var exceptions []domain.OperatingException
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ?", roomID, domain.DayOf(from)).
		Order("date ASC").
		Find(&exceptions).Error
	return exceptions, err
}
