package reservation

import (
	"context"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"
)

// Service is the single entry point for booking operations. Both the
// self-service and the administrative proxy flow go through it; the
// only difference is who the requester is and whether ownership is
// enforced on cancel/rebook.
type Service struct {
	rooms        reservation.RoomDirectory
	reservations reservation.Repository
	calendar     *CalendarResolver
	now          func() time.Time
}

// NewService wires the booking engine. now may be nil; tests inject a
// fixed clock for the horizon checks.
func NewService(rooms reservation.RoomDirectory, reservations reservation.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		rooms:        rooms,
		reservations: reservations,
		calendar:     NewCalendarResolver(rooms),
		now:          now,
	}
}

type CreateParams struct {
	RoomID          int64
	RequesterID     int64
	Title           string
	Start           time.Time
	DurationMinutes int
}

// Create validates the request against policy and calendar, then asks
// the ledger to reserve atomically. Any failure happens before a write.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Reservation, error) {
	start := p.Start.UTC().Truncate(time.Minute)
	end := start.Add(time.Duration(p.DurationMinutes) * time.Minute)

	policy, err := s.rooms.GetPolicy(ctx, p.RoomID)
	if err != nil {
		return nil, err
	}
	window, err := s.calendar.Resolve(ctx, p.RoomID, start)
	if err != nil {
		return nil, err
	}
	if rej := Validate(start, end, policy, window, s.now()); rej != nil {
		return nil, rej
	}

	res := &domain.Reservation{
		RoomID:    p.RoomID,
		UserID:    p.RequesterID,
		Title:     p.Title,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.reservations.InsertIfFree(ctx, res, policy.BufferMinutes); err != nil {
		return nil, err
	}
	return res, nil
}

type UpdateParams struct {
	ReservationID   int64
	RoomID          int64
	RequesterID     *int64 // nil for the administrative flow
	Title           *string
	Start           time.Time
	DurationMinutes int
}

// Update rebooks an existing reservation in place. The new window runs
// through the full validation pipeline; the row itself is excluded from
// the conflict scan so a reservation can keep (part of) its own slot.
func (s *Service) Update(ctx context.Context, p UpdateParams) (*domain.Reservation, error) {
	start := p.Start.UTC().Truncate(time.Minute)
	end := start.Add(time.Duration(p.DurationMinutes) * time.Minute)

	policy, err := s.rooms.GetPolicy(ctx, p.RoomID)
	if err != nil {
		return nil, err
	}
	window, err := s.calendar.Resolve(ctx, p.RoomID, start)
	if err != nil {
		return nil, err
	}
	if rej := Validate(start, end, policy, window, s.now()); rej != nil {
		return nil, rej
	}

	rb := reservation.Rebooking{
		ReservationID: p.ReservationID,
		RoomID:        p.RoomID,
		RequesterID:   p.RequesterID,
		Title:         p.Title,
		Start:         start,
		End:           end,
	}
	if err := s.reservations.RebookIfFree(ctx, rb, policy.BufferMinutes); err != nil {
		return nil, err
	}
	return s.reservations.GetByID(ctx, p.ReservationID)
}

// Cancel transitions BOOKED -> CANCELED. requesterID nil means the
// administrative override; otherwise the reservation must belong to
// the requester. Canceling an already canceled reservation reports
// not-found rather than corrupting state.
func (s *Service) Cancel(ctx context.Context, id int64, requesterID *int64) error {
	return s.reservations.Cancel(ctx, id, requesterID)
}

// DayView is the timetable projection for one room and date.
type DayView struct {
	RoomID       int64                  `json:"room_id"`
	Date         string                 `json:"date"`
	Window       domain.OperatingWindow `json:"window"`
	Reservations []domain.Reservation   `json:"reservations"`
}

func (s *Service) DayView(ctx context.Context, roomID int64, date time.Time) (*DayView, error) {
	if _, err := s.rooms.GetPolicy(ctx, roomID); err != nil {
		return nil, err
	}
	window, err := s.calendar.Resolve(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	items, err := s.reservations.ListForDay(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	return &DayView{
		RoomID:       roomID,
		Date:         domain.DayOf(date).Format("2006-01-02"),
		Window:       window,
		Reservations: items,
	}, nil
}

// MonthCounts returns per-date BOOKED counts for the month containing
// firstOfMonth, for calendar rendering.
func (s *Service) MonthCounts(ctx context.Context, roomID int64, firstOfMonth time.Time) ([]reservation.DayCount, error) {
	if _, err := s.rooms.GetPolicy(ctx, roomID); err != nil {
		return nil, err
	}
	from := domain.DayOf(firstOfMonth)
	from = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.reservations.CountByDay(ctx, roomID, from, to)
}

// Page bounds follow the list endpoints of the rest of the API.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func pageMeta(page, size int, total int64) PageMeta {
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageMeta{Page: page, Size: size, Total: total, TotalPages: totalPages}
}

func (s *Service) ListMine(ctx context.Context, userID int64, q string, page, size int) ([]reservation.ListItem, PageMeta, error) {
	page, size = normalizePage(page, size)
	items, total, err := s.reservations.ListForUser(ctx, userID, q, size, (page-1)*size)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, pageMeta(page, size, total), nil
}

func (s *Service) ListForRoom(ctx context.Context, roomID int64, q string, page, size int) ([]reservation.ListItem, PageMeta, error) {
	if _, err := s.rooms.GetPolicy(ctx, roomID); err != nil {
		return nil, PageMeta{}, err
	}
	page, size = normalizePage(page, size)
	items, total, err := s.reservations.ListForRoom(ctx, roomID, q, size, (page-1)*size)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, pageMeta(page, size, total), nil
}
