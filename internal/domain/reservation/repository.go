package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetingroom/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns the gorm-backed reservation ledger.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

type reservationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id"`
	UserID    int64     `gorm:"column:user_id"`
	Title     *string   `gorm:"column:title"`
	Status    string    `gorm:"column:status"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var title string
	if m.Title != nil {
		title = *m.Title
	}
	return &domain.Reservation{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		Title:     title,
		Status:    domain.ReservationStatus(m.Status),
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// normalizeToMinute drops seconds and fractions; the whole system works
// at minute precision in UTC.
func normalizeToMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// rowLocks reports whether the dialect supports SELECT ... FOR UPDATE.
// On SQLite the conflict scan relies on the write transaction instead:
// connections are expected to open with _txlock=immediate so two
// concurrent reserve transactions serialize at BEGIN.
func (r *gormRepository) rowLocks() bool {
	return r.db.Dialector.Name() == "postgres"
}

// lockRoom serializes writers of one room's calendar on PostgreSQL.
// FOR UPDATE on reservations alone is not enough there: two inserts
// into a free window would each scan, lock nothing and both commit.
// Taking the parent room row first makes the scan-then-write section
// exclusive per room while leaving other rooms fully parallel. SQLite
// needs none of this; its write transactions serialize at BEGIN.
func (r *gormRepository) lockRoom(tx *gorm.DB, roomID int64) error {
	if !r.rowLocks() {
		return nil
	}
	var id int64
	return tx.Raw("SELECT id FROM rooms WHERE id = ? FOR UPDATE", roomID).Scan(&id).Error
}

// findConflict locks and returns the earliest BOOKED row of the room
// whose [start_time, end_time) intersects (lo, hi). The strict </> pair
// keeps the half-open semantics: a reservation ending exactly when
// another's buffer window begins is not a conflict.
func (r *gormRepository) findConflict(tx *gorm.DB, roomID int64, lo, hi time.Time, excludeID int64) (*ConflictError, error) {
	q := tx.
		Where("room_id = ? AND status = ?", roomID, domain.ReservationBooked).
		Where("start_time < ? AND end_time > ?", hi, lo)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if r.rowLocks() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m reservationModel
	err := q.Order("start_time ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ConflictError{ReservationID: m.ID, Start: m.StartTime, End: m.EndTime}, nil
}

// wrapInsertError maps a violation of the no_overbooking exclusion
// constraint (installed by database.Migrate on PostgreSQL) to a
// conflict. The room row lock is the primary mechanism; the constraint
// only backstops writes that reach the table without it.
func wrapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "no_overbooking" {
		return &ConflictError{}
	}
	return err
}

func (r *gormRepository) InsertIfFree(ctx context.Context, res *domain.Reservation, bufferMinutes int) error {
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	start := normalizeToMinute(res.StartTime)
	end := normalizeToMinute(res.EndTime)
	if !end.After(start) {
		return fmt.Errorf("reservation end %s is not after start %s", end, start)
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	lo := start.Add(-buffer)
	hi := end.Add(buffer)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockRoom(tx, res.RoomID); err != nil {
			return err
		}

		conflict, err := r.findConflict(tx, res.RoomID, lo, hi, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflict
		}

		m := reservationModel{
			RoomID:    res.RoomID,
			UserID:    res.UserID,
			Status:    string(domain.ReservationBooked),
			StartTime: start,
			EndTime:   end,
		}
		if res.Title != "" {
			title := res.Title
			m.Title = &title
		}
		if err := tx.Create(&m).Error; err != nil {
			return wrapInsertError(err)
		}

		res.ID = m.ID
		res.Status = domain.ReservationBooked
		res.StartTime = start
		res.EndTime = end
		res.CreatedAt = m.CreatedAt
		res.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *gormRepository) RebookIfFree(ctx context.Context, rb Rebooking, bufferMinutes int) error {
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	start := normalizeToMinute(rb.Start)
	end := normalizeToMinute(rb.End)
	if !end.After(start) {
		return fmt.Errorf("reservation end %s is not after start %s", end, start)
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	lo := start.Add(-buffer)
	hi := end.Add(buffer)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockRoom(tx, rb.RoomID); err != nil {
			return err
		}

		q := tx.Where("id = ?", rb.ReservationID)
		if r.rowLocks() {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var m reservationModel
		if err := q.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		// Canceled rows are immutable, and a rebook never moves a
		// reservation across rooms or requesters.
		if m.Status != string(domain.ReservationBooked) || m.RoomID != rb.RoomID {
			return ErrReservationNotFound
		}
		if rb.RequesterID != nil && m.UserID != *rb.RequesterID {
			return ErrReservationNotFound
		}

		conflict, err := r.findConflict(tx, rb.RoomID, lo, hi, rb.ReservationID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflict
		}

		updates := map[string]any{
			"start_time": start,
			"end_time":   end,
		}
		if rb.Title != nil {
			updates["title"] = *rb.Title
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return wrapInsertError(err)
		}
		return nil
	})
}

// Cancel needs no conflict scan: freeing time never creates a conflict,
// so it never waits on the reserve lock.
func (r *gormRepository) Cancel(ctx context.Context, id int64, requesterID *int64) error {
	q := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, domain.ReservationBooked)
	if requesterID != nil {
		q = q.Where("user_id = ?", *requesterID)
	}

	res := q.Update("status", domain.ReservationCanceled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainReservation(m), nil
}

func (r *gormRepository) ListForDay(ctx context.Context, roomID int64, day time.Time) ([]domain.Reservation, error) {
	from := domain.DayOf(day)
	to := from.AddDate(0, 0, 1)

	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, domain.ReservationBooked).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// CountByDay groups in Go rather than in SQL so the query stays
// identical on PostgreSQL and SQLite.
func (r *gormRepository) CountByDay(ctx context.Context, roomID int64, from, to time.Time) ([]DayCount, error) {
	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Select("start_time").
		Where("room_id = ? AND status = ?", roomID, domain.ReservationBooked).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC()).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]DayCount, 0)
	for _, row := range rows {
		date := domain.DayOf(row.StartTime).Format("2006-01-02")
		if n := len(out); n > 0 && out[n-1].Date == date {
			out[n-1].Count++
			continue
		}
		out = append(out, DayCount{Date: date, Count: 1})
	}
	return out, nil
}

const listSelect = `
SELECT r.id, r.room_id, rm.name AS room_name, rm.location AS room_location,
       r.title, r.status, r.start_time, r.end_time, r.created_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id
`

func (r *gormRepository) ListForUser(ctx context.Context, userID int64, q string, limit, offset int) ([]ListItem, int64, error) {
	return r.list(ctx, "r.user_id = ?", userID, q, limit, offset)
}

func (r *gormRepository) ListForRoom(ctx context.Context, roomID int64, q string, limit, offset int) ([]ListItem, int64, error) {
	return r.list(ctx, "r.room_id = ?", roomID, q, limit, offset)
}

func (r *gormRepository) list(ctx context.Context, ownerCond string, ownerID int64, q string, limit, offset int) ([]ListItem, int64, error) {
	where := "WHERE " + ownerCond
	args := []any{ownerID}
	if q != "" {
		where += " AND (rm.name LIKE ? OR COALESCE(r.title, '') LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM reservations r JOIN rooms rm ON rm.id = r.room_id " + where
	if err := r.db.WithContext(ctx).Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []ListItem
	listSQL := listSelect + where + " ORDER BY r.start_time DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.WithContext(ctx).Raw(listSQL, args...).Scan(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
