package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"meetingroom/internal/config"
	"meetingroom/internal/database"
	"meetingroom/internal/domain"
	reservationrepo "meetingroom/internal/domain/reservation"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM operating_exceptions")
	db.Exec("DELETE FROM weekly_hours")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@meetingroom.local",
		PasswordHash: string(adminHash),
		Name:         "Facilities Admin",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@meetingroom.local / admin123")

	memberHash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	members := []domain.User{
		{Email: "kim@meetingroom.local", PasswordHash: string(memberHash), Name: "Kim", Role: domain.RoleMember},
		{Email: "lee@meetingroom.local", PasswordHash: string(memberHash), Name: "Lee", Role: domain.RoleMember},
		{Email: "park@meetingroom.local", PasswordHash: string(memberHash), Name: "Park", Role: domain.RoleMember},
	}
	for i := range members {
		db.Create(&members[i])
	}

	log.Println("Creating rooms...")
	rooms := []domain.Room{
		{
			Name: "Aurora", Location: "3F east wing", Capacity: 8, IsActive: true,
			SlotMinutes: 30, MinMinutes: 30, MaxMinutes: 180,
			BufferMinutes: 10, BookingOpenDaysAhead: 30,
		},
		{
			Name: "Borealis", Location: "3F west wing", Capacity: 14, IsActive: true,
			SlotMinutes: 60, MinMinutes: 60, MaxMinutes: 240,
			BufferMinutes: 30, BookingOpenDaysAhead: 14,
		},
		{
			Name: "Cascade", Location: "5F", Capacity: 4, IsActive: false,
			SlotMinutes: 30, MinMinutes: 30, MaxMinutes: 120,
			BufferMinutes: 0, BookingOpenDaysAhead: 7,
		},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	log.Println("Creating weekly hours...")
	open, _ := domain.ParseTimeOfDay("09:00")
	close_, _ := domain.ParseTimeOfDay("18:00")
	for _, room := range rooms {
		for weekday := 1; weekday <= 7; weekday++ {
			wh := domain.WeeklyHour{
				RoomID:   room.ID,
				Weekday:  weekday,
				IsClosed: weekday >= 6, // weekends closed
				Open:     open,
				Close:    close_,
			}
			db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "room_id"}, {Name: "weekday"}},
				UpdateAll: true,
			}).Create(&wh)
		}
	}

	log.Println("Creating operating exceptions...")
	nextMonday := domain.DayOf(time.Now().AddDate(0, 0, 7))
	for domain.ISOWeekday(nextMonday) != 1 {
		nextMonday = nextMonday.AddDate(0, 0, 1)
	}
	db.Create(&domain.OperatingException{
		RoomID:   rooms[0].ID,
		Date:     nextMonday,
		IsClosed: true,
		Reason:   "maintenance",
	})

	log.Println("Creating sample reservations...")
	ledger := reservationrepo.NewRepository(db)
	tomorrow := domain.DayOf(time.Now().AddDate(0, 0, 1))
	// skip the weekend so the samples land on an open day
	for domain.ISOWeekday(tomorrow) >= 6 {
		tomorrow = tomorrow.AddDate(0, 0, 1)
	}
	samples := []domain.Reservation{
		{
			RoomID: rooms[0].ID, UserID: members[0].ID, Title: "Weekly sync",
			StartTime: tomorrow.Add(9 * time.Hour),
			EndTime:   tomorrow.Add(10 * time.Hour),
		},
		{
			RoomID: rooms[0].ID, UserID: members[1].ID, Title: "Design review",
			StartTime: tomorrow.Add(11 * time.Hour),
			EndTime:   tomorrow.Add(12 * time.Hour),
		},
	}
	for i := range samples {
		if err := ledger.InsertIfFree(context.Background(), &samples[i], rooms[0].BufferMinutes); err != nil {
			log.Println("sample reservation skipped:", err)
		}
	}

	log.Println("Seed complete.")
}
