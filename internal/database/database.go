package database

import (
	"log"
	"strings"

	"meetingroom/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the cgo-free "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// Connect picks the driver from the DSN: postgres:// URLs use the pgx
// driver, everything else is treated as a SQLite path (modernc, cgo
// free). SQLite DSNs should carry _txlock=immediate so reserve
// transactions serialize at BEGIN instead of racing on upgrade.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the persisted schema: rooms and their
// weekly hours and exceptions (owned by room management), reservations
// (owned by the booking engine) and users (identity collaborator).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.WeeklyHour{},
		&domain.OperatingException{},
		&domain.Reservation{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return migratePostgresGuards(db)
	}
	return nil
}

// migratePostgresGuards installs the no_overbooking exclusion
// constraint: no two BOOKED rows of one room may hold intersecting
// [start_time, end_time) ranges, whatever path wrote them. The
// reservation ledger already serializes its writers with a room row
// lock; this is the database-level backstop behind it. SQLite has no
// exclusion constraints, so there the ledger transaction stands alone.
func migratePostgresGuards(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$
BEGIN
	ALTER TABLE reservations ADD CONSTRAINT no_overbooking
		EXCLUDE USING gist (room_id WITH =, tsrange(start_time, end_time) WITH &&)
		WHERE (status = 'BOOKED');
EXCEPTION
	WHEN duplicate_object OR duplicate_table THEN NULL;
END $$`).Error
}
