package database

import (
	"log"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Event{}, &models.Registration{}, &models.CheckIn{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	CreateUniqueIndexes(db)
	SeedEvents(db)

	return db
}

// CreateUniqueIndexes installs the named unique indexes the consistency
// engine relies on. The names must stay in sync with the repository
// constraint constants: they are how commit-time 23505 errors are mapped
// back to a conflict kind.
func CreateUniqueIndexes(db *gorm.DB) {
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_telegram_user
		ON registrations (event_id, telegram_user_id)`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_email
		ON registrations (event_id, email)`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_event_phone
		ON registrations (event_id, phone)`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_registrations_qr_token
		ON registrations (qr_token) WHERE qr_token IS NOT NULL`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_checkins_registration
		ON check_ins (registration_id)`)
}

// SeedEvents inserts the baseline demo events when the table is empty.
func SeedEvents(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Event{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	events := []models.Event{
		{
			ID:        "evt_001",
			Title:     "NUS-ISS Career Sharing",
			StartTime: time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC),
			Location:  "LT19",
			Capacity:  100,
			Status:    models.EventStatusOpen,
		},
		{
			ID:        "evt_002",
			Title:     "Python FastAPI Workshop",
			StartTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
			Location:  "Online",
			Capacity:  200,
			Status:    models.EventStatusOpen,
		},
	}
	if err := db.Create(&events).Error; err != nil {
		log.Printf("failed to seed events: %v", err)
	}
}
