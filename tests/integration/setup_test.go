//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "registration_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS check_ins")
	testDB.Exec("DROP TABLE IF EXISTS registrations")
	testDB.Exec("DROP TABLE IF EXISTS events")

	if err := testDB.AutoMigrate(&models.Event{}, &models.Registration{}, &models.CheckIn{}); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}
	database.CreateUniqueIndexes(testDB)

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS check_ins")
	testDB.Exec("DROP TABLE IF EXISTS registrations")
	testDB.Exec("DROP TABLE IF EXISTS events")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM check_ins")
	testDB.Exec("DELETE FROM registrations")
	testDB.Exec("DELETE FROM events")
}

func createTestEvent(t *testing.T, id, title string, capacity int) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:        id,
		Title:     title,
		StartTime: time.Now().UTC().Add(24 * time.Hour),
		Location:  "LT19",
		Capacity:  capacity,
		Status:    models.EventStatusOpen,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
