package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserBadge{},
		&models.RefreshToken{},
		&models.MoodLog{},
		&models.VoiceLog{},
		&models.GameSession{},
		&models.Pattern{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     "testuser-" + uuid.NewString()[:8],
		Password: "hashed",
		Age:      25,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func seedMoodLog(t *testing.T, db *gorm.DB, userID uuid.UUID, mood int, createdAt time.Time) *models.MoodLog {
	t.Helper()

	log := models.MoodLog{
		ID:         uuid.New(),
		UserID:     userID,
		Mood:       mood,
		MoodLabel:  models.MoodLabelFor(mood),
		AIResponse: "noted",
		CreatedAt:  createdAt,
	}
	if err := db.Create(&log).Error; err != nil {
		t.Fatalf("seed mood log: %v", err)
	}
	return &log
}

func strPtr(s string) *string { return &s }
func fPtr(v float64) *float64 { return &v }
func iPtr(v int) *int         { return &v }

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}
