package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

// DataService handles per-user bulk operations: full export and full reset.
type DataService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDataService(db *gorm.DB) *DataService {
	return &DataService{db: db, now: time.Now}
}

// Export returns everything stored for a user as one document.
func (s *DataService) Export(userID uuid.UUID) (*dto.ExportResponse, error) {
	var user models.User
	if err := s.db.Preload("Badges").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	var moodLogs []models.MoodLog
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&moodLogs).Error; err != nil {
		return nil, err
	}
	var voiceLogs []models.VoiceLog
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&voiceLogs).Error; err != nil {
		return nil, err
	}
	var sessions []models.GameSession
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	export := &dto.ExportResponse{
		User: dto.ExportUser{
			Name:          user.Name,
			Age:           user.Age,
			CreatedAt:     user.CreatedAt,
			CurrentStreak: user.CurrentStreak,
			LongestStreak: user.LongestStreak,
			Badges:        user.Badges,
		},
		ExportedAt: s.now(),
	}

	for _, log := range moodLogs {
		export.MoodLogs = append(export.MoodLogs, dto.ExportMoodLog{
			Mood:       log.Mood,
			MoodLabel:  log.MoodLabel,
			Notes:      log.Notes,
			AIResponse: log.AIResponse,
			Timestamp:  log.CreatedAt,
		})
	}
	for _, log := range voiceLogs {
		export.VoiceLogs = append(export.VoiceLogs, dto.ExportVoiceLog{
			Duration:    log.Duration,
			StressScore: log.StressScore,
			Emotion:     log.Emotion,
			Timestamp:   log.CreatedAt,
		})
	}
	for _, session := range sessions {
		export.GameSessions = append(export.GameSessions, dto.ExportGameSession{
			GameType:  session.GameType,
			Duration:  session.Duration,
			Score:     session.Score,
			Timestamp: session.CreatedAt,
		})
	}

	return export, nil
}

// Reset deletes all per-user records and zeroes the cumulative state. This is
// the only path that removes patterns.
func (s *DataService) Reset(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.MoodLog{},
			&models.VoiceLog{},
			&models.GameSession{},
			&models.Pattern{},
			&models.UserBadge{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"current_streak": 0,
			"longest_streak": 0,
			"last_login":     nil,
		}).Error
	})
}
