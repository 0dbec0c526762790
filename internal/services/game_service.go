package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var gameIcons = map[string]string{
	models.GameBreathing:      "breathing",
	models.GameGratitude:      "gratitude",
	models.GameMindfulMatch:   "target",
	models.GameThoughtCatcher: "brain",
}

// GameService persists activity sessions with their derived scores and keeps
// the cumulative per-game mastery badges.
type GameService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db, now: time.Now}
}

// SaveSession validates, scores, and stores one completed activity session.
func (s *GameService) SaveSession(req *dto.GameSessionRequest) (*dto.GameSessionResponse, error) {
	if !models.ValidGameType(req.GameType) {
		return nil, apperror.Validation("unknown game type %q", req.GameType)
	}
	if req.Duration < 5 || req.Duration > 3600 {
		return nil, apperror.Validation("duration must be between 5 and 3600 seconds")
	}
	if req.Score < 0 {
		return nil, apperror.Validation("score must not be negative")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	session := models.GameSession{
		ID:        uuid.New(),
		UserID:    userID,
		GameType:  req.GameType,
		Duration:  req.Duration,
		Score:     req.Score,
		Completed: true,
		CreatedAt: s.now(),
	}
	if req.Completed != nil {
		session.Completed = *req.Completed
	}
	if req.Metrics != nil {
		session.BreathsCompleted = req.Metrics.BreathsCompleted
		session.ItemsAdded = req.Metrics.ItemsAdded
		session.Accuracy = req.Metrics.Accuracy
		session.StressBefore = req.Metrics.StressBefore
		session.StressAfter = req.Metrics.StressAfter
	}

	achievements := session.DeriveScores()
	if b, err := json.Marshal(achievements); err == nil {
		session.AchievementsUnlocked = datatypes.JSON(b)
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	if err := s.awardGameBadges(userID, req.GameType); err != nil {
		slog.Warn("badge awarding failed", "user_id", userID, "game_type", req.GameType, "error", err)
	}

	return &dto.GameSessionResponse{
		ID:                   session.ID,
		GameType:             session.GameType,
		Duration:             session.Duration,
		Score:                session.Score,
		EngagementScore:      session.EngagementScore,
		DifficultyLevel:      session.DifficultyLevel,
		WellnessImpact:       session.WellnessImpact,
		AchievementsUnlocked: achievements,
		Timestamp:            session.CreatedAt,
	}, nil
}

// awardGameBadges grants the "<gameType>_master" badge once a user has five
// sessions of a game. The badge list is append-only and deduplicated by name.
func (s *GameService) awardGameBadges(userID uuid.UUID, gameType string) error {
	var count int64
	if err := s.db.Model(&models.GameSession{}).
		Where("user_id = ? AND game_type = ?", userID, gameType).
		Count(&count).Error; err != nil {
		return err
	}
	if count < 5 {
		return nil
	}

	badgeName := gameType + "_master"

	var existing models.UserBadge
	err := s.db.Where("user_id = ? AND name = ?", userID, badgeName).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	icon, ok := gameIcons[gameType]
	if !ok {
		icon = "game"
	}
	badge := models.UserBadge{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     badgeName,
		Icon:     icon,
		EarnedAt: s.now(),
	}
	if err := s.db.Create(&badge).Error; err != nil {
		// Unique index race with a concurrent session save: badge exists.
		var raced models.UserBadge
		if ferr := s.db.Where("user_id = ? AND name = ?", userID, badgeName).First(&raced).Error; ferr == nil {
			return nil
		}
		return err
	}
	return nil
}
