package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Supportive response pools per mood band. The pick is cosmetic; the
// randomness source is injected so tests can pin it.
var aiResponsePools = map[string][]string{
	"high": {
		"Wonderful! This positive energy is great! How about journaling this moment to remember what worked?",
		"Excellent! Your mood is soaring! This is perfect for trying new activities or helping others.",
	},
	"medium": {
		"Thanks for checking in. I'm here with you. How about a quick mindfulness break to find more balance?",
		"I appreciate you sharing. This is a good moment for gentle reflection. Want to try a short gratitude exercise?",
	},
	"low": {
		"I hear you, and I'm here with you. Would you like to try a calming activity or just have some quiet support?",
		"Thank you for sharing this with me. It's completely okay to feel this way. Let's try something gentle together.",
	},
}

// MoodService validates and persists mood observations and drives the
// downstream predictor snapshot and pattern tracking.
type MoodService struct {
	db        *gorm.DB
	predictor *PredictorService
	patterns  *PatternService
	now       func() time.Time
	randIntn  func(n int) int
}

func NewMoodService(db *gorm.DB, predictor *PredictorService, patterns *PatternService) *MoodService {
	return &MoodService{
		db:        db,
		predictor: predictor,
		patterns:  patterns,
		now:       time.Now,
		randIntn:  rand.Intn,
	}
}

func (s *MoodService) aiResponse(mood int) string {
	band := "medium"
	if mood >= 7 {
		band = "high"
	} else if mood <= 3 {
		band = "low"
	}
	pool := aiResponsePools[band]
	return pool[s.randIntn(len(pool))]
}

// LogMood ingests one mood observation. The predictor snapshot is taken over
// prior history only; pattern tracking runs synchronously before the response
// but its failure never aborts the request.
func (s *MoodService) LogMood(req *dto.MoodRequest) (*dto.MoodResponse, error) {
	if req.Mood < 1 || req.Mood > 10 {
		return nil, apperror.Validation("mood must be between 1 and 10")
	}
	if len(req.Notes) > 1000 {
		return nil, apperror.Validation("notes must be at most 1000 characters")
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

	now := s.now()
	user.UpdateStreakAt(now)
	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"current_streak": user.CurrentStreak,
		"longest_streak": user.LongestStreak,
		"last_login":     user.LastLogin,
	}).Error; err != nil {
		return nil, err
	}

	// Snapshot before the new log exists so it reflects prior history only.
	prediction := s.predictor.Predict(userID)

	log := models.MoodLog{
		ID:         uuid.New(),
		UserID:     userID,
		Mood:       req.Mood,
		MoodLabel:  models.MoodLabelFor(req.Mood),
		Notes:      req.Notes,
		AIResponse: s.aiResponse(req.Mood),
		CreatedAt:  now,
	}

	if req.Context != nil {
		if len(req.Context.Tags) > 0 {
			if b, err := json.Marshal(req.Context.Tags); err == nil {
				log.Tags = datatypes.JSON(b)
			}
		}
		if req.Context.Location != "" {
			log.Location = &req.Context.Location
		}
		if req.Context.Activity != "" {
			log.Activity = &req.Context.Activity
		}
	}

	if req.VoiceAnalysis != nil {
		log.VoiceStressScore = &req.VoiceAnalysis.StressScore
		log.VoiceEmotion = &req.VoiceAnalysis.Emotion
		log.VoiceConfidence = &req.VoiceAnalysis.Confidence
	}

	if prediction != nil {
		log.StressRiskLevel = &prediction.RiskLevel
		log.StressConfidence = &prediction.Confidence
		log.StressMessage = &prediction.Prediction
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}

	// Best-effort side effect: observable, never fatal to the mood log.
	if err := s.patterns.TrackFromMoodLog(&log); err != nil {
		slog.Warn("pattern tracking failed", "user_id", userID, "error", err)
	}

	top, err := s.patterns.TopPatterns(userID, 3)
	if err != nil {
		slog.Warn("failed to load top patterns", "user_id", userID, "error", err)
		top = nil
	}

	return &dto.MoodResponse{
		Log: dto.MoodLogView{
			ID:               log.ID,
			Mood:             log.Mood,
			MoodLabel:        log.MoodLabel,
			AIResponse:       log.AIResponse,
			StressPrediction: prediction,
			Timestamp:        log.CreatedAt,
		},
		User: dto.MoodStreakView{
			Streak:        user.CurrentStreak,
			LongestStreak: user.LongestStreak,
		},
		Patterns: PatternSummaries(top, patternSuggestionMood),
		Message:  "Mood logged successfully",
	}, nil
}

// Suggestion texts vary by surface; the mood-log and insights responses use
// one pair, the dashboard another.
func patternSuggestionMood(riskLevel string) string {
	if riskLevel == models.RiskHigh {
		return "Consider proactive stress management"
	}
	return "Maintain current healthy habits"
}

func patternSuggestionDashboard(riskLevel string) string {
	if riskLevel == models.RiskHigh {
		return "Immediate attention recommended"
	}
	return "No action needed"
}

// PatternSummaries maps pattern records to their client-facing view.
func PatternSummaries(patterns []models.Pattern, suggestion func(string) string) []dto.PatternSummary {
	summaries := make([]dto.PatternSummary, 0, len(patterns))
	for _, p := range patterns {
		summaries = append(summaries, dto.PatternSummary{
			Type:        p.PatternType,
			Message:     p.InsightMessage,
			Suggestion:  suggestion(p.RiskLevel),
			Confidence:  p.Confidence,
			RiskLevel:   p.RiskLevel,
			LastUpdated: p.LastUpdated,
		})
	}
	return summaries
}
