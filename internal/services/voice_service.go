package services

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VoiceService runs the deterministic acoustic heuristic over client-supplied
// features and persists the resulting voice log. This is arithmetic over
// numbers the client measured, not a real ML pipeline.
type VoiceService struct {
	db        *gorm.DB
	now       func() time.Time
	randFloat func() float64
}

func NewVoiceService(db *gorm.DB) *VoiceService {
	return &VoiceService{db: db, now: time.Now, randFloat: rand.Float64}
}

// Analyze scores one voice sample and stores the log.
func (s *VoiceService) Analyze(req *dto.VoiceAnalyzeRequest) (*dto.VoiceAnalyzeResponse, error) {
	if req.Duration < 1 || req.Duration > 60 {
		return nil, apperror.Validation("duration must be between 1 and 60 seconds")
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

	analysis := s.analyzeFeatures(req.Features, req.Duration)

	log := models.VoiceLog{
		ID:             uuid.New(),
		UserID:         userID,
		Duration:       req.Duration,
		StressScore:    analysis.StressScore,
		Emotion:        analysis.Emotion,
		SpeechRate:     analysis.SpeechRate,
		PitchVariation: analysis.PitchVariation,
		Confidence:     analysis.Confidence,
		CreatedAt:      s.now(),
	}
	if req.AudioData != "" {
		log.AudioURL = "data:audio/wav;base64," + req.AudioData
	}
	if b, err := json.Marshal(analysis.Insights); err == nil {
		log.Insights = datatypes.JSON(b)
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}

	return &dto.VoiceAnalyzeResponse{
		Analysis:    analysis,
		Suggestions: voiceSuggestions(analysis),
	}, nil
}

// analyzeFeatures applies the stress heuristic. Missing features fall back to
// randomized plausible values from the injected source.
func (s *VoiceService) analyzeFeatures(features *dto.VoiceFeatures, duration float64) dto.VoiceAnalysis {
	if features == nil {
		features = &dto.VoiceFeatures{}
	}

	speechRate := 140 + s.randFloat()*40
	if features.SpeechRate != nil {
		speechRate = *features.SpeechRate
	}
	pitchVariation := 0.5 + s.randFloat()*0.4
	if features.PitchVariation != nil {
		pitchVariation = *features.PitchVariation
	}
	confidence := 0.7 + s.randFloat()*0.2
	if features.Confidence != nil {
		confidence = *features.Confidence
	}

	stressScore := 4.5
	emotion := "Neutral"

	if features.RMS != nil {
		// RMS roughly correlates with loudness/tension.
		if *features.RMS > 0.06 {
			stressScore += 2.5
		}
		if *features.RMS < 0.02 {
			emotion = "Tired"
		}
	}

	if features.ZeroCrossingRate != nil && *features.ZeroCrossingRate > 0.2 {
		stressScore += 2
		emotion = "Anxious"
	}

	if speechRate > 180 {
		stressScore += 1.5
		emotion = "Anxious"
	}
	if duration >= 8 && duration <= 12 && emotion == "Tired" {
		stressScore += 0.8
	}

	stressScore = math.Max(1, math.Min(10, round1(stressScore)))

	if stressScore > 7.5 {
		emotion = "Anxious"
	} else if stressScore >= 6 {
		emotion = "Tired"
	} else if stressScore < 3 {
		emotion = "Calm"
	}

	insights := []string{}
	if stressScore > 7 {
		insights = append(insights, "High stress detected in voice pattern")
	}
	if emotion == "Tired" {
		insights = append(insights, "Voice shows signs of fatigue")
	}

	return dto.VoiceAnalysis{
		StressScore:    stressScore,
		Emotion:        emotion,
		SpeechRate:     int(math.Round(speechRate)),
		PitchVariation: round2f(pitchVariation),
		Confidence:     round2f(confidence),
		Insights:       insights,
	}
}

func voiceSuggestions(analysis dto.VoiceAnalysis) []string {
	var suggestions []string

	if analysis.StressScore > 7 {
		suggestions = append(suggestions,
			"Try the breathing exercise for 5 minutes",
			"Consider taking a short break",
			"Drink some water and relax your shoulders",
		)
	}

	if analysis.Emotion == "Tired" {
		suggestions = append(suggestions,
			"Get some rest if possible",
			"Try a quick energy-boosting activity",
		)
	}

	if len(suggestions) == 0 {
		return []string{"Your voice sounds balanced. Keep up the good work!"}
	}
	return suggestions
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}
