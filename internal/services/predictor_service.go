package services

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

// Static suggestion tiers keyed by risk level.
var stressSuggestions = map[string][]string{
	models.RiskLow: {
		"Maintain your current routine",
		"Practice daily gratitude",
		"Stay hydrated and take breaks",
	},
	models.RiskMedium: {
		"Schedule a 10-minute mindfulness break",
		"Reach out to a friend or family member",
		"Engage in light physical activity",
		"Use the breathing exercise feature",
	},
	models.RiskHigh: {
		"Take immediate 15-minute break",
		"Use crisis resources if needed",
		"Practice deep breathing for 5 minutes",
		"Avoid stressful decisions today",
		"Consider professional support",
	},
}

// PredictorService scores short-term stress risk from a rolling window of
// mood logs.
type PredictorService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPredictorService(db *gorm.DB) *PredictorService {
	return &PredictorService{db: db, now: time.Now}
}

// trendMetrics are the derived statistics over a newest-first mood window.
// recentAvg is computed but not consulted by the risk rules; it is kept so
// the window math stays externally observable.
type trendMetrics struct {
	avgMood    float64
	recentAvg  float64
	trend      float64
	volatility float64
}

func computeTrendMetrics(moods []float64) trendMetrics {
	var sum float64
	for _, m := range moods {
		sum += m
	}
	avg := sum / float64(len(moods))

	var recentSum float64
	for _, m := range moods[:3] {
		recentSum += m
	}

	var squares float64
	for _, m := range moods {
		squares += (m - avg) * (m - avg)
	}

	return trendMetrics{
		avgMood:    avg,
		recentAvg:  recentSum / 3,
		trend:      moods[0] - moods[len(moods)-1],
		volatility: math.Sqrt(squares / float64(len(moods))),
	}
}

// Predict returns a stress prediction for the user, or nil when there is not
// enough recent data or the computed risk stays LOW. Persistence errors
// degrade to nil rather than failing the caller.
func (s *PredictorService) Predict(userID uuid.UUID) *dto.StressPrediction {
	sevenDaysAgo := s.now().AddDate(0, 0, -7)

	var logs []models.MoodLog
	if err := s.db.
		Where("user_id = ? AND created_at >= ?", userID, sevenDaysAgo).
		Order("created_at DESC").
		Limit(10).
		Find(&logs).Error; err != nil {
		slog.Warn("stress prediction degraded", "user_id", userID, "error", err)
		return nil
	}

	if len(logs) < 3 {
		return nil
	}

	moods := make([]float64, len(logs))
	for i, log := range logs {
		moods[i] = float64(log.Mood)
	}
	metrics := computeTrendMetrics(moods)

	// Cumulative rules: later rules only raise severity, confidence adds up.
	riskLevel := models.RiskLow
	var confidence float64
	var reasons []string

	if metrics.avgMood < 4 {
		riskLevel = models.RiskMedium
		confidence += 0.3
		reasons = append(reasons, "Low average mood")
	}

	if metrics.trend < -1.5 {
		riskLevel = models.RiskHigh
		confidence += 0.4
		reasons = append(reasons, "Downward trend detected")
	}

	if metrics.volatility > 2.5 {
		if riskLevel == models.RiskLow {
			riskLevel = models.RiskMedium
		}
		confidence += 0.3
		reasons = append(reasons, "High mood volatility")
	}

	if riskLevel == models.RiskLow {
		return nil
	}

	return &dto.StressPrediction{
		RiskLevel:   riskLevel,
		Confidence:  math.Min(confidence, 0.9),
		Prediction:  "Potential stress " + predictionWindow(s.now().Hour()),
		Reasons:     reasons,
		Suggestions: stressSuggestions[riskLevel],
	}
}

func predictionWindow(hour int) string {
	switch {
	case hour < 12:
		return "this afternoon"
	case hour < 18:
		return "this evening"
	default:
		return "tomorrow morning"
	}
}
