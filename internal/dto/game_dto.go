package dto

import (
	"time"

	"github.com/google/uuid"
)

// GameMetrics are the activity-specific numeric fields of a session.
type GameMetrics struct {
	BreathsCompleted *int     `json:"breaths_completed,omitempty"`
	ItemsAdded       *int     `json:"items_added,omitempty"`
	Accuracy         *float64 `json:"accuracy,omitempty"`
	StressBefore     *float64 `json:"stress_before,omitempty"`
	StressAfter      *float64 `json:"stress_after,omitempty"`
}

type GameSessionRequest struct {
	UserID    string       `json:"user_id"`
	GameType  string       `json:"game_type"`
	Duration  int          `json:"duration"`
	Score     int          `json:"score,omitempty"`
	Completed *bool        `json:"completed,omitempty"`
	Metrics   *GameMetrics `json:"metrics,omitempty"`
}

type GameSessionResponse struct {
	ID                   uuid.UUID `json:"id"`
	GameType             string    `json:"game_type"`
	Duration             int       `json:"duration"`
	Score                int       `json:"score"`
	EngagementScore      float64   `json:"engagement_score"`
	DifficultyLevel      string    `json:"difficulty_level"`
	WellnessImpact       float64   `json:"wellness_impact"`
	AchievementsUnlocked []string  `json:"achievements_unlocked"`
	Timestamp            time.Time `json:"timestamp"`
}
