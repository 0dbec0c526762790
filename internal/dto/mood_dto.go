package dto

import (
	"time"

	"github.com/google/uuid"
)

// MoodContext carries the optional situational fields of a mood log.
type MoodContext struct {
	Tags     []string `json:"tags,omitempty"`
	Location string   `json:"location,omitempty"`
	Activity string   `json:"activity,omitempty"`
}

// VoiceMetrics is the optional voice snapshot attached to a mood log.
type VoiceMetrics struct {
	StressScore float64 `json:"stress_score"`
	Emotion     string  `json:"emotion"`
	Confidence  float64 `json:"confidence"`
}

type MoodRequest struct {
	UserID        string        `json:"user_id"`
	Mood          int           `json:"mood"`
	Notes         string        `json:"notes,omitempty"`
	Context       *MoodContext  `json:"context,omitempty"`
	VoiceAnalysis *VoiceMetrics `json:"voice_analysis,omitempty"`
}

// StressPrediction is the predictor output, also snapshotted onto mood logs.
type StressPrediction struct {
	RiskLevel   string   `json:"risk_level"`
	Confidence  float64  `json:"confidence"`
	Prediction  string   `json:"prediction"`
	Reasons     []string `json:"reasons"`
	Suggestions []string `json:"suggestions"`
}

// PatternSummary is the client-facing view of one behavioral pattern.
type PatternSummary struct {
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Suggestion  string    `json:"suggestion"`
	Confidence  float64   `json:"confidence"`
	RiskLevel   string    `json:"risk_level"`
	LastUpdated time.Time `json:"last_updated"`
}

type MoodLogView struct {
	ID               uuid.UUID         `json:"id"`
	Mood             int               `json:"mood"`
	MoodLabel        string            `json:"mood_label"`
	AIResponse       string            `json:"ai_response"`
	StressPrediction *StressPrediction `json:"stress_prediction,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type MoodStreakView struct {
	Streak        int `json:"streak"`
	LongestStreak int `json:"longest_streak"`
}

type MoodResponse struct {
	Log      MoodLogView      `json:"log"`
	User     MoodStreakView   `json:"user"`
	Patterns []PatternSummary `json:"patterns"`
	Message  string           `json:"message"`
}
