package dto

import (
	"time"

	"github.com/mindshield/mindshield-backend/internal/models"
)

// MoodDistribution buckets logs by mood band: high >=7, medium 4-6, low <4.
type MoodDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// MoodStats are aggregate statistics over a user's recent logs.
type MoodStats struct {
	TotalLogs        int              `json:"total_logs"`
	AvgMood          float64          `json:"avg_mood"`
	WeeklyAvg        float64          `json:"weekly_avg"`
	MoodDistribution MoodDistribution `json:"mood_distribution"`
	VoiceChecks      int              `json:"voice_checks"`
	Consistency      float64          `json:"consistency"`
}

type RecentLogView struct {
	Mood       int       `json:"mood"`
	MoodLabel  string    `json:"mood_label"`
	Timestamp  time.Time `json:"timestamp"`
	AIResponse string    `json:"ai_response"`
}

type InsightsResponse struct {
	Stats            MoodStats         `json:"stats"`
	Patterns         []PatternSummary  `json:"patterns"`
	StressPrediction *StressPrediction `json:"stress_prediction,omitempty"`
	RecentLogs       []RecentLogView   `json:"recent_logs"`
}

type DashboardToday struct {
	HasLogged    bool    `json:"has_logged"`
	LastMood     *int    `json:"last_mood"`
	LastResponse *string `json:"last_response"`
}

type DashboardUser struct {
	Name   string             `json:"name"`
	Streak int                `json:"streak"`
	Badges []models.UserBadge `json:"badges"`
}

type RecentGameView struct {
	Type      string    `json:"type"`
	Duration  int       `json:"duration"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type DashboardResponse struct {
	User            DashboardUser    `json:"user"`
	Today           DashboardToday   `json:"today"`
	Patterns        []PatternSummary `json:"patterns"`
	RecentGames     []RecentGameView `json:"recent_games"`
	WellnessScore   int              `json:"wellness_score"`
	Recommendations []string         `json:"recommendations"`
}

type ExportResponse struct {
	User         ExportUser          `json:"user"`
	MoodLogs     []ExportMoodLog     `json:"mood_logs"`
	VoiceLogs    []ExportVoiceLog    `json:"voice_logs"`
	GameSessions []ExportGameSession `json:"game_sessions"`
	ExportedAt   time.Time           `json:"exported_at"`
}

type ExportUser struct {
	Name          string             `json:"name"`
	Age           int                `json:"age"`
	CreatedAt     time.Time          `json:"created_at"`
	CurrentStreak int                `json:"current_streak"`
	LongestStreak int                `json:"longest_streak"`
	Badges        []models.UserBadge `json:"badges"`
}

type ExportMoodLog struct {
	Mood       int       `json:"mood"`
	MoodLabel  string    `json:"mood_label"`
	Notes      string    `json:"notes"`
	AIResponse string    `json:"ai_response"`
	Timestamp  time.Time `json:"timestamp"`
}

type ExportVoiceLog struct {
	Duration    float64   `json:"duration"`
	StressScore float64   `json:"stress_score"`
	Emotion     string    `json:"emotion"`
	Timestamp   time.Time `json:"timestamp"`
}

type ExportGameSession struct {
	GameType  string    `json:"game_type"`
	Duration  int       `json:"duration"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
