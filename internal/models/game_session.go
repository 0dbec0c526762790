package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Game types.
const (
	GameBreathing        = "breathing"
	GameGratitude        = "gratitude"
	GameMindfulMatch     = "mindful_match"
	GameThoughtCatcher   = "thought_catcher"
	GameGuidedMeditation = "guided_meditation"
)

// ValidGameType reports whether t is one of the five supported activities.
func ValidGameType(t string) bool {
	switch t {
	case GameBreathing, GameGratitude, GameMindfulMatch, GameThoughtCatcher, GameGuidedMeditation:
		return true
	}
	return false
}

// GameSession is one completed activity instance. All derived fields
// (stress delta, engagement, wellness impact, difficulty, achievements) are
// computed once via DeriveScores before the record is saved and never
// recomputed.
type GameSession struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_game_sessions_user_created" json:"user_id"`
	GameType string    `gorm:"size:30;not null;index" json:"game_type"`
	Duration int       `gorm:"not null" json:"duration"`
	Score    int       `gorm:"default:0" json:"score"`

	BreathsCompleted *int     `json:"breaths_completed,omitempty"`
	ItemsAdded       *int     `json:"items_added,omitempty"`
	Accuracy         *float64 `json:"accuracy,omitempty"`
	StressBefore     *float64 `json:"stress_before,omitempty"`
	StressAfter      *float64 `json:"stress_after,omitempty"`
	StressDelta      *float64 `json:"stress_delta,omitempty"`

	EngagementScore      float64        `json:"engagement_score"`
	DifficultyLevel      string         `gorm:"size:10;default:'easy'" json:"difficulty_level"`
	Completed            bool           `gorm:"default:true" json:"completed"`
	AchievementsUnlocked datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"achievements_unlocked"`
	WellnessImpact       float64        `json:"wellness_impact"`

	CreatedAt time.Time `gorm:"index:idx_game_sessions_user_created" json:"created_at"`
}

// DeriveScores computes every derived field of the session in place and
// returns the per-session achievement names. Kept as an explicit pure step so
// the scoring is testable without the storage layer.
func (g *GameSession) DeriveScores() []string {
	if g.StressBefore != nil && g.StressAfter != nil {
		delta := *g.StressAfter - *g.StressBefore
		g.StressDelta = &delta
	}

	var engagement float64
	if g.Duration >= 60 {
		engagement += 0.3
	}
	if g.Accuracy != nil && *g.Accuracy >= 0.7 {
		engagement += 0.3
	}
	if g.ItemsAdded != nil && *g.ItemsAdded >= 3 {
		engagement += 0.2
	}
	if g.Completed {
		engagement += 0.2
	}
	g.EngagementScore = math.Min(1, engagement)

	var wellness float64
	if g.StressDelta != nil && *g.StressDelta < 0 {
		wellness += math.Abs(*g.StressDelta) * 2
	}
	wellness += g.EngagementScore * 5
	g.WellnessImpact = round2(wellness)

	switch {
	case g.EngagementScore > 0.75:
		g.DifficultyLevel = "hard"
	case g.EngagementScore > 0.4:
		g.DifficultyLevel = "medium"
	default:
		g.DifficultyLevel = "easy"
	}

	achievements := []string{}
	if g.GameType == GameBreathing && g.BreathsCompleted != nil && *g.BreathsCompleted >= 10 {
		achievements = append(achievements, "Calm Breather")
	}
	if g.GameType == GameGratitude && g.ItemsAdded != nil && *g.ItemsAdded >= 5 {
		achievements = append(achievements, "Gratitude Grower")
	}
	if g.EngagementScore >= 0.9 {
		achievements = append(achievements, "Mindful Master")
	}
	if g.WellnessImpact >= 8 {
		achievements = append(achievements, "Wellness Booster")
	}

	return achievements
}
