package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pattern types derived from a mood log.
const (
	PatternTimeOfDay     = "time_of_day"
	PatternDayOfWeek     = "day_of_week"
	PatternActivity      = "activity"
	PatternLocation      = "location"
	PatternStressTrigger = "stress_trigger"
)

// Risk levels shared by patterns and stress predictions.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Pattern is a per-user behavioral aggregate keyed by (userId, patternType,
// key). At most one live record exists per key; observations fold into it.
type Pattern struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patterns_user_type_key" json:"user_id"`
	PatternType string    `gorm:"size:20;not null;uniqueIndex:idx_patterns_user_type_key" json:"pattern_type"`
	Key         string    `gorm:"size:100;not null;uniqueIndex:idx_patterns_user_type_key" json:"key"`

	Occurrences int      `gorm:"not null;default:1" json:"occurrences"`
	AvgMood     float64  `json:"avg_mood"`
	AvgStress   *float64 `json:"avg_stress,omitempty"`

	Confidence     float64 `gorm:"default:0.2" json:"confidence"`
	RiskLevel      string  `gorm:"size:10;default:'LOW'" json:"risk_level"`
	InsightMessage string  `gorm:"size:255" json:"insight_message"`

	FirstDetectedAt time.Time      `gorm:"not null" json:"first_detected_at"`
	LastUpdated     time.Time      `gorm:"not null" json:"last_updated"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// RecalculateConfidence derives confidence from the occurrence count alone:
// 0.25 at one observation, growing linearly to 1.0 at ten, then flat.
func (p *Pattern) RecalculateConfidence() {
	factor := math.Min(float64(p.Occurrences)/10, 1)
	p.Confidence = round2(0.25 + factor*0.75)
}

// ApplyDecay fades confidence of stale patterns: if more than 7 days passed
// since the last update before this one, confidence drops by 10%.
//
// Note: in the tracking sequence this runs right before
// RecalculateConfidence, which overwrites confidence from occurrences alone,
// so the decay currently has no net effect. The call order is kept as the
// observed behavior; see DESIGN.md.
func (p *Pattern) ApplyDecay(now time.Time) {
	daysOld := now.Sub(p.LastUpdated).Hours() / 24
	if daysOld > 7 {
		p.Confidence = round2(p.Confidence * 0.9)
	}
}

// CalculateRisk classifies the pattern from average stress and confidence.
func (p *Pattern) CalculateRisk() string {
	if p.AvgStress != nil && *p.AvgStress >= 7 && p.Confidence >= 0.6 {
		return RiskHigh
	}
	if p.AvgStress != nil && *p.AvgStress >= 5 {
		return RiskMedium
	}
	return RiskLow
}

// GenerateInsight renders the pattern's one-line natural-language summary.
// First matching rule wins.
func (p *Pattern) GenerateInsight() string {
	if p.AvgMood <= 3 {
		return fmt.Sprintf("Your mood tends to be lower during %s. Consider a calming activity then.", p.Key)
	}
	if p.AvgStress != nil && *p.AvgStress >= 7 {
		return fmt.Sprintf("Higher stress is often detected around %s. Try breathing or a short break.", p.Key)
	}
	return fmt.Sprintf("You seem emotionally balanced during %s. Keep it up!", p.Key)
}

// TimeOfDayBucket maps an hour to its named daypart.
func TimeOfDayBucket(hour int) string {
	switch {
	case hour < 6:
		return "Late Night"
	case hour < 12:
		return "Morning"
	case hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
