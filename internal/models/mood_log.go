package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Mood label bands. Any mood without an entry (including out-of-range values)
// maps to "Unknown".
var moodLabels = map[int]string{
	9: "Excellent",
	8: "Very Good",
	7: "Good",
	6: "Fairly Good",
	5: "Neutral",
	4: "Fairly Low",
	3: "Low",
	2: "Very Low",
	1: "Critical",
}

// MoodLabelFor returns the categorical label for an integer mood value.
func MoodLabelFor(mood int) string {
	if label, ok := moodLabels[mood]; ok {
		return label
	}
	return "Unknown"
}

// MoodLog is a single immutable mood observation. The voice_* columns are set
// only when the client attached voice metrics; the stress_* columns hold the
// predictor snapshot taken at log time and are never recomputed.
type MoodLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_mood_logs_user_created" json:"user_id"`
	Mood      int            `gorm:"not null" json:"mood"`
	MoodLabel string         `gorm:"size:20;not null" json:"mood_label"`
	Notes     string         `gorm:"size:1000" json:"notes"`
	Tags      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	Location  *string        `gorm:"size:100" json:"location,omitempty"`
	Activity  *string        `gorm:"size:100" json:"activity,omitempty"`

	VoiceStressScore *float64 `json:"voice_stress_score,omitempty"`
	VoiceEmotion     *string  `gorm:"size:20" json:"voice_emotion,omitempty"`
	VoiceConfidence  *float64 `json:"voice_confidence,omitempty"`

	AIResponse string `gorm:"type:text;not null" json:"ai_response"`

	StressRiskLevel  *string  `gorm:"size:10" json:"stress_risk_level,omitempty"`
	StressConfidence *float64 `json:"stress_confidence,omitempty"`
	StressMessage    *string  `gorm:"size:255" json:"stress_message,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_mood_logs_user_created;index" json:"created_at"`
}
