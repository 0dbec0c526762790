package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VoiceLog stores one voice check with its heuristic analysis result.
type VoiceLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_voice_logs_user_created" json:"user_id"`
	AudioURL string    `gorm:"type:text" json:"audio_url,omitempty"`
	Duration float64   `gorm:"not null" json:"duration"`

	StressScore    float64        `gorm:"not null" json:"stress_score"`
	Emotion        string         `gorm:"size:20;not null" json:"emotion"`
	SpeechRate     int            `json:"speech_rate"`
	PitchVariation float64        `json:"pitch_variation"`
	Confidence     float64        `gorm:"not null" json:"confidence"`
	Insights       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"insights"`

	CreatedAt time.Time `gorm:"index:idx_voice_logs_user_created;index" json:"created_at"`
}
