package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User holds identity plus cumulative wellness state (streak, badges).
type User struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Email                *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Password             string         `gorm:"not null" json:"-"`
	Age                  int            `gorm:"not null" json:"age"`
	SituationalResponses datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"situational_responses"`
	CurrentStreak        int            `gorm:"default:0" json:"current_streak"`
	LongestStreak        int            `gorm:"default:0" json:"longest_streak"`
	LastLogin            *time.Time     `json:"last_login"`
	Badges               []UserBadge    `gorm:"foreignKey:UserID" json:"badges"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserBadge is one earned achievement. The composite unique index keeps the
// list deduplicated by name per user.
type UserBadge struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_user_name" json:"-"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_user_badges_user_name" json:"name"`
	Icon     string    `gorm:"size:10" json:"icon"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}

// UpdateStreakAt advances the login streak for a check-in happening at now.
// Same calendar day is a no-op; a consecutive day extends the streak; any
// longer gap resets it to 1. Returns the current streak.
func (u *User) UpdateStreakAt(now time.Time) int {
	today := now.Format("2006-01-02")

	var last string
	if u.LastLogin != nil {
		last = u.LastLogin.Format("2006-01-02")
	}

	if last != today {
		yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
		if last == yesterday {
			u.CurrentStreak++
		} else {
			u.CurrentStreak = 1
		}

		if u.CurrentStreak > u.LongestStreak {
			u.LongestStreak = u.CurrentStreak
		}

		u.LastLogin = &now
	}

	return u.CurrentStreak
}
