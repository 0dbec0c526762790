package models

import (
	"testing"
	"time"
)

func TestUpdateStreakAt(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 9, 0, 0, 0, time.UTC)
	}

	t.Run("first check-in starts at 1", func(t *testing.T) {
		u := User{}
		if got := u.UpdateStreakAt(day(1)); got != 1 {
			t.Errorf("streak = %d, want 1", got)
		}
		if u.LongestStreak != 1 {
			t.Errorf("longest = %d, want 1", u.LongestStreak)
		}
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		u := User{}
		u.UpdateStreakAt(day(1))
		later := time.Date(2025, 3, 1, 22, 30, 0, 0, time.UTC)
		if got := u.UpdateStreakAt(later); got != 1 {
			t.Errorf("streak = %d, want 1", got)
		}
	})

	t.Run("consecutive days extend", func(t *testing.T) {
		u := User{}
		u.UpdateStreakAt(day(1))
		u.UpdateStreakAt(day(2))
		if got := u.UpdateStreakAt(day(3)); got != 3 {
			t.Errorf("streak = %d, want 3", got)
		}
		if u.LongestStreak != 3 {
			t.Errorf("longest = %d, want 3", u.LongestStreak)
		}
	})

	t.Run("gap resets to 1 but keeps longest", func(t *testing.T) {
		u := User{}
		u.UpdateStreakAt(day(1))
		u.UpdateStreakAt(day(2))
		u.UpdateStreakAt(day(3))
		if got := u.UpdateStreakAt(day(7)); got != 1 {
			t.Errorf("streak after gap = %d, want 1", got)
		}
		if u.LongestStreak != 3 {
			t.Errorf("longest = %d, want 3", u.LongestStreak)
		}
	})
}
