package services

import (
	"testing"

	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
)

func TestSaveSessionValidation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGameService(db)

	tests := []struct {
		name string
		req  dto.GameSessionRequest
		kind apperror.Kind
	}{
		{"unknown game", dto.GameSessionRequest{UserID: user.ID.String(), GameType: "chess", Duration: 60}, apperror.KindValidation},
		{"too short", dto.GameSessionRequest{UserID: user.ID.String(), GameType: "breathing", Duration: 2}, apperror.KindValidation},
		{"too long", dto.GameSessionRequest{UserID: user.ID.String(), GameType: "breathing", Duration: 7200}, apperror.KindValidation},
		{"negative score", dto.GameSessionRequest{UserID: user.ID.String(), GameType: "breathing", Duration: 60, Score: -1}, apperror.KindValidation},
		{"bad user id", dto.GameSessionRequest{UserID: "nope", GameType: "breathing", Duration: 60}, apperror.KindValidation},
		{"unknown user", dto.GameSessionRequest{UserID: "5f9e4a9e-0000-4000-8000-000000000002", GameType: "breathing", Duration: 60}, apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveSession(&tt.req)
			if !apperror.IsKind(err, tt.kind) {
				t.Errorf("err = %v, want kind %d", err, tt.kind)
			}
		})
	}
}

func TestSaveSessionDerivedScores(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGameService(db)

	resp, err := svc.SaveSession(&dto.GameSessionRequest{
		UserID:   user.ID.String(),
		GameType: models.GameBreathing,
		Duration: 120,
		Score:    300,
		Metrics: &dto.GameMetrics{
			BreathsCompleted: iPtr(15),
			StressBefore:     fPtr(7),
			StressAfter:      fPtr(4),
		},
	})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	// duration 0.3 + completed 0.2
	if !almostEqual(resp.EngagementScore, 0.5) {
		t.Errorf("engagement = %v, want 0.5", resp.EngagementScore)
	}
	if resp.DifficultyLevel != "medium" {
		t.Errorf("difficulty = %q, want medium", resp.DifficultyLevel)
	}
	// |−3|*2 + 0.5*5 = 8.5
	if !almostEqual(resp.WellnessImpact, 8.5) {
		t.Errorf("wellness impact = %v, want 8.5", resp.WellnessImpact)
	}

	want := map[string]bool{"Calm Breather": true, "Wellness Booster": true}
	if len(resp.AchievementsUnlocked) != 2 {
		t.Fatalf("achievements = %v", resp.AchievementsUnlocked)
	}
	for _, a := range resp.AchievementsUnlocked {
		if !want[a] {
			t.Errorf("unexpected achievement %q", a)
		}
	}

	var saved models.GameSession
	if err := db.First(&saved, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if saved.StressDelta == nil || *saved.StressDelta != -3 {
		t.Errorf("stress delta = %v, want -3", saved.StressDelta)
	}
	if !saved.Completed {
		t.Error("completed should default to true")
	}
}

func TestSaveSessionExplicitIncomplete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGameService(db)

	completed := false
	resp, err := svc.SaveSession(&dto.GameSessionRequest{
		UserID:    user.ID.String(),
		GameType:  models.GameGratitude,
		Duration:  30,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if resp.EngagementScore != 0 {
		t.Errorf("engagement = %v, want 0 for abandoned short session", resp.EngagementScore)
	}
	if resp.DifficultyLevel != "easy" {
		t.Errorf("difficulty = %q, want easy", resp.DifficultyLevel)
	}
}

func TestGameMasterBadge(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := NewGameService(db)

	play := func() {
		t.Helper()
		if _, err := svc.SaveSession(&dto.GameSessionRequest{
			UserID:   user.ID.String(),
			GameType: models.GameBreathing,
			Duration: 90,
		}); err != nil {
			t.Fatalf("SaveSession: %v", err)
		}
	}

	for i := 0; i < 4; i++ {
		play()
	}

	var count int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("badges after 4 sessions = %d, want 0", count)
	}

	play()

	var badge models.UserBadge
	if err := db.Where("user_id = ? AND name = ?", user.ID, "breathing_master").First(&badge).Error; err != nil {
		t.Fatalf("badge not awarded after 5 sessions: %v", err)
	}
	if badge.Icon != "breathing" {
		t.Errorf("icon = %q, want breathing", badge.Icon)
	}

	// A sixth session must not duplicate the badge.
	play()

	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("badges after 6 sessions = %d, want 1", count)
	}
}
