package services

import (
	"testing"
	"time"

	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

func newMoodService(db *gorm.DB) *MoodService {
	svc := NewMoodService(db, NewPredictorService(db), NewPatternService(db))
	svc.randIntn = func(n int) int { return 0 }
	return svc
}

func TestLogMoodValidation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newMoodService(db)

	tests := []struct {
		name string
		req  dto.MoodRequest
		kind apperror.Kind
	}{
		{"mood too low", dto.MoodRequest{UserID: user.ID.String(), Mood: 0}, apperror.KindValidation},
		{"mood too high", dto.MoodRequest{UserID: user.ID.String(), Mood: 11}, apperror.KindValidation},
		{"bad user id", dto.MoodRequest{UserID: "not-a-uuid", Mood: 5}, apperror.KindValidation},
		{"unknown user", dto.MoodRequest{UserID: "5f9e4a9e-0000-4000-8000-000000000001", Mood: 5}, apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LogMood(&tt.req)
			if !apperror.IsKind(err, tt.kind) {
				t.Errorf("err = %v, want kind %d", err, tt.kind)
			}
		})
	}
}

func TestLogMoodFirstEntry(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newMoodService(db)

	resp, err := svc.LogMood(&dto.MoodRequest{
		UserID: user.ID.String(),
		Mood:   8,
		Notes:  "great morning",
		Context: &dto.MoodContext{
			Tags:     []string{"sunny"},
			Activity: "running",
		},
	})
	if err != nil {
		t.Fatalf("LogMood: %v", err)
	}

	if resp.Log.MoodLabel != "Very Good" {
		t.Errorf("label = %q, want Very Good", resp.Log.MoodLabel)
	}
	if resp.Log.StressPrediction != nil {
		t.Errorf("first log carries a prediction: %+v", resp.Log.StressPrediction)
	}
	if resp.Log.AIResponse != aiResponsePools["high"][0] {
		t.Errorf("ai response = %q, want first high-band entry", resp.Log.AIResponse)
	}
	if resp.User.Streak != 1 || resp.User.LongestStreak != 1 {
		t.Errorf("streak view = %+v, want 1/1", resp.User)
	}
	if resp.Message != "Mood logged successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	// Patterns were tracked for the new log and surfaced in the response.
	if len(resp.Patterns) != 3 {
		t.Errorf("patterns = %d, want 3 (time, weekday, activity)", len(resp.Patterns))
	}

	var saved models.MoodLog
	if err := db.First(&saved, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load saved log: %v", err)
	}
	if saved.Activity == nil || *saved.Activity != "running" {
		t.Errorf("activity = %v, want running", saved.Activity)
	}
	if saved.StressRiskLevel != nil {
		t.Errorf("stress snapshot = %v, want nil for first log", *saved.StressRiskLevel)
	}

	var stored models.User
	if err := db.First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.CurrentStreak != 1 || stored.LastLogin == nil {
		t.Errorf("streak not persisted: streak=%d lastLogin=%v", stored.CurrentStreak, stored.LastLogin)
	}
}

func TestLogMoodSnapshotsPriorHistoryOnly(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newMoodService(db)

	// Three low prior logs make the predictor flag MEDIUM before the new,
	// much better mood is stored.
	now := time.Now()
	seedMoodLog(t, db, user.ID, 3, now.Add(-3*time.Hour))
	seedMoodLog(t, db, user.ID, 3, now.Add(-2*time.Hour))
	seedMoodLog(t, db, user.ID, 2, now.Add(-1*time.Hour))

	resp, err := svc.LogMood(&dto.MoodRequest{UserID: user.ID.String(), Mood: 9})
	if err != nil {
		t.Fatalf("LogMood: %v", err)
	}

	if resp.Log.StressPrediction == nil {
		t.Fatal("prediction = nil, want MEDIUM from prior history")
	}
	if resp.Log.StressPrediction.RiskLevel != models.RiskMedium {
		t.Errorf("risk = %q, want MEDIUM", resp.Log.StressPrediction.RiskLevel)
	}

	var saved models.MoodLog
	if err := db.Where("user_id = ? AND mood = ?", user.ID, 9).First(&saved).Error; err != nil {
		t.Fatalf("load saved log: %v", err)
	}
	if saved.StressRiskLevel == nil || *saved.StressRiskLevel != models.RiskMedium {
		t.Errorf("snapshot risk = %v, want MEDIUM", saved.StressRiskLevel)
	}
	if saved.StressConfidence == nil || !almostEqual(*saved.StressConfidence, 0.3) {
		t.Errorf("snapshot confidence = %v, want 0.3", saved.StressConfidence)
	}
}

func TestLogMoodVoiceMetrics(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newMoodService(db)

	_, err := svc.LogMood(&dto.MoodRequest{
		UserID: user.ID.String(),
		Mood:   4,
		VoiceAnalysis: &dto.VoiceMetrics{
			StressScore: 6.5,
			Emotion:     "Tired",
			Confidence:  0.8,
		},
	})
	if err != nil {
		t.Fatalf("LogMood: %v", err)
	}

	var saved models.MoodLog
	if err := db.First(&saved, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load saved log: %v", err)
	}
	if saved.VoiceStressScore == nil || *saved.VoiceStressScore != 6.5 {
		t.Errorf("voice stress = %v, want 6.5", saved.VoiceStressScore)
	}
	if saved.VoiceEmotion == nil || *saved.VoiceEmotion != "Tired" {
		t.Errorf("voice emotion = %v, want Tired", saved.VoiceEmotion)
	}
}

func TestAIResponseBands(t *testing.T) {
	db := newTestDB(t)
	svc := newMoodService(db)

	tests := []struct {
		mood int
		band string
	}{
		{9, "high"},
		{7, "high"},
		{6, "medium"},
		{4, "medium"},
		{3, "low"},
		{1, "low"},
	}

	for _, tt := range tests {
		if got := svc.aiResponse(tt.mood); got != aiResponsePools[tt.band][0] {
			t.Errorf("aiResponse(%d) not from %q band: %q", tt.mood, tt.band, got)
		}
	}
}

func TestPatternSuggestionTexts(t *testing.T) {
	if got := patternSuggestionMood(models.RiskHigh); got != "Consider proactive stress management" {
		t.Errorf("mood high suggestion = %q", got)
	}
	if got := patternSuggestionMood(models.RiskLow); got != "Maintain current healthy habits" {
		t.Errorf("mood low suggestion = %q", got)
	}
	if got := patternSuggestionDashboard(models.RiskHigh); got != "Immediate attention recommended" {
		t.Errorf("dashboard high suggestion = %q", got)
	}
	if got := patternSuggestionDashboard(models.RiskMedium); got != "No action needed" {
		t.Errorf("dashboard medium suggestion = %q", got)
	}
}
