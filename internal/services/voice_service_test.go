package services

import (
	"testing"

	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

func newVoiceService(db *gorm.DB) *VoiceService {
	svc := NewVoiceService(db)
	svc.randFloat = func() float64 { return 0 }
	return svc
}

func TestAnalyzeFeaturesHeuristic(t *testing.T) {
	svc := newVoiceService(nil)

	tests := []struct {
		name        string
		features    *dto.VoiceFeatures
		duration    float64
		wantStress  float64
		wantEmotion string
	}{
		{
			name:        "neutral baseline",
			features:    &dto.VoiceFeatures{RMS: fPtr(0.04), ZeroCrossingRate: fPtr(0.1), SpeechRate: fPtr(150)},
			duration:    10,
			wantStress:  4.5,
			wantEmotion: "Neutral",
		},
		{
			name:        "everything elevated clamps at 10",
			features:    &dto.VoiceFeatures{RMS: fPtr(0.08), ZeroCrossingRate: fPtr(0.25), SpeechRate: fPtr(190)},
			duration:    5,
			wantStress:  10,
			wantEmotion: "Anxious",
		},
		{
			name:        "quiet voice reads tired",
			features:    &dto.VoiceFeatures{RMS: fPtr(0.01), SpeechRate: fPtr(150)},
			duration:    10,
			wantStress:  5.3,
			wantEmotion: "Tired",
		},
		{
			name:        "loud voice alone lands in tired band",
			features:    &dto.VoiceFeatures{RMS: fPtr(0.07), SpeechRate: fPtr(150)},
			duration:    20,
			wantStress:  7,
			wantEmotion: "Tired",
		},
		{
			name:        "fast speech lands in tired band",
			features:    &dto.VoiceFeatures{RMS: fPtr(0.04), SpeechRate: fPtr(200)},
			duration:    15,
			wantStress:  6,
			wantEmotion: "Tired",
		},
		{
			name:        "missing features fall back without stress",
			features:    nil,
			duration:    10,
			wantStress:  4.5,
			wantEmotion: "Neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.analyzeFeatures(tt.features, tt.duration)
			if got.StressScore != tt.wantStress {
				t.Errorf("stress = %v, want %v", got.StressScore, tt.wantStress)
			}
			if got.Emotion != tt.wantEmotion {
				t.Errorf("emotion = %q, want %q", got.Emotion, tt.wantEmotion)
			}
		})
	}
}

func TestAnalyzeFeaturesFallbacks(t *testing.T) {
	svc := newVoiceService(nil)

	got := svc.analyzeFeatures(nil, 10)
	if got.SpeechRate != 140 {
		t.Errorf("fallback speech rate = %d, want 140", got.SpeechRate)
	}
	if got.PitchVariation != 0.5 {
		t.Errorf("fallback pitch variation = %v, want 0.5", got.PitchVariation)
	}
	if got.Confidence != 0.7 {
		t.Errorf("fallback confidence = %v, want 0.7", got.Confidence)
	}
}

func TestAnalyzeFeaturesInsights(t *testing.T) {
	svc := newVoiceService(nil)

	stressed := svc.analyzeFeatures(&dto.VoiceFeatures{
		RMS: fPtr(0.08), ZeroCrossingRate: fPtr(0.25), SpeechRate: fPtr(150),
	}, 10)
	if len(stressed.Insights) != 1 || stressed.Insights[0] != "High stress detected in voice pattern" {
		t.Errorf("insights = %v", stressed.Insights)
	}

	tired := svc.analyzeFeatures(&dto.VoiceFeatures{RMS: fPtr(0.01), SpeechRate: fPtr(150)}, 10)
	if len(tired.Insights) != 1 || tired.Insights[0] != "Voice shows signs of fatigue" {
		t.Errorf("insights = %v", tired.Insights)
	}
}

func TestVoiceSuggestions(t *testing.T) {
	balanced := voiceSuggestions(dto.VoiceAnalysis{StressScore: 4, Emotion: "Neutral"})
	if len(balanced) != 1 || balanced[0] != "Your voice sounds balanced. Keep up the good work!" {
		t.Errorf("balanced suggestions = %v", balanced)
	}

	stressedTired := voiceSuggestions(dto.VoiceAnalysis{StressScore: 8, Emotion: "Tired"})
	if len(stressedTired) != 5 {
		t.Errorf("stressed+tired suggestions = %d entries, want 5", len(stressedTired))
	}
}

func TestAnalyzePersistsLog(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newVoiceService(db)

	resp, err := svc.Analyze(&dto.VoiceAnalyzeRequest{
		UserID:    user.ID.String(),
		Duration:  10,
		AudioData: "Zm9v",
		Features:  &dto.VoiceFeatures{RMS: fPtr(0.08), SpeechRate: fPtr(150)},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Analysis.StressScore != 7 {
		t.Errorf("stress = %v, want 7", resp.Analysis.StressScore)
	}

	var saved models.VoiceLog
	if err := db.First(&saved, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load voice log: %v", err)
	}
	if saved.StressScore != 7 {
		t.Errorf("saved stress = %v, want 7", saved.StressScore)
	}
	if saved.AudioURL != "data:audio/wav;base64,Zm9v" {
		t.Errorf("audio url = %q", saved.AudioURL)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	svc := newVoiceService(db)

	_, err := svc.Analyze(&dto.VoiceAnalyzeRequest{UserID: user.ID.String(), Duration: 0.5})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("short duration err = %v", err)
	}

	_, err = svc.Analyze(&dto.VoiceAnalyzeRequest{UserID: user.ID.String(), Duration: 90})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("long duration err = %v", err)
	}

	_, err = svc.Analyze(&dto.VoiceAnalyzeRequest{UserID: "5f9e4a9e-0000-4000-8000-000000000003", Duration: 10})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("unknown user err = %v", err)
	}
}
