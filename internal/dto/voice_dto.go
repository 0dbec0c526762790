package dto

// VoiceFeatures are client-side precomputed acoustic features. Any field left
// nil is filled with a heuristic fallback on the server.
type VoiceFeatures struct {
	RMS              *float64 `json:"rms,omitempty"`
	ZeroCrossingRate *float64 `json:"zero_crossing_rate,omitempty"`
	SpeechRate       *float64 `json:"speech_rate,omitempty"`
	PitchVariation   *float64 `json:"pitch_variation,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
}

type VoiceAnalyzeRequest struct {
	UserID    string         `json:"user_id"`
	AudioData string         `json:"audio_data,omitempty"`
	Duration  float64        `json:"duration"`
	Features  *VoiceFeatures `json:"features,omitempty"`
}

type VoiceAnalysis struct {
	StressScore    float64  `json:"stress_score"`
	Emotion        string   `json:"emotion"`
	SpeechRate     int      `json:"speech_rate"`
	PitchVariation float64  `json:"pitch_variation"`
	Confidence     float64  `json:"confidence"`
	Insights       []string `json:"insights"`
}

type VoiceAnalyzeResponse struct {
	Analysis    VoiceAnalysis `json:"analysis"`
	Suggestions []string      `json:"suggestions"`
}
