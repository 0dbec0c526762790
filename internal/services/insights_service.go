package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

// InsightsService composes read-only summary views over a user's records.
// It never mutates state; partial data sources degrade to empty sections.
type InsightsService struct {
	db        *gorm.DB
	predictor *PredictorService
	patterns  *PatternService
	now       func() time.Time
	randIntn  func(n int) int
}

func NewInsightsService(db *gorm.DB, predictor *PredictorService, patterns *PatternService) *InsightsService {
	return &InsightsService{
		db:        db,
		predictor: predictor,
		patterns:  patterns,
		now:       time.Now,
		randIntn:  rand.Intn,
	}
}

// GetInsights builds the statistics view over the last `days` days.
func (s *InsightsService) GetInsights(userID uuid.UUID, days int) (*dto.InsightsResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)

	var logs []models.MoodLog
	if err := s.db.
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	patterns, err := s.patterns.AllPatterns(userID)
	if err != nil {
		slog.Warn("failed to load patterns for insights", "user_id", userID, "error", err)
		patterns = nil
	}

	var voiceCount int64
	if err := s.db.Model(&models.VoiceLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&voiceCount).Error; err != nil {
		voiceCount = 0
	}

	recent := make([]dto.RecentLogView, 0, 5)
	for i := len(logs) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, dto.RecentLogView{
			Mood:       logs[i].Mood,
			MoodLabel:  logs[i].MoodLabel,
			Timestamp:  logs[i].CreatedAt,
			AIResponse: logs[i].AIResponse,
		})
	}

	return &dto.InsightsResponse{
		Stats:            s.calculateStatistics(logs, int(voiceCount)),
		Patterns:         PatternSummaries(patterns, patternSuggestionMood),
		StressPrediction: s.predictor.Predict(userID),
		RecentLogs:       recent,
	}, nil
}

func (s *InsightsService) calculateStatistics(logs []models.MoodLog, voiceChecks int) dto.MoodStats {
	if len(logs) == 0 {
		return dto.MoodStats{}
	}

	var sum float64
	var weeklySum float64
	var weeklyCount int
	var dist dto.MoodDistribution
	weekAgo := s.now().AddDate(0, 0, -7)

	for _, log := range logs {
		sum += float64(log.Mood)

		if !log.CreatedAt.Before(weekAgo) {
			weeklySum += float64(log.Mood)
			weeklyCount++
		}

		switch {
		case log.Mood >= 7:
			dist.High++
		case log.Mood >= 4:
			dist.Medium++
		default:
			dist.Low++
		}
	}

	var weeklyAvg float64
	if weeklyCount > 0 {
		weeklyAvg = weeklySum / float64(weeklyCount)
	}

	return dto.MoodStats{
		TotalLogs:        len(logs),
		AvgMood:          round1(sum / float64(len(logs))),
		WeeklyAvg:        round1(weeklyAvg),
		MoodDistribution: dist,
		VoiceChecks:      voiceChecks,
		Consistency:      s.calculateConsistency(logs),
	}
}

// calculateConsistency is the share of calendar days with at least one log
// since the first log, as a percentage.
func (s *InsightsService) calculateConsistency(logs []models.MoodLog) float64 {
	if len(logs) < 2 {
		return 0
	}

	days := make(map[string]struct{}, len(logs))
	for _, log := range logs {
		days[log.CreatedAt.Format("2006-01-02")] = struct{}{}
	}

	totalDays := math.Ceil(s.now().Sub(logs[0].CreatedAt).Hours() / 24)
	if totalDays <= 0 {
		return 0
	}
	return float64(len(days)) / totalDays * 100
}

// GetDashboard builds the landing view: today's status, top patterns, recent
// games, the 0-100 wellness score, and daily recommendations.
func (s *InsightsService) GetDashboard(userID uuid.UUID) (*dto.DashboardResponse, error) {
	var user models.User
	if err := s.db.Preload("Badges").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayLogs []models.MoodLog
	if err := s.db.
		Where("user_id = ? AND created_at >= ?", userID, startOfDay).
		Order("created_at ASC").
		Find(&todayLogs).Error; err != nil {
		return nil, err
	}

	var patterns []models.Pattern
	if err := s.db.
		Where("user_id = ?", userID).
		Order("last_updated DESC").
		Limit(3).
		Find(&patterns).Error; err != nil {
		slog.Warn("failed to load patterns for dashboard", "user_id", userID, "error", err)
		patterns = nil
	}

	var recentGames []models.GameSession
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(2).
		Find(&recentGames).Error; err != nil {
		recentGames = nil
	}

	today := dto.DashboardToday{HasLogged: len(todayLogs) > 0}
	if len(todayLogs) > 0 {
		today.LastMood = &todayLogs[0].Mood
		today.LastResponse = &todayLogs[0].AIResponse
	}

	games := make([]dto.RecentGameView, 0, len(recentGames))
	for _, g := range recentGames {
		games = append(games, dto.RecentGameView{
			Type:      g.GameType,
			Duration:  g.Duration,
			Score:     g.Score,
			Timestamp: g.CreatedAt,
		})
	}

	badges := user.Badges
	if badges == nil {
		badges = []models.UserBadge{}
	}

	return &dto.DashboardResponse{
		User: dto.DashboardUser{
			Name:   user.Name,
			Streak: user.CurrentStreak,
			Badges: badges,
		},
		Today:           today,
		Patterns:        PatternSummaries(patterns, patternSuggestionDashboard),
		RecentGames:     games,
		WellnessScore:   wellnessScore(&user, todayLogs),
		Recommendations: s.dailyRecommendations(&user, todayLogs),
	}, nil
}

// wellnessScore is a 0-100 composite of streak, today's mood, badge count,
// and logging volume.
func wellnessScore(user *models.User, todayLogs []models.MoodLog) int {
	score := 50

	streakBonus := user.CurrentStreak * 2
	if streakBonus > 20 {
		streakBonus = 20
	}
	score += streakBonus

	if len(todayLogs) > 0 {
		mood := todayLogs[0].Mood
		if mood >= 7 {
			score += 15
		} else if mood >= 4 {
			score += 5
		}
	}

	badgeBonus := len(user.Badges) * 3
	if badgeBonus > 15 {
		badgeBonus = 15
	}
	score += badgeBonus

	if len(todayLogs) >= 5 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

var recommendedGames = []string{
	models.GameBreathing,
	models.GameGratitude,
	models.GameGuidedMeditation,
	models.GameThoughtCatcher,
}

func (s *InsightsService) dailyRecommendations(user *models.User, todayLogs []models.MoodLog) []string {
	var recommendations []string
	hour := s.now().Hour()

	if hour < 12 && len(todayLogs) == 0 {
		recommendations = append(recommendations,
			"Start your day with a mood check-in",
			"Set a positive intention for the day",
		)
	}

	if hour >= 18 && len(todayLogs) == 0 {
		recommendations = append(recommendations,
			"Log your evening mood",
			"Practice gratitude before bed",
		)
	}

	if user.CurrentStreak >= 3 {
		recommendations = append(recommendations,
			fmt.Sprintf("Maintain your %d-day streak!", user.CurrentStreak))
	}

	if len(user.Badges) < 3 {
		recommendations = append(recommendations, "Complete more activities to earn badges")
	}

	game := recommendedGames[s.randIntn(len(recommendedGames))]
	recommendations = append(recommendations,
		fmt.Sprintf("Try the %s game today", strings.ReplaceAll(game, "_", " ")))

	return recommendations
}
