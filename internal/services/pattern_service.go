package services

import (
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindshield/mindshield-backend/internal/models"
	"gorm.io/gorm"
)

// PatternService maintains per-(user, type, key) behavioral aggregates folded
// from the mood event stream.
type PatternService struct {
	db    *gorm.DB
	now   func() time.Time
	locks [64]sync.Mutex
}

func NewPatternService(db *gorm.DB) *PatternService {
	return &PatternService{db: db, now: time.Now}
}

type patternCandidate struct {
	patternType string
	key         string
}

// TrackFromMoodLog derives 2-5 pattern observations from a single mood log
// and upserts each aggregate. Upserts are sequential; all failures are
// collected so one bad key does not stop the rest.
func (s *PatternService) TrackFromMoodLog(log *models.MoodLog) error {
	candidates := []patternCandidate{
		{models.PatternTimeOfDay, models.TimeOfDayBucket(log.CreatedAt.Hour())},
		{models.PatternDayOfWeek, log.CreatedAt.Weekday().String()},
	}

	if log.Activity != nil && *log.Activity != "" {
		candidates = append(candidates, patternCandidate{models.PatternActivity, *log.Activity})
	}
	if log.Location != nil && *log.Location != "" {
		candidates = append(candidates, patternCandidate{models.PatternLocation, *log.Location})
	}
	if log.Mood <= 3 {
		key := "Unknown"
		if log.Activity != nil && *log.Activity != "" {
			key = *log.Activity
		}
		candidates = append(candidates, patternCandidate{models.PatternStressTrigger, key})
	}

	// The log's predictor snapshot doubles as a stress-equivalent signal on a
	// 0-10 scale.
	var stress *float64
	if log.StressConfidence != nil {
		v := *log.StressConfidence * 10
		stress = &v
	}

	var errs error
	for _, c := range candidates {
		if err := s.upsert(log.UserID, c.patternType, c.key, log.Mood, stress); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// upsert folds one observation into the aggregate for (userID, type, key),
// creating it on first sight. The per-key lock prevents two concurrent mood
// logs from racing the read-modify-write; a create that still loses a race
// against another instance retries as an update.
func (s *PatternService) upsert(userID uuid.UUID, patternType, key string, mood int, stress *float64) error {
	mu := s.lockFor(userID, patternType, key)
	mu.Lock()
	defer mu.Unlock()

	var existing models.Pattern
	err := s.db.
		Where("user_id = ? AND pattern_type = ? AND key = ?", userID, patternType, key).
		First(&existing).Error

	if err == nil {
		return s.applyObservation(&existing, mood, stress)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := s.now()
	pattern := models.Pattern{
		ID:              uuid.New(),
		UserID:          userID,
		PatternType:     patternType,
		Key:             key,
		Occurrences:     1,
		AvgMood:         float64(mood),
		AvgStress:       stress,
		FirstDetectedAt: now,
		LastUpdated:     now,
	}
	pattern.RecalculateConfidence()
	pattern.RiskLevel = pattern.CalculateRisk()
	pattern.InsightMessage = pattern.GenerateInsight()

	if createErr := s.db.Create(&pattern).Error; createErr != nil {
		// Unique index race: someone created the same key between our read
		// and write. Retry as an update.
		var raced models.Pattern
		if ferr := s.db.
			Where("user_id = ? AND pattern_type = ? AND key = ?", userID, patternType, key).
			First(&raced).Error; ferr == nil {
			return s.applyObservation(&raced, mood, stress)
		}
		return createErr
	}
	return nil
}

// applyObservation blends a new observation into an existing aggregate. The
// averages are recency-weighted: each observation pulls the average halfway
// toward itself, not a uniform running mean.
func (s *PatternService) applyObservation(p *models.Pattern, mood int, stress *float64) error {
	now := s.now()

	p.Occurrences++
	p.AvgMood = (p.AvgMood + float64(mood)) / 2

	if stress != nil {
		if p.AvgStress != nil {
			blended := (*p.AvgStress + *stress) / 2
			p.AvgStress = &blended
		} else {
			p.AvgStress = stress
		}
	}

	// Decay runs against the pre-update timestamp, then the confidence
	// recalculation overwrites its result. The ordering is preserved from the
	// observed behavior even though it makes decay a no-op today; see
	// DESIGN.md before "fixing" it.
	p.ApplyDecay(now)
	p.LastUpdated = now
	p.RecalculateConfidence()
	p.RiskLevel = p.CalculateRisk()
	p.InsightMessage = p.GenerateInsight()

	return s.db.Save(p).Error
}

// TopPatterns returns the user's patterns ordered by confidence, capped at
// limit.
func (s *PatternService) TopPatterns(userID uuid.UUID, limit int) ([]models.Pattern, error) {
	if limit <= 0 {
		limit = 3
	}
	var patterns []models.Pattern
	err := s.db.
		Where("user_id = ?", userID).
		Order("confidence DESC").
		Limit(limit).
		Find(&patterns).Error
	return patterns, err
}

// HighRiskPatterns returns patterns classified HIGH with enough evidence.
func (s *PatternService) HighRiskPatterns(userID uuid.UUID) ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := s.db.
		Where("user_id = ? AND risk_level = ? AND confidence >= ?", userID, models.RiskHigh, 0.6).
		Find(&patterns).Error
	return patterns, err
}

// AllPatterns returns every pattern for a user.
func (s *PatternService) AllPatterns(userID uuid.UUID) ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := s.db.Where("user_id = ?", userID).Find(&patterns).Error
	return patterns, err
}

func (s *PatternService) lockFor(userID uuid.UUID, patternType, key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write(userID[:])
	h.Write([]byte(patternType))
	h.Write([]byte(key))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}
