package services

import (
	"math"
	"time"

	practicerepo "github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
	"github.com/architect/math-prep/internal/progress/thresholds"
	"gorm.io/gorm"
)

// RecomputeTopicPerformance rebuilds the lifetime rollup for one topic
// from every non-deleted attempt the user has made on it. Untagged
// questions contribute to no topic; the call is a no-op for them.
func RecomputeTopicPerformance(tx *gorm.DB, userID, topic string, now time.Time) error {
	if topic == "" {
		return nil
	}

	attempts, err := practicerepo.GetAttemptsByTopic(tx, userID, topic)
	if err != nil {
		return err
	}

	totalAttempts := len(attempts)
	correctAttempts := 0
	totalTime := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correctAttempts++
		}
		totalTime += a.TimeSpent
	}

	accuracy := 0.0
	averageTime := 0
	if totalAttempts > 0 {
		accuracy = float64(correctAttempts) / float64(totalAttempts) * 100
		averageTime = int(math.Round(float64(totalTime) / float64(totalAttempts)))
	}

	// Needs-practice looks at when the topic was last touched before this
	// attempt, so read the prior row before stamping lastPracticed = now.
	existing, err := repository.GetTopicPerformance(tx, userID, topic)
	if err != nil {
		return err
	}

	var lastPracticed time.Time
	if existing != nil {
		lastPracticed = existing.LastPracticed
	}

	row := &models.TopicPerformance{
		UserID:          userID,
		Topic:           topic,
		TotalAttempts:   totalAttempts,
		CorrectAttempts: correctAttempts,
		Accuracy:        accuracy,
		AverageTime:     averageTime,
		LastPracticed:   now,
		StrengthLevel:   thresholds.DetermineStrengthLevel(totalAttempts, accuracy, policy),
		NeedsPractice:   thresholds.NeedsPractice(accuracy, lastPracticed, now, policy),
	}

	return repository.UpsertTopicPerformance(tx, row)
}
