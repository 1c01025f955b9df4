package repository

import (
	"time"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"gorm.io/gorm"
)

// Attempt reads and writes. The functions taking a *gorm.DB run inside the
// submission transaction; pass the tx handle so the attempt write and the
// rollup recomputes commit or roll back together.

// CreateAttempt inserts one immutable attempt row.
func CreateAttempt(db *gorm.DB, attempt *models.Attempt) error {
	result := db.Create(attempt)
	if result.Error != nil {
		return errors.Internal("failed to record attempt", result.Error.Error())
	}
	return nil
}

// GetAttemptsBetween returns the user's non-deleted attempts in
// [start, end], oldest first, with each attempt's question loaded for
// topic tagging.
func GetAttemptsBetween(db *gorm.DB, userID string, start, end time.Time) ([]models.Attempt, error) {
	var attempts []models.Attempt
	result := db.
		Preload("Question").
		Where("user_id = ? AND attempted_at >= ? AND attempted_at <= ?", userID, start, end).
		Order("attempted_at ASC").
		Find(&attempts)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch attempts", result.Error.Error())
	}

	return attempts, nil
}

// GetAttemptsByTopic returns all of the user's non-deleted attempts whose
// question carries the given topic.
func GetAttemptsByTopic(db *gorm.DB, userID, topic string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	result := db.
		Joins("JOIN questions ON questions.id = attempts.question_id").
		Where("attempts.user_id = ? AND questions.topic = ?", userID, topic).
		Find(&attempts)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch topic attempts", result.Error.Error())
	}

	return attempts, nil
}

// CountAttempts returns lifetime (total, correct) non-deleted attempt counts.
func CountAttempts(db *gorm.DB, userID string) (int64, int64, error) {
	var total, correct int64

	if err := db.Model(&models.Attempt{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, errors.Internal("failed to count attempts", err.Error())
	}

	if err := db.Model(&models.Attempt{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&correct).Error; err != nil {
		return 0, 0, errors.Internal("failed to count correct attempts", err.Error())
	}

	return total, correct, nil
}

// ListAttempts returns the user's attempts newest-first.
func ListAttempts(userID string, limit, offset int) ([]models.Attempt, int64, error) {
	var total int64
	if err := database.DB.Model(&models.Attempt{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Internal("failed to count attempts", err.Error())
	}

	var attempts []models.Attempt
	result := database.DB.
		Preload("Question").
		Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&attempts)

	if result.Error != nil {
		return nil, 0, errors.Internal("failed to fetch attempts", result.Error.Error())
	}

	return attempts, total, nil
}
