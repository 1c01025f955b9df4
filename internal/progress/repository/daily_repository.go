package repository

import (
	"time"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/progress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetDailyByDate fetches the rollup row for one calendar day, nil if absent.
func GetDailyByDate(db *gorm.DB, userID string, date time.Time) (*models.DailyProgress, error) {
	var row models.DailyProgress
	result := db.Where("user_id = ? AND date = ?", userID, date).First(&row)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch daily progress", result.Error.Error())
	}

	return &row, nil
}

// GetLatestDaily fetches the most recent rollup row, nil if the user has none.
func GetLatestDaily(db *gorm.DB, userID string) (*models.DailyProgress, error) {
	var row models.DailyProgress
	result := db.Where("user_id = ?", userID).Order("date DESC").First(&row)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch latest daily progress", result.Error.Error())
	}

	return &row, nil
}

// UpsertDaily writes the rollup keyed by (user, date). The unique index
// arbitrates concurrent same-day submissions; both racers compute the same
// values so the second write is a harmless overwrite.
func UpsertDaily(db *gorm.DB, row *models.DailyProgress) error {
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"questions_attempted", "correct_answers", "total_time_spent",
			"average_accuracy", "topics_studied", "streak_days",
			"is_streak_day", "updated_at",
		}),
	}).Create(row)

	if result.Error != nil {
		return errors.Internal("failed to upsert daily progress", result.Error.Error())
	}
	return nil
}

// ListDailySince returns rollup rows from startDate onward, ascending.
func ListDailySince(userID string, startDate time.Time) ([]models.DailyProgress, error) {
	var rows []models.DailyProgress
	result := database.DB.
		Where("user_id = ? AND date >= ?", userID, startDate).
		Order("date ASC").
		Find(&rows)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch daily progress history", result.Error.Error())
	}

	return rows, nil
}
