package repository

import (
	"time"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/progress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetWeeklyByStart fetches the rollup for an exact week-start date, nil if absent.
func GetWeeklyByStart(db *gorm.DB, userID string, weekStart time.Time) (*models.WeeklyAnalysis, error) {
	var row models.WeeklyAnalysis
	result := db.Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&row)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch weekly analysis", result.Error.Error())
	}

	return &row, nil
}

// UpsertWeekly writes the rollup keyed by (user, week-start); called on
// every in-week attempt so the row is refined through the week.
func UpsertWeekly(db *gorm.DB, row *models.WeeklyAnalysis) error {
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_questions", "correct_answers", "total_time_spent",
			"average_accuracy", "strong_topics", "weak_topics",
			"improvement_rate", "updated_at",
		}),
	}).Create(row)

	if result.Error != nil {
		return errors.Internal("failed to upsert weekly analysis", result.Error.Error())
	}
	return nil
}

// ListWeeklySince returns rollups with week-start on or after startDate,
// newest week first.
func ListWeeklySince(userID string, startDate time.Time) ([]models.WeeklyAnalysis, error) {
	var rows []models.WeeklyAnalysis
	result := database.DB.
		Where("user_id = ? AND week_start_date >= ?", userID, startDate).
		Order("week_start_date DESC").
		Find(&rows)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch weekly analysis history", result.Error.Error())
	}

	return rows, nil
}
