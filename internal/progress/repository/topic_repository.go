package repository

import (
	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/progress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTopicPerformance fetches the rollup for one topic, nil if absent.
func GetTopicPerformance(db *gorm.DB, userID, topic string) (*models.TopicPerformance, error) {
	var row models.TopicPerformance
	result := db.Where("user_id = ? AND topic = ?", userID, topic).First(&row)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch topic performance", result.Error.Error())
	}

	return &row, nil
}

// UpsertTopicPerformance writes the rollup keyed by (user, topic).
func UpsertTopicPerformance(db *gorm.DB, row *models.TopicPerformance) error {
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_attempts", "correct_attempts", "accuracy", "average_time",
			"last_practiced", "strength_level", "needs_practice", "updated_at",
		}),
	}).Create(row)

	if result.Error != nil {
		return errors.Internal("failed to upsert topic performance", result.Error.Error())
	}
	return nil
}

// ListTopicPerformance returns all topic rollups for the user.
func ListTopicPerformance(userID string) ([]models.TopicPerformance, error) {
	var rows []models.TopicPerformance
	result := database.DB.
		Where("user_id = ?", userID).
		Order("topic ASC").
		Find(&rows)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch topic performance", result.Error.Error())
	}

	return rows, nil
}
