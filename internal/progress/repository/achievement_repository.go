package repository

import (
	"time"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/progress/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListAchievements returns the full static catalog, tier asc then points desc.
func ListAchievements(db *gorm.DB) ([]models.Achievement, error) {
	var achievements []models.Achievement
	result := db.Order("tier ASC, points DESC").Find(&achievements)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch achievements", result.Error.Error())
	}

	return achievements, nil
}

// ListUserAchievements returns the user's progress rows.
func ListUserAchievements(db *gorm.DB, userID string) ([]models.UserAchievement, error) {
	var rows []models.UserAchievement
	result := db.Where("user_id = ?", userID).Find(&rows)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch user achievements", result.Error.Error())
	}

	return rows, nil
}

// CreateUserAchievement inserts a progress row.
func CreateUserAchievement(db *gorm.DB, row *models.UserAchievement) error {
	result := db.Create(row)
	if result.Error != nil {
		return errors.Internal("failed to create user achievement", result.Error.Error())
	}
	return nil
}

// UpdateUserAchievementProgress sets progress (and the earned timestamp when
// the achievement is granted) on an existing row.
func UpdateUserAchievementProgress(db *gorm.DB, userID, achievementID string, progress int, earnedAt *time.Time) error {
	updates := map[string]interface{}{
		"progress": progress,
	}
	if earnedAt != nil {
		updates["earned_at"] = *earnedAt
	}

	result := db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Updates(updates)

	if result.Error != nil {
		return errors.Internal("failed to update user achievement", result.Error.Error())
	}
	return nil
}

// SeedAchievements upserts the built-in catalog by id; run by the seed
// command, safe to repeat.
func SeedAchievements(catalog []models.Achievement) error {
	result := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "category", "tier", "points",
			"criteria_type", "criteria_target",
		}),
	}).Create(&catalog)

	if result.Error != nil {
		return errors.Internal("failed to seed achievements", result.Error.Error())
	}
	return nil
}
