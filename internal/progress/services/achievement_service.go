package services

import (
	"time"

	practicerepo "github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
	"gorm.io/gorm"
)

// EvaluateAchievements rescans lifetime stats against the static catalog
// and upgrades each not-yet-earned achievement's progress. Earned status
// (progress 100) is monotonic: those rows are skipped entirely, so no
// later drop in the underlying ratio can demote them.
func EvaluateAchievements(tx *gorm.DB, userID string, now time.Time) error {
	userRows, err := repository.ListUserAchievements(tx, userID)
	if err != nil {
		return err
	}

	earned := map[string]bool{}
	existing := map[string]*models.UserAchievement{}
	for i := range userRows {
		row := &userRows[i]
		existing[row.AchievementID] = row
		if row.Progress == 100 {
			earned[row.AchievementID] = true
		}
	}

	catalog, err := repository.ListAchievements(tx)
	if err != nil {
		return err
	}

	totalQuestions, correctAnswers, err := practicerepo.CountAttempts(tx, userID)
	if err != nil {
		return err
	}

	latest, err := repository.GetLatestDaily(tx, userID)
	if err != nil {
		return err
	}
	currentStreak := 0
	if latest != nil {
		currentStreak = latest.StreakDays
	}

	for _, achievement := range catalog {
		if earned[achievement.ID] {
			continue
		}

		var currentValue int64
		switch achievement.CriteriaType {
		case models.CriteriaTotalQuestions:
			currentValue = totalQuestions
		case models.CriteriaCorrectAnswers:
			currentValue = correctAnswers
		case models.CriteriaStreakDays:
			currentValue = int64(currentStreak)
		}

		progress := int(currentValue * 100 / int64(achievement.CriteriaTarget))
		if progress > 100 {
			progress = 100
		}

		prior := existing[achievement.ID]

		if progress >= 100 {
			earnedAt := now
			if prior != nil {
				if err := repository.UpdateUserAchievementProgress(tx, userID, achievement.ID, 100, &earnedAt); err != nil {
					return err
				}
			} else {
				row := &models.UserAchievement{
					UserID:        userID,
					AchievementID: achievement.ID,
					Progress:      100,
					EarnedAt:      &earnedAt,
				}
				if err := repository.CreateUserAchievement(tx, row); err != nil {
					return err
				}
			}
		} else if progress > 0 {
			if prior != nil {
				// Only touch the row when the percentage actually moved.
				if prior.Progress != progress {
					if err := repository.UpdateUserAchievementProgress(tx, userID, achievement.ID, progress, nil); err != nil {
						return err
					}
				}
			} else {
				row := &models.UserAchievement{
					UserID:        userID,
					AchievementID: achievement.ID,
					Progress:      progress,
				}
				if err := repository.CreateUserAchievement(tx, row); err != nil {
					return err
				}
			}
		}
		// 0% progress creates no row.
	}

	return nil
}
