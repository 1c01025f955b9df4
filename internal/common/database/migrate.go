package database

import (
	practice "github.com/architect/math-prep/internal/practice/models"
	progress "github.com/architect/math-prep/internal/progress/models"
)

// Migrate creates or updates the schema for every model in the service.
func Migrate() error {
	return DB.AutoMigrate(
		&practice.Question{},
		&practice.QuestionOption{},
		&practice.Attempt{},
		&practice.PracticeSession{},
		&progress.DailyProgress{},
		&progress.TopicPerformance{},
		&progress.Achievement{},
		&progress.UserAchievement{},
		&progress.WeeklyAnalysis{},
	)
}
