package services

import (
	"math"
	"time"

	"github.com/architect/math-prep/internal/common/database"
	practicerepo "github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
)

// GetProgressOverview assembles the progress dashboard: lifetime stats,
// 30-day daily history, topic table, recent sessions and 7-day activity.
func GetProgressOverview(userID string) (*models.ProgressOverview, error) {
	now := time.Now()

	totalQuestions, correctAnswers, err := practicerepo.CountAttempts(database.DB, userID)
	if err != nil {
		return nil, err
	}

	accuracy := 0
	if totalQuestions > 0 {
		accuracy = int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))
	}

	latest, err := repository.GetLatestDaily(database.DB, userID)
	if err != nil {
		return nil, err
	}
	currentStreak := 0
	if latest != nil {
		currentStreak = latest.StreakDays
	}

	daily, err := repository.ListDailySince(userID, DayStart(now).AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	topicRows, err := repository.ListTopicPerformance(userID)
	if err != nil {
		return nil, err
	}

	sessions, err := practicerepo.ListSessions(userID, 10)
	if err != nil {
		return nil, err
	}

	recentSessions := make([]models.SessionSummary, len(sessions))
	for i, s := range sessions {
		recentSessions[i] = models.SessionSummary{
			ID:             s.ID,
			SessionType:    s.SessionType,
			StartedAt:      s.StartedAt,
			CompletedAt:    s.CompletedAt,
			TotalQuestions: s.TotalQuestions,
			CorrectAnswers: s.CorrectAnswers,
		}
	}

	recentAttempts, err := practicerepo.GetAttemptsBetween(database.DB, userID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	recentCorrect := 0
	for _, a := range recentAttempts {
		if a.IsCorrect {
			recentCorrect++
		}
	}

	return &models.ProgressOverview{
		Overall: models.OverallStats{
			TotalQuestions: int(totalQuestions),
			CorrectAnswers: int(correctAnswers),
			Accuracy:       accuracy,
			CurrentStreak:  currentStreak,
		},
		DailyProgress:    daily,
		TopicPerformance: topicRows,
		RecentSessions:   recentSessions,
		RecentActivity: models.RecentActivity{
			QuestionsAttempted: len(recentAttempts),
			CorrectAnswers:     recentCorrect,
		},
	}, nil
}

// GetTopicTable returns the per-topic rollup table.
func GetTopicTable(userID string) ([]models.TopicPerformance, error) {
	return repository.ListTopicPerformance(userID)
}

// GetDailyHistory returns per-day rollups for the last N days plus
// aggregate totals over the window.
func GetDailyHistory(userID string, days int) (*models.DailyHistory, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	startDate := DayStart(time.Now()).AddDate(0, 0, -days)
	rows, err := repository.ListDailySince(userID, startDate)
	if err != nil {
		return nil, err
	}

	latest, err := repository.GetLatestDaily(database.DB, userID)
	if err != nil {
		return nil, err
	}
	currentStreak := 0
	if latest != nil {
		currentStreak = latest.StreakDays
	}

	history := &models.DailyHistory{
		DailyProgress: rows,
		CurrentStreak: currentStreak,
	}
	for _, row := range rows {
		history.QuestionsAttempted += row.QuestionsAttempted
		history.CorrectAnswers += row.CorrectAnswers
		history.TotalTimeSpent += row.TotalTimeSpent
	}
	if history.QuestionsAttempted > 0 {
		history.AverageAccuracy = float64(history.CorrectAnswers) / float64(history.QuestionsAttempted) * 100
	}

	return history, nil
}

// GetWeeklyHistory returns the last N weekly rollups, newest first.
func GetWeeklyHistory(userID string, weeks int) ([]models.WeeklyAnalysis, error) {
	if weeks <= 0 || weeks > 104 {
		weeks = 12
	}

	startDate := WeekStart(time.Now()).AddDate(0, 0, -7*weeks)
	return repository.ListWeeklySince(userID, startDate)
}

// GetAchievements merges the static catalog with the user's progress rows
// and a live stat snapshot.
func GetAchievements(userID string) (*models.AchievementList, error) {
	catalog, err := repository.ListAchievements(database.DB)
	if err != nil {
		return nil, err
	}

	userRows, err := repository.ListUserAchievements(database.DB, userID)
	if err != nil {
		return nil, err
	}

	progressByID := map[string]*models.UserAchievement{}
	for i := range userRows {
		progressByID[userRows[i].AchievementID] = &userRows[i]
	}

	statuses := make([]models.AchievementStatus, len(catalog))
	for i, achievement := range catalog {
		status := models.AchievementStatus{Achievement: achievement}
		if row, ok := progressByID[achievement.ID]; ok {
			status.Progress = row.Progress
			status.Earned = row.Progress == 100
			status.EarnedAt = row.EarnedAt
		}
		statuses[i] = status
	}

	totalQuestions, correctAnswers, err := practicerepo.CountAttempts(database.DB, userID)
	if err != nil {
		return nil, err
	}

	accuracy := 0
	if totalQuestions > 0 {
		accuracy = int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100))
	}

	latest, err := repository.GetLatestDaily(database.DB, userID)
	if err != nil {
		return nil, err
	}
	currentStreak := 0
	if latest != nil {
		currentStreak = latest.StreakDays
	}

	return &models.AchievementList{
		Achievements: statuses,
		Stats: models.OverallStats{
			TotalQuestions: int(totalQuestions),
			CorrectAnswers: int(correctAnswers),
			Accuracy:       accuracy,
			CurrentStreak:  currentStreak,
		},
	}, nil
}
