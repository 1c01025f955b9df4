package services

import (
	"strings"
	"time"

	practicerepo "github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
	"gorm.io/gorm"
)

// DayStart truncates t to local midnight, the daily rollup bucket key.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd is the inclusive end of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// RecomputeDailyProgress rebuilds today's rollup from all of the day's
// non-deleted attempts and recomputes the streak counter.
//
// Streak rules:
//  1. Today's row already carries a streak > 0: keep it. Later attempts in
//     the same day must not reset a streak established by the first one.
//  2. Yesterday was a streak day: extend it by one.
//  3. Otherwise start fresh at 1. A break of any length resets to 1 on the
//     day practice resumes, never to 0.
func RecomputeDailyProgress(tx *gorm.DB, userID string, now time.Time) error {
	today := DayStart(now)

	attempts, err := practicerepo.GetAttemptsBetween(tx, userID, today, DayEnd(now))
	if err != nil {
		return err
	}

	questionsAttempted := len(attempts)
	correctAnswers := 0
	totalTimeSpent := 0
	seenTopics := map[string]bool{}
	var topics []string

	for _, a := range attempts {
		if a.IsCorrect {
			correctAnswers++
		}
		totalTimeSpent += a.TimeSpent

		if a.Question != nil && a.Question.Topic != "" && !seenTopics[a.Question.Topic] {
			seenTopics[a.Question.Topic] = true
			topics = append(topics, a.Question.Topic)
		}
	}

	averageAccuracy := 0.0
	if questionsAttempted > 0 {
		averageAccuracy = float64(correctAnswers) / float64(questionsAttempted) * 100
	}

	yesterdayRow, err := repository.GetDailyByDate(tx, userID, today.AddDate(0, 0, -1))
	if err != nil {
		return err
	}

	todayRow, err := repository.GetDailyByDate(tx, userID, today)
	if err != nil {
		return err
	}

	var streakDays int
	switch {
	case todayRow != nil && todayRow.StreakDays > 0:
		streakDays = todayRow.StreakDays
	case yesterdayRow != nil && yesterdayRow.IsStreakDay:
		streakDays = yesterdayRow.StreakDays + 1
	default:
		streakDays = 1
	}

	row := &models.DailyProgress{
		UserID:             userID,
		Date:               today,
		QuestionsAttempted: questionsAttempted,
		CorrectAnswers:     correctAnswers,
		TotalTimeSpent:     totalTimeSpent,
		AverageAccuracy:    averageAccuracy,
		TopicsStudied:      strings.Join(topics, ", "),
		StreakDays:         streakDays,
		IsStreakDay:        questionsAttempted > 0,
	}

	return repository.UpsertDaily(tx, row)
}
