package services

import (
	"strings"
	"time"

	practicerepo "github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
	"gorm.io/gorm"
)

// Weekly classification cutoffs: a topic needs at least minTopicAttempts
// attempts in the week to be classified at all.
const (
	minTopicAttempts    = 3
	strongTopicAccuracy = 75.0
	weakTopicAccuracy   = 60.0
)

// WeekStart returns the most recent Sunday local midnight for t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekEnd is the inclusive end of the week starting at weekStart
// (the following Saturday, 23:59:59.999).
func WeekEnd(weekStart time.Time) time.Time {
	return DayEnd(weekStart.AddDate(0, 0, 6))
}

// RecomputeWeeklyAnalysis rebuilds the current week's rollup from the
// week's non-deleted attempts. An empty week writes nothing. The row is
// upserted on every in-week attempt, so it sharpens as the week goes on
// rather than being finalized once on Saturday night.
func RecomputeWeeklyAnalysis(tx *gorm.DB, userID string, now time.Time) error {
	weekStart := WeekStart(now)
	weekEnd := WeekEnd(weekStart)

	attempts, err := practicerepo.GetAttemptsBetween(tx, userID, weekStart, weekEnd)
	if err != nil {
		return err
	}

	if len(attempts) == 0 {
		return nil
	}

	totalQuestions := len(attempts)
	correctAnswers := 0
	totalTime := 0

	type topicStat struct {
		correct int
		total   int
	}
	topicStats := map[string]*topicStat{}
	var topicOrder []string

	for _, a := range attempts {
		if a.IsCorrect {
			correctAnswers++
		}
		totalTime += a.TimeSpent

		if a.Question == nil || a.Question.Topic == "" {
			continue
		}
		topic := a.Question.Topic
		stat, ok := topicStats[topic]
		if !ok {
			stat = &topicStat{}
			topicStats[topic] = stat
			topicOrder = append(topicOrder, topic)
		}
		stat.total++
		if a.IsCorrect {
			stat.correct++
		}
	}

	averageAccuracy := float64(correctAnswers) / float64(totalQuestions) * 100

	var strongTopics, weakTopics []string
	for _, topic := range topicOrder {
		stat := topicStats[topic]
		if stat.total < minTopicAttempts {
			continue
		}
		accuracy := float64(stat.correct) / float64(stat.total) * 100
		if accuracy >= strongTopicAccuracy {
			strongTopics = append(strongTopics, topic)
		} else if accuracy < weakTopicAccuracy {
			weakTopics = append(weakTopics, topic)
		}
	}

	previousWeek, err := repository.GetWeeklyByStart(tx, userID, weekStart.AddDate(0, 0, -7))
	if err != nil {
		return err
	}

	improvementRate := 0.0
	if previousWeek != nil {
		improvementRate = averageAccuracy - previousWeek.AverageAccuracy
	}

	row := &models.WeeklyAnalysis{
		UserID:          userID,
		WeekStartDate:   weekStart,
		WeekEndDate:     weekEnd,
		TotalQuestions:  totalQuestions,
		CorrectAnswers:  correctAnswers,
		TotalTimeSpent:  totalTime,
		AverageAccuracy: averageAccuracy,
		StrongTopics:    strings.Join(strongTopics, ", "),
		WeakTopics:      strings.Join(weakTopics, ", "),
		ImprovementRate: improvementRate,
	}

	return repository.UpsertWeekly(tx, row)
}
