package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"github.com/architect/math-prep/internal/practice/repository"
	progress "github.com/architect/math-prep/internal/progress/services"
)

// EvaluateAnswer decides correctness of a submitted answer against the
// question's answer key. The server is the sole authority here; any
// correctness claim in the request is discarded before this runs.
//
// Multiple-choice: the submission must match the letter of an option
// flagged correct. When bad data leaves several options flagged correct,
// the first match in stored order wins; the offline repair pass
// (cmd/seed --repair) fixes the underlying rows.
// Fill-in: case-insensitive comparison, surrounding whitespace ignored.
// A question with neither options nor a canonical answer cannot be scored
// and is a configuration error, not a wrong answer.
func EvaluateAnswer(question *models.Question, selectedAnswer string) (bool, error) {
	if len(question.Options) > 0 {
		for _, opt := range question.Options {
			if opt.OptionLetter == selectedAnswer {
				return opt.IsCorrect, nil
			}
		}
		return false, nil
	}

	if question.CorrectAnswer != nil && *question.CorrectAnswer != "" {
		submitted := strings.TrimSpace(selectedAnswer)
		expected := strings.TrimSpace(*question.CorrectAnswer)
		return strings.EqualFold(submitted, expected), nil
	}

	return false, errors.BadRequest("question has no correct answer configured")
}

// SubmitAttempt runs the full submission pipeline: evaluate, record the
// attempt, then recompute the daily, topic, achievement and weekly rollups.
// Everything after evaluation happens in one transaction; a failure in any
// aggregator rolls back the attempt too, since a fact without its rollups
// (or worse, half of them) would leave derived state inconsistent.
func SubmitAttempt(userID string, req models.SubmitAttemptRequest) (*models.SubmitAttemptResponse, error) {
	question, err := repository.GetQuestionByID(req.QuestionID)
	if err != nil {
		return nil, err
	}

	isCorrect, err := EvaluateAnswer(question, req.SelectedAnswer)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	attempt := &models.Attempt{
		ID:             uuid.NewString(),
		UserID:         userID,
		QuestionID:     question.ID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      req.TimeSpent,
		SessionID:      req.SessionID,
		AttemptedAt:    now,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := repository.CreateAttempt(tx, attempt); err != nil {
			return err
		}

		// Daily must run before achievements: the streak criteria read the
		// streak counter the daily recompute just wrote.
		if err := progress.RecomputeDailyProgress(tx, userID, now); err != nil {
			return err
		}
		if err := progress.RecomputeTopicPerformance(tx, userID, question.Topic, now); err != nil {
			return err
		}
		if err := progress.EvaluateAchievements(tx, userID, now); err != nil {
			return err
		}
		return progress.RecomputeWeeklyAnalysis(tx, userID, now)
	})
	if err != nil {
		return nil, err
	}

	attempt.Question = question
	return &models.SubmitAttemptResponse{
		Success: true,
		Attempt: attempt,
	}, nil
}

// GetAttempts lists the user's attempts newest-first.
func GetAttempts(userID string, page, pageSize int) (*database.PaginatedResult, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	attempts, total, err := repository.ListAttempts(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result := &database.PaginatedResult{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Data:     attempts,
	}
	result.Calculate()
	return result, nil
}
