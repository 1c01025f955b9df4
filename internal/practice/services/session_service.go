package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"github.com/architect/math-prep/internal/practice/repository"
)

// StartSession opens a new practice session.
func StartSession(userID string, req models.CreateSessionRequest) (*models.PracticeSession, error) {
	session := &models.PracticeSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		SessionType:    req.SessionType,
		FocusTopics:    req.FocusTopics,
		ExamSimulation: req.ExamSimulation,
		StartedAt:      time.Now(),
	}

	if err := repository.CreateSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// CompleteSession records final totals and stamps the completion time.
func CompleteSession(userID, id string, req models.CompleteSessionRequest) (*models.PracticeSession, error) {
	session, err := repository.GetSessionByID(userID, id)
	if err != nil {
		return nil, err
	}

	if session.CompletedAt != nil {
		return nil, errors.Conflict("session already completed")
	}
	if req.CorrectAnswers > req.TotalQuestions {
		return nil, errors.BadRequest("correct answers cannot exceed total questions")
	}

	now := time.Now()
	session.CompletedAt = &now
	session.TotalQuestions = req.TotalQuestions
	session.CorrectAnswers = req.CorrectAnswers

	if err := repository.UpdateSession(session); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSessions lists the user's sessions newest-first.
func GetSessions(userID string, limit int) ([]models.PracticeSession, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return repository.ListSessions(userID, limit)
}
