package repository

import (
	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"gorm.io/gorm"
)

// CreateSession starts a practice session.
func CreateSession(session *models.PracticeSession) error {
	result := database.DB.Create(session)
	if result.Error != nil {
		return errors.Internal("failed to create session", result.Error.Error())
	}
	return nil
}

// GetSessionByID fetches one session.
func GetSessionByID(userID, id string) (*models.PracticeSession, error) {
	var session models.PracticeSession
	result := database.DB.First(&session, "id = ? AND user_id = ?", id, userID)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("session")
		}
		return nil, errors.Internal("failed to fetch session", result.Error.Error())
	}

	return &session, nil
}

// ListSessions returns the user's sessions newest-first.
func ListSessions(userID string, limit int) ([]models.PracticeSession, error) {
	var sessions []models.PracticeSession
	result := database.DB.
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions)

	if result.Error != nil {
		return nil, errors.Internal("failed to fetch sessions", result.Error.Error())
	}

	return sessions, nil
}

// UpdateSession persists session changes.
func UpdateSession(session *models.PracticeSession) error {
	result := database.DB.Save(session)
	if result.Error != nil {
		return errors.Internal("failed to update session", result.Error.Error())
	}
	return nil
}
