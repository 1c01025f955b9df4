package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is one competition problem in the library (AMC8, MOEMS,
// Math Kangaroo). Multiple-choice questions carry Options; fill-in
// questions carry CorrectAnswer. Scoring requires exactly one of the two.
type Question struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	ExamName      string           `gorm:"index" json:"exam_name"`
	ExamYear      *int             `json:"exam_year,omitempty"`
	QuestionText  string           `gorm:"not null" json:"question_text"`
	CorrectAnswer *string          `json:"correct_answer,omitempty"`
	Topic         string           `gorm:"index" json:"topic"`
	Difficulty    string           `json:"difficulty"` // easy, medium, hard
	Options       []QuestionOption `gorm:"constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// QuestionOption is one labeled choice of a multiple-choice question.
type QuestionOption struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	QuestionID   string `gorm:"not null;index" json:"question_id"`
	OptionLetter string `gorm:"not null" json:"option_letter"`
	OptionText   string `json:"option_text"`
	IsCorrect    bool   `json:"is_correct"`
}

// Attempt is one immutable record of the user answering one question.
// Correctness is always computed server-side; rollups are derived from
// the non-deleted attempts and never edited independently.
type Attempt struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"not null;index" json:"user_id"`
	QuestionID     string         `gorm:"not null;index" json:"question_id"`
	SelectedAnswer string         `json:"selected_answer"`
	IsCorrect      bool           `json:"is_correct"`
	TimeSpent      int            `json:"time_spent"` // seconds
	SessionID      *string        `gorm:"index" json:"session_id,omitempty"`
	AttemptedAt    time.Time      `gorm:"index" json:"attempted_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Question       *Question      `json:"question,omitempty"`
}

// PracticeSession groups attempts made in one sitting.
type PracticeSession struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"not null;index" json:"user_id"`
	SessionType    string     `json:"session_type"` // practice, timed, exam_simulation
	FocusTopics    string     `json:"focus_topics,omitempty"`
	ExamSimulation string     `json:"exam_simulation,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Request/Response Models

// SubmitAttemptRequest is the inbound body for attempt submission.
// IsCorrect is accepted for backwards compatibility with older clients
// but never trusted; the server recomputes correctness from the answer key.
type SubmitAttemptRequest struct {
	QuestionID     string  `json:"questionId" binding:"required"`
	SelectedAnswer string  `json:"selectedAnswer" binding:"required"`
	TimeSpent      int     `json:"timeSpent" binding:"gte=0,lte=3600"`
	SessionID      *string `json:"sessionId"`
	IsCorrect      *bool   `json:"isCorrect"` // ignored
}

type SubmitAttemptResponse struct {
	Success bool     `json:"success"`
	Attempt *Attempt `json:"attempt"`
}

type CreateOptionRequest struct {
	OptionLetter string `json:"optionLetter" binding:"required,len=1"`
	OptionText   string `json:"optionText"`
	IsCorrect    bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	ExamName      string                `json:"examName" binding:"required"`
	ExamYear      *int                  `json:"examYear"`
	QuestionText  string                `json:"questionText" binding:"required"`
	CorrectAnswer *string               `json:"correctAnswer"`
	Topic         string                `json:"topic"`
	Difficulty    string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Options       []CreateOptionRequest `json:"options" binding:"dive"`
}

type UpdateQuestionRequest struct {
	ExamName      *string `json:"examName"`
	ExamYear      *int    `json:"examYear"`
	QuestionText  *string `json:"questionText"`
	CorrectAnswer *string `json:"correctAnswer"`
	Topic         *string `json:"topic"`
	Difficulty    *string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// QuestionFilters narrows the library listing.
type QuestionFilters struct {
	ExamName   string
	Topic      string
	Difficulty string
	ExamYear   *int
	Search     string
	Limit      int
	Offset     int
}

type CreateSessionRequest struct {
	SessionType    string `json:"sessionType" binding:"required,oneof=practice timed exam_simulation"`
	FocusTopics    string `json:"focusTopics"`
	ExamSimulation string `json:"examSimulation"`
}

type CompleteSessionRequest struct {
	TotalQuestions int `json:"totalQuestions" binding:"gte=0"`
	CorrectAnswers int `json:"correctAnswers" binding:"gte=0"`
}
