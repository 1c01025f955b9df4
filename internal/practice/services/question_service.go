package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"github.com/architect/math-prep/internal/practice/repository"
	"github.com/architect/math-prep/pkg/logger"
	"go.uber.org/zap"
)

// GetQuestions lists library questions with filters applied.
func GetQuestions(filters models.QuestionFilters) ([]models.Question, int64, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Limit > 1000 {
		filters.Limit = 1000
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return repository.ListQuestions(filters)
}

// GetQuestion fetches a single question with options.
func GetQuestion(id string) (*models.Question, error) {
	return repository.GetQuestionByID(id)
}

// CreateQuestion adds a question to the library. A question must carry an
// answer key in exactly one form: a canonical answer for fill-in, or an
// option set with a correct flag for multiple choice.
func CreateQuestion(req models.CreateQuestionRequest) (*models.Question, error) {
	hasCanonical := req.CorrectAnswer != nil && strings.TrimSpace(*req.CorrectAnswer) != ""
	hasOptions := len(req.Options) > 0

	if !hasCanonical && !hasOptions {
		return nil, errors.BadRequest("question must have either a correct answer or options")
	}
	if hasCanonical && hasOptions {
		return nil, errors.BadRequest("question cannot have both a correct answer and options")
	}

	if hasOptions {
		correctCount := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correctCount++
			}
		}
		if correctCount != 1 {
			return nil, errors.BadRequest("exactly one option must be marked correct")
		}
	}

	question := &models.Question{
		ID:            uuid.NewString(),
		ExamName:      req.ExamName,
		ExamYear:      req.ExamYear,
		QuestionText:  req.QuestionText,
		CorrectAnswer: req.CorrectAnswer,
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, models.QuestionOption{
			OptionLetter: strings.ToUpper(opt.OptionLetter),
			OptionText:   opt.OptionText,
			IsCorrect:    opt.IsCorrect,
		})
	}

	if err := repository.CreateQuestion(question); err != nil {
		return nil, err
	}

	return question, nil
}

// UpdateQuestion applies partial updates to a question.
func UpdateQuestion(id string, req models.UpdateQuestionRequest) (*models.Question, error) {
	question, err := repository.GetQuestionByID(id)
	if err != nil {
		return nil, err
	}

	if req.ExamName != nil {
		question.ExamName = *req.ExamName
	}
	if req.ExamYear != nil {
		question.ExamYear = req.ExamYear
	}
	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = req.CorrectAnswer
	}
	if req.Topic != nil {
		question.Topic = *req.Topic
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}

	if err := repository.UpdateQuestion(question); err != nil {
		return nil, err
	}

	return question, nil
}

// DeleteQuestion soft-deletes a question. Existing attempts keep counting
// toward rollups; the question just stops being served.
func DeleteQuestion(id string) error {
	return repository.DeleteQuestion(id)
}

// RepairDuplicateCorrectOptions finds questions where bad data left more
// than one option flagged correct and demotes all but the first, matching
// the evaluator's first-match policy. Returns the number of repaired
// questions.
func RepairDuplicateCorrectOptions() (int, error) {
	ids, err := repository.QuestionsWithDuplicateCorrectOptions()
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range ids {
		demoted, err := repository.DemoteExtraCorrectOptions(id)
		if err != nil {
			return repaired, err
		}
		if demoted > 0 {
			repaired++
			logger.Info("repaired question with duplicate correct options",
				zap.String("question_id", id),
				zap.Int64("options_demoted", demoted),
			)
		}
	}

	return repaired, nil
}
