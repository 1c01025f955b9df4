package repository

import (
	"strings"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/practice/models"
	"gorm.io/gorm"
)

// GetQuestionByID fetches a question with its options. Soft-deleted
// questions are treated as absent.
func GetQuestionByID(id string) (*models.Question, error) {
	var question models.Question
	result := database.DB.Preload("Options").First(&question, "id = ?", id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("question")
		}
		return nil, errors.Internal("failed to fetch question", result.Error.Error())
	}

	return &question, nil
}

// ListQuestions returns non-deleted questions matching the filters plus
// the total matching count.
func ListQuestions(filters models.QuestionFilters) ([]models.Question, int64, error) {
	query := database.DB.Model(&models.Question{})

	if filters.ExamName != "" {
		query = query.Where("exam_name = ?", filters.ExamName)
	}
	if filters.Topic != "" {
		query = query.Where("topic = ?", filters.Topic)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.ExamYear != nil {
		query = query.Where("exam_year = ?", *filters.ExamYear)
	}
	if filters.Search != "" {
		query = query.Where("question_text LIKE ?", "%"+strings.TrimSpace(filters.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal("failed to count questions", err.Error())
	}

	var questions []models.Question
	result := query.
		Preload("Options").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&questions)

	if result.Error != nil {
		return nil, 0, errors.Internal("failed to fetch questions", result.Error.Error())
	}

	return questions, total, nil
}

// CreateQuestion inserts a question and its options.
func CreateQuestion(question *models.Question) error {
	result := database.DB.Create(question)
	if result.Error != nil {
		return errors.Internal("failed to create question", result.Error.Error())
	}
	return nil
}

// UpdateQuestion persists changed question fields.
func UpdateQuestion(question *models.Question) error {
	result := database.DB.Save(question)
	if result.Error != nil {
		return errors.Internal("failed to update question", result.Error.Error())
	}
	return nil
}

// DeleteQuestion soft-deletes a question; its attempts keep referencing it.
func DeleteQuestion(id string) error {
	result := database.DB.Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return errors.Internal("failed to delete question", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("question")
	}
	return nil
}

// QuestionsWithDuplicateCorrectOptions returns ids of questions where more
// than one option is flagged correct. The evaluator tolerates these rows;
// the repair pass fixes them.
func QuestionsWithDuplicateCorrectOptions() ([]string, error) {
	var ids []string
	result := database.DB.Model(&models.QuestionOption{}).
		Select("question_id").
		Where("is_correct = ?", true).
		Group("question_id").
		Having("COUNT(*) > 1").
		Pluck("question_id", &ids)

	if result.Error != nil {
		return nil, errors.Internal("failed to scan for duplicate correct options", result.Error.Error())
	}

	return ids, nil
}

// DemoteExtraCorrectOptions keeps the first correct-flagged option of a
// question (by stored order, matching the evaluator's first-match policy)
// and clears the flag on the rest. Returns the number of demoted options.
func DemoteExtraCorrectOptions(questionID string) (int64, error) {
	var options []models.QuestionOption
	if err := database.DB.
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Order("id ASC").
		Find(&options).Error; err != nil {
		return 0, errors.Internal("failed to fetch options", err.Error())
	}

	if len(options) <= 1 {
		return 0, nil
	}

	extraIDs := make([]uint, 0, len(options)-1)
	for _, opt := range options[1:] {
		extraIDs = append(extraIDs, opt.ID)
	}

	result := database.DB.Model(&models.QuestionOption{}).
		Where("id IN ?", extraIDs).
		Update("is_correct", false)

	if result.Error != nil {
		return 0, errors.Internal("failed to demote options", result.Error.Error())
	}

	return result.RowsAffected, nil
}
