package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/architect/math-prep/internal/common/errors"
	"github.com/architect/math-prep/internal/common/middleware"
	"github.com/architect/math-prep/internal/common/validation"
	"github.com/architect/math-prep/internal/practice/models"
	"github.com/architect/math-prep/internal/practice/services"
)

// bindingError converts a gin binding failure into a 400 with field detail.
func bindingError(err error) *errors.AppError {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		details := make([]validation.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, validation.ValidationError{
				Field:   fe.Field(),
				Message: "field must satisfy " + fe.Tag() + " constraint",
			})
		}
		return errors.Validation("validation failed", details)
	}
	return errors.Validation("invalid request body", err.Error())
}

// SubmitAttempt scores a submitted answer and records the attempt.
// POST /api/v1/attempts
func SubmitAttempt(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	var req models.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, bindingError(err))
		return
	}

	// Correctness is computed server-side; a client-supplied isCorrect is
	// never trusted.
	req.IsCorrect = nil

	response, err := services.SubmitAttempt(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAttempts lists attempts newest-first.
// GET /api/v1/attempts
func GetAttempts(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := services.GetAttempts(userID, page, pageSize)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQuestions lists library questions with filters.
// GET /api/v1/questions
func GetQuestions(c *gin.Context) {
	filters := models.QuestionFilters{
		ExamName:   c.Query("examName"),
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
	}
	if yearStr := c.Query("examYear"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filters.ExamYear = &year
		}
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	questions, total, err := services.GetQuestions(filters)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
	})
}

// GetQuestion fetches one question.
// GET /api/v1/questions/:id
func GetQuestion(c *gin.Context) {
	question, err := services.GetQuestion(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// CreateQuestion adds a question to the library.
// POST /api/v1/questions
func CreateQuestion(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, bindingError(err))
		return
	}

	question, err := services.CreateQuestion(req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion applies partial updates.
// PUT /api/v1/questions/:id
func UpdateQuestion(c *gin.Context) {
	var req models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, bindingError(err))
		return
	}

	question, err := services.UpdateQuestion(c.Param("id"), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion soft-deletes a question.
// DELETE /api/v1/questions/:id
func DeleteQuestion(c *gin.Context) {
	if err := services.DeleteQuestion(c.Param("id")); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// StartSession opens a practice session.
// POST /api/v1/sessions
func StartSession(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, bindingError(err))
		return
	}

	session, err := services.StartSession(userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"session": session,
	})
}

// GetSessions lists recent sessions.
// GET /api/v1/sessions
func GetSessions(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sessions, err := services.GetSessions(userID, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// CompleteSession stamps the session as finished with its totals.
// PUT /api/v1/sessions/:id/complete
func CompleteSession(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	var req models.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, bindingError(err))
		return
	}

	session, err := services.CompleteSession(userID, c.Param("id"), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}
