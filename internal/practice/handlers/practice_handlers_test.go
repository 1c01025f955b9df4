package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/architect/math-prep/internal/common/database"
	"github.com/architect/math-prep/internal/common/middleware"
	"github.com/architect/math-prep/internal/practice/models"
	progressModels "github.com/architect/math-prep/internal/progress/models"
)

const testUser = "test-user"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Question{},
		&models.QuestionOption{},
		&models.Attempt{},
		&models.PracticeSession{},
		&progressModels.DailyProgress{},
		&progressModels.TopicPerformance{},
		&progressModels.Achievement{},
		&progressModels.UserAchievement{},
		&progressModels.WeeklyAnalysis{},
	))

	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.UserIdentity(testUser))

	api := router.Group("/api/v1")
	{
		api.POST("/attempts", SubmitAttempt)
		api.GET("/attempts", GetAttempts)
		api.GET("/questions", GetQuestions)
		api.GET("/questions/:id", GetQuestion)
		api.POST("/questions", CreateQuestion)
		api.PUT("/questions/:id", UpdateQuestion)
		api.DELETE("/questions/:id", DeleteQuestion)
		api.POST("/sessions", StartSession)
		api.GET("/sessions", GetSessions)
		api.PUT("/sessions/:id/complete", CompleteSession)
	}

	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedMultipleChoice(t *testing.T, topic string) *models.Question {
	question := &models.Question{
		ID:           uuid.NewString(),
		ExamName:     "AMC8",
		QuestionText: "3 x 4 = ?",
		Topic:        topic,
		Difficulty:   "easy",
		Options: []models.QuestionOption{
			{OptionLetter: "A", OptionText: "7", IsCorrect: false},
			{OptionLetter: "B", OptionText: "12", IsCorrect: true},
		},
	}
	require.NoError(t, database.DB.Create(question).Error)
	return question
}

func TestSubmitAttemptEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	question := seedMultipleChoice(t, "arithmetic")

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"questionId":     question.ID,
		"selectedAnswer": "B",
		"timeSpent":      25,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response models.SubmitAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Attempt)
	assert.True(t, response.Attempt.IsCorrect)
	assert.Equal(t, testUser, response.Attempt.UserID)
}

func TestSubmitAttemptEndpoint_MissingFields(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"selectedAnswer": "B",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestSubmitAttemptEndpoint_TimeSpentOutOfRange(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	question := seedMultipleChoice(t, "arithmetic")

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"questionId":     question.ID,
		"selectedAnswer": "B",
		"timeSpent":      4000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Attempt{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitAttemptEndpoint_UnknownQuestion(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"questionId":     uuid.NewString(),
		"selectedAnswer": "A",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	database.DB.Model(&models.Attempt{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitAttemptEndpoint_MisconfiguredQuestion(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	// A question with neither options nor a canonical answer can only get
	// into the library through direct writes, but submissions against it
	// must still fail cleanly.
	question := &models.Question{
		ID:           uuid.NewString(),
		ExamName:     "AMC8",
		QuestionText: "unanswerable",
	}
	require.NoError(t, database.DB.Create(question).Error)

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"questionId":     question.ID,
		"selectedAnswer": "A",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "no correct answer")
}

func TestSubmitAttemptEndpoint_ClientIsCorrectIgnored(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	question := seedMultipleChoice(t, "arithmetic")

	w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
		"questionId":     question.ID,
		"selectedAnswer": "A", // wrong
		"isCorrect":      true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response models.SubmitAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Attempt.IsCorrect)
}

func TestQuestionLifecycle(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	// Create.
	w := performJSON(router, http.MethodPost, "/api/v1/questions", gin.H{
		"examName":     "MOEMS",
		"questionText": "What is 5 + 5?",
		"topic":        "arithmetic",
		"difficulty":   "easy",
		"options": []gin.H{
			{"optionLetter": "a", "optionText": "10", "isCorrect": true},
			{"optionLetter": "b", "optionText": "11", "isCorrect": false},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "A", created.Options[0].OptionLetter) // letters are normalized

	// Read back.
	w = performJSON(router, http.MethodGet, "/api/v1/questions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Update.
	w = performJSON(router, http.MethodPut, "/api/v1/questions/"+created.ID, gin.H{
		"topic": "number theory",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "number theory", updated.Topic)

	// Delete, then the question is gone from reads.
	w = performJSON(router, http.MethodDelete, "/api/v1/questions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodGet, "/api/v1/questions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuestion_RejectsBothAnswerForms(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/questions", gin.H{
		"examName":      "AMC8",
		"questionText":  "ambiguous",
		"correctAnswer": "12",
		"options": []gin.H{
			{"optionLetter": "A", "optionText": "12", "isCorrect": true},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuestion_RequiresExactlyOneCorrectOption(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/questions", gin.H{
		"examName":     "AMC8",
		"questionText": "two right answers",
		"options": []gin.H{
			{"optionLetter": "A", "optionText": "1", "isCorrect": true},
			{"optionLetter": "B", "optionText": "2", "isCorrect": true},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuestionsFilters(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	seedMultipleChoice(t, "arithmetic")
	other := &models.Question{
		ID:           uuid.NewString(),
		ExamName:     "Math Kangaroo",
		QuestionText: "geometry fixture",
		Topic:        "geometry",
	}
	answer := "42"
	other.CorrectAnswer = &answer
	require.NoError(t, database.DB.Create(other).Error)

	w := performJSON(router, http.MethodGet, "/api/v1/questions?topic=geometry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Questions []models.Question `json:"questions"`
		Total     int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	require.Len(t, body.Questions, 1)
	assert.Equal(t, "geometry", body.Questions[0].Topic)
}

func TestGetAttemptsEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	question := seedMultipleChoice(t, "arithmetic")
	for _, answer := range []string{"A", "B", "B"} {
		w := performJSON(router, http.MethodPost, "/api/v1/attempts", gin.H{
			"questionId":     question.ID,
			"selectedAnswer": answer,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := performJSON(router, http.MethodGet, "/api/v1/attempts?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []models.Attempt `json:"data"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Total)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.TotalPages)
}

func TestSessionLifecycle(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/sessions", gin.H{
		"sessionType": "practice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var startBody struct {
		Session models.PracticeSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &startBody))
	require.NotEmpty(t, startBody.Session.ID)

	w = performJSON(router, http.MethodPut, "/api/v1/sessions/"+startBody.Session.ID+"/complete", gin.H{
		"totalQuestions": 10,
		"correctAnswers": 8,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Completing twice conflicts.
	w = performJSON(router, http.MethodPut, "/api/v1/sessions/"+startBody.Session.ID+"/complete", gin.H{
		"totalQuestions": 10,
		"correctAnswers": 8,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteSession_CorrectCannotExceedTotal(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := performJSON(router, http.MethodPost, "/api/v1/sessions", gin.H{
		"sessionType": "practice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var startBody struct {
		Session models.PracticeSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &startBody))

	w = performJSON(router, http.MethodPut, "/api/v1/sessions/"+startBody.Session.ID+"/complete", gin.H{
		"totalQuestions": 5,
		"correctAnswers": 8,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
