package handlers

import (
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
	practiceModels "github.com/architect/math-prep/internal/practice/models"
	practiceServices "github.com/architect/math-prep/internal/practice/services"
	"github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
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
		&practiceModels.Question{},
		&practiceModels.QuestionOption{},
		&practiceModels.Attempt{},
		&practiceModels.PracticeSession{},
		&models.DailyProgress{},
		&models.TopicPerformance{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.WeeklyAnalysis{},
	))

	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.UserIdentity(testUser))

	api := router.Group("/api/v1")
	{
		api.GET("/progress", GetProgress)
		api.GET("/progress/daily", GetDailyProgress)
		api.GET("/progress/weekly", GetWeeklyAnalysis)
		api.GET("/progress/topics", GetTopicPerformance)
		api.GET("/achievements", GetAchievements)
	}

	return router
}

func perform(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// submitAnswers drives the real submission pipeline so the rollups the
// endpoints serve come from the same code path production uses.
func submitAnswers(t *testing.T, topic string, results []bool) {
	question := &practiceModels.Question{
		ID:           uuid.NewString(),
		ExamName:     "AMC8",
		QuestionText: "fixture",
		Topic:        topic,
		Difficulty:   "easy",
		Options: []practiceModels.QuestionOption{
			{OptionLetter: "A", OptionText: "right", IsCorrect: true},
			{OptionLetter: "B", OptionText: "wrong", IsCorrect: false},
		},
	}
	require.NoError(t, database.DB.Create(question).Error)

	for _, correct := range results {
		answer := "B"
		if correct {
			answer = "A"
		}
		_, err := practiceServices.SubmitAttempt(testUser, practiceModels.SubmitAttemptRequest{
			QuestionID:     question.ID,
			SelectedAnswer: answer,
			TimeSpent:      15,
		})
		require.NoError(t, err)
	}
}

func TestGetProgressEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	submitAnswers(t, "algebra", []bool{true, true, false})

	w := perform(router, "/api/v1/progress")
	require.Equal(t, http.StatusOK, w.Code)

	var overview models.ProgressOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))

	assert.Equal(t, 3, overview.Overall.TotalQuestions)
	assert.Equal(t, 2, overview.Overall.CorrectAnswers)
	assert.Equal(t, 67, overview.Overall.Accuracy)
	assert.Equal(t, 1, overview.Overall.CurrentStreak)
	require.Len(t, overview.TopicPerformance, 1)
	assert.Equal(t, "algebra", overview.TopicPerformance[0].Topic)
	assert.Equal(t, 3, overview.RecentActivity.QuestionsAttempted)
}

func TestGetProgressEndpoint_EmptyState(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	w := perform(router, "/api/v1/progress")
	require.Equal(t, http.StatusOK, w.Code)

	var overview models.ProgressOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))

	assert.Equal(t, 0, overview.Overall.TotalQuestions)
	assert.Equal(t, 0, overview.Overall.Accuracy)
	assert.Equal(t, 0, overview.Overall.CurrentStreak)
	assert.Empty(t, overview.TopicPerformance)
}

func TestGetDailyProgressEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	submitAnswers(t, "geometry", []bool{true, false})

	w := perform(router, "/api/v1/progress/daily?days=7")
	require.Equal(t, http.StatusOK, w.Code)

	var history models.DailyHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))

	require.Len(t, history.DailyProgress, 1)
	assert.Equal(t, 2, history.QuestionsAttempted)
	assert.Equal(t, 1, history.CorrectAnswers)
	assert.Equal(t, 50.0, history.AverageAccuracy)
	assert.Equal(t, 1, history.CurrentStreak)
}

func TestGetWeeklyAnalysisEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	submitAnswers(t, "algebra", []bool{true})

	w := perform(router, "/api/v1/progress/weekly")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		WeeklyAnalysis []models.WeeklyAnalysis `json:"weeklyAnalysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.WeeklyAnalysis, 1)
	assert.Equal(t, 1, body.WeeklyAnalysis[0].TotalQuestions)
}

func TestGetTopicPerformanceEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	submitAnswers(t, "algebra", []bool{true, true})
	submitAnswers(t, "geometry", []bool{false})

	w := perform(router, "/api/v1/progress/topics")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TopicPerformance []models.TopicPerformance `json:"topicPerformance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.TopicPerformance, 2)
}

func TestGetAchievementsEndpoint(t *testing.T) {
	database.DB = setupTestDB(t)
	router := setupRouter()

	require.NoError(t, repository.SeedAchievements([]models.Achievement{
		{ID: "first-steps", Name: "First Steps", CriteriaType: models.CriteriaTotalQuestions, CriteriaTarget: 1},
		{ID: "ten-questions", Name: "Ten Questions", CriteriaType: models.CriteriaTotalQuestions, CriteriaTarget: 10},
	}))

	submitAnswers(t, "algebra", []bool{true})

	w := perform(router, "/api/v1/achievements")
	require.Equal(t, http.StatusOK, w.Code)

	var list models.AchievementList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

	require.Len(t, list.Achievements, 2)
	byID := map[string]models.AchievementStatus{}
	for _, status := range list.Achievements {
		byID[status.Achievement.ID] = status
	}

	assert.True(t, byID["first-steps"].Earned)
	assert.NotNil(t, byID["first-steps"].EarnedAt)
	assert.False(t, byID["ten-questions"].Earned)
	assert.Equal(t, 10, byID["ten-questions"].Progress)

	assert.Equal(t, 1, list.Stats.TotalQuestions)
	assert.Equal(t, 1, list.Stats.CurrentStreak)
}
