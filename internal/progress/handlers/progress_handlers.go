package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/architect/math-prep/internal/common/middleware"
	"github.com/architect/math-prep/internal/progress/services"
)

// GetProgress returns the aggregate progress dashboard.
// GET /api/v1/progress
func GetProgress(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	overview, err := services.GetProgressOverview(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetDailyProgress returns per-day rollups for the last N days.
// GET /api/v1/progress/daily
func GetDailyProgress(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	history, err := services.GetDailyHistory(userID, days)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetWeeklyAnalysis returns weekly rollups for the last N weeks.
// GET /api/v1/progress/weekly
func GetWeeklyAnalysis(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "12"))

	rows, err := services.GetWeeklyHistory(userID, weeks)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeklyAnalysis": rows})
}

// GetTopicPerformance returns the per-topic rollup table.
// GET /api/v1/progress/topics
func GetTopicPerformance(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	rows, err := services.GetTopicTable(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topicPerformance": rows})
}

// GetAchievements returns the catalog merged with the user's progress.
// GET /api/v1/achievements
func GetAchievements(c *gin.Context) {
	userID := middleware.CurrentUser(c)

	list, err := services.GetAchievements(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
