package models

import (
	"time"
)

// Rollup models. Every row here is derived state recomputed in full from
// the attempt log inside the submission transaction; none of it is edited
// directly.

// DailyProgress is the per-calendar-day rollup, one row per (user, day).
type DailyProgress struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             string    `gorm:"not null;uniqueIndex:idx_daily_user_date" json:"user_id"`
	Date               time.Time `gorm:"not null;uniqueIndex:idx_daily_user_date" json:"date"`
	QuestionsAttempted int       `gorm:"default:0" json:"questions_attempted"`
	CorrectAnswers     int       `gorm:"default:0" json:"correct_answers"`
	TotalTimeSpent     int       `gorm:"default:0" json:"total_time_spent"` // seconds
	AverageAccuracy    float64   `gorm:"default:0" json:"average_accuracy"` // percentage
	TopicsStudied      string    `json:"topics_studied"`
	StreakDays         int       `gorm:"default:0" json:"streak_days"`
	IsStreakDay        bool      `gorm:"default:false" json:"is_streak_day"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TopicPerformance is the lifetime per-topic rollup, one row per (user, topic).
type TopicPerformance struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"not null;uniqueIndex:idx_topic_user_topic" json:"user_id"`
	Topic           string    `gorm:"not null;uniqueIndex:idx_topic_user_topic" json:"topic"`
	TotalAttempts   int       `gorm:"default:0" json:"total_attempts"`
	CorrectAttempts int       `gorm:"default:0" json:"correct_attempts"`
	Accuracy        float64   `gorm:"default:0" json:"accuracy"`     // percentage
	AverageTime     int       `gorm:"default:0" json:"average_time"` // seconds, rounded
	LastPracticed   time.Time `json:"last_practiced"`
	StrengthLevel   string    `json:"strength_level"` // BEGINNER, INTERMEDIATE, ADVANCED, EXPERT
	NeedsPractice   bool      `gorm:"default:false" json:"needs_practice"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Achievement criteria types.
const (
	CriteriaTotalQuestions = "total_questions"
	CriteriaCorrectAnswers = "correct_answers"
	CriteriaStreakDays     = "streak_days"
)

// Achievement is one entry of the static badge catalog.
type Achievement struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"` // milestone, accuracy, streak
	Tier           int       `gorm:"default:1" json:"tier"`
	Points         int       `gorm:"default:0" json:"points"`
	CriteriaType   string    `gorm:"not null" json:"criteria_type"`
	CriteriaTarget int       `gorm:"not null" json:"criteria_target"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserAchievement tracks per-user progress toward one achievement.
// Progress 100 means earned; earned status is monotonic and never revoked.
type UserAchievement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        string       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Progress      int          `gorm:"default:0" json:"progress"` // 0-100
	EarnedAt      *time.Time   `json:"earned_at,omitempty"`
	Achievement   *Achievement `json:"achievement,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// WeeklyAnalysis is the per-week rollup, one row per (user, week-start),
// refined progressively as attempts land during the week.
type WeeklyAnalysis struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"not null;uniqueIndex:idx_weekly_user_week" json:"user_id"`
	WeekStartDate   time.Time `gorm:"not null;uniqueIndex:idx_weekly_user_week" json:"week_start_date"`
	WeekEndDate     time.Time `json:"week_end_date"`
	TotalQuestions  int       `gorm:"default:0" json:"total_questions"`
	CorrectAnswers  int       `gorm:"default:0" json:"correct_answers"`
	TotalTimeSpent  int       `gorm:"default:0" json:"total_time_spent"`
	AverageAccuracy float64   `gorm:"default:0" json:"average_accuracy"`
	StrongTopics    string    `json:"strong_topics"`
	WeakTopics      string    `json:"weak_topics"`
	ImprovementRate float64   `gorm:"default:0" json:"improvement_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Response Models

type OverallStats struct {
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	Accuracy       int `json:"accuracy"` // rounded percentage
	CurrentStreak  int `json:"currentStreak"`
}

type RecentActivity struct {
	QuestionsAttempted int `json:"questionsAttempted"`
	CorrectAnswers     int `json:"correctAnswers"`
}

type SessionSummary struct {
	ID             string     `json:"id"`
	SessionType    string     `json:"sessionType"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
}

// ProgressOverview is the aggregate progress dashboard payload.
type ProgressOverview struct {
	Overall          OverallStats       `json:"overall"`
	DailyProgress    []DailyProgress    `json:"dailyProgress"`
	TopicPerformance []TopicPerformance `json:"topicPerformance"`
	RecentSessions   []SessionSummary   `json:"recentSessions"`
	RecentActivity   RecentActivity     `json:"recentActivity"`
}

// DailyHistory is the N-day history payload.
type DailyHistory struct {
	DailyProgress      []DailyProgress `json:"dailyProgress"`
	CurrentStreak      int             `json:"currentStreak"`
	QuestionsAttempted int             `json:"totalQuestionsAttempted"`
	CorrectAnswers     int             `json:"totalCorrectAnswers"`
	TotalTimeSpent     int             `json:"totalTimeSpent"`
	AverageAccuracy    float64         `json:"averageAccuracy"`
}

// AchievementStatus merges one catalog entry with the user's progress.
type AchievementStatus struct {
	Achievement
	Progress int        `json:"progress"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// AchievementList is the achievements endpoint payload.
type AchievementList struct {
	Achievements []AchievementStatus `json:"achievements"`
	Stats        OverallStats        `json:"stats"`
}
