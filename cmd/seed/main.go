package main

import (
	"flag"
	"log"

	"github.com/google/uuid"

	"github.com/architect/math-prep/internal/common/database"
	practiceModels "github.com/architect/math-prep/internal/practice/models"
	practiceServices "github.com/architect/math-prep/internal/practice/services"
	progressModels "github.com/architect/math-prep/internal/progress/models"
	"github.com/architect/math-prep/internal/progress/repository"
	"github.com/architect/math-prep/pkg/config"
	"github.com/architect/math-prep/pkg/logger"
)

func main() {
	sample := flag.Bool("sample", false, "Insert a small sample question set")
	repair := flag.Bool("repair", false, "Demote duplicate correct-option flags")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.InitWithType(cfg.Database.Type, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Schema migrated")

	if err := repository.SeedAchievements(achievementCatalog()); err != nil {
		log.Fatalf("Failed to seed achievements: %v", err)
	}
	log.Printf("Seeded %d achievements", len(achievementCatalog()))

	if *sample {
		if err := seedSampleQuestions(); err != nil {
			log.Fatalf("Failed to seed sample questions: %v", err)
		}
		log.Println("Seeded sample questions")
	}

	if *repair {
		repaired, err := practiceServices.RepairDuplicateCorrectOptions()
		if err != nil {
			log.Fatalf("Repair pass failed: %v", err)
		}
		log.Printf("Repaired %d questions with duplicate correct options", repaired)
	}
}

// achievementCatalog is the built-in badge set. Ids are stable so reseeding
// updates names and targets without duplicating rows.
func achievementCatalog() []progressModels.Achievement {
	return []progressModels.Achievement{
		{ID: "first-steps", Name: "First Steps", Description: "Answer your first question", Category: "milestone", Tier: 1, Points: 10, CriteriaType: progressModels.CriteriaTotalQuestions, CriteriaTarget: 1},
		{ID: "getting-started", Name: "Getting Started", Description: "Answer 10 questions", Category: "milestone", Tier: 1, Points: 25, CriteriaType: progressModels.CriteriaTotalQuestions, CriteriaTarget: 10},
		{ID: "half-century", Name: "Half Century", Description: "Answer 50 questions", Category: "milestone", Tier: 2, Points: 50, CriteriaType: progressModels.CriteriaTotalQuestions, CriteriaTarget: 50},
		{ID: "century", Name: "Century", Description: "Answer 100 questions", Category: "milestone", Tier: 3, Points: 100, CriteriaType: progressModels.CriteriaTotalQuestions, CriteriaTarget: 100},
		{ID: "marathoner", Name: "Marathoner", Description: "Answer 250 questions", Category: "milestone", Tier: 4, Points: 250, CriteriaType: progressModels.CriteriaTotalQuestions, CriteriaTarget: 250},
		{ID: "sharp-shooter", Name: "Sharp Shooter", Description: "Get 25 answers right", Category: "accuracy", Tier: 2, Points: 50, CriteriaType: progressModels.CriteriaCorrectAnswers, CriteriaTarget: 25},
		{ID: "ace", Name: "Ace", Description: "Get 100 answers right", Category: "accuracy", Tier: 3, Points: 150, CriteriaType: progressModels.CriteriaCorrectAnswers, CriteriaTarget: 100},
		{ID: "on-a-roll", Name: "On a Roll", Description: "Practice 3 days in a row", Category: "streak", Tier: 1, Points: 30, CriteriaType: progressModels.CriteriaStreakDays, CriteriaTarget: 3},
		{ID: "week-warrior", Name: "Week Warrior", Description: "Practice 7 days in a row", Category: "streak", Tier: 2, Points: 75, CriteriaType: progressModels.CriteriaStreakDays, CriteriaTarget: 7},
		{ID: "monthly-master", Name: "Monthly Master", Description: "Practice 30 days in a row", Category: "streak", Tier: 4, Points: 300, CriteriaType: progressModels.CriteriaStreakDays, CriteriaTarget: 30},
	}
}

func seedSampleQuestions() error {
	answer := func(s string) *string { return &s }
	year := func(y int) *int { return &y }

	questions := []practiceModels.Question{
		{
			ID:           uuid.NewString(),
			ExamName:     "AMC8",
			ExamYear:     year(2023),
			QuestionText: "What is the value of (8 × 4 + 2) − (8 + 4 × 2)?",
			Topic:        "arithmetic",
			Difficulty:   "easy",
			Options: []practiceModels.QuestionOption{
				{OptionLetter: "A", OptionText: "0", IsCorrect: false},
				{OptionLetter: "B", OptionText: "6", IsCorrect: false},
				{OptionLetter: "C", OptionText: "10", IsCorrect: false},
				{OptionLetter: "D", OptionText: "18", IsCorrect: true},
				{OptionLetter: "E", OptionText: "24", IsCorrect: false},
			},
		},
		{
			ID:           uuid.NewString(),
			ExamName:     "AMC8",
			ExamYear:     year(2023),
			QuestionText: "A rectangle has perimeter 36 and one side of length 4. What is its area?",
			Topic:        "geometry",
			Difficulty:   "medium",
			Options: []practiceModels.QuestionOption{
				{OptionLetter: "A", OptionText: "40", IsCorrect: false},
				{OptionLetter: "B", OptionText: "48", IsCorrect: false},
				{OptionLetter: "C", OptionText: "56", IsCorrect: true},
				{OptionLetter: "D", OptionText: "64", IsCorrect: false},
				{OptionLetter: "E", OptionText: "72", IsCorrect: false},
			},
		},
		{
			ID:            uuid.NewString(),
			ExamName:      "MOEMS",
			ExamYear:      year(2022),
			QuestionText:  "What is the smallest positive integer divisible by both 6 and 8?",
			CorrectAnswer: answer("24"),
			Topic:         "number theory",
			Difficulty:    "medium",
		},
		{
			ID:            uuid.NewString(),
			ExamName:      "Math Kangaroo",
			ExamYear:      year(2024),
			QuestionText:  "How many two-digit numbers have digits that sum to 10?",
			CorrectAnswer: answer("9"),
			Topic:         "counting",
			Difficulty:    "hard",
		},
	}

	return database.DB.Create(&questions).Error
}
