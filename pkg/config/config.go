package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	User       UserConfig
	Thresholds ThresholdConfig
}

type ServerConfig struct {
	Host string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Type string // "sqlite" or "postgres"
	DSN  string
	Path string // For SQLite: file path
}

// UserConfig identifies the single practice user. The app is deliberately
// single-user; every request runs on behalf of this identity.
type UserConfig struct {
	ID string
}

// ThresholdConfig carries the topic-strength policy cutoffs.
type ThresholdConfig struct {
	IntermediateAttempts int
	AdvancedAttempts     int
	ExpertAttempts       int
	IntermediateAccuracy float64
	AdvancedAccuracy     float64
	ExpertAccuracy       float64
	StaleDays            int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dbType := getEnv("DB_TYPE", "sqlite") // Default to SQLite for development
	dsn, dbPath := buildDSN(dbType)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Type: dbType,
			DSN:  dsn,
			Path: dbPath,
		},
		User: UserConfig{
			ID: getEnv("PRACTICE_USER_ID", "default-user"),
		},
		Thresholds: ThresholdConfig{
			IntermediateAttempts: getEnvInt("STRENGTH_INTERMEDIATE_ATTEMPTS", 5),
			AdvancedAttempts:     getEnvInt("STRENGTH_ADVANCED_ATTEMPTS", 10),
			ExpertAttempts:       getEnvInt("STRENGTH_EXPERT_ATTEMPTS", 20),
			IntermediateAccuracy: getEnvFloat("STRENGTH_INTERMEDIATE_ACCURACY", 60),
			AdvancedAccuracy:     getEnvFloat("STRENGTH_ADVANCED_ACCURACY", 75),
			ExpertAccuracy:       getEnvFloat("STRENGTH_EXPERT_ACCURACY", 90),
			StaleDays:            getEnvInt("NEEDS_PRACTICE_STALE_DAYS", 7),
		},
	}, nil
}

func buildDSN(dbType string) (string, string) {
	if dbType == "postgres" {
		// PostgreSQL configuration
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "math_prep")
		sslMode := getEnv("DB_SSLMODE", "disable")

		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbHost, dbPort, dbUser, dbPassword, dbName, sslMode,
		)
		return dsn, ""
	}

	// SQLite configuration (default for development)
	dbPath := getEnv("SQLITE_PATH", "./data/math_prep.db")
	dsn := dbPath + "?mode=rwc&cache=shared&timeout=5000"
	return dsn, dbPath
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
