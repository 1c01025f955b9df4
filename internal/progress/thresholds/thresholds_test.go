package thresholds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetermineStrengthLevel(t *testing.T) {
	th := Defaults()

	tests := []struct {
		name     string
		attempts int
		accuracy float64
		expected string
	}{
		{"no attempts", 0, 0, Beginner},
		{"few attempts high accuracy", 4, 100, Beginner},
		{"intermediate volume and accuracy", 5, 60, Intermediate},
		{"intermediate volume low accuracy", 5, 59, Beginner},
		{"intermediate volume advanced accuracy stays intermediate", 5, 80, Intermediate},
		{"advanced volume and accuracy", 10, 75, Advanced},
		{"advanced volume intermediate accuracy", 10, 65, Intermediate},
		{"advanced volume expert accuracy stays advanced", 15, 95, Advanced},
		{"expert volume and accuracy", 20, 90, Expert},
		{"expert volume advanced accuracy", 20, 80, Advanced},
		{"expert volume intermediate accuracy", 25, 60, Intermediate},
		{"expert volume low accuracy", 25, 30, Beginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetermineStrengthLevel(tt.attempts, tt.accuracy, th)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNeedsPractice(t *testing.T) {
	th := Defaults()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		accuracy      float64
		lastPracticed time.Time
		expected      bool
	}{
		{"low accuracy always needs practice", 50, now.AddDate(0, 0, -1), true},
		{"good accuracy practiced recently", 80, now.AddDate(0, 0, -2), false},
		{"good accuracy stale practice", 80, now.AddDate(0, 0, -8), true},
		{"good accuracy exactly at cutoff", 80, now.AddDate(0, 0, -7), true},
		{"good accuracy never practiced before", 80, time.Time{}, false},
		{"boundary accuracy not flagged", 60, now.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NeedsPractice(tt.accuracy, tt.lastPracticed, now, th)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCustomThresholds(t *testing.T) {
	th := Thresholds{
		IntermediateAttempts: 2,
		AdvancedAttempts:     4,
		ExpertAttempts:       6,
		IntermediateAccuracy: 50,
		AdvancedAccuracy:     70,
		ExpertAccuracy:       85,
		StaleDays:            3,
	}

	assert.Equal(t, Expert, DetermineStrengthLevel(6, 85, th))
	assert.Equal(t, Intermediate, DetermineStrengthLevel(2, 50, th))

	now := time.Now()
	assert.True(t, NeedsPractice(90, now.AddDate(0, 0, -3), now, th))
	assert.False(t, NeedsPractice(90, now.AddDate(0, 0, -2), now, th))
}
