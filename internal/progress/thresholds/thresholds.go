// Package thresholds holds the topic-strength classification policy.
// The aggregators treat these cutoffs as opaque; tune them here (or via
// the STRENGTH_* environment variables) without touching aggregation code.
package thresholds

import (
	"time"

	"github.com/architect/math-prep/pkg/config"
)

// Strength levels, weakest to strongest.
const (
	Beginner     = "BEGINNER"
	Intermediate = "INTERMEDIATE"
	Advanced     = "ADVANCED"
	Expert       = "EXPERT"
)

// Thresholds are the volume and accuracy cutoffs for each tier.
type Thresholds struct {
	IntermediateAttempts int
	AdvancedAttempts     int
	ExpertAttempts       int
	IntermediateAccuracy float64
	AdvancedAccuracy     float64
	ExpertAccuracy       float64
	StaleDays            int
}

// Defaults returns the stock policy: intermediate at 5 attempts / 60%,
// advanced at 10 / 75%, expert at 20 / 90%, needs-practice after 7 idle days.
func Defaults() Thresholds {
	return Thresholds{
		IntermediateAttempts: 5,
		AdvancedAttempts:     10,
		ExpertAttempts:       20,
		IntermediateAccuracy: 60,
		AdvancedAccuracy:     75,
		ExpertAccuracy:       90,
		StaleDays:            7,
	}
}

// FromConfig builds the policy from loaded configuration.
func FromConfig(cfg config.ThresholdConfig) Thresholds {
	return Thresholds{
		IntermediateAttempts: cfg.IntermediateAttempts,
		AdvancedAttempts:     cfg.AdvancedAttempts,
		ExpertAttempts:       cfg.ExpertAttempts,
		IntermediateAccuracy: cfg.IntermediateAccuracy,
		AdvancedAccuracy:     cfg.AdvancedAccuracy,
		ExpertAccuracy:       cfg.ExpertAccuracy,
		StaleDays:            cfg.StaleDays,
	}
}

// DetermineStrengthLevel classifies topic mastery from attempt volume and
// accuracy (0-100). Higher tiers require both more attempts and higher
// accuracy; too few attempts always means BEGINNER.
func DetermineStrengthLevel(totalAttempts int, accuracy float64, th Thresholds) string {
	if totalAttempts < th.IntermediateAttempts {
		return Beginner
	}

	if totalAttempts >= th.ExpertAttempts {
		switch {
		case accuracy >= th.ExpertAccuracy:
			return Expert
		case accuracy >= th.AdvancedAccuracy:
			return Advanced
		case accuracy >= th.IntermediateAccuracy:
			return Intermediate
		}
		return Beginner
	}

	if totalAttempts >= th.AdvancedAttempts {
		switch {
		case accuracy >= th.AdvancedAccuracy:
			return Advanced
		case accuracy >= th.IntermediateAccuracy:
			return Intermediate
		}
		return Beginner
	}

	if accuracy >= th.IntermediateAccuracy {
		return Intermediate
	}
	return Beginner
}

// NeedsPractice flags a topic for review: accuracy below the intermediate
// cutoff, or no practice for StaleDays or more. A zero lastPracticed means
// the topic has never been practiced before and only accuracy counts.
func NeedsPractice(accuracy float64, lastPracticed time.Time, now time.Time, th Thresholds) bool {
	if accuracy < th.IntermediateAccuracy {
		return true
	}

	if !lastPracticed.IsZero() {
		daysSince := int(now.Sub(lastPracticed).Hours() / 24)
		if daysSince >= th.StaleDays {
			return true
		}
	}

	return false
}
