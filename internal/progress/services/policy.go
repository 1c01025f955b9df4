package services

import (
	"github.com/architect/math-prep/internal/progress/thresholds"
)

// policy is the strength/needs-practice classification in effect. The
// aggregators call into it blindly; main swaps in the configured cutoffs
// at startup.
var policy = thresholds.Defaults()

// SetPolicy installs the threshold policy for the topic aggregator.
func SetPolicy(th thresholds.Thresholds) {
	policy = th
}
