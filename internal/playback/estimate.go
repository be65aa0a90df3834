package playback

import (
	"strings"
	"time"
)

// Estimator computes how long a narration is expected to take. The
// narrator offers no completion callback, so the controller holds the
// Playing state for this long before moving on. It is a best-effort
// timing heuristic, not a guarantee.
type Estimator func(text string) time.Duration

// Default heuristic constants, tuned for Spanish narration.
const (
	DefaultPerWord           = 250 * time.Millisecond
	DefaultResponseAllowance = 5 * time.Second
	DefaultMinimumDuration   = 7 * time.Second
)

// NewEstimator builds an estimator from a fixed per-word allowance, a
// fixed allowance for the user to react, and a minimum total duration.
func NewEstimator(perWord, responseAllowance, minimum time.Duration) Estimator {
	return func(text string) time.Duration {
		words := len(strings.Fields(text))
		d := time.Duration(words)*perWord + responseAllowance
		if d < minimum {
			d = minimum
		}
		return d
	}
}

// DefaultEstimator returns the estimator with the default constants.
func DefaultEstimator() Estimator {
	return NewEstimator(DefaultPerWord, DefaultResponseAllowance, DefaultMinimumDuration)
}
