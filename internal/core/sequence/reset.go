package sequence

import (
	"time"
)

// ShouldReset decides whether a counter must return to zero before the next
// increment. Pure function of (interval, lastReset, now); the mutation itself
// belongs to the issuer's transaction.
func ShouldReset(interval ResetInterval, lastReset, now time.Time) bool {
	switch interval {
	case ResetMonthly:
		return lastReset.Year() != now.Year() || lastReset.Month() != now.Month()
	case ResetYearly:
		return lastReset.Year() != now.Year()
	default:
		return false
	}
}
