package sequence

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldReset(t *testing.T) {
	tests := []struct {
		name      string
		interval  ResetInterval
		lastReset time.Time
		now       time.Time
		want      bool
	}{
		{"never same day", ResetNever, date(2025, 2, 1), date(2025, 2, 1), false},
		{"never year boundary", ResetNever, date(2024, 12, 31), date(2025, 1, 1), false},

		{"monthly same month", ResetMonthly, date(2025, 2, 1), date(2025, 2, 28), false},
		{"monthly next month", ResetMonthly, date(2025, 2, 1), date(2025, 3, 1), true},
		{"monthly same month other year", ResetMonthly, date(2024, 3, 1), date(2025, 3, 1), true},

		{"yearly same year", ResetYearly, date(2025, 1, 1), date(2025, 12, 31), false},
		{"yearly next year", ResetYearly, date(2024, 12, 31), date(2025, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldReset(tt.interval, tt.lastReset, tt.now); got != tt.want {
				t.Errorf("ShouldReset(%s, %s, %s) = %v, want %v",
					tt.interval, tt.lastReset.Format("2006-01-02"), tt.now.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestShouldReset_Pure(t *testing.T) {
	last := date(2025, 2, 1)
	now := date(2025, 3, 1)

	first := ShouldReset(ResetMonthly, last, now)
	second := ShouldReset(ResetMonthly, last, now)
	if first != second {
		t.Errorf("ShouldReset is not deterministic: %v then %v", first, second)
	}
}
