package weather

import "time"

// ShouldRefresh reports whether at least interval has elapsed since lastRefresh.
func ShouldRefresh(lastRefresh, now time.Time, interval time.Duration) bool {
	return now.Sub(lastRefresh) >= interval
}

// NextRefreshIn returns the time left until the next refresh is due, never negative.
func NextRefreshIn(lastRefresh, now time.Time, interval time.Duration) time.Duration {
	return max(0, interval-now.Sub(lastRefresh))
}
