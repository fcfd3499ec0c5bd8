package services

import "time"

const ISODateLayout = "2006-01-02"

// ParseISODate parses YYYY-MM-DD into a UTC midnight date.
func ParseISODate(value string) (time.Time, error) {
	return time.ParseInLocation(ISODateLayout, value, time.UTC)
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the [start, end) boundaries of a calendar day.
func DayRange(value time.Time) (time.Time, time.Time) {
	start := DateOnly(value)
	return start, start.AddDate(0, 0, 1)
}
