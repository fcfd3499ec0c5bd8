package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/memento/internal/models"
)

// UpcomingSpecialDay is the derived, never persisted "next occurrence"
// view of a stored special day.
type UpcomingSpecialDay struct {
	SpecialDay models.SpecialDay
	Occurrence time.Time
	DaysUntil  int
}

// OccurrenceInYear projects a stored month/day into the given year.
// Feb 29 clamps to Feb 28 on non-leap years so a leap-day anniversary
// still lands deterministically instead of sliding to Mar 1.
func OccurrenceInYear(stored time.Time, year int) time.Time {
	month := stored.Month()
	day := stored.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextOccurrence computes the occurrence of a stored date on or after
// today. The stored year is ignored for recurrence. A one-shot date
// whose month/day has already passed has no future occurrence.
func NextOccurrence(stored time.Time, repeatYearly bool, today time.Time) (time.Time, bool) {
	today = DateOnly(today)
	occurrence := OccurrenceInYear(stored, today.Year())
	if occurrence.Before(today) {
		if !repeatYearly {
			return time.Time{}, false
		}
		occurrence = OccurrenceInYear(stored, today.Year()+1)
	}
	return occurrence, true
}

// UpcomingSpecialDays filters to occurrences inside the inclusive
// [today, today+windowDays] window, sorted ascending by occurrence.
func UpcomingSpecialDays(days []models.SpecialDay, today time.Time, windowDays int) []UpcomingSpecialDay {
	today = DateOnly(today)
	windowEnd := today.AddDate(0, 0, windowDays)

	upcoming := make([]UpcomingSpecialDay, 0, len(days))
	for _, day := range days {
		occurrence, ok := NextOccurrence(day.Date, day.RepeatYearly, today)
		if !ok {
			continue
		}
		if occurrence.Before(today) || occurrence.After(windowEnd) {
			continue
		}
		upcoming = append(upcoming, UpcomingSpecialDay{
			SpecialDay: day,
			Occurrence: occurrence,
			DaysUntil:  int(occurrence.Sub(today).Hours() / 24),
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Occurrence.Equal(upcoming[j].Occurrence) {
			return upcoming[i].SpecialDay.ID < upcoming[j].SpecialDay.ID
		}
		return upcoming[i].Occurrence.Before(upcoming[j].Occurrence)
	})
	return upcoming
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
