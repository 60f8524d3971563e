// File: services/agent/dateparse.go
package agent

import (
	"strings"
	"time"
)

// weekdayNames uses Monday=0..Sunday=6 indexing.
var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func weekdayIndex(t time.Time) int {
	// time.Weekday has Sunday=0; shift to Monday=0.
	return (int(t.Weekday()) + 6) % 7
}

func lookupWeekday(name string) (int, bool) {
	for i, day := range weekdayNames {
		if day == name {
			return i, true
		}
	}
	return 0, false
}

// ParseDate resolves a relative date expression against "now". A bare weekday
// (and "this <weekday>") rolls to the next future occurrence; today counts as
// already past. "next <weekday>" adds a further week unconditionally, so from
// a Wednesday, "next friday" is nine days out while "this friday" is two.
// That asymmetry is long-standing behavior and is locked in by tests.
// Unrecognized text resolves to today.
func ParseDate(text string, now time.Time) time.Time {
	s := strings.ToLower(strings.TrimSpace(text))

	switch s {
	case "today":
		return now
	case "tomorrow":
		return now.AddDate(0, 0, 1)
	case "next week":
		return now.AddDate(0, 0, 7)
	}

	if target, ok := lookupWeekday(s); ok {
		return now.AddDate(0, 0, daysUntil(now, target))
	}

	if day, ok := strings.CutPrefix(s, "this "); ok {
		if target, ok := lookupWeekday(day); ok {
			return now.AddDate(0, 0, daysUntil(now, target))
		}
	}

	if day, ok := strings.CutPrefix(s, "next "); ok {
		if target, ok := lookupWeekday(day); ok {
			return now.AddDate(0, 0, target-weekdayIndex(now)+7)
		}
	}

	return now
}

// daysUntil returns the days ahead to the next future occurrence of the
// target weekday, rolling a full week when the day is today or already past.
func daysUntil(now time.Time, target int) int {
	ahead := target - weekdayIndex(now)
	if ahead <= 0 {
		ahead += 7
	}
	return ahead
}

// ParseSpecificDay resolves a weekday answer ("friday") to its next future
// occurrence, defaulting a week out when the name is not recognized.
func ParseSpecificDay(day string, now time.Time) time.Time {
	if target, ok := lookupWeekday(strings.ToLower(strings.TrimSpace(day))); ok {
		return now.AddDate(0, 0, daysUntil(now, target))
	}
	return now.AddDate(0, 0, 7)
}
