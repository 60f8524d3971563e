// File: services/agent/timeparse.go
package agent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockAmPmRe     = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)`)
	hourAmPmRe      = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	clock24Re       = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	bareHourRe      = regexp.MustCompile(`^(\d{1,2})$`)
	specificTimeRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:am|pm)`),
		regexp.MustCompile(`\d{1,2}\s*(?:am|pm)`),
	}
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// On anchors the clock time to a calendar day.
func (t ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// Display formats like "2:30 PM" for user-facing comparison and rendering.
func (t ClockTime) Display() string {
	anchor := time.Date(2000, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC)
	return anchor.Format("3:04 PM")
}

// ParseClockTime resolves a free-text time expression into a concrete clock
// time. Patterns are tried in order: "H:MM am/pm", "H am/pm", "H:MM" (24h),
// bare "H". Forms without an am/pm marker use an afternoon heuristic: hours
// 1-5 in "H:MM" and 1-11 in a bare "H" are shifted to PM. Out-of-range values
// fall through to the next pattern. Generic words and anything unparseable
// resolve to fixed defaults; this never fails.
func ParseClockTime(text string) ClockTime {
	s := strings.ToLower(strings.TrimSpace(text))

	if m := clockAmPmRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		hour = applyAmPm(hour, m[3])
		if validClock(hour, minute) {
			return ClockTime{hour, minute}
		}
	}

	if m := hourAmPmRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		hour = applyAmPm(hour, m[2])
		if validClock(hour, 0) {
			return ClockTime{hour, 0}
		}
	}

	if m := clock24Re.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour >= 1 && hour <= 5 {
			hour += 12
		}
		if validClock(hour, minute) {
			return ClockTime{hour, minute}
		}
	}

	if m := bareHourRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour >= 1 && hour <= 11 {
			hour += 12
		}
		if validClock(hour, 0) {
			return ClockTime{hour, 0}
		}
	}

	switch {
	case strings.Contains(s, "afternoon"):
		return ClockTime{14, 0}
	case strings.Contains(s, "morning"):
		return ClockTime{10, 0}
	case strings.Contains(s, "evening"):
		return ClockTime{18, 0}
	}

	return ClockTime{14, 0}
}

func applyAmPm(hour int, marker string) int {
	if marker == "pm" && hour != 12 {
		return hour + 12
	}
	if marker == "am" && hour == 12 {
		return 0
	}
	return hour
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// IsSpecificTime reports whether a time expression names a concrete clock
// time ("3 PM", "3:00 pm") rather than a generic part of day ("afternoon").
func IsSpecificTime(text string) bool {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "morning", "afternoon", "evening", "night":
		return false
	}
	for _, re := range specificTimeRes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
