// File: services/agent/intents.go
package agent

import (
	"fmt"
	"regexp"
	"strings"

	"schedulo/models"
)

var (
	confirmations = map[string]bool{
		"yes": true, "yep": true, "yeah": true, "confirm": true, "book it": true,
		"schedule it": true, "ok": true, "okay": true, "sure": true,
	}
	cancellations = map[string]bool{
		"no": true, "cancel": true, "nevermind": true, "no thanks": true,
		"not now": true, "abort": true, "stop": true,
	}
	cancellationPhrases = []string{"no, cancel", "no cancel", "cancel it"}

	noAttendeeReplies = map[string]bool{
		"no": true, "none": true, "just me": true, "only me": true,
		"no one": true, "nobody": true,
	}

	shortAcks = map[string]bool{
		"yes": true, "no": true, "ok": true, "thanks": true, "thank you": true,
	}

	bookingKeywords = []string{
		"schedule", "book", "meeting", "call", "appointment",
		"set up", "arrange", "plan", "availability",
	}

	nonTitlePhrases = []string{
		"i don't know", "not sure", "whatever", "anything", "nothing specific",
		"just a meeting", "regular meeting", "normal meeting",
	}
	questionWords = []string{"when", "what", "how", "where", "time"}

	emailRe     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	timeRangeRe = regexp.MustCompile(`(?:between\s+)?(\d{1,2})\s*(?:-|to)\s*(\d{1,2})\s*(am|pm)`)

	selectableTimeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM))`),
		regexp.MustCompile(`(?i)(\d{1,2}\s*(?:AM|PM))`),
		regexp.MustCompile(`^(\d{1,2})$`),
	}
)

// genericTimeDefaults maps vague time-of-day words to fixed default clock times.
var genericTimeDefaults = []struct {
	word    string
	defTime string
}{
	{"afternoon", "2:00 PM"},
	{"morning", "10:00 AM"},
	{"evening", "6:00 PM"},
	{"night", "8:00 PM"},
}

func isConfirmation(message string) bool {
	return confirmations[strings.ToLower(strings.TrimSpace(message))]
}

func isCancellation(message string) bool {
	s := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range cancellationPhrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return cancellations[s]
}

func isNoAttendeesResponse(message string) bool {
	return noAttendeeReplies[strings.ToLower(strings.TrimSpace(message))]
}

func isShortAcknowledgment(message string) bool {
	return shortAcks[strings.ToLower(strings.TrimSpace(message))]
}

func containsBookingKeyword(message string) bool {
	s := strings.ToLower(message)
	for _, kw := range bookingKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// isTimeSelection reports whether a message picks a slot from an offered list.
// Only meaningful while slots are on display.
func isTimeSelection(message string, stage models.Stage) bool {
	if stage != models.StageShowingSlots && stage != models.StageShowingAlternatives {
		return false
	}
	for _, re := range selectableTimeRes {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

func extractSelectedTime(message string) string {
	for _, re := range selectableTimeRes {
		if m := re.FindStringSubmatch(message); m != nil {
			return m[1]
		}
	}
	return strings.TrimSpace(message)
}

// isDaySelection reports whether a message answers the "which day next week"
// question with a weekday name.
func isDaySelection(message string, stage models.Stage) bool {
	if stage != models.StageAskingSpecificDay {
		return false
	}
	s := strings.ToLower(strings.TrimSpace(message))
	for _, day := range weekdayNames {
		if strings.Contains(s, day) {
			return true
		}
	}
	return false
}

func extractSelectedDay(message string) string {
	s := strings.ToLower(strings.TrimSpace(message))
	for _, day := range weekdayNames {
		if strings.Contains(s, day) {
			return day
		}
	}
	return s
}

// extractTimeRange handles "3-5 PM" style expressions, deriving both a
// duration (the hour delta, wrapping past midnight) and the start time.
func extractTimeRange(message string) (duration, startTime string, ok bool) {
	m := timeRangeRe.FindStringSubmatch(strings.ToLower(message))
	if m == nil {
		return "", "", false
	}

	startHour := atoiSafe(m[1])
	endHour := atoiSafe(m[2])
	ampm := m[3]

	if ampm == "pm" && startHour != 12 {
		startHour += 12
	}
	if ampm == "pm" && endHour != 12 {
		endHour += 12
	} else if ampm == "am" && endHour == 12 {
		endHour = 0
	}

	hours := endHour - startHour
	if hours < 0 {
		hours += 24
	}

	plural := ""
	if hours != 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d hour%s", hours, plural), fmt.Sprintf("%s %s", m[1], ampm), true
}

// extractCombinedInfo pulls a time and email addresses out of a single
// message, independent of the primary intent classification.
func extractCombinedInfo(message string) (timeStr string, attendees []string) {
	for _, re := range selectableTimeRes[:2] {
		if m := re.FindStringSubmatch(message); m != nil {
			timeStr = m[1]
			break
		}
	}
	attendees = emailRe.FindAllString(message, -1)
	return timeStr, attendees
}

// acceptableAsTitle applies the liberal title fallback used while the agent
// is explicitly asking for a title: short, not a known non-answer, and not a
// question.
func acceptableAsTitle(message string) bool {
	clean := strings.Trim(strings.TrimSpace(message), `"'`)
	if clean == "" || len(strings.Fields(clean)) > 6 {
		return false
	}
	lower := strings.ToLower(message)
	for _, phrase := range nonTitlePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, word := range questionWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
