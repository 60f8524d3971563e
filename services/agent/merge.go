// File: services/agent/merge.go
package agent

import (
	"strings"
	"time"
	"unicode"

	"schedulo/models"
)

// mergeEntities folds one turn's extraction candidates into the accumulated
// entity set. Merging is monotonic: an empty candidate never blanks a
// populated scalar field. Attendee lists replace wholesale.
func mergeEntities(entities *models.BookingEntities, cand models.EntityCandidates, now time.Time) {
	if title := strings.TrimSpace(cand.Title); title != "" {
		entities.Title = titleCase(title)
	}
	if dur := strings.TrimSpace(cand.Duration); dur != "" {
		entities.Duration = dur
	}
	if date := strings.TrimSpace(cand.Date); date != "" {
		entities.Date = date
		parsed := ParseDate(date, now)
		entities.ParsedDate = &parsed
	}
	if t := strings.TrimSpace(cand.Time); t != "" {
		entities.Time = t
		entities.RequestedTime = t
		// Concrete clock times are accepted immediately; generic words wait
		// for the availability-driven default resolution.
		if IsSpecificTime(t) {
			entities.SelectedTime = t
		}
	}
	if len(cand.Attendees) > 0 {
		entities.Attendees = cand.Attendees
	}
}

// applyGenericTimeDefaults records a default clock time when the user gave a
// vague part of day. The availability check later probes this single slot
// before offering the full list.
func applyGenericTimeDefaults(entities *models.BookingEntities) {
	mentioned := strings.ToLower(entities.Time)
	for _, g := range genericTimeDefaults {
		if strings.Contains(mentioned, g.word) {
			entities.DefaultTime = g.defTime
			entities.GenericTimeUsed = g.word
			entities.RequestedTime = g.defTime
			return
		}
	}
}

// hasCompleteBookingInfo is the completeness predicate gating booking
// creation: all five fields must be simultaneously present.
func hasCompleteBookingInfo(entities models.BookingEntities) bool {
	return entities.Title != "" &&
		entities.Duration != "" &&
		entities.AttendeesConfirmed &&
		entities.SelectedTime != "" &&
		entities.ParsedDate != nil
}

// needsSpecificDay reports whether the date is an ambiguous "next week"
// still awaiting a concrete weekday.
func needsSpecificDay(entities models.BookingEntities) bool {
	return strings.Contains(strings.ToLower(entities.Date), "next week") && !entities.DayConfirmed
}

func titleCase(s string) string {
	prevLetter := false
	return strings.Map(func(r rune) rune {
		mapped := r
		if unicode.IsLetter(r) {
			if prevLetter {
				mapped = unicode.ToLower(r)
			} else {
				mapped = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		return mapped
	}, s)
}
