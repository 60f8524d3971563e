package calendar

import (
	"fmt"
	"time"

	"schedulo/models"
)

const (
	slotDayStartHour = 6  // no suggestions before 06:00
	slotDayEndHour   = 23 // last suggestion starts 23:30
	slotStep         = 30 * time.Minute
	maxSuggestions   = 15
	// Adjacent events should not disqualify a slot; a one minute buffer keeps
	// back-to-back bookings from reading as overlaps.
	overlapBuffer = time.Minute
)

// BusyInterval is one occupied span on the calendar.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps applies the buffered overlap test used for slot filtering.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Add(overlapBuffer).Before(b.End) && end.After(b.Start.Add(overlapBuffer))
}

// BuildFreeSlots generates candidate slots for the day containing dayStart,
// on 30-minute boundaries between 06:00 and 23:00, skipping anything that
// collides with a busy interval. When the requested day is today, generation
// begins at now+30m rounded up to the next quarter hour. The candidate span
// checked against busy intervals is one hour; duration-specific verification
// happens at the agent level.
func BuildFreeSlots(busy []BusyInterval, dayStart, now time.Time) []models.AvailableSlot {
	day := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, dayStart.Location())

	var cursor time.Time
	if sameDay(day, now) {
		cursor = roundUpToQuarter(now.Add(30 * time.Minute))
	} else {
		cursor = day.Add(slotDayStartHour * time.Hour)
	}

	var slots []models.AvailableSlot
	for sameDay(cursor, day) && len(slots) < maxSuggestions {
		if cursor.Hour() < slotDayStartHour || cursor.Hour() > slotDayEndHour {
			cursor = cursor.Add(slotStep)
			continue
		}

		slotEnd := cursor.Add(time.Hour)
		free := true
		for _, b := range busy {
			if b.Overlaps(cursor, slotEnd) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, models.AvailableSlot{
				Start:       cursor,
				Display:     cursor.Format("03:04 PM"),
				FullDisplay: fmt.Sprintf("%s: %s", cursor.Format("Monday, January 2, 2006"), cursor.Format("03:04 PM")),
			})
		}

		cursor = cursor.Add(slotStep)
	}
	return slots
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func roundUpToQuarter(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	over := t.Minute() % 15
	return t.Add(time.Duration(15-over) * time.Minute)
}
