package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schedulo/models"
)

func render(rc models.RenderContext) string {
	return ruleService().GenerateResponse(context.Background(), nil, rc)
}

func TestRenderInitialGreeting(t *testing.T) {
	reply := render(models.RenderContext{Stage: models.StageInitial})
	assert.Contains(t, reply, "calendar assistant")
}

func TestRenderAskingStages(t *testing.T) {
	reply := render(models.RenderContext{Stage: models.StageAskingTitle})
	assert.Equal(t, "What's the purpose or topic of your meeting?", reply)

	reply = render(models.RenderContext{
		Stage:    models.StageAskingDuration,
		Entities: models.BookingEntities{Title: "Budget Review"},
	})
	assert.Contains(t, reply, "'Budget Review'")
	assert.Contains(t, reply, "30 minutes, 1 hour, 2 hours")

	reply = render(models.RenderContext{
		Stage:    models.StageAskingSpecificDay,
		Entities: models.BookingEntities{Title: "Budget Review", Duration: "1 hour"},
	})
	assert.Contains(t, reply, "Which day next week")
	assert.Contains(t, reply, "(1 hour)")
}

func TestRenderShowingSlots(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	rc := models.RenderContext{
		Stage: models.StageShowingSlots,
		Entities: models.BookingEntities{
			Title: "Budget Review", Duration: "1 hour", ParsedDate: &date,
		},
		Availability: []models.AvailableSlot{{Display: "09:00 AM"}},
	}

	reply := render(rc)
	assert.Contains(t, reply, "available 1 hour slots")
	assert.Contains(t, reply, "'Budget Review'")
	assert.Contains(t, reply, "Friday, March 14")
	assert.Contains(t, reply, "Please select a time")

	// Rendering is a pure function of the snapshot.
	assert.Equal(t, reply, render(rc))
}

func TestRenderAlternativesAfterFailedDefault(t *testing.T) {
	reply := render(models.RenderContext{
		Stage:             models.StageShowingAlternatives,
		Entities:          models.BookingEntities{Title: "Sync", Duration: "1 hour"},
		Availability:      []models.AvailableSlot{{Display: "09:00 AM"}},
		DefaultTimeFailed: "2:00 PM",
		GenericTimeFailed: "afternoon",
	})
	assert.Contains(t, reply, "The afternoon slot (2:00 PM) is already taken")

	reply = render(models.RenderContext{
		Stage:        models.StageShowingAlternatives,
		Entities:     models.BookingEntities{Title: "Sync", Duration: "1 hour"},
		Availability: []models.AvailableSlot{{Display: "09:00 AM"}},
	})
	assert.Contains(t, reply, "alternative 1 hour slots")
}

func TestRenderConflictTakesPrecedence(t *testing.T) {
	rc := models.RenderContext{
		// Dynamic stage, but the conflict must win over any model output.
		Stage:           models.StageAskingAttendees,
		Entities:        models.BookingEntities{Title: "Sync"},
		ConflictMessage: "The selected time slot (3pm) is no longer available",
		Availability:    []models.AvailableSlot{{Display: "09:00 AM"}},
	}
	reply := render(rc)
	assert.Contains(t, reply, "no longer available")
	assert.Contains(t, reply, "alternative times available for your 'Sync'")

	rc.Availability = nil
	reply = render(rc)
	assert.Contains(t, reply, "no other available slots")
}

func TestRenderErrorTakesPrecedence(t *testing.T) {
	reply := render(models.RenderContext{
		Stage:        models.StageAvailabilityError,
		ErrorMessage: "calendar offline",
	})
	assert.Equal(t, "I encountered an issue: calendar offline. Let's try again.", reply)
}

func TestRenderAskingAttendees(t *testing.T) {
	reply := render(models.RenderContext{
		Stage:    models.StageAskingAttendees,
		Entities: models.BookingEntities{Title: "Sync", SelectedTime: "3:00 PM", Date: "tomorrow"},
	})
	assert.Contains(t, reply, "3:00 PM")
	assert.Contains(t, reply, "say 'no' if it's just you")

	reply = render(models.RenderContext{
		Stage:    models.StageAskingAttendees,
		Entities: models.BookingEntities{Title: "Sync"},
	})
	assert.Contains(t, reply, "Who should I invite to your 'Sync' meeting?")
}

func TestRenderConfirmationSummary(t *testing.T) {
	reply := render(models.RenderContext{
		Stage: models.StageAwaitingConfirmation,
		Summary: &models.BookingSummary{
			Title:    "Budget Review",
			Date:     "Thursday, March 13, 2025",
			Time:     "03:00 PM",
			Duration: "1 hour",
		},
	})
	assert.Contains(t, reply, "**Budget Review**")
	assert.Contains(t, reply, "Date: Thursday, March 13, 2025")
	assert.Contains(t, reply, "Time: 03:00 PM")
	assert.Contains(t, reply, "Attendees: Just you")
	assert.Contains(t, reply, "Should I book this meeting?")

	reply = render(models.RenderContext{
		Stage: models.StageAwaitingConfirmation,
		Summary: &models.BookingSummary{
			Title:     "Budget Review",
			Attendees: []string{"alice@example.com", "bob@corp.io"},
		},
	})
	assert.Contains(t, reply, "Attendees: alice@example.com, bob@corp.io")
}

func TestRenderBookingOutcomes(t *testing.T) {
	reply := render(models.RenderContext{
		Stage:   models.StageBookingConfirmed,
		Booking: &models.CalendarEvent{ID: "evt-1"},
	})
	assert.Contains(t, reply, "✅ **Meeting Successfully Booked!**")

	reply = render(models.RenderContext{Stage: models.StageBookingConfirmed})
	assert.Contains(t, reply, "scheduled successfully")

	reply = render(models.RenderContext{Stage: models.StageBookingFailed})
	assert.Contains(t, reply, "❌")

	reply = render(models.RenderContext{Stage: models.StageBookingCancelled})
	assert.Contains(t, reply, "**Booking Cancelled**")
	assert.Contains(t, reply, "start fresh")
}

func TestSanitizePlaceholders(t *testing.T) {
	cleaned := sanitizePlaceholders("See you at [Location] on [Date], [Name]!")
	assert.NotContains(t, cleaned, "[Location]")
	assert.NotContains(t, cleaned, "[Date]")
	assert.NotContains(t, cleaned, "[Name]")
}

func TestDisplayDateFallbacks(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Friday, March 14", displayDate(models.BookingEntities{ParsedDate: &date}, "x"))
	assert.Equal(t, "tomorrow", displayDate(models.BookingEntities{Date: "tomorrow"}, "x"))
	assert.Equal(t, "x", displayDate(models.BookingEntities{}, "x"))
}
