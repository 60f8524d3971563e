// File: services/intelligence/renderer.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
)

const greeting = "Hi! I'm your AI calendar assistant. What meeting would you like to schedule?"

// Stages where a model-written question reads better than a canned one. All
// other stages carry state the templates must reproduce exactly.
var dynamicStages = map[models.Stage]bool{
	models.StageAskingTitle:     true,
	models.StageAskingDuration:  true,
	models.StageAskingAttendees: true,
}

// GenerateResponse renders the reply for the current conversation snapshot.
// Rendering is deterministic for any state-bearing stage; the model is only
// consulted for open-ended questions and its output is sanitized.
func (s *DefaultService) GenerateResponse(ctx context.Context, history []models.ChatMessage, rc models.RenderContext) string {
	if dynamicStages[rc.Stage] && rc.ErrorMessage == "" && rc.ConflictMessage == "" {
		if s.modelAllowed() {
			if reply, err := s.modelResponseForStage(ctx, rc); err == nil && reply != "" {
				return reply
			} else if err != nil {
				utils.GetLogger().Warn("Model response failed, using template",
					zap.String("stage", string(rc.Stage)), zap.Error(err))
			}
		}
	}
	return renderTemplate(rc)
}

func (s *DefaultService) modelResponseForStage(ctx context.Context, rc models.RenderContext) (string, error) {
	prompt := stagePrompt(rc)
	content, err := s.gemini.GenerateContent(ctx,
		"You are a helpful AI calendar assistant. Be concise, professional, and friendly. "+
			"Your responses should be 1-2 sentences maximum. Never mention location or use placeholders "+
			"like [Name] or [Date]. Use actual data provided.\n\n"+prompt, 0.7, 100)
	if err != nil {
		return "", err
	}
	return sanitizePlaceholders(content), nil
}

func stagePrompt(rc models.RenderContext) string {
	switch rc.Stage {
	case models.StageAskingDuration:
		return fmt.Sprintf("The user wants to book a meeting about '%s'. Ask them how long the meeting should be. Suggest common durations like 30 minutes, 1 hour, etc. Be concise.",
			orDefault(rc.Entities.Title, "their topic"))
	case models.StageAskingAttendees:
		return fmt.Sprintf("The user wants to book a '%s' meeting for %s on %s. Ask who should be invited. Mention they can provide email addresses or say 'no' if it's just them. Be concise and do NOT mention location.",
			orDefault(rc.Entities.Title, "meeting"),
			orDefault(rc.Entities.Duration, "1 hour"),
			orDefault(rc.Entities.Date, "a selected day"))
	default:
		return "The user wants to book a meeting but hasn't specified the purpose. Ask them what the meeting is about in a friendly, professional way. Be concise."
	}
}

// sanitizePlaceholders strips bracket placeholders a model sometimes emits
// despite instructions.
func sanitizePlaceholders(content string) string {
	replacer := strings.NewReplacer(
		"in [Location]", "",
		"at [Location]", "",
		"[User Name]", "",
		"[Location]", "",
		"[Name]", "",
		"[Date]", "",
		"[Time]", "",
	)
	return strings.TrimSpace(replacer.Replace(content))
}

// renderTemplate is the deterministic renderer. It covers every stage and is
// idempotent: the same snapshot always produces the same text.
func renderTemplate(rc models.RenderContext) string {
	title := orDefault(rc.Entities.Title, "meeting")

	if rc.ErrorMessage != "" {
		return fmt.Sprintf("I encountered an issue: %s. Let's try again.", rc.ErrorMessage)
	}

	if rc.ConflictMessage != "" {
		if len(rc.Availability) > 0 {
			return fmt.Sprintf("%s. Here are some alternative times available for your '%s':", rc.ConflictMessage, title)
		}
		return fmt.Sprintf("%s. Unfortunately, there are no other available slots for that day. Would you like to try a different date?", rc.ConflictMessage)
	}

	switch rc.Stage {
	case models.StageInitial, "":
		return greeting

	case models.StageAskingTitle:
		return "What's the purpose or topic of your meeting?"

	case models.StageAskingDuration:
		return fmt.Sprintf("How long should your '%s' be? (e.g., 30 minutes, 1 hour, 2 hours)", title)

	case models.StageAskingSpecificDay:
		return fmt.Sprintf("Which day next week would you like to schedule your '%s' (%s)? (e.g., Monday, Tuesday, Wednesday, Thursday, Friday)",
			title, orDefault(rc.Entities.Duration, "meeting"))

	case models.StageShowingSlots, models.StageShowingAlternatives:
		duration := orDefault(rc.Entities.Duration, "1 hour")
		dateDisplay := displayDate(rc.Entities, "the selected day")
		if len(rc.Availability) == 0 {
			return fmt.Sprintf("I'm checking availability for your '%s' on %s...", title, dateDisplay)
		}
		if rc.Stage == models.StageShowingAlternatives {
			if rc.DefaultTimeFailed != "" && rc.GenericTimeFailed != "" {
				return fmt.Sprintf("The %s slot (%s) is already taken. Here are other available %s slots for your '%s' on %s:",
					rc.GenericTimeFailed, rc.DefaultTimeFailed, duration, title, dateDisplay)
			}
			return fmt.Sprintf("Here are alternative %s slots available for your '%s' on %s. Please select a time:", duration, title, dateDisplay)
		}
		return fmt.Sprintf("Here are available %s slots for your '%s' on %s. Please select a time:", duration, title, dateDisplay)

	case models.StageNoAvailability:
		return fmt.Sprintf("I couldn't find any available slots for your '%s' on %s. Would you like to try a different date?",
			title, displayDate(rc.Entities, "that day"))

	case models.StageNoAlternatives:
		return "I couldn't find any alternative time slots for that day. Would you like to try a different date?"

	case models.StageAskingAttendees:
		dateDisplay := displayDate(rc.Entities, "the selected day")
		if rc.Entities.SelectedTime != "" {
			return fmt.Sprintf("Great! I'll schedule your '%s' for %s on %s. Who should I invite? (Enter email addresses, or say 'no' if it's just you)",
				title, rc.Entities.SelectedTime, dateDisplay)
		}
		return fmt.Sprintf("Who should I invite to your '%s' meeting? (Enter email addresses, or say 'no' if it's just you)", title)

	case models.StageAwaitingConfirmation:
		summary := rc.Summary
		if summary == nil {
			summary = &models.BookingSummary{Title: "Meeting"}
		}
		attendeesText := "Just you"
		if len(summary.Attendees) > 0 {
			attendeesText = strings.Join(summary.Attendees, ", ")
		}
		return fmt.Sprintf("Please confirm your booking:\n\n**%s**\nDate: %s\nTime: %s\nDuration: %s\nAttendees: %s\n\nShould I book this meeting?",
			summary.Title, summary.Date, summary.Time, summary.Duration, attendeesText)

	case models.StageBookingConfirmed:
		if rc.Booking != nil && rc.Booking.ID != "" {
			return "✅ **Meeting Successfully Booked!**\n\nYour meeting has been added to your calendar. Invitations have been sent to all attendees."
		}
		return "✅ Your meeting has been scheduled successfully!"

	case models.StageBookingFailed:
		return "❌ I couldn't complete the booking. Let's try again. What meeting would you like to schedule?"

	case models.StageBookingCancelled:
		return "❌ **Booking Cancelled**\n\nNo worries! Let's start fresh. What meeting would you like to schedule?"
	}

	return fallbackResponse(rc.Stage)
}

func fallbackResponse(stage models.Stage) string {
	fallbacks := map[models.Stage]string{
		models.StageAskingTitle:          "What would you like to discuss in this meeting?",
		models.StageAskingDuration:       "How long should the meeting be?",
		models.StageAskingSpecificDay:    "Which day would you prefer?",
		models.StageShowingSlots:         "I'm checking available time slots for you.",
		models.StageShowingAlternatives:  "Here are some alternative times:",
		models.StageNoAvailability:       "No slots available for that day. Try another date?",
		models.StageAskingAttendees:      "Who should I invite to this meeting?",
		models.StageAwaitingConfirmation: "Should I go ahead and book this meeting?",
		models.StageBookingConfirmed:     "✅ Your meeting has been booked!",
		models.StageBookingFailed:        "❌ I couldn't book the meeting. Let's try again.",
	}
	if reply, ok := fallbacks[stage]; ok {
		return reply
	}
	return "How can I help you schedule a meeting?"
}

func displayDate(entities models.BookingEntities, fallback string) string {
	if entities.ParsedDate != nil {
		return entities.ParsedDate.Format("Monday, January 02")
	}
	if entities.Date != "" {
		return entities.Date
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
