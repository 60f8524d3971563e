// File: services/agent/create.go
package agent

import (
	"context"
	"fmt"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
)

// confirmBooking assembles the human-readable summary shown before the final
// yes/no question.
func (a *BookingAgent) confirmBooking(state *models.ConversationState) {
	entities := state.Entities

	date := "Not specified"
	if entities.ParsedDate != nil {
		date = entities.ParsedDate.Format("Monday, January 02, 2006")
	}
	timeDisplay := "Not specified"
	if entities.SelectedTime != "" {
		timeDisplay = paddedClock(ParseClockTime(entities.SelectedTime))
	}

	state.BookingSummary = &models.BookingSummary{
		Title:     valueOr(entities.Title, "Meeting"),
		Date:      date,
		Time:      timeDisplay,
		Duration:  valueOr(entities.Duration, "1 hour"),
		Attendees: entities.Attendees,
	}
	state.Stage = models.StageAwaitingConfirmation
}

// createBooking performs the final conflict re-check and writes the event to
// the calendar. A collision detected here moves the conversation to the
// conflict stage without touching the calendar.
func (a *BookingAgent) createBooking(ctx context.Context, state *models.ConversationState) {
	logger := utils.GetLogger()
	entities := state.Entities

	if !hasCompleteBookingInfo(entities) {
		state.Stage = models.StageBookingFailed
		state.ErrorMessage = "missing required booking information"
		return
	}

	duration := ParseDuration(entities.Duration)
	start := ParseClockTime(entities.SelectedTime).On(*entities.ParsedDate)
	end := start.Add(duration)

	free, err := a.slotFree(ctx, start, end)
	if err != nil {
		logger.Error("Final conflict check failed", zap.Error(err))
		state.Stage = models.StageBookingFailed
		state.ErrorMessage = err.Error()
		return
	}
	if !free {
		logger.Warn("Conflict detected at booking time", zap.String("time", entities.SelectedTime))
		state.Stage = models.StageBookingConflict
		state.ConflictMessage = fmt.Sprintf("The selected time slot (%s) is no longer available", entities.SelectedTime)
		return
	}

	booking := models.BookingRequest{
		Title: entities.Title,
		Start: start,
		End:   end,
		Description: fmt.Sprintf("Meeting: %s\nDuration: %s\nBooked via AI Assistant",
			entities.Title, entities.Duration),
		Attendees: entities.Attendees,
	}

	created, err := a.calendar.CreateEvent(ctx, booking)
	if err != nil {
		logger.Error("Event creation failed", zap.Error(err))
		state.Stage = models.StageBookingFailed
		state.ErrorMessage = err.Error()
		return
	}
	if created == nil || created.ID == "" {
		state.Stage = models.StageBookingFailed
		return
	}

	state.CurrentBooking = created
	state.Stage = models.StageBookingConfirmed
	logger.Info("Booking created", zap.String("eventID", created.ID), zap.String("title", created.Title))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
