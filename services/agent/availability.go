// File: services/agent/availability.go
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
)

// At most this many slots are offered in one reply.
const maxOfferedSlots = 8

// checkAvailability fills state.Availability for the target day. When a
// generic time word resolved to a default clock time, that single slot is
// probed first; if taken, it is excluded from the alternatives shown.
func (a *BookingAgent) checkAvailability(ctx context.Context, state *models.ConversationState) {
	logger := utils.GetLogger()
	entities := &state.Entities

	if entities.ParsedDate == nil {
		today := a.now()
		entities.ParsedDate = &today
		entities.Date = "today"
	}
	target := *entities.ParsedDate
	duration := ParseDuration(entities.Duration)

	if entities.DefaultTime != "" && entities.GenericTimeUsed != "" {
		if a.specificTimeFree(ctx, target, entities.DefaultTime, duration) {
			entities.SelectedTime = entities.DefaultTime
			entities.TimeConfirmed = true
			entities.TimeSource = "default_" + entities.GenericTimeUsed
			state.Stage = models.StageTimeConfirmed
			logger.Info("Default time available for generic request",
				zap.String("time", entities.DefaultTime), zap.String("generic", entities.GenericTimeUsed))
			return
		}
		logger.Info("Default time taken, collecting alternatives",
			zap.String("time", entities.DefaultTime), zap.String("generic", entities.GenericTimeUsed))
		entities.FailedDefaultTime = entities.DefaultTime
	}

	suitable, err := a.collectFreeSlots(ctx, target, duration, entities.FailedDefaultTime)
	if err != nil {
		logger.Error("Availability check failed", zap.Error(err))
		state.Availability = nil
		state.Stage = models.StageAvailabilityError
		return
	}

	if len(suitable) == 0 {
		state.Availability = nil
		state.Stage = models.StageNoAvailability
		return
	}

	state.Availability = suitable
	if entities.DefaultTime != "" && entities.GenericTimeUsed != "" {
		state.Stage = models.StageShowingAlternatives
		state.DefaultTimeFailed = entities.DefaultTime
		state.GenericTimeFailed = entities.GenericTimeUsed
	} else {
		state.Stage = models.StageShowingSlots
	}
}

// handleConflict re-checks the day after a booking collision and offers
// fresh alternatives with the conflicted time excluded.
func (a *BookingAgent) handleConflict(ctx context.Context, state *models.ConversationState) {
	logger := utils.GetLogger()
	entities := &state.Entities

	if entities.ParsedDate == nil {
		state.Stage = models.StageConflictError
		return
	}
	target := *entities.ParsedDate
	duration := ParseDuration(entities.Duration)
	conflicted := entities.SelectedTime

	suitable, err := a.collectFreeSlots(ctx, target, duration, conflicted)
	if err != nil {
		logger.Error("Conflict recovery failed", zap.Error(err))
		state.Stage = models.StageConflictError
		return
	}

	state.ConflictMessage = fmt.Sprintf("The selected time slot (%s) is no longer available", conflicted)
	if len(suitable) > 0 {
		state.Availability = suitable
		state.Stage = models.StageShowingAlternatives
		logger.Info("Offering alternatives after conflict", zap.Int("slots", len(suitable)))
	} else {
		state.Availability = nil
		state.Stage = models.StageNoAlternatives
	}
}

// collectFreeSlots narrows the day's candidate slots to ones where the full
// meeting duration fits without touching an existing event. excludeTime, when
// set, removes that clock time from the results.
func (a *BookingAgent) collectFreeSlots(ctx context.Context, target time.Time, duration time.Duration, excludeTime string) ([]models.AvailableSlot, error) {
	dayStart := startOfDay(target)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	slots, err := a.calendar.GetAvailability(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	excluded := ""
	if excludeTime != "" {
		excluded = paddedClock(ParseClockTime(excludeTime))
	}

	suitable := make([]models.AvailableSlot, 0, maxOfferedSlots)
	for _, slot := range slots {
		if !onSameDay(slot.Start, target) {
			continue
		}
		if excluded != "" && strings.EqualFold(paddedSlotTime(slot.Start), excluded) {
			continue
		}
		free, err := a.slotFree(ctx, slot.Start, slot.Start.Add(duration))
		if err != nil || !free {
			continue
		}
		suitable = append(suitable, models.AvailableSlot{
			Start:       slot.Start,
			Display:     slot.Display,
			FullDisplay: fmt.Sprintf("%s: %s", slot.Start.Format("Monday, January 02"), slot.Display),
		})
		if len(suitable) == maxOfferedSlots {
			break
		}
	}
	return suitable, nil
}

// specificTimeFree probes one clock time on the target day. Errors read as
// busy; the regular slot listing handles them later.
func (a *BookingAgent) specificTimeFree(ctx context.Context, target time.Time, timeStr string, duration time.Duration) bool {
	start := ParseClockTime(timeStr).On(target)
	free, err := a.slotFree(ctx, start, start.Add(duration))
	if err != nil {
		utils.GetLogger().Warn("Specific time probe failed", zap.Error(err))
		return false
	}
	return free
}

// slotFree verifies an interval against the day's concrete events. This is a
// strict overlap test without buffer; precision matters right before booking.
func (a *BookingAgent) slotFree(ctx context.Context, start, end time.Time) (bool, error) {
	dayStart := startOfDay(start)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	events, err := a.calendar.GetEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	for _, event := range events {
		if start.Before(event.End) && end.After(event.Start) {
			return false, nil
		}
	}
	return true, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func onSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// paddedClock renders a clock time zero-padded, matching the slot display
// format, so exclusion comparisons are exact.
func paddedClock(t ClockTime) string {
	anchor := time.Date(2000, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC)
	return anchor.Format("03:04 PM")
}

func paddedSlotTime(t time.Time) string {
	return t.Format("03:04 PM")
}
