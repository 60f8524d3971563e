// File: services/agent/agent.go
package agent

import (
	"context"
	"strings"
	"time"

	"schedulo/models"
	calendarSvc "schedulo/services/calendar"
	ai "schedulo/services/intelligence"
	"schedulo/utils"

	"go.uber.org/zap"
)

// workflow node identifiers; one node runs per turn, then the response is
// rendered.
type node string

const (
	nodeAskTitle          node = "ask_title"
	nodeAskDuration       node = "ask_duration"
	nodeAskSpecificDay    node = "ask_specific_day"
	nodeCheckAvailability node = "check_availability"
	nodeHandleConflict    node = "handle_conflict"
	nodeAskAttendees      node = "ask_attendees"
	nodeConfirmBooking    node = "confirm_booking"
	nodeCreateBooking     node = "create_booking"
	nodeGenerateResponse  node = "generate_response"
)

const fallbackReply = "I'm here to help you schedule meetings. Could you tell me what kind of meeting you'd like to book?"

// BookingAgent drives the booking dialogue: it consolidates entities from
// each user turn, routes to the single workflow step the accumulated state
// calls for, and appends the assistant's reply.
type BookingAgent struct {
	calendar calendarSvc.Service
	ai       ai.Service
	now      func() time.Time
}

func New(calendar calendarSvc.Service, aiService ai.Service) *BookingAgent {
	return &BookingAgent{
		calendar: calendar,
		ai:       aiService,
		now:      time.Now,
	}
}

// SetNow pins the agent's clock for deterministic tests.
func (a *BookingAgent) SetNow(now func() time.Time) {
	a.now = now
}

// ProcessMessage runs one full turn against the latest user message already
// appended to state.Messages. It always leaves exactly one new assistant
// message, even when a step panics.
func (a *BookingAgent) ProcessMessage(ctx context.Context, state *models.ConversationState) *models.ConversationState {
	logger := utils.GetLogger()
	responded := false
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic while processing message", zap.Any("panic", r))
			if !responded {
				state.Messages = append(state.Messages, models.ChatMessage{
					Role:      models.RoleAssistant,
					Content:   fallbackReply,
					Timestamp: a.now(),
				})
			}
		}
	}()

	clearTurnState(state)

	// A cancelled conversation starts over on the user's next message.
	if state.Stage == models.StageBookingCancelled {
		state.Reset()
	}

	a.extractInfo(ctx, state)

	next := a.route(state)
	logger.Debug("Routing turn",
		zap.String("node", string(next)), zap.String("stage", string(state.Stage)))

	switch next {
	case nodeAskTitle:
		state.Stage = models.StageAskingTitle
	case nodeAskDuration:
		state.Stage = models.StageAskingDuration
	case nodeAskSpecificDay:
		state.Stage = models.StageAskingSpecificDay
	case nodeCheckAvailability:
		a.checkAvailability(ctx, state)
		// A generic time whose default slot is free moves straight on to the
		// next missing piece instead of stalling on an intermediate stage.
		if state.Stage == models.StageTimeConfirmed {
			if !state.Entities.AttendeesConfirmed {
				state.Stage = models.StageAskingAttendees
			} else {
				a.confirmBooking(state)
			}
		}
	case nodeAskAttendees:
		state.Stage = models.StageAskingAttendees
	case nodeConfirmBooking:
		a.confirmBooking(state)
	case nodeCreateBooking:
		a.createBooking(ctx, state)
		if state.Stage == models.StageBookingConflict {
			a.handleConflict(ctx, state)
		}
	case nodeHandleConflict:
		a.handleConflict(ctx, state)
	case nodeGenerateResponse:
		// nothing to do before rendering
	}

	a.respond(ctx, state)
	responded = true
	return state
}

// clearTurnState drops per-turn fields so a previous turn's error or conflict
// text never leaks into this one.
func clearTurnState(state *models.ConversationState) {
	state.UserIntent = ""
	state.ErrorMessage = ""
	state.ConflictMessage = ""
	state.DefaultTimeFailed = ""
	state.GenericTimeFailed = ""
}

// extractInfo consolidates the latest user message into the accumulated
// entities and classifies the turn's intent.
func (a *BookingAgent) extractInfo(ctx context.Context, state *models.ConversationState) {
	message := state.LastUserMessage()
	if message == "" {
		return
	}
	logger := utils.GetLogger()

	if a.isNewBookingRequest(message, state) {
		logger.Info("New booking request after completed cycle, resetting conversation")
		state.Reset()
	}

	// "No" while being asked about attendees means a solo meeting, not a
	// cancellation, so it is resolved before the rejection check.
	if state.Stage == models.StageAskingAttendees && isNoAttendeesResponse(message) {
		state.Entities.Attendees = nil
		state.Entities.AttendeesConfirmed = true
		state.UserIntent = models.IntentProvideInfo
		return
	}

	extraction := a.ai.ExtractIntent(ctx, message)
	cand := extraction.Entities

	if extraction.Intent == models.IntentConfirmBooking || isConfirmation(message) {
		state.UserIntent = models.IntentConfirmBooking
		return
	}

	if extraction.Intent == models.IntentReject || isCancellation(message) {
		logger.Info("User cancelled booking")
		state.UserIntent = models.IntentCancelBooking
		state.Stage = models.StageBookingCancelled
		state.Entities = models.BookingEntities{}
		state.Availability = nil
		state.CurrentBooking = nil
		state.BookingSummary = nil
		return
	}

	if isTimeSelection(message, state.Stage) {
		if selected := extractSelectedTime(message); selected != "" {
			state.Entities.SelectedTime = selected
			state.Entities.TimeConfirmed = true
			logger.Debug("Time selected", zap.String("time", selected))
		}
	}

	if isDaySelection(message, state.Stage) {
		if day := extractSelectedDay(message); day != "" {
			state.Entities.SelectedDay = day
			state.Entities.DayConfirmed = true
			parsed := ParseSpecificDay(day, a.now())
			state.Entities.ParsedDate = &parsed
			logger.Debug("Day selected", zap.String("day", day))
		}
	}

	if duration, start, ok := extractTimeRange(message); ok {
		cand.Duration = duration
		cand.Time = start
	}

	if timeStr, attendees := extractCombinedInfo(message); timeStr != "" || len(attendees) > 0 {
		if timeStr != "" {
			cand.Time = timeStr
		}
		if len(attendees) > 0 {
			cand.Attendees = attendees
		}
	}

	mergeEntities(&state.Entities, cand, a.now())
	applyGenericTimeDefaults(&state.Entities)

	// While explicitly asking for a title, accept almost any short answer.
	if state.Entities.Title == "" && state.Stage == models.StageAskingTitle && acceptableAsTitle(message) {
		state.Entities.Title = titleCase(strings.Trim(strings.TrimSpace(message), `"'`))
	}

	if isNoAttendeesResponse(message) {
		state.Entities.Attendees = nil
		state.Entities.AttendeesConfirmed = true
	} else if len(state.Entities.Attendees) > 0 {
		state.Entities.AttendeesConfirmed = true
	}

	state.UserIntent = extraction.Intent
}

// isNewBookingRequest detects a fresh booking ask arriving right after a
// completed or failed booking. Bare acknowledgments never count.
func (a *BookingAgent) isNewBookingRequest(message string, state *models.ConversationState) bool {
	if state.Stage != models.StageBookingConfirmed && state.Stage != models.StageBookingFailed {
		return false
	}
	return containsBookingKeyword(message) && !isShortAcknowledgment(message)
}

// route picks the single workflow step for this turn. Order matters:
// explicit intents outrank the entity-gap checks.
func (a *BookingAgent) route(state *models.ConversationState) node {
	entities := state.Entities

	if state.UserIntent == models.IntentConfirmBooking {
		if hasCompleteBookingInfo(entities) {
			return nodeCreateBooking
		}
		return nodeGenerateResponse
	}

	if state.UserIntent == models.IntentCancelBooking || state.Stage == models.StageBookingCancelled {
		return nodeGenerateResponse
	}

	if state.Stage == models.StageBookingConflict {
		return nodeHandleConflict
	}

	switch {
	case entities.Title == "":
		return nodeAskTitle
	case entities.Duration == "":
		return nodeAskDuration
	case needsSpecificDay(entities):
		return nodeAskSpecificDay
	case entities.SelectedTime == "":
		return nodeCheckAvailability
	case !entities.AttendeesConfirmed:
		return nodeAskAttendees
	default:
		return nodeConfirmBooking
	}
}

func (a *BookingAgent) respond(ctx context.Context, state *models.ConversationState) {
	rc := models.RenderContext{
		Stage:             state.Stage,
		Entities:          state.Entities,
		Availability:      state.Availability,
		Booking:           state.CurrentBooking,
		Summary:           state.BookingSummary,
		ErrorMessage:      state.ErrorMessage,
		ConflictMessage:   state.ConflictMessage,
		DefaultTimeFailed: state.DefaultTimeFailed,
		GenericTimeFailed: state.GenericTimeFailed,
	}
	reply := a.ai.GenerateResponse(ctx, state.Messages, rc)
	state.Messages = append(state.Messages, models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: a.now(),
	})
}
