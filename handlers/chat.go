package handlers

import (
	"net/http"
	"strings"
	"time"

	"schedulo/models"
	"schedulo/services/agent"
	"schedulo/services/session"
	"schedulo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler wires the booking agent to the HTTP surface. One handler
// instance serves all sessions; per-session state lives in the store.
type ChatHandler struct {
	Agent    *agent.BookingAgent
	Sessions session.Store
}

func NewChatHandler(bookingAgent *agent.BookingAgent, sessions session.Store) *ChatHandler {
	return &ChatHandler{Agent: bookingAgent, Sessions: sessions}
}

// postBookingAcks are replies that should not restart the dialogue after a
// completed booking.
var postBookingAcks = map[string]bool{
	"yes": true, "no": true, "ok": true, "thanks": true, "thank you": true,
}

// HandleChat processes one user message for the session given in the
// session_id query parameter (default "default") and returns the assistant's
// reply plus any structured data the frontend should display.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	sessionID := c.DefaultQuery("session_id", "default")

	state, err := h.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to load session", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load conversation", err.Error())
		return
	}

	// Anything beyond a bare acknowledgment after a confirmed booking starts
	// a fresh cycle while keeping the transcript.
	if state.Stage == models.StageBookingConfirmed && !postBookingAcks[normalizeAck(req.Content)] {
		logger.Info("Resetting conversation after completed booking", zap.String("sessionID", sessionID))
		state.Entities = models.BookingEntities{}
		state.Availability = nil
		state.CurrentBooking = nil
		state.Stage = models.StageInitial
		state.UserIntent = ""
	}

	state.Messages = append(state.Messages, models.ChatMessage{
		Role:      models.RoleUser,
		Content:   req.Content,
		Timestamp: time.Now(),
	})

	state = h.Agent.ProcessMessage(c.Request.Context(), state)

	if err := h.Sessions.Set(c.Request.Context(), sessionID, state); err != nil {
		logger.Error("Failed to persist session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, buildChatResponse(state))
}

// buildChatResponse derives the structured extras from the post-turn state:
// booking data only for a confirmed booking with an ID, suggested times only
// while slots are on display, and the confirmation flag only while awaiting
// the final yes.
func buildChatResponse(state *models.ConversationState) models.ChatResponse {
	resp := models.ChatResponse{Message: state.LastAssistantMessage()}
	if resp.Message == "" {
		resp.Message = "I'm here to help you schedule meetings. What would you like to book?"
	}

	switch {
	case state.Stage == models.StageBookingConfirmed &&
		state.CurrentBooking != nil && state.CurrentBooking.ID != "":
		resp.BookingData = state.CurrentBooking

	case (state.Stage == models.StageShowingSlots || state.Stage == models.StageShowingAlternatives) &&
		len(state.Availability) > 0:
		limit := len(state.Availability)
		if limit > 8 {
			limit = 8
		}
		for _, slot := range state.Availability[:limit] {
			resp.SuggestedTimes = append(resp.SuggestedTimes, slot.Display)
		}

	case state.Stage == models.StageAwaitingConfirmation:
		resp.RequiresConfirmation = true
	}
	return resp
}

func normalizeAck(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}
