package handlers

import (
	"net/http"
	"time"

	"schedulo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetConversation returns the full transcript and state for a session.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	sessionID := c.Param("session_id")

	state, err := h.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve conversation", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":    sessionID,
		"message_count": len(state.Messages),
		"conversation":  state,
		"last_updated":  time.Now().Format(time.RFC3339),
	})
}

// ClearConversation drops a session's stored state.
func (h *ChatHandler) ClearConversation(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.Sessions.Clear(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear conversation", err.Error())
		return
	}

	utils.GetLogger().Info("Cleared conversation", zap.String("sessionID", sessionID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation " + sessionID + " cleared successfully",
	})
}
