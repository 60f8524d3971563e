package models

import "time"

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ChatMessage is a single message in a conversation transcript.
type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Content string `json:"content" binding:"required"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Message              string         `json:"message"`
	BookingData          *CalendarEvent `json:"booking_data,omitempty"`
	SuggestedTimes       []string       `json:"suggested_times,omitempty"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
}
