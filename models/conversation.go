package models

import "time"

// Stage is the booking dialogue's current position. The router in services/agent
// is the only code that moves a conversation between stages.
type Stage string

const (
	StageInitial              Stage = "initial"
	StageAskingTitle          Stage = "asking_title"
	StageAskingDuration       Stage = "asking_duration"
	StageAskingSpecificDay    Stage = "asking_specific_day"
	StageShowingSlots         Stage = "showing_slots"
	StageShowingAlternatives  Stage = "showing_alternative_slots"
	StageNoAvailability       Stage = "no_availability"
	StageNoAlternatives       Stage = "no_alternatives"
	StageBookingConflict      Stage = "booking_conflict"
	StageTimeConfirmed        Stage = "time_confirmed"
	StageAskingAttendees      Stage = "asking_attendees"
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
	StageBookingConfirmed     Stage = "booking_confirmed"
	StageBookingFailed        Stage = "booking_failed"
	StageBookingCancelled     Stage = "booking_cancelled"
	StageAvailabilityError    Stage = "availability_error"
	StageConflictError        Stage = "conflict_error"
)

// BookingEntities is the accumulated entity set for one booking cycle. Fields
// are merged monotonically: a later turn never blanks a populated scalar, and
// attendees replace wholesale when a new non-empty candidate arrives.
type BookingEntities struct {
	Title    string `json:"title,omitempty"`
	Duration string `json:"duration,omitempty"`

	Date       string     `json:"date,omitempty"`
	ParsedDate *time.Time `json:"parsed_date,omitempty"`

	Time          string `json:"time,omitempty"`
	RequestedTime string `json:"requested_time,omitempty"`
	SelectedTime  string `json:"selected_time,omitempty"`
	TimeConfirmed bool   `json:"time_confirmed,omitempty"`
	TimeSource    string `json:"time_source,omitempty"`

	Attendees          []string `json:"attendees,omitempty"`
	AttendeesConfirmed bool     `json:"attendees_confirmed,omitempty"`

	DayConfirmed bool   `json:"day_confirmed,omitempty"`
	SelectedDay  string `json:"selected_day,omitempty"`

	// Transient disambiguation markers for generic time words ("afternoon").
	DefaultTime       string `json:"default_time,omitempty"`
	GenericTimeUsed   string `json:"generic_time_used,omitempty"`
	FailedDefaultTime string `json:"failed_default_time,omitempty"`
}

// ConversationState is the full per-session state, one value per turn.
type ConversationState struct {
	Messages     []ChatMessage   `json:"messages"`
	UserIntent   string          `json:"user_intent,omitempty"`
	Entities     BookingEntities `json:"extracted_entities"`
	Availability []AvailableSlot `json:"calendar_availability,omitempty"`

	CurrentBooking *CalendarEvent  `json:"current_booking,omitempty"`
	BookingSummary *BookingSummary `json:"booking_summary,omitempty"`
	Stage          Stage           `json:"conversation_stage"`

	ErrorMessage      string `json:"error_message,omitempty"`
	ConflictMessage   string `json:"conflict_message,omitempty"`
	DefaultTimeFailed string `json:"default_time_failed,omitempty"`
	GenericTimeFailed string `json:"generic_time_failed,omitempty"`
}

// NewConversationState returns an empty conversation at the initial stage.
func NewConversationState() *ConversationState {
	return &ConversationState{Stage: StageInitial}
}

// LastUserMessage returns the content of the most recent user message, or "".
func (s *ConversationState) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}

// LastAssistantMessage returns the content of the most recent assistant message, or "".
func (s *ConversationState) LastAssistantMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}

// Reset clears entities, availability and booking data for a fresh cycle.
func (s *ConversationState) Reset() {
	s.Entities = BookingEntities{}
	s.Availability = nil
	s.CurrentBooking = nil
	s.BookingSummary = nil
	s.Stage = StageInitial
	s.UserIntent = ""
	s.ErrorMessage = ""
	s.ConflictMessage = ""
	s.DefaultTimeFailed = ""
	s.GenericTimeFailed = ""
}
