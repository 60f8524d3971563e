package models

// EntityCandidates is the best-effort entity mapping extracted from a single
// utterance. Empty fields mean "not mentioned"; the agent's merge policy
// decides what actually lands on the conversation.
type EntityCandidates struct {
	Title     string   `json:"title,omitempty"`
	Date      string   `json:"date,omitempty"`
	Time      string   `json:"time,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}

// Extraction is the result of intent/entity analysis for one message.
type Extraction struct {
	Intent   string           `json:"intent"`
	Entities EntityCandidates `json:"entities"`
}

// Coarse intent labels. Advisory only; routing is driven by accumulated
// entities once they are populated.
const (
	IntentBookAppointment   = "book_appointment"
	IntentCheckAvailability = "check_availability"
	IntentProvideInfo       = "provide_info"
	IntentConfirmBooking    = "confirm_booking"
	IntentCancelBooking     = "cancel_booking"
	IntentReject            = "reject"
)

// RenderContext carries everything the response renderer may substitute into
// a reply. It is a snapshot; rendering it twice yields the same output.
type RenderContext struct {
	Stage             Stage           `json:"stage"`
	Entities          BookingEntities `json:"entities"`
	Availability      []AvailableSlot `json:"availability,omitempty"`
	Booking           *CalendarEvent  `json:"booking,omitempty"`
	Summary           *BookingSummary `json:"booking_summary,omitempty"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	ConflictMessage   string          `json:"conflict_message,omitempty"`
	DefaultTimeFailed string          `json:"default_time_failed,omitempty"`
	GenericTimeFailed string          `json:"generic_time_failed,omitempty"`
}
