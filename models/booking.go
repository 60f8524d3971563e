package models

import "time"

// BookingRequest is the event submitted to the calendar backend.
type BookingRequest struct {
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// CalendarEvent is the calendar backend's record of a created or listed event.
// Attendees are plain email strings; backend attendee objects are normalized
// before the event is stored on the conversation.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Description string    `json:"description,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
	Status      string    `json:"status,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// BookingSummary is a rendering-ready snapshot shown at confirmation time.
type BookingSummary struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Duration  string   `json:"duration"`
	Attendees []string `json:"attendees"`
}
