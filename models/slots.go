package models

import "time"

// AvailableSlot is a candidate free interval offered to the user.
type AvailableSlot struct {
	Start       time.Time `json:"start"`
	Display     string    `json:"display"`      // e.g. "02:30 PM"
	FullDisplay string    `json:"full_display"` // e.g. "Friday, March 14: 02:30 PM"
}
