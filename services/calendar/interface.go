package calendar

import (
	"context"
	"errors"
	"time"

	"schedulo/models"
)

// ErrEventNotFound is returned when an update or delete targets an unknown event.
var ErrEventNotFound = errors.New("calendar event not found")

// Service defines the calendar backend boundary the booking agent depends on.
type Service interface {
	// GetAvailability returns free candidate slots within the window,
	// busy-aware, ordered by start time.
	GetAvailability(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error)
	// GetEvents lists concrete events within the window, used for precise
	// conflict re-verification.
	GetEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
	// CreateEvent submits a booking. A missing ID on the returned event is a
	// booking failure.
	CreateEvent(ctx context.Context, booking models.BookingRequest) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, eventID string, booking models.BookingRequest) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
