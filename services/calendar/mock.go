// File: services/calendar/mock.go
package calendar

import (
	"context"
	"sync"
	"time"

	"schedulo/models"

	"github.com/google/uuid"
)

// MockService is an in-memory calendar used in tests and when no Google
// credentials are configured. It shares the slot generation logic with the
// real service so availability behaves identically.
type MockService struct {
	mu     sync.Mutex
	events []models.CalendarEvent
	now    func() time.Time

	CreateErr       error
	AvailabilityErr error
}

func NewMockService() *MockService {
	return &MockService{now: time.Now}
}

// SetNow pins the clock, so tests get deterministic "today" slot trimming.
func (m *MockService) SetNow(now func() time.Time) {
	m.now = now
}

// Seed adds an event directly without conflict checks.
func (m *MockService) Seed(event models.CalendarEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	m.events = append(m.events, event)
}

func (m *MockService) GetAvailability(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error) {
	if m.AvailabilityErr != nil {
		return nil, m.AvailabilityErr
	}
	m.mu.Lock()
	var busy []BusyInterval
	for _, ev := range m.events {
		if sameDay(ev.Start, start) {
			busy = append(busy, BusyInterval{Start: ev.Start, End: ev.End})
		}
	}
	m.mu.Unlock()
	return BuildFreeSlots(busy, start, m.now()), nil
}

func (m *MockService) GetEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CalendarEvent
	for _, ev := range m.events {
		if ev.End.After(start) && ev.Start.Before(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *MockService) CreateEvent(ctx context.Context, booking models.BookingRequest) (*models.CalendarEvent, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	event := models.CalendarEvent{
		ID:          uuid.NewString(),
		Title:       booking.Title,
		Start:       booking.Start,
		End:         booking.End,
		Description: booking.Description,
		Status:      "confirmed",
		Attendees:   append([]string(nil), booking.Attendees...),
	}
	m.events = append(m.events, event)
	return &event, nil
}

func (m *MockService) UpdateEvent(ctx context.Context, eventID string, booking models.BookingRequest) (*models.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ev := range m.events {
		if ev.ID == eventID {
			m.events[i].Title = booking.Title
			m.events[i].Start = booking.Start
			m.events[i].End = booking.End
			m.events[i].Description = booking.Description
			m.events[i].Attendees = append([]string(nil), booking.Attendees...)
			m.events[i].Status = "updated"
			updated := m.events[i]
			return &updated, nil
		}
	}
	return nil, ErrEventNotFound
}

func (m *MockService) DeleteEvent(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ev := range m.events {
		if ev.ID == eventID {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}
