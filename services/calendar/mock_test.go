package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulo/models"
)

func TestMockServiceEventLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewMockService()
	svc.SetNow(func() time.Time { return slotsNow })
	day := slotsNow.AddDate(0, 0, 1)

	created, err := svc.CreateEvent(ctx, models.BookingRequest{
		Title:     "Planning",
		Start:     at(day, 10, 0),
		End:       at(day, 11, 0),
		Attendees: []string{"alice@example.com"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "confirmed", created.Status)

	events, err := svc.GetEvents(ctx, at(day, 0, 0), at(day, 23, 59))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Planning", events[0].Title)

	updated, err := svc.UpdateEvent(ctx, created.ID, models.BookingRequest{
		Title: "Planning (moved)",
		Start: at(day, 12, 0),
		End:   at(day, 13, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Planning (moved)", updated.Title)
	assert.Equal(t, at(day, 12, 0), updated.Start)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	events, err = svc.GetEvents(ctx, at(day, 0, 0), at(day, 23, 59))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMockServiceUnknownEvent(t *testing.T) {
	ctx := context.Background()
	svc := NewMockService()

	_, err := svc.UpdateEvent(ctx, "missing", models.BookingRequest{})
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, "missing"), ErrEventNotFound)
}

func TestMockServiceAvailabilityReflectsEvents(t *testing.T) {
	ctx := context.Background()
	svc := NewMockService()
	svc.SetNow(func() time.Time { return slotsNow })
	day := slotsNow.AddDate(0, 0, 1)
	svc.Seed(models.CalendarEvent{
		Title: "Early sync",
		Start: at(day, 6, 0),
		End:   at(day, 7, 0),
	})

	slots, err := svc.GetAvailability(ctx, at(day, 0, 0), at(day, 23, 59))
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(day, 7, 0), slots[0].Start)
}
