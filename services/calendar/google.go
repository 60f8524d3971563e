// File: services/calendar/google.go
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"schedulo/models"
	"schedulo/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleService talks to the Google Calendar v3 API. Availability answers are
// cached; any mutation invalidates the cache immediately.
type GoogleService struct {
	svc        *gcal.Service
	calendarID string
	cache      *AvailabilityCache
	now        func() time.Time
}

// NewGoogleService builds a calendar client from a stored OAuth client
// secret and token file. Credential acquisition itself is handled elsewhere;
// this only loads what is already on disk.
func NewGoogleService(ctx context.Context, credentialsFile, tokenFile, calendarID string, cache *AvailabilityCache) (*GoogleService, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(creds, gcal.CalendarScope, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}

	tokenData, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleService{
		svc:        svc,
		calendarID: calendarID,
		cache:      cache,
		now:        time.Now,
	}, nil
}

func (g *GoogleService) GetAvailability(ctx context.Context, start, end time.Time) ([]models.AvailableSlot, error) {
	logger := utils.GetLogger()

	if slots, ok := g.cache.Get(ctx, start, end); ok {
		logger.Debug("Using cached availability", zap.Time("start", start), zap.Time("end", end))
		return slots, nil
	}

	// Expand to the full day so the free/busy answer covers every candidate slot.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	resp, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: dayStart.Format(time.RFC3339),
		TimeMax: dayEnd.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var busy []BusyInterval
	if cal, ok := resp.Calendars[g.calendarID]; ok {
		for _, period := range cal.Busy {
			bStart, err1 := time.Parse(time.RFC3339, period.Start)
			bEnd, err2 := time.Parse(time.RFC3339, period.End)
			if err1 != nil || err2 != nil {
				logger.Warn("Skipping unparseable busy period",
					zap.String("start", period.Start), zap.String("end", period.End))
				continue
			}
			busy = append(busy, BusyInterval{Start: bStart.Local(), End: bEnd.Local()})
		}
	}

	slots := BuildFreeSlots(busy, start, g.now())
	g.cache.Set(ctx, start, end, slots)

	logger.Debug("Generated availability",
		zap.Int("busyPeriods", len(busy)), zap.Int("slots", len(slots)))
	return slots, nil
}

func (g *GoogleService) GetEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	resp, err := g.svc.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(50).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		evStart, ok1 := eventTime(item.Start)
		evEnd, ok2 := eventTime(item.End)
		if !ok1 || !ok2 {
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:          item.Id,
			Title:       item.Summary,
			Start:       evStart,
			End:         evEnd,
			Description: item.Description,
			HTMLLink:    item.HtmlLink,
			Status:      item.Status,
			Attendees:   attendeeEmails(item.Attendees),
		})
	}
	return events, nil
}

func (g *GoogleService) CreateEvent(ctx context.Context, booking models.BookingRequest) (*models.CalendarEvent, error) {
	logger := utils.GetLogger()

	event := &gcal.Event{
		Summary:     booking.Title,
		Description: booking.Description,
		Start:       &gcal.EventDateTime{DateTime: booking.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: booking.End.Format(time.RFC3339)},
	}
	for _, email := range booking.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{
			Email:          email,
			ResponseStatus: "needsAction",
		})
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	g.cache.Invalidate(ctx)
	logger.Info("Calendar event created", zap.String("eventID", created.Id), zap.String("title", booking.Title))

	evStart, _ := eventTime(created.Start)
	evEnd, _ := eventTime(created.End)
	return &models.CalendarEvent{
		ID:          created.Id,
		Title:       created.Summary,
		Start:       evStart,
		End:         evEnd,
		Description: created.Description,
		HTMLLink:    created.HtmlLink,
		Status:      "confirmed",
		Attendees:   attendeeEmails(created.Attendees),
	}, nil
}

func (g *GoogleService) UpdateEvent(ctx context.Context, eventID string, booking models.BookingRequest) (*models.CalendarEvent, error) {
	existing, err := g.svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}

	existing.Summary = booking.Title
	existing.Description = booking.Description
	existing.Start = &gcal.EventDateTime{DateTime: booking.Start.Format(time.RFC3339)}
	existing.End = &gcal.EventDateTime{DateTime: booking.End.Format(time.RFC3339)}
	existing.Attendees = nil
	for _, email := range booking.Attendees {
		existing.Attendees = append(existing.Attendees, &gcal.EventAttendee{Email: email})
	}

	updated, err := g.svc.Events.Update(g.calendarID, eventID, existing).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}

	g.cache.Invalidate(ctx)

	evStart, _ := eventTime(updated.Start)
	evEnd, _ := eventTime(updated.End)
	return &models.CalendarEvent{
		ID:        updated.Id,
		Title:     updated.Summary,
		Start:     evStart,
		End:       evEnd,
		HTMLLink:  updated.HtmlLink,
		Status:    "updated",
		Attendees: attendeeEmails(updated.Attendees),
	}, nil
}

func (g *GoogleService) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.svc.Events.Delete(g.calendarID, eventID).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	g.cache.Invalidate(ctx)
	return nil
}

// eventTime handles both timed events (DateTime) and all-day events (Date).
func eventTime(edt *gcal.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t.Local(), true
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func attendeeEmails(attendees []*gcal.EventAttendee) []string {
	var emails []string
	for _, a := range attendees {
		if a != nil && a.Email != "" {
			emails = append(emails, a.Email)
		}
	}
	return emails
}
