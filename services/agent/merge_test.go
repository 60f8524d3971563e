package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulo/models"
)

var mergeNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

func TestMergeEntitiesIsMonotonic(t *testing.T) {
	entities := models.BookingEntities{}

	mergeEntities(&entities, models.EntityCandidates{Title: "budget review"}, mergeNow)
	assert.Equal(t, "Budget Review", entities.Title)

	// An empty candidate must not blank populated fields.
	mergeEntities(&entities, models.EntityCandidates{Duration: "1 hour"}, mergeNow)
	assert.Equal(t, "Budget Review", entities.Title)
	assert.Equal(t, "1 hour", entities.Duration)

	mergeEntities(&entities, models.EntityCandidates{}, mergeNow)
	assert.Equal(t, "Budget Review", entities.Title)
	assert.Equal(t, "1 hour", entities.Duration)
}

func TestMergeEntitiesParsesDate(t *testing.T) {
	entities := models.BookingEntities{}
	mergeEntities(&entities, models.EntityCandidates{Date: "tomorrow"}, mergeNow)

	assert.Equal(t, "tomorrow", entities.Date)
	require.NotNil(t, entities.ParsedDate)
	assert.Equal(t, mergeNow.AddDate(0, 0, 1).Day(), entities.ParsedDate.Day())
}

func TestMergeEntitiesPromotesSpecificTimeOnly(t *testing.T) {
	specific := models.BookingEntities{}
	mergeEntities(&specific, models.EntityCandidates{Time: "3:00 PM"}, mergeNow)
	assert.Equal(t, "3:00 PM", specific.Time)
	assert.Equal(t, "3:00 PM", specific.SelectedTime)

	generic := models.BookingEntities{}
	mergeEntities(&generic, models.EntityCandidates{Time: "afternoon"}, mergeNow)
	assert.Equal(t, "afternoon", generic.Time)
	assert.Equal(t, "afternoon", generic.RequestedTime)
	assert.Empty(t, generic.SelectedTime, "vague times must wait for availability resolution")

	// A lone digit is ambiguous ("1 hour" leaks a bare "1"); never promote it.
	bare := models.BookingEntities{}
	mergeEntities(&bare, models.EntityCandidates{Time: "1"}, mergeNow)
	assert.Empty(t, bare.SelectedTime)
}

func TestMergeEntitiesReplacesAttendeesWholesale(t *testing.T) {
	entities := models.BookingEntities{Attendees: []string{"a@example.com", "b@example.com"}}

	mergeEntities(&entities, models.EntityCandidates{Attendees: []string{"c@example.com"}}, mergeNow)
	assert.Equal(t, []string{"c@example.com"}, entities.Attendees)

	mergeEntities(&entities, models.EntityCandidates{Attendees: nil}, mergeNow)
	assert.Equal(t, []string{"c@example.com"}, entities.Attendees)
}

func TestApplyGenericTimeDefaults(t *testing.T) {
	tests := []struct {
		time    string
		defTime string
		generic string
	}{
		{"afternoon", "2:00 PM", "afternoon"},
		{"tomorrow morning", "10:00 AM", "morning"},
		{"evening", "6:00 PM", "evening"},
		{"night", "8:00 PM", "night"},
	}
	for _, tt := range tests {
		entities := models.BookingEntities{Time: tt.time, RequestedTime: tt.time}
		applyGenericTimeDefaults(&entities)
		assert.Equal(t, tt.defTime, entities.DefaultTime, tt.time)
		assert.Equal(t, tt.generic, entities.GenericTimeUsed, tt.time)
		assert.Equal(t, tt.defTime, entities.RequestedTime, tt.time)
	}

	untouched := models.BookingEntities{Time: "3:00 PM", RequestedTime: "3:00 PM"}
	applyGenericTimeDefaults(&untouched)
	assert.Empty(t, untouched.DefaultTime)
	assert.Equal(t, "3:00 PM", untouched.RequestedTime)
}

func TestHasCompleteBookingInfo(t *testing.T) {
	date := mergeNow.AddDate(0, 0, 1)
	complete := models.BookingEntities{
		Title:              "Budget Review",
		Duration:           "1 hour",
		SelectedTime:       "3:00 PM",
		ParsedDate:         &date,
		AttendeesConfirmed: true,
	}
	assert.True(t, hasCompleteBookingInfo(complete))

	missing := complete
	missing.SelectedTime = ""
	assert.False(t, hasCompleteBookingInfo(missing))

	missing = complete
	missing.AttendeesConfirmed = false
	assert.False(t, hasCompleteBookingInfo(missing))

	missing = complete
	missing.ParsedDate = nil
	assert.False(t, hasCompleteBookingInfo(missing))
}

func TestNeedsSpecificDay(t *testing.T) {
	assert.True(t, needsSpecificDay(models.BookingEntities{Date: "next week"}))
	assert.False(t, needsSpecificDay(models.BookingEntities{Date: "next week", DayConfirmed: true}))
	assert.False(t, needsSpecificDay(models.BookingEntities{Date: "tomorrow"}))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Budget Review", titleCase("budget review"))
	assert.Equal(t, "Q3 Planning", titleCase("q3 PLANNING"))
	assert.Equal(t, "One-On-One", titleCase("one-on-one"))
}
