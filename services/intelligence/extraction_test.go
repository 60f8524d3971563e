package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"schedulo/models"
)

// ruleService has no API key, so extraction always takes the deterministic path.
func ruleService() *DefaultService {
	return NewDefaultService("")
}

func TestExtractIntentShortCircuitsConfirmations(t *testing.T) {
	svc := ruleService()
	ctx := context.Background()

	for _, msg := range []string{"yes", "Yep", "book it", "go ahead", " OKAY "} {
		extraction := svc.ExtractIntent(ctx, msg)
		assert.Equal(t, models.IntentConfirmBooking, extraction.Intent, msg)
	}
	for _, msg := range []string{"no", "nope", "cancel", "not now"} {
		extraction := svc.ExtractIntent(ctx, msg)
		assert.Equal(t, models.IntentReject, extraction.Intent, msg)
	}
}

func TestRuleBasedTitleExtraction(t *testing.T) {
	tests := []struct {
		message string
		title   string
	}{
		{"Book a meeting about Budget Review", "Budget Review"},
		{"schedule a call regarding the Q3 launch", "The Q3 Launch"},
		{"we need to discuss hiring plans", "Hiring Plans"},
		{"the topic is quarterly planning", "Quarterly Planning"},
		{"Project Kickoff", "Project Kickoff"},
		{"let's talk about pricing strategy", "Pricing Strategy"},
	}
	for _, tt := range tests {
		extraction := ruleBasedExtraction(tt.message)
		assert.Equal(t, tt.title, extraction.Entities.Title, tt.message)
	}
}

func TestRuleBasedTitleRejectsNonAnswers(t *testing.T) {
	for _, msg := range []string{"tomorrow", "what time", "yes", "3 pm"} {
		extraction := ruleBasedExtraction(msg)
		assert.Empty(t, extraction.Entities.Title, msg)
	}
}

func TestRuleBasedDurationExtraction(t *testing.T) {
	tests := []struct {
		message  string
		duration string
	}{
		{"make it 1 hour", "1 hour"},
		{"2 hours please", "2 hours"},
		{"1.5 hours", "1.5 hours"},
		{"half an hour", "30 minutes"},
		{"45 minutes", "45 minutes"},
		{"an hour works", "1 hour"},
		{"no duration here", ""},
	}
	for _, tt := range tests {
		extraction := ruleBasedExtraction(tt.message)
		assert.Equal(t, tt.duration, extraction.Entities.Duration, tt.message)
	}
}

func TestRuleBasedTimeAndDateExtraction(t *testing.T) {
	extraction := ruleBasedExtraction("tomorrow at 3:30 pm")
	assert.Equal(t, "3:30 pm", extraction.Entities.Time)
	assert.Equal(t, "tomorrow", extraction.Entities.Date)

	extraction = ruleBasedExtraction("next week sometime")
	assert.Equal(t, "next week", extraction.Entities.Date)
	assert.Empty(t, extraction.Entities.Time)

	extraction = ruleBasedExtraction("friday at 10am")
	assert.Equal(t, "friday", extraction.Entities.Date)
	assert.Equal(t, "10am", extraction.Entities.Time)
}

func TestRuleBasedAttendeeExtraction(t *testing.T) {
	extraction := ruleBasedExtraction("invite alice@example.com and bob@corp.io please")
	assert.Equal(t, []string{"alice@example.com", "bob@corp.io"}, extraction.Entities.Attendees)
}

func TestDetermineIntent(t *testing.T) {
	tests := []struct {
		message string
		intent  string
	}{
		{"book a meeting", models.IntentBookAppointment},
		{"can you schedule something", models.IntentBookAppointment},
		{"are you free tomorrow", models.IntentCheckAvailability},
		{"check my calendar", models.IntentCheckAvailability},
		{"tomorrow at 3pm", models.IntentProvideInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.intent, determineIntent(tt.message), tt.message)
	}
}

func TestCleanExtractionCoercesLooseModelOutput(t *testing.T) {
	extraction := cleanExtraction("book_appointment", map[string]any{
		"title":     []any{"Budget", "Review"},
		"date":      "null",
		"time":      "3pm",
		"duration":  nil,
		"attendees": []any{"alice@example.com", ""},
	})

	assert.Equal(t, models.IntentBookAppointment, extraction.Intent)
	assert.Equal(t, "Budget Review", extraction.Entities.Title)
	assert.Empty(t, extraction.Entities.Date)
	assert.Equal(t, "3pm", extraction.Entities.Time)
	assert.Empty(t, extraction.Entities.Duration)
	assert.Equal(t, []string{"alice@example.com"}, extraction.Entities.Attendees)
}

func TestCleanExtractionAttendeesAsSingleString(t *testing.T) {
	extraction := cleanExtraction("provide_info", map[string]any{
		"attendees": "alice@example.com",
	})
	assert.Equal(t, []string{"alice@example.com"}, extraction.Entities.Attendees)
}
