package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
	}{
		{"3:00 PM", 15, 0},
		{"3:30 pm", 15, 30},
		{"11:15 am", 11, 15},
		{"12:00 pm", 12, 0},
		{"12:00 am", 0, 0},
		{"3 PM", 15, 0},
		{"9am", 9, 0},
		// 24h clock; small hours read as afternoon
		{"15:00", 15, 0},
		{"3:00", 15, 0},
		{"10:30", 10, 30},
		// bare hour: 1-11 assumed PM
		{"3", 15, 0},
		{"11", 23, 0},
		{"12", 12, 0},
		// generic words resolve to fixed defaults
		{"afternoon", 14, 0},
		{"morning", 10, 0},
		{"evening", 18, 0},
		// unparseable falls back to 2 PM
		{"whenever", 14, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseClockTime(tt.input)
			assert.Equal(t, tt.wantHour, got.Hour, "hour for %q", tt.input)
			assert.Equal(t, tt.wantMinute, got.Minute, "minute for %q", tt.input)
		})
	}
}

func TestClockTimeDisplay(t *testing.T) {
	assert.Equal(t, "3:00 PM", ClockTime{15, 0}.Display())
	assert.Equal(t, "10:30 AM", ClockTime{10, 30}.Display())
	assert.Equal(t, "12:00 AM", ClockTime{0, 0}.Display())
}

func TestIsSpecificTime(t *testing.T) {
	assert.True(t, IsSpecificTime("3:00 PM"))
	assert.True(t, IsSpecificTime("3 pm"))
	assert.True(t, IsSpecificTime("tomorrow at 10am"))

	assert.False(t, IsSpecificTime("afternoon"))
	assert.False(t, IsSpecificTime("morning"))
	assert.False(t, IsSpecificTime("3"))
	assert.False(t, IsSpecificTime("15:00"))
}
