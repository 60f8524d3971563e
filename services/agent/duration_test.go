package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1 hour", time.Hour},
		{"2 hours", 2 * time.Hour},
		{"1.5 hours", 90 * time.Minute},
		{"half an hour", 30 * time.Minute},
		{"half hour", 30 * time.Minute},
		{"an hour", time.Hour},
		{"quarter hour", 15 * time.Minute},
		{"30 minutes", 30 * time.Minute},
		{"45 mins", 45 * time.Minute},
		{"90 minutes", 90 * time.Minute},
		{"thirty", 30 * time.Minute},
		{"fifteen", 15 * time.Minute},
		{"", time.Hour},
		{"some meeting", time.Hour},
		{"2 hrs", 2 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}

func TestParseDurationDefaultsOnBareHourWord(t *testing.T) {
	assert.Equal(t, time.Hour, ParseDuration("hour"))
	assert.Equal(t, time.Hour, ParseDuration("about hours"))
}
