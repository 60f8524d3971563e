package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedulo/models"
)

func TestConfirmationAndCancellationWords(t *testing.T) {
	for _, msg := range []string{"yes", "Yep", " confirm ", "book it", "OKAY"} {
		assert.True(t, isConfirmation(msg), msg)
	}
	assert.False(t, isConfirmation("yes please book the room"))

	for _, msg := range []string{"no", "cancel", "Nevermind", "no thanks", "not now"} {
		assert.True(t, isCancellation(msg), msg)
	}
	// Phrase matches are substring-based, bare-word matches are exact.
	assert.True(t, isCancellation("no, cancel the whole thing"))
	assert.True(t, isCancellation("please cancel it"))
	assert.False(t, isCancellation("no attendees needed"))
}

func TestIsNoAttendeesResponse(t *testing.T) {
	for _, msg := range []string{"no", "none", "just me", "Only Me", "nobody"} {
		assert.True(t, isNoAttendeesResponse(msg), msg)
	}
	assert.False(t, isNoAttendeesResponse("no one else except bob@example.com"))
}

func TestIsTimeSelectionIsStageGated(t *testing.T) {
	assert.True(t, isTimeSelection("3:00 PM", models.StageShowingSlots))
	assert.True(t, isTimeSelection("3pm", models.StageShowingAlternatives))
	assert.True(t, isTimeSelection("10", models.StageShowingSlots))

	// The same text outside a slot-offering stage is not a selection.
	assert.False(t, isTimeSelection("3:00 PM", models.StageAskingDuration))
	assert.False(t, isTimeSelection("3:00 PM", models.StageInitial))
	assert.False(t, isTimeSelection("sometime later", models.StageShowingSlots))
}

func TestExtractSelectedTime(t *testing.T) {
	assert.Equal(t, "3:00 PM", extractSelectedTime("let's do 3:00 PM"))
	assert.Equal(t, "3 pm", extractSelectedTime("3 pm works"))
	assert.Equal(t, "10", extractSelectedTime("10"))
	assert.Equal(t, "whenever", extractSelectedTime(" whenever "))
}

func TestDaySelection(t *testing.T) {
	assert.True(t, isDaySelection("friday", models.StageAskingSpecificDay))
	assert.True(t, isDaySelection("how about Friday?", models.StageAskingSpecificDay))
	assert.False(t, isDaySelection("friday", models.StageInitial))
	assert.False(t, isDaySelection("sometime", models.StageAskingSpecificDay))

	assert.Equal(t, "friday", extractSelectedDay("how about Friday?"))
	assert.Equal(t, "whenever", extractSelectedDay("Whenever"))
}

func TestExtractTimeRange(t *testing.T) {
	duration, start, ok := extractTimeRange("book me 3-5 pm tomorrow")
	assert.True(t, ok)
	assert.Equal(t, "2 hours", duration)
	assert.Equal(t, "3 pm", start)

	duration, start, ok = extractTimeRange("between 9 to 10 am")
	assert.True(t, ok)
	assert.Equal(t, "1 hour", duration)
	assert.Equal(t, "9 am", start)

	_, _, ok = extractTimeRange("around three")
	assert.False(t, ok)
}

func TestExtractCombinedInfo(t *testing.T) {
	timeStr, attendees := extractCombinedInfo("at 2:30 PM with alice@example.com and bob@corp.io")
	assert.Equal(t, "2:30 PM", timeStr)
	assert.Equal(t, []string{"alice@example.com", "bob@corp.io"}, attendees)

	timeStr, attendees = extractCombinedInfo("no specifics yet")
	assert.Empty(t, timeStr)
	assert.Empty(t, attendees)
}

func TestAcceptableAsTitle(t *testing.T) {
	assert.True(t, acceptableAsTitle("Budget Review"))
	assert.True(t, acceptableAsTitle(`"Q3 planning"`))

	assert.False(t, acceptableAsTitle(""))
	assert.False(t, acceptableAsTitle("i don't know"))
	assert.False(t, acceptableAsTitle("what time works for you"))
	assert.False(t, acceptableAsTitle("this is a very long rambling answer that is not a title"))
}

func TestContainsBookingKeyword(t *testing.T) {
	assert.True(t, containsBookingKeyword("I want to book a meeting"))
	assert.True(t, containsBookingKeyword("check my availability"))
	assert.False(t, containsBookingKeyword("thanks a lot"))
}
