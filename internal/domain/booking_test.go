package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_OnlyListedEdges(t *testing.T) {
	all := []BookingStatus{
		BookingPending, BookingAccepted, BookingInProgress, BookingCompleted, BookingCancelled,
	}
	allowed := map[[2]BookingStatus]bool{
		{BookingPending, BookingAccepted}:     true,
		{BookingPending, BookingCancelled}:    true,
		{BookingAccepted, BookingInProgress}:  true,
		{BookingInProgress, BookingCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[[2]BookingStatus{from, to}], got,
				"transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingCompleted.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingAccepted.Terminal())
	assert.False(t, BookingInProgress.Terminal())
}

func TestBookingStatus_ChatEnabled(t *testing.T) {
	assert.False(t, BookingPending.ChatEnabled())
	assert.True(t, BookingAccepted.ChatEnabled())
	assert.True(t, BookingInProgress.ChatEnabled())
	assert.False(t, BookingCompleted.ChatEnabled())
	assert.False(t, BookingCancelled.ChatEnabled())
}

func TestProvider_Availability(t *testing.T) {
	p := &Provider{
		AvailableDays:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		AvailableStartTime: "09:00",
		AvailableEndTime:   "17:00",
	}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, p.AvailableOn(monday))
	assert.False(t, p.AvailableOn(sunday))

	assert.True(t, p.WindowContains("09:00"))
	assert.True(t, p.WindowContains("10:00"))
	assert.False(t, p.WindowContains("17:00")) // end bound exclusive
	assert.False(t, p.WindowContains("08:59"))
}
