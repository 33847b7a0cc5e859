package reservation

import (
	"testing"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, so the fixtures line up with a Mon-Fri weekly schedule.
var testToday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func testPolicy() *domain.RoomPolicy {
	return &domain.RoomPolicy{
		RoomID:               1,
		IsActive:             true,
		SlotMinutes:          60,
		MinMinutes:           60,
		MaxMinutes:           240,
		BufferMinutes:        10,
		BookingOpenDaysAhead: 30,
	}
}

func openWindow(open, close string) domain.OperatingWindow {
	o, err := domain.ParseTimeOfDay(open)
	if err != nil {
		panic(err)
	}
	c, err := domain.ParseTimeOfDay(close)
	if err != nil {
		panic(err)
	}
	return domain.OperatingWindow{Open: o, Close: c}
}

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestValidate_Accepts(t *testing.T) {
	start := at(testToday, 9, 0)
	rej := Validate(start, start.Add(time.Hour), testPolicy(), openWindow("09:00", "18:00"), testToday)
	assert.Nil(t, rej)
}

func TestValidate_AcceptsHorizonBoundary(t *testing.T) {
	day := testToday.AddDate(0, 0, 30)
	start := at(day, 9, 0)
	rej := Validate(start, start.Add(time.Hour), testPolicy(), openWindow("09:00", "18:00"), testToday)
	assert.Nil(t, rej)
}

func TestValidate_AcceptsFullWindow(t *testing.T) {
	start := at(testToday, 14, 0)
	rej := Validate(start, start.Add(4*time.Hour), testPolicy(), openWindow("09:00", "18:00"), testToday)
	assert.Nil(t, rej)
}

func TestValidate_Rejections(t *testing.T) {
	window := openWindow("09:00", "18:00")

	availFrom := testToday.AddDate(0, 0, 10)
	availTo := testToday.AddDate(0, 0, -1)

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		policy   func(*domain.RoomPolicy)
		window   domain.OperatingWindow
		reason   reservation.RejectReason
	}{
		{
			name:  "inactive room",
			start: at(testToday, 9, 0), duration: time.Hour,
			policy: func(p *domain.RoomPolicy) { p.IsActive = false },
			window: window,
			reason: reservation.ReasonRoomInactive,
		},
		{
			name:  "before available window",
			start: at(testToday, 9, 0), duration: time.Hour,
			policy: func(p *domain.RoomPolicy) { p.AvailableFrom = &availFrom },
			window: window,
			reason: reservation.ReasonNotYetAvailable,
		},
		{
			name:  "after available window",
			start: at(testToday, 9, 0), duration: time.Hour,
			policy: func(p *domain.RoomPolicy) { p.AvailableTo = &availTo },
			window: window,
			reason: reservation.ReasonNoLongerAvailable,
		},
		{
			name:  "date in the past",
			start: at(testToday.AddDate(0, 0, -1), 9, 0), duration: time.Hour,
			window: window,
			reason: reservation.ReasonOutsideHorizon,
		},
		{
			name:  "past booking horizon",
			start: at(testToday.AddDate(0, 0, 31), 9, 0), duration: time.Hour,
			window: window,
			reason: reservation.ReasonOutsideHorizon,
		},
		{
			name:  "crosses midnight",
			start: at(testToday, 23, 0), duration: 2 * time.Hour,
			window: window,
			reason: reservation.ReasonCrossesMidnight,
		},
		{
			name:  "below minimum duration",
			start: at(testToday, 9, 0), duration: 30 * time.Minute,
			window: window,
			reason: reservation.ReasonDurationOutOfRange,
		},
		{
			name:  "above maximum duration",
			start: at(testToday, 9, 0), duration: 5 * time.Hour,
			window: window,
			reason: reservation.ReasonDurationOutOfRange,
		},
		{
			name:  "duration not slot aligned",
			start: at(testToday, 9, 0), duration: 90 * time.Minute,
			window: window,
			reason: reservation.ReasonDurationNotAligned,
		},
		{
			name:  "start not slot aligned",
			start: at(testToday, 9, 30), duration: time.Hour,
			window: window,
			reason: reservation.ReasonStartNotAligned,
		},
		{
			name:  "closed date",
			start: at(testToday, 9, 0), duration: time.Hour,
			window: domain.OperatingWindow{Closed: true},
			reason: reservation.ReasonRoomClosed,
		},
		{
			name:  "starts before opening",
			start: at(testToday, 8, 0), duration: time.Hour,
			window: window,
			reason: reservation.ReasonOutsideHours,
		},
		{
			name:  "ends after closing",
			start: at(testToday, 17, 0), duration: 2 * time.Hour,
			window: window,
			reason: reservation.ReasonOutsideHours,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := testPolicy()
			if tc.policy != nil {
				tc.policy(policy)
			}
			rej := Validate(tc.start, tc.start.Add(tc.duration), policy, tc.window, testToday)
			require.NotNil(t, rej)
			assert.Equal(t, tc.reason, rej.Reason)
		})
	}
}

// The first failing check wins. Each case here trips two rules at once
// and must report the earlier one, so a pipeline reordering shows up as
// a changed reason code.
func TestValidate_CheckOrdering(t *testing.T) {
	window := openWindow("09:00", "18:00")
	farFrom := testToday.AddDate(0, 0, 40)

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		policy   func(*domain.RoomPolicy)
		window   domain.OperatingWindow
		reason   reservation.RejectReason
	}{
		{
			// an inactive room on a closed date in the past reports
			// inactivity, not closure or horizon
			name:  "inactive before everything",
			start: at(testToday.AddDate(0, 0, -5), 8, 13), duration: 17 * time.Minute,
			policy: func(p *domain.RoomPolicy) { p.IsActive = false },
			window: domain.OperatingWindow{Closed: true},
			reason: reservation.ReasonRoomInactive,
		},
		{
			// day 35 is past the 30-day horizon too, but the
			// availability bound is checked first
			name:  "availability bounds before horizon",
			start: at(testToday.AddDate(0, 0, 35), 9, 0), duration: time.Hour,
			policy: func(p *domain.RoomPolicy) { p.AvailableFrom = &farFrom },
			window: window,
			reason: reservation.ReasonNotYetAvailable,
		},
		{
			// 45 minutes is both under the 60-minute minimum and off
			// the 60-minute grid
			name:  "duration range before duration alignment",
			start: at(testToday, 9, 0), duration: 45 * time.Minute,
			window: window,
			reason: reservation.ReasonDurationOutOfRange,
		},
		{
			// start and duration are both misaligned; duration is
			// reported first
			name:  "duration alignment before start alignment",
			start: at(testToday, 9, 30), duration: 90 * time.Minute,
			window: window,
			reason: reservation.ReasonDurationNotAligned,
		},
		{
			// 08:00 would also fall outside hours on an open day
			name:  "closed date before operating hours",
			start: at(testToday, 8, 0), duration: time.Hour,
			window: domain.OperatingWindow{Closed: true},
			reason: reservation.ReasonRoomClosed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := testPolicy()
			if tc.policy != nil {
				tc.policy(policy)
			}
			rej := Validate(tc.start, tc.start.Add(tc.duration), policy, tc.window, testToday)
			require.NotNil(t, rej)
			assert.Equal(t, tc.reason, rej.Reason)
		})
	}
}

func TestValidate_ClosedReasonInMessage(t *testing.T) {
	start := at(testToday, 9, 0)
	window := domain.OperatingWindow{Closed: true, Reason: "holiday"}

	rej := Validate(start, start.Add(time.Hour), testPolicy(), window, testToday)
	require.NotNil(t, rej)
	assert.Equal(t, reservation.ReasonRoomClosed, rej.Reason)
	assert.Contains(t, rej.Message, "holiday")
}
