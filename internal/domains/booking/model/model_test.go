package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kingdom/internal/domains/booking/model"
)

func date(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestStay_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
		valid    bool
	}{
		{name: "three nights", checkIn: "2025-01-01", checkOut: "2025-01-04", want: 3, valid: true},
		{name: "across month end", checkIn: "2025-01-30", checkOut: "2025-02-02", want: 3, valid: true},
		{name: "across leap day", checkIn: "2024-02-28", checkOut: "2024-03-01", want: 2, valid: true},
		{name: "same day", checkIn: "2025-01-01", checkOut: "2025-01-01", want: 0, valid: false},
		{name: "reversed", checkIn: "2025-01-04", checkOut: "2025-01-01", want: -3, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay := model.Stay{CheckIn: date(tt.checkIn), CheckOut: date(tt.checkOut)}

			assert.Equal(t, tt.want, stay.Nights())
			assert.Equal(t, tt.valid, stay.Valid())
		})
	}
}

func TestStay_NightsIgnoresClockAndZone(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)

	stay := model.Stay{
		CheckIn:  time.Date(2025, 3, 29, 23, 30, 0, 0, nairobi),
		CheckOut: time.Date(2025, 4, 1, 0, 15, 0, 0, nairobi),
	}

	assert.Equal(t, 3, stay.Nights())
}

func TestStay_Overlaps(t *testing.T) {
	existing := model.Stay{CheckIn: date("2025-01-10"), CheckOut: date("2025-01-15")}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{name: "identical", checkIn: "2025-01-10", checkOut: "2025-01-15", want: true},
		{name: "inside", checkIn: "2025-01-11", checkOut: "2025-01-12", want: true},
		{name: "enclosing", checkIn: "2025-01-05", checkOut: "2025-01-20", want: true},
		{name: "starts before ends inside", checkIn: "2025-01-08", checkOut: "2025-01-11", want: true},
		{name: "starts inside ends after", checkIn: "2025-01-14", checkOut: "2025-01-18", want: true},
		{name: "checks in on departure day", checkIn: "2025-01-15", checkOut: "2025-01-17", want: false},
		{name: "checks out on arrival day", checkIn: "2025-01-07", checkOut: "2025-01-10", want: false},
		{name: "entirely before", checkIn: "2025-01-01", checkOut: "2025-01-03", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := model.Stay{CheckIn: date(tt.checkIn), CheckOut: date(tt.checkOut)}

			assert.Equal(t, tt.want, candidate.Overlaps(existing))
			assert.Equal(t, tt.want, existing.Overlaps(candidate))
		})
	}
}

func TestStay_Covers(t *testing.T) {
	stay := model.Stay{CheckIn: date("2025-01-10"), CheckOut: date("2025-01-12")}

	assert.False(t, stay.Covers(date("2025-01-09")))
	assert.True(t, stay.Covers(date("2025-01-10")))
	assert.True(t, stay.Covers(date("2025-01-11")))
	assert.False(t, stay.Covers(date("2025-01-12")))
}

func TestReference(t *testing.T) {
	now := time.UnixMilli(1735718400123)

	assert.Equal(t, "HG-1735718400123", model.Reference("HG", now))
	assert.Equal(t, "KS-1735718400123", model.Reference("KS", now))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCheckedIn, false},
		{model.StatusConfirmed, model.StatusCheckedIn, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusNoShow, true},
		{model.StatusConfirmed, model.StatusCheckedOut, false},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, false},
		{model.StatusCheckedOut, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusNoShow, model.StatusCheckedIn, false},
		{model.StatusCancelled, model.StatusCancelled, true},
		{model.StatusPending, "ARCHIVED", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(model.TransitionModeStrict, tt.from, tt.to))
		})
	}
}

func TestCanTransition_Legacy(t *testing.T) {
	assert.True(t, model.CanTransition(model.TransitionModeLegacy, model.StatusCheckedOut, model.StatusPending))
	assert.True(t, model.CanTransition(model.TransitionModeLegacy, model.StatusCancelled, model.StatusConfirmed))
	assert.False(t, model.CanTransition(model.TransitionModeLegacy, model.StatusPending, "ARCHIVED"))
}

func TestTerminal(t *testing.T) {
	assert.True(t, model.Terminal(model.StatusCheckedOut))
	assert.True(t, model.Terminal(model.StatusCancelled))
	assert.True(t, model.Terminal(model.StatusNoShow))
	assert.False(t, model.Terminal(model.StatusPending))
	assert.False(t, model.Terminal("UNKNOWN"))
}
