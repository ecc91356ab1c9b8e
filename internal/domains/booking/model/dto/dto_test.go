package dto_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdom/internal/domains/booking/model"
	"kingdom/internal/domains/booking/model/dto"
	"kingdom/shared/failure"
)

func TestParseStay(t *testing.T) {
	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		wantNights int
		wantErr    string
	}{
		{name: "three nights", checkIn: "2025-01-01", checkOut: "2025-01-04", wantNights: 3},
		{name: "across month end", checkIn: "2025-01-30", checkOut: "2025-02-02", wantNights: 3},
		{name: "same day", checkIn: "2025-01-01", checkOut: "2025-01-01", wantErr: "check_out_date must be after check_in_date"},
		{name: "check-out first", checkIn: "2025-01-05", checkOut: "2025-01-01", wantErr: "check_out_date must be after check_in_date"},
		{name: "bad format", checkIn: "01/01/2025", checkOut: "2025-01-04", wantErr: "check_in_date must be a date in YYYY-MM-DD format"},
		{name: "missing check-out", checkIn: "2025-01-01", wantErr: "check_out_date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := dto.ParseStay(tt.checkIn, tt.checkOut)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.Equal(t, tt.wantErr, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, stay.Nights())
		})
	}
}

func TestUpdateBookingRequest_Stay(t *testing.T) {
	current := model.Stay{
		CheckIn:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
	}

	req := dto.UpdateBookingRequest{CheckOutDate: "2025-01-06"}

	stay, err := req.Stay(current)

	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", stay.CheckIn.Format(time.DateOnly))
	assert.Equal(t, 5, stay.Nights())

	req = dto.UpdateBookingRequest{CheckInDate: "2025-01-04"}

	_, err = req.Stay(current)
	require.Error(t, err)
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	req := dto.CreateBookingRequest{
		RoomID:        "2b1e7c52-6c3c-4e0e-9e7a-1d2f3a4b5c6d",
		GuestName:     "Grace",
		GuestEmail:    "grace@example.org",
		GuestPhone:    "+254700000000",
		CheckInDate:   "2025-01-01",
		CheckOutDate:  "2025-01-04",
		PaymentMethod: model.PaymentMethodMPesa,
	}

	stay, err := req.Stay()
	require.NoError(t, err)

	booking := req.ToModel("admin-1", "HG-1", now, stay, decimal.NewFromInt(300))

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "HG-1", booking.BookingReference)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, 3, booking.NumberOfNights)
	assert.True(t, decimal.NewFromInt(300).Equal(booking.TotalAmount))
	assert.Equal(t, "admin-1", booking.CreatedBy)
	assert.Equal(t, now, booking.ModifiedAt)

	req.Status = model.StatusConfirmed
	assert.Equal(t, model.StatusConfirmed, req.ToModel("admin-1", "HG-1", now, stay, decimal.Zero).Status)
}

func TestFilter_ToFilterGroup(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty",
			filter:    dto.Filter{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "single status",
			filter:    dto.Filter{Statuses: []string{model.StatusConfirmed}, RoomID: "room-1"},
			wantWhere: "(bookings.status = :status AND bookings.room_id = :room_id)",
			wantArgs:  map[string]any{"status": model.StatusConfirmed, "room_id": "room-1"},
		},
		{
			name:      "arrivals",
			filter:    dto.Filter{Statuses: []string{model.StatusConfirmed, model.StatusCheckedIn}, CheckInOn: &from},
			wantWhere: "(bookings.status IN (:status_0, :status_1)  AND bookings.check_in_date = :check_in_on)",
			wantArgs: map[string]any{
				"status_0":    model.StatusConfirmed,
				"status_1":    model.StatusCheckedIn,
				"check_in_on": "2025-01-01",
			},
		},
		{
			name:      "revenue window",
			filter:    dto.Filter{Statuses: []string{model.StatusConfirmed}, CheckInFrom: &from, CheckInTo: &to},
			wantWhere: "(bookings.status = :status AND bookings.check_in_date >= :check_in_from AND bookings.check_in_date <= :check_in_to)",
			wantArgs: map[string]any{
				"status":        model.StatusConfirmed,
				"check_in_from": "2025-01-01",
				"check_in_to":   "2025-01-31",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.filter.ToFilterGroup()

			where, args := group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
