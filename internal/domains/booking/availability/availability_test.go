package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kingdom/infras/otel/mocks"
	"kingdom/internal/domains/booking/availability"
	bookingMocks "kingdom/internal/domains/booking/mocks"
	"kingdom/internal/domains/booking/model"
	gDto "kingdom/shared/dto"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func stay(in, out int) model.Stay {
	return model.Stay{CheckIn: day(in), CheckOut: day(out)}
}

func booking(id, status string, in, out int) model.Booking {
	return model.Booking{ID: id, RoomID: "room-1", Status: status, CheckInDate: day(in), CheckOutDate: day(out)}
}

func TestOverlapFilter(t *testing.T) {
	tests := []struct {
		name      string
		excludeID string
		wantWhere string
	}{
		{
			name: "new booking",
			wantWhere: "(bookings.room_id = :room_id AND bookings.check_in_date < :stay_end AND " +
				"bookings.check_out_date > :stay_start AND bookings.status != :cancelled)",
		},
		{
			name:      "editing a booking skips itself",
			excludeID: "booking-1",
			wantWhere: "(bookings.room_id = :room_id AND bookings.check_in_date < :stay_end AND " +
				"bookings.check_out_date > :stay_start AND bookings.status != :cancelled AND bookings.id != :exclude_id)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := availability.OverlapFilter("room-1", stay(10, 15), tt.excludeID)

			where, args := group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, "room-1", args["room_id"])
			assert.Equal(t, "2025-01-15", args["stay_end"])
			assert.Equal(t, "2025-01-10", args["stay_start"])
			assert.Equal(t, model.StatusCancelled, args["cancelled"])

			if tt.excludeID != "" {
				assert.Equal(t, tt.excludeID, args["exclude_id"])
			}
		})
	}
}

func TestActiveOnFilter(t *testing.T) {
	group := availability.ActiveOnFilter(day(12))

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.check_in_date <= :on_date AND bookings.check_out_date > :on_date)", where)
	assert.Equal(t, map[string]any{"on_date": "2025-01-12"}, args)
}

func TestConflicts(t *testing.T) {
	existing := []model.Booking{
		booking("a", model.StatusConfirmed, 10, 15),
		booking("b", model.StatusCancelled, 12, 14),
		booking("c", model.StatusPending, 20, 22),
	}

	tests := []struct {
		name      string
		stay      model.Stay
		excludeID string
		wantIDs   []string
	}{
		{name: "same nights", stay: stay(10, 15), wantIDs: []string{"a"}},
		{name: "check-out on arrival day", stay: stay(5, 10), wantIDs: []string{}},
		{name: "check-in on departure day", stay: stay(15, 18), wantIDs: []string{}},
		{name: "contains existing stay", stay: stay(9, 23), wantIDs: []string{"a", "c"}},
		{name: "inside existing stay", stay: stay(11, 12), wantIDs: []string{"a"}},
		{name: "cancelled stays never block", stay: stay(13, 14), wantIDs: []string{"a"}},
		{name: "excluded booking", stay: stay(11, 14), excludeID: "a", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := availability.Conflicts(existing, tt.stay, tt.excludeID)

			ids := []string{}
			for _, c := range conflicts {
				ids = append(ids, c.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestChecker_IsAvailable(t *testing.T) {
	tests := []struct {
		name      string
		bookings  []model.Booking
		repoErr   error
		want      bool
		wantError bool
	}{
		{name: "no bookings", bookings: []model.Booking{}, want: true},
		{name: "overlap", bookings: []model.Booking{booking("a", model.StatusConfirmed, 10, 15)}, want: false},
		{name: "repository failure", repoErr: errors.New("db down"), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := bookingMocks.NewMockBooking(ctrl)

			requested := stay(12, 13)

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gDto.QueryParams{}, availability.OverlapFilter("room-1", requested, "")).
				Return(tt.bookings, tt.repoErr)

			checker := availability.New(mockRepo, mocks.NewOtel())

			got, err := checker.IsAvailable(context.Background(), "room-1", requested)

			if tt.wantError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_ActiveOn(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)

	active := []model.Booking{booking("a", model.StatusCheckedIn, 10, 15)}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{}, availability.ActiveOnFilter(day(12))).
		Return(active, nil)

	res, err := availability.New(mockRepo, mocks.NewOtel()).ActiveOn(context.Background(), day(12))

	require.NoError(t, err)
	assert.Equal(t, active, res)
}
