package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"kingdom/infras/otel/mocks"
	bookingMocks "kingdom/internal/domains/booking/mocks"
	bookingModel "kingdom/internal/domains/booking/model"
	"kingdom/internal/domains/report/service"
	roomMocks "kingdom/internal/domains/room/mocks"
	roomModel "kingdom/internal/domains/room/model"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
)

func newService(t *testing.T) (service.Report, *bookingMocks.MockBooking, *roomMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)

	return service.New(bookings, rooms, mocks.NewOtel()), bookings, rooms
}

func booking(ref, roomID string, in time.Time, nights int, total string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:               ref,
		BookingReference: ref,
		RoomID:           roomID,
		GuestName:        "Grace Wanjiru",
		GuestEmail:       "grace@example.com",
		GuestPhone:       "+254700000000",
		CheckInDate:      in,
		CheckOutDate:     in.AddDate(0, 0, nights),
		NumberOfNights:   nights,
		TotalAmount:      decimal.RequireFromString(total),
		PaymentMethod:    "M_PESA",
		Status:           bookingModel.StatusConfirmed,
	}
}

func TestReportService_Bookings(t *testing.T) {
	svc, bookings, rooms := newService(t)

	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			assert.Equal(t, bookingModel.FieldCheckInDate, params.SortBy)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "2025-03-01", args["check_in_from"])
			assert.Equal(t, "2025-03-31", args["check_in_to"])
			assert.Equal(t, bookingModel.StatusConfirmed, args[bookingModel.FieldStatus])

			return []bookingModel.Booking{
				booking("HG-1", "room-1", in, 2, "9000"),
				booking("HG-2", "room-1", in.AddDate(0, 0, 5), 1, "4500.50"),
			}, nil
		})
	rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), roomModel.FieldID, roomModel.FieldRoomNumber).
		Return([]roomModel.Room{{ID: "room-1", RoomNumber: "A101"}}, nil)

	data, fileName, err := svc.Bookings(context.Background(), "2025-03-01", "2025-03-31", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "bookings-2025-03-01-2025-03-31.xlsx", fileName)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Reference", rows[0][0])
	assert.Equal(t, "Payment Method", rows[0][9])
	assert.Equal(t, "A101", rows[1][1])
	assert.Equal(t, "2025-03-06", rows[2][5])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "3", rows[3][7])
	assert.Equal(t, "13500.5", rows[3][8])
}

func TestReportService_BookingsEmpty(t *testing.T) {
	svc, bookings, _ := newService(t)

	bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{}, nil)

	data, _, err := svc.Bookings(context.Background(), "2025-03-01", "2025-03-01", "")
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0 bookings", rows[1][1])
}

func TestReportService_BookingsErrors(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		status    string
		setupMock func(bookings *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name:     "end before start",
			start:    "2025-03-10",
			end:      "2025-03-01",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed date",
			start:    "03/01/2025",
			end:      "2025-03-01",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown status",
			start:    "2025-03-01",
			end:      "2025-03-31",
			status:   "archived",
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "database error",
			start: "2025-03-01",
			end:   "2025-03-31",
			setupMock: func(bookings *bookingMocks.MockBooking) {
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookings, _ := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(bookings)
			}

			_, _, err := svc.Bookings(context.Background(), tt.start, tt.end, tt.status)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
