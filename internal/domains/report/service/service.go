package service

import (
	"context"
	"fmt"
	"strings"

	"kingdom/infras/otel"
	bookingModel "kingdom/internal/domains/booking/model"
	bookingDto "kingdom/internal/domains/booking/model/dto"
	bookingRepository "kingdom/internal/domains/booking/repository"
	"kingdom/internal/domains/report/spreadsheet"
	roomModel "kingdom/internal/domains/room/model"
	roomRepository "kingdom/internal/domains/room/repository"
	"kingdom/shared"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const bookingSheet = "Bookings"

var bookingHeader = []string{
	"Reference", "Room", "Guest", "Email", "Phone", "Check-in", "Check-out", "Nights", "Total", "Payment Method", "Status",
}

type Report interface {
	Bookings(ctx context.Context, startDate, endDate, status string) (data []byte, fileName string, err error)
}

type serviceImpl struct {
	bookings bookingRepository.Booking
	rooms    roomRepository.Room
	otel     otel.Otel
}

func New(bookings bookingRepository.Booking, rooms roomRepository.Room, otel otel.Otel) Report {
	return &serviceImpl{
		bookings: bookings,
		rooms:    rooms,
		otel:     otel,
	}
}

// Bookings exports the bookings checking in between startDate and endDate, both inclusive.
func (s *serviceImpl) Bookings(ctx context.Context, startDate, endDate, status string) (data []byte, fileName string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, until, err := shared.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, constant.Empty, err //nolint:wrapcheck
	}

	last := until.AddDate(0, 0, -1)
	filter := bookingDto.Filter{CheckInFrom: &from, CheckInTo: &last}

	if status != constant.Empty {
		status = strings.ToUpper(status)

		if err = validator.ValidateVar(status, bookingModel.TagStatus); err != nil {
			return nil, constant.Empty, err //nolint:wrapcheck
		}

		filter.Statuses = []string{status}
	}

	params := gDto.QueryParams{SortBy: bookingModel.FieldCheckInDate, SortDir: "ASC"}

	bookings, err := s.bookings.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return nil, constant.Empty, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := s.roomNumbers(ctx, bookings)
	if err != nil {
		return nil, constant.Empty, err
	}

	data, err = spreadsheet.Render(bookingsSheet(bookings, rooms))
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings report")

		return nil, constant.Empty, fmt.Errorf("failed to render bookings report: %w", err)
	}

	return data, fmt.Sprintf("bookings-%s-%s.xlsx", from.Format(constant.DateOnly), last.Format(constant.DateOnly)), nil
}

func (s *serviceImpl) roomNumbers(ctx context.Context, bookings []bookingModel.Booking) (map[string]string, error) {
	numbers := make(map[string]string)
	if len(bookings) == 0 {
		return numbers, nil
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(bookings))

	for _, booking := range bookings {
		if _, ok := seen[booking.RoomID]; ok {
			continue
		}

		seen[booking.RoomID] = struct{}{}
		ids = append(ids, booking.RoomID)
	}

	filter := gDto.And().Add(gDto.Filter{
		Field:    roomModel.FieldID,
		Operator: gDto.FilterOperatorIn,
		Value:    ids,
		Table:    roomModel.TableName,
	})

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, filter, roomModel.FieldID, roomModel.FieldRoomNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for report")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	for _, room := range rooms {
		numbers[room.ID] = room.RoomNumber
	}

	return numbers, nil
}

func bookingsSheet(bookings []bookingModel.Booking, rooms map[string]string) spreadsheet.Sheet {
	sheet := spreadsheet.Sheet{
		Name:   bookingSheet,
		Header: bookingHeader,
		Rows:   make([][]any, 0, len(bookings)),
	}

	nights := 0
	total := decimal.Zero

	for _, b := range bookings {
		room, ok := rooms[b.RoomID]
		if !ok {
			room = b.RoomID
		}

		sheet.Rows = append(sheet.Rows, []any{
			b.BookingReference,
			room,
			b.GuestName,
			b.GuestEmail,
			b.GuestPhone,
			b.CheckInDate.Format(constant.DateOnly),
			b.CheckOutDate.Format(constant.DateOnly),
			b.NumberOfNights,
			b.TotalAmount.InexactFloat64(),
			b.PaymentMethod,
			b.Status,
		})

		nights += b.NumberOfNights
		total = total.Add(b.TotalAmount)
	}

	sheet.Totals = []any{
		"TOTAL", fmt.Sprintf("%d bookings", len(bookings)), "", "", "", "", "", nights, total.InexactFloat64(), "", "",
	}

	return sheet
}
