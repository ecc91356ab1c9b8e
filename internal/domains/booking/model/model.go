package model

import (
	"strconv"
	"time"

	"kingdom/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldBookingReference = "booking_reference"
	FieldRoomID           = "room_id"
	FieldGuestName        = "guest_name"
	FieldGuestEmail       = "guest_email"
	FieldGuestPhone       = "guest_phone"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldNumberOfNights   = "number_of_nights"
	FieldTotalAmount      = "total_amount"
	FieldPaymentMethod    = "payment_method"
	FieldStatus           = "status"
	FieldSpecialRequests  = "special_requests"
)

const (
	PaymentMethodMPesa        = "M_PESA"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCash         = "CASH"
	PaymentMethodCreditCard   = "CREDIT_CARD"
)

const (
	TagStatus        = "oneof=PENDING CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED NO_SHOW"
	TagPaymentMethod = "oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"
)

type Booking struct {
	ID               string          `db:"id"`
	BookingReference string          `db:"booking_reference"`
	RoomID           string          `db:"room_id"`
	GuestName        string          `db:"guest_name"`
	GuestEmail       string          `db:"guest_email"`
	GuestPhone       string          `db:"guest_phone"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	NumberOfNights   int             `db:"number_of_nights"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	PaymentMethod    string          `db:"payment_method"`
	Status           string          `db:"status"`
	SpecialRequests  *string         `db:"special_requests"`
	model.Metadata
}

func (b Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// Stay is the half-open night interval [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Valid reports whether check-out falls on a later calendar day than check-in.
func (s Stay) Valid() bool {
	return s.Nights() > 0
}

// Nights is the number of calendar days between check-in and check-out.
func (s Stay) Nights() int {
	return int(civil(s.CheckOut).Sub(civil(s.CheckIn)).Hours() / 24) //nolint:mnd
}

// Overlaps reports whether two stays share at least one night.
func (s Stay) Overlaps(other Stay) bool {
	return civil(s.CheckIn).Before(civil(other.CheckOut)) && civil(s.CheckOut).After(civil(other.CheckIn))
}

// Covers reports whether a guest is in the room on the night of date.
func (s Stay) Covers(date time.Time) bool {
	day := civil(date)

	return !civil(s.CheckIn).After(day) && civil(s.CheckOut).After(day)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reference builds a booking reference such as HG-1735718400000.
func Reference(prefix string, now time.Time) string {
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
