package dto

import (
	"time"

	"kingdom/internal/domains/booking/model"
	"kingdom/shared"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

var errInvalidStay = failure.BadRequestFromString("check_out_date must be after check_in_date")

type CreateBookingRequest struct {
	RoomID          string           `json:"room_id"          validate:"required,uuid"`
	GuestName       string           `json:"guest_name"       validate:"required,max=100"`
	GuestEmail      string           `json:"guest_email"      validate:"required,email,max=100"`
	GuestPhone      string           `json:"guest_phone"      validate:"required,max=20"`
	CheckInDate     string           `json:"check_in_date"    validate:"required,date"`
	CheckOutDate    string           `json:"check_out_date"   validate:"required,date"`
	TotalAmount     *decimal.Decimal `json:"total_amount"     validate:"omitempty,gte=0"`
	PaymentMethod   string           `json:"payment_method"   validate:"required,oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"`
	Status          string           `json:"status"           validate:"omitempty,oneof=PENDING CONFIRMED"`
	SpecialRequests *string          `json:"special_requests" validate:"omitempty,max=1000"`
}

// Stay parses the requested dates. Check-out must be at least one night after check-in.
func (c *CreateBookingRequest) Stay() (model.Stay, error) {
	return ParseStay(c.CheckInDate, c.CheckOutDate)
}

func (c *CreateBookingRequest) ToModel(user, reference string, now time.Time, stay model.Stay, total decimal.Decimal) model.Booking {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:               uuid.NewString(),
		BookingReference: reference,
		RoomID:           c.RoomID,
		GuestName:        c.GuestName,
		GuestEmail:       c.GuestEmail,
		GuestPhone:       c.GuestPhone,
		CheckInDate:      stay.CheckIn,
		CheckOutDate:     stay.CheckOut,
		NumberOfNights:   stay.Nights(),
		TotalAmount:      total,
		PaymentMethod:    c.PaymentMethod,
		Status:           status,
		SpecialRequests:  c.SpecialRequests,
		Metadata:         gModel.NewMetadata(user, now),
	}
}

// UpdateBookingRequest changes only the fields that are set. Dates, room and status are
// applied by the service because they need availability and transition checks.
type UpdateBookingRequest struct {
	RoomID          string           `db:"-"                json:"room_id"          validate:"omitempty,uuid"`
	GuestName       string           `db:"guest_name"       json:"guest_name"       validate:"omitempty,max=100"`
	GuestEmail      string           `db:"guest_email"      json:"guest_email"      validate:"omitempty,email,max=100"`
	GuestPhone      string           `db:"guest_phone"      json:"guest_phone"      validate:"omitempty,max=20"`
	CheckInDate     string           `db:"-"                json:"check_in_date"    validate:"omitempty,date"`
	CheckOutDate    string           `db:"-"                json:"check_out_date"   validate:"omitempty,date"`
	TotalAmount     *decimal.Decimal `db:"total_amount"     json:"total_amount"     validate:"omitempty,gte=0"`
	PaymentMethod   string           `db:"payment_method"   json:"payment_method"   validate:"omitempty,oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"`
	Status          string           `db:"-"                json:"status"           validate:"omitempty,oneof=PENDING CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED NO_SHOW"`
	SpecialRequests *string          `db:"special_requests" json:"special_requests" validate:"omitempty,max=1000"`
}

// Stay merges the requested dates over the current stay.
func (u *UpdateBookingRequest) Stay(current model.Stay) (model.Stay, error) {
	checkIn := current.CheckIn.Format(constant.DateOnly)
	if u.CheckInDate != "" {
		checkIn = u.CheckInDate
	}

	checkOut := current.CheckOut.Format(constant.DateOnly)
	if u.CheckOutDate != "" {
		checkOut = u.CheckOutDate
	}

	return ParseStay(checkIn, checkOut)
}

// ParseStay parses YYYY-MM-DD check-in and check-out values into a valid stay.
func ParseStay(checkIn, checkOut string) (model.Stay, error) {
	in, err := shared.ParseDate(model.FieldCheckInDate, checkIn)
	if err != nil {
		return model.Stay{}, err //nolint:wrapcheck
	}

	out, err := shared.ParseDate(model.FieldCheckOutDate, checkOut)
	if err != nil {
		return model.Stay{}, err //nolint:wrapcheck
	}

	stay := model.Stay{CheckIn: in, CheckOut: out}
	if !stay.Valid() {
		return model.Stay{}, errInvalidStay
	}

	return stay, nil
}

type BookingResponse struct {
	ID               string          `json:"id"`
	BookingReference string          `json:"booking_reference"`
	RoomID           string          `json:"room_id"`
	GuestName        string          `json:"guest_name"`
	GuestEmail       string          `json:"guest_email"`
	GuestPhone       string          `json:"guest_phone"`
	CheckInDate      string          `json:"check_in_date"`
	CheckOutDate     string          `json:"check_out_date"`
	NumberOfNights   int             `json:"number_of_nights"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaymentMethod    string          `json:"payment_method"`
	Status           string          `json:"status"`
	SpecialRequests  *string         `json:"special_requests,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingReference = model.BookingReference
	r.RoomID = model.RoomID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnly)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnly)
	r.NumberOfNights = model.NumberOfNights
	r.TotalAmount = model.TotalAmount
	r.PaymentMethod = model.PaymentMethod
	r.Status = model.Status
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookingStatsResponse struct {
	TotalBookings     int `json:"total_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	CheckedInBookings int `json:"checked_in_bookings"`
}

type RevenueResponse struct {
	Revenue   decimal.Decimal `json:"revenue"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

type AvailabilityResponse struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

type InvoiceUploadResponse struct {
	BookingReference string `json:"booking_reference"`
	URL              string `json:"url"`
}

// Event is the payload published on the booking topic.
type Event struct {
	Type           string          `json:"type"`
	BookingID      string          `json:"booking_id"`
	Reference      string          `json:"booking_reference"`
	RoomID         string          `json:"room_id"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

func NewEvent(eventType string, booking model.Booking, previousStatus string, at time.Time) Event {
	return Event{
		Type:           eventType,
		BookingID:      booking.ID,
		Reference:      booking.BookingReference,
		RoomID:         booking.RoomID,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
		CheckInDate:    booking.CheckInDate.Format(constant.DateOnly),
		CheckOutDate:   booking.CheckOutDate.Format(constant.DateOnly),
		TotalAmount:    booking.TotalAmount,
		OccurredAt:     at,
	}
}

// Filter narrows booking listings. Zero fields are ignored.
type Filter struct {
	Statuses    []string
	RoomID      string
	GuestEmail  string
	CheckInOn   *time.Time
	CheckOutOn  *time.Time
	CheckInFrom *time.Time
	CheckInTo   *time.Time
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	switch len(f.Statuses) {
	case 0:
	case 1:
		group = group.Add(gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Statuses[0],
			Table:    model.TableName,
		})
	default:
		group = group.Add(gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    f.Statuses,
			Table:    model.TableName,
		})
	}

	if f.RoomID != "" {
		group = group.Add(gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    f.RoomID,
			Table:    model.TableName,
		})
	}

	if f.GuestEmail != "" {
		group = group.Add(gDto.Filter{
			Field:    model.FieldGuestEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    f.GuestEmail,
			Table:    model.TableName,
		})
	}

	group = addDate(group, "check_in_on", model.FieldCheckInDate, gDto.FilterOperatorEq, f.CheckInOn)
	group = addDate(group, "check_out_on", model.FieldCheckOutDate, gDto.FilterOperatorEq, f.CheckOutOn)
	group = addDate(group, "check_in_from", model.FieldCheckInDate, gDto.FilterOperatorGreaterEq, f.CheckInFrom)
	group = addDate(group, "check_in_to", model.FieldCheckInDate, gDto.FilterOperatorLessEq, f.CheckInTo)

	return group
}

func addDate(group gDto.FilterGroup, argName, field, operator string, value *time.Time) gDto.FilterGroup {
	if value == nil {
		return group
	}

	return group.Add(gDto.Filter{
		ArgName:  argName,
		Field:    field,
		Operator: operator,
		Value:    value.Format(constant.DateOnly),
		Table:    model.TableName,
	})
}
