package dto

import (
	"strings"
	"time"

	"kingdom/internal/domains/payment/model"
	"kingdom/shared"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	BookingID            string          `json:"booking_id"            validate:"required,uuid"`
	TransactionReference string          `json:"transaction_reference" validate:"omitempty,max=100"`
	PaymentReference     *string         `json:"payment_reference"     validate:"omitempty,max=100"`
	Amount               decimal.Decimal `json:"amount"                validate:"required,gt=0"`
	PaymentMethod        string          `json:"payment_method"        validate:"required,oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"`
	MpesaReceiptNumber   *string         `json:"mpesa_receipt_number"  validate:"omitempty,max=50"`
	PhoneNumber          *string         `json:"phone_number"          validate:"omitempty,max=20"`
	BankReference        *string         `json:"bank_reference"        validate:"omitempty,max=100"`
}

// ToModel builds a pending payment. A missing transaction reference is generated from now.
func (c *CreatePaymentRequest) ToModel(user, referencePrefix string, now time.Time) model.Payment {
	reference := strings.TrimSpace(c.TransactionReference)
	if reference == "" {
		reference = model.TransactionReference(referencePrefix, now)
	}

	return model.Payment{
		ID:                   uuid.NewString(),
		BookingID:            c.BookingID,
		TransactionReference: reference,
		PaymentReference:     c.PaymentReference,
		Amount:               c.Amount,
		PaymentMethod:        c.PaymentMethod,
		Status:               model.StatusPending,
		MpesaReceiptNumber:   c.MpesaReceiptNumber,
		PhoneNumber:          c.PhoneNumber,
		BankReference:        c.BankReference,
		Metadata:             gModel.NewMetadata(user, now),
	}
}

// UpdatePaymentRequest leaves status changes to the status endpoint.
type UpdatePaymentRequest struct {
	PaymentReference   *string          `db:"payment_reference"    json:"payment_reference"    validate:"omitempty,max=100"`
	Amount             *decimal.Decimal `db:"amount"               json:"amount"               validate:"omitempty,gt=0"`
	PaymentMethod      string           `db:"payment_method"       json:"payment_method"       validate:"omitempty,oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"`
	MpesaReceiptNumber *string          `db:"mpesa_receipt_number" json:"mpesa_receipt_number" validate:"omitempty,max=50"`
	PhoneNumber        *string          `db:"phone_number"         json:"phone_number"         validate:"omitempty,max=20"`
	BankReference      *string          `db:"bank_reference"       json:"bank_reference"       validate:"omitempty,max=100"`
}

type PaymentResponse struct {
	ID                   string          `json:"id"`
	BookingID            string          `json:"booking_id"`
	TransactionReference string          `json:"transaction_reference"`
	PaymentReference     *string         `json:"payment_reference,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentMethod        string          `json:"payment_method"`
	Status               string          `json:"status"`
	MpesaReceiptNumber   *string         `json:"mpesa_receipt_number,omitempty"`
	PhoneNumber          *string         `json:"phone_number,omitempty"`
	BankReference        *string         `json:"bank_reference,omitempty"`
	PaymentDate          *time.Time      `json:"payment_date,omitempty"`
	FailureReason        *string         `json:"failure_reason,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.TransactionReference = model.TransactionReference
	r.PaymentReference = model.PaymentReference
	r.Amount = model.Amount
	r.PaymentMethod = model.PaymentMethod
	r.Status = model.Status
	r.MpesaReceiptNumber = model.MpesaReceiptNumber
	r.PhoneNumber = model.PhoneNumber
	r.BankReference = model.BankReference
	r.PaymentDate = model.PaymentDate
	r.FailureReason = model.FailureReason
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type MethodSummary struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type SummaryResponse struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
	ByMethod    []MethodSummary `json:"by_method"`
}

type Filter struct {
	BookingID     string
	Status        string
	PaymentMethod string
	PaidFrom      *time.Time
	PaidUntil     *time.Time
}

// ToFilterGroup renders the filter. The payment date window is [PaidFrom, PaidUntil).
func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	for _, item := range []struct{ field, value string }{
		{model.FieldBookingID, f.BookingID},
		{model.FieldStatus, f.Status},
		{model.FieldPaymentMethod, f.PaymentMethod},
	} {
		if item.value == "" {
			continue
		}

		group = group.Add(gDto.Filter{
			Field:    item.field,
			Operator: gDto.FilterOperatorEq,
			Value:    item.value,
			Table:    model.TableName,
		})
	}

	if f.PaidFrom != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "paid_from",
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.PaidFrom,
			Table:    model.TableName,
		})
	}

	if f.PaidUntil != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "paid_until",
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorLess,
			Value:    *f.PaidUntil,
			Table:    model.TableName,
		})
	}

	return group
}
