package model

import (
	"strconv"
	"time"

	"kingdom/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID                   = "id"
	FieldBookingID            = "booking_id"
	FieldTransactionReference = "transaction_reference"
	FieldPaymentReference     = "payment_reference"
	FieldAmount               = "amount"
	FieldPaymentMethod        = "payment_method"
	FieldStatus               = "status"
	FieldMpesaReceiptNumber   = "mpesa_receipt_number"
	FieldPhoneNumber          = "phone_number"
	FieldBankReference        = "bank_reference"
	FieldPaymentDate          = "payment_date"
	FieldFailureReason        = "failure_reason"
)

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
	StatusRefunded   = "REFUNDED"

	TagStatus        = "oneof=PENDING PROCESSING COMPLETED FAILED CANCELLED REFUNDED"
	TagPaymentMethod = "oneof=M_PESA BANK_TRANSFER CASH CREDIT_CARD"
)

type Payment struct {
	ID                   string          `db:"id"`
	BookingID            string          `db:"booking_id"`
	TransactionReference string          `db:"transaction_reference"`
	PaymentReference     *string         `db:"payment_reference"`
	Amount               decimal.Decimal `db:"amount"`
	PaymentMethod        string          `db:"payment_method"`
	Status               string          `db:"status"`
	MpesaReceiptNumber   *string         `db:"mpesa_receipt_number"`
	PhoneNumber          *string         `db:"phone_number"`
	BankReference        *string         `db:"bank_reference"`
	PaymentDate          *time.Time      `db:"payment_date"`
	FailureReason        *string         `db:"failure_reason"`
	model.Metadata
}

// TransactionReference builds a reference such as TXN-1735718400000.
func TransactionReference(prefix string, now time.Time) string {
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
