package model

import (
	"time"

	"kingdom/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "donations"
	EntityName = "donation"

	FieldID                   = "id"
	FieldMemberID             = "member_id"
	FieldAmount               = "amount"
	FieldCurrency             = "currency"
	FieldDonationType         = "donation_type"
	FieldCampaignCode         = "campaign_code"
	FieldTransactionReference = "transaction_reference"
	FieldPaymentMethod        = "payment_method"
	FieldDonationDate         = "donation_date"
)

const (
	TypeTithe          = "TITHE"
	TypeOffering       = "OFFERING"
	TypeSpecialProject = "SPECIAL_PROJECT"
	TypeMissionary     = "MISSIONARY"
	TypeOther          = "OTHER"

	TagDonationType = "oneof=TITHE OFFERING SPECIAL_PROJECT MISSIONARY OTHER"
)

type Donation struct {
	ID                   string          `db:"id"`
	MemberID             string          `db:"member_id"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	DonationType         string          `db:"donation_type"`
	CampaignCode         *string         `db:"campaign_code"`
	TransactionReference *string         `db:"transaction_reference"`
	PaymentMethod        *string         `db:"payment_method"`
	DonationDate         time.Time       `db:"donation_date"`
	model.Metadata
}
