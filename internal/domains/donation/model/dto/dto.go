package dto

import (
	"strings"
	"time"

	"kingdom/internal/domains/donation/model"
	"kingdom/shared"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateDonationRequest struct {
	MemberID             string          `json:"member_id"             validate:"required,uuid"`
	Amount               decimal.Decimal `json:"amount"                validate:"required,gt=0"`
	Currency             string          `json:"currency"              validate:"omitempty,alpha,len=3"`
	DonationType         string          `json:"donation_type"         validate:"required,oneof=TITHE OFFERING SPECIAL_PROJECT MISSIONARY OTHER"`
	CampaignCode         *string         `json:"campaign_code"         validate:"omitempty,max=50"`
	TransactionReference *string         `json:"transaction_reference" validate:"omitempty,max=100"`
	PaymentMethod        *string         `json:"payment_method"        validate:"omitempty,max=50"`
}

// ToModel dates the donation at creation. The currency falls back to defaultCurrency.
func (c *CreateDonationRequest) ToModel(user, defaultCurrency string, now time.Time) model.Donation {
	currency := defaultCurrency
	if c.Currency != "" {
		currency = strings.ToUpper(c.Currency)
	}

	return model.Donation{
		ID:                   uuid.NewString(),
		MemberID:             c.MemberID,
		Amount:               c.Amount,
		Currency:             currency,
		DonationType:         c.DonationType,
		CampaignCode:         c.CampaignCode,
		TransactionReference: c.TransactionReference,
		PaymentMethod:        c.PaymentMethod,
		DonationDate:         now,
		Metadata:             gModel.NewMetadata(user, now),
	}
}

type UpdateDonationRequest struct {
	Amount               *decimal.Decimal `db:"amount"                json:"amount"                validate:"omitempty,gt=0"`
	Currency             string           `db:"currency"              json:"currency"              validate:"omitempty,alpha,len=3"`
	DonationType         string           `db:"donation_type"         json:"donation_type"         validate:"omitempty,oneof=TITHE OFFERING SPECIAL_PROJECT MISSIONARY OTHER"`
	CampaignCode         *string          `db:"campaign_code"         json:"campaign_code"         validate:"omitempty,max=50"`
	TransactionReference *string          `db:"transaction_reference" json:"transaction_reference" validate:"omitempty,max=100"`
	PaymentMethod        *string          `db:"payment_method"        json:"payment_method"        validate:"omitempty,max=50"`
}

func (u UpdateDonationRequest) Normalize() UpdateDonationRequest {
	u.Currency = strings.ToUpper(u.Currency)

	return u
}

type DonationResponse struct {
	ID                   string          `json:"id"`
	MemberID             string          `json:"member_id"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	DonationType         string          `json:"donation_type"`
	CampaignCode         *string         `json:"campaign_code,omitempty"`
	TransactionReference *string         `json:"transaction_reference,omitempty"`
	PaymentMethod        *string         `json:"payment_method,omitempty"`
	DonationDate         time.Time       `json:"donation_date"`
	gDto.Metadata
}

func (r *DonationResponse) FromModel(model model.Donation) {
	r.ID = model.ID
	r.MemberID = model.MemberID
	r.Amount = model.Amount
	r.Currency = model.Currency
	r.DonationType = model.DonationType
	r.CampaignCode = model.CampaignCode
	r.TransactionReference = model.TransactionReference
	r.PaymentMethod = model.PaymentMethod
	r.DonationDate = model.DonationDate
	r.Metadata.FromModel(model.Metadata)
}

type GetDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDonationsResponse) FromModels(models []model.Donation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Donations = make([]DonationResponse, len(models))
	for i, mod := range models {
		r.Donations[i].FromModel(mod)
	}
}

type Filter struct {
	MemberID     string
	DonationType string
	CampaignCode string
	From         *time.Time
	Until        *time.Time
}

// ToFilterGroup renders the filter. The date window is [From, Until).
func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	for _, item := range []struct{ field, value string }{
		{model.FieldMemberID, f.MemberID},
		{model.FieldDonationType, f.DonationType},
		{model.FieldCampaignCode, f.CampaignCode},
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

	if f.From != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "donated_from",
			Field:    model.FieldDonationDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.From,
			Table:    model.TableName,
		})
	}

	if f.Until != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "donated_until",
			Field:    model.FieldDonationDate,
			Operator: gDto.FilterOperatorLess,
			Value:    *f.Until,
			Table:    model.TableName,
		})
	}

	return group
}
