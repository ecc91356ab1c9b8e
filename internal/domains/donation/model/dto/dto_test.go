package dto_test

import (
	"testing"
	"time"

	"kingdom/internal/domains/donation/model"
	"kingdom/internal/domains/donation/model/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateDonationRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 4, 6, 11, 0, 0, 0, time.UTC)

	req := dto.CreateDonationRequest{
		MemberID:     "member-1",
		Amount:       decimal.RequireFromString("2500.00"),
		DonationType: model.TypeTithe,
	}

	t.Run("default currency", func(t *testing.T) {
		donation := req.ToModel("admin-1", "KES", now)

		assert.NotEmpty(t, donation.ID)
		assert.Equal(t, "KES", donation.Currency)
		assert.Equal(t, now, donation.DonationDate)
		assert.True(t, decimal.NewFromInt(2500).Equal(donation.Amount))
	})

	t.Run("explicit currency is upper-cased", func(t *testing.T) {
		withCurrency := req
		withCurrency.Currency = "usd"

		assert.Equal(t, "USD", withCurrency.ToModel("admin-1", "KES", now).Currency)
	})
}

func TestFilter_ToFilterGroup(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 1, 0)

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
			name:      "member and type",
			filter:    dto.Filter{MemberID: "member-1", DonationType: model.TypeOffering},
			wantWhere: "(donations.member_id = :member_id AND donations.donation_type = :donation_type)",
			wantArgs:  map[string]any{model.FieldMemberID: "member-1", model.FieldDonationType: model.TypeOffering},
		},
		{
			name:      "half-open date window",
			filter:    dto.Filter{CampaignCode: "BUILD25", From: &from, Until: &until},
			wantWhere: "(donations.campaign_code = :campaign_code AND donations.donation_date >= :donated_from AND donations.donation_date < :donated_until)",
			wantArgs:  map[string]any{model.FieldCampaignCode: "BUILD25", "donated_from": from, "donated_until": until},
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
