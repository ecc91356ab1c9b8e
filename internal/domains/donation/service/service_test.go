package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kingdom/config"
	"kingdom/infras/otel/mocks"
	donationMocks "kingdom/internal/domains/donation/mocks"
	"kingdom/internal/domains/donation/model"
	"kingdom/internal/domains/donation/model/dto"
	"kingdom/internal/domains/donation/service"
	memberMocks "kingdom/internal/domains/member/mocks"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
)

const memberID = "4c1d9a2b-7e6f-4a3b-9c8d-1e2f3a4b5c6d"

var fixedNow = time.Date(2025, 4, 6, 11, 30, 0, 0, time.UTC)

func newService(t *testing.T) (service.Donation, *donationMocks.MockDonation, *memberMocks.MockMember) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := donationMocks.NewMockDonation(ctrl)
	mockMembers := memberMocks.NewMockMember(ctrl)

	cfg := &config.Config{}
	cfg.App.Donation.Currency = "KES"

	return service.New(mockRepo, mockMembers, cfg, mocks.NewOtel(), clock.Fixed(fixedNow)), mockRepo, mockMembers
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestDonationService_Create(t *testing.T) {
	tests := []struct {
		name         string
		currency     string
		memberExists bool
		repoErr      error
		wantCurrency string
		wantCode     int
	}{
		{name: "defaults currency", memberExists: true, wantCurrency: "KES"},
		{name: "keeps given currency", currency: "usd", memberExists: true, wantCurrency: "USD"},
		{name: "missing member", wantCode: http.StatusBadRequest},
		{name: "member removed concurrently", memberExists: true, repoErr: &pq.Error{Code: "23503"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockMembers := newService(t)

			mockMembers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.memberExists, nil)

			if tt.memberExists {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, donation model.Donation) error {
						assert.Equal(t, fixedNow, donation.DonationDate)

						if tt.wantCurrency != "" {
							assert.Equal(t, tt.wantCurrency, donation.Currency)
						}

						return tt.repoErr
					})
			}

			res, err := svc.Create(userContext(), dto.CreateDonationRequest{
				MemberID:     memberID,
				Amount:       decimal.NewFromInt(500),
				Currency:     tt.currency,
				DonationType: model.TypeTithe,
			})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(500).Equal(res.Amount))
		})
	}
}

func TestDonationService_GetByDateRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantUntil time.Time
		wantCode  int
	}{
		{name: "single day", start: "2025-04-06", end: "2025-04-06", wantUntil: time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)},
		{name: "reversed range", start: "2025-04-06", end: "2025-04-01", wantCode: http.StatusBadRequest},
		{name: "bad date", start: "06/04/2025", end: "2025-04-06", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			if tt.wantCode == 0 {
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						_, args := filter.GetWhereClause()

						until, ok := args["donated_until"].(time.Time)
						require.True(t, ok)
						assert.True(t, tt.wantUntil.Equal(until))

						return 1, nil
					})
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Donation{{ID: "donation-1"}}, nil)
			}

			res, err := svc.GetByDateRange(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, tt.start, tt.end)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, res.TotalData)
		})
	}
}

func TestDonationService_Get(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Donation{}, nil)

	_, err := svc.Get(context.Background(), "donation-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDonationService_Update(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	amount := decimal.NewFromInt(750)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "USD", fields[model.FieldCurrency])
			assert.NotContains(t, fields, model.FieldDonationType)

			return nil
		})
	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Donation{ID: "donation-1", Amount: amount, Currency: "USD"}, nil)

	res, err := svc.Update(userContext(), dto.UpdateDonationRequest{Amount: &amount, Currency: "usd"}, "donation-1")

	require.NoError(t, err)
	assert.Equal(t, "USD", res.Currency)
}

func TestDonationService_Delete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	gomock.InOrder(
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	require.NoError(t, svc.Delete(userContext(), "donation-1"))

	err := svc.Delete(userContext(), "donation-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
