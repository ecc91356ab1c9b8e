package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kingdom/config"
	"kingdom/infras/otel/mocks"
	pastorMocks "kingdom/internal/domains/pastor/mocks"
	"kingdom/internal/domains/pastor/model"
	"kingdom/internal/domains/pastor/model/dto"
	"kingdom/internal/domains/pastor/service"
	cacheMocks "kingdom/shared/cache/mocks"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.Pastor, *pastorMocks.MockPastor) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := pastorMocks.NewMockPastor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), clock.Fixed(fixedNow)), mockRepo
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestPastorService_Create(t *testing.T) {
	country := "ke"

	req := dto.CreatePastorRequest{
		FirstName:   "John",
		LastName:    "Mwangi",
		Email:       "John.Mwangi@Example.org",
		CountryCode: &country,
	}

	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "successful create"},
		{name: "duplicate email", repoErr: &pq.Error{Code: "23505", Constraint: "pastors_email_key"}, wantCode: http.StatusBadRequest},
		{name: "database failure", repoErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t)

			mockRepo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, pastor model.Pastor) error {
					assert.Equal(t, "john.mwangi@example.org", pastor.Email)
					require.NotNil(t, pastor.CountryCode)
					assert.Equal(t, "KE", *pastor.CountryCode)
					assert.Equal(t, fixedNow, pastor.CreatedAt)

					return tt.repoErr
				})

			res, err := svc.Create(userContext(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestPastorService_Get(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Pastor{}, nil)

	_, err := svc.Get(context.Background(), "pastor-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestPastorService_GetAll(t *testing.T) {
	svc, mockRepo := newService(t)

	filter := dto.Filter{CountryCode: "ke"}.ToFilterGroup()
	params := gDto.QueryParams{Page: 1, Limit: 10}

	mockRepo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Pastor{{ID: "pastor-1", FirstName: "John"}}, nil)

	res, err := svc.GetAll(context.Background(), params, filter)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "pastor-1", res.Pastors[0].ID)
}

func TestPastorService_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *pastorMocks.MockPastor)
		wantCode  int
	}{
		{
			name: "normalizes email",
			setupMock: func(repo *pastorMocks.MockPastor) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "pastor@example.org", fields[model.FieldEmail])
						assert.NotContains(t, fields, model.FieldFirstName)

						return nil
					})
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Pastor{ID: "pastor-1", Email: "pastor@example.org"}, nil)
			},
		},
		{
			name: "missing pastor",
			setupMock: func(repo *pastorMocks.MockPastor) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t)
			tt.setupMock(mockRepo)

			res, err := svc.Update(userContext(), dto.UpdatePastorRequest{Email: "Pastor@Example.org"}, "pastor-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "pastor@example.org", res.Email)
		})
	}
}

func TestPastorService_Delete(t *testing.T) {
	svc, mockRepo := newService(t)

	gomock.InOrder(
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	require.NoError(t, svc.Delete(userContext(), "pastor-1"))

	err := svc.Delete(userContext(), "pastor-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
