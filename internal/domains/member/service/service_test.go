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
	memberMocks "kingdom/internal/domains/member/mocks"
	"kingdom/internal/domains/member/model"
	"kingdom/internal/domains/member/model/dto"
	"kingdom/internal/domains/member/service"
	pastorMocks "kingdom/internal/domains/pastor/mocks"
	cacheMocks "kingdom/shared/cache/mocks"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
)

const (
	memberID = "member-1"
	pastorID = "6f0c2d1e-3b4a-4c5d-8e9f-0a1b2c3d4e5f"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.Member, *memberMocks.MockMember, *pastorMocks.MockPastor) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := memberMocks.NewMockMember(ctrl)
	mockPastors := pastorMocks.NewMockPastor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockPastors, cfg, mockCache, mocks.NewOtel(), clock.Fixed(fixedNow))

	return svc, mockRepo, mockPastors
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestMemberService_Create(t *testing.T) {
	assigned := pastorID

	tests := []struct {
		name      string
		req       dto.CreateMemberRequest
		setupMock func(repo *memberMocks.MockMember, pastors *pastorMocks.MockPastor)
		wantCode  int
	}{
		{
			name: "starts pending",
			req:  dto.CreateMemberRequest{FirstName: "Ann", LastName: "Otieno", Email: "Ann@Example.org"},
			setupMock: func(repo *memberMocks.MockMember, _ *pastorMocks.MockPastor) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, member model.Member) error {
						assert.Equal(t, model.VettingPending, member.VettingStatus)
						assert.Equal(t, "ann@example.org", member.Email)
						assert.Nil(t, member.ApprovedAt)

						return nil
					})
			},
		},
		{
			name: "unknown pastor",
			req:  dto.CreateMemberRequest{FirstName: "Ann", LastName: "Otieno", Email: "ann@example.org", PastorID: &assigned},
			setupMock: func(_ *memberMocks.MockMember, pastors *pastorMocks.MockPastor) {
				pastors.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "duplicate email",
			req:  dto.CreateMemberRequest{FirstName: "Ann", LastName: "Otieno", Email: "ann@example.org"},
			setupMock: func(repo *memberMocks.MockMember, _ *pastorMocks.MockPastor) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505", Constraint: "members_email_key"})
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockPastors := newService(t)
			tt.setupMock(mockRepo, mockPastors)

			res, err := svc.Create(userContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.VettingPending, res.VettingStatus)
		})
	}
}

func TestMemberService_GetByEmail(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Member, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "ann@example.org", args[model.FieldEmail])

			return model.Member{ID: memberID, Email: "ann@example.org"}, nil
		})

	res, err := svc.GetByEmail(context.Background(), "ANN@example.org")

	require.NoError(t, err)
	assert.Equal(t, memberID, res.ID)
}

func TestMemberService_UpdateVetting(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		exist        bool
		wantApproved bool
		wantCode     int
	}{
		{name: "approval stamps approved_at", status: "approved", exist: true, wantApproved: true},
		{name: "rejection leaves approved_at", status: model.VettingRejected, exist: true},
		{name: "unknown status", status: "MAYBE", wantCode: http.StatusBadRequest},
		{name: "missing member", status: model.VettingApproved, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			if tt.wantCode != http.StatusBadRequest {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exist, nil)
			}

			if tt.exist {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						approvedAt, ok := fields[model.FieldApprovedAt]
						assert.Equal(t, tt.wantApproved, ok)

						if tt.wantApproved {
							assert.Equal(t, fixedNow, approvedAt)
						}

						return nil
					})
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{ID: memberID}, nil)
			}

			_, err := svc.UpdateVetting(userContext(), memberID, tt.status)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestMemberService_AssignPastor(t *testing.T) {
	t.Run("assigns existing pastor", func(t *testing.T) {
		svc, mockRepo, mockPastors := newService(t)

		assigned := pastorID

		mockPastors.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pastorID, fields[model.FieldPastorID])

				return nil
			})
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{ID: memberID, PastorID: &assigned}, nil)

		res, err := svc.AssignPastor(userContext(), memberID, pastorID)

		require.NoError(t, err)
		require.NotNil(t, res.PastorID)
		assert.Equal(t, pastorID, *res.PastorID)
	})

	t.Run("missing pastor", func(t *testing.T) {
		svc, _, mockPastors := newService(t)

		mockPastors.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.AssignPastor(userContext(), memberID, pastorID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestMemberService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		exist    bool
		repoErr  error
		wantCode int
	}{
		{name: "deleted", exist: true},
		{name: "missing", wantCode: http.StatusNotFound},
		{name: "has donations", exist: true, repoErr: &pq.Error{Code: "23503"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exist, nil)

			if tt.exist {
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.repoErr)
			}

			err := svc.Delete(userContext(), memberID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
