package service_test

import (
	"context"
	"errors"
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
	roomMocks "kingdom/internal/domains/room/mocks"
	"kingdom/internal/domains/room/model"
	"kingdom/internal/domains/room/model/dto"
	"kingdom/internal/domains/room/service"
	cacheMocks "kingdom/shared/cache/mocks"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
)

var fixedNow = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), clock.Fixed(fixedNow)), mockRepo, mockCache
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func sampleRoom() model.Room {
	return model.Room{
		ID:            "room-1",
		RoomNumber:    "101",
		RoomType:      model.TypeStandard,
		Capacity:      2,
		PackageTier:   model.PackageBasic,
		PricePerNight: decimal.NewFromInt(100),
		Status:        model.StatusAvailable,
	}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomNumber:    "101",
		RoomType:      model.TypeStandard,
		Capacity:      2,
		PackageTier:   model.PackageBasic,
		PricePerNight: decimal.NewFromInt(100),
	}

	tests := []struct {
		name     string
		repoErr  error
		wantCode int
		wantMsg  string
	}{
		{name: "successful create"},
		{
			name:     "duplicate room number",
			repoErr:  &pq.Error{Code: "23505", Constraint: "rooms_room_number_key"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "resource already exists (rooms_room_number_key)",
		},
		{name: "database failure", repoErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, model.StatusAvailable, room.Status)
					assert.Equal(t, "admin-1", room.CreatedBy)
					assert.Equal(t, fixedNow, room.CreatedAt)

					return tt.repoErr
				})

			res, err := svc.Create(userContext(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusAvailable, res.Status)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func(_ *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.RoomResponse)
						require.True(t, ok)
						res.ID = "room-1"

						return nil
					})
			},
		},
		{
			name: "cache miss reads repository",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), "room-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "room-1", res.ID)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := dto.Filter{Status: model.StatusAvailable}.ToFilterGroup()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), filter).Return(12, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Room{sampleRoom()}, nil)

	res, err := svc.GetAll(context.Background(), params, filter)

	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 1)
}

func TestRoomService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name:   "marks room under maintenance",
			status: model.StatusMaintenance,
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])
						assert.Equal(t, fixedNow, fields[constant.FieldModifiedAt])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})

				updated := sampleRoom()
				updated.Status = model.StatusMaintenance
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			},
		},
		{
			name:      "invalid status",
			status:    "CLOSED",
			setupMock: func(_ *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "missing room",
			status: model.StatusOccupied,
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			res, err := svc.UpdateStatus(userContext(), "room-1", tt.status)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
		})
	}
}

func TestRoomService_DeleteTwice(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	gomock.InOrder(
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	require.NoError(t, svc.Delete(userContext(), "room-1"))

	err := svc.Delete(userContext(), "room-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_DeleteWithBookings(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

	err := svc.Delete(userContext(), "room-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "room still has bookings", err.Error())
}

func TestRoomService_Stats(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		occupied  int
		wantRate  float64
	}{
		{name: "no rooms", wantRate: 0},
		{name: "partially occupied", total: 4, available: 2, occupied: 1, wantRate: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)

			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()

			gomock.InOrder(
				mockRepo.EXPECT().Count(gomock.Any(), gDto.And()).Return(tt.total, nil),
				mockRepo.EXPECT().Count(gomock.Any(), dto.Filter{Status: model.StatusAvailable}.ToFilterGroup()).Return(tt.available, nil),
				mockRepo.EXPECT().Count(gomock.Any(), dto.Filter{Status: model.StatusOccupied}.ToFilterGroup()).Return(tt.occupied, nil),
			)

			res, err := svc.Stats(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.total, res.TotalRooms)
			assert.Equal(t, tt.available, res.AvailableRooms)
			assert.Equal(t, tt.occupied, res.OccupiedRooms)
			assert.InDelta(t, tt.wantRate, res.OccupancyRate, 0.0001)
		})
	}
}
