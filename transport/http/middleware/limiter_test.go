package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kingdom/config"
	"kingdom/infras/otel/mocks"
	cacheMocks "kingdom/shared/cache/mocks"
	"kingdom/shared/constant"
	"kingdom/transport/http/middleware"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		count         int64
		cacheErr      error
		wantStatus    int
		wantRemaining string
	}{
		{name: "disabled", enabled: false, wantStatus: http.StatusOK},
		{name: "first request", enabled: true, count: 1, wantStatus: http.StatusOK, wantRemaining: "2"},
		{name: "last allowed request", enabled: true, count: 3, wantStatus: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", enabled: true, count: 4, wantStatus: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "cache down lets traffic through", enabled: true, cacheErr: errors.New("connection refused"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.enabled {
				cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7", 60).Return(tt.count, tt.cacheErr)
			}

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/rooms/", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
