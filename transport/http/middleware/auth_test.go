package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kingdom/config"
	"kingdom/infras/jwt"
	jwtMocks "kingdom/infras/jwt/mocks"
	"kingdom/infras/otel/mocks"
	"kingdom/permissions"
	"kingdom/shared/constant"
	"kingdom/transport/http/middleware"
)

func newRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/api", func(api chi.Router) {
		api.Use(authRole.APIKey)
		api.Use(authRole.Auth)
		api.Use(authRole.RBAC)

		api.Post("/auth/login", ok)
		api.Route("/rooms", func(rooms chi.Router) {
			rooms.Post("/", ok)
			rooms.Get("/{id}", ok)
		})
		api.Delete("/users/{id}", ok)
	})

	return router, jwtService
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "staff@kingdom.org", Role: role}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		header    map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantRole  string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/api/rooms/r-1",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/api/rooms/r-1",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/api/rooms/r-1",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "claims without user",
			method: http.MethodGet,
			path:   "/api/rooms/r-1",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer anon"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("anon", jwt.AccessToken).Return(&jwt.Claims{Role: "user"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "user may read",
			method: http.MethodGet,
			path:   "/api/rooms/r-1",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleUser), nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleUser,
		},
		{
			name:   "user may not write",
			method: http.MethodPost,
			path:   "/api/rooms",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleUser), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "admin may write",
			method: http.MethodPost,
			path:   "/api/rooms",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleAdmin), nil)
			},
			wantCode: http.StatusOK,
			wantRole: constant.RoleAdmin,
		},
		{
			name:   "admin may not manage users",
			method: http.MethodDelete,
			path:   "/api/users/u-2",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(claims(constant.RoleAdmin), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "api key bypasses token checks",
			method:   http.MethodDelete,
			path:     "/api/users/u-2",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/api/rooms/r-1",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
			}
		})
	}
}
