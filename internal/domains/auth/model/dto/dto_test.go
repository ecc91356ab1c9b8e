package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kingdom/infras/jwt"
	"kingdom/internal/domains/auth/model/dto"
	"kingdom/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(3600), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	name := "Mary Wanjiku"

	req := dto.RegisterRequest{Email: "Mary@Example.ORG", Password: "secret-pass", FullName: &name}
	user := req.ToUserModel("hashed", now)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "mary@example.org", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.True(t, user.Active)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}
