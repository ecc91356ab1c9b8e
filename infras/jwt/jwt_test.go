package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdom/config"
	"kingdom/infras/jwt"
	"kingdom/shared/clock"
)

var issuedAt = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func newJWT(at time.Time) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "Kingdom Seekers"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60 * 24

	return jwt.New(cfg, clock.Fixed(at))
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newJWT(issuedAt)

	pair, err := svc.GenerateTokenPair("user-1", "admin@kingdom.org", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Kingdom Seekers", claims.Issuer)
	assert.Equal(t, claims.ID, claims.TokenID)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	pair, err := newJWT(issuedAt).GenerateTokenPair("user-1", "admin@kingdom.org", "admin")
	require.NoError(t, err)

	_, err = newJWT(issuedAt.Add(16*time.Minute)).ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	pair, err := newJWT(issuedAt).GenerateTokenPair("user-1", "admin@kingdom.org", "superadmin")
	require.NoError(t, err)

	later := newJWT(issuedAt.Add(time.Hour))

	refreshed, err := later.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := later.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "superadmin", claims.Role)

	_, err = later.RefreshTokens(pair.AccessToken)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	require.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Token abc")
	require.Error(t, err)
}
