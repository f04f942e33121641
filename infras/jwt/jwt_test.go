package jwt_test

import (
	"drivingschool/config"
	"drivingschool/infras/jwt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "drivingschool"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newJWT()

	pair, err := svc.GenerateTokenPair(jwt.Subject{UserID: "u-1", Email: "learner@example.com", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.InDelta(t, 900, claims.RemainingSeconds(time.Now()), 5)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := newJWT()

	pair, err := svc.GenerateTokenPair(jwt.Subject{UserID: "u-1", Email: "learner@example.com", Role: "admin"})
	require.NoError(t, err)

	refreshed, claims, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	access, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", access.UserID)

	_, _, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestRemainingSeconds_Expired(t *testing.T) {
	claims := &jwt.Claims{}
	assert.Zero(t, claims.RemainingSeconds(time.Now()))
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)
}
