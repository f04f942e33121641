package dto_test

import (
	"drivingschool/infras/jwt"
	"drivingschool/internal/domains/auth/model/dto"
	"drivingschool/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Nil(t, response.User)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	phone := "+33612345678"
	req := dto.RegisterRequest{
		Email:    "  Lea@Example.com ",
		Password: "secret-password",
		FullName: " Lea Learner ",
		Phone:    &phone,
	}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "lea@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, "Lea Learner", user.FullName)
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.Equal(t, &phone, user.Phone)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, user.CreatedBy)
	assert.Equal(t, user.ID, user.ModifiedBy)
}
