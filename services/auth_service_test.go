package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
)

func registerRequest(username string) models.RegisterRequest {
	return models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	}
}

func TestRegisterAlwaysCreatesTechTier(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repositories.NewUserRepository(db))

	response, err := service.Register(registerRequest("newhire"))
	require.NoError(t, err)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, models.UserTypeTech, response.User.UserType)
	assert.False(t, response.User.IsSuperuser)
	assert.NotEqual(t, "correct horse battery", response.User.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repositories.NewUserRepository(db))

	_, err := service.Register(registerRequest("taken"))
	require.NoError(t, err)

	duplicate := registerRequest("someoneelse")
	duplicate.Email = "taken@example.com"
	_, err = service.Register(duplicate)
	require.Error(t, err)
	assert.IsType(t, models.ErrorValidation{}, err)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repositories.NewUserRepository(db))

	_, err := service.Register(registerRequest("alex"))
	require.NoError(t, err)

	response, err := service.Login(models.LoginRequest{
		Email:    "alex@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)

	_, err = service.Login(models.LoginRequest{
		Email:    "alex@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.IsType(t, models.ErrorUnauthorized{}, err)

	_, err = service.Login(models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repositories.NewUserRepository(db))

	response, err := service.Register(registerRequest("sam"))
	require.NoError(t, err)

	err = service.ChangePassword(response.User.ID, models.ChangePasswordRequest{
		OldPassword: "not the password",
		NewPassword: "a new password!",
	})
	require.Error(t, err)
	assert.IsType(t, models.ErrorValidation{}, err)

	err = service.ChangePassword(response.User.ID, models.ChangePasswordRequest{
		OldPassword: "correct horse battery",
		NewPassword: "a new password!",
	})
	require.NoError(t, err)

	_, err = service.Login(models.LoginRequest{
		Email:    "sam@example.com",
		Password: "a new password!",
	})
	require.NoError(t, err)
}
