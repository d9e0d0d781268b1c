package service

import (
	"context"
	"io"
	"testing"
	"time"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"
	"coinfolio/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type authFixture struct {
	users   *memoryUserRepo
	roles   *memoryRoleRepo
	manager utils.JWTManager
	auth    *AuthService
}

func newAuthFixture(t *testing.T, seedRoles bool) *authFixture {
	t.Helper()

	users := newMemoryUserRepo()
	roles := newMemoryRoleRepo()
	if seedRoles {
		require.NoError(t, roles.Seed(context.Background(), []entity.Role{
			{Value: entity.RoleUser, Description: "Regular user"},
			{Value: entity.RoleAdmin, Description: "Administrator"},
		}))
	}

	manager := utils.JWTManager{Secret: []byte("test-secret"), Issuer: "test", TokenTTL: time.Hour}
	auth := NewAuthService(
		users,
		NewRoleService(users, roles),
		BcryptPasswordHasher{Cost: 4},
		JWTAccessIssuer{Manager: &manager},
		nil,
		fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		testLogger(),
	)
	return &authFixture{users: users, roles: roles, manager: manager, auth: auth}
}

func TestRegisterIssuesTokenWithDefaultRole(t *testing.T) {
	fx := newAuthFixture(t, true)

	result, err := fx.auth.Register(context.Background(), RegisterInput{
		Username: "trader1",
		Email:    "user@mail.ru",
		Password: "12345678",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := fx.manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "trader1", claims.Username)
	assert.Equal(t, "user@mail.ru", claims.Email)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)
	assert.NotZero(t, claims.UserID)
}

func TestRegisterDuplicatePrecedence(t *testing.T) {
	fx := newAuthFixture(t, true)
	ctx := context.Background()

	_, err := fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "user@mail.ru", Password: "12345678"})
	require.NoError(t, err)

	// Same email, different username.
	_, err = fx.auth.Register(ctx, RegisterInput{Username: "other", Email: "user@mail.ru", Password: "12345678"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// Same username, different email.
	_, err = fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "other@mail.ru", Password: "12345678"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	// Both collide: the email conflict wins.
	_, err = fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "user@mail.ru", Password: "12345678"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegisterFailsWithoutRoleCatalog(t *testing.T) {
	fx := newAuthFixture(t, false)

	_, err := fx.auth.Register(context.Background(), RegisterInput{
		Username: "trader1",
		Email:    "user@mail.ru",
		Password: "12345678",
	})
	assert.ErrorIs(t, err, ErrRoleCatalogMissing)
}

func TestLoginResolvesIdentifier(t *testing.T) {
	fx := newAuthFixture(t, true)
	ctx := context.Background()

	_, err := fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "user@mail.ru", Password: "12345678"})
	require.NoError(t, err)

	// Username path.
	result, err := fx.auth.Login(ctx, LoginInput{Login: "trader1", Password: "12345678"})
	require.NoError(t, err)
	claims, err := fx.manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@mail.ru", claims.Email)

	// Email path: the "@" routes the lookup.
	result, err = fx.auth.Login(ctx, LoginInput{Login: "user@mail.ru", Password: "12345678"})
	require.NoError(t, err)
	claims, err = fx.manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "trader1", claims.Username)
}

func TestLoginRejections(t *testing.T) {
	fx := newAuthFixture(t, true)
	ctx := context.Background()

	_, err := fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "user@mail.ru", Password: "12345678"})
	require.NoError(t, err)

	_, err = fx.auth.Login(ctx, LoginInput{Login: "nobody", Password: "12345678"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = fx.auth.Login(ctx, LoginInput{Login: "trader1", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStampsLastLogin(t *testing.T) {
	fx := newAuthFixture(t, true)
	ctx := context.Background()

	result, err := fx.auth.Register(ctx, RegisterInput{Username: "trader1", Email: "user@mail.ru", Password: "12345678"})
	require.NoError(t, err)
	claims, err := fx.manager.Parse(result.Token)
	require.NoError(t, err)

	_, err = fx.auth.Login(ctx, LoginInput{Login: "trader1", Password: "12345678"})
	require.NoError(t, err)

	user, err := fx.users.FindByID(ctx, claims.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), *user.LastLoginAt)
}
