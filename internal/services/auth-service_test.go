package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceFixture(t *testing.T, users ...entities.User) AuthServiceInterface {
	t.Helper()
	jwtService := tokens.NewJWTService("test-secret", time.Minute, time.Hour)
	return NewAuthService(newFakeUserRepo(users...), jwtService, zap.NewNop())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	svc := newAuthServiceFixture(t, entities.User{
		ID:       3,
		Email:    "tech@example.com",
		Password: hashPassword(t, "correct-horse"),
		Role:     constants.RoleTechnician,
		IsActive: true,
	})

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "tech@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthServiceFixture(t, entities.User{
		ID:       3,
		Email:    "tech@example.com",
		Password: hashPassword(t, "correct-horse"),
		IsActive: true,
	})

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "tech@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailReadsAsBadCredentials(t *testing.T) {
	svc := newAuthServiceFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newAuthServiceFixture(t, entities.User{
		ID:       3,
		Email:    "tech@example.com",
		Password: hashPassword(t, "correct-horse"),
		IsActive: false,
	})

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "tech@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestRefreshTokens(t *testing.T) {
	user := entities.User{
		ID:       3,
		Email:    "tech@example.com",
		Password: hashPassword(t, "correct-horse"),
		Role:     constants.RoleTechnician,
		IsActive: true,
	}
	svc := newAuthServiceFixture(t, user)

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "tech@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	svc := newAuthServiceFixture(t, entities.User{
		ID:       3,
		Email:    "tech@example.com",
		Password: hashPassword(t, "correct-horse"),
		IsActive: true,
	})

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "tech@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshTokensDeactivatedSinceIssue(t *testing.T) {
	jwtService := tokens.NewJWTService("test-secret", time.Minute, time.Hour)
	userRepo := newFakeUserRepo(entities.User{ID: 3, Email: "tech@example.com", IsActive: false})
	svc := NewAuthService(userRepo, jwtService, zap.NewNop())

	_, refresh, err := jwtService.GenerateTokens(3, constants.RoleTechnician, "")
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}
