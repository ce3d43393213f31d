package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthFixture(t *testing.T) (*AuthServiceImpl, *PointsServiceImpl) {
	t.Helper()
	pointsSvc := NewPointsService(memory.NewActivityRepository(), 1, 3, 24)
	authSvc := NewAuthService(memory.NewMemberRepository(), pointsSvc, "test-secret", time.Hour)
	return authSvc, pointsSvc
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	authSvc, pointsSvc := newAuthFixture(t)

	member, err := authSvc.Register(ctx, &models.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, member.PasswordHash)
	require.NotEqual(t, "correct-horse", member.PasswordHash)

	// Duplicate email is rejected.
	_, err = authSvc.Register(ctx, &models.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "another-pass",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	resp, err := authSvc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, member.ID.Hex(), resp.UserID)
	require.Equal(t, "alice", resp.Username)

	// The token carries the member identity.
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, member.ID.Hex(), claims["sub"])
	require.Equal(t, "alice", claims["username"])

	// The login fed the daily award into the ledger.
	userID, err := primitive.ObjectIDFromHex(resp.UserID)
	require.NoError(t, err)
	result, err := pointsSvc.CheckEligibility(ctx, userID, 1, models.RequirementCurrentMonth, "")
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, 1, result.CurrentPoints)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	authSvc, _ := newAuthFixture(t)

	_, err := authSvc.Register(ctx, &models.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "hunter22222",
	})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, &models.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidLogin)

	_, err = authSvc.Login(ctx, &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLogin_SecondSameDayLoginAwardsNothingExtra(t *testing.T) {
	ctx := context.Background()
	authSvc, pointsSvc := newAuthFixture(t)

	member, err := authSvc.Register(ctx, &models.RegisterRequest{
		Email:    "carol@example.com",
		Username: "carol",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = authSvc.Login(ctx, &models.LoginRequest{
			Email:    "carol@example.com",
			Password: "long-enough-pass",
		})
		require.NoError(t, err)
	}

	result, err := pointsSvc.CheckEligibility(ctx, member.ID, 1, models.RequirementCurrentMonth, "")
	require.NoError(t, err)
	require.Equal(t, 1, result.CurrentPoints)
}
