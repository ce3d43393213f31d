package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles member registration and login
type AuthServiceImpl struct {
	memberRepo repositories.MemberRepository
	pointsSvc  PointsService
	jwtSecret  string
	expiresIn  time.Duration
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(memberRepo repositories.MemberRepository, pointsSvc PointsService, jwtSecret string, expiresIn time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		memberRepo: memberRepo,
		pointsSvc:  pointsSvc,
		jwtSecret:  jwtSecret,
		expiresIn:  expiresIn,
	}
}

// Register creates a new member account
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.Member, error) {
	_, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if err != repositories.ErrNotFound {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		slog.Error("Failed to create member", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// Login authenticates a member and issues a JWT. A successful login also
// feeds the daily login award into the points ledger.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	member, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidLogin
	}

	claims := jwt.MapClaims{
		"sub":      member.ID.Hex(),
		"username": member.Username,
		"exp":      time.Now().Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		slog.Error("Failed to sign token", "error", err, "userId", member.ID)
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// Points must never block a login.
	if err := s.pointsSvc.AwardLogin(ctx, member.ID, time.Now()); err != nil {
		slog.Error("Failed to award login points", "error", err, "userId", member.ID)
	}

	return &models.LoginResponse{
		Token:    tokenString,
		UserID:   member.ID.Hex(),
		Username: member.Username,
	}, nil
}

// GetMember returns one member by id
func (s *AuthServiceImpl) GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	return member, nil
}
