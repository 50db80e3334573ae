package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"siscav/internal/auth"
	apperrors "siscav/internal/errors"
	"siscav/internal/logger"
	"siscav/internal/model"
	"siscav/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// It deliberately does not reveal which half of the pair was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// TokenPair is a freshly issued access + refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthService handles user creation, credential verification and token
// issuance.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	log        *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, log *logger.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        log,
	}
}

// Register creates a new user with an argon2id-hashed password. Email
// uniqueness is enforced by the store's unique index and comes back as
// ErrDuplicateEmail.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "email", email, "user_id", user.ID)
	return user, nil
}

// authenticate returns the user only if found AND the password verifies.
// Any mismatch returns (nil, nil): callers cannot tell a missing user from a
// wrong password.
func (s *authService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.log.Warn("login attempt for unknown email", "email", email)
			return nil, nil
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.log.Warn("login attempt with wrong password", "email", email)
		return nil, nil
	}
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", "email", email, "user_id", user.ID)
	return pair, nil
}

// Refresh verifies a refresh token and issues a fresh access+refresh pair.
// The previous refresh token stays valid until its expiry; the store is
// stateless by design.
//
// Token errors (auth.ErrTokenInvalid, auth.ErrTokenKindMismatch) pass through
// for the handler to map; a subject that no longer exists surfaces as
// ErrUserNotFound.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, err := s.jwtService.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", auth.ErrTokenInvalid)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issuePair(user.ID)
}

func (s *authService) issuePair(userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwtService.IssueAccessToken(userID.String())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.jwtService.IssueRefreshToken(userID.String())
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
