package identity

import (
	"context"

	"github.com/carhive/backend/internal/domain/identity"
	"github.com/carhive/backend/internal/domain/shared"
	"github.com/carhive/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles signup and login
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signup registers a new user and immediately issues a token for them
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	// The unique index on email backs this up, but checking first gives
	// the caller a clean error instead of a constraint violation.
	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.ErrInternal
	}
	if exists {
		return nil, shared.ErrEmailTaken
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if de, ok := err.(*shared.DomainError); ok && de.Code == shared.ErrEmailTaken.Code {
			return nil, err
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.ErrInternal
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token after signup", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("User signed up", zap.String("user_id", user.ID.String()))

	return &AuthResult{
		Token: token,
		User:  NewUserInfo(user),
	}, nil
}

// Login authenticates a user by email and password. Every failure mode
// surfaces as the same invalid-credentials error so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := identity.NormalizeEmail(input.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email")
		return nil, shared.ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &AuthResult{
		Token: token,
		User:  NewUserInfo(user),
	}, nil
}
