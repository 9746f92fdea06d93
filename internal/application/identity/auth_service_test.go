package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	domainidentity "github.com/carhive/backend/internal/domain/identity"
	"github.com/carhive/backend/internal/domain/shared"
	"github.com/carhive/backend/internal/infrastructure/auth"
	"github.com/carhive/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainidentity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domainidentity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-with-enough-length",
		Issuer: "carhive-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func TestAuthServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := newTestAuthService(repo).Signup(ctx, SignupInput{
			Email:    "Alice@Example.com",
			Password: "secret1",
			Name:     "Alice",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token.Token)
		assert.Equal(t, "Bearer", result.Token.TokenType)
		assert.Equal(t, "alice@example.com", result.User.Email)
		assert.Equal(t, "Alice", result.User.Name)
		assert.NotEmpty(t, result.User.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		_, err := newTestAuthService(repo).Signup(ctx, SignupInput{
			Email:    "alice@example.com",
			Password: "secret1",
			Name:     "Alice",
		})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "EMAIL_TAKEN", de.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid input before touching the repository", func(t *testing.T) {
		repo := new(MockUserRepository)

		_, err := newTestAuthService(repo).Signup(ctx, SignupInput{
			Email:    "alice@example.com",
			Password: "12345",
			Name:     "Alice",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps repository failure to internal error", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := newTestAuthService(repo).Signup(ctx, SignupInput{
			Email:    "alice@example.com",
			Password: "secret1",
			Name:     "Alice",
		})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.NotContains(t, de.Message, "connection refused")
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	newStoredUser := func(t *testing.T) *domainidentity.User {
		user, err := domainidentity.NewUser("bob@example.com", "hunter2x", "Bob")
		require.NoError(t, err)
		return user
	}

	t.Run("issues token for valid credentials", func(t *testing.T) {
		user := newStoredUser(t)
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "bob@example.com").Return(user, nil)

		result, err := newTestAuthService(repo).Login(ctx, LoginInput{
			Email:    "  Bob@Example.com ",
			Password: "hunter2x",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token.Token)
		assert.Equal(t, user.ID.String(), result.User.ID)
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := newTestAuthService(repo).Login(ctx, LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("wrong password yields the same invalid credentials", func(t *testing.T) {
		user := newStoredUser(t)
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "bob@example.com").Return(user, nil)

		_, err := newTestAuthService(repo).Login(ctx, LoginInput{
			Email:    "bob@example.com",
			Password: "wrong-password",
		})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("issued token carries the user id", func(t *testing.T) {
		user := newStoredUser(t)
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "bob@example.com").Return(user, nil)

		svc := newTestAuthService(repo)
		result, err := svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "hunter2x"})
		require.NoError(t, err)

		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret: "test-secret-key-with-enough-length",
			Issuer: "carhive-test",
		})
		claims, err := jwtService.Validate(result.Token.Token)
		require.NoError(t, err)

		got, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, user.ID, got)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
	})
}
