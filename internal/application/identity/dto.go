package identity

import (
	"time"

	"github.com/carhive/backend/internal/domain/identity"
	"github.com/carhive/backend/internal/infrastructure/auth"
)

// SignupInput contains signup request data
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput contains login request data
type LoginInput struct {
	Email    string
	Password string
}

// UserInfo is the serializable view of a user. The password hash is
// deliberately absent.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is returned by both signup and login
type AuthResult struct {
	Token *auth.IssuedToken `json:"token"`
	User  UserInfo          `json:"user"`
}

// NewUserInfo converts a domain user to its serializable view
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
