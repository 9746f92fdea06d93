package handler

import identityapp "github.com/carhive/backend/internal/application/identity"

// SignupRequest is the signup request payload
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Name     string `json:"name" binding:"required,min=2,max=200"`
}

// LoginRequest is the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// AuthResponse is the response for both signup and login
type AuthResponse struct {
	Token TokenResponse        `json:"token"`
	User  identityapp.UserInfo `json:"user"`
}

func newAuthResponse(result *identityapp.AuthResult) AuthResponse {
	token := TokenResponse{
		Token:     result.Token.Token,
		TokenType: result.Token.TokenType,
	}
	if result.Token.ExpiresAt != nil {
		token.ExpiresAt = result.Token.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return AuthResponse{
		Token: token,
		User:  result.User,
	}
}
