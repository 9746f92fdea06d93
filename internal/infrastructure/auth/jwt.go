package auth

import (
	"errors"
	"time"

	"github.com/carhive/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrMissingUserID = errors.New("missing user id in claims")
)

// Claims carry the authenticated user identity. The user ID lives in
// the registered Subject claim; nothing else is encoded.
type Claims struct {
	jwt.RegisteredClaims
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// IssuedToken is a signed token plus its metadata
type IssuedToken struct {
	Token     string     `json:"token"`
	TokenType string     `json:"token_type"` // Bearer
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// JWTService issues and verifies bearer identity tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Issue signs a token for the given user. A zero configured expiration
// produces a token without an exp claim, valid until the secret rotates.
func (s *JWTService) Issue(userID uuid.UUID) (*IssuedToken, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Issuer:   s.issuer,
			Subject:  userID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	issued := &IssuedToken{TokenType: "Bearer"}
	if s.expiration > 0 {
		expiresAt := now.Add(s.expiration)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
		issued.ExpiresAt = &expiresAt
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	issued.Token = token
	return issued, nil
}

// Validate verifies a token string and returns its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Subject == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}
