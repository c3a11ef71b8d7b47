// Package service provides authentication business logic, delegating
// persistence to the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// ErrInvalidCredentials is returned when the username is unknown or the
// password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore defines the persistence operations required by the
// authentication service.
type UserStore interface {
	// GetUser returns the user with the given id, or nil when absent.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByUsername returns the user with the given login name, or
	// nil when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID int         `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService verifies credentials against bcrypt hashes and issues
// signed tokens.
type AuthService struct {
	store  UserStore
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs an AuthService signing tokens with secret.
// Tokens expire after 24 hours.
func NewAuthService(store UserStore, secret []byte) *AuthService {
	return &AuthService{store: store, secret: secret, ttl: 24 * time.Hour}
}

// Login checks the username/password pair and returns the user along
// with a signed HS256 token. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// VerifyToken validates a token issued by Login and returns the user id
// it carries.
func (s *AuthService) VerifyToken(tokenString string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}

// GetUser loads a user by id, returning nil when absent.
func (s *AuthService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
