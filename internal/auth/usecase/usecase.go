package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "treemap-backend/internal/auth/domain"
	authdto "treemap-backend/internal/auth/dto"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot tell which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// LockoutError is returned when the login rate limit for an email is hit.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %s", e.RetryAfter.Round(time.Second))
}

// AuthUsecase defines the authentication and profile business logic.
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*authdto.TokenResponse, error)
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	// Refresh exchanges a still-valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	// ValidateToken verifies an access token and returns the identity it
	// carries.
	ValidateToken(tokenString string) (*authdomain.SanitizedUser, error)
	Me(ctx context.Context, userID string) (*authdomain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// Logout always succeeds; tokens are stateless and the pair is discarded
	// by the client.
	Logout(ctx context.Context) error
}
