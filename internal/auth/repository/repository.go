package repository

import (
	"context"
	"errors"

	authdomain "treemap-backend/internal/auth/domain"
)

// ErrMissingID is returned when an update is attempted without a record id.
var ErrMissingID = errors.New("record id is required")

// UserRepository is the persistence boundary for user records. Find methods
// return (nil, nil) when no record matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	Create(ctx context.Context, user *authdomain.User) (*authdomain.User, error)
	// UpdateProfile writes the profile fields only; the password column is
	// never touched through this path.
	UpdateProfile(ctx context.Context, user *authdomain.User) (*authdomain.User, error)
	// UpdatePassword writes the credential hash for one user.
	UpdatePassword(ctx context.Context, id any, hashedPassword string) error
}
