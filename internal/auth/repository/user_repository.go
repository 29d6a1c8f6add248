package repository

import (
	"context"
	"strings"

	authdomain "treemap-backend/internal/auth/domain"
	"treemap-backend/pkg/nocodb"

	"golang.org/x/crypto/bcrypt"
)

// UserTable is the logical table name registered on the nocodb client.
const UserTable = "user"

// hashCost is the bcrypt work factor used for stored passwords.
const hashCost = 12

// userRepository implements UserRepository on top of the NocoDB user table.
type userRepository struct {
	db *nocodb.Client
}

// NewUserRepository creates a new instance of userRepository. tableID is the
// NocoDB id of the user table.
func NewUserRepository(db *nocodb.Client, tableID string) UserRepository {
	db.RegisterTable(UserTable, tableID)
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	page, err := nocodb.List[authdomain.User](ctx, r.db, UserTable, nocodb.Query{
		Where: "(email,eq," + email + ")",
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(page.List) == 0 {
		return nil, nil
	}
	return &page.List[0], nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	user, err := nocodb.Get[authdomain.User](ctx, r.db, UserTable, id)
	if err != nil {
		if apiErr, ok := err.(*nocodb.APIError); ok && apiErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) (*authdomain.User, error) {
	created, err := nocodb.CreateOne(ctx, r.db, UserTable, *user)
	if err != nil {
		return nil, err
	}
	if created != nil && created.ID != nil {
		user.ID = created.ID
	}
	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *authdomain.User) (*authdomain.User, error) {
	if user.ID == nil {
		return nil, ErrMissingID
	}

	// Allowlisted profile fields only; a fresh struct keeps the password
	// column out of the patch.
	payload := authdomain.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		TreesPlanted: user.TreesPlanted,
		MoneyDonated: user.MoneyDonated,
		SignUpDate:   user.SignUpDate,
		LogedInLast:  user.LogedInLast,
	}

	updated, err := nocodb.UpdateOne(ctx, r.db, UserTable, payload)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return &payload, nil
	}
	return updated, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id any, hashedPassword string) error {
	if id == nil {
		return ErrMissingID
	}

	// Guard against double-hashing when a caller hands us a value that is
	// already a bcrypt hash.
	hashed, err := EnsureHashed(hashedPassword)
	if err != nil {
		return err
	}

	_, err = nocodb.UpdateOne(ctx, r.db, UserTable, authdomain.User{ID: id, Password: hashed})
	return err
}

// HashPassword hashes a password using bcrypt with work factor 12.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// EnsureHashed hashes the value unless it already is a bcrypt hash.
// Bcrypt hashes always start with $2a$, $2b$ or $2y$.
func EnsureHashed(password string) (string, error) {
	if strings.HasPrefix(password, "$2") {
		return password, nil
	}
	return HashPassword(password)
}
