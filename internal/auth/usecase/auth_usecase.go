package usecase

import (
	"context"
	"log"
	"time"

	authdomain "treemap-backend/internal/auth/domain"
	authdto "treemap-backend/internal/auth/dto"
	"treemap-backend/internal/auth/repository"
	"treemap-backend/pkg/config"
	"treemap-backend/pkg/nocodb"
	"treemap-backend/pkg/ratelimit"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// RefreshClaims is the payload of a refresh token. It carries the user id
// and a random token id only.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
}

// dummyHash keeps the bcrypt cost of a login with an unknown email in the
// same ballpark as one with a wrong password.
var dummyHash, _ = repository.HashPassword(uuid.NewString())

// authUsecase implements AuthUsecase.
type authUsecase struct {
	userRepo repository.UserRepository
	limiter  *ratelimit.Limiter
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(userRepo repository.UserRepository, limiter *ratelimit.Limiter, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		limiter:  limiter,
		config:   cfg,
	}
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*authdto.TokenResponse, error) {
	if !u.limiter.Allow(email) {
		return nil, &LockoutError{RetryAfter: u.limiter.Remaining(email)}
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("[WARN] login lookup failed: %v", err)
		return nil, err
	}

	if user == nil || user.Password == "" {
		repository.CheckPasswordHash(password, dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !repository.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	u.limiter.Reset(email)

	// Stamp the last-login column; a failure here must not block the login.
	user.LogedInLast = time.Now().UTC().Format(time.RFC3339)
	if _, err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		log.Printf("[WARN] failed to stamp last login for user %v: %v", user.ID, err)
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		SignUpDate: time.Now().UTC().Format(time.RFC3339),
	}

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return u.generateTokens(created)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" || claims.TokenID == "" {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	// The refresh token stays as-is; only the access and anti-forgery
	// tokens rotate.
	sanitized := user.Sanitize()
	return &authdto.TokenResponse{
		AccessToken: accessToken,
		CSRFToken:   uuid.New().String(),
		ExpiresIn:   int64(u.config.JWTAccessExpiry.Seconds()),
		User:        &sanitized,
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.SanitizedUser, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &authdomain.SanitizedUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Password = ""
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.TreesPlanted != nil {
		user.TreesPlanted = *req.TreesPlanted
	}
	if req.MoneyDonated != nil {
		user.MoneyDonated = *req.MoneyDonated
	}

	updated, err := u.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	updated.Password = ""
	return updated, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Password == "" {
		return ErrUserNotFound
	}

	if !repository.CheckPasswordHash(currentPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := repository.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

func (u *authUsecase) Logout(ctx context.Context) error {
	return nil
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	sanitized := user.Sanitize()
	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CSRFToken:    uuid.New().String(),
		ExpiresIn:    int64(u.config.JWTAccessExpiry.Seconds()),
		User:         &sanitized,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.config.JWTAccessExpiry)),
		},
		UserID:   nocodb.FormatID(user.ID),
		Username: user.Username,
		Email:    user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.config.JWTRefreshExpiry)),
		},
		UserID:  nocodb.FormatID(user.ID),
		TokenID: uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}
