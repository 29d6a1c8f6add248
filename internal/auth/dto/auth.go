package dto

import authdomain "treemap-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Username     *string  `json:"username,omitempty"`
	Email        *string  `json:"email,omitempty"`
	TreesPlanted *int     `json:"treesPlanted,omitempty"`
	MoneyDonated *float64 `json:"moneyDonated,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// TokenResponse is what login, register and refresh hand back. The user is
// always the sanitized subset.
type TokenResponse struct {
	AccessToken  string                    `json:"access_token"`
	RefreshToken string                    `json:"refresh_token,omitempty"`
	CSRFToken    string                    `json:"csrf_token"`
	ExpiresIn    int64                     `json:"expires_in"`
	User         *authdomain.SanitizedUser `json:"user,omitempty"`
}
