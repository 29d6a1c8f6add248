package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Keys under which session state is persisted.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyCSRFToken    = "csrf_token"
	KeyAuthUser     = "auth_user"
)

// TokenSet carries the credentials returned by the auth endpoints.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	CSRFToken    string `json:"csrf_token,omitempty"`
}

// User is the sanitized account snapshot cached alongside the tokens.
type User struct {
	ID       any    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Refresher exchanges a refresh token for a fresh TokenSet.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
}

// Store manages the authenticated session persisted in a Storage.
type Store struct {
	storage Storage
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a session Store over the given Storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveLogin persists the tokens and the user snapshot from a successful
// login or registration.
func (s *Store) SaveLogin(tokens TokenSet, user *User) error {
	if err := s.storage.Set(KeyAuthToken, tokens.AccessToken); err != nil {
		return err
	}
	if tokens.RefreshToken != "" {
		if err := s.storage.Set(KeyRefreshToken, tokens.RefreshToken); err != nil {
			return err
		}
	}
	if tokens.CSRFToken != "" {
		if err := s.storage.Set(KeyCSRFToken, tokens.CSRFToken); err != nil {
			return err
		}
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal session user: %w", err)
		}
		if err := s.storage.Set(KeyAuthUser, string(data)); err != nil {
			return err
		}
	}
	return nil
}

// Clear drops every credential key. It is idempotent and never fails on
// already-missing keys.
func (s *Store) Clear() {
	for _, key := range []string{KeyAuthToken, KeyRefreshToken, KeyCSRFToken, KeyAuthUser} {
		_ = s.storage.Delete(key)
	}
}

// IsAuthenticated reports whether both a token and a user snapshot are
// present.
func (s *Store) IsAuthenticated() bool {
	token, _ := s.storage.Get(KeyAuthToken)
	user, _ := s.storage.Get(KeyAuthUser)
	return token != "" && user != ""
}

// User returns the cached user snapshot, or nil when absent or unreadable.
func (s *Store) User() *User {
	raw, ok := s.storage.Get(KeyAuthUser)
	if !ok || raw == "" {
		return nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// AccessToken returns the stored access token, empty when absent.
func (s *Store) AccessToken() string {
	token, _ := s.storage.Get(KeyAuthToken)
	return token
}

// CSRFToken returns the stored CSRF token, empty when absent.
func (s *Store) CSRFToken() string {
	token, _ := s.storage.Get(KeyCSRFToken)
	return token
}

// CheckAndRefresh validates the stored access token. A still-valid token
// returns true immediately. An expired token triggers exactly one refresh
// attempt through the refresher; on failure the whole session is cleared.
func (s *Store) CheckAndRefresh(ctx context.Context, refresher Refresher) bool {
	token, _ := s.storage.Get(KeyAuthToken)
	if token == "" {
		return false
	}
	if s.tokenValid(token) {
		return true
	}

	refreshToken, _ := s.storage.Get(KeyRefreshToken)
	if refreshToken == "" {
		s.Clear()
		return false
	}

	tokens, err := refresher.Refresh(ctx, refreshToken)
	if err != nil || tokens == nil || !s.tokenValid(tokens.AccessToken) {
		s.Clear()
		return false
	}

	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	if err := s.SaveLogin(*tokens, nil); err != nil {
		s.Clear()
		return false
	}
	return true
}

// tokenValid checks the expiry claim without verifying the signature. The
// server re-verifies on every request; this only decides whether a refresh
// is due.
func (s *Store) tokenValid(tokenString string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return s.now().Before(claims.ExpiresAt.Time)
}
