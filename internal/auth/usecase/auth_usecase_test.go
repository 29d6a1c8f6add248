package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "treemap-backend/internal/auth/domain"
	authdto "treemap-backend/internal/auth/dto"
	"treemap-backend/internal/auth/repository"
	"treemap-backend/pkg/config"
	"treemap-backend/pkg/nocodb"
	"treemap-backend/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users           map[string]*authdomain.User
	profileUpdates  int
	lastNewPassword string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*authdomain.User)}
}

func (r *fakeUserRepo) add(user *authdomain.User) {
	r.users[nocodb.FormatID(user.ID)] = user
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *authdomain.User) (*authdomain.User, error) {
	copied := *user
	copied.ID = "7"
	r.add(&copied)
	return &copied, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *authdomain.User) (*authdomain.User, error) {
	r.profileUpdates++
	stored, ok := r.users[nocodb.FormatID(user.ID)]
	if !ok {
		return nil, errors.New("no such user")
	}
	user.Password = stored.Password
	r.add(user)
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id any, hashedPassword string) error {
	stored, ok := r.users[nocodb.FormatID(id)]
	if !ok {
		return errors.New("no such user")
	}
	stored.Password = hashedPassword
	r.lastNewPassword = hashedPassword
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func newTestUsecase(t *testing.T, repo *fakeUserRepo, cfg *config.Config) AuthUsecase {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewAuthUsecase(repo, ratelimit.NewDefault(), cfg)
}

func seedUser(t *testing.T, repo *fakeUserRepo, password string) *authdomain.User {
	t.Helper()
	hashed, err := repository.HashPassword(password)
	require.NoError(t, err)
	user := &authdomain.User{
		ID:       "42",
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
	}
	repo.add(user)
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEmpty(t, tokens.CSRFToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "alice", tokens.User.Username)

	// Last login is stamped through the profile update path.
	assert.Equal(t, 1, repo.profileUpdates)
	stored, _ := repo.FindByID(context.Background(), "42")
	assert.NotEmpty(t, stored.LogedInLast)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	_, errWrong := uc.Login(context.Background(), "alice@example.com", "battery staple")
	_, errUnknown := uc.Login(context.Background(), "nobody@example.com", "battery staple")

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong, errUnknown)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	for i := 0; i < ratelimit.DefaultMaxAttempts; i++ {
		_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// The right password no longer helps once the window is exhausted.
	_, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	var lockout *LockoutError
	require.ErrorAs(t, err, &lockout)
	assert.Greater(t, lockout.RetryAfter, time.Duration(0))

	// Other accounts are unaffected.
	_, err = uc.Login(context.Background(), "bob@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSuccessResetsLimiter(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	for i := 0; i < ratelimit.DefaultMaxAttempts-1; i++ {
		_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	// The failure budget is full again after a successful login.
	for i := 0; i < ratelimit.DefaultMaxAttempts-1; i++ {
		_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestRegisterHashesPasswordAndIssuesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUsecase(t, repo, nil)

	tokens, err := uc.Register(context.Background(), &authdto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	stored, err := repo.FindByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2hunter2", stored.Password)
	assert.True(t, repository.CheckPasswordHash("hunter2hunter2", stored.Password))
	assert.NotEmpty(t, stored.SignUpDate)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	_, err := uc.Register(context.Background(), &authdto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRefreshRotatesAccessAndCSRF(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken, "the refresh token itself does not rotate")
	assert.NotEqual(t, tokens.CSRFToken, refreshed.CSRFToken)

	user, err := uc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsGarbageAndDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	_, err := uc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	delete(repo.users, nocodb.FormatID(user.ID))
	_, err = uc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateTokenExpired(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")

	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute
	uc := newTestUsecase(t, repo, cfg)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, err = uc.ValidateToken(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	tokens, err := uc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecret = "another-secret"
	other := newTestUsecase(t, repo, cfg)

	_, err = other.ValidateToken(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMeStripsPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	user, err := uc.Me(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	_, err = uc.Me(context.Background(), "404")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileMergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	username := "alice-renamed"
	planted := 3
	updated, err := uc.UpdateProfile(context.Background(), "42", &authdto.UpdateProfileRequest{
		Username:     &username,
		TreesPlanted: &planted,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice-renamed", updated.Username)
	assert.Equal(t, 3, updated.TreesPlanted)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Empty(t, updated.Password)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "correct horse")
	uc := newTestUsecase(t, repo, nil)

	err := uc.ChangePassword(context.Background(), "42", "wrong", "new password 1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = uc.ChangePassword(context.Background(), "42", "correct horse", "new password 1")
	require.NoError(t, err)
	assert.True(t, repository.CheckPasswordHash("new password 1", repo.lastNewPassword))

	// The old password no longer works, the new one does.
	_, err = uc.Login(context.Background(), "alice@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), "alice@example.com", "new password 1")
	assert.NoError(t, err)
}
