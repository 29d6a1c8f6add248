package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	authdomain "treemap-backend/internal/auth/domain"
	"treemap-backend/pkg/nocodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("battery staple", hash))
}

func TestEnsureHashedLeavesHashesAlone(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	same, err := EnsureHashed(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, same)

	rehashed, err := EnsureHashed("plaintext")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext", rehashed)
	assert.True(t, CheckPasswordHash("plaintext", rehashed))
}

type capturedRequest struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func newTestRepo(t *testing.T, status int, response string) (UserRepository, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.Query()
		captured.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client := nocodb.NewClient(server.URL, "test-token")
	return NewUserRepository(client, "tbl_users"), captured
}

func testUser(hashedPassword string) authdomain.User {
	return authdomain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashedPassword,
	}
}

func TestFindByEmailFiltersAndDecodes(t *testing.T) {
	repo, captured := newTestRepo(t, http.StatusOK, `{
		"list": [{"Id": 42, "Username": "alice", "Email": "alice@example.com"}],
		"pageInfo": {"totalRows": 1}
	}`)

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "/api/v2/tables/tbl_users/records", captured.path)
	assert.Equal(t, "(Email,eq,alice@example.com)", captured.query.Get("where"))
	assert.Equal(t, "1", captured.query.Get("limit"))
}

func TestFindByEmailNoMatchReturnsNil(t *testing.T) {
	repo, _ := newTestRepo(t, http.StatusOK, `{"list": [], "pageInfo": {"totalRows": 0}}`)

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindByIDNotFoundReturnsNil(t *testing.T) {
	repo, _ := newTestRepo(t, http.StatusNotFound, `{"error": "RECORD_NOT_FOUND", "message": "Record not found"}`)

	user, err := repo.FindByID(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateProfileOmitsPasswordColumn(t *testing.T) {
	repo, captured := newTestRepo(t, http.StatusOK, `[{"Id": 42}]`)

	hashed, err := HashPassword("secret secret")
	require.NoError(t, err)

	user := testUser(hashed)
	_, err = repo.UpdateProfile(context.Background(), &user)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &records))
	require.Len(t, records, 1)

	assert.NotContains(t, records[0], "Password")
	assert.Equal(t, "alice", records[0]["Username"])
}

func TestUpdateProfileRequiresID(t *testing.T) {
	repo, _ := newTestRepo(t, http.StatusOK, `[]`)

	user := testUser("")
	user.ID = nil
	_, err := repo.UpdateProfile(context.Background(), &user)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestUpdatePasswordSendsHash(t *testing.T) {
	repo, captured := newTestRepo(t, http.StatusOK, `[{"Id": 42}]`)

	require.NoError(t, repo.UpdatePassword(context.Background(), 42, "plaintext password"))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &records))
	require.Len(t, records, 1)

	stored, _ := records[0]["Password"].(string)
	assert.True(t, strings.HasPrefix(stored, "$2"), "password must be stored hashed")
	assert.True(t, CheckPasswordHash("plaintext password", stored))
}
