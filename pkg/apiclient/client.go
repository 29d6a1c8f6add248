package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"treemap-backend/pkg/session"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// AuthResponse is the token payload of login, register and refresh.
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	CSRFToken    string        `json:"csrf_token,omitempty"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *session.User `json:"user,omitempty"`
}

// TokenSet converts the response into the session layer's token shape.
func (r *AuthResponse) TokenSet() session.TokenSet {
	return session.TokenSet{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		CSRFToken:    r.CSRFToken,
	}
}

// Tree is a tree record as served by the trees endpoints.
type Tree struct {
	ID           any     `json:"id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Species      string  `json:"species,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Diameter     float64 `json:"diameter,omitempty"`
	Age          int     `json:"age,omitempty"`
	HealthStatus string  `json:"health_status,omitempty"`
	Location     string  `json:"location,omitempty"`
}

// TreePage is a paginated tree listing.
type TreePage struct {
	List     []Tree `json:"list"`
	PageInfo struct {
		TotalRows int  `json:"totalRows"`
		Page      int  `json:"page"`
		PageSize  int  `json:"pageSize"`
		IsLast    bool `json:"isLastPage"`
	} `json:"pageInfo"`
}

// PlantRequest is the payload of the planting endpoint.
type PlantRequest struct {
	Message    string `json:"message,omitempty"`
	Amount     int    `json:"amount"`
	UserID     any    `json:"user_id,omitempty"`
	LocationID any    `json:"location_id,omitempty"`
	TreeInfoID any    `json:"tree_info_id,omitempty"`
}

// Client is a typed HTTP client for the service API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) doJSON(ctx context.Context, method, path, accessToken string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates an account and returns its first token set.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new access token. It satisfies
// session.Refresher.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*session.TokenSet, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", "", body, &resp); err != nil {
		return nil, err
	}
	tokens := resp.TokenSet()
	return &tokens, nil
}

// Logout tells the service the session is over. Always safe to call.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", "", nil, nil)
}

// Me fetches the authenticated user's record.
func (c *Client) Me(ctx context.Context, accessToken string) (*session.User, error) {
	var user session.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Trees lists tree records.
func (c *Client) Trees(ctx context.Context, limit, offset int) (*TreePage, error) {
	path := fmt.Sprintf("/api/trees?limit=%d&offset=%d", limit, offset)
	var page TreePage
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Plant records a planting.
func (c *Client) Plant(ctx context.Context, accessToken string, req *PlantRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/plantings", accessToken, req, nil)
}
