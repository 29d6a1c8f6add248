// Package nocodb is a client for the NocoDB v2 REST API. It exposes the
// table-generic record operations (list, get, create, update, delete, count)
// and the link-field operations used to express relations between tables.
package nocodb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// APIError is a non-2xx response from NocoDB.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nocodb: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a single NocoDB base. It holds a registry of logical table
// names so callers can say "user" instead of the backend-assigned table id.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu     sync.RWMutex
	tables map[string]string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tables:     map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterTable maps a logical table name to a NocoDB table id.
func (c *Client) RegisterTable(name, tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = tableID
}

// TableID resolves a logical name to its table id. Unregistered names are
// returned as-is so callers may pass raw table ids directly.
func (c *Client) TableID(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id, ok := c.tables[name]; ok {
		return id
	}
	return name
}

func (c *Client) recordsURL(table string) string {
	return fmt.Sprintf("%s/api/v2/tables/%s/records", c.baseURL, c.TableID(table))
}

func (c *Client) linksURL(table, linkFieldID, recordID string) string {
	return fmt.Sprintf("%s/api/v2/tables/%s/links/%s/records/%s", c.baseURL, c.TableID(table), linkFieldID, recordID)
}

// errorBody is the shape NocoDB uses for error responses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doJSON performs one request and decodes the response into out (when out is
// non-nil). Backend errors are logged and returned as *APIError; they are
// never retried.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("nocodb: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("nocodb: build request: %w", err)
	}
	req.Header.Set("xc-token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARN] nocodb: %s %s failed: %v", method, url, err)
		return fmt.Errorf("nocodb: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(data)}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			if eb.Message != "" {
				apiErr.Message = eb.Message
			} else if eb.Error != "" {
				apiErr.Message = eb.Error
			}
		}
		log.Printf("[WARN] nocodb: %s %s: %v", method, url, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nocodb: decode response: %w", err)
	}
	return nil
}
