// Package client is the Go client for the infradash HTTP/JSON API. The ifd
// CLI is its main consumer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/groblegark/infradash/internal/model"
)

// HTTPClient talks to an infradash server over its REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	adminToken string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// WithAdminToken returns a copy of the client that also sends the admin
// credential, for the user and session management endpoints.
func (c *HTTPClient) WithAdminToken(adminToken string) *HTTPClient {
	clone := *c
	clone.adminToken = adminToken
	return &clone
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Executions ---

// Execution is a record as the API returns it.
type Execution struct {
	model.ExecutionRecord
	DisplayType string `json:"display_type"`
}

// ExecutionDetail is a record plus its decoded result.
type ExecutionDetail struct {
	Execution Execution              `json:"execution"`
	State     string                 `json:"state"`
	Result    *model.ExecutionResult `json:"result,omitempty"`
	Message   string                 `json:"message,omitempty"`
}

// SaveExecution stores a new execution record for the authenticated user.
func (c *HTTPClient) SaveExecution(ctx context.Context, recordType, description string) (*Execution, error) {
	body := map[string]string{"type": recordType, "description": description}
	var exec Execution
	if err := c.doJSON(ctx, http.MethodPost, "/v1/executions", body, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

// ListExecutions returns the authenticated user's history, newest first.
func (c *HTTPClient) ListExecutions(ctx context.Context) ([]Execution, error) {
	var resp struct {
		Executions []Execution `json:"executions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/executions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Executions, nil
}

// GetExecution fetches one record with its decoded result.
func (c *HTTPClient) GetExecution(ctx context.Context, id string) (*ExecutionDetail, error) {
	var detail ExecutionDetail
	if err := c.doJSON(ctx, http.MethodGet, "/v1/executions/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DeleteExecution removes one record. Deleting an id that is already gone
// succeeds.
func (c *HTTPClient) DeleteExecution(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/executions/"+url.PathEscape(id), nil, nil)
}

// --- Profile ---

// GetProfile returns the authenticated user's account.
func (c *HTTPClient) GetProfile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/v1/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile saves the authenticated user's profile.
func (c *HTTPClient) UpdateProfile(ctx context.Context, profile model.UserProfile) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodPut, "/v1/profile", profile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Admin ---

// CreateUser registers a new account. Requires the admin token.
func (c *HTTPClient) CreateUser(ctx context.Context, fullName, email string) (*model.User, error) {
	body := map[string]string{"full_name": fullName, "email": email}
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/v1/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all accounts. Requires the admin token.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]*model.User, error) {
	var resp struct {
		Users []*model.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// IssuedSession is the one-time response to CreateSession; the token is never
// retrievable again.
type IssuedSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateSession issues a session token for a user. Requires the admin token.
func (c *HTTPClient) CreateSession(ctx context.Context, userID string) (*IssuedSession, error) {
	body := map[string]string{"user_id": userID}
	var session IssuedSession
	if err := c.doJSON(ctx, http.MethodPost, "/v1/sessions", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RevokeSession invalidates a session token. Requires the admin token.
func (c *HTTPClient) RevokeSession(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.doJSON(ctx, http.MethodDelete, "/v1/sessions", body, nil)
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.adminToken != "" {
		req.Header.Set("X-Admin-Token", c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content means success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
