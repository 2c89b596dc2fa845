// Package client provides the client side of the task dashboard: an HTTP
// API client, an explicit session context persisted to disk, and a
// session-local task cache synchronized strictly through server responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	task "github.com/example/task-dashboard/domain/task"
)

// APIError is a failure reported by the server, carrying the HTTP status
// and the server's user-presentable message.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// TaskDraft is the payload for creating a task. Description stays a
// pointer so an absent description is never sent as an empty string.
type TaskDraft struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// TaskPatch is a partial update; empty fields keep their server-side value.
type TaskPatch struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// Tokens is the credential pair returned by login and refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client is an HTTP client for the dashboard API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:3000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (*UserInfo, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var user UserInfo
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and returns a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*Tokens, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// ListTasks returns all tasks owned by the authenticated user, in server
// response order.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns it with server-assigned fields.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (*task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a partial patch and returns the full updated task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask permanently removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, nil)
}

// do executes one request/response round trip. Failure responses are
// decoded into APIError so callers can present the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
		}
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Code = errBody.Error
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
