package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskdesk/internal/model"
)

// Client is the single choke point for backend calls. It owns the base URL,
// the endpoint registry and the bearer token; callers never build headers
// themselves.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

// SetLogger enables request logging (debug log file; never stderr, which the
// TUI owns while running). A nil logger disables it.
func (c *Client) SetLogger(log *slog.Logger) {
	c.log = log
}

// SetToken sets or clears the default Authorization header applied to all
// subsequent calls. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: err.Error()}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.Debug("request failed", "method", method, "path", path, "err", err)
		}
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()
	if c.log != nil {
		c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "dur", time.Since(start))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &Error{Status: resp.StatusCode, Message: eb.resolve()}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Identity is the raw identity-info payload; the session store turns it into
// a Principal (role parsing happens there, once).
type Identity struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
}

// Login exchanges credentials for a bearer token. It does not attach the
// token; that is the session store's call.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.Post(ctx, pathLogin, map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Info(ctx context.Context) (Identity, error) {
	var id Identity
	err := c.Get(ctx, pathInfo, &id)
	return id, err
}

func (c *Client) Dashboard(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := c.Get(ctx, pathDashboard, &stats)
	return stats, err
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var list model.TaskList
	if err := c.Get(ctx, pathTasks, &list); err != nil {
		return nil, err
	}
	return list.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.Get(ctx, pathTask(id), &task)
	return task, err
}

// TaskPayload is the create/update request body. Department entries pair
// positionally with assignee emails; the backend derives the task's
// department set from them.
type TaskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignees   []string `json:"assignee"`
	Departments []string `json:"department"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, p TaskPayload) error {
	return c.Post(ctx, pathTaskCreate, p, nil)
}

func (c *Client) UpdateTask(ctx context.Context, id string, p TaskPayload) error {
	return c.Put(ctx, pathTask(id), p, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.Delete(ctx, pathTask(id))
}

// HistoryEntry is one audit record from the task history endpoint.
type HistoryEntry struct {
	ID          json.Number `json:"id"`
	TaskTitle   string      `json:"task_title"`
	Action      string      `json:"action"`
	PerformedBy string      `json:"performed_by_name"`
	Timestamp   string      `json:"timestamp"`
}

func (c *Client) TaskHistory(ctx context.Context) ([]HistoryEntry, error) {
	var out struct {
		History []HistoryEntry `json:"history"`
	}
	if err := c.Get(ctx, pathHistory, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var list model.UserList
	if err := c.Get(ctx, pathUsers, &list); err != nil {
		return nil, err
	}
	return list.Users, nil
}

// UserPayload is the create/update request body for user management.
type UserPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (c *Client) CreateUser(ctx context.Context, p UserPayload) error {
	return c.Post(ctx, pathUserCreate, p, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, p UserPayload) error {
	return c.Put(ctx, pathUserUpdate(id), p, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.Delete(ctx, pathUserDelete(id))
}
