package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pipeboard/roster-console/internal/core/domain"
)

// ErrUnauthorized is returned when the server rejects the session token.
// The store reacts by signing the operator out; no retry is attempted.
var ErrUnauthorized = errors.New("session rejected by server")

// Payload is the normalized form submission handed to the roster API.
// Password is populated only when creating a new account; edits never carry
// a credential.
type Payload struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password,omitempty"`
}

// RosterClient is the store's view of the roster API. Implementations map
// authorization-failure statuses to ErrUnauthorized.
type RosterClient interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, p Payload) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, p Payload) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

const defaultRequestTimeout = 15 * time.Second

// HTTPRosterClient implements RosterClient against the REST API:
// GET/POST /users, PUT/DELETE /users/:id, bearer-token auth.
type HTTPRosterClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPRosterClient returns a client rooted at baseURL authenticating with
// the given bearer token. A nil httpClient falls back to a default with a
// request timeout.
func NewHTTPRosterClient(baseURL, token string, httpClient *http.Client) *HTTPRosterClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &HTTPRosterClient{baseURL: baseURL, token: token, http: httpClient}
}

func (c *HTTPRosterClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPRosterClient) CreateUser(ctx context.Context, p Payload) (*domain.User, error) {
	var created domain.User
	if err := c.do(ctx, http.MethodPost, "/users", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPRosterClient) UpdateUser(ctx context.Context, id string, p Payload) (*domain.User, error) {
	p.Password = "" // credentials never travel on the edit path
	var updated domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+id, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPRosterClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

func (c *HTTPRosterClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: %s", method, path, apiErrorMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiErrorMessage extracts the server's {"error": ...} envelope, falling back
// to the HTTP status text.
func apiErrorMessage(resp *http.Response) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return resp.Status
}
