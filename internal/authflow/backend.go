package authflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ExchangeResult struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

type VerifyResult struct {
	Valid       bool   `json:"valid"`
	UserID      string `json:"user_id"`
	Username    string `json:"username,omitempty"`
	AccessToken string `json:"access_token"`
}

type RefreshResult struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

//go:generate mockgen -source=backend.go -destination=../mocks/authflow.go -package=mocks

// Backend is the trusted server that holds the client secret and the token.
type Backend interface {
	Exchange(ctx context.Context, code, redirectURI string) (*ExchangeResult, error)
	Verify(ctx context.Context) (*VerifyResult, error)
	Refresh(ctx context.Context) (*RefreshResult, error)
	Logout(ctx context.Context) error
}

// StatusError is returned by HTTPBackend for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPBackend talks to the /api/auth endpoints. Credentials ride on the
// client's transport.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

func NewHTTPBackend(baseURL string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBackend{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (b *HTTPBackend) Exchange(ctx context.Context, code, redirectURI string) (*ExchangeResult, error) {
	body := map[string]string{
		"code":         code,
		"redirect_uri": redirectURI,
	}

	var result ExchangeResult
	if err := b.do(ctx, http.MethodPost, "/api/auth/callback", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *HTTPBackend) Verify(ctx context.Context) (*VerifyResult, error) {
	var result VerifyResult
	if err := b.do(ctx, http.MethodGet, "/api/auth/verify", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *HTTPBackend) Refresh(ctx context.Context) (*RefreshResult, error) {
	var result RefreshResult
	if err := b.do(ctx, http.MethodPost, "/api/auth/refresh", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *HTTPBackend) Logout(ctx context.Context) error {
	return b.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
