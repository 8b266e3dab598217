package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookstore-storefront/internal/domains/auth/model"
)

const maxBodyBytes = 1 << 20

// Client talks to the external auth service.
type Client interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
}

// HTTPClient posts credentials to the auth service and returns its token.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// the auth service wraps payloads in the {success, data, error} envelope
type envelope struct {
	Success bool               `json:"success"`
	Data    *model.LoginResult `json:"data"`
}

// Login - POST /api/auth/login
func (c *HTTPClient) Login(ctx context.Context, creds model.LoginRequest) (*model.LoginResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrAuthUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden:
		return nil, model.ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrAuthUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrAuthUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", model.ErrAuthUnavailable, err)
	}
	if !env.Success || env.Data == nil || env.Data.AccessToken == "" {
		return nil, model.ErrInvalidCredentials
	}
	return env.Data, nil
}
