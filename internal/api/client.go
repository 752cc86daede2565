package api

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client wraps the invoicing backend's REST API. It performs no caching and
// no retries: a failed request is reported once and left to the caller.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New builds a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: httpc, logger: logger}
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() error { return c.http.Close() }

// BaseURL reports the configured backend base URL.
func (c *Client) BaseURL() string { return c.http.BaseURL() }

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The backend expects
// form-encoded fields, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/token")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if res.IsError() {
		return "", newAPIError(res.StatusCode(), res.Bytes())
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login: backend returned no access token")
	}
	return out.AccessToken, nil
}

// Register creates a login account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/usuarios")
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if res.IsError() {
		return newAPIError(res.StatusCode(), res.Bytes())
	}
	return nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, token, path string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if res.IsError() {
		return newAPIError(res.StatusCode(), res.Bytes())
	}
	return nil
}

// send performs an authenticated write with a JSON body, decoding the
// response into out when non-nil.
func (c *Client) send(ctx context.Context, token, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx).SetAuthToken(token)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() {
		return newAPIError(res.StatusCode(), res.Bytes())
	}
	return nil
}
