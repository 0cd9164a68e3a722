package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vkarpenko/credo/internal/client/config"
	"github.com/vkarpenko/credo/internal/client/session"
	"github.com/vkarpenko/credo/internal/common"
)

// sessionTransport injects the stored token into outgoing requests and
// keeps the store in sync with the server's responses: a fresh token in
// the X-Auth-Token header is persisted, and a 401 clears the stored
// token so the next guard check sees a signed-out session. Rejected
// requests are not retried.
type sessionTransport struct {
	base  http.RoundTripper
	store session.Store
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.store.Token()
	if err == nil && token != "" {
		// stored tokens may or may not carry the scheme prefix
		token = strings.TrimPrefix(token, common.BearerPrefix)
		req = req.Clone(req.Context())
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if fresh := resp.Header.Get(common.AuthTokenHeaderName); fresh != "" {
		_ = t.store.SetToken(strings.TrimPrefix(fresh, common.BearerPrefix))
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_ = t.store.ClearToken()
	}

	return resp, nil
}

// HTTPClient talks JSON over HTTP to the Credo server.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	// uploads go straight to presigned storage URLs, which must not
	// carry the session's Authorization header
	uploadHC *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for cfg.ServerBaseURL using the given
// session store.
func NewHTTPClient(cfg *config.Config, store session.Store) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.ServerBaseURL, "/"),
		hc: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: &sessionTransport{base: http.DefaultTransport, store: store},
		},
		uploadHC: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.Fields = envelope.Fields
	}
	return apiErr
}

func (c *HTTPClient) Register(ctx context.Context, params *RegisterParams) (*AuthResult, error) {
	result := &AuthResult{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", params, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	result := &AuthResult{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/protected/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *HTTPClient) AvatarUploadURL(ctx context.Context) (string, string, error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/protected/avatar/upload-url", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, url string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.ContentLength = size

	resp, err := c.uploadHC.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: "avatar upload failed"}
	}
	return nil
}

func (c *HTTPClient) AttachAvatar(ctx context.Context, key string) (*User, error) {
	body := struct {
		Key string `json:"key"`
	}{Key: key}

	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/protected/avatar", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) AvatarURL(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/protected/avatar", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	c.uploadHC.CloseIdleConnections()
	return nil
}
