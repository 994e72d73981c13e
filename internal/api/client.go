package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	httpTimeoutEnvKey  = "DOCVAULT_HTTP_TIMEOUT"
	apiTokenEnvKey     = "DOCVAULT_API_TOKEN"
)

// Client is a simple HTTP client for the docvault API.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client. The bearer token is taken from
// DOCVAULT_API_TOKEN unless overridden with SetToken.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken: strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req AuthLoginRequest) (AuthLoginResponse, error) {
	var resp AuthLoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, req, &resp)
	if err == nil {
		c.SetToken(resp.Token)
	}
	return resp, err
}

// Logout revokes the current bearer token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil, nil)
}

// SubmitDocument uploads one finalized document payload.
func (c *Client) SubmitDocument(ctx context.Context, req DocumentSubmitRequest) (DocumentResponse, error) {
	var resp DocumentResponse
	err := c.do(ctx, http.MethodPost, "/v1/documents", nil, req, &resp)
	return resp, err
}

// ListDocuments returns the caller's documents. Query supports search,
// type, sort and dir parameters.
func (c *Client) ListDocuments(ctx context.Context, query url.Values) (DocumentListResponse, error) {
	var resp DocumentListResponse
	err := c.do(ctx, http.MethodGet, "/v1/documents", query, nil, &resp)
	return resp, err
}

func (c *Client) GetDocument(ctx context.Context, id string) (DocumentResponse, error) {
	var resp DocumentResponse
	err := c.do(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(id), nil, nil, &resp)
	return resp, err
}

func (c *Client) RenameDocument(ctx context.Context, id string, req DocumentRenameRequest) (DocumentResponse, error) {
	var resp DocumentResponse
	err := c.do(ctx, http.MethodPatch, "/v1/documents/"+url.PathEscape(id), nil, req, &resp)
	return resp, err
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/documents/"+url.PathEscape(id), nil, nil, nil)
}

// FetchBlob streams the stored bytes behind a document URL to w. The URL
// must point at this client's server.
func (c *Client) FetchBlob(ctx context.Context, blobURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blobURL, nil)
	if err != nil {
		return err
	}
	c.setAuthHeader(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
		}
	}
	return fmt.Errorf("api error: %s", resp.Status)
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
