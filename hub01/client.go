package hub01

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client is a Hub01 Shop API client. It owns the HTTP transport and the
// base URL, and exposes one service per resource family. All services share
// this client's transport and token.
//
// The client issues one blocking request per call and performs no retries;
// callers needing concurrency should create one client per goroutine or
// synchronize externally.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	ProjectTypes *ProjectTypesService
	Projects     *ProjectsService
	Versions     *VersionsService
	Tags         *TagsService
	Users        *UsersService
}

// NewClient creates a new Hub01 Shop client for the given base URL.
// A token is only needed for write operations and user endpoints.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("hub01: base URL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.ProjectTypes = &ProjectTypesService{client: client}
	client.Projects = &ProjectsService{client: client}
	client.Versions = &VersionsService{client: client}
	client.Tags = &TagsService{client: client}
	client.Users = &UsersService{client: client}

	return client, nil
}

// do performs a request against the API and centralizes response
// interpretation:
//
//   - transport failures are wrapped into *APIError with StatusCode 0
//   - 204 returns (nil, nil)
//   - any other 2xx returns the raw body bytes; callers decode them, so
//     binary responses pass through unchanged
//   - 401/403/404/422 and every other non-2xx status map onto *APIError
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", reqURL).
		Msg("Making Hub01 API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to read response body: %v", err), Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	return nil, apiError(resp.StatusCode, raw)
}

// errorBody is the {message, errors} shape of API error responses.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// apiError builds the typed error for a non-2xx response. 403 bodies carry
// a flat message field only.
func apiError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	switch status {
	case http.StatusUnauthorized:
		return &APIError{StatusCode: status, Message: messageOr(body.Message, "Unauthenticated")}
	case http.StatusForbidden:
		return &APIError{StatusCode: status, Message: messageOr(body.Message, "Permission denied")}
	case http.StatusNotFound:
		return &APIError{StatusCode: status, Message: messageOr(body.Message, "Not found")}
	case http.StatusUnprocessableEntity:
		return &APIError{StatusCode: status, Message: messageOr(body.Message, "Validation error"), Errors: body.Errors}
	}

	msg := body.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return &APIError{StatusCode: status, Message: msg}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

// TestToken validates the configured bearer token against the API.
// The endpoint lives outside the /v1 prefix.
func (c *Client) TestToken(ctx context.Context) (*TokenInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, "/test-token", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var info TokenInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("hub01: failed to decode token info: %w", err)
	}
	return &info, nil
}
