package hub01

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client, server
}

func TestNewClient(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		_, err := NewClient("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base URL is required")
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000/api/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/api", client.baseURL)
	})

	t.Run("services wired", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000/api")
		require.NoError(t, err)
		assert.NotNil(t, client.ProjectTypes)
		assert.NotNil(t, client.Projects)
		assert.NotNil(t, client.Versions)
		assert.NotNil(t, client.Tags)
		assert.NotNil(t, client.Users)
	})
}

func TestClientOptions(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000/api", WithToken("secret"))
		require.NoError(t, err)
		assert.Equal(t, "secret", client.token)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8000/api", WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8000/api", WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with logger", func(t *testing.T) {
		_, err := NewClient("http://localhost:8000/api", WithLogger(zerolog.Nop()))
		require.NoError(t, err)
	})
}

func TestRequestHeaders(t *testing.T) {
	var gotAccept, gotAuth, gotUA string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"data":[]}`))
	}, WithToken("test-token"), WithUserAgent("hub01-go/test"))

	_, err := client.ProjectTypes.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "hub01-go/test", gotUA)
}

func TestRequestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.ProjectTypes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantMessage string
	}{
		{
			name:        "401 with message",
			status:      http.StatusUnauthorized,
			body:        `{"message":"token expired"}`,
			wantErr:     ErrUnauthenticated,
			wantMessage: "token expired",
		},
		{
			name:        "401 without message",
			status:      http.StatusUnauthorized,
			body:        `{}`,
			wantErr:     ErrUnauthenticated,
			wantMessage: "Unauthenticated",
		},
		{
			name:        "403 with message",
			status:      http.StatusForbidden,
			body:        `{"message":"forbidden"}`,
			wantErr:     ErrPermissionDenied,
			wantMessage: "forbidden",
		},
		{
			name:        "403 without message",
			status:      http.StatusForbidden,
			body:        `{}`,
			wantErr:     ErrPermissionDenied,
			wantMessage: "Permission denied",
		},
		{
			name:        "404 with message",
			status:      http.StatusNotFound,
			body:        `{"message":"no such project"}`,
			wantErr:     ErrNotFound,
			wantMessage: "no such project",
		},
		{
			name:        "404 without message",
			status:      http.StatusNotFound,
			body:        ``,
			wantErr:     ErrNotFound,
			wantMessage: "Not found",
		},
		{
			name:        "422 with message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message":"The version field is required.","errors":{"version":["The version field is required."]}}`,
			wantErr:     ErrValidation,
			wantMessage: "The version field is required.",
		},
		{
			name:        "500 with message",
			status:      http.StatusInternalServerError,
			body:        `{"message":"boom"}`,
			wantMessage: "boom",
		},
		{
			name:        "500 without JSON falls back to raw text",
			status:      http.StatusInternalServerError,
			body:        `internal server error`,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.do(context.Background(), http.MethodGet, "/v1/projects", nil, nil, "")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid","errors":{"name":["The name field is required."],"version":["Taken."]}}`))
	})

	_, err := client.do(context.Background(), http.MethodPost, "/v1/project/x/versions", nil, nil, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, map[string][]string{
		"name":    {"The name field is required."},
		"version": {"Taken."},
	}, apiErr.Errors)
}

func TestNoContentReturnsEmpty(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			raw, err := client.do(context.Background(), method, "/v1/project/x/version/y", nil, nil, "")
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestNonJSONBodyPassesThrough(t *testing.T) {
	binary := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(binary)
	})

	raw, err := client.do(context.Background(), http.MethodGet, "/v1/file", nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, binary, raw)
}

func TestTransportErrorWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Force connection refused

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.ProjectTypes.List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Err)
	// Must not unwrap onto any of the HTTP sentinels.
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestTestToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-token", r.URL.Path)
		w.Write([]byte(`{"user":{"username":"alice"},"token":{"name":"ci-token"}}`))
	}, WithToken("secret"))

	info, err := client.TestToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", info.User.Username)
	assert.Equal(t, "ci-token", info.Token.Name)
}
