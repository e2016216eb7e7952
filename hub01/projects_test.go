package hub01

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProjectsOptionsValues(t *testing.T) {
	tests := []struct {
		name string
		opts ListProjectsOptions
		want url.Values
	}{
		{
			name: "zero values take defaults",
			opts: ListProjectsOptions{},
			want: url.Values{
				"project_type":        {"mod"},
				"order_by":            {"downloads"},
				"order_direction":     {"desc"},
				"per_page":            {"10"},
				"page":                {"1"},
				"release_date_period": {"all"},
			},
		},
		{
			name: "absent optionals are omitted, lists repeat",
			opts: ListProjectsOptions{
				Search:      "chest",
				Tags:        []string{"storage", "tech"},
				VersionTags: []string{"fabric"},
			},
			want: url.Values{
				"project_type":        {"mod"},
				"search":              {"chest"},
				"tags[]":              {"storage", "tech"},
				"version_tags[]":      {"fabric"},
				"order_by":            {"downloads"},
				"order_direction":     {"desc"},
				"per_page":            {"10"},
				"page":                {"1"},
				"release_date_period": {"all"},
			},
		},
		{
			name: "explicit values preserved",
			opts: ListProjectsOptions{
				ProjectType:       "plugin",
				OrderBy:           "name",
				OrderDirection:    "asc",
				PerPage:           25,
				Page:              3,
				ReleaseDatePeriod: "month",
				ReleaseDateStart:  "2024-01-01",
				ReleaseDateEnd:    "2024-02-01",
			},
			want: url.Values{
				"project_type":        {"plugin"},
				"order_by":            {"name"},
				"order_direction":     {"asc"},
				"per_page":            {"25"},
				"page":                {"3"},
				"release_date_period": {"month"},
				"release_date_start":  {"2024-01-01"},
				"release_date_end":    {"2024-02-01"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.values())
		})
	}
}

func TestProjectsList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/projects", r.URL.Path)
		assert.Equal(t, []string{"storage", "tech"}, r.URL.Query()["tags[]"])
		assert.Equal(t, "iron", r.URL.Query().Get("search"))

		w.Write([]byte(`{
			"data": [
				{"name": "Iron Chests", "slug": "iron-chests", "summary": "s", "logo_url": "l", "status": "published", "downloads": 100, "created_at": "2024-01-01", "tags": ["storage"]},
				{"name": "Iron Furnaces", "slug": "iron-furnaces", "summary": "s", "logo_url": "l", "status": "published", "downloads": 80, "created_at": "2024-01-02", "tags": null}
			],
			"meta": {"current_page": 1, "from": 1, "last_page": 4, "per_page": 10, "to": 2, "total": 37}
		}`))
	})

	page, err := client.Projects.List(context.Background(), ListProjectsOptions{
		Search: "iron",
		Tags:   []string{"storage", "tech"},
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	assert.Equal(t, "iron-chests", page.Data[0].Slug)
	assert.Equal(t, []string{"storage"}, page.Data[0].Tags)
	assert.Empty(t, page.Data[1].Tags)
	assert.NotNil(t, page.Data[1].Tags)

	assert.Equal(t, 37, page.Meta.Total)
	assert.Equal(t, 4, page.Meta.LastPage)
}

func TestProjectsGet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/project/iron-chests", r.URL.Path)
		w.Write([]byte(`{"data": {
			"name": "Iron Chests",
			"slug": "iron-chests",
			"summary": "More chests",
			"description": "Long text",
			"logo_url": "http://example/logo.png",
			"website": "http://example",
			"status": "published",
			"downloads": 5000,
			"created_at": "2024-01-01T00:00:00Z",
			"last_release_date": "2024-06-01T00:00:00Z",
			"version_count": 12,
			"tags": ["storage"],
			"members": [{"username": "alice", "role": "owner"}]
		}}`))
	})

	project, err := client.Projects.Get(context.Background(), "iron-chests")
	require.NoError(t, err)

	assert.Equal(t, "Iron Chests", project.Name)
	assert.Equal(t, 12, project.VersionCount)
	assert.Equal(t, "2024-01-01T00:00:00Z", project.CreatedAt)
	require.Len(t, project.Members, 1)
	assert.Equal(t, "alice", project.Members[0].Username)
}

func TestProjectsGetNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Project not found"}`))
	})

	_, err := client.Projects.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Project not found", apiErr.Message)
}
