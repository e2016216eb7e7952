package hub01

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionResponse = `{"data": {
	"name": "Test Version",
	"version": "1.0.0",
	"release_type": "alpha",
	"release_date": "2024-06-01",
	"downloads": 0,
	"tags": [],
	"files": [],
	"dependencies": []
}}`

func TestListVersionsOptionsValues(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, url.Values{
			"order_by":        {"downloads"},
			"order_direction": {"desc"},
			"per_page":        {"10"},
			"page":            {"1"},
		}, ListVersionsOptions{}.values())
	})

	t.Run("tags repeat", func(t *testing.T) {
		got := ListVersionsOptions{Tags: []string{"fabric", "forge"}}.values()
		assert.Equal(t, []string{"fabric", "forge"}, got["tags[]"])
	})
}

func TestVersionsList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/project/iron-chests/versions", r.URL.Path)
		assert.Equal(t, "release_date", r.URL.Query().Get("order_by"))
		w.Write([]byte(`{
			"data": [
				{"name": "v2", "version": "2.0.0", "release_type": "release", "release_date": "2024-06-01", "downloads": 10},
				{"name": "v1", "version": "1.0.0", "release_type": "release", "release_date": "2024-01-01", "downloads": 90}
			],
			"meta": {"current_page": 1, "last_page": 1, "per_page": 10, "total": 2}
		}`))
	})

	page, err := client.Versions.List(context.Background(), "iron-chests", ListVersionsOptions{
		OrderBy: "release_date",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "2.0.0", page.Data[0].Version)
	assert.Equal(t, 2, page.Meta.Total)
}

func TestVersionsGet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/project/iron-chests/version/1.0.0", r.URL.Path)
		w.Write([]byte(versionResponse))
	})

	version, err := client.Versions.Get(context.Background(), "iron-chests", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version.Version)
}

func TestVersionsCreateMultipart(t *testing.T) {
	var form *http.Request

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/project/my-mod/versions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		form = r
		w.Write([]byte(versionResponse))
	}, WithToken("secret"))

	_, err := client.Versions.Create(context.Background(), "my-mod", CreateVersionRequest{
		Name:        "Test Version",
		Version:     "1.0.0",
		ReleaseType: "alpha",
		ReleaseDate: "2024-06-01",
		Tags:        []string{"fabric", "forge"},
		Dependencies: []ProjectVersionDependency{
			{ProjectSlug: "foo", VersionSlug: "1.0", Type: "required", External: true},
			{ProjectSlug: "bar", Type: "optional", External: false},
		},
		Files: []FileUpload{
			{Name: "mod.jar", Reader: strings.NewReader("jar-bytes")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, form)

	values := form.MultipartForm.Value
	assert.Equal(t, []string{"Test Version"}, values["name"])
	assert.Equal(t, []string{"1.0.0"}, values["version"])
	assert.Equal(t, []string{"alpha"}, values["release_type"])
	assert.Equal(t, []string{"2024-06-01"}, values["release_date"])
	// Empty changelog is omitted entirely.
	assert.NotContains(t, values, "changelog")

	assert.Equal(t, []string{"fabric", "forge"}, values["tags[]"])

	// Dependencies flatten to indexed keys, booleans become "1"/"0".
	assert.Equal(t, []string{"foo"}, values["dependencies[0][project]"])
	assert.Equal(t, []string{"1.0"}, values["dependencies[0][version]"])
	assert.Equal(t, []string{"required"}, values["dependencies[0][type]"])
	assert.Equal(t, []string{"1"}, values["dependencies[0][external]"])

	assert.Equal(t, []string{"bar"}, values["dependencies[1][project]"])
	assert.NotContains(t, values, "dependencies[1][version]")
	assert.Equal(t, []string{"0"}, values["dependencies[1][external]"])

	files := form.MultipartForm.File["files[]"]
	require.Len(t, files, 1)
	assert.Equal(t, "mod.jar", files[0].Filename)
	f, err := files[0].Open()
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "jar-bytes", string(content))
}

func TestVersionsUpdateRename(t *testing.T) {
	var gotPath string
	var values map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(32<<20))
		values = r.MultipartForm.Value
		w.Write([]byte(versionResponse))
	})

	// The route keeps the current version while the body carries the new one.
	_, err := client.Versions.Update(context.Background(), "my-mod", "1.0", UpdateVersionRequest{
		VersionNew: "1.1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/project/my-mod/version/1.0", gotPath)
	assert.Equal(t, []string{"1.1"}, values["version"])
}

func TestVersionsUpdateResendsCurrentVersion(t *testing.T) {
	var values map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		values = r.MultipartForm.Value
		w.Write([]byte(versionResponse))
	})

	changelog := ""
	_, err := client.Versions.Update(context.Background(), "my-mod", "1.0", UpdateVersionRequest{
		Name:               "Renamed",
		ReleaseType:        "beta",
		Changelog:          &changelog,
		CleanExistingFiles: true,
		FilesToRemove:      []string{"old.jar", "older.jar"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0"}, values["version"])
	assert.Equal(t, []string{"Renamed"}, values["name"])
	assert.Equal(t, []string{"beta"}, values["release_type"])
	// Explicit empty changelog is sent, clearing it server-side.
	assert.Equal(t, []string{""}, values["changelog"])
	assert.Equal(t, []string{"1"}, values["clean_existing_files"])
	assert.Equal(t, []string{"old.jar", "older.jar"}, values["files_to_remove[]"])
}

func TestVersionsUpdateRequiresCurrentVersion(t *testing.T) {
	client, err := NewClient("http://localhost:8000/api")
	require.NoError(t, err)

	_, err = client.Versions.Update(context.Background(), "my-mod", "", UpdateVersionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current version is required")
}

func TestVersionsDelete(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/project/my-mod/version/1.0", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Versions.Delete(context.Background(), "my-mod", "1.0")
	require.NoError(t, err)
}

func TestVersionsDeleteForbidden(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden"}`))
	})

	err := client.Versions.Delete(context.Background(), "my-mod", "1.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "forbidden", apiErr.Message)
}
