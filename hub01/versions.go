package hub01

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// VersionsService accesses the version resources of projects.
type VersionsService struct {
	client *Client
}

// ListVersionsOptions filters and pages version listings. Zero values fall
// back to the same sort and pagination defaults as project listings.
type ListVersionsOptions struct {
	// Tags are sent as repeated tags[] keys.
	Tags           []string
	OrderBy        string
	OrderDirection string
	PerPage        int
	Page           int
}

func (o ListVersionsOptions) values() url.Values {
	params := url.Values{}
	for _, tag := range o.Tags {
		params.Add("tags[]", tag)
	}
	params.Set("order_by", stringOr(o.OrderBy, DefaultOrderBy))
	params.Set("order_direction", stringOr(o.OrderDirection, DefaultOrderDirection))
	params.Set("per_page", strconv.Itoa(intOr(o.PerPage, DefaultPerPage)))
	params.Set("page", strconv.Itoa(intOr(o.Page, 1)))
	return params
}

// FileUpload is a file attached to a create or update request. The reader
// is consumed while the multipart body is built.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// CreateVersionRequest holds the fields for a new project version.
// Name, Version, ReleaseType and ReleaseDate are required by the API.
// An empty Changelog is omitted from the request, so the server cannot
// distinguish it from an absent one.
type CreateVersionRequest struct {
	Name         string
	Version      string
	ReleaseType  string
	ReleaseDate  string
	Changelog    string
	Tags         []string
	Dependencies []ProjectVersionDependency
	Files        []FileUpload
}

// UpdateVersionRequest holds the fields for updating an existing version.
// The API requires name, version, release_type and release_date to be
// resent even when unchanged.
type UpdateVersionRequest struct {
	// VersionNew renames the version. When empty, the current version from
	// the route is resent as the body's version field; the route path always
	// keeps the current version either way.
	VersionNew  string
	Name        string
	ReleaseType string
	ReleaseDate string
	// Changelog is sent when non-nil, so an explicit empty string clears
	// the changelog.
	Changelog *string
	// CleanExistingFiles removes all files attached to the version before
	// adding the new ones.
	CleanExistingFiles bool
	Tags               []string
	Dependencies       []ProjectVersionDependency
	FilesToRemove      []string
	Files              []FileUpload
}

// List returns one page of a project's versions.
func (s *VersionsService) List(ctx context.Context, projectSlug string, opts ListVersionsOptions) (*Page[ProjectVersion], error) {
	endpoint := "/v1/project/" + url.PathEscape(projectSlug) + "/versions"
	raw, err := s.client.do(ctx, http.MethodGet, endpoint, opts.values(), nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalPage[ProjectVersion](raw)
}

// Get returns a single version of a project.
func (s *VersionsService) Get(ctx context.Context, projectSlug, version string) (*ProjectVersion, error) {
	endpoint := "/v1/project/" + url.PathEscape(projectSlug) + "/version/" + url.PathEscape(version)
	raw, err := s.client.do(ctx, http.MethodGet, endpoint, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var projectVersion ProjectVersion
	if err := unmarshalData(raw, &projectVersion); err != nil {
		return nil, err
	}
	return &projectVersion, nil
}

// Create uploads a new version of a project as a multipart form.
func (s *VersionsService) Create(ctx context.Context, projectSlug string, req CreateVersionRequest) (*ProjectVersion, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	// Scalar fields are only sent when non-empty.
	fields := []struct{ key, value string }{
		{"name", req.Name},
		{"version", req.Version},
		{"release_type", req.ReleaseType},
		{"release_date", req.ReleaseDate},
		{"changelog", req.Changelog},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := form.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}

	if err := writeTags(form, req.Tags); err != nil {
		return nil, err
	}
	if err := writeDependencies(form, req.Dependencies); err != nil {
		return nil, err
	}
	if err := writeFiles(form, req.Files); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("hub01: failed to finalize form: %w", err)
	}

	endpoint := "/v1/project/" + url.PathEscape(projectSlug) + "/versions"
	raw, err := s.client.do(ctx, http.MethodPost, endpoint, nil, &buf, form.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var created ProjectVersion
	if err := unmarshalData(raw, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies an existing version. version is the current version
// string used in the route; a rename goes through req.VersionNew.
func (s *VersionsService) Update(ctx context.Context, projectSlug, version string, req UpdateVersionRequest) (*ProjectVersion, error) {
	if version == "" {
		return nil, fmt.Errorf("hub01: current version is required")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	bodyVersion := version
	if req.VersionNew != "" {
		bodyVersion = req.VersionNew
	}
	if err := form.WriteField("version", bodyVersion); err != nil {
		return nil, fmt.Errorf("hub01: failed to build form: %w", err)
	}

	fields := []struct{ key, value string }{
		{"name", req.Name},
		{"release_type", req.ReleaseType},
		{"release_date", req.ReleaseDate},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := form.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}
	if req.Changelog != nil {
		if err := form.WriteField("changelog", *req.Changelog); err != nil {
			return nil, fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}
	if req.CleanExistingFiles {
		if err := form.WriteField("clean_existing_files", "1"); err != nil {
			return nil, fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}

	if err := writeTags(form, req.Tags); err != nil {
		return nil, err
	}
	if err := writeDependencies(form, req.Dependencies); err != nil {
		return nil, err
	}
	for _, name := range req.FilesToRemove {
		if err := form.WriteField("files_to_remove[]", name); err != nil {
			return nil, fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}
	if err := writeFiles(form, req.Files); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("hub01: failed to finalize form: %w", err)
	}

	endpoint := "/v1/project/" + url.PathEscape(projectSlug) + "/version/" + url.PathEscape(version)
	raw, err := s.client.do(ctx, http.MethodPost, endpoint, nil, &buf, form.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var updated ProjectVersion
	if err := unmarshalData(raw, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a version. The server confirms with 204.
func (s *VersionsService) Delete(ctx context.Context, projectSlug, version string) error {
	endpoint := "/v1/project/" + url.PathEscape(projectSlug) + "/version/" + url.PathEscape(version)
	_, err := s.client.do(ctx, http.MethodDelete, endpoint, nil, nil, "")
	return err
}

func writeTags(form *multipart.Writer, tags []string) error {
	for _, tag := range tags {
		if err := form.WriteField("tags[]", tag); err != nil {
			return fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}
	return nil
}

// writeDependencies flattens each dependency into indexed field names
// (dependencies[i][key]); booleans are stringified as "1"/"0" and an empty
// version slug is omitted.
func writeDependencies(form *multipart.Writer, deps []ProjectVersionDependency) error {
	for i, dep := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)
		if err := form.WriteField(prefix+"[project]", dep.ProjectSlug); err != nil {
			return fmt.Errorf("hub01: failed to build form: %w", err)
		}
		if dep.VersionSlug != "" {
			if err := form.WriteField(prefix+"[version]", dep.VersionSlug); err != nil {
				return fmt.Errorf("hub01: failed to build form: %w", err)
			}
		}
		if err := form.WriteField(prefix+"[type]", dep.Type); err != nil {
			return fmt.Errorf("hub01: failed to build form: %w", err)
		}
		if err := form.WriteField(prefix+"[external]", boolField(dep.External)); err != nil {
			return fmt.Errorf("hub01: failed to build form: %w", err)
		}
	}
	return nil
}

func writeFiles(form *multipart.Writer, files []FileUpload) error {
	for _, file := range files {
		part, err := form.CreateFormFile("files[]", file.Name)
		if err != nil {
			return fmt.Errorf("hub01: failed to attach file %q: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("hub01: failed to read file %q: %w", file.Name, err)
		}
	}
	return nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
