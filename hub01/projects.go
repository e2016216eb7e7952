package hub01

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Defaults applied by listing operations when the corresponding option is
// left at its zero value.
const (
	DefaultProjectType       = "mod"
	DefaultOrderBy           = "downloads"
	DefaultOrderDirection    = "desc"
	DefaultPerPage           = 10
	DefaultReleaseDatePeriod = "all"
)

// ProjectsService accesses the project resources.
type ProjectsService struct {
	client *Client
}

// ListProjectsOptions filters and pages project listings. Zero values fall
// back to the documented server defaults; absent optional filters are
// omitted from the query entirely.
type ListProjectsOptions struct {
	ProjectType string
	Search      string
	// Tags and VersionTags are sent as repeated tags[] / version_tags[]
	// keys.
	Tags           []string
	VersionTags    []string
	OrderBy        string
	OrderDirection string
	PerPage        int
	Page           int
	// ReleaseDatePeriod windows results by release date (e.g. all, day,
	// week, month, year); Start/End give explicit bounds.
	ReleaseDatePeriod string
	ReleaseDateStart  string
	ReleaseDateEnd    string
}

func (o ListProjectsOptions) values() url.Values {
	params := url.Values{}
	params.Set("project_type", stringOr(o.ProjectType, DefaultProjectType))
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	for _, tag := range o.Tags {
		params.Add("tags[]", tag)
	}
	for _, tag := range o.VersionTags {
		params.Add("version_tags[]", tag)
	}
	params.Set("order_by", stringOr(o.OrderBy, DefaultOrderBy))
	params.Set("order_direction", stringOr(o.OrderDirection, DefaultOrderDirection))
	params.Set("per_page", strconv.Itoa(intOr(o.PerPage, DefaultPerPage)))
	params.Set("page", strconv.Itoa(intOr(o.Page, 1)))
	params.Set("release_date_period", stringOr(o.ReleaseDatePeriod, DefaultReleaseDatePeriod))
	if o.ReleaseDateStart != "" {
		params.Set("release_date_start", o.ReleaseDateStart)
	}
	if o.ReleaseDateEnd != "" {
		params.Set("release_date_end", o.ReleaseDateEnd)
	}
	return params
}

// List searches projects and returns one page of results.
func (s *ProjectsService) List(ctx context.Context, opts ListProjectsOptions) (*Page[Project], error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/projects", opts.values(), nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalPage[Project](raw)
}

// Get returns a single project by slug.
func (s *ProjectsService) Get(ctx context.Context, slug string) (*Project, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/project/"+url.PathEscape(slug), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var project Project
	if err := unmarshalData(raw, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intOr(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
