package hub01

import (
	"context"
	"net/http"
	"net/url"
)

// ProjectTypesService accesses the project type resources.
type ProjectTypesService struct {
	client *Client
}

// List returns all project types.
func (s *ProjectTypesService) List(ctx context.Context) ([]ProjectType, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/project_types", nil, nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalList[ProjectType](raw)
}

// Get returns a single project type by slug.
func (s *ProjectTypesService) Get(ctx context.Context, slug string) (*ProjectType, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/project_type/"+url.PathEscape(slug), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var projectType ProjectType
	if err := unmarshalData(raw, &projectType); err != nil {
		return nil, err
	}
	return &projectType, nil
}
