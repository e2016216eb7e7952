package hub01

import (
	"context"
	"net/http"
	"net/url"
)

// TagsService accesses the project tag and version tag resources.
type TagsService struct {
	client *Client
}

// ListTagsOptions filters tag listings.
type ListTagsOptions struct {
	// Plain asks the server to skip nested sub_tag expansion.
	Plain bool
	// ProjectType restricts tags to one project type; empty means all.
	ProjectType string
}

func (o ListTagsOptions) values() url.Values {
	params := url.Values{}
	params.Set("plain", boolField(o.Plain))
	if o.ProjectType != "" {
		params.Set("project_type", o.ProjectType)
	}
	return params
}

// ListProjectTags returns all project tags.
func (s *TagsService) ListProjectTags(ctx context.Context, opts ListTagsOptions) ([]ProjectTag, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/project_tags", opts.values(), nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalList[ProjectTag](raw)
}

// GetProjectTag returns a single project tag by slug.
func (s *TagsService) GetProjectTag(ctx context.Context, slug string) (*ProjectTag, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/project_tag/"+url.PathEscape(slug), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var tag ProjectTag
	if err := unmarshalData(raw, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListVersionTags returns all version tags.
func (s *TagsService) ListVersionTags(ctx context.Context, opts ListTagsOptions) ([]ProjectVersionTag, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/version_tags", opts.values(), nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalList[ProjectVersionTag](raw)
}

// GetVersionTag returns a single version tag by slug.
func (s *TagsService) GetVersionTag(ctx context.Context, slug string) (*ProjectVersionTag, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/version_tag/"+url.PathEscape(slug), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var tag ProjectVersionTag
	if err := unmarshalData(raw, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}
