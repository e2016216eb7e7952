package hub01

import (
	"context"
	"net/http"
	"net/url"
)

// UsersService accesses the user resources.
type UsersService struct {
	client *Client
}

// Get returns a user profile by username.
func (s *UsersService) Get(ctx context.Context, username string) (*User, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/user/"+url.PathEscape(username), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := unmarshalData(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Projects returns one page of the user's projects.
func (s *UsersService) Projects(ctx context.Context, username string) (*Page[Project], error) {
	endpoint := "/v1/user/" + url.PathEscape(username) + "/projects"
	raw, err := s.client.do(ctx, http.MethodGet, endpoint, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return unmarshalPage[Project](raw)
}
