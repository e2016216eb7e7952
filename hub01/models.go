package hub01

import "fmt"

// Dependency type values defined by the server. The set is open; the client
// does not validate membership.
const (
	DependencyRequired = "required"
	DependencyOptional = "optional"
	DependencyEmbedded = "embedded"
)

// missingField reports a required field absent from a decoded resource.
func missingField(resource, field string) error {
	return fmt.Errorf("hub01: %s resource is missing required field %q", resource, field)
}

// ProjectType is a top-level resource category (mod, plugin, ...), uniquely
// identified by its slug.
type ProjectType struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

func (t *ProjectType) validate() error {
	if t.Slug == "" {
		return missingField("project type", "slug")
	}
	if t.Name == "" {
		return missingField("project type", "name")
	}
	return nil
}

// ProjectTag is a categorization label for projects. Tags form a shallow
// tree: a main tag may carry sub tags of the same shape.
type ProjectTag struct {
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Icon         string       `json:"icon"`
	TagGroup     string       `json:"tag_group,omitempty"`
	ProjectTypes []string     `json:"project_types"`
	MainTag      string       `json:"main_tag,omitempty"`
	SubTags      []ProjectTag `json:"sub_tags,omitempty"`
}

func (t *ProjectTag) validate() error {
	if t.Slug == "" {
		return missingField("project tag", "slug")
	}
	if t.ProjectTypes == nil {
		t.ProjectTypes = []string{}
	}
	if t.SubTags == nil {
		t.SubTags = []ProjectTag{}
	}
	for i := range t.SubTags {
		if err := t.SubTags[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProjectVersionTag is a categorization label for project versions. The
// server defines it as a separate resource from ProjectTag even though the
// two are structurally identical, so the model keeps them distinct.
type ProjectVersionTag struct {
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Icon         string              `json:"icon"`
	TagGroup     string              `json:"tag_group,omitempty"`
	ProjectTypes []string            `json:"project_types"`
	MainTag      string              `json:"main_tag,omitempty"`
	SubTags      []ProjectVersionTag `json:"sub_tags,omitempty"`
}

func (t *ProjectVersionTag) validate() error {
	if t.Slug == "" {
		return missingField("version tag", "slug")
	}
	if t.ProjectTypes == nil {
		t.ProjectTypes = []string{}
	}
	if t.SubTags == nil {
		t.SubTags = []ProjectVersionTag{}
	}
	for i := range t.SubTags {
		if err := t.SubTags[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProjectMember is a user attached to a project listing.
type ProjectMember struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Project is a marketplace listing, uniquely identified by its slug.
// Versions are not embedded; fetch them through VersionsService.
//
// Timestamps are kept as the opaque strings the server sends.
type Project struct {
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Summary         string          `json:"summary"`
	Description     string          `json:"description,omitempty"`
	LogoURL         string          `json:"logo_url"`
	Website         string          `json:"website,omitempty"`
	Issues          string          `json:"issues,omitempty"`
	Source          string          `json:"source,omitempty"`
	Status          string          `json:"status"`
	Downloads       int             `json:"downloads"`
	CreatedAt       string          `json:"created_at"`
	LastReleaseDate string          `json:"last_release_date,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
	VersionCount    int             `json:"version_count"`
	Tags            []string        `json:"tags"`
	Members         []ProjectMember `json:"members"`
}

func (p *Project) validate() error {
	if p.Slug == "" {
		return missingField("project", "slug")
	}
	if p.Name == "" {
		return missingField("project", "name")
	}
	// The server sends null for untagged projects.
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Members == nil {
		p.Members = []ProjectMember{}
	}
	return nil
}

// HasTag reports whether the project carries the given tag slug.
func (p *Project) HasTag(slug string) bool {
	for _, t := range p.Tags {
		if t == slug {
			return true
		}
	}
	return false
}

// ProjectFile is a downloadable artifact owned by one version.
type ProjectFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	SHA1 string `json:"sha1"`
	URL  string `json:"url"`
}

// ProjectVersionDependency references another project (and optionally one
// of its versions) by slug. The reference is not validated client-side.
type ProjectVersionDependency struct {
	ProjectSlug string `json:"project"`
	VersionSlug string `json:"version,omitempty"`
	Type        string `json:"type"`
	External    bool   `json:"external"`
}

// ProjectVersion is a release of a project. The version string is the
// per-project unique key used in routes; it is not assumed to be semver.
type ProjectVersion struct {
	Name         string                     `json:"name"`
	Version      string                     `json:"version"`
	ReleaseType  string                     `json:"release_type"`
	ReleaseDate  string                     `json:"release_date"`
	Changelog    string                     `json:"changelog,omitempty"`
	Downloads    int                        `json:"downloads"`
	Tags         []string                   `json:"tags"`
	Files        []ProjectFile              `json:"files"`
	Dependencies []ProjectVersionDependency `json:"dependencies"`
}

func (v *ProjectVersion) validate() error {
	if v.Version == "" {
		return missingField("project version", "version")
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.Files == nil {
		v.Files = []ProjectFile{}
	}
	if v.Dependencies == nil {
		v.Dependencies = []ProjectVersionDependency{}
	}
	return nil
}

// User is a marketplace account, looked up by username.
type User struct {
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (u *User) validate() error {
	if u.Username == "" {
		return missingField("user", "username")
	}
	return nil
}

// TokenInfo is the response of the token validation endpoint.
type TokenInfo struct {
	User  TokenUser  `json:"user"`
	Token TokenGrant `json:"token"`
}

// TokenUser identifies the account the token belongs to.
type TokenUser struct {
	Username string `json:"username"`
}

// TokenGrant describes the token itself.
type TokenGrant struct {
	Name string `json:"name"`
}
