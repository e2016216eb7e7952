package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hub01/hub01-go/hub01"
)

// checkCmd runs a fixed 13-step scenario against the live API, printing a
// pass/fail marker per step. It reports failures but always exits 0; the
// output is the contract.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the end-to-end API scenario against a live server",
	Long: `Run a fixed 13-step scenario against a live Hub01 Shop server:

  1-7   read-only: project types, project tags, version tags, project
        listing and search, version listing and filtering
  8-13  authenticated (skipped without --username/--token): token check,
        user profile, user projects, then create, update and delete a
        throwaway version on one of the user's projects

Each step prints a pass/fail marker; failures do not affect the exit code.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkState carries resources discovered by earlier steps into later ones.
type checkState struct {
	projectSlug    string
	projects       []hub01.Project
	versionSlug    string
	createdVersion string
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	authenticated := cfg.Username != "" && cfg.Token != ""

	fmt.Println("=== Hub01 Shop API Integration Check ===")
	fmt.Printf("Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("Username: %s\n", valueOr(cfg.Username, "Not provided"))
	fmt.Printf("Token: %s\n", presence(cfg.Token))
	fmt.Printf("Auth Steps: %s\n", enabled(authenticated))
	fmt.Println(strings.Repeat("=", 50))

	// Read-only steps run without authentication on purpose; the public
	// surface must work anonymously.
	anon, err := hub01.NewClient(cfg.BaseURL,
		hub01.WithLogger(logger),
		hub01.WithUserAgent("hub01-go/"+version),
	)
	if err != nil {
		return err
	}

	state := &checkState{}
	if ok := runReadOnlySteps(ctx, anon, state); !ok {
		return nil
	}

	if !authenticated {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("⚠ Skipping authenticated steps (no credentials provided)")
		fmt.Println(strings.Repeat("=", 50))
		return nil
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("Authenticated Steps")
	fmt.Println(strings.Repeat("=", 50))

	runAuthSteps(ctx, client, state)

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("✓ All steps completed")
	fmt.Println(strings.Repeat("=", 50))
	return nil
}

// runReadOnlySteps runs steps 1-7. It returns false when a step the rest of
// the scenario depends on fails.
func runReadOnlySteps(ctx context.Context, c *hub01.Client, state *checkState) bool {
	// 1. Project types
	fmt.Println("\n[1/13] List Project Types")
	types, err := c.ProjectTypes.List(ctx)
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return false
	}
	fmt.Printf("✓ Found %d project types\n", len(types))
	for _, t := range head(types, 3) {
		fmt.Printf("  - %s (%s)\n", t.Name, t.Slug)
	}

	// 2. Project tags
	fmt.Println("\n[2/13] List Project Tags")
	tags, err := c.Tags.ListProjectTags(ctx, hub01.ListTagsOptions{Plain: true})
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
	} else {
		fmt.Printf("✓ Found %d project tags\n", len(tags))
		if len(tags) > 0 {
			fmt.Printf("  - First tag: %s (%s)\n", tags[0].Name, tags[0].Slug)
			if detail, err := c.Tags.GetProjectTag(ctx, tags[0].Slug); err == nil {
				fmt.Printf("  - Tag detail icon: %s\n", detail.Icon)
			}
		}
	}

	// 3. Version tags
	fmt.Println("\n[3/13] List Version Tags")
	versionTags, err := c.Tags.ListVersionTags(ctx, hub01.ListTagsOptions{Plain: true})
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
	} else {
		fmt.Printf("✓ Found %d version tags\n", len(versionTags))
		if len(versionTags) > 0 {
			fmt.Printf("  - First tag: %s\n", versionTags[0].Name)
		}
	}

	// 4. List projects
	fmt.Println("\n[4/13] List Projects")
	page, err := c.Projects.List(ctx, hub01.ListProjectsOptions{ProjectType: "mod", PerPage: 10})
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return false
	}
	fmt.Printf("✓ Found %d projects (page 1)\n", len(page.Data))
	for _, p := range head(page.Data, 3) {
		fmt.Printf("  - %s (downloads: %d)\n", p.Name, p.Downloads)
	}
	if len(page.Data) > 0 {
		state.projectSlug = page.Data[0].Slug
		state.projects = page.Data
		fmt.Printf("  → Using '%s' for subsequent steps\n", state.projectSlug)
	}

	// 5. Filter projects
	fmt.Println("\n[5/13] Filter Projects (search)")
	if len(state.projects) > 0 {
		searchTerm := firstWord(state.projects[0].Name)
		results, err := c.Projects.List(ctx, hub01.ListProjectsOptions{Search: searchTerm, PerPage: 10})
		if err != nil {
			fmt.Printf("✗ FAILED: %v\n", err)
		} else {
			fmt.Printf("✓ Search for '%s' returned %d results\n", searchTerm, results.Meta.Total)
		}

		ordered, err := c.Projects.List(ctx, hub01.ListProjectsOptions{
			ProjectType:    "mod",
			OrderBy:        "name",
			OrderDirection: "asc",
			PerPage:        10,
		})
		if err != nil {
			fmt.Printf("✗ FAILED: %v\n", err)
		} else {
			fmt.Printf("✓ Filtered by type 'mod', ordered by name: %d results\n", len(ordered.Data))
		}
	}

	// 6. List versions of one project
	fmt.Println("\n[6/13] List Versions of Project")
	if state.projectSlug != "" {
		versions, err := c.Versions.List(ctx, state.projectSlug, hub01.ListVersionsOptions{PerPage: 10})
		if err != nil {
			fmt.Printf("✗ FAILED: %v\n", err)
		} else {
			fmt.Printf("✓ Project '%s' has %d versions\n", state.projectSlug, len(versions.Data))
			if len(versions.Data) > 0 {
				state.versionSlug = versions.Data[0].Version
				for _, v := range head(versions.Data, 3) {
					fmt.Printf("  - %s (%s, downloads: %d)\n", v.Version, v.ReleaseType, v.Downloads)
				}
				fmt.Printf("  → Using version '%s' for subsequent steps\n", state.versionSlug)
			}
		}
	}

	// 7. Filter versions
	fmt.Println("\n[7/13] Filter Versions")
	if state.projectSlug != "" {
		filtered, err := c.Versions.List(ctx, state.projectSlug, hub01.ListVersionsOptions{
			OrderBy:        "release_date",
			OrderDirection: "desc",
			PerPage:        10,
		})
		if err != nil {
			fmt.Printf("✗ FAILED: %v\n", err)
		} else {
			fmt.Printf("✓ Filtered versions (by release_date desc): %d results\n", len(filtered.Data))
		}

		if state.versionSlug != "" {
			detail, err := c.Versions.Get(ctx, state.projectSlug, state.versionSlug)
			if err != nil {
				fmt.Printf("✗ FAILED: %v\n", err)
			} else {
				fmt.Printf("✓ Got version details: %s\n", detail.Version)
				fmt.Printf("  - Files: %d\n", len(detail.Files))
				fmt.Printf("  - Dependencies: %d\n", len(detail.Dependencies))
			}
		}
	}

	return true
}

// runAuthSteps runs steps 8-13 with the authenticated client.
func runAuthSteps(ctx context.Context, c *hub01.Client, state *checkState) {
	// 8. Token validation
	fmt.Println("\n[8/13] Token Validation")
	info, err := c.TestToken(ctx)
	if err != nil {
		if errors.Is(err, hub01.ErrUnauthenticated) {
			fmt.Printf("✗ FAILED: Invalid token - %v\n", err)
		} else {
			fmt.Printf("✗ FAILED: %v\n", err)
		}
		return
	}
	fmt.Println("✓ Token is valid")
	fmt.Printf("  - User: %s\n", valueOr(info.User.Username, "N/A"))
	fmt.Printf("  - Token name: %s\n", valueOr(info.Token.Name, "N/A"))

	// 9. User profile
	fmt.Println("\n[9/13] Get User Profile")
	user, err := c.Users.Get(ctx, cfg.Username)
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
	} else {
		fmt.Printf("✓ Retrieved user: %s\n", user.Username)
		fmt.Printf("  - Bio: %s\n", valueOr(user.Bio, "None"))
		fmt.Printf("  - Avatar: %s\n", presence(user.Avatar))
	}

	// 10. User projects
	fmt.Println("\n[10/13] Get User Projects")
	userProjects, err := c.Users.Projects(ctx, cfg.Username)
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return
	}
	fmt.Printf("✓ User has %d projects\n", len(userProjects.Data))
	if len(userProjects.Data) == 0 {
		fmt.Println("  ⚠ User has no projects, cannot run create/update/delete steps")
		return
	}
	// Write steps only touch the user's own project.
	state.projectSlug = userProjects.Data[0].Slug
	fmt.Printf("  - Using user project: %s\n", state.projectSlug)

	// 11. Create version
	fmt.Println("\n[11/13] Create Project Version")
	runCreateStep(ctx, c, state)

	// 12. Update version
	fmt.Println("\n[12/13] Update Project Version")
	runUpdateStep(ctx, c, state)

	// 13. Delete version
	fmt.Println("\n[13/13] Delete Project Version")
	runDeleteStep(ctx, c, state)
}

func runCreateStep(ctx context.Context, c *hub01.Client, state *checkState) {
	now := time.Now()
	versionSlug := "check-api-" + now.Format("20060102-150405")

	deps := findDependencies(ctx, c, state.projectSlug, 1)
	if len(deps) > 0 {
		fmt.Printf("  Using dependency: %s v%s\n", deps[0].ProjectSlug, deps[0].VersionSlug)
	}

	var versionTags []string
	if all, err := c.Tags.ListVersionTags(ctx, hub01.ListTagsOptions{Plain: true}); err == nil && len(all) >= 2 {
		versionTags = []string{all[0].Slug, all[1].Slug}
		fmt.Printf("  Using version tags: %s\n", strings.Join(versionTags, ", "))
	}

	created, err := c.Versions.Create(ctx, state.projectSlug, hub01.CreateVersionRequest{
		Name:         "Check Version " + versionSlug,
		Version:      versionSlug,
		ReleaseType:  "alpha",
		ReleaseDate:  now.Format("2006-01-02"),
		Changelog:    "Test version created by hub01 check",
		Tags:         versionTags,
		Dependencies: deps,
		Files: []hub01.FileUpload{
			{Name: "check_file.txt", Reader: strings.NewReader("This is a test file created by hub01 check")},
		},
	})
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return
	}

	state.createdVersion = created.Version
	fmt.Printf("✓ Created version: %s\n", created.Version)
	fmt.Printf("  - Name: %s\n", created.Name)
	fmt.Printf("  - Release type: %s\n", created.ReleaseType)
	fmt.Printf("  - Files: %d\n", len(created.Files))
	fmt.Printf("  - Dependencies: %d\n", len(created.Dependencies))
	fmt.Printf("  - Tags: %d\n", len(created.Tags))
}

func runUpdateStep(ctx context.Context, c *hub01.Client, state *checkState) {
	if state.createdVersion == "" {
		fmt.Println("  ⚠ Skipping (no version was created)")
		return
	}

	deps := findDependencies(ctx, c, state.projectSlug, 2)
	if len(deps) > 0 {
		fmt.Printf("  Updating with %d dependencies\n", len(deps))
	}

	var updateTags []string
	if all, err := c.Tags.ListVersionTags(ctx, hub01.ListTagsOptions{Plain: true}); err == nil && len(all) >= 5 {
		// Different tags than creation used.
		updateTags = []string{all[2].Slug, all[3].Slug, all[4].Slug}
		fmt.Printf("  Updating with version tags: %s\n", strings.Join(updateTags, ", "))
	}

	changelog := "Updated changelog via hub01 check"
	updated, err := c.Versions.Update(ctx, state.projectSlug, state.createdVersion, hub01.UpdateVersionRequest{
		Name:         "Updated Check Version " + state.createdVersion,
		ReleaseType:  "beta",
		ReleaseDate:  time.Now().Format("2006-01-02"),
		Changelog:    &changelog,
		Tags:         updateTags,
		Dependencies: deps,
	})
	if err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return
	}

	fmt.Printf("✓ Updated version: %s\n", updated.Version)
	fmt.Printf("  - New name: %s\n", updated.Name)
	fmt.Printf("  - New release type: %s\n", updated.ReleaseType)
	fmt.Printf("  - Dependencies: %d\n", len(updated.Dependencies))
	fmt.Printf("  - Tags: %d\n", len(updated.Tags))
	fmt.Printf("  - Changelog: %s\n", truncate(updated.Changelog, 50))
}

func runDeleteStep(ctx context.Context, c *hub01.Client, state *checkState) {
	if state.createdVersion == "" {
		fmt.Println("  ⚠ Skipping (no version was created)")
		return
	}

	if err := c.Versions.Delete(ctx, state.projectSlug, state.createdVersion); err != nil {
		fmt.Printf("✗ FAILED: %v\n", err)
		return
	}
	fmt.Printf("✓ Deleted version: %s\n", state.createdVersion)

	if _, err := c.Versions.Get(ctx, state.projectSlug, state.createdVersion); err != nil {
		fmt.Println("  ✓ Verified: version no longer exists")
	} else {
		fmt.Println("  ⚠ Warning: version still exists after deletion")
	}
}

// findDependencies scans other projects for usable versions to reference as
// dependencies of the throwaway version. Best effort; an empty result just
// means the create/update step submits no dependencies.
func findDependencies(ctx context.Context, c *hub01.Client, excludeSlug string, limit int) []hub01.ProjectVersionDependency {
	page, err := c.Projects.List(ctx, hub01.ListProjectsOptions{PerPage: 25})
	if err != nil {
		return nil
	}

	var deps []hub01.ProjectVersionDependency
	for _, project := range page.Data {
		if project.Slug == excludeSlug || len(deps) >= limit {
			continue
		}
		versions, err := c.Versions.List(ctx, project.Slug, hub01.ListVersionsOptions{PerPage: 10})
		if err != nil || len(versions.Data) == 0 {
			continue
		}
		depType := hub01.DependencyOptional
		if len(deps) > 0 {
			depType = hub01.DependencyRequired
		}
		deps = append(deps, hub01.ProjectVersionDependency{
			ProjectSlug: project.Slug,
			VersionSlug: versions.Data[0].Version,
			Type:        depType,
			External:    false,
		})
	}
	return deps
}

func head[T any](items []T, n int) []T {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func presence(s string) string {
	if s == "" {
		return "Not provided"
	}
	return "Present"
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
