package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hub01/hub01-go/filter"
	"github.com/hub01/hub01-go/hub01"
)

var (
	projectType    string
	search         string
	projectTags    []string
	versionTags    []string
	orderBy        string
	orderDirection string
	perPage        int
	pageNumber     int
	releasePeriod  string
	releaseStart   string
	releaseEnd     string
	filterExpr     string
)

// projectsCmd represents the projects command group
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse marketplace projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects matching the given filters",
	Long: `List projects using the server-side filters (type, search, tags,
ordering, release date window), optionally narrowed further by a
client-side --filter expression, e.g.:

  hub01 projects list --search chest --filter 'Downloads > 1000'
  hub01 projects list --filter 'HasTag("storage") && Status == "published"'`,
	RunE: runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one project with its latest versions",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)

	projectsListCmd.Flags().StringVar(&projectType, "type", "", "project type (default mod)")
	projectsListCmd.Flags().StringVar(&search, "search", "", "free-text search")
	projectsListCmd.Flags().StringArrayVar(&projectTags, "tag", nil, "filter by tag slug (repeatable)")
	projectsListCmd.Flags().StringArrayVar(&versionTags, "version-tag", nil, "filter by version tag slug (repeatable)")
	projectsListCmd.Flags().StringVar(&orderBy, "order-by", "", "sort key (default downloads)")
	projectsListCmd.Flags().StringVar(&orderDirection, "order-direction", "", "sort direction asc/desc (default desc)")
	projectsListCmd.Flags().IntVar(&perPage, "per-page", 0, "page size (default 10)")
	projectsListCmd.Flags().IntVar(&pageNumber, "page", 0, "page number (default 1)")
	projectsListCmd.Flags().StringVar(&releasePeriod, "period", "", "release date period (default all)")
	projectsListCmd.Flags().StringVar(&releaseStart, "from", "", "release date lower bound")
	projectsListCmd.Flags().StringVar(&releaseEnd, "to", "", "release date upper bound")
	projectsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	var projectFilter *filter.Filter
	if filterExpr != "" {
		var err error
		projectFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx := context.Background()
	page, err := client.Projects.List(ctx, hub01.ListProjectsOptions{
		ProjectType:       projectType,
		Search:            search,
		Tags:              projectTags,
		VersionTags:       versionTags,
		OrderBy:           orderBy,
		OrderDirection:    orderDirection,
		PerPage:           perPage,
		Page:              pageNumber,
		ReleaseDatePeriod: releasePeriod,
		ReleaseDateStart:  releaseStart,
		ReleaseDateEnd:    releaseEnd,
	})
	if err != nil {
		return err
	}

	projects := page.Data
	if projectFilter != nil {
		projects, err = projectFilter.Apply(projects)
		if err != nil {
			return err
		}
	}

	if len(projects) == 0 {
		fmt.Println("No projects found matching the criteria.")
		return nil
	}

	fmt.Printf("\nFound %d projects (page %d of %d, %d total server-side):\n",
		len(projects), page.Meta.CurrentPage, page.Meta.LastPage, page.Meta.Total)
	fmt.Println(strings.Repeat("-", 80))

	for _, p := range projects {
		fmt.Printf("• %s (%s)\n", p.Name, p.Slug)
		fmt.Printf("  %s\n", p.Summary)
		fmt.Printf("  Downloads: %d  Versions: %d  Status: %s\n", p.Downloads, p.VersionCount, p.Status)
		if len(p.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(p.Tags, ", "))
		}
	}

	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
	slug := args[0]
	ctx := context.Background()

	// The project and its versions come from independent endpoints; fetch
	// them in parallel.
	var (
		project  *hub01.Project
		versions *hub01.Page[hub01.ProjectVersion]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = client.Projects.Get(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		versions, err = client.Versions.List(gctx, slug, hub01.ListVersionsOptions{
			OrderBy:        "release_date",
			OrderDirection: "desc",
			PerPage:        5,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", project.Name, project.Slug)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Summary:   %s\n", project.Summary)
	fmt.Printf("Status:    %s\n", project.Status)
	fmt.Printf("Downloads: %d\n", project.Downloads)
	fmt.Printf("Versions:  %d\n", project.VersionCount)
	fmt.Printf("Created:   %s\n", project.CreatedAt)
	if project.LastReleaseDate != "" {
		fmt.Printf("Released:  %s\n", project.LastReleaseDate)
	}
	if project.Website != "" {
		fmt.Printf("Website:   %s\n", project.Website)
	}
	if project.Source != "" {
		fmt.Printf("Source:    %s\n", project.Source)
	}
	if len(project.Tags) > 0 {
		fmt.Printf("Tags:      %s\n", strings.Join(project.Tags, ", "))
	}
	if len(project.Members) > 0 {
		names := make([]string, 0, len(project.Members))
		for _, m := range project.Members {
			names = append(names, m.Username)
		}
		fmt.Printf("Members:   %s\n", strings.Join(names, ", "))
	}

	if len(versions.Data) > 0 {
		fmt.Printf("\nLatest versions:\n")
		for _, v := range versions.Data {
			fmt.Printf("  - %s (%s, %s, downloads: %d)\n", v.Version, v.ReleaseType, v.ReleaseDate, v.Downloads)
		}
	}

	return nil
}
