package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/spf13/cobra"

	"github.com/hub01/hub01-go/hub01"
)

var (
	versionListTags  []string
	versionOrderBy   string
	versionDirection string
	versionPerPage   int
	versionPage      int
	semverSort       bool
)

// versionsCmd represents the versions command group
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Browse project versions",
}

var versionsListCmd = &cobra.Command{
	Use:   "list <project-slug>",
	Short: "List versions of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsList,
}

var versionsGetCmd = &cobra.Command{
	Use:   "get <project-slug> <version>",
	Short: "Show one version with its files and dependencies",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsGet,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
	versionsCmd.AddCommand(versionsListCmd)
	versionsCmd.AddCommand(versionsGetCmd)

	versionsListCmd.Flags().StringArrayVar(&versionListTags, "tag", nil, "filter by version tag slug (repeatable)")
	versionsListCmd.Flags().StringVar(&versionOrderBy, "order-by", "", "sort key (default downloads)")
	versionsListCmd.Flags().StringVar(&versionDirection, "order-direction", "", "sort direction asc/desc (default desc)")
	versionsListCmd.Flags().IntVar(&versionPerPage, "per-page", 0, "page size (default 10)")
	versionsListCmd.Flags().IntVar(&versionPage, "page", 0, "page number (default 1)")
	versionsListCmd.Flags().BoolVar(&semverSort, "semver", false, "re-sort the page newest-first by best-effort semver")
}

func runVersionsList(cmd *cobra.Command, args []string) error {
	slug := args[0]
	ctx := context.Background()

	page, err := client.Versions.List(ctx, slug, hub01.ListVersionsOptions{
		Tags:           versionListTags,
		OrderBy:        versionOrderBy,
		OrderDirection: versionDirection,
		PerPage:        versionPerPage,
		Page:           versionPage,
	})
	if err != nil {
		return err
	}

	if len(page.Data) == 0 {
		fmt.Printf("Project '%s' has no versions.\n", slug)
		return nil
	}

	versions := page.Data
	if semverSort {
		sortVersionsNewestFirst(versions)
	}

	fmt.Printf("\n%d versions of '%s' (page %d of %d):\n", len(versions), slug, page.Meta.CurrentPage, page.Meta.LastPage)
	fmt.Println(strings.Repeat("-", 80))
	for _, v := range versions {
		fmt.Printf("• %s  %-8s  %s  downloads: %d\n", v.Version, v.ReleaseType, v.ReleaseDate, v.Downloads)
	}

	return nil
}

func runVersionsGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	v, err := client.Versions.Get(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", v.Version, v.Name)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Release type: %s\n", v.ReleaseType)
	fmt.Printf("Release date: %s\n", v.ReleaseDate)
	fmt.Printf("Downloads:    %d\n", v.Downloads)
	if len(v.Tags) > 0 {
		fmt.Printf("Tags:         %s\n", strings.Join(v.Tags, ", "))
	}
	if v.Changelog != "" {
		fmt.Printf("\nChangelog:\n%s\n", v.Changelog)
	}
	if len(v.Files) > 0 {
		fmt.Printf("\nFiles:\n")
		for _, f := range v.Files {
			fmt.Printf("  - %s (%d bytes, sha1 %s)\n", f.Name, f.Size, f.SHA1)
		}
	}
	if len(v.Dependencies) > 0 {
		fmt.Printf("\nDependencies:\n")
		for _, d := range v.Dependencies {
			ref := d.ProjectSlug
			if d.VersionSlug != "" {
				ref += " v" + d.VersionSlug
			}
			fmt.Printf("  - %s (%s)\n", ref, d.Type)
		}
	}

	return nil
}

// sortVersionsNewestFirst orders versions by best-effort semver. Version
// strings are not guaranteed to be semver, so unparseable ones sort after
// parseable ones, by plain string comparison among themselves.
func sortVersionsNewestFirst(versions []hub01.ProjectVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := semver.ParseTolerant(versions[i].Version)
		vj, errJ := semver.ParseTolerant(versions[j].Version)
		switch {
		case errI == nil && errJ == nil:
			return vi.GT(vj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return versions[i].Version > versions[j].Version
		}
	})
}
