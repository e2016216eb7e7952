// Package filter compiles boolean expressions evaluated client-side against
// listed projects, so CLI users can narrow search results beyond what the
// server-side filters support.
//
// Expressions use the expr language over project fields:
//
//	Downloads > 1000 && HasTag("storage")
//	Status == "published" && VersionCount >= 3
package filter

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/hub01/hub01-go/hub01"
)

// Filter is a compiled project filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(), // Allow project properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression the filter was compiled from.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single project.
func (f *Filter) Match(project hub01.Project) (bool, error) {
	env := map[string]any{
		"Name":            project.Name,
		"Slug":            project.Slug,
		"Summary":         project.Summary,
		"Status":          project.Status,
		"Downloads":       project.Downloads,
		"VersionCount":    project.VersionCount,
		"Tags":            project.Tags,
		"CreatedAt":       project.CreatedAt,
		"LastReleaseDate": project.LastReleaseDate,
		"UpdatedAt":       project.UpdatedAt,
		"HasTag": func(slug string) bool {
			return slices.Contains(project.Tags, slug)
		},
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression:  f.expression,
			ProjectSlug: project.Slug,
			Reason:      "failed to evaluate expression",
			Err:         err,
		}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression:  f.expression,
			ProjectSlug: project.Slug,
			Reason:      "expression did not return a boolean",
		}
	}
	return matched, nil
}

// Apply returns the projects matching the filter, preserving order.
func (f *Filter) Apply(projects []hub01.Project) ([]hub01.Project, error) {
	var matched []hub01.Project
	for _, project := range projects {
		ok, err := f.Match(project)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, project)
		}
	}
	return matched, nil
}
